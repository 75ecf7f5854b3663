package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRole(t *testing.T) {
	cases := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"admin", RoleAdmin, true},
		{" ADMIN ", RoleAdmin, true},
		{"counselor", RoleCounselor, true},
		{"member", RoleCounselor, true},
		{"", RoleCounselor, true},
		{"owner", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := NormalizeRole(tc.in)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
