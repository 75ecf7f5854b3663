package helper

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/GradGuide-Team/CRM-Gradguide/internals/constants"
)

func TestPrincipalCanSee(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	admin := Principal{ID: uuid.New(), Role: constants.RoleAdmin}
	counselor := Principal{ID: owner, Role: constants.RoleCounselor}
	stranger := Principal{ID: other, Role: constants.RoleCounselor}

	t.Run("admin sees all", func(t *testing.T) {
		assert.True(t, admin.CanSee(owner))
		assert.True(t, admin.CanSee(other))
	})
	t.Run("counselor sees own", func(t *testing.T) {
		assert.True(t, counselor.CanSee(owner))
	})
	t.Run("counselor isolated", func(t *testing.T) {
		assert.False(t, stranger.CanSee(owner))
		assert.False(t, Principal{Role: constants.RoleCounselor}.CanSee(uuid.Nil))
	})
}
