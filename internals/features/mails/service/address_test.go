package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fixedRand(v int) func(int) int {
	return func(int) int { return v }
}

func TestLocalPartFromName(t *testing.T) {
	name := "Daksh Kumar"
	sum := 0
	for _, r := range name {
		sum += int(r)
	}
	want := []string{"daksh.kumar", "dakshk", "dkumar", "daksh_kumar", "dakshkumar", "dkumar"}[sum%6]
	assert.Equal(t, want, LocalPartFromName(name, fixedRand(0)))
	assert.Equal(t, want, LocalPartFromName(name, fixedRand(50)), "stable for the same name")

	assert.Equal(t, "priya42", LocalPartFromName("  Priya! ", fixedRand(41)))
	assert.Equal(t, "", LocalPartFromName("123 !!", fixedRand(0)))
}

func TestBirthdateCombos(t *testing.T) {
	dmy := BirthdateCombos("daksh", "15/8/2003")
	assert.Len(t, dmy, 10)
	assert.Equal(t, "daksh1503", dmy[0])
	assert.Equal(t, "daksh0803", dmy[1])
	assert.Equal(t, "daksh1508", dmy[2])
	assert.Equal(t, "daksh150803", dmy[6])

	assert.Equal(t, dmy, BirthdateCombos("daksh", "2003-08-15"))
	assert.Nil(t, BirthdateCombos("daksh", "August 15"))
}
