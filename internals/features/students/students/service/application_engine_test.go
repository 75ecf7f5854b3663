package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/students/dto"
	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/students/model"
	helper "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers"
)

var (
	t0    = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	actor = uuid.MustParse("11111111-1111-1111-1111-111111111111")
)

func strPtr(s string) *string { return &s }

func choiceReq(name string) dto.UniversityChoiceRequest {
	return dto.UniversityChoiceRequest{
		UniversityName: name,
		CourseName:     "MSc Computer Science",
		IntakeMonth:    "September",
	}
}

func newStudent(t *testing.T, universities ...string) *model.StudentModel {
	t.Helper()
	req := dto.CreateStudentRequest{
		FullName:      "Daksh Kumar",
		EmailAddress:  "daksh@example.com",
		PhoneNumber:   "9876543210",
		DOB:           "2001-08-15",
		TargetCountry: "UK",
		DegreeType:    "Masters",
	}
	for _, u := range universities {
		req.UniversityChoices = append(req.UniversityChoices, choiceReq(u))
	}
	s, err := BuildStudent(req, actor, nil, t0)
	require.NoError(t, err)
	return s
}

func TestCreationEmitsOneLogAndNotePerChoice(t *testing.T) {
	s := newStudent(t, "University of Leeds")

	require.Len(t, s.StatusLogs, 1)
	assert.Nil(t, s.StatusLogs[0].PreviousStatus)
	assert.Equal(t, model.StatusDocumentsPending, s.StatusLogs[0].NewStatus)
	assert.Equal(t, 0, s.StatusLogs[0].UniversityChoiceIndex)
	assert.Equal(t, actor, s.StatusLogs[0].ChangedBy)

	require.Len(t, s.OverviewNotes, 1)
	assert.Equal(t, model.NoteAutomatic, s.OverviewNotes[0].Type)
	require.NotNil(t, s.OverviewNotes[0].RelatedUniversityIndex)
	assert.Equal(t, 0, *s.OverviewNotes[0].RelatedUniversityIndex)
	assert.Contains(t, *s.OverviewNotes[0].Title, "University of Leeds")

	assert.Equal(t, model.StatusDocumentsPending, s.UniversityChoices[0].ApplicationStatus)
	assert.Equal(t, t0, s.CreatedAt)
	assert.Equal(t, t0, s.UpdatedAt)

	multi := newStudent(t, "Leeds", "Bristol", "Warwick")
	assert.Len(t, multi.StatusLogs, 3)
	assert.Len(t, multi.OverviewNotes, 3)
	for i, l := range multi.StatusLogs {
		assert.Equal(t, i, l.UniversityChoiceIndex)
	}
}

func TestApplyStatusChange(t *testing.T) {
	s := newStudent(t, "University of Leeds")
	t1 := t0.Add(time.Hour)

	changed, err := ApplyStatusChange(s, 0, model.StatusApplicationFiled, actor, t1)
	require.NoError(t, err)
	assert.True(t, changed)

	require.Len(t, s.StatusLogs, 2)
	require.Len(t, s.OverviewNotes, 2)
	log := s.StatusLogs[1]
	require.NotNil(t, log.PreviousStatus)
	assert.Equal(t, model.StatusDocumentsPending, *log.PreviousStatus)
	assert.Equal(t, model.StatusApplicationFiled, log.NewStatus)
	assert.Equal(t, t1, log.Timestamp)
	assert.Equal(t, model.StatusApplicationFiled, s.UniversityChoices[0].ApplicationStatus)
	assert.Equal(t, t1, s.UpdatedAt)

	note := s.OverviewNotes[1]
	assert.Equal(t, model.NoteAutomatic, note.Type)
	assert.Equal(t, "Application status for University of Leeds changed from 'documents pending' to 'application filed'.", *note.Content)

	t.Run("same status is a no-op", func(t *testing.T) {
		t2 := t1.Add(time.Hour)
		changed, err := ApplyStatusChange(s, 0, model.StatusApplicationFiled, actor, t2)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Len(t, s.StatusLogs, 2)
		assert.Len(t, s.OverviewNotes, 2)
		assert.Equal(t, t1, s.UpdatedAt)
	})

	t.Run("out of range", func(t *testing.T) {
		for _, idx := range []int{-1, 1, 5} {
			_, err := ApplyStatusChange(s, idx, model.StatusUniFinalized, actor, t1)
			assert.ErrorIs(t, err, helper.ErrOutOfRange, "index %d", idx)
		}
		assert.Len(t, s.StatusLogs, 2)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := ApplyStatusChange(s, 0, model.ApplicationStatus("accepted"), actor, t1)
		assert.ErrorIs(t, err, helper.ErrValidation)
		assert.Equal(t, model.StatusApplicationFiled, s.UniversityChoices[0].ApplicationStatus)
	})
}

func TestAuditLogCountsEffectiveTransitions(t *testing.T) {
	s := newStudent(t, "Leeds", "Bristol")
	seq := []struct {
		index int
		to    model.ApplicationStatus
	}{
		{0, model.StatusDocumentsReceived},
		{0, model.StatusDocumentsReceived},
		{1, model.StatusDocumentsPending},
		{1, model.StatusApplicationPending},
		{0, model.StatusConditionalOffer},
		{1, model.StatusApplicationPending},
		{0, model.StatusDocumentsPending},
	}

	effective := 0
	for i, step := range seq {
		changed, err := ApplyStatusChange(s, step.index, step.to, actor, t0.Add(time.Duration(i+1)*time.Minute))
		require.NoError(t, err)
		if changed {
			effective++
		}
	}
	assert.Equal(t, 4, effective)
	assert.Len(t, s.StatusLogs, 2+effective)
	assert.Len(t, s.OverviewNotes, 2+effective)
}

func TestNotes(t *testing.T) {
	s := newStudent(t, "Leeds", "Bristol")
	t1 := t0.Add(time.Minute)

	require.NoError(t, AddUniversityNote(s, 1, strPtr("  Interview "), nil, actor, t1))
	require.Len(t, s.UniversityChoices[1].Notes, 1)
	n := s.UniversityChoices[1].Notes[0]
	assert.Equal(t, "Interview", *n.Title)
	assert.Nil(t, n.Description)
	assert.Equal(t, t1, n.CreatedAt)
	assert.Empty(t, s.UniversityChoices[0].Notes)
	assert.Len(t, s.StatusLogs, 2)

	err := AddUniversityNote(s, 2, strPtr("x"), nil, actor, t1)
	assert.ErrorIs(t, err, helper.ErrOutOfRange)

	AddOverviewNote(s, nil, strPtr("Called parents"), actor, t1)
	last := s.OverviewNotes[len(s.OverviewNotes)-1]
	assert.Equal(t, model.NoteManual, last.Type)
	assert.Nil(t, last.RelatedUniversityIndex)
	assert.Equal(t, "Called parents", *last.Content)
	assert.Equal(t, t1, s.UpdatedAt)
}
