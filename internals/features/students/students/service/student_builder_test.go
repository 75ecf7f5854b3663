package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/students/dto"
	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/students/model"
	helper "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers"
)

func boolPtr(b bool) *bool { return &b }

func TestBuildStudentDefaults(t *testing.T) {
	req := dto.CreateStudentRequest{
		FullName:          "Asha Rao",
		EmailAddress:      "asha@example.com",
		PhoneNumber:       "9876543210",
		DOB:               "2000-01-31",
		TargetCountry:     "Canada",
		DegreeType:        "Bachelors",
		UniversityChoices: []dto.UniversityChoiceRequest{choiceReq("University of Toronto")},
		Documents:         &dto.DocumentsRequest{Passport: boolPtr(true)},
	}
	s, err := BuildStudent(req, actor, nil, t0)
	require.NoError(t, err)

	assert.Equal(t, model.PathDirect, s.ApplicationPath)
	assert.Equal(t, actor, s.CreatedBy)
	assert.Nil(t, s.AssignedCounselorID)
	assert.True(t, s.Documents.Data().Passport)
	assert.False(t, s.Documents.Data().SOP)
	assert.Equal(t, model.VisaPending, s.VisaDocuments.Data().Decision)
	assert.Equal(t, model.OfferConditional, s.UniversityChoices[0].OfferType)
	assert.Equal(t, "2000-01-31", s.DateOfBirth.Format(helper.DateLayout))

	t.Run("choice count bounds", func(t *testing.T) {
		bad := req
		bad.UniversityChoices = nil
		_, err := BuildStudent(bad, actor, nil, t0)
		assert.ErrorIs(t, err, helper.ErrValidation)

		bad.UniversityChoices = make([]dto.UniversityChoiceRequest, 6)
		_, err = BuildStudent(bad, actor, nil, t0)
		assert.ErrorIs(t, err, helper.ErrValidation)
	})
}

func TestApplyPatchMergesSubDocuments(t *testing.T) {
	s := newStudent(t, "Leeds")
	require.NoError(t, ApplyPatch(s, dto.PatchStudentRequest{
		Documents: dto.Optional[*dto.DocumentsRequest]{Present: true, Value: &dto.DocumentsRequest{Passport: boolPtr(true), SOP: boolPtr(true)}},
	}, t0))

	t1 := t0.Add(time.Hour)
	var patch dto.PatchStudentRequest
	require.NoError(t, json.Unmarshal([]byte(`{"documents":{"lor":true},"visa_documents":{"decision":"Accepted"},"target_country":"Ireland"}`), &patch))
	require.NoError(t, ApplyPatch(s, patch, t1))

	got := s.Documents.Data()
	assert.True(t, got.Passport, "unspecified flags survive")
	assert.True(t, got.SOP)
	assert.True(t, got.LOR)
	assert.False(t, got.Resume)
	assert.Equal(t, model.VisaAccepted, s.VisaDocuments.Data().Decision)
	assert.False(t, s.VisaDocuments.Data().CounsellingStarted)
	assert.Equal(t, "Ireland", s.TargetCountry)
	assert.Equal(t, "Daksh Kumar", s.FullName)
	assert.Equal(t, t1, s.UpdatedAt)
	assert.Len(t, s.StatusLogs, 1, "patch never logs")
}

func TestReplaceChoicesKeepsStatusAndNotesByIndex(t *testing.T) {
	s := newStudent(t, "Leeds", "Bristol")
	_, err := ApplyStatusChange(s, 0, model.StatusApplicationFiled, actor, t0)
	require.NoError(t, err)
	require.NoError(t, AddUniversityNote(s, 0, strPtr("Sent transcripts"), nil, actor, t0))

	incoming := []dto.UniversityChoiceRequest{choiceReq("Leeds"), choiceReq("Glasgow"), choiceReq("Durham")}
	incoming[0].CourseName = "MSc Data Science"
	filed := string(model.StatusUniFinalized)
	incoming[2].ApplicationStatus = &filed

	logsBefore := len(s.StatusLogs)
	require.NoError(t, ApplyPatch(s, dto.PatchStudentRequest{
		UniversityChoices: dto.Optional[[]dto.UniversityChoiceRequest]{Present: true, Value: incoming},
	}, t0.Add(time.Minute)))

	require.Len(t, s.UniversityChoices, 3)
	assert.Equal(t, "MSc Data Science", s.UniversityChoices[0].CourseName)
	assert.Equal(t, model.StatusApplicationFiled, s.UniversityChoices[0].ApplicationStatus)
	require.Len(t, s.UniversityChoices[0].Notes, 1)
	assert.Equal(t, "Sent transcripts", *s.UniversityChoices[0].Notes[0].Title)

	assert.Equal(t, "Glasgow", s.UniversityChoices[1].UniversityName)
	assert.Equal(t, model.StatusDocumentsPending, s.UniversityChoices[1].ApplicationStatus)
	assert.Equal(t, model.StatusDocumentsPending, s.UniversityChoices[2].ApplicationStatus, "client status is ignored")
	assert.Empty(t, s.UniversityChoices[2].Notes)
	assert.Len(t, s.StatusLogs, logsBefore)

	err = ApplyPatch(s, dto.PatchStudentRequest{
		UniversityChoices: dto.Optional[[]dto.UniversityChoiceRequest]{Present: true, Value: []dto.UniversityChoiceRequest{}},
	}, t0)
	assert.ErrorIs(t, err, helper.ErrValidation)
}
