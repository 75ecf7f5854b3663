package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/students/dto"
	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/students/model"
	helper "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers"
)

// BuildStudent assembles a new aggregate, including the creation time logs and notes.
func BuildStudent(req dto.CreateStudentRequest, creator uuid.UUID, counselor *uuid.UUID, now time.Time) (*model.StudentModel, error) {
	if n := len(req.UniversityChoices); n < 1 || n > model.MaxUniversityChoices {
		return nil, helper.Errorf(helper.ErrValidation, "university_choices must contain between 1 and %d choices", model.MaxUniversityChoices)
	}
	dob, err := dto.ParseDOB(req.DOB)
	if err != nil {
		return nil, helper.Errorf(helper.ErrValidation, "dob must be a YYYY-MM-DD date")
	}

	docs := model.Documents{}
	if req.Documents != nil {
		docs = req.Documents.MergeInto(docs)
	}
	visa := model.DefaultVisaDocuments()
	if req.VisaDocuments != nil {
		visa = req.VisaDocuments.MergeInto(visa)
	}

	choices := make(datatypes.JSONSlice[model.UniversityChoice], 0, len(req.UniversityChoices))
	for _, in := range req.UniversityChoices {
		choices = append(choices, in.ToChoice())
	}

	path := model.ApplicationPath(req.ApplicationPath)
	if path == "" {
		path = model.PathDirect
	}

	s := &model.StudentModel{
		FullName:            req.FullName,
		EmailAddress:        req.EmailAddress,
		PhoneNumber:         req.PhoneNumber,
		DateOfBirth:         dob,
		TargetCountry:       req.TargetCountry,
		DegreeType:          req.DegreeType,
		ApplicationPath:     path,
		CreatedBy:           creator,
		AssignedCounselorID: counselor,
		Documents:           datatypes.NewJSONType(docs),
		VisaDocuments:       datatypes.NewJSONType(visa),
		UniversityChoices:   choices,
		StatusLogs:          datatypes.JSONSlice[model.StatusLog]{},
		OverviewNotes:       datatypes.JSONSlice[model.OverviewNote]{},
		CreatedAt:           now,
	}
	InitializeApplications(s, creator, now)
	return s, nil
}

// ApplyPatch merges every present key except assigned_counselor_id, which the
// service resolves first. It never changes an application status and never
// writes logs or notes.
func ApplyPatch(s *model.StudentModel, p dto.PatchStudentRequest, now time.Time) error {
	if p.FullName.Present {
		s.FullName = p.FullName.Value
	}
	if p.EmailAddress.Present {
		s.EmailAddress = p.EmailAddress.Value
	}
	if p.PhoneNumber.Present {
		s.PhoneNumber = p.PhoneNumber.Value
	}
	if p.DOB.Present {
		dob, err := dto.ParseDOB(p.DOB.Value)
		if err != nil {
			return helper.Errorf(helper.ErrValidation, "dob must be a YYYY-MM-DD date")
		}
		s.DateOfBirth = dob
	}
	if p.TargetCountry.Present {
		s.TargetCountry = p.TargetCountry.Value
	}
	if p.DegreeType.Present {
		s.DegreeType = p.DegreeType.Value
	}
	if p.ApplicationPath.Present {
		s.ApplicationPath = model.ApplicationPath(p.ApplicationPath.Value)
	}
	if p.Documents.Present && p.Documents.Value != nil {
		s.Documents = datatypes.NewJSONType(p.Documents.Value.MergeInto(s.Documents.Data()))
	}
	if p.VisaDocuments.Present && p.VisaDocuments.Value != nil {
		s.VisaDocuments = datatypes.NewJSONType(p.VisaDocuments.Value.MergeInto(s.VisaDocuments.Data()))
	}
	if p.UniversityChoices.Present {
		n := len(p.UniversityChoices.Value)
		if n < 1 || n > model.MaxUniversityChoices {
			return helper.Errorf(helper.ErrValidation, "university_choices must contain between 1 and %d choices", model.MaxUniversityChoices)
		}
		s.UniversityChoices = ReplaceChoices(s.UniversityChoices, p.UniversityChoices.Value)
	}
	s.UpdatedAt = now
	return nil
}

// ReplaceChoices rebuilds the list from incoming. A choice whose index
// already existed keeps its status and notes; a new index starts at
// documents pending with no notes.
func ReplaceChoices(existing []model.UniversityChoice, incoming []dto.UniversityChoiceRequest) datatypes.JSONSlice[model.UniversityChoice] {
	out := make(datatypes.JSONSlice[model.UniversityChoice], 0, len(incoming))
	for i, in := range incoming {
		c := in.ToChoice()
		if i < len(existing) {
			c.ApplicationStatus = existing[i].ApplicationStatus
			c.Notes = append([]model.UniversityNote{}, existing[i].Notes...)
		} else {
			c.ApplicationStatus = model.StatusDocumentsPending
		}
		out = append(out, c)
	}
	return out
}
