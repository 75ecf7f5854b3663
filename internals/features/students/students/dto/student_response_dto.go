package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/students/model"
	userModel "github.com/GradGuide-Team/CRM-Gradguide/internals/features/users/user/model"
	helper "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers"
)

/* =======================================================
   RESPONSE DTO
   ======================================================= */

type UniversityNoteResponse struct {
	model.UniversityNote
	CreatedByName *string `json:"created_by_name,omitempty"`
}

type UniversityChoiceResponse struct {
	model.UniversityChoice
	Notes []UniversityNoteResponse `json:"notes"`
}

type StatusLogResponse struct {
	model.StatusLog
	ChangedByName *string `json:"changed_by_name,omitempty"`
}

type OverviewNoteResponse struct {
	model.OverviewNote
	CreatedByName *string `json:"created_by_name,omitempty"`
}

type StudentResponse struct {
	ID                  uuid.UUID             `json:"id"`
	FullName            string                `json:"full_name"`
	EmailAddress        string                `json:"email_address"`
	PhoneNumber         string                `json:"phone_number"`
	DOB                 string                `json:"dob"`
	TargetCountry       string                `json:"target_country"`
	DegreeType          string                `json:"degree_type"`
	ApplicationPath     model.ApplicationPath `json:"application_path"`
	AssignedCounselorID *uuid.UUID            `json:"assigned_counselor_id"`
	AssignedCounselor   *userModel.UserPublic `json:"assigned_counselor,omitempty"`
	CreatedByID         uuid.UUID             `json:"created_by_id"`
	CreatedBy           *userModel.UserPublic `json:"created_by,omitempty"`

	Documents         model.Documents            `json:"documents"`
	VisaDocuments     model.VisaDocuments        `json:"visa_documents"`
	UniversityChoices []UniversityChoiceResponse `json:"university_choices"`
	StatusLogs        []StatusLogResponse        `json:"status_logs"`
	OverviewNotes     []OverviewNoteResponse     `json:"overview_notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Hydration carries users loaded in one batch plus which relations to expand.
// A nil Hydration expands nothing.
type Hydration struct {
	Users    map[uuid.UUID]userModel.UserPublic
	Populate PopulateOptions
}

func (h *Hydration) user(id uuid.UUID) (userModel.UserPublic, bool) {
	if h == nil || h.Users == nil {
		return userModel.UserPublic{}, false
	}
	u, ok := h.Users[id]
	return u, ok
}

func (h *Hydration) authorName(id uuid.UUID) *string {
	if h == nil || !h.Populate.NoteAuthors {
		return nil
	}
	if u, ok := h.user(id); ok {
		name := u.Name
		return &name
	}
	return nil
}

func ToStudentResponse(m model.StudentModel, h *Hydration) StudentResponse {
	resp := StudentResponse{
		ID:                  m.ID,
		FullName:            m.FullName,
		EmailAddress:        m.EmailAddress,
		PhoneNumber:         m.PhoneNumber,
		DOB:                 m.DateOfBirth.Format(helper.DateLayout),
		TargetCountry:       m.TargetCountry,
		DegreeType:          m.DegreeType,
		ApplicationPath:     m.ApplicationPath,
		AssignedCounselorID: m.AssignedCounselorID,
		CreatedByID:         m.CreatedBy,
		Documents:           m.Documents.Data(),
		VisaDocuments:       m.VisaDocuments.Data(),
		UniversityChoices:   make([]UniversityChoiceResponse, 0, len(m.UniversityChoices)),
		StatusLogs:          make([]StatusLogResponse, 0, len(m.StatusLogs)),
		OverviewNotes:       make([]OverviewNoteResponse, 0, len(m.OverviewNotes)),
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}

	if h != nil && h.Populate.Counselor && m.AssignedCounselorID != nil {
		if u, ok := h.user(*m.AssignedCounselorID); ok {
			resp.AssignedCounselor = &u
		}
	}
	if h != nil && h.Populate.Creator {
		if u, ok := h.user(m.CreatedBy); ok {
			resp.CreatedBy = &u
		}
	}

	for _, ch := range m.UniversityChoices {
		cr := UniversityChoiceResponse{UniversityChoice: ch, Notes: make([]UniversityNoteResponse, 0, len(ch.Notes))}
		for _, n := range ch.Notes {
			cr.Notes = append(cr.Notes, UniversityNoteResponse{UniversityNote: n, CreatedByName: h.authorName(n.CreatedBy)})
		}
		resp.UniversityChoices = append(resp.UniversityChoices, cr)
	}
	for _, l := range m.StatusLogs {
		resp.StatusLogs = append(resp.StatusLogs, StatusLogResponse{StatusLog: l, ChangedByName: h.authorName(l.ChangedBy)})
	}
	for _, n := range m.OverviewNotes {
		resp.OverviewNotes = append(resp.OverviewNotes, OverviewNoteResponse{OverviewNote: n, CreatedByName: h.authorName(n.CreatedBy)})
	}
	return resp
}

func ToStudentResponses(rows []model.StudentModel, h *Hydration) []StudentResponse {
	out := make([]StudentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToStudentResponse(r, h))
	}
	return out
}
