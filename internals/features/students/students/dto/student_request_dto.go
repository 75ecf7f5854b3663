// file: internals/features/students/students/dto/student_request_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/students/model"
	helper "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers"
)

/* =======================================================
   SUB-DOCUMENT INPUTS
   ======================================================= */

// UniversityChoiceRequest is one target university. Any application_status
// sent by the client is ignored; statuses only move through the
// application-status endpoint.
type UniversityChoiceRequest struct {
	UniversityName          string  `json:"university_name" validate:"required,min=3,max=100"`
	CourseName              string  `json:"course_name" validate:"required,min=3,max=100"`
	CourseLink              *string `json:"course_link" validate:"omitempty,url"`
	IntakeMonth             string  `json:"intake_month" validate:"required,min=3,max=50"`
	ApplicationStatus       *string `json:"application_status,omitempty"`
	OfferType               string  `json:"offer_type" validate:"omitempty,oneof=Conditional Unconditional"`
	ApplicationSubmitted    bool    `json:"application_submitted"`
	AdditionalDocsRequested bool    `json:"additional_docs_requested"`
	LoaCasReceived          bool    `json:"loa_cas_received"`
	LoanProcessStarted      bool    `json:"loan_process_started"`
	FeePaymentCompleted     bool    `json:"fee_payment_completed"`
}

func (r *UniversityChoiceRequest) Normalize() {
	r.UniversityName = strings.TrimSpace(r.UniversityName)
	r.CourseName = strings.TrimSpace(r.CourseName)
	r.IntakeMonth = strings.TrimSpace(r.IntakeMonth)
	if r.CourseLink != nil {
		v := strings.TrimSpace(*r.CourseLink)
		if v == "" {
			r.CourseLink = nil
		} else {
			r.CourseLink = &v
		}
	}
}

// ToChoice builds the choice without status and notes; callers decide those.
func (r UniversityChoiceRequest) ToChoice() model.UniversityChoice {
	offer := model.OfferType(r.OfferType)
	if offer == "" {
		offer = model.OfferConditional
	}
	return model.UniversityChoice{
		UniversityName:          r.UniversityName,
		CourseName:              r.CourseName,
		CourseLink:              r.CourseLink,
		IntakeMonth:             r.IntakeMonth,
		OfferType:               offer,
		ApplicationSubmitted:    r.ApplicationSubmitted,
		AdditionalDocsRequested: r.AdditionalDocsRequested,
		LoaCasReceived:          r.LoaCasReceived,
		LoanProcessStarted:      r.LoanProcessStarted,
		FeePaymentCompleted:     r.FeePaymentCompleted,
		Notes:                   []model.UniversityNote{},
	}
}

// DocumentsRequest only touches the flags that are present.
type DocumentsRequest struct {
	Passport    *bool `json:"passport"`
	Marksheets  *bool `json:"marksheets"`
	EnglishExam *bool `json:"english_exam"`
	SOP         *bool `json:"sop"`
	LOR         *bool `json:"lor"`
	Resume      *bool `json:"resume"`
}

func (r DocumentsRequest) MergeInto(d model.Documents) model.Documents {
	setBool(&d.Passport, r.Passport)
	setBool(&d.Marksheets, r.Marksheets)
	setBool(&d.EnglishExam, r.EnglishExam)
	setBool(&d.SOP, r.SOP)
	setBool(&d.LOR, r.LOR)
	setBool(&d.Resume, r.Resume)
	return d
}

type VisaDocumentsRequest struct {
	Decision           *string `json:"decision" validate:"omitempty,oneof=Pending Accepted Rejected"`
	CounsellingStarted *bool   `json:"counselling_started"`
	DocumentsReceived  *bool   `json:"documents_received"`
	ApplicationFilled  *bool   `json:"application_filled"`
	InterviewScheduled *bool   `json:"interview_scheduled"`
}

func (r VisaDocumentsRequest) MergeInto(v model.VisaDocuments) model.VisaDocuments {
	if r.Decision != nil {
		v.Decision = model.VisaDecision(*r.Decision)
	}
	setBool(&v.CounsellingStarted, r.CounsellingStarted)
	setBool(&v.DocumentsReceived, r.DocumentsReceived)
	setBool(&v.ApplicationFilled, r.ApplicationFilled)
	setBool(&v.InterviewScheduled, r.InterviewScheduled)
	return v
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

/* =======================================================
   CREATE
   ======================================================= */

type CreateStudentRequest struct {
	FullName            string                    `json:"full_name" validate:"required,min=3,max=100"`
	EmailAddress        string                    `json:"email_address" validate:"required,email"`
	PhoneNumber         string                    `json:"phone_number" validate:"required,min=10,max=20"`
	DOB                 string                    `json:"dob" validate:"required,past_date"`
	TargetCountry       string                    `json:"target_country" validate:"required,min=2,max=50"`
	DegreeType          string                    `json:"degree_type" validate:"required,min=1,max=50"`
	ApplicationPath     string                    `json:"application_path" validate:"omitempty,oneof=Direct SI Eduwise"`
	AssignedCounselorID *string                   `json:"assigned_counselor_id" validate:"omitempty,uuid"`
	UniversityChoices   []UniversityChoiceRequest `json:"university_choices" validate:"required,min=1,max=5,dive"`
	Documents           *DocumentsRequest         `json:"documents"`
	VisaDocuments       *VisaDocumentsRequest     `json:"visa_documents"`
}

func (r *CreateStudentRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.EmailAddress = strings.ToLower(strings.TrimSpace(r.EmailAddress))
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	r.DOB = strings.TrimSpace(r.DOB)
	r.TargetCountry = strings.TrimSpace(r.TargetCountry)
	r.DegreeType = strings.TrimSpace(r.DegreeType)
	if r.ApplicationPath == "" {
		r.ApplicationPath = string(model.PathDirect)
	}
	if r.AssignedCounselorID != nil && strings.TrimSpace(*r.AssignedCounselorID) == "" {
		r.AssignedCounselorID = nil
	}
	for i := range r.UniversityChoices {
		r.UniversityChoices[i].Normalize()
	}
}

func (r CreateStudentRequest) CounselorID() *uuid.UUID {
	if r.AssignedCounselorID == nil {
		return nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*r.AssignedCounselorID))
	if err != nil {
		return nil
	}
	return &id
}

// ParseDOB expects a value that already passed past_date.
func ParseDOB(s string) (time.Time, error) {
	return time.Parse(helper.DateLayout, strings.TrimSpace(s))
}

/* =======================================================
   PATCH (tri-state)
   ======================================================= */

type PatchStudentRequest struct {
	FullName            Optional[string]                    `json:"full_name"`
	EmailAddress        Optional[string]                    `json:"email_address"`
	PhoneNumber         Optional[string]                    `json:"phone_number"`
	DOB                 Optional[string]                    `json:"dob"`
	TargetCountry       Optional[string]                    `json:"target_country"`
	DegreeType          Optional[string]                    `json:"degree_type"`
	ApplicationPath     Optional[string]                    `json:"application_path"`
	AssignedCounselorID Optional[NullableString]            `json:"assigned_counselor_id"`
	UniversityChoices   Optional[[]UniversityChoiceRequest] `json:"university_choices"`
	Documents           Optional[*DocumentsRequest]         `json:"documents"`
	VisaDocuments       Optional[*VisaDocumentsRequest]     `json:"visa_documents"`
}

func (p *PatchStudentRequest) Normalize() {
	trim := func(o *Optional[string]) {
		if o.Present {
			o.Value = strings.TrimSpace(o.Value)
		}
	}
	trim(&p.FullName)
	trim(&p.EmailAddress)
	trim(&p.PhoneNumber)
	trim(&p.DOB)
	trim(&p.TargetCountry)
	trim(&p.DegreeType)
	trim(&p.ApplicationPath)
	if p.EmailAddress.Present {
		p.EmailAddress.Value = strings.ToLower(p.EmailAddress.Value)
	}
	if p.AssignedCounselorID.Present && p.AssignedCounselorID.Value.Valid {
		p.AssignedCounselorID.Value.Value = strings.TrimSpace(p.AssignedCounselorID.Value.Value)
	}
	if p.UniversityChoices.Present {
		for i := range p.UniversityChoices.Value {
			p.UniversityChoices.Value[i].Normalize()
		}
	}
}

// Validate applies the create rules to every present key.
func (p *PatchStudentRequest) Validate(v *validator.Validate) map[string][]string {
	errs := map[string][]string{}
	check := func(field string, o Optional[string], tag string) {
		if !o.Present {
			return
		}
		if err := v.Var(o.Value, tag); err != nil {
			for _, msgs := range helper.ValidationErrors(err) {
				errs[field] = append(errs[field], msgs...)
			}
		}
	}
	check("full_name", p.FullName, "required,min=3,max=100")
	check("email_address", p.EmailAddress, "required,email")
	check("phone_number", p.PhoneNumber, "required,min=10,max=20")
	check("dob", p.DOB, "required,past_date")
	check("target_country", p.TargetCountry, "required,min=2,max=50")
	check("degree_type", p.DegreeType, "required,min=1,max=50")
	check("application_path", p.ApplicationPath, "required,oneof=Direct SI Eduwise")

	if p.AssignedCounselorID.Present && p.AssignedCounselorID.Value.Valid {
		if _, err := uuid.Parse(p.AssignedCounselorID.Value.Value); err != nil {
			errs["assigned_counselor_id"] = append(errs["assigned_counselor_id"], "must be a valid UUID or null")
		}
	}

	if p.UniversityChoices.Present {
		n := len(p.UniversityChoices.Value)
		if n < 1 || n > model.MaxUniversityChoices {
			errs["university_choices"] = append(errs["university_choices"], "must contain between 1 and 5 choices")
		}
		wrapper := struct {
			Choices []UniversityChoiceRequest `json:"university_choices" validate:"dive"`
		}{p.UniversityChoices.Value}
		if err := v.Struct(wrapper); err != nil {
			for k, msgs := range helper.ValidationErrors(err) {
				errs[k] = append(errs[k], msgs...)
			}
		}
	}
	if p.VisaDocuments.Present && p.VisaDocuments.Value != nil {
		if err := v.Struct(p.VisaDocuments.Value); err != nil {
			for k, msgs := range helper.ValidationErrors(err) {
				errs["visa_documents."+k] = append(errs["visa_documents."+k], msgs...)
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

/* =======================================================
   TRANSITION + NOTES
   ======================================================= */

type ApplicationStatusUpdateRequest struct {
	UniversityChoiceIndex *int   `json:"university_choice_index" validate:"required,min=0"`
	NewStatus             string `json:"new_status" validate:"required"`
}

type UniversityNoteCreateRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
}

func (r UniversityNoteCreateRequest) Empty() bool {
	return blank(r.Title) && blank(r.Description)
}

type OverviewNoteCreateRequest struct {
	Title   *string `json:"title" validate:"omitempty,max=200"`
	Content *string `json:"content" validate:"omitempty,max=5000"`
}

func (r OverviewNoteCreateRequest) Empty() bool {
	return blank(r.Title) && blank(r.Content)
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

/* =======================================================
   LIST QUERY
   ======================================================= */

type PopulateOptions struct {
	Counselor   bool
	Creator     bool
	NoteAuthors bool
}

func (p PopulateOptions) Any() bool {
	return p.Counselor || p.Creator || p.NoteAuthors
}

type ListStudentsQuery struct {
	Skip          int
	Limit         int
	NameSearch    string
	CountrySearch string
	Populate      PopulateOptions
}
