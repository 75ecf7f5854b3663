// file: internals/features/students/students/model/student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const MaxUniversityChoices = 5

// Documents is the student level checklist, independent of any choice.
type Documents struct {
	Passport    bool `json:"passport"`
	Marksheets  bool `json:"marksheets"`
	EnglishExam bool `json:"english_exam"`
	SOP         bool `json:"sop"`
	LOR         bool `json:"lor"`
	Resume      bool `json:"resume"`
}

type VisaDocuments struct {
	Decision           VisaDecision `json:"decision"`
	CounsellingStarted bool         `json:"counselling_started"`
	DocumentsReceived  bool         `json:"documents_received"`
	ApplicationFilled  bool         `json:"application_filled"`
	InterviewScheduled bool         `json:"interview_scheduled"`
}

func DefaultVisaDocuments() VisaDocuments {
	return VisaDocuments{Decision: VisaPending}
}

type UniversityNote struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UniversityChoice struct {
	UniversityName          string            `json:"university_name"`
	CourseName              string            `json:"course_name"`
	CourseLink              *string           `json:"course_link"`
	IntakeMonth             string            `json:"intake_month"`
	ApplicationStatus       ApplicationStatus `json:"application_status"`
	OfferType               OfferType         `json:"offer_type"`
	ApplicationSubmitted    bool              `json:"application_submitted"`
	AdditionalDocsRequested bool              `json:"additional_docs_requested"`
	LoaCasReceived          bool              `json:"loa_cas_received"`
	LoanProcessStarted      bool              `json:"loan_process_started"`
	FeePaymentCompleted     bool              `json:"fee_payment_completed"`
	Notes                   []UniversityNote  `json:"notes"`
}

// StatusLog is one application status change. Never edited once appended.
type StatusLog struct {
	PreviousStatus        *ApplicationStatus `json:"previous_status"`
	NewStatus             ApplicationStatus  `json:"new_status"`
	Timestamp             time.Time          `json:"timestamp"`
	ChangedBy             uuid.UUID          `json:"changed_by"`
	UniversityChoiceIndex int                `json:"university_choice_index"`
}

type OverviewNote struct {
	Type                   NoteType  `json:"type"`
	Title                  *string   `json:"title"`
	Content                *string   `json:"content"`
	CreatedBy              uuid.UUID `json:"created_by"`
	CreatedAt              time.Time `json:"created_at"`
	RelatedUniversityIndex *int      `json:"related_university_index"`
}

// StudentModel is the whole aggregate. Sub-documents live in JSON columns so
// a single Save writes the student, its checklist and its audit trail together.
type StudentModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	FullName        string          `gorm:"size:100;not null" json:"full_name"`
	EmailAddress    string          `gorm:"size:255;not null" json:"email_address"`
	PhoneNumber     string          `gorm:"size:20;not null" json:"phone_number"`
	DateOfBirth     time.Time       `gorm:"column:dob;not null" json:"dob"`
	TargetCountry   string          `gorm:"size:50;not null;index" json:"target_country"`
	DegreeType      string          `gorm:"size:50;not null" json:"degree_type"`
	ApplicationPath ApplicationPath `gorm:"size:20;not null" json:"application_path"`

	CreatedBy           uuid.UUID  `gorm:"type:uuid;not null;index" json:"created_by"`
	AssignedCounselorID *uuid.UUID `gorm:"type:uuid;index" json:"assigned_counselor_id"`

	Documents         datatypes.JSONType[Documents]         `gorm:"not null" json:"documents"`
	VisaDocuments     datatypes.JSONType[VisaDocuments]     `gorm:"not null" json:"visa_documents"`
	UniversityChoices datatypes.JSONSlice[UniversityChoice] `gorm:"not null" json:"university_choices"`
	StatusLogs        datatypes.JSONSlice[StatusLog]        `gorm:"not null" json:"status_logs"`
	OverviewNotes     datatypes.JSONSlice[OverviewNote]     `gorm:"not null" json:"overview_notes"`

	// Timestamps come from the service clock, not from gorm.
	CreatedAt time.Time `gorm:"autoCreateTime:false;not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false;not null" json:"updated_at"`
}

func (StudentModel) TableName() string {
	return "students"
}

func (s *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// BeforeSave keeps the JSON columns non-null.
func (s *StudentModel) BeforeSave(tx *gorm.DB) error {
	if s.UniversityChoices == nil {
		s.UniversityChoices = datatypes.JSONSlice[UniversityChoice]{}
	}
	for i := range s.UniversityChoices {
		if s.UniversityChoices[i].Notes == nil {
			s.UniversityChoices[i].Notes = []UniversityNote{}
		}
	}
	if s.StatusLogs == nil {
		s.StatusLogs = datatypes.JSONSlice[StatusLog]{}
	}
	if s.OverviewNotes == nil {
		s.OverviewNotes = datatypes.JSONSlice[OverviewNote]{}
	}
	if s.VisaDocuments.Data().Decision == "" {
		v := s.VisaDocuments.Data()
		v.Decision = VisaPending
		s.VisaDocuments = datatypes.NewJSONType(v)
	}
	return nil
}

func (s *StudentModel) HasChoice(index int) bool {
	return index >= 0 && index < len(s.UniversityChoices)
}
