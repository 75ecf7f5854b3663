// file: internals/features/students/students/service/application_engine.go
package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/students/model"
	helper "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers"
)

// ApplyStatusChange moves one choice to next. It reports false, and leaves s
// untouched, when next equals the current status. On a real change it appends
// the status log and the automatic note, then refreshes UpdatedAt.
func ApplyStatusChange(s *model.StudentModel, index int, next model.ApplicationStatus, actor uuid.UUID, now time.Time) (bool, error) {
	if !s.HasChoice(index) {
		return false, outOfRange(index, len(s.UniversityChoices))
	}
	if !next.Valid() {
		return false, helper.Errorf(helper.ErrValidation, "Invalid application status %q", next)
	}

	choice := &s.UniversityChoices[index]
	prev := choice.ApplicationStatus
	if prev == next {
		return false, nil
	}

	s.StatusLogs = append(s.StatusLogs, model.StatusLog{
		PreviousStatus:        &prev,
		NewStatus:             next,
		Timestamp:             now,
		ChangedBy:             actor,
		UniversityChoiceIndex: index,
	})
	s.OverviewNotes = append(s.OverviewNotes, statusNote(choice.UniversityName, &prev, next, index, actor, now))
	choice.ApplicationStatus = next
	s.UpdatedAt = now
	return true, nil
}

// InitializeApplications treats creation as a transition from no state:
// every choice starts at documents pending with one log and one note each.
func InitializeApplications(s *model.StudentModel, actor uuid.UUID, now time.Time) {
	for i := range s.UniversityChoices {
		ch := &s.UniversityChoices[i]
		ch.ApplicationStatus = model.StatusDocumentsPending
		if ch.Notes == nil {
			ch.Notes = []model.UniversityNote{}
		}
		s.StatusLogs = append(s.StatusLogs, model.StatusLog{
			PreviousStatus:        nil,
			NewStatus:             model.StatusDocumentsPending,
			Timestamp:             now,
			ChangedBy:             actor,
			UniversityChoiceIndex: i,
		})
		s.OverviewNotes = append(s.OverviewNotes, statusNote(ch.UniversityName, nil, model.StatusDocumentsPending, i, actor, now))
	}
	s.UpdatedAt = now
}

// AddUniversityNote appends a user note to one choice. Status logs are not touched.
func AddUniversityNote(s *model.StudentModel, index int, title, description *string, actor uuid.UUID, now time.Time) error {
	if !s.HasChoice(index) {
		return outOfRange(index, len(s.UniversityChoices))
	}
	ch := &s.UniversityChoices[index]
	ch.Notes = append(ch.Notes, model.UniversityNote{
		Title:       trimmed(title),
		Description: trimmed(description),
		CreatedBy:   actor,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	s.UpdatedAt = now
	return nil
}

// AddOverviewNote appends a manual student level note.
func AddOverviewNote(s *model.StudentModel, title, content *string, actor uuid.UUID, now time.Time) {
	s.OverviewNotes = append(s.OverviewNotes, model.OverviewNote{
		Type:                   model.NoteManual,
		Title:                  trimmed(title),
		Content:                trimmed(content),
		CreatedBy:              actor,
		CreatedAt:              now,
		RelatedUniversityIndex: nil,
	})
	s.UpdatedAt = now
}

func statusNote(university string, prev *model.ApplicationStatus, next model.ApplicationStatus, index int, actor uuid.UUID, now time.Time) model.OverviewNote {
	var title, content string
	if prev == nil {
		title = fmt.Sprintf("Application started: %s", university)
		content = fmt.Sprintf("Application for %s created with status '%s'.", university, next)
	} else {
		title = fmt.Sprintf("Status updated: %s", university)
		content = fmt.Sprintf("Application status for %s changed from '%s' to '%s'.", university, *prev, next)
	}
	idx := index
	return model.OverviewNote{
		Type:                   model.NoteAutomatic,
		Title:                  &title,
		Content:                &content,
		CreatedBy:              actor,
		CreatedAt:              now,
		RelatedUniversityIndex: &idx,
	}
}

func outOfRange(index, n int) error {
	if n == 0 {
		return helper.Errorf(helper.ErrOutOfRange, "University choice index %d is out of range", index)
	}
	return helper.Errorf(helper.ErrOutOfRange, "University choice index %d is out of range (0..%d)", index, n-1)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
