// file: internals/features/students/analytics/service/funnel.go
package service

import (
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/analytics/dto"
	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/students/model"
)

const (
	StageFinalized          = "Finalized"
	StageVisaPhase          = "Visa Phase"
	StageOfferReceived      = "Offer Received"
	StageApplicationPhase   = "Application Phase"
	StageDocumentCollection = "Document Collection"

	Unassigned = "Unassigned"
	Unknown    = "Unknown"
)

// OverallStage picks the highest stage a student has reached, checked in order.
func OverallStage(s model.StudentModel) string {
	var offer, applying bool
	for _, ch := range s.UniversityChoices {
		switch {
		case ch.ApplicationStatus == model.StatusUniFinalized:
			return StageFinalized
		case ch.ApplicationStatus.IsOffer():
			offer = true
		case ch.ApplicationStatus.IsApplicationStage():
			applying = true
		}
	}
	switch {
	case s.VisaDocuments.Data().CounsellingStarted:
		return StageVisaPhase
	case offer:
		return StageOfferReceived
	case applying:
		return StageApplicationPhase
	default:
		return StageDocumentCollection
	}
}

// Percent rounds 100*count/total to one decimal; a zero total yields 0.
func Percent(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(1000*float64(count)/float64(total)) / 10
}

type counter struct {
	counts map[string]int
}

func newCounter() *counter { return &counter{counts: map[string]int{}} }

func (c *counter) add(key string) { c.counts[key]++ }

// seed makes key appear even when its count stays zero.
func (c *counter) seed(key string) {
	if _, ok := c.counts[key]; !ok {
		c.counts[key] = 0
	}
}

func (c *counter) data(total int) dto.FunnelData {
	out := make(dto.FunnelData, len(c.counts))
	for k, n := range c.counts {
		out[k] = dto.FunnelSegment{Count: n, Percentage: Percent(n, total)}
	}
	return out
}

// Compute builds the report over students. counselorNames maps assigned
// counselor ids to display names; ids missing from it count as Unassigned.
func Compute(students []model.StudentModel, counselorNames map[uuid.UUID]string) dto.FunnelReport {
	report := dto.EmptyReport()
	total := len(students)
	if total == 0 {
		return report
	}

	paths := newCounter()
	stages := newCounter()
	docs := newCounter()
	choices := newCounter()
	visaStatus := newCounter()
	visaSteps := newCounter()
	countries := newCounter()
	counselors := newCounter()

	for _, k := range []string{"passport", "marksheets", "english_exam", "sop", "lor", "resume"} {
		docs.seed(k)
	}
	for _, k := range []string{"counselling_started", "documents_received", "application_filled", "interview_scheduled"} {
		visaSteps.seed(k)
	}

	totalChoices := 0
	for _, s := range students {
		paths.add(labelOr(string(s.ApplicationPath), string(model.PathDirect)))
		stages.add(OverallStage(s))

		d := s.Documents.Data()
		for k, done := range map[string]bool{
			"passport":     d.Passport,
			"marksheets":   d.Marksheets,
			"english_exam": d.EnglishExam,
			"sop":          d.SOP,
			"lor":          d.LOR,
			"resume":       d.Resume,
		} {
			if done {
				docs.add(k)
			}
		}

		v := s.VisaDocuments.Data()
		visaStatus.add(labelOr(string(v.Decision), string(model.VisaPending)))
		for k, done := range map[string]bool{
			"counselling_started": v.CounsellingStarted,
			"documents_received":  v.DocumentsReceived,
			"application_filled":  v.ApplicationFilled,
			"interview_scheduled": v.InterviewScheduled,
		} {
			if done {
				visaSteps.add(k)
			}
		}

		for _, ch := range s.UniversityChoices {
			choices.add(string(ch.ApplicationStatus))
			totalChoices++
		}

		countries.add(labelOr(s.TargetCountry, Unknown))

		name := Unassigned
		if s.AssignedCounselorID != nil {
			if n, ok := counselorNames[*s.AssignedCounselorID]; ok && strings.TrimSpace(n) != "" {
				name = n
			}
		}
		counselors.add(name)
	}

	report.TotalStudents = total
	report.TotalUniversityChoices = totalChoices
	report.ApplicationPathFunnel = paths.data(total)
	report.OverallStageFunnel = stages.data(total)
	report.DocumentCompletionFunnel = docs.data(total)
	report.UniversityApplicationFunnel = choices.data(totalChoices)
	report.VisaProcessFunnel = dto.VisaProcessFunnel{
		StatusDistribution: visaStatus.data(total),
		ProcessSteps:       visaSteps.data(total),
	}
	report.CountryDistribution = countries.data(total)
	report.CounselorDistribution = counselors.data(total)
	return report
}

func labelOr(s, fallback string) string {
	if v := strings.TrimSpace(s); v != "" {
		return v
	}
	return fallback
}
