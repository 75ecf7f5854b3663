package dto

// FunnelSegment is one bucket of a distribution.
type FunnelSegment struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type FunnelData map[string]FunnelSegment

type VisaProcessFunnel struct {
	StatusDistribution FunnelData `json:"status_distribution"`
	ProcessSteps       FunnelData `json:"process_steps"`
}

type FunnelReport struct {
	TotalStudents               int               `json:"total_students"`
	TotalUniversityChoices      int               `json:"total_university_choices"`
	ApplicationPathFunnel       FunnelData        `json:"application_path_funnel"`
	OverallStageFunnel          FunnelData        `json:"overall_stage_funnel"`
	DocumentCompletionFunnel    FunnelData        `json:"document_completion_funnel"`
	UniversityApplicationFunnel FunnelData        `json:"university_application_funnel"`
	VisaProcessFunnel           VisaProcessFunnel `json:"visa_process_funnel"`
	CountryDistribution         FunnelData        `json:"country_distribution"`
	CounselorDistribution       FunnelData        `json:"counselor_distribution"`
}

// EmptyReport has every map allocated so it encodes as {} rather than null.
func EmptyReport() FunnelReport {
	return FunnelReport{
		ApplicationPathFunnel:       FunnelData{},
		OverallStageFunnel:          FunnelData{},
		DocumentCompletionFunnel:    FunnelData{},
		UniversityApplicationFunnel: FunnelData{},
		VisaProcessFunnel: VisaProcessFunnel{
			StatusDistribution: FunnelData{},
			ProcessSteps:       FunnelData{},
		},
		CountryDistribution:   FunnelData{},
		CounselorDistribution: FunnelData{},
	}
}
