package model

// ApplicationStatus is the per-choice pipeline stage.
// Any value may follow any other; analytics reads them as a ladder.
type ApplicationStatus string

const (
	StatusDocumentsPending   ApplicationStatus = "documents pending"
	StatusDocumentsReceived  ApplicationStatus = "documents received"
	StatusApplicationPending ApplicationStatus = "application pending"
	StatusApplicationFiled   ApplicationStatus = "application filed"
	StatusConditionalOffer   ApplicationStatus = "conditional offer received"
	StatusUnconditionalOffer ApplicationStatus = "unconditional offer received"
	StatusUniFinalized       ApplicationStatus = "Uni finalized"
)

var ApplicationStatuses = []ApplicationStatus{
	StatusDocumentsPending,
	StatusDocumentsReceived,
	StatusApplicationPending,
	StatusApplicationFiled,
	StatusConditionalOffer,
	StatusUnconditionalOffer,
	StatusUniFinalized,
}

func (s ApplicationStatus) Valid() bool {
	for _, v := range ApplicationStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func (s ApplicationStatus) IsOffer() bool {
	return s == StatusConditionalOffer || s == StatusUnconditionalOffer
}

func (s ApplicationStatus) IsApplicationStage() bool {
	return s == StatusApplicationPending || s == StatusApplicationFiled
}

type ApplicationPath string

const (
	PathDirect  ApplicationPath = "Direct"
	PathSI      ApplicationPath = "SI"
	PathEduwise ApplicationPath = "Eduwise"
)

var ApplicationPaths = []ApplicationPath{PathDirect, PathSI, PathEduwise}

type OfferType string

const (
	OfferConditional   OfferType = "Conditional"
	OfferUnconditional OfferType = "Unconditional"
)

type VisaDecision string

const (
	VisaPending  VisaDecision = "Pending"
	VisaAccepted VisaDecision = "Accepted"
	VisaRejected VisaDecision = "Rejected"
)

var VisaDecisions = []VisaDecision{VisaPending, VisaAccepted, VisaRejected}

type NoteType string

const (
	NoteManual    NoteType = "manual"
	NoteAutomatic NoteType = "automatic"
)
