package models

// Status tells callers whether a result carries real data.
//
// Collection and analysis failures do not abort the pipeline: they still
// produce renderable text with the error embedded in it, and mark the result
// StatusDegraded. Inspect Status rather than searching the text for markers.
type Status int

const (
	StatusOK Status = iota
	StatusDegraded
	// StatusFailed means no result was produced: the request was cancelled
	// or ran past its deadline. The HTTP API reports it alongside a 500.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDegraded:
		return "degraded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Worst returns the more severe of two statuses.
func (s Status) Worst(other Status) Status {
	if other > s {
		return other
	}
	return s
}

// Analysis is the raw model reply, or a synthetic one when the call failed.
type Analysis struct {
	Text   string
	Status Status
	Err    error
}

// AnalysisResult is what the pipeline returns for one repository.
type AnalysisResult struct {
	Repo        RepositoryRef `json:"repo"`
	Description string        `json:"analysis"`
	Services    []string      `json:"services_array"`
	Status      Status        `json:"status"`
}
