package types

// Processing status values carried by the envelope.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Web scraping status values.
const (
	ScrapeSuccess = "success"
	ScrapeSkipped = "skipped"
	ScrapeFailed  = "failed"
)

// Envelope is the uniform result returned by the pipeline for every
// invocation, success or failure. The embedded record flattens into the same
// JSON object, matching the process-audio response the form expects.
type Envelope struct {
	Success           bool   `json:"success"`
	ProcessingStatus  string `json:"processing_status"`
	Transcription     string `json:"transcription"`
	Error             string `json:"error,omitempty"`
	WebScrapingStatus string `json:"web_scraping_status"`

	EquipmentRecord

	FieldsPopulated int   `json:"fields_populated"`
	DurationMs      int64 `json:"duration_ms"`
}

// ErrorEnvelope builds the failure shape: no partial record fields, only the
// status, message and whatever transcription was produced before the failure.
func ErrorEnvelope(transcription, msg, scrapeStatus string) Envelope {
	return Envelope{
		Success:           false,
		ProcessingStatus:  StatusError,
		Transcription:     transcription,
		Error:             msg,
		WebScrapingStatus: scrapeStatus,
	}
}
