package dto

// SubmitRequest carries the submission payload. The URL is validated in
// the service so workflow failures surface in a fixed order.
type SubmitRequest struct {
	SubmissionURL string `json:"submission_url"`
}
