package dto

// AssignmentRequest is the payload for create and update. The JSON
// decoder is configured to reject unknown fields, so exactly these four
// keys are accepted.
type AssignmentRequest struct {
	Name          string `json:"name" binding:"required"`
	Points        int    `json:"points" binding:"required,min=1,max=100"`
	NumOfAttempts int    `json:"num_of_attempts" binding:"required,min=1,max=100"`
	Deadline      string `json:"deadline" binding:"required"`
}
