package submissions

// CreateSubmissionRequest is an inbound onboarding form. Name is optional;
// when the email matches no client, a new one is registered under the name
// (or the email's local part when the name is blank).
type CreateSubmissionRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Name        string `json:"name"`
	SubmittedAt string `json:"submitted_at"`
}
