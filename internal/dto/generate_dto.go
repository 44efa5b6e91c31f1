package dto

type GenerateCoverLetterRequest struct {
	JobTitle       string `json:"job_title" validate:"required"`
	JobDescription string `json:"job_description" validate:"required"`
	ClientName     string `json:"client_name"`
	Category       string `json:"category"`
}

// GenerateStreamChunk is one SSE payload line emitted while the model writes.
type GenerateStreamChunk struct {
	Content string `json:"content"`
}
