package model

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content"`
}

// InterviewResult is unique per (InternshipID, StudentEmail).
type InterviewResult struct {
	InternshipID        string    `json:"internship_id"`
	StudentEmail        string    `json:"student_email"`
	ConversationHistory []Message `json:"conversation_history"`
	Summary             string    `json:"summary"`
	CompletedAt         time.Time `json:"completed_at"`
}
