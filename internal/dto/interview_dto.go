package dto

import "github.com/fadilmartias/internhub/internal/model"

type SaveInterviewResultDTO struct {
	ConversationHistory []model.Message `json:"conversation_history" validate:"dive"`
	Summary             string          `json:"summary" validate:"required"`
}

type InterviewCoachDTO struct {
	InternshipID        string          `json:"internship_id" validate:"required"`
	StudentEmail        string          `json:"student_email" validate:"required,email"`
	ConversationHistory []model.Message `json:"conversation_history" validate:"dive"`
	UserMessage         string          `json:"user_message" validate:"required"`
}

// InterviewCoachReply carries the coach's turn and the transcript with the
// student's message and the reply appended.
type InterviewCoachReply struct {
	AIResponse          string          `json:"ai_response"`
	ConversationHistory []model.Message `json:"conversation_history"`
}

type InterviewSummaryDTO struct {
	InternshipID        string          `json:"internship_id" validate:"required"`
	StudentEmail        string          `json:"student_email" validate:"required,email"`
	ConversationHistory []model.Message `json:"conversation_history" validate:"dive"`
}
