package dto

type CreateInternshipDTO struct {
	Title               string   `json:"title" validate:"required"`
	Company             string   `json:"company" validate:"required"`
	Location            string   `json:"location" validate:"required"`
	Domain              string   `json:"domain" validate:"required"`
	Stipend             string   `json:"stipend" validate:"required"`
	Duration            string   `json:"duration" validate:"required"`
	Description         string   `json:"description" validate:"required"`
	Skills              []string `json:"skills" validate:"min=1,dive,required"`
	Responsibilities    []string `json:"responsibilities,omitempty"`
	Perks               []string `json:"perks,omitempty"`
	CustomQuestions     string   `json:"custom_questions,omitempty"`
	IsInterviewRequired bool     `json:"is_interview_required"`
}

type ApplyStatusDTO struct {
	Applied bool `json:"applied"`
}

type ListInternshipsQuery struct {
	Company  string `query:"company"`
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
}
