package dto

type CoverLetterDTO struct {
	InternshipID string `json:"internship_id" validate:"required"`
	StudentEmail string `json:"student_email" validate:"required,email"`
	Tone         string `json:"tone" validate:"omitempty,oneof=formal informal enthusiastic"`
}

// JobReviewDTO feeds the resume optimizer and the hiring manager simulator.
// JobDescription wins over InternshipID when both are set.
type JobReviewDTO struct {
	StudentEmail   string `json:"student_email" validate:"required,email"`
	InternshipID   string `json:"internship_id" validate:"required_without=JobDescription"`
	JobDescription string `json:"job_description"`
}

type CareerPathDTO struct {
	StudentEmail string `json:"student_email" validate:"required,email"`
	CareerGoal   string `json:"career_goal" validate:"required"`
}

type AnalyzeResumeDTO struct {
	ResumeDataURI string `json:"resume_data_uri" validate:"required"`
}
