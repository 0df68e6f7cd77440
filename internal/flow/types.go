package flow

import (
	"github.com/fadilmartias/internhub/internal/model"
	"github.com/fadilmartias/internhub/internal/service"
)

type InterviewCoachInput struct {
	StudentProfile      string
	SelectedInternship  string
	ConversationHistory []model.Message
	UserMessage         string
	CustomQuestions     string
}

type InterviewCoachOutput struct {
	AIResponse string `json:"ai_response" validate:"required"`
}

type SummarizeInterviewInput struct {
	StudentProfile      string
	SelectedInternship  string
	ConversationHistory []model.Message
}

type SummarizeInterviewOutput struct {
	Summary string `json:"summary" validate:"required"`
}

// AnalyzeResumeInput sends Resume as inline media unless ResumeText already
// holds the extracted text.
type AnalyzeResumeInput struct {
	Resume     service.Media
	ResumeText string
}

type AnalyzeResumeOutput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Education string `json:"education"`
	Skills    string `json:"skills"`
	About     string `json:"about"`
}

type GenerateCoverLetterInput struct {
	JobDescription     string
	ProfileInformation string
	Tone               string
}

type GenerateCoverLetterOutput struct {
	CoverLetter string `json:"cover_letter" validate:"required"`
}

type RankApplicantsInput struct {
	JobDescription  string
	StudentProfiles []model.StudentProfile
}

type RankedApplicant struct {
	Email         string  `json:"email" validate:"required"`
	Name          string  `json:"name"`
	Score         float64 `json:"score" validate:"gte=0,lte=100"`
	Justification string  `json:"justification"`
}

type RankApplicantsOutput struct {
	RankedApplicants []RankedApplicant `json:"ranked_applicants" validate:"dive"`
}

type RankInternshipsInput struct {
	StudentProfile string
	Internships    []model.Internship
}

type InternshipRecommendation struct {
	ID            string `json:"id" validate:"required"`
	Justification string `json:"justification"`
}

type RankInternshipsOutput struct {
	Recommendations []InternshipRecommendation `json:"recommendations" validate:"dive"`
}

type AnalyzeApplicantPoolInput struct {
	StudentProfiles []model.StudentProfile
}

type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count" validate:"gte=0"`
}

type UniversityCount struct {
	University string `json:"university"`
	Count      int    `json:"count" validate:"gte=0"`
}

type AnalyzeApplicantPoolOutput struct {
	TopSkills              []SkillCount      `json:"top_skills" validate:"dive"`
	UniversityDistribution []UniversityCount `json:"university_distribution" validate:"dive"`
}

type MatchInternship struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	RequiredSkills []string `json:"required_skills"`
	Location       string   `json:"location"`
}

type MatchStudentsInput struct {
	Internship      MatchInternship
	StudentProfiles []model.StudentProfile
}

type MatchedStudent struct {
	Name                   string   `json:"name"`
	Email                  string   `json:"email" validate:"required"`
	MatchScore             float64  `json:"match_score" validate:"gte=0,lte=100"`
	SkillsMatched          []string `json:"skills_matched"`
	Justification          string   `json:"justification"`
	SuggestedInviteMessage string   `json:"suggested_invite_message"`
}

type MatchStudentsOutput struct {
	MatchedStudents []MatchedStudent `json:"matched_students" validate:"dive"`
}

type OptimizeResumeInput struct {
	StudentProfile string
	JobDescription string
}

type SuggestedImprovement struct {
	OriginalText  string `json:"original_text"`
	SuggestedText string `json:"suggested_text" validate:"required"`
	Reasoning     string `json:"reasoning"`
}

type OptimizeResumeOutput struct {
	OverallFeedback       string                 `json:"overall_feedback" validate:"required"`
	SuggestedImprovements []SuggestedImprovement `json:"suggested_improvements" validate:"dive"`
	MissingKeywords       []string               `json:"missing_keywords"`
}

type CareerPathInput struct {
	StudentProfile string
	CareerGoal     string
}

type RoadmapStep struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	ActionItems []string `json:"action_items"`
}

type CareerPathOutput struct {
	Roadmap []RoadmapStep `json:"roadmap" validate:"min=1,dive"`
}

type HiringManagerInput struct {
	StudentProfile string
	JobDescription string
}

type KeywordAnalysis struct {
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
	AnalysisSummary string   `json:"analysis_summary"`
}

type HiringManagerOutput struct {
	FirstImpression    string          `json:"first_impression" validate:"required"`
	KeywordAnalysis    KeywordAnalysis `json:"keyword_analysis"`
	PredictedQuestions []string        `json:"predicted_questions"`
}
