package flow

import (
	"context"
	"log"
	"sort"

	"github.com/fadilmartias/internhub/internal/service"
	"google.golang.org/genai"
)

const (
	NoConversationSummary = "No conversation was recorded, so no summary could be generated."

	msgInterviewCoach     = "Failed to get a response from the AI coach. Please try again."
	msgSummarizeInterview = "The AI service failed to summarize the interview. Please check your API key and try again."
	msgAnalyzeResume      = "Could not analyze the resume. Please try again or upload a different file."
	msgCoverLetter        = "Failed to generate cover letter. Please try again."
	msgRankApplicants     = "The AI service failed to rank applicants. Please check your API key and try again."
	msgRankInternships    = "The AI service is currently unavailable. Please try again later."
	msgMatchStudents      = "Could not find suggested candidates at this time."
	msgOptimizeResume     = "Failed to run the optimizer. Please try again."
	msgCareerPath         = "Failed to run the simulation. Please check your API key and try again."
	msgHiringManager      = "Failed to run the simulation. Please try again."

	maxRecommendations = 5
)

// Flows holds every prompt flow bound to one generator.
type Flows struct {
	interviewCoach       *Flow[InterviewCoachInput, InterviewCoachOutput]
	summarizeInterview   *Flow[SummarizeInterviewInput, SummarizeInterviewOutput]
	analyzeResume        *Flow[AnalyzeResumeInput, AnalyzeResumeOutput]
	generateCoverLetter  *Flow[GenerateCoverLetterInput, GenerateCoverLetterOutput]
	rankApplicants       *Flow[RankApplicantsInput, RankApplicantsOutput]
	rankInternships      *Flow[RankInternshipsInput, RankInternshipsOutput]
	analyzeApplicantPool *Flow[AnalyzeApplicantPoolInput, AnalyzeApplicantPoolOutput]
	matchStudents        *Flow[MatchStudentsInput, MatchStudentsOutput]
	optimizeResume       *Flow[OptimizeResumeInput, OptimizeResumeOutput]
	careerPath           *Flow[CareerPathInput, CareerPathOutput]
	hiringManager        *Flow[HiringManagerInput, HiringManagerOutput]
}

func New(gen service.Generator) *Flows {
	return &Flows{
		interviewCoach: newFlow[InterviewCoachInput, InterviewCoachOutput](gen, "interviewCoach",
			object([]string{"ai_response"}, map[string]*genai.Schema{
				"ai_response": str("The AI Interview Coach response."),
			})),
		summarizeInterview: newFlow[SummarizeInterviewInput, SummarizeInterviewOutput](gen, "summarizeInterview",
			object([]string{"summary"}, map[string]*genai.Schema{
				"summary": str("A detailed summary of the student's interview performance, including strengths, weaknesses, and suggestions for improvement. Format this as markdown, using headings, bold text, and bullet points."),
			})),
		analyzeResume: newFlow[AnalyzeResumeInput, AnalyzeResumeOutput](gen, "analyzeResume",
			object([]string{"name", "email", "education", "skills", "about"}, map[string]*genai.Schema{
				"name":      str("The full name of the person from the resume."),
				"email":     str("The email address from the resume."),
				"education": str("The education section from the resume, summarized as a single string."),
				"skills":    str("A comma-separated list of skills extracted from the resume."),
				"about":     str("A professional summary, objective, or \"about me\" section from the resume."),
			})).withMedia(resumeMedia),
		generateCoverLetter: newFlow[GenerateCoverLetterInput, GenerateCoverLetterOutput](gen, "generateCoverLetter",
			object([]string{"cover_letter"}, map[string]*genai.Schema{
				"cover_letter": str("The generated cover letter."),
			})),
		rankApplicants: newFlow[RankApplicantsInput, RankApplicantsOutput](gen, "rankApplicants",
			object([]string{"ranked_applicants"}, map[string]*genai.Schema{
				"ranked_applicants": array("A list of all applicants, ranked from highest score to lowest.",
					object([]string{"email", "name", "score", "justification"}, map[string]*genai.Schema{
						"email":         str("The student's email, to be used as a unique identifier."),
						"name":          str("The student's full name."),
						"score":         num("A match score from 0 to 100, representing how well the student fits the job description."),
						"justification": str("A concise, 1-2 sentence explanation for the score, highlighting key strengths or weaknesses."),
					})),
			})),
		rankInternships: newFlow[RankInternshipsInput, RankInternshipsOutput](gen, "rankInternships",
			object([]string{"recommendations"}, map[string]*genai.Schema{
				"recommendations": array("A ranked list of the top 5 recommended internships for the student.",
					object([]string{"id", "justification"}, map[string]*genai.Schema{
						"id":            str("The ID of the recommended internship."),
						"justification": str("A 1-2 sentence explanation of why this internship is a great fit for the student."),
					})),
			})),
		analyzeApplicantPool: newFlow[AnalyzeApplicantPoolInput, AnalyzeApplicantPoolOutput](gen, "analyzeApplicantPool",
			object([]string{"top_skills", "university_distribution"}, map[string]*genai.Schema{
				"top_skills": array("The 5 most frequently mentioned skills.",
					object([]string{"skill", "count"}, map[string]*genai.Schema{
						"skill": str("The consolidated skill name."),
						"count": integer("How many applicants list the skill."),
					})),
				"university_distribution": array("The 5 most common universities.",
					object([]string{"university", "count"}, map[string]*genai.Schema{
						"university": str("The university name only."),
						"count":      integer("How many applicants attended it."),
					})),
			})),
		matchStudents: newFlow[MatchStudentsInput, MatchStudentsOutput](gen, "matchStudents",
			object([]string{"matched_students"}, map[string]*genai.Schema{
				"matched_students": array("A ranked list of the top 10 student candidates for the internship.",
					object([]string{"name", "email", "match_score", "skills_matched", "justification", "suggested_invite_message"}, map[string]*genai.Schema{
						"name":                     str("The student's full name."),
						"email":                    str("The student's email, to be used as a unique ID."),
						"match_score":              num("A match score from 0 to 100, representing how well the student fits the internship."),
						"skills_matched":           array("Skills the student has that match the internship requirements.", str("")),
						"justification":            str("A short, 1-sentence justification for why this student is a good match."),
						"suggested_invite_message": str("A friendly, concise, and personalized message inviting the student to apply."),
					})),
			})),
		optimizeResume: newFlow[OptimizeResumeInput, OptimizeResumeOutput](gen, "optimizeResume",
			object([]string{"overall_feedback", "suggested_improvements", "missing_keywords"}, map[string]*genai.Schema{
				"overall_feedback": str("A brief, high-level summary of how the resume can be better tailored to the job description."),
				"suggested_improvements": array("2-3 concrete rewrites of weak sentences in the profile.",
					object([]string{"original_text", "suggested_text", "reasoning"}, map[string]*genai.Schema{
						"original_text":  str("The original sentence or bullet point."),
						"suggested_text": str("The rewritten, stronger version."),
						"reasoning":      str("Why the rewrite is better for this job."),
					})),
				"missing_keywords": array("Important skills or technologies from the job description missing from the profile.", str("")),
			})),
		careerPath: newFlow[CareerPathInput, CareerPathOutput](gen, "careerPathSimulator",
			object([]string{"roadmap"}, map[string]*genai.Schema{
				"roadmap": array("A step-by-step career roadmap, broken down into logical phases.",
					object([]string{"title", "description", "action_items"}, map[string]*genai.Schema{
						"title":        str("The title for this step or phase, e.g., 'Year 1: Foundational Skills'."),
						"description":  str("A summary of the focus for this step."),
						"action_items": array("Concrete, actionable steps for this phase.", str("")),
					})),
			})),
		hiringManager: newFlow[HiringManagerInput, HiringManagerOutput](gen, "hiringManagerSimulator",
			object([]string{"first_impression", "keyword_analysis", "predicted_questions"}, map[string]*genai.Schema{
				"first_impression": str("A brief, 30-second-scan style summary of the resume from a hiring manager's perspective. Be critical and direct."),
				"keyword_analysis": object([]string{"matched_keywords", "missing_keywords", "analysis_summary"}, map[string]*genai.Schema{
					"matched_keywords": array("Key skills from the job description present in the profile.", str("")),
					"missing_keywords": array("Important skills from the job description missing from the profile.", str("")),
					"analysis_summary": str("How well the profile keywords match the job description."),
				}),
				"predicted_questions": array("2-3 specific, pointed interview questions based on the profile and the job.", str("")),
			})),
	}
}

func resumeMedia(in AnalyzeResumeInput) []service.Media {
	if in.ResumeText != "" || len(in.Resume.Data) == 0 {
		return nil
	}
	return []service.Media{in.Resume}
}

func (f *Flows) InterviewCoach(ctx context.Context, in InterviewCoachInput) (InterviewCoachOutput, error) {
	out, err := f.interviewCoach.Run(ctx, in)
	if err != nil {
		log.Printf("[flow:interviewCoach] %v", err)
		return out, userError(msgInterviewCoach, err)
	}
	return out, nil
}

// SummarizeInterview skips the model call when nothing was said.
func (f *Flows) SummarizeInterview(ctx context.Context, in SummarizeInterviewInput) (SummarizeInterviewOutput, error) {
	if len(in.ConversationHistory) == 0 {
		return SummarizeInterviewOutput{Summary: NoConversationSummary}, nil
	}
	out, err := f.summarizeInterview.Run(ctx, in)
	if err != nil {
		log.Printf("[flow:summarizeInterview] %v", err)
		return out, userError(msgSummarizeInterview, err)
	}
	return out, nil
}

func (f *Flows) AnalyzeResume(ctx context.Context, in AnalyzeResumeInput) (AnalyzeResumeOutput, error) {
	out, err := f.analyzeResume.Run(ctx, in)
	if err != nil {
		log.Printf("[flow:analyzeResume] %v", err)
		return out, userError(msgAnalyzeResume, err)
	}
	return out, nil
}

func (f *Flows) GenerateCoverLetter(ctx context.Context, in GenerateCoverLetterInput) (GenerateCoverLetterOutput, error) {
	out, err := f.generateCoverLetter.Run(ctx, in)
	if err != nil {
		log.Printf("[flow:generateCoverLetter] %v", err)
		return out, userError(msgCoverLetter, err)
	}
	return out, nil
}

// RankApplicants returns applicants ordered by score, highest first.
func (f *Flows) RankApplicants(ctx context.Context, in RankApplicantsInput) (RankApplicantsOutput, error) {
	if len(in.StudentProfiles) == 0 {
		return RankApplicantsOutput{RankedApplicants: []RankedApplicant{}}, nil
	}
	out, err := f.rankApplicants.Run(ctx, in)
	if err != nil {
		log.Printf("[flow:rankApplicants] %v", err)
		return RankApplicantsOutput{}, userError(msgRankApplicants, err)
	}
	if out.RankedApplicants == nil {
		out.RankedApplicants = []RankedApplicant{}
	}
	sort.SliceStable(out.RankedApplicants, func(i, j int) bool {
		return out.RankedApplicants[i].Score > out.RankedApplicants[j].Score
	})
	return out, nil
}

func (f *Flows) RankInternships(ctx context.Context, in RankInternshipsInput) (RankInternshipsOutput, error) {
	if len(in.Internships) == 0 {
		return RankInternshipsOutput{Recommendations: []InternshipRecommendation{}}, nil
	}
	out, err := f.rankInternships.Run(ctx, in)
	if err != nil {
		log.Printf("[flow:rankInternships] %v", err)
		return RankInternshipsOutput{}, userError(msgRankInternships, err)
	}
	if out.Recommendations == nil {
		out.Recommendations = []InternshipRecommendation{}
	}
	if len(out.Recommendations) > maxRecommendations {
		out.Recommendations = out.Recommendations[:maxRecommendations]
	}
	return out, nil
}

// AnalyzeApplicantPool never fails; an empty pool or a model error yields an
// empty analysis.
func (f *Flows) AnalyzeApplicantPool(ctx context.Context, in AnalyzeApplicantPoolInput) AnalyzeApplicantPoolOutput {
	empty := AnalyzeApplicantPoolOutput{
		TopSkills:              []SkillCount{},
		UniversityDistribution: []UniversityCount{},
	}
	if len(in.StudentProfiles) == 0 {
		return empty
	}
	out, err := f.analyzeApplicantPool.Run(ctx, in)
	if err != nil {
		log.Printf("[flow:analyzeApplicantPool] %v", err)
		return empty
	}
	if out.TopSkills == nil {
		out.TopSkills = []SkillCount{}
	}
	if out.UniversityDistribution == nil {
		out.UniversityDistribution = []UniversityCount{}
	}
	return out
}

func (f *Flows) MatchStudents(ctx context.Context, in MatchStudentsInput) (MatchStudentsOutput, error) {
	if len(in.StudentProfiles) == 0 {
		return MatchStudentsOutput{MatchedStudents: []MatchedStudent{}}, nil
	}
	out, err := f.matchStudents.Run(ctx, in)
	if err != nil {
		log.Printf("[flow:matchStudents] %v", err)
		return out, userError(msgMatchStudents, err)
	}
	if out.MatchedStudents == nil {
		out.MatchedStudents = []MatchedStudent{}
	}
	return out, nil
}

func (f *Flows) OptimizeResume(ctx context.Context, in OptimizeResumeInput) (OptimizeResumeOutput, error) {
	out, err := f.optimizeResume.Run(ctx, in)
	if err != nil {
		log.Printf("[flow:optimizeResume] %v", err)
		return out, userError(msgOptimizeResume, err)
	}
	return out, nil
}

func (f *Flows) CareerPath(ctx context.Context, in CareerPathInput) (CareerPathOutput, error) {
	out, err := f.careerPath.Run(ctx, in)
	if err != nil {
		log.Printf("[flow:careerPathSimulator] %v", err)
		return out, userError(msgCareerPath, err)
	}
	return out, nil
}

func (f *Flows) HiringManager(ctx context.Context, in HiringManagerInput) (HiringManagerOutput, error) {
	out, err := f.hiringManager.Run(ctx, in)
	if err != nil {
		log.Printf("[flow:hiringManagerSimulator] %v", err)
		return out, userError(msgHiringManager, err)
	}
	return out, nil
}
