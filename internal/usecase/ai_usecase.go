package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/fadilmartias/internhub/internal/dto"
	"github.com/fadilmartias/internhub/internal/flow"
	"github.com/fadilmartias/internhub/internal/model"
	"github.com/fadilmartias/internhub/internal/repository"
	"github.com/fadilmartias/internhub/internal/service"
)

// recommendationCandidates bounds how many internships reach the ranking
// prompt when an embedding index is available.
const recommendationCandidates = 20

const defaultTone = "formal"

type RankedProfile struct {
	model.StudentProfile
	Score         *float64 `json:"score,omitempty"`
	Justification string   `json:"justification,omitempty"`
}

type Recommendation struct {
	Internship    model.Internship `json:"internship"`
	Justification string           `json:"justification"`
}

type AIUsecase struct {
	market   *MarketplaceUsecase
	flows    *flow.Flows
	index    repository.EmbeddingIndex
	embedder service.Embedder
}

// NewAIUsecase accepts a nil index or embedder; recommendations then rank the
// full catalogue.
func NewAIUsecase(market *MarketplaceUsecase, flows *flow.Flows, index repository.EmbeddingIndex, embedder service.Embedder) *AIUsecase {
	return &AIUsecase{market: market, flows: flows, index: index, embedder: embedder}
}

// profileLine is the one-line profile format used by the interview and
// recommendation flows.
func profileLine(p model.StudentProfile) string {
	return p.Summary()
}

// profileBlock is the multi-line format used by the writing flows.
func profileBlock(p model.StudentProfile, withProjects bool) string {
	if withProjects {
		return p.Detailed()
	}
	return "Name: " + p.Name + "\nEducation: " + p.Education + "\nSkills: " + p.Skills + "\nAbout: " + p.About
}

func (uc *AIUsecase) loadPair(ctx context.Context, internshipID, email string) (*model.Internship, *model.StudentProfile, error) {
	internship, err := uc.market.GetInternship(ctx, internshipID)
	if err != nil {
		return nil, nil, err
	}
	profile, err := uc.market.GetProfile(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	return internship, profile, nil
}

func (uc *AIUsecase) InterviewCoach(ctx context.Context, req dto.InterviewCoachDTO) (*dto.InterviewCoachReply, error) {
	internship, profile, err := uc.loadPair(ctx, req.InternshipID, req.StudentEmail)
	if err != nil {
		return nil, err
	}
	out, err := uc.flows.InterviewCoach(ctx, flow.InterviewCoachInput{
		StudentProfile:      profileLine(*profile),
		SelectedInternship:  internship.Brief(),
		ConversationHistory: req.ConversationHistory,
		UserMessage:         req.UserMessage,
		CustomQuestions:     internship.CustomQuestions,
	})
	if err != nil {
		return nil, err
	}
	history := make([]model.Message, 0, len(req.ConversationHistory)+2)
	history = append(history, req.ConversationHistory...)
	history = append(history,
		model.Message{Role: model.RoleUser, Content: req.UserMessage},
		model.Message{Role: model.RoleAssistant, Content: out.AIResponse},
	)
	return &dto.InterviewCoachReply{AIResponse: out.AIResponse, ConversationHistory: history}, nil
}

// SummarizeInterview summarizes the transcript and stores it as the
// student's interview result for the internship. An empty transcript yields
// the fixed summary and leaves any stored result untouched.
func (uc *AIUsecase) SummarizeInterview(ctx context.Context, req dto.InterviewSummaryDTO) (*model.InterviewResult, error) {
	internship, profile, err := uc.loadPair(ctx, req.InternshipID, req.StudentEmail)
	if err != nil {
		return nil, err
	}
	if len(req.ConversationHistory) == 0 {
		return &model.InterviewResult{
			InternshipID:        internship.ID,
			StudentEmail:        profile.Email,
			ConversationHistory: []model.Message{},
			Summary:             flow.NoConversationSummary,
		}, nil
	}
	out, err := uc.flows.SummarizeInterview(ctx, flow.SummarizeInterviewInput{
		StudentProfile:      profileLine(*profile),
		SelectedInternship:  internship.Brief(),
		ConversationHistory: req.ConversationHistory,
	})
	if err != nil {
		return nil, err
	}
	return uc.market.SaveInterviewResult(ctx, internship.ID, profile.Email, req.ConversationHistory, out.Summary)
}

func (uc *AIUsecase) GenerateCoverLetter(ctx context.Context, req dto.CoverLetterDTO) (*flow.GenerateCoverLetterOutput, error) {
	internship, profile, err := uc.loadPair(ctx, req.InternshipID, req.StudentEmail)
	if err != nil {
		return nil, err
	}
	tone := req.Tone
	if tone == "" {
		tone = defaultTone
	}
	out, err := uc.flows.GenerateCoverLetter(ctx, flow.GenerateCoverLetterInput{
		JobDescription:     internship.JobDescription(),
		ProfileInformation: profileBlock(*profile, true),
		Tone:               tone,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RankApplicants scores the internship's applicants and returns them
// highest score first. Applicants the model skipped keep a nil score and
// sort last.
func (uc *AIUsecase) RankApplicants(ctx context.Context, internshipID string) ([]RankedProfile, error) {
	internship, err := uc.market.GetInternship(ctx, internshipID)
	if err != nil {
		return nil, err
	}
	applicants, err := uc.market.ListApplicants(ctx, internshipID)
	if err != nil {
		return nil, err
	}

	out, err := uc.flows.RankApplicants(ctx, flow.RankApplicantsInput{
		JobDescription:  internship.Description,
		StudentProfiles: applicants,
	})
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedProfile, 0, len(applicants))
	scored := make(map[string]bool, len(out.RankedApplicants))
	for _, r := range out.RankedApplicants {
		key := strings.ToLower(r.Email)
		if scored[key] {
			continue
		}
		for _, p := range applicants {
			if strings.EqualFold(p.Email, r.Email) {
				score := r.Score
				ranked = append(ranked, RankedProfile{StudentProfile: p, Score: &score, Justification: r.Justification})
				scored[key] = true
				break
			}
		}
	}
	var unscored []RankedProfile
	for _, p := range applicants {
		if !scored[strings.ToLower(p.Email)] {
			unscored = append(unscored, RankedProfile{StudentProfile: p})
		}
	}
	return append(ranked, unscored...), nil
}

func (uc *AIUsecase) AnalyzeApplicantPool(ctx context.Context, internshipID string) (*flow.AnalyzeApplicantPoolOutput, error) {
	if _, err := uc.market.GetInternship(ctx, internshipID); err != nil {
		return nil, err
	}
	applicants, err := uc.market.ListApplicants(ctx, internshipID)
	if err != nil {
		return nil, err
	}
	out := uc.flows.AnalyzeApplicantPool(ctx, flow.AnalyzeApplicantPoolInput{StudentProfiles: applicants})
	return &out, nil
}

// MatchStudents searches every stored profile for candidates to invite.
func (uc *AIUsecase) MatchStudents(ctx context.Context, internshipID string) (*flow.MatchStudentsOutput, error) {
	internship, err := uc.market.GetInternship(ctx, internshipID)
	if err != nil {
		return nil, err
	}
	profiles, err := uc.market.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}
	out, err := uc.flows.MatchStudents(ctx, flow.MatchStudentsInput{
		Internship: flow.MatchInternship{
			Title:          internship.Title,
			Description:    internship.Description,
			RequiredSkills: internship.Skills,
			Location:       internship.Location,
		},
		StudentProfiles: profiles,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RecommendInternships ranks internships for the student. Recommendations
// naming an unknown id are dropped.
func (uc *AIUsecase) RecommendInternships(ctx context.Context, email string) ([]Recommendation, error) {
	profile, err := uc.market.GetProfile(ctx, email)
	if err != nil {
		return nil, err
	}
	internships, err := uc.market.ListInternships(ctx)
	if err != nil {
		return nil, err
	}
	candidates := uc.nearestInternships(ctx, *profile, internships)

	out, err := uc.flows.RankInternships(ctx, flow.RankInternshipsInput{
		StudentProfile: profileLine(*profile),
		Internships:    candidates,
	})
	if err != nil {
		return nil, err
	}

	byID := make(map[string]model.Internship, len(internships))
	for _, in := range internships {
		byID[in.ID] = in
	}
	recs := make([]Recommendation, 0, len(out.Recommendations))
	seen := make(map[string]bool)
	for _, r := range out.Recommendations {
		in, ok := byID[r.ID]
		if !ok || seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		recs = append(recs, Recommendation{Internship: in, Justification: r.Justification})
	}
	return recs, nil
}

// nearestInternships narrows the catalogue to the postings closest to the
// profile embedding. Any failure falls back to the full list.
func (uc *AIUsecase) nearestInternships(ctx context.Context, profile model.StudentProfile, internships []model.Internship) []model.Internship {
	if uc.index == nil || uc.embedder == nil || len(internships) <= recommendationCandidates {
		return internships
	}

	vec, err := uc.embedder.GenerateEmbedding(ctx, profile.Detailed())
	if err != nil {
		log.Printf("[ai] profile embedding failed, ranking full catalogue: %v", err)
		return internships
	}
	ids, err := uc.index.Search(ctx, vec, recommendationCandidates)
	if err != nil || len(ids) == 0 {
		log.Printf("[ai] embedding search returned nothing, ranking full catalogue: %v", err)
		return internships
	}

	byID := make(map[string]model.Internship, len(internships))
	for _, in := range internships {
		byID[in.ID] = in
	}
	out := make([]model.Internship, 0, len(ids))
	for _, id := range ids {
		if in, ok := byID[id]; ok {
			out = append(out, in)
		}
	}
	if len(out) == 0 {
		return internships
	}
	return out
}

// jobText resolves the job description for review flows: explicit text
// first, then the stored posting.
func (uc *AIUsecase) jobText(ctx context.Context, req dto.JobReviewDTO) (string, error) {
	if strings.TrimSpace(req.JobDescription) != "" {
		return req.JobDescription, nil
	}
	internship, err := uc.market.GetInternship(ctx, req.InternshipID)
	if err != nil {
		return "", err
	}
	return internship.JobDescription(), nil
}

func (uc *AIUsecase) OptimizeResume(ctx context.Context, req dto.JobReviewDTO) (*flow.OptimizeResumeOutput, error) {
	profile, err := uc.market.GetProfile(ctx, req.StudentEmail)
	if err != nil {
		return nil, err
	}
	job, err := uc.jobText(ctx, req)
	if err != nil {
		return nil, err
	}
	out, err := uc.flows.OptimizeResume(ctx, flow.OptimizeResumeInput{
		StudentProfile: profileBlock(*profile, true),
		JobDescription: job,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (uc *AIUsecase) HiringManager(ctx context.Context, req dto.JobReviewDTO) (*flow.HiringManagerOutput, error) {
	profile, err := uc.market.GetProfile(ctx, req.StudentEmail)
	if err != nil {
		return nil, err
	}
	job, err := uc.jobText(ctx, req)
	if err != nil {
		return nil, err
	}
	out, err := uc.flows.HiringManager(ctx, flow.HiringManagerInput{
		StudentProfile: profileBlock(*profile, false),
		JobDescription: job,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (uc *AIUsecase) CareerPath(ctx context.Context, req dto.CareerPathDTO) (*flow.CareerPathOutput, error) {
	profile, err := uc.market.GetProfile(ctx, req.StudentEmail)
	if err != nil {
		return nil, err
	}
	out, err := uc.flows.CareerPath(ctx, flow.CareerPathInput{
		StudentProfile: profileBlock(*profile, false),
		CareerGoal:     req.CareerGoal,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
