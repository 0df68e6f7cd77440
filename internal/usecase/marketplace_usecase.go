package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fadilmartias/internhub/internal/dto"
	"github.com/fadilmartias/internhub/internal/model"
	"github.com/fadilmartias/internhub/internal/repository"
	"github.com/fadilmartias/internhub/internal/service"
	"github.com/fadilmartias/internhub/internal/util"
	"github.com/google/uuid"
)

var (
	ErrInternshipNotFound      = errors.New("internship not found")
	ErrProfileNotFound         = errors.New("profile not found")
	ErrInterviewResultNotFound = errors.New("interview result not found")
	ErrAlreadyApplied          = errors.New("you have already applied for this internship")
	ErrInvalidProfile          = errors.New("a profile with a valid email is required")
)

const placeholderLogo = "https://placehold.co/100x100.png"

var (
	defaultResponsibilities = []string{
		"Develop new user-facing features.",
		"Collaborate with cross-functional teams to define, design, and ship new features.",
		"Ensure the performance, quality, and responsiveness of applications.",
	}
	defaultPerks = []string{"Flexible work hours", "Mentorship program"}
)

type MarketplaceUsecase struct {
	internshipRepo  *repository.InternshipRepository
	applicationRepo *repository.ApplicationRepository
	resultRepo      *repository.InterviewResultRepository
	profileRepo     *repository.ProfileRepository
	index           repository.EmbeddingIndex
	embedder        service.Embedder
	events          service.EventPublisher
	now             func() time.Time
	wg              sync.WaitGroup
}

type MarketplaceDeps struct {
	Internships  *repository.InternshipRepository
	Applications *repository.ApplicationRepository
	Results      *repository.InterviewResultRepository
	Profiles     *repository.ProfileRepository
	// Index and Embedder are optional; without them new postings are not
	// embedded for recommendations.
	Index    repository.EmbeddingIndex
	Embedder service.Embedder
	Events   service.EventPublisher
}

func NewMarketplaceUsecase(deps MarketplaceDeps) *MarketplaceUsecase {
	events := deps.Events
	if events == nil {
		events = service.NoopPublisher{}
	}
	return &MarketplaceUsecase{
		internshipRepo:  deps.Internships,
		applicationRepo: deps.Applications,
		resultRepo:      deps.Results,
		profileRepo:     deps.Profiles,
		index:           deps.Index,
		embedder:        deps.Embedder,
		events:          events,
		now:             time.Now,
	}
}

// ListInternships returns every internship with Applicants recomputed from
// the stored applications.
func (uc *MarketplaceUsecase) ListInternships(ctx context.Context) ([]model.Internship, error) {
	internships, err := uc.internshipRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load internships: %w", err)
	}
	apps, err := uc.applicationRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load applications: %w", err)
	}
	for i := range internships {
		internships[i].Applicants = len(apps[internships[i].ID])
	}
	return internships, nil
}

func (uc *MarketplaceUsecase) GetInternship(ctx context.Context, id string) (*model.Internship, error) {
	internships, err := uc.ListInternships(ctx)
	if err != nil {
		return nil, err
	}
	for i := range internships {
		if internships[i].ID == id {
			return &internships[i], nil
		}
	}
	return nil, ErrInternshipNotFound
}

func (uc *MarketplaceUsecase) ListInternshipsByCompany(ctx context.Context, company string) ([]model.Internship, error) {
	internships, err := uc.ListInternships(ctx)
	if err != nil {
		return nil, err
	}
	company = strings.TrimSpace(company)
	out := make([]model.Internship, 0)
	for _, in := range internships {
		if strings.EqualFold(in.Company, company) {
			out = append(out, in)
		}
	}
	return out, nil
}

// normalizeInternship trims every text field and drops blank list entries so
// whitespace-only input fails the required checks.
func normalizeInternship(req dto.CreateInternshipDTO) dto.CreateInternshipDTO {
	req.Title = strings.TrimSpace(req.Title)
	req.Company = strings.TrimSpace(req.Company)
	req.Location = strings.TrimSpace(req.Location)
	req.Domain = strings.TrimSpace(req.Domain)
	req.Stipend = strings.TrimSpace(req.Stipend)
	req.Duration = strings.TrimSpace(req.Duration)
	req.Description = strings.TrimSpace(req.Description)
	req.CustomQuestions = strings.TrimSpace(req.CustomQuestions)
	req.Skills = trimAll(req.Skills)
	req.Responsibilities = trimAll(req.Responsibilities)
	req.Perks = trimAll(req.Perks)
	return req
}

func (uc *MarketplaceUsecase) AddInternship(ctx context.Context, req dto.CreateInternshipDTO) (*model.Internship, error) {
	req = normalizeInternship(req)
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}

	internship := model.Internship{
		ID:                  uuid.NewString(),
		Title:               req.Title,
		Company:             req.Company,
		Logo:                placeholderLogo,
		Location:            req.Location,
		Domain:              req.Domain,
		Stipend:             req.Stipend,
		Duration:            req.Duration,
		PostedAt:            uc.now().UTC(),
		Applicants:          0,
		Description:         req.Description,
		Responsibilities:    req.Responsibilities,
		Skills:              req.Skills,
		Perks:               req.Perks,
		CustomQuestions:     req.CustomQuestions,
		IsInterviewRequired: req.IsInterviewRequired,
	}
	if len(internship.Responsibilities) == 0 {
		internship.Responsibilities = append([]string(nil), defaultResponsibilities...)
	}
	if len(internship.Perks) == 0 {
		internship.Perks = append([]string(nil), defaultPerks...)
	}

	if err := uc.internshipRepo.Prepend(ctx, internship); err != nil {
		return nil, fmt.Errorf("save internship: %w", err)
	}
	log.Printf("[marketplace] internship %s posted by %s", internship.ID, internship.Company)

	uc.publish(ctx, service.EventInternshipPosted, internship)
	if uc.index != nil && uc.embedder != nil {
		uc.wg.Add(1)
		go func(in model.Internship) {
			defer uc.wg.Done()
			uc.indexInternship(context.WithoutCancel(ctx), in)
		}(internship)
	}
	return &internship, nil
}

// Wait blocks until background embedding work has finished.
func (uc *MarketplaceUsecase) Wait() {
	uc.wg.Wait()
}

func (uc *MarketplaceUsecase) indexInternship(ctx context.Context, in model.Internship) {
	vec, err := uc.embedder.GenerateEmbedding(ctx, in.JobDescription())
	if err != nil {
		log.Printf("[marketplace] embedding internship %s failed: %v", in.ID, err)
		return
	}
	if err := uc.index.Upsert(ctx, in.ID, vec); err != nil {
		log.Printf("[marketplace] indexing internship %s failed: %v", in.ID, err)
	}
}

func (uc *MarketplaceUsecase) ListApplicants(ctx context.Context, internshipID string) ([]model.StudentProfile, error) {
	profiles, err := uc.applicationRepo.FindByInternship(ctx, internshipID)
	if err != nil {
		return nil, fmt.Errorf("load applicants: %w", err)
	}
	return profiles, nil
}

func (uc *MarketplaceUsecase) HasApplied(ctx context.Context, internshipID, email string) (bool, error) {
	if strings.TrimSpace(email) == "" {
		return false, nil
	}
	profiles, err := uc.ListApplicants(ctx, internshipID)
	if err != nil {
		return false, err
	}
	return repository.ContainsEmail(profiles, email), nil
}

func (uc *MarketplaceUsecase) Apply(ctx context.Context, internshipID string, profile model.StudentProfile) error {
	profile.Email = strings.TrimSpace(profile.Email)
	if profile.Email == "" {
		return ErrInvalidProfile
	}
	if err := util.ValidateStruct(profile); err != nil {
		return err
	}
	if _, err := uc.GetInternship(ctx, internshipID); err != nil {
		return err
	}

	err := uc.applicationRepo.Append(ctx, internshipID, profile)
	if errors.Is(err, repository.ErrDuplicate) {
		return ErrAlreadyApplied
	}
	if err != nil {
		return fmt.Errorf("save application: %w", err)
	}
	log.Printf("[marketplace] %s applied to %s", profile.Email, internshipID)

	uc.publish(ctx, service.EventApplicationSubmitted, map[string]any{
		"internship_id": internshipID,
		"student":       profile,
	})
	return nil
}

// ListApplicationsByStudent returns the student's applications, most
// recently posted internship first.
func (uc *MarketplaceUsecase) ListApplicationsByStudent(ctx context.Context, email string) ([]model.StudentApplication, error) {
	out := make([]model.StudentApplication, 0)
	if strings.TrimSpace(email) == "" {
		return out, nil
	}

	internships, err := uc.ListInternships(ctx)
	if err != nil {
		return nil, err
	}
	apps, err := uc.applicationRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load applications: %w", err)
	}
	results, err := uc.resultRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load interview results: %w", err)
	}

	for _, in := range internships {
		if !repository.ContainsEmail(apps[in.ID], email) {
			continue
		}
		status := model.ApplicationStatusApplied
		for _, r := range results {
			if r.InternshipID == in.ID && strings.EqualFold(r.StudentEmail, email) {
				status = model.ApplicationStatusInterviewComplete
				break
			}
		}
		out = append(out, model.StudentApplication{Internship: in, Status: status})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Internship.PostedAt.After(out[j].Internship.PostedAt)
	})
	return out, nil
}

func (uc *MarketplaceUsecase) SaveInterviewResult(ctx context.Context, internshipID, email string, history []model.Message, summary string) (*model.InterviewResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrInvalidProfile
	}
	if history == nil {
		history = []model.Message{}
	}
	result := model.InterviewResult{
		InternshipID:        internshipID,
		StudentEmail:        email,
		ConversationHistory: history,
		Summary:             summary,
		CompletedAt:         uc.now().UTC(),
	}
	if err := uc.resultRepo.Upsert(ctx, result); err != nil {
		return nil, fmt.Errorf("save interview result: %w", err)
	}

	uc.publish(ctx, service.EventInterviewCompleted, map[string]any{
		"internship_id": internshipID,
		"student_email": email,
	})
	return &result, nil
}

func (uc *MarketplaceUsecase) GetInterviewResult(ctx context.Context, internshipID, email string) (*model.InterviewResult, error) {
	result, err := uc.resultRepo.Find(ctx, internshipID, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInterviewResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load interview result: %w", err)
	}
	return result, nil
}

func (uc *MarketplaceUsecase) SaveProfile(ctx context.Context, profile model.StudentProfile) (*model.StudentProfile, error) {
	profile.Email = strings.TrimSpace(profile.Email)
	if err := util.ValidateStruct(profile); err != nil {
		return nil, err
	}
	if err := uc.profileRepo.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return &profile, nil
}

func (uc *MarketplaceUsecase) GetProfile(ctx context.Context, email string) (*model.StudentProfile, error) {
	profile, err := uc.profileRepo.Find(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return profile, nil
}

func (uc *MarketplaceUsecase) ListProfiles(ctx context.Context) ([]model.StudentProfile, error) {
	profiles, err := uc.profileRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	return profiles, nil
}

func (uc *MarketplaceUsecase) publish(ctx context.Context, event string, payload any) {
	if err := uc.events.Publish(ctx, event, payload); err != nil {
		log.Printf("[marketplace] publish %s failed: %v", event, err)
	}
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
