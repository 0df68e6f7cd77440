package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fadilmartias/internhub/internal/dto"
	"github.com/fadilmartias/internhub/internal/flow"
	"github.com/fadilmartias/internhub/internal/repository"
	"github.com/fadilmartias/internhub/internal/service"
	"github.com/fadilmartias/internhub/internal/storage"
	"github.com/stretchr/testify/require"
)

type scriptedGenerator struct {
	mu        sync.Mutex
	responses []string
	err       error
	requests  []service.GenerateRequest
}

func (g *scriptedGenerator) Generate(_ context.Context, req service.GenerateRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	if g.err != nil {
		return "", g.err
	}
	if len(g.responses) == 0 {
		return "", errors.New("no scripted response")
	}
	resp := g.responses[0]
	g.responses = g.responses[1:]
	return resp, nil
}

// keywordEmbedder maps text onto a tiny vector space so similarity is
// predictable in tests.
type keywordEmbedder struct {
	keywords []string
	calls    int
	mu       sync.Mutex
}

func (e *keywordEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()
	text = strings.ToLower(text)
	vec := make([]float32, len(e.keywords))
	for i, k := range e.keywords {
		if strings.Contains(text, k) {
			vec[i] = 1
		}
	}
	return vec, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, routingKey)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type fixture struct {
	market *MarketplaceUsecase
	ai     *AIUsecase
	gen    *scriptedGenerator
	events *recordingPublisher
	index  *repository.MemoryIndex
	embed  *keywordEmbedder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	kv := storage.NewMemoryKV()
	gen := &scriptedGenerator{}
	events := &recordingPublisher{}
	index := repository.NewMemoryIndex()
	embed := &keywordEmbedder{keywords: []string{"go", "design", "data"}}

	market := NewMarketplaceUsecase(MarketplaceDeps{
		Internships:  repository.NewInternshipRepository(kv),
		Applications: repository.NewApplicationRepository(kv),
		Results:      repository.NewInterviewResultRepository(kv),
		Profiles:     repository.NewProfileRepository(kv),
		Index:        index,
		Embedder:     embed,
		Events:       events,
	})
	return &fixture{
		market: market,
		ai:     NewAIUsecase(market, flow.New(gen), index, embed),
		gen:    gen,
		events: events,
		index:  index,
		embed:  embed,
	}
}

func validInternship(title, company string) dto.CreateInternshipDTO {
	return dto.CreateInternshipDTO{
		Title:       title,
		Company:     company,
		Location:    "Remote",
		Domain:      "Engineering",
		Stipend:     "$1000/month",
		Duration:    "3 months",
		Description: title + " internship",
		Skills:      []string{"Go", " SQL "},
	}
}

func (f *fixture) post(t *testing.T, title, company string) string {
	t.Helper()
	in, err := f.market.AddInternship(context.Background(), validInternship(title, company))
	require.NoError(t, err)
	f.market.Wait()
	return in.ID
}

// tick makes successive postings strictly ordered in time.
func (f *fixture) tick() {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	f.market.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Hour)
	}
}
