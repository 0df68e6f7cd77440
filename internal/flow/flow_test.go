package flow

import (
	"context"
	"errors"
	"testing"

	"github.com/fadilmartias/internhub/internal/model"
	"github.com/fadilmartias/internhub/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	responses []string
	err       error
	requests  []service.GenerateRequest
}

func (g *fakeGenerator) Generate(_ context.Context, req service.GenerateRequest) (string, error) {
	g.requests = append(g.requests, req)
	if g.err != nil {
		return "", g.err
	}
	if len(g.responses) == 0 {
		return "", nil
	}
	resp := g.responses[0]
	g.responses = g.responses[1:]
	return resp, nil
}

var profiles = []model.StudentProfile{
	{Name: "Ada", Email: "ada@example.com", Skills: "Go, SQL"},
	{Name: "Linus", Email: "linus@example.com", Skills: "C"},
}

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced json", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"prose around", "Sure! Here it is: {\"a\":1} hope that helps", `{"a":1}`},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSON(tt.in))
		})
	}
}

func TestNew_AllPromptsPresent(t *testing.T) {
	assert.NotPanics(t, func() { New(&fakeGenerator{}) })
}

func TestLoadCatalogue_RejectsBadTemplate(t *testing.T) {
	_, err := loadCatalogue([]byte("broken: \"{{ .Foo \""))
	assert.Error(t, err)
}

func TestInterviewCoach_PromptIncludesHistoryAndQuestions(t *testing.T) {
	gen := &fakeGenerator{responses: []string{`{"ai_response":"Tell me about a project."}`}}
	out, err := New(gen).InterviewCoach(context.Background(), InterviewCoachInput{
		StudentProfile:     "Name: Ada",
		SelectedInternship: "Title: Backend Intern",
		ConversationHistory: []model.Message{
			{Role: model.RoleAssistant, Content: "Welcome!"},
		},
		UserMessage:     "Hi there",
		CustomQuestions: "Why Go?",
	})
	require.NoError(t, err)
	assert.Equal(t, "Tell me about a project.", out.AIResponse)

	require.Len(t, gen.requests, 1)
	prompt := gen.requests[0].Prompt
	assert.Contains(t, prompt, "assistant: Welcome!")
	assert.Contains(t, prompt, "user: Hi there")
	assert.Contains(t, prompt, "Why Go?")
	assert.NotNil(t, gen.requests[0].Schema)
}

func TestInterviewCoach_FailureHasUserMessage(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota")}
	_, err := New(gen).InterviewCoach(context.Background(), InterviewCoachInput{UserMessage: "hi"})

	var flowErr *Error
	require.ErrorAs(t, err, &flowErr)
	assert.Equal(t, msgInterviewCoach, flowErr.Message)
}

func TestSummarizeInterview_EmptyHistorySkipsModel(t *testing.T) {
	gen := &fakeGenerator{}
	out, err := New(gen).SummarizeInterview(context.Background(), SummarizeInterviewInput{})
	require.NoError(t, err)
	assert.Equal(t, NoConversationSummary, out.Summary)
	assert.Empty(t, gen.requests)
}

func TestSummarizeInterview_FailureIsFixedMessage(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("boom")}
	_, err := New(gen).SummarizeInterview(context.Background(), SummarizeInterviewInput{
		ConversationHistory: []model.Message{{Role: model.RoleUser, Content: "hello"}},
	})
	require.Error(t, err)
	assert.Equal(t, msgSummarizeInterview, err.Error())
}

func TestRankApplicants_EmptySkipsModel(t *testing.T) {
	gen := &fakeGenerator{}
	out, err := New(gen).RankApplicants(context.Background(), RankApplicantsInput{JobDescription: "Go"})
	require.NoError(t, err)
	assert.NotNil(t, out.RankedApplicants)
	assert.Empty(t, out.RankedApplicants)
	assert.Empty(t, gen.requests)
}

func TestRankApplicants_SortedByScore(t *testing.T) {
	gen := &fakeGenerator{responses: []string{"```json\n" + `{"ranked_applicants":[
		{"email":"linus@example.com","name":"Linus","score":40,"justification":"C only"},
		{"email":"ada@example.com","name":"Ada","score":92,"justification":"Strong Go"}
	]}` + "\n```"}}

	out, err := New(gen).RankApplicants(context.Background(), RankApplicantsInput{
		JobDescription:  "Go backend",
		StudentProfiles: profiles,
	})
	require.NoError(t, err)
	require.Len(t, out.RankedApplicants, 2)
	assert.Equal(t, "ada@example.com", out.RankedApplicants[0].Email)
	assert.Contains(t, gen.requests[0].Prompt, "linus@example.com")
}

func TestRankApplicants_OutOfRangeScoreIsRejected(t *testing.T) {
	gen := &fakeGenerator{responses: []string{`{"ranked_applicants":[{"email":"ada@example.com","score":150}]}`}}

	_, err := New(gen).RankApplicants(context.Background(), RankApplicantsInput{StudentProfiles: profiles})
	require.Error(t, err)
	assert.Equal(t, msgRankApplicants, err.Error())
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestRankInternships_CapsRecommendations(t *testing.T) {
	gen := &fakeGenerator{responses: []string{`{"recommendations":[
		{"id":"1"},{"id":"2"},{"id":"3"},{"id":"4"},{"id":"5"},{"id":"6"}
	]}`}}

	out, err := New(gen).RankInternships(context.Background(), RankInternshipsInput{
		StudentProfile: "Name: Ada",
		Internships:    []model.Internship{{ID: "1", Title: "Backend"}},
	})
	require.NoError(t, err)
	assert.Len(t, out.Recommendations, maxRecommendations)
}

func TestRankInternships_FailureIsFixedMessage(t *testing.T) {
	gen := &fakeGenerator{responses: []string{"not json at all"}}

	_, err := New(gen).RankInternships(context.Background(), RankInternshipsInput{
		Internships: []model.Internship{{ID: "1"}},
	})
	require.Error(t, err)
	assert.Equal(t, msgRankInternships, err.Error())
}

func TestAnalyzeApplicantPool_FailureYieldsEmpty(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("unavailable")}
	out := New(gen).AnalyzeApplicantPool(context.Background(), AnalyzeApplicantPoolInput{StudentProfiles: profiles})
	assert.NotNil(t, out.TopSkills)
	assert.Empty(t, out.TopSkills)
	assert.NotNil(t, out.UniversityDistribution)
	assert.Empty(t, out.UniversityDistribution)
}

func TestAnalyzeApplicantPool_EmptySkipsModel(t *testing.T) {
	gen := &fakeGenerator{}
	out := New(gen).AnalyzeApplicantPool(context.Background(), AnalyzeApplicantPoolInput{})
	assert.Empty(t, out.TopSkills)
	assert.Empty(t, gen.requests)
}

func TestAnalyzeResume_MediaOnlyWithoutText(t *testing.T) {
	pdf := service.Media{MIMEType: "application/pdf", Data: []byte("%PDF-1.4")}
	resp := `{"name":"Ada","email":"ada@example.com","education":"MIT","skills":"Go","about":"Builder"}`
	gen := &fakeGenerator{responses: []string{resp, resp}}
	flows := New(gen)

	out, err := flows.AnalyzeResume(context.Background(), AnalyzeResumeInput{Resume: pdf})
	require.NoError(t, err)
	assert.Equal(t, "Ada", out.Name)
	require.Len(t, gen.requests[0].Media, 1)
	assert.Equal(t, "application/pdf", gen.requests[0].Media[0].MIMEType)

	_, err = flows.AnalyzeResume(context.Background(), AnalyzeResumeInput{Resume: pdf, ResumeText: "Ada Lovelace, Go developer"})
	require.NoError(t, err)
	assert.Empty(t, gen.requests[1].Media)
	assert.Contains(t, gen.requests[1].Prompt, "Ada Lovelace, Go developer")
}

func TestMatchStudents_RendersInternship(t *testing.T) {
	gen := &fakeGenerator{responses: []string{`{"matched_students":[{"name":"Ada","email":"ada@example.com","match_score":88,"skills_matched":["Go"]}]}`}}

	out, err := New(gen).MatchStudents(context.Background(), MatchStudentsInput{
		Internship:      MatchInternship{Title: "Backend", RequiredSkills: []string{"Go", "SQL"}, Location: "Remote"},
		StudentProfiles: profiles,
	})
	require.NoError(t, err)
	require.Len(t, out.MatchedStudents, 1)
	assert.Contains(t, gen.requests[0].Prompt, "Required Skills: Go, SQL")
}

func TestCareerPath_RequiresRoadmap(t *testing.T) {
	gen := &fakeGenerator{responses: []string{`{"roadmap":[]}`}}
	_, err := New(gen).CareerPath(context.Background(), CareerPathInput{CareerGoal: "Staff engineer"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestEmptyResponse(t *testing.T) {
	gen := &fakeGenerator{responses: []string{""}}
	_, err := New(gen).HiringManager(context.Background(), HiringManagerInput{JobDescription: "Go"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}
