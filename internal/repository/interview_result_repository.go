package repository

import (
	"context"
	"strings"

	"github.com/fadilmartias/internhub/internal/model"
	"github.com/fadilmartias/internhub/internal/storage"
)

type InterviewResultRepository struct {
	kv storage.KV
}

func NewInterviewResultRepository(kv storage.KV) *InterviewResultRepository {
	return &InterviewResultRepository{kv}
}

func (r *InterviewResultRepository) FindAll(ctx context.Context) ([]model.InterviewResult, error) {
	return readJSON(ctx, r.kv, KeyInterviewResults, []model.InterviewResult{})
}

func (r *InterviewResultRepository) Find(ctx context.Context, internshipID, email string) (*model.InterviewResult, error) {
	results, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range results {
		if sameResult(results[i], internshipID, email) {
			return &results[i], nil
		}
	}
	return nil, ErrNotFound
}

// Upsert replaces any earlier result for the same internship and email.
func (r *InterviewResultRepository) Upsert(ctx context.Context, result model.InterviewResult) error {
	return updateJSON(ctx, r.kv, KeyInterviewResults,
		func() []model.InterviewResult { return []model.InterviewResult{} },
		func(all []model.InterviewResult) ([]model.InterviewResult, error) {
			kept := make([]model.InterviewResult, 0, len(all)+1)
			for _, existing := range all {
				if !sameResult(existing, result.InternshipID, result.StudentEmail) {
					kept = append(kept, existing)
				}
			}
			return append(kept, result), nil
		},
	)
}

func sameResult(r model.InterviewResult, internshipID, email string) bool {
	return r.InternshipID == internshipID &&
		strings.EqualFold(strings.TrimSpace(r.StudentEmail), strings.TrimSpace(email))
}
