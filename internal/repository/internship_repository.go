package repository

import (
	"context"

	"github.com/fadilmartias/internhub/internal/model"
	"github.com/fadilmartias/internhub/internal/storage"
)

type InternshipRepository struct {
	kv storage.KV
}

func NewInternshipRepository(kv storage.KV) *InternshipRepository {
	return &InternshipRepository{kv}
}

// FindAll returns internships newest first, with Applicants as stored.
func (r *InternshipRepository) FindAll(ctx context.Context) ([]model.Internship, error) {
	internships, err := readJSON(ctx, r.kv, KeyInternships, []model.Internship{})
	if err != nil {
		return nil, err
	}
	if internships == nil {
		internships = []model.Internship{}
	}
	return internships, nil
}

func (r *InternshipRepository) Prepend(ctx context.Context, internship model.Internship) error {
	return updateJSON(ctx, r.kv, KeyInternships,
		func() []model.Internship { return []model.Internship{} },
		func(all []model.Internship) ([]model.Internship, error) {
			return append([]model.Internship{internship}, all...), nil
		},
	)
}
