package repository

import (
	"context"
	"strings"

	"github.com/fadilmartias/internhub/internal/model"
	"github.com/fadilmartias/internhub/internal/storage"
)

type ApplicationRepository struct {
	kv storage.KV
}

func NewApplicationRepository(kv storage.KV) *ApplicationRepository {
	return &ApplicationRepository{kv}
}

func (r *ApplicationRepository) FindAll(ctx context.Context) (model.Applications, error) {
	apps, err := readJSON(ctx, r.kv, KeyApplications, model.Applications{})
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = model.Applications{}
	}
	return apps, nil
}

func (r *ApplicationRepository) FindByInternship(ctx context.Context, internshipID string) ([]model.StudentProfile, error) {
	apps, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if profiles := apps[internshipID]; profiles != nil {
		return profiles, nil
	}
	return []model.StudentProfile{}, nil
}

// Append adds profile to the internship's applicants, failing with
// ErrDuplicate when that email already applied.
func (r *ApplicationRepository) Append(ctx context.Context, internshipID string, profile model.StudentProfile) error {
	return updateJSON(ctx, r.kv, KeyApplications,
		func() model.Applications { return model.Applications{} },
		func(apps model.Applications) (model.Applications, error) {
			if apps == nil {
				apps = model.Applications{}
			}
			applicants := apps[internshipID]
			if ContainsEmail(applicants, profile.Email) {
				return nil, ErrDuplicate
			}
			apps[internshipID] = append(applicants, profile)
			return apps, nil
		},
	)
}

// ContainsEmail matches case-insensitively, ignoring surrounding whitespace.
func ContainsEmail(profiles []model.StudentProfile, email string) bool {
	email = strings.TrimSpace(email)
	for _, p := range profiles {
		if strings.EqualFold(strings.TrimSpace(p.Email), email) {
			return true
		}
	}
	return false
}
