package repository

import (
	"context"
	"sort"
	"strings"

	"github.com/fadilmartias/internhub/internal/model"
	"github.com/fadilmartias/internhub/internal/storage"
)

type ProfileRepository struct {
	kv storage.KV
}

func NewProfileRepository(kv storage.KV) *ProfileRepository {
	return &ProfileRepository{kv}
}

func profileKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *ProfileRepository) Find(ctx context.Context, email string) (*model.StudentProfile, error) {
	profiles, err := readJSON(ctx, r.kv, KeyProfiles, map[string]model.StudentProfile{})
	if err != nil {
		return nil, err
	}
	p, ok := profiles[profileKey(email)]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

// FindAll returns every profile ordered by email.
func (r *ProfileRepository) FindAll(ctx context.Context) ([]model.StudentProfile, error) {
	profiles, err := readJSON(ctx, r.kv, KeyProfiles, map[string]model.StudentProfile{})
	if err != nil {
		return nil, err
	}
	out := make([]model.StudentProfile, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return profileKey(out[i].Email) < profileKey(out[j].Email) })
	return out, nil
}

func (r *ProfileRepository) Save(ctx context.Context, profile model.StudentProfile) error {
	return updateJSON(ctx, r.kv, KeyProfiles,
		func() map[string]model.StudentProfile { return map[string]model.StudentProfile{} },
		func(all map[string]model.StudentProfile) (map[string]model.StudentProfile, error) {
			if all == nil {
				all = map[string]model.StudentProfile{}
			}
			all[profileKey(profile.Email)] = profile
			return all, nil
		},
	)
}
