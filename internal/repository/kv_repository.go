package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/fadilmartias/internhub/internal/storage"
)

const (
	KeyInternships      = "internships"
	KeyApplications     = "applications"
	KeyInterviewResults = "interview_results"
	KeyProfiles         = "profiles"
)

// EmptyDocuments is the initial JSON document for every key.
var EmptyDocuments = map[string]string{
	KeyInternships:      "[]",
	KeyApplications:     "{}",
	KeyInterviewResults: "[]",
	KeyProfiles:         "{}",
}

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// readJSON returns def when the key is missing or its document cannot be
// parsed. Backend errors are returned.
func readJSON[T any](ctx context.Context, kv storage.KV, key string, def T) (T, error) {
	raw, err := kv.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Printf("[repository] could not parse data for key %q, using default: %v", key, err)
		return def, nil
	}
	return v, nil
}

// updateJSON decodes the current document (or a fresh default), applies fn
// and stores the result. fn may run more than once on optimistic backends,
// so it must not keep side effects outside its return values.
func updateJSON[T any](ctx context.Context, kv storage.KV, key string, def func() T, fn func(T) (T, error)) error {
	return kv.Update(ctx, key, func(current []byte) ([]byte, error) {
		v := def()
		if len(current) > 0 {
			if err := json.Unmarshal(current, &v); err != nil {
				log.Printf("[repository] could not parse data for key %q, resetting: %v", key, err)
				v = def()
			}
		}
		next, err := fn(v)
		if err != nil {
			return nil, err
		}
		return json.Marshal(next)
	})
}
