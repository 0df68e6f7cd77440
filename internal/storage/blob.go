package storage

import "context"

// Blob stores uploaded files such as resumes.
type Blob interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}
