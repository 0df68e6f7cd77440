package usecase

import (
	"bytes"
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/fadilmartias/internhub/internal/flow"
	"github.com/fadilmartias/internhub/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resumeJSON = `{"name":"Ada Lovelace","email":"ada@example.com","education":"MIT","skills":"Go, SQL","about":"Builder"}`

func newResumeUsecase(t *testing.T) (*ResumeUsecase, *scriptedGenerator) {
	t.Helper()
	blob, err := storage.NewLocalBlob(t.TempDir())
	require.NoError(t, err)
	gen := &scriptedGenerator{responses: []string{resumeJSON}}
	return NewResumeUsecase(blob, flow.New(gen)), gen
}

func TestResumeAnalyze_TextUpload(t *testing.T) {
	uc, gen := newResumeUsecase(t)

	out, err := uc.Analyze(context.Background(), ResumeUpload{
		Filename: "cv.txt",
		Data:     []byte("Ada Lovelace\nada@example.com\nGo, SQL"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", out.Profile.Name)
	assert.True(t, strings.HasPrefix(out.FileURL, "file://"))
	assert.True(t, strings.HasSuffix(out.FileURL, ".txt"))

	require.Len(t, gen.requests, 1)
	assert.Empty(t, gen.requests[0].Media)
	assert.Contains(t, gen.requests[0].Prompt, "ada@example.com")
}

func TestResumeAnalyze_DataURI(t *testing.T) {
	uc, _ := newResumeUsecase(t)
	uri := "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("Ada Lovelace resume"))

	out, err := uc.AnalyzeDataURI(context.Background(), uri)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", out.Profile.Email)
}

func TestResumeAnalyze_Rejections(t *testing.T) {
	uc, gen := newResumeUsecase(t)
	ctx := context.Background()

	_, err := uc.Analyze(ctx, ResumeUpload{})
	assert.ErrorIs(t, err, ErrResumeEmpty)

	_, err = uc.Analyze(ctx, ResumeUpload{Data: bytes.Repeat([]byte("a"), MaxResumeSize+1)})
	assert.ErrorIs(t, err, ErrResumeTooLarge)

	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
	_, err = uc.Analyze(ctx, ResumeUpload{MIMEType: "image/png", Data: png})
	assert.ErrorIs(t, err, ErrResumeType)

	_, err = uc.AnalyzeDataURI(ctx, "not a data uri")
	assert.Error(t, err)

	assert.Empty(t, gen.requests)
}
