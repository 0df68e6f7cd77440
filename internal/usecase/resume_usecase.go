package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/fadilmartias/internhub/internal/flow"
	"github.com/fadilmartias/internhub/internal/service"
	"github.com/fadilmartias/internhub/internal/storage"
	"github.com/fadilmartias/internhub/internal/util"
	"github.com/google/uuid"
)

const MaxResumeSize = 5 * 1024 * 1024

var (
	ErrResumeEmpty    = errors.New("resume file is empty")
	ErrResumeTooLarge = errors.New("resume file size is too large (max 5MB)")
	ErrResumeType     = errors.New("unsupported resume file type (PDF, DOCX or TXT)")
	ErrResumeNoText   = errors.New("no text could be extracted from the resume")
)

var resumeExt = map[string]string{
	util.MIMEPDF:  ".pdf",
	util.MIMEDOCX: ".docx",
	util.MIMEText: ".txt",
}

type ResumeUpload struct {
	Filename string
	MIMEType string
	Data     []byte
}

type ResumeAnalysis struct {
	Profile flow.AnalyzeResumeOutput `json:"profile"`
	FileURL string                   `json:"file_url,omitempty"`
}

type ResumeUsecase struct {
	blob  storage.Blob
	flows *flow.Flows
}

func NewResumeUsecase(blob storage.Blob, flows *flow.Flows) *ResumeUsecase {
	return &ResumeUsecase{blob: blob, flows: flows}
}

func (uc *ResumeUsecase) AnalyzeDataURI(ctx context.Context, uri string) (*ResumeAnalysis, error) {
	mime, data, err := util.ParseDataURI(uri)
	if err != nil {
		return nil, err
	}
	return uc.Analyze(ctx, ResumeUpload{MIMEType: mime, Data: data})
}

// Analyze stores the upload and extracts profile fields from it. Extracted
// text is preferred over sending the raw file so any configured generator
// can serve the request; only files without a text layer go as media.
func (uc *ResumeUsecase) Analyze(ctx context.Context, upload ResumeUpload) (*ResumeAnalysis, error) {
	if len(upload.Data) == 0 {
		return nil, ErrResumeEmpty
	}
	if len(upload.Data) > MaxResumeSize {
		return nil, ErrResumeTooLarge
	}

	mime := util.DetectMIME(upload.Data)
	if !util.IsSupportedResumeType(mime) && util.IsSupportedResumeType(upload.MIMEType) {
		mime = upload.MIMEType
	}
	if !util.IsSupportedResumeType(mime) {
		return nil, ErrResumeType
	}

	var fileURL string
	if uc.blob != nil {
		key := fmt.Sprintf("resumes/%s%s", uuid.NewString(), resumeExt[mime])
		url, err := uc.blob.Put(ctx, key, mime, upload.Data)
		if err != nil {
			log.Printf("[resume] storing %s failed: %v", key, err)
		} else {
			fileURL = url
		}
	}

	text, err := util.ExtractText(mime, upload.Data)
	if err != nil {
		log.Printf("[resume] text extraction failed (%s): %v", mime, err)
	}
	if text == "" && mime != util.MIMEPDF {
		return nil, ErrResumeNoText
	}

	profile, err := uc.flows.AnalyzeResume(ctx, flow.AnalyzeResumeInput{
		Resume:     service.Media{MIMEType: mime, Data: upload.Data},
		ResumeText: text,
	})
	if err != nil {
		return nil, err
	}
	return &ResumeAnalysis{Profile: profile, FileURL: fileURL}, nil
}
