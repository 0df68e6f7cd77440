package model

import (
	"fmt"
	"strings"
	"time"
)

type Internship struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Company             string    `json:"company"`
	Logo                string    `json:"logo"`
	Location            string    `json:"location"`
	Domain              string    `json:"domain"`
	Stipend             string    `json:"stipend"`
	Duration            string    `json:"duration"`
	PostedAt            time.Time `json:"posted_at"`
	Applicants          int       `json:"applicants"` // derived from stored applications on every read
	Description         string    `json:"description"`
	Responsibilities    []string  `json:"responsibilities"`
	Skills              []string  `json:"skills"`
	Perks               []string  `json:"perks"`
	CustomQuestions     string    `json:"custom_questions,omitempty"`
	IsInterviewRequired bool      `json:"is_interview_required"`
}

// Brief is the short form handed to the interview flows.
func (i Internship) Brief() string {
	return fmt.Sprintf("Title: %s, Description: %s", i.Title, i.Description)
}

// JobDescription renders the posting as the free-text job description the
// writing and screening flows expect.
func (i Internship) JobDescription() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s at %s (%s)\n", i.Title, i.Company, i.Location)
	fmt.Fprintf(&b, "Domain: %s\nStipend: %s\nDuration: %s\n\n", i.Domain, i.Stipend, i.Duration)
	b.WriteString(i.Description)
	if len(i.Responsibilities) > 0 {
		b.WriteString("\n\nResponsibilities:\n- ")
		b.WriteString(strings.Join(i.Responsibilities, "\n- "))
	}
	if len(i.Skills) > 0 {
		b.WriteString("\n\nRequired skills: ")
		b.WriteString(strings.Join(i.Skills, ", "))
	}
	return b.String()
}
