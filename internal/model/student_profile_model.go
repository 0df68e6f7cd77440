package model

import "fmt"

// StudentProfile is identified by Email.
type StudentProfile struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Education string `json:"education"`
	Skills    string `json:"skills"` // comma separated
	About     string `json:"about"`
	Projects  string `json:"projects,omitempty"`
}

func (p StudentProfile) Summary() string {
	return fmt.Sprintf("Name: %s, Education: %s, Skills: %s, About: %s", p.Name, p.Education, p.Skills, p.About)
}

// Detailed includes projects and is used where the flow rewrites profile text.
func (p StudentProfile) Detailed() string {
	projects := p.Projects
	if projects == "" {
		projects = "N/A"
	}
	return fmt.Sprintf("Name: %s\nEducation: %s\nSkills: %s\nAbout: %s\nProjects: %s",
		p.Name, p.Education, p.Skills, p.About, projects)
}
