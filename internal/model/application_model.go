package model

const (
	ApplicationStatusApplied           = "Applied"
	ApplicationStatusInterviewComplete = "Interview Complete"
)

// Applications maps an internship id to the profiles that applied to it.
type Applications map[string][]StudentProfile

type StudentApplication struct {
	Internship Internship `json:"internship"`
	Status     string     `json:"status"`
}
