package profiles

import (
	"encoding/json"
	"strings"
	"time"

	"cvforge-backend/internal/latex"
)

// dateLayout renders dates the way they appear in the generated documents.
const dateLayout = "January 2006"

type formattedEducation struct {
	EducationLevel   string `json:"education_level"`
	Institution      string `json:"university"`
	Location         string `json:"location"`
	Specialization   string `json:"specialization"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	Thesis           string `json:"thesis"`
	RelevantSubjects string `json:"relevant_subjects"`
}

type formattedExperience struct {
	Company     string   `json:"company"`
	Title       string   `json:"title"`
	Location    string   `json:"city"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Description []string `json:"description"`
}

type formattedInfo struct {
	Name         string                `json:"name"`
	Email        string                `json:"email"`
	Phone        string                `json:"phone"`
	LinkedIn     string                `json:"linkedin"`
	Summary      string                `json:"summary"`
	Education    []formattedEducation  `json:"education"`
	Experience   []formattedExperience `json:"experience"`
	Skills       []string              `json:"skills"`
	Publications []string              `json:"publications"`
	Projects     []string              `json:"projects"`
	Interests    []string              `json:"interests"`
}

// FormatInfo renders a snapshot as the JSON blob interpolated into
// generation prompts. Every free-text value is LaTeX-escaped so the model
// can paste it into the template verbatim. A nil end date renders as
// "Present".
func FormatInfo(snap Snapshot, email string) (string, error) {
	info := formattedInfo{
		Name:         latex.Escape(snap.Profile.Name),
		Email:        latex.Escape(email),
		Phone:        latex.Escape(snap.Profile.Phone),
		LinkedIn:     latex.Escape(snap.Profile.LinkedInURL),
		Summary:      latex.Escape(snap.Profile.Summary),
		Education:    make([]formattedEducation, 0, len(snap.Education)),
		Experience:   make([]formattedExperience, 0, len(snap.Experience)),
		Skills:       latex.FormatListField(snap.Profile.Skills),
		Publications: latex.FormatListField(snap.Profile.Publications),
		Projects:     latex.FormatListField(snap.Profile.Projects),
		Interests:    latex.FormatListField(snap.Profile.Interests),
	}

	for _, edu := range snap.Education {
		info.Education = append(info.Education, formattedEducation{
			EducationLevel:   latex.Escape(edu.Level),
			Institution:      latex.Escape(edu.Institution),
			Location:         latex.Escape(edu.Location),
			Specialization:   latex.Escape(edu.Specialization),
			StartDate:        latex.Escape(edu.StartDate.Format(dateLayout)),
			EndDate:          formatEndDate(edu.EndDate),
			Thesis:           latex.Escape(edu.Thesis),
			RelevantSubjects: latex.Escape(edu.RelevantSubjects),
		})
	}

	for _, exp := range snap.Experience {
		info.Experience = append(info.Experience, formattedExperience{
			Company:     latex.Escape(exp.Company),
			Title:       latex.Escape(exp.Title),
			Location:    latex.Escape(exp.Location),
			StartDate:   latex.Escape(exp.StartDate.Format(dateLayout)),
			EndDate:     formatEndDate(exp.EndDate),
			Description: formatDescription(exp.Description),
		})
	}

	out, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func formatEndDate(end *time.Time) string {
	if end == nil {
		return "Present"
	}
	return latex.Escape(end.Format(dateLayout))
}

// formatDescription splits newline-delimited bullet text into escaped lines,
// dropping blanks.
func formatDescription(desc string) []string {
	lines := strings.Split(desc, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, latex.Escape(line))
	}
	return out
}
