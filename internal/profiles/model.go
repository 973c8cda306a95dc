package profiles

import "time"

// Profile holds a user's biographical data used as generation source
// material. Exactly one exists per user identity; it is created on first
// touch. The four list-like fields hold either a JSON array or a
// comma-separated string, parsed lazily by the prompt formatter.
type Profile struct {
	ID           string
	UserID       string
	Name         string
	Phone        string
	LinkedInURL  string
	Summary      string
	Skills       string
	Publications string
	Projects     string
	Interests    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Education is one education entry belonging to a profile.
type Education struct {
	ID               string
	ProfileID        string
	Level            string
	Institution      string
	Location         string
	StartDate        time.Time
	EndDate          *time.Time // nil = ongoing
	Specialization   string
	Thesis           string
	RelevantSubjects string
	CreatedAt        time.Time
}

// Experience is one work experience entry belonging to a profile. The
// description holds newline-delimited bullet lines.
type Experience struct {
	ID          string
	ProfileID   string
	Company     string
	Location    string
	Title       string
	StartDate   time.Time
	EndDate     *time.Time // nil = current position
	Description string
	CreatedAt   time.Time
}

// Snapshot bundles a profile with its entries for prompt assembly.
type Snapshot struct {
	Profile    Profile
	Education  []Education
	Experience []Experience
}
