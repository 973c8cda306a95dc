package profiles

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestFormatInfoEscapesAndStructures(t *testing.T) {
	start := time.Date(2019, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 6, 30, 0, 0, 0, 0, time.UTC)

	snap := Snapshot{
		Profile: Profile{
			Name:     "Jane & Co",
			Phone:    "+41 79 000 00 00",
			Summary:  "Improved conversion by 50%",
			Skills:   `["Go", "C#"]`,
			Projects: "100% test coverage tool, side_project",
		},
		Education: []Education{{
			Level:       "MSc",
			Institution: "ETH Zurich",
			StartDate:   start,
			EndDate:     &end,
		}},
		Experience: []Experience{{
			Company:     "Acme_Labs",
			Title:       "Engineer",
			StartDate:   start,
			Description: "cut costs by 30%\n\nled team of 4",
		}},
	}

	out, err := FormatInfo(snap, "jane@example.com")
	if err != nil {
		t.Fatalf("FormatInfo: %v", err)
	}

	var decoded formattedInfo
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded.Name != `Jane \& Co` {
		t.Fatalf("expected escaped name, got %q", decoded.Name)
	}
	if decoded.Summary != `Improved conversion by 50\%` {
		t.Fatalf("expected escaped summary, got %q", decoded.Summary)
	}
	if len(decoded.Skills) != 2 || decoded.Skills[1] != `C\#` {
		t.Fatalf("unexpected skills: %v", decoded.Skills)
	}
	if decoded.Education[0].StartDate != "September 2019" {
		t.Fatalf("unexpected start date: %q", decoded.Education[0].StartDate)
	}
	if decoded.Education[0].EndDate != "June 2021" {
		t.Fatalf("unexpected end date: %q", decoded.Education[0].EndDate)
	}
	if decoded.Experience[0].EndDate != "Present" {
		t.Fatalf("expected Present for ongoing role, got %q", decoded.Experience[0].EndDate)
	}
	if decoded.Experience[0].Company != `Acme\_Labs` {
		t.Fatalf("expected escaped company, got %q", decoded.Experience[0].Company)
	}

	desc := decoded.Experience[0].Description
	if len(desc) != 2 {
		t.Fatalf("expected blank bullet lines dropped, got %v", desc)
	}
	if desc[0] != `cut costs by 30\%` {
		t.Fatalf("unexpected bullet: %q", desc[0])
	}
}

func TestFormatInfoEmptySnapshot(t *testing.T) {
	out, err := FormatInfo(Snapshot{}, "")
	if err != nil {
		t.Fatalf("FormatInfo: %v", err)
	}
	if !strings.Contains(out, `"education": []`) {
		t.Fatalf("expected empty education array, got:\n%s", out)
	}
	if !strings.Contains(out, `"skills": []`) {
		t.Fatalf("expected empty skills array, got:\n%s", out)
	}
}
