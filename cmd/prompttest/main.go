package main

// Inspect the exact prompt a generation request would send:
//   go run ./cmd/prompttest -kind cv -jd ./jd.txt

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"cvforge-backend/internal/latex"
	"cvforge-backend/internal/llm"
	"cvforge-backend/internal/profiles"
)

func main() {
	kind := flag.String("kind", "cv", "document kind: cv or cover_letter")
	jdPath := flag.String("jd", "", "path to a job description file")
	outPath := flag.String("out", "", "write the prompt to this path instead of stdout")
	flag.Parse()

	jobDescription := "Senior Engineer role requiring Go and cloud experience"
	if strings.TrimSpace(*jdPath) != "" {
		raw, err := os.ReadFile(*jdPath)
		if err != nil {
			exitErr(fmt.Sprintf("read job description: %v", err))
		}
		jobDescription = string(raw)
	}

	info, err := profiles.FormatInfo(sampleSnapshot(), "jane@example.com")
	if err != nil {
		exitErr(fmt.Sprintf("format profile info: %v", err))
	}

	var prompt string
	switch *kind {
	case "cv":
		prompt = llm.BuildCVPrompt(info, jobDescription, latex.CVTemplate())
	case "cover_letter":
		prompt = llm.BuildCoverLetterPrompt(info, jobDescription, latex.CoverLetterTemplate())
	default:
		exitErr(fmt.Sprintf("unknown kind %q", *kind))
	}

	if strings.TrimSpace(*outPath) == "" {
		fmt.Println(prompt)
		return
	}
	if err := os.WriteFile(*outPath, []byte(prompt), 0o644); err != nil {
		exitErr(fmt.Sprintf("write prompt: %v", err))
	}
	fmt.Printf("OK: wrote %s\n", *outPath)
}

func sampleSnapshot() profiles.Snapshot {
	eduEnd := time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC)
	return profiles.Snapshot{
		Profile: profiles.Profile{
			Name:    "Jane Doe",
			Phone:   "+1 555 000 0000",
			Summary: "Backend engineer focused on reliability and 50% faster deploys",
			Skills:  `["Go","PostgreSQL","AWS"]`,
		},
		Education: []profiles.Education{{
			Level:       "BSc",
			Institution: "State University",
			StartDate:   time.Date(2017, 9, 1, 0, 0, 0, 0, time.UTC),
			EndDate:     &eduEnd,
		}},
		Experience: []profiles.Experience{{
			Company:     "Initech",
			Title:       "Engineer",
			StartDate:   time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC),
			Description: "built billing pipeline\nreduced incident rate by 40%",
		}},
	}
}

func exitErr(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
