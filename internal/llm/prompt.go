package llm

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/cv_v1.txt
	cvPromptV1 string
	//go:embed prompts/cover_letter_v1.txt
	coverLetterPromptV1 string
)

// BuildCVPrompt interpolates the escaped profile info, the job description
// and the LaTeX template into the CV instruction prompt. Pure function; the
// resulting prompt always demands a single-key {"latex_code": ...} object
// and forbids fabricating content absent from the profile info.
func BuildCVPrompt(profileInfo, jobDescription, latexTemplate string) string {
	return interpolate(cvPromptV1, profileInfo, jobDescription, latexTemplate)
}

// BuildCoverLetterPrompt is the cover-letter counterpart of BuildCVPrompt.
func BuildCoverLetterPrompt(profileInfo, jobDescription, latexTemplate string) string {
	return interpolate(coverLetterPromptV1, profileInfo, jobDescription, latexTemplate)
}

func interpolate(template, profileInfo, jobDescription, latexTemplate string) string {
	replacer := strings.NewReplacer(
		"{{USER_INFO}}", profileInfo,
		"{{JOB_DESCRIPTION}}", jobDescription,
		"{{LATEX_TEMPLATE}}", latexTemplate,
	)
	return replacer.Replace(template)
}
