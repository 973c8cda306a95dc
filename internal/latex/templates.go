package latex

import _ "embed"

var (
	//go:embed templates/cv.tex
	cvTemplate string
	//go:embed templates/cover_letter.tex
	coverLetterTemplate string
)

// CVTemplate returns the example one-page article CV embedded in prompts.
func CVTemplate() string {
	return cvTemplate
}

// CoverLetterTemplate returns the moderncv cover letter skeleton embedded
// in prompts.
func CoverLetterTemplate() string {
	return coverLetterTemplate
}
