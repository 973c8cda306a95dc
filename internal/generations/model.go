package generations

import (
	"encoding/json"
	"time"
)

// Document kinds a generation request may ask for.
const (
	KindCV          = "cv"
	KindCoverLetter = "cover_letter"
)

// ValidKind reports whether k is a known document kind.
func ValidKind(k string) bool {
	return k == KindCV || k == KindCoverLetter
}

// Generation is one immutable result of a document-generation request.
// The payload is the structured provider response; its latex_code field
// holds the markup document, still transport-escaped.
type Generation struct {
	ID             string
	UserID         string
	Kind           string
	JobDescription string
	Payload        json.RawMessage
	JobTitle       string
	Company        string
	CreatedAt      time.Time
}

// LatexCode extracts the markup document from the stored payload. A
// missing or empty field yields "".
func (g Generation) LatexCode() string {
	var body struct {
		LatexCode string `json:"latex_code"`
	}
	if err := json.Unmarshal(g.Payload, &body); err != nil {
		return ""
	}
	return body.LatexCode
}
