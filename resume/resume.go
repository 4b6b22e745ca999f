// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package resume

import (
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
)

// MaxFileSize is the largest résumé the careers form accepts.
const MaxFileSize = 5 << 20

// Fields are the values used to pre-fill the application form. Any of them
// may be empty.
type Fields struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (f Fields) Empty() bool {
	return f == Fields{}
}

// Kind is the decoding branch chosen for an upload.
type Kind int

const (
	KindText Kind = iota
	KindPDF
	KindWord
)

// DetectKind classifies an upload by its declared media type and file name.
func DetectKind(filename, mediaType string) Kind {
	mt := strings.ToLower(mediaType)
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case strings.Contains(mt, "word") || ext == ".doc" || ext == ".docx":
		return KindWord
	case mt == "application/pdf" || ext == ".pdf":
		return KindPDF
	default:
		return KindText
	}
}

// Extract reads an uploaded résumé and scrapes the candidate's name, email
// and phone. It never fails: unreadable or unsupported input gives the
// empty Fields.
func Extract(r io.Reader, filename, mediaType string) (fields Fields) {
	defer func() {
		if p := recover(); p != nil {
			slog.Warn("resume extraction panicked", "file", filename, "panic", p)
			fields = Fields{}
		}
	}()

	kind := DetectKind(filename, mediaType)
	if kind == KindWord {
		return Fields{}
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize))
	if err != nil {
		slog.Warn("resume read failed", "file", filename, "error", err)
		return Fields{}
	}
	if len(data) == 0 {
		return Fields{}
	}

	var text string
	if kind == KindPDF {
		text = pdfText(data)
	} else {
		text = string(data)
	}
	return ParseText(text)
}

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`(\+?1?[-.\s]?)?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})`)
	nonAlpha     = regexp.MustCompile(`[^a-zA-Z\s]`)
)

// headingWords mark lines that are résumé titles or job titles rather than
// a person's name.
var headingWords = map[string]bool{
	"resume": true, "curriculum": true, "vitae": true, "cv": true,
	"summary": true, "objective": true, "profile": true, "experience": true,
	"experienced": true, "education": true, "skills": true, "contact": true,
	"engineer": true, "developer": true, "software": true, "manager": true,
	"designer": true, "consultant": true, "analyst": true, "architect": true,
	"senior": true, "junior": true, "lead": true, "professional": true,
}

// ParseText runs the email, phone and name passes over already-decoded
// text.
func ParseText(text string) Fields {
	var f Fields
	f.Email = emailPattern.FindString(text)
	f.Phone = strings.TrimSpace(phonePattern.FindString(text))
	f.FirstName, f.LastName = findName(text)
	return f
}

func findName(text string) (first, last string) {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return "", ""
	}

	// first line with a middle name keeps only the outer words
	if words := strings.Fields(lines[0]); len(words) >= 2 && len(words) <= 3 && nameLike(lines[0], words) {
		return words[0], words[len(words)-1]
	}

	for _, l := range lines[:min(3, len(lines))] {
		words := strings.Fields(l)
		if len(words) == 2 && len(l) < 50 && nameLike(l, words) {
			return words[0], words[1]
		}
	}
	return "", ""
}

func nameLike(line string, words []string) bool {
	if nonAlpha.MatchString(line) {
		return false
	}
	for _, w := range words {
		if headingWords[strings.ToLower(w)] {
			return false
		}
	}
	return true
}
