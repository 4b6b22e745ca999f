// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package resume

import (
	"bytes"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
)

// pdfText prefers the document's text layer and falls back to scraping
// printable bytes when the PDF cannot be parsed.
func pdfText(data []byte) string {
	text, err := textLayer(data)
	if err == nil && strings.TrimSpace(text) != "" {
		return text
	}
	if err != nil {
		slog.Debug("pdf text layer unavailable, using byte scan", "error", err)
	}
	return printableText(data)
}

func textLayer(data []byte) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("pdf reader panicked: %v", p)
		}
	}()

	reader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return "", fmt.Errorf("failed to get page count: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= numPages; i++ {
		page, err := reader.GetPage(i)
		if err != nil {
			continue
		}
		ex, err := extractor.New(page)
		if err != nil {
			continue
		}
		pageText, err := ex.ExtractText()
		if err != nil {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// printableText keeps printable ASCII plus line breaks, turns every other
// byte into a space and collapses whitespace runs.
func printableText(data []byte) string {
	out := make([]byte, len(data))
	for i, b := range data {
		if (b >= 0x20 && b <= 0x7E) || b == '\n' || b == '\r' {
			out[i] = b
		} else {
			out[i] = ' '
		}
	}
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(string(out), " "))
}
