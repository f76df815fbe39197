// Package source reads the plain text of uploaded documents.
package source

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Supported document extensions.
const (
	ExtPDF      = ".pdf"
	ExtText     = ".txt"
	ExtMarkdown = ".md"
)

// ReadText returns the text of a .txt, .md or .pdf document with line
// endings normalized to "\n". PDF library errors are returned unchanged.
func ReadText(path string) (string, error) {
	var (
		text string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtText, ExtMarkdown:
		var data []byte
		data, err = os.ReadFile(path)
		text = string(data)
	case ExtPDF:
		text, err = readPDF(path)
	default:
		return "", fmt.Errorf("unsupported document type %q", filepath.Ext(path))
	}
	if err != nil {
		return "", err
	}
	return normalizeNewlines(text), nil
}

func readPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
