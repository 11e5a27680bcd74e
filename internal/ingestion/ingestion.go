// Package ingestion extracts plain text from résumé files. Supported
// formats: PDF, DOCX, and plain text.
package ingestion

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// UnsupportedFormatError reports a file extension this package cannot
// read.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported resume format %q (supported: .pdf, .docx, .txt, .md)", e.Ext)
}

// ParseError reports a file that matched a supported format but could
// not be read.
type ParseError struct {
	Path  string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// ExtractText reads the file and returns its plain text content,
// dispatching on the file extension.
func ExtractText(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		return extractPDF(path)
	case ".docx":
		return extractDOCX(path)
	case ".txt", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", &ParseError{Path: path, Cause: err}
		}
		return string(data), nil
	default:
		return "", &UnsupportedFormatError{Ext: ext}
	}
}

func extractPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", &ParseError{Path: path, Cause: err}
	}
	defer f.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return "", &ParseError{Path: path, Cause: err}
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(content); err != nil {
		return "", &ParseError{Path: path, Cause: err}
	}
	return buf.String(), nil
}

// extractDOCX reads word/document.xml out of the DOCX container and
// collects the text runs, one line per paragraph.
func extractDOCX(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", &ParseError{Path: path, Cause: err}
	}
	defer archive.Close()

	var document *zip.File
	for _, file := range archive.File {
		if file.Name == "word/document.xml" {
			document = file
			break
		}
	}
	if document == nil {
		return "", &ParseError{Path: path, Cause: fmt.Errorf("word/document.xml not found")}
	}

	rc, err := document.Open()
	if err != nil {
		return "", &ParseError{Path: path, Cause: err}
	}
	defer rc.Close()

	text, err := decodeDocumentXML(rc)
	if err != nil {
		return "", &ParseError{Path: path, Cause: err}
	}
	return text, nil
}

func decodeDocumentXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var sb strings.Builder
	inText := false
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
