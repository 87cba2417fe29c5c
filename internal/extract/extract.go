// Package extract turns uploaded documents into plain input text.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFError marks a failed PDF extraction. The caller treats it as a
// non-fatal warning and leaves any existing input text untouched.
type PDFError struct {
	Err error
}

func (e *PDFError) Error() string {
	return fmt.Sprintf("reading pdf: %v", e.Err)
}

func (e *PDFError) Unwrap() error {
	return e.Err
}

// ErrUnsupportedType is returned for anything other than .txt or .pdf.
var ErrUnsupportedType = fmt.Errorf("unsupported file type, expected .txt or .pdf")

// Text extracts plain text from an uploaded .txt or .pdf file. The file
// type is decided by the filename extension, matching the upload widget's
// accept list.
func Text(filename string, r io.Reader) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("reading text file: %w", err)
		}
		return string(data), nil
	case ".pdf":
		return pdfText(r)
	default:
		return "", ErrUnsupportedType
	}
}

func pdfText(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", &PDFError{Err: err}
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &PDFError{Err: err}
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return "", &PDFError{Err: err}
	}

	var builder strings.Builder
	if _, err := io.Copy(&builder, content); err != nil {
		return "", &PDFError{Err: err}
	}
	return builder.String(), nil
}
