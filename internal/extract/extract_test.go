package extract

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextPlainFile(t *testing.T) {
	out, err := Text("notes.txt", strings.NewReader("hello world\nline two"))
	require.NoError(t, err)
	assert.Equal(t, "hello world\nline two", out)
}

func TestTextUppercaseExtension(t *testing.T) {
	out, err := Text("NOTES.TXT", strings.NewReader("shouting"))
	require.NoError(t, err)
	assert.Equal(t, "shouting", out)
}

func TestTextUnsupportedType(t *testing.T) {
	_, err := Text("image.png", strings.NewReader("binary"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestTextCorruptPDFIsPDFError(t *testing.T) {
	_, err := Text("broken.pdf", strings.NewReader("not a pdf at all"))
	require.Error(t, err)

	var pdfErr *PDFError
	assert.True(t, errors.As(err, &pdfErr), "corrupt pdf must classify as PDFError, got %v", err)
}
