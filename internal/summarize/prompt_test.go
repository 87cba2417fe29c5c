package summarize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemperatureTable(t *testing.T) {
	tests := []struct {
		length Length
		want   float64
	}{
		{LengthVeryShort, 0.1},
		{LengthShort, 0.3},
		{LengthBalanced, 0.5},
		{LengthDetailed, 0.7},
		{LengthVeryDetailed, 0.9},
	}

	for _, tt := range tests {
		t.Run(string(tt.length), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.length.Temperature())
		})
	}
}

func TestBuildPromptCarriesAllInstructions(t *testing.T) {
	req := GenerateRequest{
		Text:      "  Some text with  odd   spacing.\nAnd a second line. ",
		Length:    LengthVeryDetailed,
		MaxTokens: 300,
		Language:  LanguageHindi,
		Format:    FormatBulletPoints,
	}

	prompt, temperature := BuildPrompt(req)

	assert.Equal(t, 0.9, temperature)
	assert.Contains(t, prompt, "Provide a very detailed summary.")
	assert.Contains(t, prompt, "Language: Hindi")
	assert.Contains(t, prompt, "Format: Bullet points")
	// The input text is embedded verbatim, whitespace and all.
	assert.True(t, strings.HasSuffix(prompt, "Text:\n"+req.Text))
}

func TestBuildPromptParagraphEnglish(t *testing.T) {
	prompt, temperature := BuildPrompt(GenerateRequest{
		Text:     "short input",
		Length:   LengthBalanced,
		Language: LanguageEnglish,
		Format:   FormatParagraph,
	})

	assert.Equal(t, 0.5, temperature)
	assert.Contains(t, prompt, "Provide a balanced summary.")
	assert.Contains(t, prompt, "Language: English")
	assert.Contains(t, prompt, "Format: Paragraph")
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 0, WordCount("   \n\t "))
	assert.Equal(t, 3, WordCount("one  two\nthree"))
}

func TestReductionPercent(t *testing.T) {
	assert.Equal(t, 80.0, ReductionPercent(100, 20))
	assert.Equal(t, 0.0, ReductionPercent(0, 5), "empty original must not divide by zero")
	assert.Equal(t, -50.0, ReductionPercent(10, 15), "a longer summary reports negative reduction")
}
