package summarize

import "fmt"

const promptTemplate = `Provide a %s summary.

Language: %s
Format: %s

Text:
%s`

// BuildPrompt renders the model instructions for a request and returns the
// sampling temperature that goes with the requested length. The input text
// is embedded verbatim: no truncation, no re-encoding.
func BuildPrompt(req GenerateRequest) (string, float64) {
	prompt := fmt.Sprintf(promptTemplate,
		req.Length.descriptor(),
		req.Language,
		req.Format.label(),
		req.Text,
	)
	return prompt, req.Length.Temperature()
}
