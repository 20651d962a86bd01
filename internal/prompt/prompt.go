// Package prompt holds the instruction templates sent to the hosted
// models.
package prompt

import (
	"fmt"
	"unicode/utf8"
)

// DefaultVisionPrompt is attached to image analysis requests when the
// caller does not supply a prompt of their own.
const DefaultVisionPrompt = "Describe this image in detail, including objects, people, colors, setting, activities, and overall atmosphere."

// SummaryInputLimit caps how many characters of the extracted text are
// forwarded to the text model.
const SummaryInputLimit = 2000

const summaryTemplate = `<s>[INST] Please provide a concise summary of the following text. Focus on the main points, key information, and important details:

%s

Provide a clear, informative summary in 2-3 paragraphs. [/INST]`

// SummaryInstruction wraps text in the fixed summarization instruction,
// truncating the input to SummaryInputLimit characters first. The cut
// lands on a rune boundary so multi-byte text stays valid UTF-8.
func SummaryInstruction(text string) string {
	if utf8.RuneCountInString(text) > SummaryInputLimit {
		text = string([]rune(text)[:SummaryInputLimit])
	}
	return fmt.Sprintf(summaryTemplate, text)
}
