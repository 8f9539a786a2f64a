package llm

import (
	_ "embed"
	"strings"
)

//go:embed prompts/resume_v1.txt
var resumePromptV1 string

const resumeTextPlaceholder = "{{RESUME_TEXT}}"

// BuildPrompt embeds the recovered resume text into the fixed analysis instruction.
func BuildPrompt(resumeText string) string {
	return strings.Replace(resumePromptV1, resumeTextPlaceholder, resumeText, 1)
}
