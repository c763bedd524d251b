package llm

// DefaultPromptMaxChars bounds how much document text is embedded in the
// prompt. Overridable via PROMPT_MAX_CHARS.
const DefaultPromptMaxChars = 200

// BuildReportPrompt builds the single-turn report prompt from extracted
// document text, truncated to at most maxChars characters.
func BuildReportPrompt(text string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultPromptMaxChars
	}
	return "Get email from " + truncate(text, maxChars)
}

func truncate(text string, maxChars int) string {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	return string(runes[:maxChars])
}
