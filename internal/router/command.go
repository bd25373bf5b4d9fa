package router

import "strings"

// Command is the parsed form of a prefixed message.
type Command struct {
	// Name is the lowercased first token, empty when the prefix stands alone.
	Name string
	// Args is the remaining tokens rejoined with single spaces.
	Args string
	// Tokens are the individual argument tokens.
	Tokens []string
}

// IsCommand reports whether the trimmed text starts with the prefix.
func IsCommand(text, prefix string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), prefix)
}

// Parse splits a prefixed message into a Command. Callers must have checked
// IsCommand first; Parse on non-command text yields an empty name.
func Parse(text, prefix string) Command {
	trimmed := strings.TrimSpace(text)
	stripped := strings.TrimPrefix(trimmed, prefix)

	fields := strings.Fields(stripped)
	if len(fields) == 0 {
		return Command{}
	}
	return Command{
		Name:   strings.ToLower(fields[0]),
		Args:   strings.Join(fields[1:], " "),
		Tokens: fields[1:],
	}
}
