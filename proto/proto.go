package proto

import "strings"

const (
	// Terminal Control
	LF     = "\n"
	CR     = "\r"
	Prompt = "SW42DA>"

	// Placeholder is replaced with the caller supplied value in templated
	// commands (e.g. "OUT 21 VOL XX").
	Placeholder = "XX"
)

// Response is the ordered list of lines returned by the device for one
// command, line terminators stripped. Blank lines are kept since they
// terminate tables in the STATUS report.
type Response []string

type LineType int

const (
	TypeData   LineType = iota // Report content
	TypeBlank                  // Section separator
	TypePrompt                 // Device is ready for the next command
)

// Classify identifies the nature of a response line
func Classify(line string) LineType {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == Prompt:
		return TypePrompt
	case trimmed == "":
		return TypeBlank
	default:
		return TypeData
	}
}
