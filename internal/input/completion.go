// Package input holds line-editing state for path completion: which
// suggestion is selected while cycling with Tab, and how a suggestion is
// spliced into the input line.
package input

import (
	"strings"
	"unicode"
)

// CompletionState tracks the state of tab completion. It manages the list of
// suggestions, the current selection, and the text boundaries where the
// completion is applied.
type CompletionState struct {
	// active indicates whether completion mode is currently active
	active bool

	// suggestions is the list of completion candidates
	suggestions []string

	// selected is the index of the currently selected suggestion (-1 if none)
	selected int

	// startPos and endPos bound the replaced text, in characters
	startPos int
	endPos   int

	// originalText stores the input text before completion started
	// (used for cancellation and for re-applying while cycling)
	originalText string
}

// NewCompletionState creates a new CompletionState in its initial (inactive) state.
func NewCompletionState() *CompletionState {
	return &CompletionState{
		selected: -1,
	}
}

// Reset clears all completion state and returns to inactive mode.
func (cs *CompletionState) Reset() {
	cs.active = false
	cs.suggestions = nil
	cs.selected = -1
	cs.startPos = 0
	cs.endPos = 0
	cs.originalText = ""
}

// Activate starts a new completion session over originalText. Suggestions
// replace the characters in [startPos, endPos).
func (cs *CompletionState) Activate(originalText string, suggestions []string, startPos, endPos int) {
	cs.active = true
	cs.originalText = originalText
	cs.suggestions = suggestions
	cs.selected = -1
	cs.startPos = startPos
	cs.endPos = endPos
}

// IsActive returns true if completion mode is currently active.
func (cs *CompletionState) IsActive() bool {
	return cs.active
}

// IsVisible returns true if there are multiple suggestions to display.
func (cs *CompletionState) IsVisible() bool {
	return cs.active && len(cs.suggestions) > 1
}

func (cs *CompletionState) Suggestions() []string {
	return cs.suggestions
}

// CurrentSuggestion returns the currently selected suggestion.
// Returns empty string if no suggestion is selected or completion is inactive.
func (cs *CompletionState) CurrentSuggestion() string {
	if !cs.active || cs.selected < 0 || cs.selected >= len(cs.suggestions) {
		return ""
	}
	return cs.suggestions[cs.selected]
}

// NextSuggestion advances to the next suggestion and returns it.
// Wraps around to the first suggestion after the last one.
func (cs *CompletionState) NextSuggestion() string {
	if !cs.active || len(cs.suggestions) == 0 {
		return ""
	}
	cs.selected = (cs.selected + 1) % len(cs.suggestions)
	return cs.suggestions[cs.selected]
}

// PrevSuggestion moves to the previous suggestion and returns it.
// Wraps around to the last suggestion before the first one.
func (cs *CompletionState) PrevSuggestion() string {
	if !cs.active || len(cs.suggestions) == 0 {
		return ""
	}
	cs.selected--
	if cs.selected < 0 {
		cs.selected = len(cs.suggestions) - 1
	}
	return cs.suggestions[cs.selected]
}

// Apply splices the current suggestion into the original text.
func (cs *CompletionState) Apply() CompletionResult {
	return ApplySuggestion(cs.originalText, cs.CurrentSuggestion(), cs.startPos, cs.endPos)
}

// Cancel returns the original text and resets the state.
func (cs *CompletionState) Cancel() string {
	originalText := cs.originalText
	cs.Reset()
	return originalText
}

// Render lists the suggestions one per line. format renders a single line;
// when nil, the selected suggestion is marked with "> " and the others are
// indented to match.
func (cs *CompletionState) Render(format func(suggestion string, selected bool) string) string {
	if !cs.IsVisible() {
		return ""
	}
	if format == nil {
		format = markSelected
	}

	var b strings.Builder
	for i, suggestion := range cs.suggestions {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(format(suggestion, i == cs.selected))
	}
	return b.String()
}

func markSelected(suggestion string, selected bool) string {
	if selected {
		return "> " + suggestion
	}
	return "  " + suggestion
}

// GetWordBoundary finds the start and end positions of the word at the given
// cursor position in the input text. A word is defined as a sequence of
// non-whitespace characters. Positions count characters.
func GetWordBoundary(text string, cursorPos int) (start, end int) {
	if len(text) == 0 {
		return 0, 0
	}

	runes := []rune(text)
	runeLen := len(runes)

	if cursorPos < 0 {
		cursorPos = 0
	}
	if cursorPos > runeLen {
		cursorPos = runeLen
	}

	start = cursorPos
	for start > 0 && !unicode.IsSpace(runes[start-1]) {
		start--
	}

	end = cursorPos
	for end < runeLen && !unicode.IsSpace(runes[end]) {
		end++
	}

	return start, end
}

// CompletionResult represents the result of applying a completion suggestion.
type CompletionResult struct {
	// NewText is the resulting text after applying the completion
	NewText string
	// NewCursorPos is the new cursor position, in characters
	NewCursorPos int
}

// ApplySuggestion replaces the characters of text between startPos and
// endPos with suggestion. The cursor lands at the end of the inserted text.
func ApplySuggestion(text string, suggestion string, startPos, endPos int) CompletionResult {
	runes := []rune(text)
	if endPos > len(runes) {
		endPos = len(runes)
	}
	if endPos < 0 {
		endPos = 0
	}
	if startPos > endPos {
		startPos = endPos
	}
	if startPos < 0 {
		startPos = 0
	}

	newText := string(runes[:startPos]) + suggestion + string(runes[endPos:])

	return CompletionResult{
		NewText:      newText,
		NewCursorPos: startPos + len([]rune(suggestion)),
	}
}
