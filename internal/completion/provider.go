package completion

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/atinylittleshell/pathcomplete/internal/filepaths"
	"github.com/atinylittleshell/pathcomplete/internal/input"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Candidate is a completion for the word under the cursor.
type Candidate struct {
	// Text is inserted in place of the replaced characters.
	Text string

	// Offset is zero or negative: the number of characters before the cursor
	// that Text replaces, negated.
	Offset int
}

// Options configures a Provider.
type Options struct {
	// Expander resolves "~" and environment variables. Defaults to one over
	// the process environment.
	Expander *filepaths.Expander

	// PwdGetter returns the directory relative words are resolved against.
	// Defaults to the process working directory.
	PwdGetter func() string

	// Logger receives listing failures. Defaults to a no-op logger.
	Logger *zap.Logger

	// MaxSuggestions caps the number of candidates. Zero means no cap.
	MaxSuggestions int
}

// Provider produces file path completions for an input line.
type Provider struct {
	expander       *filepaths.Expander
	pwdGetter      func() string
	logger         *zap.Logger
	maxSuggestions int
}

// NewProvider creates a new completion Provider.
func NewProvider(opts Options) *Provider {
	p := &Provider{
		expander:       opts.Expander,
		pwdGetter:      opts.PwdGetter,
		logger:         opts.Logger,
		maxSuggestions: opts.MaxSuggestions,
	}

	if p.expander == nil {
		p.expander = filepaths.NewExpander(nil)
	}
	if p.pwdGetter == nil {
		p.pwdGetter = func() string {
			pwd, err := os.Getwd()
			if err != nil {
				return ""
			}
			return pwd
		}
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}

	return p
}

// GetCompletions returns completion candidates for the word that ends at the
// cursor. pos counts characters, not bytes. A cursor right after whitespace
// completes an empty word, which lists the working directory.
func (p *Provider) GetCompletions(line string, pos int) []Candidate {
	return p.FindFiles(CurrentWord(line, pos))
}

// Texts returns the text of every candidate, in order.
func Texts(candidates []Candidate) []string {
	return lo.Map(candidates, func(c Candidate, _ int) string {
		return c.Text
	})
}

// FindFiles completes word as a file path. Candidates are sorted, carry the
// offset of word's last component, and are quoted when they contain spaces.
// Listing failures are logged and produce no candidates.
func (p *Provider) FindFiles(word string) []Candidate {
	_, lastDir, position := filepaths.ParsePath(word)

	names, err := p.expander.SuggestPath(p.resolve(word))
	if err != nil {
		p.logger.Debug("failed to list completions", zap.String("word", word), zap.Error(err))
		return []Candidate{}
	}

	candidates := lo.FilterMap(slices.Sorted(names), func(name string, _ int) (Candidate, bool) {
		text, ok := filepaths.CompletePath(name, lastDir)
		if !ok {
			return Candidate{}, false
		}
		if strings.Contains(text, " ") {
			text = "\"" + text + "\""
		}
		return Candidate{Text: text, Offset: position}, true
	})

	if p.maxSuggestions > 0 && len(candidates) > p.maxSuggestions {
		candidates = candidates[:p.maxSuggestions]
	}
	return candidates
}

// resolve anchors a relative word at the working directory. Absolute words
// and words starting with "~" or "$" are left for expansion.
func (p *Provider) resolve(word string) string {
	if filepath.IsAbs(word) || strings.HasPrefix(word, "~") || strings.HasPrefix(word, "$") {
		return word
	}

	pwd := p.pwdGetter()
	if pwd == "" {
		return word
	}
	return strings.TrimRight(pwd, string(os.PathSeparator)) + string(os.PathSeparator) + word
}

// CurrentWord returns the whitespace-delimited word that ends at pos.
// pos counts characters and is clamped to the line.
func CurrentWord(line string, pos int) string {
	runes := []rune(line)
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}

	start, _ := input.GetWordBoundary(line, pos)
	return string(runes[start:pos])
}
