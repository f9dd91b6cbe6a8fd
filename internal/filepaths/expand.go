package filepaths

import (
	"iter"
	"os"
	"os/user"
	"regexp"
	"strings"

	"mvdan.cc/sh/v3/expand"
)

// varPattern matches $name and ${name} references.
var varPattern = regexp.MustCompile(`\$(\w+|\{[^}]*\})`)

// Expander resolves "~" and environment variable references in typed paths.
// Variables are read from an expand.Environ so that a shell runner's
// environment can be used instead of the process environment.
type Expander struct {
	env         expand.Environ
	lookupUser  func(name string) (*user.User, error)
	currentUser func() (*user.User, error)
}

// NewExpander creates an Expander reading variables from env. A nil env
// uses a snapshot of the process environment.
func NewExpander(env expand.Environ) *Expander {
	if env == nil {
		env = expand.ListEnviron(os.Environ()...)
	}
	return &Expander{
		env:         env,
		lookupUser:  user.Lookup,
		currentUser: user.Current,
	}
}

// Expand applies home expansion and then variable expansion. The order is
// fixed: a "~" produced by a variable's value stays literal.
func (e *Expander) Expand(path string) string {
	return Apply(path, e.ExpandUser, e.ExpandVars)
}

// ExpandUser replaces a leading "~" or "~name" component with the matching
// home directory. HOME takes precedence for the current user. If the home
// directory cannot be determined the path is returned unchanged.
func (e *Expander) ExpandUser(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	i := strings.Index(path[1:], separator) + 1
	if i == 0 {
		i = len(path)
	}

	var home string
	if i == 1 {
		if v := e.env.Get("HOME"); v.IsSet() {
			home = v.String()
		} else {
			u, err := e.currentUser()
			if err != nil {
				return path
			}
			home = u.HomeDir
		}
	} else {
		u, err := e.lookupUser(path[1:i])
		if err != nil {
			return path
		}
		home = u.HomeDir
	}

	home = strings.TrimRight(home, separator)
	if expanded := home + path[i:]; expanded != "" {
		return expanded
	}
	return separator
}

// ExpandVars replaces $name and ${name} with the variable's value. References
// to unset variables are left as written.
func (e *Expander) ExpandVars(path string) string {
	if !strings.Contains(path, "$") {
		return path
	}
	return varPattern.ReplaceAllStringFunc(path, func(ref string) string {
		name := strings.TrimPrefix(ref, "$")
		if strings.HasPrefix(name, "{") {
			name = strings.TrimSuffix(strings.TrimPrefix(name, "{"), "}")
		}
		if name == "" {
			return ref
		}
		v := e.env.Get(name)
		if !v.IsSet() {
			return ref
		}
		return v.String()
	})
}

// SuggestPath returns the entries that could complete rootDir.
//
// rootDir is expanded, then split into a directory and a basename. With an
// empty basename (the input ends at a directory boundary, or is empty) every
// non-hidden entry of the directory is suggested. Otherwise entries starting
// with the basename are suggested; matching is case-sensitive. Directories
// carry a trailing separator.
//
// The returned sequence is lazy and single-pass. Listing failures are
// reported by the error, not during iteration.
func (e *Expander) SuggestPath(rootDir string) (iter.Seq[string], error) {
	dir, basename := splitPath(e.Expand(rootDir))

	keep := func(entry string) bool {
		return strings.HasPrefix(entry, basename)
	}
	if basename == "" {
		keep = func(entry string) bool {
			return !isHidden(entry)
		}
	}

	entries, err := ListPath(dir)
	if err != nil {
		return nil, err
	}
	return filterOnce(entries, keep), nil
}
