// Package engine renders template text against a resolved theme. A template
// is scanned left to right; placeholders are delimited by {{ and }}, and
// everything outside them is copied byte for byte.
package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jsvensson/tinct/internal/theme"
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// Placeholder is one parsed template token: a role reference plus an
// optional format directive. Constructed during a single render pass.
type Placeholder struct {
	Role      string
	Directive Directive
}

// UnterminatedError reports an opening delimiter with no matching close
// before end of input.
type UnterminatedError struct {
	Offset int
}

func (e *UnterminatedError) Error() string {
	return fmt.Sprintf("unterminated placeholder at offset %d", e.Offset)
}

// NestedError reports a second opening delimiter before the previous
// placeholder was closed.
type NestedError struct {
	Offset int
}

func (e *NestedError) Error() string {
	return fmt.Sprintf("nested placeholder at offset %d", e.Offset)
}

// ResolveError wraps a failure to resolve one placeholder with the context
// needed to diagnose it without re-running.
type ResolveError struct {
	Token string
	Mode  theme.Mode
	Err   error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolving {{%s}} in %s mode: %v", e.Token, e.Mode, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }

// Render substitutes all placeholders in the template text against the
// theme under the given mode. Rendering is deterministic: the same theme,
// mode and template always produce identical output. Any error aborts this
// template only; the input is never partially substituted on error.
func Render(text string, th theme.Theme, mode theme.Mode) (string, error) {
	var out strings.Builder
	out.Grow(len(text))

	rest := text
	offset := 0
	for {
		open := strings.Index(rest, openDelim)
		if open < 0 {
			out.WriteString(rest)
			return out.String(), nil
		}
		out.WriteString(rest[:open])

		body := rest[open+len(openDelim):]
		end := strings.Index(body, closeDelim)
		if end < 0 {
			return "", &UnterminatedError{Offset: offset + open}
		}
		if next := strings.Index(body[:end], openDelim); next >= 0 {
			return "", &NestedError{Offset: offset + open + len(openDelim) + next}
		}

		value, err := expand(body[:end], th, mode)
		if err != nil {
			return "", err
		}
		out.WriteString(value)

		consumed := open + len(openDelim) + end + len(closeDelim)
		offset += consumed
		rest = rest[consumed:]
	}
}

// expand resolves a single token. The special tokens mode, is_dark and
// is_light render run metadata; everything else is a role placeholder.
func expand(raw string, th theme.Theme, mode theme.Mode) (string, error) {
	token := strings.TrimSpace(raw)
	switch token {
	case "mode":
		return mode.String(), nil
	case "is_dark":
		return strconv.FormatBool(mode == theme.Dark), nil
	case "is_light":
		return strconv.FormatBool(mode == theme.Light), nil
	}

	ph, err := ParsePlaceholder(token)
	if err != nil {
		return "", &ResolveError{Token: token, Mode: mode, Err: err}
	}
	c, err := th.Resolve(ph.Role, mode)
	if err != nil {
		return "", &ResolveError{Token: token, Mode: mode, Err: err}
	}
	return ph.Directive.Apply(c), nil
}

// ParsePlaceholder parses the token text between delimiters. The grammar is
// role[.directive]; the directive defaults to hex. The long form
// colors.<role>.default.<directive> is accepted for compatibility with
// templates written for earlier releases.
func ParsePlaceholder(token string) (Placeholder, error) {
	parts := strings.Split(token, ".")
	if len(parts) > 1 && parts[0] == "colors" {
		parts = parts[1:]
	}
	if len(parts) > 1 && parts[1] == "default" {
		parts = append(parts[:1], parts[2:]...)
	}

	switch {
	case len(parts) == 1 && parts[0] != "":
		return Placeholder{Role: parts[0], Directive: DirectiveHex}, nil
	case len(parts) == 2 && parts[0] != "":
		d, err := ParseDirective(parts[1])
		if err != nil {
			return Placeholder{}, err
		}
		return Placeholder{Role: parts[0], Directive: d}, nil
	default:
		return Placeholder{}, fmt.Errorf("malformed placeholder %q: expected role or role.directive", token)
	}
}
