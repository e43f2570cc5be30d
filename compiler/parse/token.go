package parse

import (
	"context"

	"tlog.app/go/loc"
	"tlog.app/go/tlog"
)

type (
	Token any

	Punct   string
	Keyword string
	Ident   string
	Number  string

	// Invalid is a piece of text no token starts with.
	Invalid string
)

var keywords = map[string]struct{}{
	"extern": {},
	"int":    {},
	"void":   {},
	"if":     {},
	"else":   {},
	"while":  {},
	"return": {},
}

// next returns token starting at or after st.
// tst is the token start, i is the position right after it.
// nil token means end of text.
func (s *State) next(ctx context.Context, st int) (tk Token, tst int, i int) {
	if tr := tlog.SpanFromContext(ctx); tr.If("parse_token") {
		defer func(st int) {
			tr.Printw("next token", "st", st, "tk", tk, "tk_type", tlog.NextAsType, tk, "tst", tst, "i", i, "from", loc.Callers(1, 3))
		}(st)
	}

	b := s.b

	st = skipComments(b, st)
	i = st

	if i == len(b) {
		return nil, st, i
	}

	c := b[i]

	switch c {
	case '(', ')', '{', '}', ';', ',', '+', '-', '*':
		return Punct(b[i : i+1]), st, i + 1
	case '<', '>', '=', '!':
		if i+1 < len(b) && b[i+1] == '=' {
			return Punct(b[i : i+2]), st, i + 2
		}

		if c == '!' {
			return Invalid(b[i : i+1]), st, i + 1
		}

		return Punct(b[i : i+1]), st, i + 1
	case '/':
		if i+1 < len(b) && b[i+1] == '*' {
			return Invalid(b[i:]), st, len(b) // unterminated comment
		}

		return Punct(b[i : i+1]), st, i + 1
	}

	switch {
	case c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_':
		e := skipIdent(b, i)

		if _, ok := keywords[string(b[i:e])]; ok {
			return Keyword(b[i:e]), st, e
		}

		return Ident(b[i:e]), st, e
	case c >= '0' && c <= '9':
		e := skipNum(b, i)

		return Number(b[i:e]), st, e
	default:
		return Invalid(b[i : i+1]), st, i + 1
	}
}

func skipNum(b []byte, i int) int {
	for i < len(b) && (b[i] >= '0' && b[i] <= '9') {
		i++
	}

	return i
}

func skipIdent(b []byte, i int) int {
	for i < len(b) && (b[i] >= 'a' && b[i] <= 'z' || b[i] >= 'A' && b[i] <= 'Z' || b[i] >= '0' && b[i] <= '9' || b[i] == '_') {
		i++
	}

	return i
}
