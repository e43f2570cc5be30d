package parse

import (
	"context"
	"fmt"
	"os"
	"strings"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/minicc/minic/compiler/ast"
)

type (
	State struct {
		b []byte // all files concatenated

		files []file
	}

	file struct {
		base int
		size int
		name string
	}

	UnexpectedError struct {
		Token Token
		Want  []Token
	}

	PartialReadError struct {
		End int
	}
)

func ParseFile(ctx context.Context, name string) (*ast.Program, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	s := New()

	s.AddFile(name, data)

	return s.Parse(ctx)
}

func Parse(ctx context.Context, text []byte) (*ast.Program, error) {
	s := New()

	s.AddFile("", text)

	return s.Parse(ctx)
}

func New() *State {
	return &State{}
}

func (s *State) AddFile(name string, text []byte) {
	f := file{
		name: name,
		base: len(s.b),
		size: len(text),
	}

	s.b = append(s.b, text...)

	s.files = append(s.files, f)
}

func (s *State) Parse(ctx context.Context) (x *ast.Program, err error) {
	x, i, err := s.parseProgram(ctx, 0)
	if err != nil {
		return nil, errors.Wrap(err, "at %v", s.Position(i))
	}

	tk, tst, _ := s.next(ctx, i)
	if tk != nil {
		return nil, errors.Wrap(PartialReadError{End: tst}, "at %v", s.Position(tst))
	}

	tlog.SpanFromContext(ctx).V("parse").Printw("parsed", "func", x.Func.Name, "externs", len(x.Externs))

	return x, nil
}

func (s *State) Text(pos, end int) []byte {
	return s.b[pos:end]
}

// Position formats offset as file:line:col.
func (s *State) Position(pos int) string {
	name := ""
	base := 0

	for _, f := range s.files {
		if pos >= f.base && pos <= f.base+f.size {
			name, base = f.name, f.base
			break
		}
	}

	if pos > len(s.b) {
		pos = len(s.b)
	}

	text := s.b[base:pos]

	line := 1 + strings.Count(string(text), "\n")
	col := pos - base + 1

	if nl := strings.LastIndexByte(string(text), '\n'); nl >= 0 {
		col = len(text) - nl
	}

	return fmt.Sprintf("%s:%d:%d", name, line, col)
}

func NewUnexpected(got Token, want ...Token) error {
	return UnexpectedError{
		Token: got,
		Want:  want,
	}
}

func (e UnexpectedError) Error() string {
	l := make([]string, len(e.Want))

	for i, w := range e.Want {
		l[i] = tokenString(w)
	}

	return fmt.Sprintf("unexpected token: %v, want: %v", tokenString(e.Token), strings.Join(l, ", "))
}

func (e PartialReadError) Error() string {
	return "unexpected text after function"
}

func tokenString(tk Token) string {
	switch tk := tk.(type) {
	case nil:
		return "EOF"
	case Punct:
		return fmt.Sprintf("%q", string(tk))
	case Keyword:
		if tk == "" {
			return "keyword"
		}

		return string(tk)
	case Ident:
		if tk == "" {
			return "identifier"
		}

		return fmt.Sprintf("identifier %s", string(tk))
	case Number:
		if tk == "" {
			return "number"
		}

		return fmt.Sprintf("number %s", string(tk))
	case Invalid:
		return fmt.Sprintf("%q", string(tk))
	default:
		return fmt.Sprintf("%v", tk)
	}
}
