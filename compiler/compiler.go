package compiler

import (
	"context"
	"os"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/minicc/minic/compiler/ast"
	"github.com/minicc/minic/compiler/parse"
	"github.com/minicc/minic/compiler/semantic"
)

func CheckFile(ctx context.Context, name string) (*ast.Program, error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	tlog.SpanFromContext(ctx).V("file").Printw("read file", "size", len(text), "name", name)

	return Check(ctx, name, text)
}

// Check parses text and runs semantic analysis on it.
// The program is returned only if it's valid.
func Check(ctx context.Context, name string, text []byte) (x *ast.Program, err error) {
	st := parse.New()

	st.AddFile(name, text)

	x, err = st.Parse(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "parse")
	}

	err = semantic.Analyze(ctx, x)
	if err != nil {
		return nil, errors.Wrap(err, "analyze")
	}

	return x, nil
}
