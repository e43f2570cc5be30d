package semantic

import (
	"context"

	"tlog.app/go/errors"
	"tlog.app/go/loc"
	"tlog.app/go/tlog"

	"github.com/minicc/minic/compiler/ast"
)

type (
	analyzer struct {
		tr tlog.Span

		s *Stack
	}
)

// Analyze checks that every variable use is declared in an open scope
// and no scope declares a name twice.
// It stops at the first violation and returns it as UndeclaredError or DuplicateError.
// Nothing is logged unless semantic or scope topic is enabled.
func Analyze(ctx context.Context, root ast.Node) (err error) {
	var tr tlog.Span

	if tlog.SpanFromContext(ctx).If("semantic,scope") {
		tr, _ = tlog.SpawnFromContextAndWrap(ctx, "semantic: analyze")
		defer tr.Finish("err", &err)
	}

	a := &analyzer{
		tr: tr,
		s:  NewStack(),
	}

	return a.node(root)
}

func (a *analyzer) node(x ast.Node) error {
	switch x := x.(type) {
	case nil:
		return nil
	case *ast.Program:
		if x == nil {
			return nil
		}

		return a.node(x.Func)
	case *ast.Func:
		if x == nil {
			return nil
		}

		return a.fn(x)
	case *ast.Block:
		if x == nil {
			return nil
		}

		return a.block(x, true)
	case *ast.Assign:
		if x.Lhs != nil {
			err := a.use(x.Lhs.Name, x.Lhs.Pos)
			if err != nil {
				return err
			}
		}

		return a.node(x.Rhs)
	case *ast.If:
		err := a.node(x.Cond)
		if err != nil {
			return err
		}

		err = a.node(x.Then)
		if err != nil {
			return err
		}

		return a.node(x.Else)
	case *ast.While:
		err := a.node(x.Cond)
		if err != nil {
			return err
		}

		return a.node(x.Body)
	case *ast.Call:
		return a.node(x.Arg)
	case *ast.Return:
		return a.node(x.Value)
	case *ast.Decl:
		return a.declare(x.Name, x.Pos)
	case *ast.Var:
		return a.use(x.Name, x.Pos)
	case *ast.Const, *ast.Extern:
		return nil
	case *ast.BinOp:
		err := a.node(x.Left)
		if err != nil {
			return err
		}

		return a.node(x.Right)
	case *ast.RelOp:
		err := a.node(x.Left)
		if err != nil {
			return err
		}

		return a.node(x.Right)
	case *ast.Unary:
		return a.node(x.X)
	default:
		return NewUnsupportedNode(x)
	}
}

func (a *analyzer) fn(f *ast.Func) (err error) {
	a.push("func", f.Name)
	defer a.pop("func", f.Name)

	if f.Param != nil {
		err = a.declare(f.Param.Name, f.Param.Pos)
		if err != nil {
			return err
		}
	}

	// parameter and top level of the body share one scope
	if f.Body == nil {
		return nil
	}

	return a.block(f.Body, false)
}

func (a *analyzer) block(b *ast.Block, scope bool) (err error) {
	if scope {
		a.push("block", b.Pos)
		defer a.pop("block", b.Pos)
	}

	for _, x := range b.Stmts {
		err = a.node(x)
		if err != nil {
			return err
		}
	}

	return nil
}

func (a *analyzer) declare(name ast.Ident, pos int) error {
	err := a.s.Declare(name)

	if a.tr.If("semantic") {
		a.tr.Printw("declare", "name", name, "pos", pos, "depth", a.s.Depth(), "err", err, "from", loc.Caller(1))
	}

	var e DuplicateError
	if errors.As(err, &e) {
		e.Pos = pos
		return e
	}

	return err
}

func (a *analyzer) use(name ast.Ident, pos int) error {
	err := a.s.Lookup(name)

	if a.tr.If("semantic") {
		a.tr.Printw("use", "name", name, "pos", pos, "depth", a.s.Depth(), "err", err, "from", loc.Caller(1))
	}

	var e UndeclaredError
	if errors.As(err, &e) {
		e.Pos = pos
		return e
	}

	return err
}

func (a *analyzer) push(kind string, at any) {
	a.s.Push()

	a.tr.V("scope").Printw("push scope", "kind", kind, "at", at, "depth", a.s.Depth())
}

func (a *analyzer) pop(kind string, at any) {
	a.tr.V("scope").Printw("pop scope", "kind", kind, "at", at, "depth", a.s.Depth(), "names", a.s.Declared(), "scopes", a.s)

	a.s.Pop()
}
