package semantic

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/minicc/minic/compiler/ast"
)

func v(name ast.Ident) *ast.Var { return ast.NewVar(name) }

func decl(name ast.Ident) *ast.Decl { return &ast.Decl{Name: name} }

func assign(name ast.Ident, rhs ast.Node) *ast.Assign { return &ast.Assign{Lhs: v(name), Rhs: rhs} }

func cnst(x int64) *ast.Const { return &ast.Const{Value: x} }

func prog(name ast.Ident, param *ast.Var, stmts ...ast.Node) *ast.Program {
	return &ast.Program{
		Externs: []*ast.Extern{
			{Name: "print", Void: true, Param: true},
			{Name: "read"},
		},
		Func: &ast.Func{
			Name:  name,
			Param: param,
			Body:  ast.NewBlock(stmts...),
		},
	}
}

func TestScenarioDuplicateParam(t *testing.T) {
	p := prog("main", v("x"),
		decl("x"),
	)

	err := Analyze(context.Background(), p)
	assert.Equal(t, NewDuplicate("x", 0), err)
	assert.EqualError(t, err, "Semantic error: duplicate declaration of variable 'x' in same scope")
}

func TestScenarioUndeclared(t *testing.T) {
	p := prog("foo", nil,
		&ast.Return{Value: v("y")},
	)

	err := Analyze(context.Background(), p)
	assert.Equal(t, NewUndeclared("y", 0), err)
	assert.EqualError(t, err, "Semantic error: use of undeclared variable 'y'")
}

func TestScenarioLoopScope(t *testing.T) {
	p := prog("bar", nil,
		decl("n"),
		assign("n", cnst(10)),
		&ast.While{
			Cond: &ast.RelOp{Op: ast.Less, Left: v("n"), Right: cnst(20)},
			Body: ast.NewBlock(
				decl("i"),
				assign("i", v("n")),
				assign("n", &ast.BinOp{Op: ast.Add, Left: v("n"), Right: cnst(1)}),
			),
		},
		assign("n", v("i")),
	)

	err := Analyze(context.Background(), p)
	assert.Equal(t, NewUndeclared("i", 0), err)
}

func TestScenarioValid(t *testing.T) {
	p := prog("baz", nil,
		decl("a"),
		assign("a", cnst(1)),
		&ast.Return{Value: v("a")},
	)

	err := Analyze(context.Background(), p)
	assert.NoError(t, err)
	assert.Equal(t, 0, Status(err))
}

func TestShadowing(t *testing.T) {
	p := prog("f", v("x"),
		decl("a"),
		&ast.If{
			Cond: &ast.RelOp{Op: ast.Greater, Left: v("x"), Right: cnst(0)},
			Then: ast.NewBlock(
				decl("x"),
				decl("a"),
				assign("a", &ast.Unary{Op: ast.Neg, X: v("x")}),
			),
			Else: ast.NewBlock(
				decl("a"),
				&ast.Call{Name: "print", Arg: v("a")},
			),
		},
		&ast.Return{Value: v("a")},
	)

	assert.NoError(t, Analyze(context.Background(), p))
}

func TestDuplicateInNestedBlock(t *testing.T) {
	p := prog("f", nil,
		ast.NewBlock(
			decl("a"),
			ast.NewBlock(
				decl("a"),
			),
			decl("a"),
		),
	)

	assert.Equal(t, NewDuplicate("a", 0), Analyze(context.Background(), p))
}

func TestIfBranchScopeExpires(t *testing.T) {
	p := prog("f", v("x"),
		&ast.If{
			Cond: &ast.RelOp{Op: ast.Equal, Left: v("x"), Right: cnst(1)},
			Then: ast.NewBlock(decl("t")),
			Else: ast.NewBlock(assign("t", cnst(2))),
		},
	)

	assert.Equal(t, NewUndeclared("t", 0), Analyze(context.Background(), p))

	p = prog("f", v("x"),
		&ast.If{
			Cond: &ast.RelOp{Op: ast.Equal, Left: v("x"), Right: cnst(1)},
			Then: ast.NewBlock(decl("t")),
		},
		&ast.Call{Name: "print", Arg: v("t")},
	)

	assert.Equal(t, NewUndeclared("t", 0), Analyze(context.Background(), p))
}

func TestFailFast(t *testing.T) {
	p := prog("f", nil,
		assign("first", cnst(1)),
		&ast.Return{Value: v("second")},
	)

	assert.Equal(t, NewUndeclared("first", 0), Analyze(context.Background(), p))

	p = prog("f", nil,
		decl("a"),
		&ast.Assign{
			Lhs: v("a"),
			Rhs: &ast.BinOp{Op: ast.Mul, Left: v("l"), Right: v("r")},
		},
	)

	assert.Equal(t, NewUndeclared("l", 0), Analyze(context.Background(), p))
}

func TestAssignIsUse(t *testing.T) {
	p := prog("f", nil,
		assign("a", cnst(1)),
	)

	assert.Equal(t, NewUndeclared("a", 0), Analyze(context.Background(), p))

	p = prog("f", nil,
		decl("a"),
		assign("a", v("a")),
	)

	assert.NoError(t, Analyze(context.Background(), p), "assignment must not declare")
}

func TestOptionalChildren(t *testing.T) {
	p := prog("f", nil,
		&ast.Call{Name: "read"},
		&ast.Return{},
		&ast.If{Cond: cnst(1), Then: ast.NewBlock()},
		&ast.While{Cond: cnst(0), Body: nil},
		&ast.Assign{Rhs: cnst(3)},
		ast.NewBlock(),
	)

	assert.NoError(t, Analyze(context.Background(), p))

	assert.NoError(t, Analyze(context.Background(), nil))
	assert.NoError(t, Analyze(context.Background(), &ast.Program{}))
	assert.NoError(t, Analyze(context.Background(), &ast.Func{Name: "f", Param: v("x")}))
}

func TestUnbracedBranchDeclaresInEnclosingScope(t *testing.T) {
	p := prog("f", nil,
		&ast.If{Cond: cnst(1), Then: decl("a")},
		assign("a", cnst(1)),
	)

	assert.NoError(t, Analyze(context.Background(), p))
}

func TestUnsupportedNode(t *testing.T) {
	p := prog("f", nil,
		struct{}{},
	)

	err := Analyze(context.Background(), p)
	assert.Equal(t, NewUnsupportedNode(struct{}{}), err)
	assert.EqualError(t, err, "unsupported node: struct {}")
}

func TestErrorPosition(t *testing.T) {
	p := prog("f", nil,
		&ast.Decl{Base: ast.Base{Pos: 10, End: 16}, Name: "a"},
		&ast.Decl{Base: ast.Base{Pos: 20, End: 26}, Name: "a"},
	)

	assert.Equal(t, NewDuplicate("a", 20), Analyze(context.Background(), p))
}

func TestScopesReleasedOnError(t *testing.T) {
	for _, p := range []*ast.Program{
		prog("f", v("x"), decl("x")),
		prog("f", nil, ast.NewBlock(ast.NewBlock(v("y")))),
		prog("f", nil, &ast.While{Cond: cnst(1), Body: ast.NewBlock(decl("a"), decl("a"))}),
		prog("f", nil, ast.NewBlock(decl("a")), decl("a"), &ast.Return{Value: v("a")}),
	} {
		a := &analyzer{tr: tlog.Root(), s: NewStack()}

		_ = a.node(p)

		assert.Equal(t, 0, a.s.Depth())
	}
}

func TestAnalyzeLogsOnlyEnabledTopics(t *testing.T) {
	var b bytes.Buffer

	l := tlog.New(tlog.NewConsoleWriter(&b, 0))
	ctx := tlog.ContextWithSpan(context.Background(), tlog.Span{Logger: l})

	p := prog("main", v("x"), decl("x"))

	assert.Equal(t, NewDuplicate("x", 0), Analyze(ctx, p))
	assert.Empty(t, b.String())

	l.SetVerbosity("semantic")

	assert.Equal(t, NewDuplicate("x", 0), Analyze(ctx, p))
	assert.Contains(t, b.String(), "semantic: analyze")
	assert.Contains(t, b.String(), "declare")
	assert.NotContains(t, b.String(), "push scope")

	b.Reset()
	l.SetVerbosity("scope")

	assert.NoError(t, Analyze(ctx, prog("f", nil, decl("a"))))
	assert.Contains(t, b.String(), "push scope")
	assert.NotContains(t, b.String(), "declare")
}

func TestReport(t *testing.T) {
	var b bytes.Buffer

	assert.Equal(t, 0, Report(&b, nil))
	assert.Equal(t, "", b.String())

	b.Reset()
	err := errors.Wrap(NewUndeclared("q", 3), "analyze")

	assert.Equal(t, 1, Report(&b, err))
	assert.Equal(t, "Semantic error: use of undeclared variable 'q'\n", b.String())

	b.Reset()
	assert.Equal(t, 1, Report(&b, NewDuplicate("d", 0)))
	assert.Equal(t, "Semantic error: duplicate declaration of variable 'd' in same scope\n", b.String())

	b.Reset()
	assert.Equal(t, 1, Report(&b, errors.New("parse: unexpected token")))
	assert.Equal(t, "error: parse: unexpected token\n", b.String())

	d, ok := AsDiagnostic(errors.Wrap(NewDuplicate("z", 1), "check"))
	require.True(t, ok)
	assert.Equal(t, ast.Ident("z"), d.Variable())
}
