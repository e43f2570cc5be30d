package format

import (
	"context"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"

	"github.com/minicc/minic/compiler/ast"
)

// Format appends miniC source text of x to b.
// x is a Program, a Func, an Extern, a statement or an expression.
// Calls are formatted as statements.
func Format(ctx context.Context, b []byte, x ast.Node) ([]byte, error) {
	switch x := x.(type) {
	case *ast.Program:
		return formatProgram(ctx, b, x, 0)
	case *ast.Func:
		return formatFunc(ctx, b, x, 0)
	case *ast.Extern:
		return formatExtern(b, x), nil
	case *ast.Var, *ast.Const, *ast.BinOp, *ast.RelOp, *ast.Unary:
		return formatExpr(ctx, b, x)
	default:
		return formatStmt(ctx, b, x, 0)
	}
}

func formatProgram(ctx context.Context, b []byte, x *ast.Program, d int) (_ []byte, err error) {
	for _, e := range x.Externs {
		b = formatExtern(b, e)
	}

	if len(x.Externs) != 0 {
		b = append(b, '\n')
	}

	if x.Func == nil {
		return b, nil
	}

	b, err = formatFunc(ctx, b, x.Func, d)
	if err != nil {
		return nil, errors.Wrap(err, "func %v", x.Func.Name)
	}

	return b, nil
}

func formatExtern(b []byte, x *ast.Extern) []byte {
	param := ""
	if x.Param {
		param = "int"
	}

	return app(b, 0, "extern %s %v(%s);\n", typeName(x.Void), x.Name, param)
}

func formatFunc(ctx context.Context, b []byte, x *ast.Func, d int) (_ []byte, err error) {
	b = app(b, d, "%s %v(", typeName(x.Void), x.Name)

	if x.Param != nil {
		b = app(b, 0, "int %v", x.Param.Name)
	}

	b = append(b, ") "...)

	body := x.Body
	if body == nil {
		body = &ast.Block{}
	}

	b, err = formatBlock(ctx, b, body, d)
	if err != nil {
		return nil, errors.Wrap(err, "body")
	}

	b = append(b, '\n')

	return b, nil
}

// formatBlock expects to be on the opening line already and leaves after closing brace.
func formatBlock(ctx context.Context, b []byte, x *ast.Block, d int) (_ []byte, err error) {
	b = append(b, "{\n"...)

	for _, s := range x.Stmts {
		b, err = formatStmt(ctx, b, s, d+1)
		if err != nil {
			return nil, err
		}

		b = append(b, '\n')
	}

	b = app(b, d, "}")

	return b, nil
}

func formatStmt(ctx context.Context, b []byte, x ast.Node, d int) (_ []byte, err error) {
	switch x := x.(type) {
	case *ast.Block:
		b = app(b, d, "")

		return formatBlock(ctx, b, x, d)
	case *ast.Decl:
		b = app(b, d, "int %v;", x.Name)
	case *ast.Assign:
		b = app(b, d, "%v = ", x.Lhs.Name)

		b, err = formatExpr(ctx, b, x.Rhs)
		if err != nil {
			return nil, errors.Wrap(err, "rhs")
		}

		b = append(b, ';')
	case *ast.Call:
		b = app(b, d, "")

		b, err = formatExpr(ctx, b, x)
		if err != nil {
			return nil, err
		}

		b = append(b, ';')
	case *ast.Return:
		b = app(b, d, "return")

		if x.Value != nil {
			b = append(b, ' ')

			b, err = formatExpr(ctx, b, x.Value)
			if err != nil {
				return nil, errors.Wrap(err, "return")
			}
		}

		b = append(b, ';')
	case *ast.If:
		b = app(b, d, "if (")

		b, err = formatExpr(ctx, b, x.Cond)
		if err != nil {
			return nil, errors.Wrap(err, "cond")
		}

		b = append(b, ')')

		b, err = formatBranch(ctx, b, x.Then, d)
		if err != nil {
			return nil, errors.Wrap(err, "then")
		}

		if x.Else == nil {
			break
		}

		if isBlock(x.Then) {
			b = append(b, " else"...)
		} else {
			b = append(b, '\n')
			b = app(b, d, "else")
		}

		b, err = formatBranch(ctx, b, x.Else, d)
		if err != nil {
			return nil, errors.Wrap(err, "else")
		}
	case *ast.While:
		b = app(b, d, "while (")

		b, err = formatExpr(ctx, b, x.Cond)
		if err != nil {
			return nil, errors.Wrap(err, "cond")
		}

		b = append(b, ')')

		b, err = formatBranch(ctx, b, x.Body, d)
		if err != nil {
			return nil, errors.Wrap(err, "body")
		}
	default:
		return nil, errors.New("unsupported stmt: %T", x)
	}

	return b, nil
}

// formatBranch formats if and while bodies.
// Braced bodies stay on the statement line, others go to the next line indented.
func formatBranch(ctx context.Context, b []byte, x ast.Node, d int) ([]byte, error) {
	switch x := x.(type) {
	case nil:
		return formatBlock(ctx, append(b, ' '), &ast.Block{}, d)
	case *ast.Block:
		return formatBlock(ctx, append(b, ' '), x, d)
	}

	return formatStmt(ctx, append(b, '\n'), x, d+1)
}

func isBlock(x ast.Node) bool {
	switch x.(type) {
	case nil, *ast.Block:
		return true
	}

	return false
}

func formatExpr(ctx context.Context, b []byte, x ast.Node) (_ []byte, err error) {
	switch x := x.(type) {
	case *ast.Var:
		b = append(b, string(x.Name)...)
	case *ast.Const:
		b = hfmt.Appendf(b, "%d", x.Value)
	case *ast.Call:
		b = app(b, 0, "%v(", x.Name)

		if x.Arg != nil {
			b, err = formatExpr(ctx, b, x.Arg)
			if err != nil {
				return nil, errors.Wrap(err, "arg")
			}
		}

		b = append(b, ')')
	case *ast.Unary:
		b = append(b, string(x.Op)...)

		b, err = formatOperand(ctx, b, x.X)
		if err != nil {
			return nil, err
		}
	case *ast.BinOp:
		return formatBinary(ctx, b, x.Op, x.Left, x.Right)
	case *ast.RelOp:
		return formatBinary(ctx, b, x.Op, x.Left, x.Right)
	default:
		return nil, errors.New("unsupported expr: %T", x)
	}

	return b, nil
}

func formatBinary(ctx context.Context, b []byte, op ast.Op, l, r ast.Node) (_ []byte, err error) {
	b, err = formatOperand(ctx, b, l)
	if err != nil {
		return nil, errors.Wrap(err, "left")
	}

	b = app(b, 0, " %s ", op)

	b, err = formatOperand(ctx, b, r)
	if err != nil {
		return nil, errors.Wrap(err, "right")
	}

	return b, nil
}

// formatOperand parenthesizes compound operands so the tree shape survives reparsing.
func formatOperand(ctx context.Context, b []byte, x ast.Node) (_ []byte, err error) {
	switch x.(type) {
	case *ast.BinOp, *ast.RelOp, *ast.Unary:
	default:
		return formatExpr(ctx, b, x)
	}

	b = append(b, '(')

	b, err = formatExpr(ctx, b, x)
	if err != nil {
		return nil, err
	}

	b = append(b, ')')

	return b, nil
}

func typeName(void bool) string {
	if void {
		return "void"
	}

	return "int"
}

func app(b []byte, d int, f string, args ...any) []byte {
	const tabs = "\t\t\t\t\t\t\t\t\t\t\t\t\t\t\t"

	for d > len(tabs) {
		b = append(b, tabs...)
		d -= len(tabs)
	}

	b = append(b, tabs[:d]...)
	b = hfmt.Appendf(b, f, args...)

	return b
}
