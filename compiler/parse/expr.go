package parse

import (
	"context"
	"strconv"

	"tlog.app/go/errors"

	"github.com/minicc/minic/compiler/ast"
)

var (
	relOps  = []Token{Punct("<"), Punct(">"), Punct("<="), Punct(">="), Punct("=="), Punct("!=")}
	sumOps  = []Token{Punct("+"), Punct("-")}
	prodOps = []Token{Punct("*"), Punct("/")}
)

func (s *State) parseCond(ctx context.Context, st int) (x ast.Node, i int, err error) {
	l, i, err := s.parseExpr(ctx, st)
	if err != nil {
		return nil, i, errors.Wrap(err, "left")
	}

	tk, tst, i := s.next(ctx, i)

	op, ok := tk.(Punct)
	if !ok || !ast.Op(op).IsRel() {
		return nil, tst, NewUnexpected(tk, relOps...)
	}

	r, i, err := s.parseExpr(ctx, i)
	if err != nil {
		return nil, i, errors.Wrap(err, "right")
	}

	return &ast.RelOp{
		Base:  ast.Base{Pos: skipComments(s.b, st), End: i},
		Op:    ast.Op(op),
		Left:  l,
		Right: r,
	}, i, nil
}

func (s *State) parseExpr(ctx context.Context, st int) (x ast.Node, i int, err error) {
	return s.parseBinary(ctx, st, sumOps, s.parseTerm)
}

func (s *State) parseTerm(ctx context.Context, st int) (x ast.Node, i int, err error) {
	return s.parseBinary(ctx, st, prodOps, s.parseUnary)
}

// parseBinary parses left associative chain of operands separated by ops.
func (s *State) parseBinary(ctx context.Context, st int, ops []Token, arg func(context.Context, int) (ast.Node, int, error)) (x ast.Node, i int, err error) {
	x, i, err = arg(ctx, st)
	if err != nil {
		return
	}

	pos := skipComments(s.b, st)

loop:
	for {
		tk, _, e := s.next(ctx, i)

		for _, op := range ops {
			if tk != op {
				continue
			}

			var r ast.Node

			r, i, err = arg(ctx, e)
			if err != nil {
				return nil, i, err
			}

			x = &ast.BinOp{
				Base:  ast.Base{Pos: pos, End: i},
				Op:    ast.Op(tk.(Punct)),
				Left:  x,
				Right: r,
			}

			continue loop
		}

		break
	}

	return x, i, nil
}

func (s *State) parseUnary(ctx context.Context, st int) (x ast.Node, i int, err error) {
	tk, tst, i := s.next(ctx, st)
	if tk != Punct("-") {
		return s.parsePrimary(ctx, st)
	}

	arg, i, err := s.parseUnary(ctx, i)
	if err != nil {
		return nil, i, err
	}

	return &ast.Unary{
		Base: ast.Base{Pos: tst, End: i},
		Op:   ast.Neg,
		X:    arg,
	}, i, nil
}

func (s *State) parsePrimary(ctx context.Context, st int) (x ast.Node, i int, err error) {
	tk, tst, i := s.next(ctx, st)

	switch tk := tk.(type) {
	case Number:
		v, err := strconv.ParseInt(string(tk), 10, 64)
		if err != nil {
			return nil, tst, errors.Wrap(err, "parse int")
		}

		return &ast.Const{
			Base:  ast.Base{Pos: tst, End: i},
			Value: v,
		}, i, nil
	case Ident:
		if next, _, _ := s.next(ctx, i); next == Punct("(") {
			return s.parseCall(ctx, tst, i, tk)
		}

		return &ast.Var{
			Base: ast.Base{Pos: tst, End: i},
			Name: ast.Ident(tk),
		}, i, nil
	case Punct:
		if tk != "(" {
			break
		}

		x, i, err = s.parseExpr(ctx, i)
		if err != nil {
			return nil, i, err
		}

		i, err = s.expect(ctx, i, ")")
		if err != nil {
			return nil, i, err
		}

		return x, i, nil
	}

	return nil, tst, NewUnexpected(tk, Number(""), Ident(""), Punct("("))
}

func (s *State) parseCall(ctx context.Context, st, vst int, name Ident) (x *ast.Call, i int, err error) {
	i, err = s.expect(ctx, vst, "(")
	if err != nil {
		return nil, i, err
	}

	x = &ast.Call{
		Name: ast.Ident(name),
	}

	if tk, _, _ := s.next(ctx, i); tk != Punct(")") {
		x.Arg, i, err = s.parseExpr(ctx, i)
		if err != nil {
			return nil, i, errors.Wrap(err, "call %v", name)
		}
	}

	i, err = s.expect(ctx, i, ")")
	if err != nil {
		return nil, i, err
	}

	x.Base = ast.Base{Pos: st, End: i}

	return x, i, nil
}
