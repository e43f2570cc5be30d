package parse

import (
	"context"

	"tlog.app/go/errors"

	"github.com/minicc/minic/compiler/ast"
)

func (s *State) parseProgram(ctx context.Context, st int) (x *ast.Program, i int, err error) {
	x = &ast.Program{}
	i = st

	for {
		tk, _, _ := s.next(ctx, i)
		if tk != Keyword("extern") {
			break
		}

		var e *ast.Extern

		e, i, err = s.parseExtern(ctx, i)
		if err != nil {
			return nil, i, errors.Wrap(err, "extern")
		}

		x.Externs = append(x.Externs, e)
	}

	x.Func, i, err = s.parseFunc(ctx, i)
	if err != nil {
		return nil, i, err
	}

	x.Pos = skipComments(s.b, st)
	x.End = i

	return x, i, nil
}

func (s *State) parseExtern(ctx context.Context, st int) (x *ast.Extern, i int, err error) {
	tk, tst, i := s.next(ctx, st)
	if tk != Keyword("extern") {
		return nil, tst, NewUnexpected(tk, Keyword("extern"))
	}

	x = &ast.Extern{}
	x.Pos = tst

	x.Void, i, err = s.parseType(ctx, i)
	if err != nil {
		return nil, i, err
	}

	tk, tst, i = s.next(ctx, i)
	name, ok := tk.(Ident)
	if !ok {
		return nil, tst, NewUnexpected(tk, Ident(""))
	}

	x.Name = ast.Ident(name)

	i, err = s.expect(ctx, i, "(")
	if err != nil {
		return nil, i, err
	}

	tk, tst, j := s.next(ctx, i)
	if tk == Keyword("int") {
		x.Param = true
		i = j
	}

	i, err = s.expect(ctx, i, ")")
	if err != nil {
		return nil, i, err
	}

	i, err = s.expect(ctx, i, ";")
	if err != nil {
		return nil, i, err
	}

	x.End = i

	return x, i, nil
}

func (s *State) parseFunc(ctx context.Context, st int) (x *ast.Func, i int, err error) {
	x = &ast.Func{}
	x.Pos = skipComments(s.b, st)

	x.Void, i, err = s.parseType(ctx, st)
	if err != nil {
		return nil, i, err
	}

	tk, tst, i := s.next(ctx, i)
	name, ok := tk.(Ident)
	if !ok {
		return nil, tst, NewUnexpected(tk, Ident(""))
	}

	x.Name = ast.Ident(name)

	i, err = s.expect(ctx, i, "(")
	if err != nil {
		return nil, i, err
	}

	tk, _, j := s.next(ctx, i)
	if tk == Keyword("int") {
		tk, tst, j = s.next(ctx, j)
		p, ok := tk.(Ident)
		if !ok {
			return nil, tst, NewUnexpected(tk, Ident(""))
		}

		x.Param = &ast.Var{
			Base: ast.Base{Pos: tst, End: j},
			Name: ast.Ident(p),
		}

		i = j
	}

	i, err = s.expect(ctx, i, ")")
	if err != nil {
		return nil, i, err
	}

	x.Body, i, err = s.parseBlock(ctx, i)
	if err != nil {
		return nil, i, errors.Wrap(err, "func %v", x.Name)
	}

	x.End = i

	return x, i, nil
}

func (s *State) parseType(ctx context.Context, st int) (void bool, i int, err error) {
	tk, tst, i := s.next(ctx, st)

	switch tk {
	case Keyword("int"):
		return false, i, nil
	case Keyword("void"):
		return true, i, nil
	default:
		return false, tst, NewUnexpected(tk, Keyword("int"), Keyword("void"))
	}
}

func (s *State) parseBlock(ctx context.Context, st int) (x *ast.Block, i int, err error) {
	tk, tst, i := s.next(ctx, st)
	if tk != Punct("{") {
		return nil, tst, NewUnexpected(tk, Punct("{"))
	}

	x = &ast.Block{}
	x.Pos = tst

	for {
		tk, _, j := s.next(ctx, i)
		if tk == Punct("}") {
			i = j
			break
		}

		var stmt ast.Node

		stmt, i, err = s.parseStatement(ctx, i)
		if err != nil {
			return nil, i, err
		}

		x.Stmts = append(x.Stmts, stmt)
	}

	x.End = i

	return x, i, nil
}

func (s *State) parseStatement(ctx context.Context, st int) (x ast.Node, i int, err error) {
	tk, tst, i := s.next(ctx, st)

	switch tk := tk.(type) {
	case Punct:
		if tk == "{" {
			return s.parseBlock(ctx, st)
		}
	case Keyword:
		switch tk {
		case "int":
			return s.parseDecl(ctx, tst, i)
		case "if":
			return s.parseIf(ctx, tst, i)
		case "while":
			return s.parseWhile(ctx, tst, i)
		case "return":
			return s.parseReturn(ctx, tst, i)
		}
	case Ident:
		next, ntst, _ := s.next(ctx, i)

		switch next {
		case Punct("="):
			return s.parseAssign(ctx, tst, i, tk)
		case Punct("("):
			x, i, err = s.parseCall(ctx, tst, i, tk)
			if err != nil {
				return nil, i, err
			}

			i, err = s.expect(ctx, i, ";")
			if err != nil {
				return nil, i, err
			}

			return x, i, nil
		}

		return nil, ntst, NewUnexpected(next, Punct("="), Punct("("))
	}

	return nil, tst, NewUnexpected(tk, Punct("{"), Keyword(""), Ident(""))
}

func (s *State) parseDecl(ctx context.Context, st, vst int) (x ast.Node, i int, err error) {
	tk, tst, i := s.next(ctx, vst)
	name, ok := tk.(Ident)
	if !ok {
		return nil, tst, NewUnexpected(tk, Ident(""))
	}

	i, err = s.expect(ctx, i, ";")
	if err != nil {
		return nil, i, err
	}

	return &ast.Decl{
		Base: ast.Base{Pos: st, End: i},
		Name: ast.Ident(name),
	}, i, nil
}

func (s *State) parseAssign(ctx context.Context, st, vst int, name Ident) (x ast.Node, i int, err error) {
	i, err = s.expect(ctx, vst, "=")
	if err != nil {
		return nil, i, err
	}

	rhs, i, err := s.parseExpr(ctx, i)
	if err != nil {
		return nil, i, errors.Wrap(err, "rhs")
	}

	i, err = s.expect(ctx, i, ";")
	if err != nil {
		return nil, i, err
	}

	return &ast.Assign{
		Base: ast.Base{Pos: st, End: i},
		Lhs: &ast.Var{
			Base: ast.Base{Pos: st, End: vst},
			Name: ast.Ident(name),
		},
		Rhs: rhs,
	}, i, nil
}

func (s *State) parseIf(ctx context.Context, st, vst int) (x ast.Node, i int, err error) {
	cond, i, err := s.parseParenCond(ctx, vst)
	if err != nil {
		return nil, i, errors.Wrap(err, "if")
	}

	then, i, err := s.parseStatement(ctx, i)
	if err != nil {
		return nil, i, errors.Wrap(err, "then")
	}

	r := &ast.If{
		Cond: cond,
		Then: then,
	}

	tk, _, j := s.next(ctx, i)
	if tk == Keyword("else") {
		r.Else, i, err = s.parseStatement(ctx, j)
		if err != nil {
			return nil, i, errors.Wrap(err, "else")
		}
	}

	r.Base = ast.Base{Pos: st, End: i}

	return r, i, nil
}

func (s *State) parseWhile(ctx context.Context, st, vst int) (x ast.Node, i int, err error) {
	cond, i, err := s.parseParenCond(ctx, vst)
	if err != nil {
		return nil, i, errors.Wrap(err, "while")
	}

	body, i, err := s.parseStatement(ctx, i)
	if err != nil {
		return nil, i, errors.Wrap(err, "while body")
	}

	return &ast.While{
		Base: ast.Base{Pos: st, End: i},
		Cond: cond,
		Body: body,
	}, i, nil
}

func (s *State) parseReturn(ctx context.Context, st, vst int) (x ast.Node, i int, err error) {
	r := &ast.Return{}

	i = vst

	tk, _, _ := s.next(ctx, i)
	if tk != Punct(";") {
		r.Value, i, err = s.parseExpr(ctx, i)
		if err != nil {
			return nil, i, errors.Wrap(err, "return")
		}
	}

	i, err = s.expect(ctx, i, ";")
	if err != nil {
		return nil, i, err
	}

	r.Base = ast.Base{Pos: st, End: i}

	return r, i, nil
}

func (s *State) parseParenCond(ctx context.Context, st int) (x ast.Node, i int, err error) {
	i, err = s.expect(ctx, st, "(")
	if err != nil {
		return nil, i, err
	}

	x, i, err = s.parseCond(ctx, i)
	if err != nil {
		return nil, i, errors.Wrap(err, "cond")
	}

	i, err = s.expect(ctx, i, ")")
	if err != nil {
		return nil, i, err
	}

	return x, i, nil
}

func (s *State) expect(ctx context.Context, st int, p Punct) (i int, err error) {
	tk, tst, i := s.next(ctx, st)
	if tk != p {
		return tst, NewUnexpected(tk, p)
	}

	return i, nil
}
