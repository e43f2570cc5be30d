package semantic

import (
	"fmt"
	"reflect"

	"github.com/minicc/minic/compiler/ast"
)

type (
	// Diagnostic is a semantic violation found by Analyze.
	Diagnostic interface {
		error
		Variable() ast.Ident
	}

	UndeclaredError struct {
		Name ast.Ident
		Pos  int
	}

	DuplicateError struct {
		Name ast.Ident
		Pos  int
	}

	UnsupportedNodeError struct{ T ast.Node }
)

var (
	_ Diagnostic = UndeclaredError{}
	_ Diagnostic = DuplicateError{}
)

func NewUndeclared(name ast.Ident, pos int) UndeclaredError {
	return UndeclaredError{
		Name: name,
		Pos:  pos,
	}
}

func NewDuplicate(name ast.Ident, pos int) DuplicateError {
	return DuplicateError{
		Name: name,
		Pos:  pos,
	}
}

func NewUnsupportedNode(x ast.Node) UnsupportedNodeError {
	return UnsupportedNodeError{
		T: x,
	}
}

func (e UndeclaredError) Error() string {
	return fmt.Sprintf("Semantic error: use of undeclared variable '%s'", e.Name)
}

func (e UndeclaredError) Variable() ast.Ident { return e.Name }

func (e DuplicateError) Error() string {
	return fmt.Sprintf("Semantic error: duplicate declaration of variable '%s' in same scope", e.Name)
}

func (e DuplicateError) Variable() ast.Ident { return e.Name }

func (e UnsupportedNodeError) Error() string {
	return fmt.Sprintf("unsupported node: %v", reflect.TypeOf(e.T))
}
