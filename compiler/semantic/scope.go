package semantic

import (
	"tlog.app/go/tlog/tlwire"

	"github.com/minicc/minic/compiler/ast"
	"github.com/minicc/minic/compiler/set"
)

type (
	// Stack is a stack of lexical scopes.
	// Names are interned once per Stack and each scope keeps a bitmap of ids declared in it.
	Stack struct {
		ids   map[ast.Ident]int
		names []ast.Ident

		scopes []set.Bitmap
	}
)

func NewStack() *Stack {
	return &Stack{
		ids: map[ast.Ident]int{},
	}
}

func (s *Stack) Push() {
	s.scopes = append(s.scopes, set.Bitmap{})
}

func (s *Stack) Pop() {
	if len(s.scopes) == 0 {
		panic("pop of empty scope stack")
	}

	s.scopes[len(s.scopes)-1] = set.Bitmap{}
	s.scopes = s.scopes[:len(s.scopes)-1]
}

func (s *Stack) Depth() int { return len(s.scopes) }

// Declared returns the number of names declared in the innermost scope.
func (s *Stack) Declared() int {
	if len(s.scopes) == 0 {
		return 0
	}

	return s.scopes[len(s.scopes)-1].Size()
}

// Declare adds name to the innermost scope.
// It's an error if the innermost scope already has it, outer scopes may have it.
func (s *Stack) Declare(name ast.Ident) error {
	if len(s.scopes) == 0 {
		s.Push()
	}

	top := &s.scopes[len(s.scopes)-1]

	if !top.Add(s.intern(name)) {
		return NewDuplicate(name, 0)
	}

	return nil
}

// Lookup finds name in any open scope, innermost first.
func (s *Stack) Lookup(name ast.Ident) error {
	if s.find(name) < 0 {
		return NewUndeclared(name, 0)
	}

	return nil
}

// find returns the depth of the innermost scope declaring name or -1.
func (s *Stack) find(name ast.Ident) int {
	id, ok := s.ids[name]
	if !ok {
		return -1
	}

	for i := len(s.scopes) - 1; i >= 0; i-- {
		if s.scopes[i].IsSet(id) {
			return i
		}
	}

	return -1
}

// Names returns names declared in the scope at depth i, 0 is the outermost.
func (s *Stack) Names(i int) (r []ast.Ident) {
	s.scopes[i].Range(func(id int) bool {
		r = append(r, s.names[id])
		return true
	})

	return r
}

func (s *Stack) intern(name ast.Ident) int {
	id, ok := s.ids[name]
	if ok {
		return id
	}

	if s.ids == nil {
		s.ids = map[ast.Ident]int{}
	}

	id = len(s.names)
	s.ids[name] = id
	s.names = append(s.names, name)

	return id
}

func (s *Stack) TlogAppend(b []byte) []byte {
	var e tlwire.LowEncoder

	if s == nil {
		return e.AppendNil(b)
	}

	b = e.AppendTag(b, tlwire.Array, -1)

	for i := range s.scopes {
		b = e.AppendTag(b, tlwire.Array, -1)

		for _, n := range s.Names(i) {
			b = e.AppendString(b, string(n))
		}

		b = e.AppendBreak(b)
	}

	b = e.AppendBreak(b)

	return b
}
