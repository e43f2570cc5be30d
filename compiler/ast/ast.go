package ast

type (
	Node interface {
	}

	Base struct {
		Pos int
		End int
	}

	Ident string

	Op string

	Program struct {
		Base `tlog:",embed"`

		Externs []*Extern
		Func    *Func
	}

	Extern struct {
		Base `tlog:",embed"`

		Name  Ident
		Void  bool
		Param bool
	}

	Func struct {
		Base `tlog:",embed"`

		Name  Ident
		Void  bool
		Param *Var
		Body  *Block
	}

	Block struct {
		Base `tlog:",embed"`

		Stmts []Node
	}

	Assign struct {
		Base `tlog:",embed"`

		Lhs *Var
		Rhs Node
	}

	If struct {
		Base `tlog:",embed"`

		Cond Node
		Then Node
		Else Node
	}

	While struct {
		Base `tlog:",embed"`

		Cond Node
		Body Node
	}

	Call struct {
		Base `tlog:",embed"`

		Name Ident
		Arg  Node
	}

	Return struct {
		Base `tlog:",embed"`

		Value Node
	}

	Decl struct {
		Base `tlog:",embed"`

		Name Ident
	}

	Var struct {
		Base `tlog:",embed"`

		Name Ident
	}

	Const struct {
		Base `tlog:",embed"`

		Value int64
	}

	// BinOp is an arithmetic expression: + - * /.
	BinOp struct {
		Base `tlog:",embed"`

		Op    Op
		Left  Node
		Right Node
	}

	// RelOp is a boolean comparison used by if and while conditions.
	RelOp struct {
		Base `tlog:",embed"`

		Op    Op
		Left  Node
		Right Node
	}

	Unary struct {
		Base `tlog:",embed"`

		Op Op
		X  Node
	}
)

const (
	Add Op = "+"
	Sub Op = "-"
	Mul Op = "*"
	Div Op = "/"

	Less      Op = "<"
	Greater   Op = ">"
	LessEq    Op = "<="
	GreaterEq Op = ">="
	Equal     Op = "=="
	NotEqual  Op = "!="

	Neg Op = "-"
)

func (x Ident) String() string { return string(x) }

func (x Op) IsRel() bool {
	switch x {
	case Less, Greater, LessEq, GreaterEq, Equal, NotEqual:
		return true
	}

	return false
}

// NewVar is a shortcut for building trees by hand.
func NewVar(name Ident) *Var { return &Var{Name: name} }

func NewBlock(stmts ...Node) *Block { return &Block{Stmts: stmts} }
