package spylang

// Pos is a source position. Line is 1-based, Col is 0-based.
type Pos struct {
	Line int
	Col  int
}

func tokenPos(t Token) Pos { return Pos{Line: t.Line, Col: t.Col} }

// Node is any AST node.
type Node interface {
	Pos() Pos
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Program is a parsed source file or REPL line.
type Program struct {
	Stmts []Stmt
}

// Block is a brace-delimited statement list.
type Block struct {
	At    Pos
	Stmts []Stmt
}

// AssignStmt is either a declaration ("assign x = e") or a rebinding
// ("x = e") depending on Declare.
type AssignStmt struct {
	At      Pos
	Name    string
	Value   Expr
	Declare bool
}

// MissionStmt declares a named function and binds it in the current scope.
type MissionStmt struct {
	At     Pos
	Name   string
	Params []string
	Body   *Block
}

// IfCase is one check/followup arm.
type IfCase struct {
	Cond Expr
	Body *Block
}

// IfStmt is a check with zero or more followups and an optional otherwise.
type IfStmt struct {
	At        Pos
	Cases     []IfCase
	Otherwise *Block
}

// EachStmt iterates Var over the half-open integer range [Start, End).
type EachStmt struct {
	At    Pos
	Var   string
	Start Expr
	End   Expr
	Body  *Block
}

// ChaseStmt loops while Cond is truthy.
type ChaseStmt struct {
	At   Pos
	Cond Expr
	Body *Block
}

// ExtractStmt returns from the enclosing mission. Value is nil for a bare
// extract (yields ghost).
type ExtractStmt struct {
	At    Pos
	Value Expr
}

// AbortStmt breaks the innermost loop.
type AbortStmt struct {
	At Pos
}

// ProceedStmt continues the innermost loop.
type ProceedStmt struct {
	At Pos
}

// ExprStmt evaluates an expression for its value and side effects.
type ExprStmt struct {
	At Pos
	X  Expr
}

type Ident struct {
	At   Pos
	Name string
}

type IntLit struct {
	At    Pos
	Value int64
}

type FloatLit struct {
	At    Pos
	Value float64
}

type StrLit struct {
	At    Pos
	Value string
}

type BoolLit struct {
	At    Pos
	Value bool
}

type NullLit struct {
	At Pos
}

type ListLit struct {
	At    Pos
	Elems []Expr
}

// UnaryExpr is "-x" or "not x".
type UnaryExpr struct {
	At Pos
	Op TokenType
	X  Expr
}

// BinaryExpr is any infix operation, including "and"/"or".
type BinaryExpr struct {
	At Pos
	Op TokenType
	L  Expr
	R  Expr
}

// CallExpr applies a callee to arguments.
type CallExpr struct {
	At     Pos
	Callee Expr
	Args   []Expr
}

// IndexExpr subscripts a list or string.
type IndexExpr struct {
	At    Pos
	Recv  Expr
	Index Expr
}

func (n *Block) Pos() Pos       { return n.At }
func (n *AssignStmt) Pos() Pos  { return n.At }
func (n *MissionStmt) Pos() Pos { return n.At }
func (n *IfStmt) Pos() Pos      { return n.At }
func (n *EachStmt) Pos() Pos    { return n.At }
func (n *ChaseStmt) Pos() Pos   { return n.At }
func (n *ExtractStmt) Pos() Pos { return n.At }
func (n *AbortStmt) Pos() Pos   { return n.At }
func (n *ProceedStmt) Pos() Pos { return n.At }
func (n *ExprStmt) Pos() Pos    { return n.At }
func (n *Ident) Pos() Pos       { return n.At }
func (n *IntLit) Pos() Pos      { return n.At }
func (n *FloatLit) Pos() Pos    { return n.At }
func (n *StrLit) Pos() Pos      { return n.At }
func (n *BoolLit) Pos() Pos     { return n.At }
func (n *NullLit) Pos() Pos     { return n.At }
func (n *ListLit) Pos() Pos     { return n.At }
func (n *UnaryExpr) Pos() Pos   { return n.At }
func (n *BinaryExpr) Pos() Pos  { return n.At }
func (n *CallExpr) Pos() Pos    { return n.At }
func (n *IndexExpr) Pos() Pos   { return n.At }

func (*AssignStmt) stmtNode()  {}
func (*MissionStmt) stmtNode() {}
func (*IfStmt) stmtNode()      {}
func (*EachStmt) stmtNode()    {}
func (*ChaseStmt) stmtNode()   {}
func (*ExtractStmt) stmtNode() {}
func (*AbortStmt) stmtNode()   {}
func (*ProceedStmt) stmtNode() {}
func (*ExprStmt) stmtNode()    {}

func (*Ident) exprNode()      {}
func (*IntLit) exprNode()     {}
func (*FloatLit) exprNode()   {}
func (*StrLit) exprNode()     {}
func (*BoolLit) exprNode()    {}
func (*NullLit) exprNode()    {}
func (*ListLit) exprNode()    {}
func (*UnaryExpr) exprNode()  {}
func (*BinaryExpr) exprNode() {}
func (*CallExpr) exprNode()   {}
func (*IndexExpr) exprNode()  {}
