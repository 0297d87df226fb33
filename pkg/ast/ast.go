// Package ast defines the abstract syntax tree for golite programs.
//
// Every syntactic category is a closed set of value types behind an interface
// with unexported marker methods, so a type switch over Expr, Stmt, Decl or
// ForInit names every alternative that exists.
package ast

import (
	"errors"
	"fmt"

	"github.com/raymyers/golite/pkg/lexer"
)

// Node is the base interface for all AST nodes
type Node interface {
	Pos() lexer.Pos
	implNode()
}

// Expr is the interface for all expression nodes
type Expr interface {
	Node
	implExpr()
}

// Decl is the unit a Program and a Block are sequences of: a VarDecl, a
// statement, or a BadDecl placeholder.
type Decl interface {
	Node
	implDecl()
}

// Stmt is the interface for all statement nodes. Every statement is also a
// declaration.
type Stmt interface {
	Decl
	implStmt()
}

// ForInit is the initializer clause of a for loop: a VarDecl or ForInitExpr.
type ForInit interface {
	Node
	implForInit()
}

// Type is one of the built-in types
type Type int

const (
	TypeInt Type = iota
	TypeFloat64
	TypeString
	TypeBool
	TypeRune
)

var typeNames = []string{"int", "float64", "string", "bool", "rune"}

func (t Type) String() string {
	if int(t) >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "?"
}

// LookupType maps a type keyword to its Type
func LookupType(name string) (Type, bool) {
	for i, n := range typeNames {
		if n == name {
			return Type(i), true
		}
	}
	return 0, false
}

// UnaryOp represents unary operators
type UnaryOp int

const (
	OpNeg UnaryOp = iota // -
	OpNot                // !
)

func (op UnaryOp) String() string {
	names := []string{"-", "!"}
	if int(op) >= 0 && int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// Name returns the variant name of the unary operator
func (op UnaryOp) Name() string {
	switch op {
	case OpNeg:
		return "Negate"
	case OpNot:
		return "Not"
	}
	return "?"
}

// BinaryKind groups binary operators into the tiers of the grammar
type BinaryKind int

const (
	KindLogical BinaryKind = iota
	KindEquality
	KindRelational
	KindAddSub
	KindMulDivMod
)

func (k BinaryKind) String() string {
	names := []string{"Logical", "Equality", "Relational", "AddSub", "MulDivMod"}
	if int(k) >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "?"
}

// Precedence returns the binding power of the tier. Higher binds tighter;
// every binary tier binds looser than the prefix operators and calls.
func (k BinaryKind) Precedence() int {
	return int(k) + 1
}

// BinaryOp represents binary operators
type BinaryOp int

const (
	OpMul BinaryOp = iota
	OpDiv
	OpMod
	OpAdd
	OpSub
	OpGt
	OpLt
	OpGe
	OpLe
	OpEq
	OpNe
	OpAnd // &&
	OpOr  // ||
)

func (op BinaryOp) String() string {
	names := []string{"*", "/", "%", "+", "-", ">", "<", ">=", "<=", "==", "!=", "&&", "||"}
	if int(op) >= 0 && int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// Kind returns the tier the operator belongs to
func (op BinaryOp) Kind() BinaryKind {
	switch op {
	case OpMul, OpDiv, OpMod:
		return KindMulDivMod
	case OpAdd, OpSub:
		return KindAddSub
	case OpGt, OpLt, OpGe, OpLe:
		return KindRelational
	case OpEq, OpNe:
		return KindEquality
	default:
		return KindLogical
	}
}

// AssignOp represents compound assignment operators
type AssignOp int

const (
	OpAddAssign AssignOp = iota // +=
	OpSubAssign                 // -=
)

func (op AssignOp) String() string {
	names := []string{"+=", "-="}
	if int(op) >= 0 && int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// IncDecOp is the postfix ++ or -- of an IncDec
type IncDecOp int

const (
	OpInc IncDecOp = iota // ++
	OpDec                 // --
)

func (op IncDecOp) String() string {
	if op == OpDec {
		return "--"
	}
	return "++"
}

// Literals keep the raw lexeme; conversion to a value happens downstream.

// IntLit represents an integer literal
type IntLit struct {
	Start lexer.Pos
	Raw   string
}

// FloatLit represents a float64 literal
type FloatLit struct {
	Start lexer.Pos
	Raw   string
}

// BoolLit represents true or false
type BoolLit struct {
	Start lexer.Pos
	Raw   string
}

// StringLit represents a string literal. Raw excludes the quotes and keeps
// escape sequences as written.
type StringLit struct {
	Start lexer.Pos
	Raw   string
}

// RuneLit represents a rune literal. Raw excludes the quotes.
type RuneLit struct {
	Start lexer.Pos
	Raw   string
}

// Embedded is a host-code snippet carried through the tree verbatim.
type Embedded struct {
	Start lexer.Pos
	Raw   string
}

// Ident represents an identifier reference
type Ident struct {
	Start lexer.Pos
	Name  string
}

// Assign represents name = value
type Assign struct {
	Target Ident
	Value  Expr
}

// CompoundAssign represents name += value and name -= value
type CompoundAssign struct {
	Target Ident
	Op     AssignOp
	Value  Expr
}

// IncDec represents name++ and name--
type IncDec struct {
	Target Ident
	Op     IncDecOp
}

// Unary represents a prefix expression
type Unary struct {
	Start lexer.Pos
	Op    UnaryOp
	X     Expr
}

// Binary represents an infix expression. Op always belongs to Kind.
type Binary struct {
	Kind  BinaryKind
	Op    BinaryOp
	Left  Expr
	Right Expr
}

// Call represents a function call
type Call struct {
	Func Expr
	Args []Expr
}

// Paren represents a parenthesized expression
type Paren struct {
	Start lexer.Pos
	X     Expr
}

// ErrOperatorKind is returned when an operator is paired with a node kind
// whose alphabet does not contain it.
var ErrOperatorKind = errors.New("operator does not belong to node kind")

// NewBinary builds a Binary node, rejecting an operator outside kind's
// alphabet.
func NewBinary(kind BinaryKind, op BinaryOp, left, right Expr) (Binary, error) {
	if op < OpMul || op > OpOr || op.Kind() != kind {
		return Binary{}, fmt.Errorf("%w: %s is not %s", ErrOperatorKind, op, kind)
	}
	return Binary{Kind: kind, Op: op, Left: left, Right: right}, nil
}

// NewUnary builds a Unary node, rejecting unknown operators.
func NewUnary(pos lexer.Pos, op UnaryOp, x Expr) (Unary, error) {
	if op != OpNeg && op != OpNot {
		return Unary{}, fmt.Errorf("%w: unary %d", ErrOperatorKind, int(op))
	}
	return Unary{Start: pos, Op: op, X: x}, nil
}

// NewCompoundAssign builds a CompoundAssign node, rejecting unknown operators.
func NewCompoundAssign(target Ident, op AssignOp, value Expr) (CompoundAssign, error) {
	if op != OpAddAssign && op != OpSubAssign {
		return CompoundAssign{}, fmt.Errorf("%w: compound assignment %d", ErrOperatorKind, int(op))
	}
	return CompoundAssign{Target: target, Op: op, Value: value}, nil
}

// ExprStmt is an expression used as a statement
type ExprStmt struct {
	X Expr
}

// Block represents { decls }
type Block struct {
	Start lexer.Pos
	Items []Decl
}

// If represents if cond then [else]
type If struct {
	Start lexer.Pos
	Cond  Expr
	Then  Stmt
	Else  Stmt // nil when absent
}

// While represents while cond body
type While struct {
	Start lexer.Pos
	Cond  Expr
	Body  Stmt
}

// For represents for init cond; post body
type For struct {
	Start lexer.Pos
	Init  ForInit
	Cond  Expr
	Post  Expr
	Body  Stmt
}

// ForCond represents for cond body, a loop with only a condition
type ForCond struct {
	Start lexer.Pos
	Cond  Expr
	Body  Stmt
}

// CaseClause is one case of a switch
type CaseClause struct {
	Start lexer.Pos
	Match Expr
	Body  []Decl
}

// DefaultClause is the default arm of a switch
type DefaultClause struct {
	Start lexer.Pos
	Body  []Decl
}

// Switch represents switch subject { cases [default] }
type Switch struct {
	Start   lexer.Pos
	Subject Expr
	Cases   []CaseClause
	Default *DefaultClause // nil when absent
}

// Break represents break;
type Break struct {
	Start lexer.Pos
}

// Continue represents continue;
type Continue struct {
	Start lexer.Pos
}

// Return represents return [value];
type Return struct {
	Start lexer.Pos
	Value Expr // nil for bare return
}

// VarForm says which of the three declaration shapes a VarDecl has
type VarForm int

const (
	FormTyped VarForm = iota // var x T = e
	FormZero                 // var x T
	FormShort                // x := e
)

func (f VarForm) String() string {
	names := []string{"typed", "zero", "short"}
	if int(f) >= 0 && int(f) < len(names) {
		return names[f]
	}
	return "?"
}

// VarDecl represents a variable declaration. Type is meaningless for
// FormShort; Init is nil for FormZero.
type VarDecl struct {
	Start lexer.Pos
	Name  Ident
	Form  VarForm
	Type  Type
	Init  Expr
}

// ForInitExpr is an expression used as a for-loop initializer
type ForInitExpr struct {
	X Expr
}

// BadDecl stands in for a declaration that could not be recovered, keeping
// sibling indices stable.
type BadDecl struct {
	Start lexer.Pos
	End   lexer.Pos
}

// Program is the root of the tree
type Program struct {
	Decls []Decl
}

func (x IntLit) Pos() lexer.Pos         { return x.Start }
func (x FloatLit) Pos() lexer.Pos       { return x.Start }
func (x BoolLit) Pos() lexer.Pos        { return x.Start }
func (x StringLit) Pos() lexer.Pos      { return x.Start }
func (x RuneLit) Pos() lexer.Pos        { return x.Start }
func (x Embedded) Pos() lexer.Pos       { return x.Start }
func (x Ident) Pos() lexer.Pos          { return x.Start }
func (x Assign) Pos() lexer.Pos         { return x.Target.Start }
func (x CompoundAssign) Pos() lexer.Pos { return x.Target.Start }
func (x Unary) Pos() lexer.Pos          { return x.Start }
func (x Binary) Pos() lexer.Pos         { return x.Left.Pos() }
func (x Call) Pos() lexer.Pos           { return x.Func.Pos() }
func (x Paren) Pos() lexer.Pos          { return x.Start }
func (x IncDec) Pos() lexer.Pos         { return x.Target.Start }
func (s ExprStmt) Pos() lexer.Pos       { return s.X.Pos() }
func (s Block) Pos() lexer.Pos          { return s.Start }
func (s If) Pos() lexer.Pos             { return s.Start }
func (s While) Pos() lexer.Pos          { return s.Start }
func (s For) Pos() lexer.Pos            { return s.Start }
func (s ForCond) Pos() lexer.Pos        { return s.Start }
func (s Switch) Pos() lexer.Pos         { return s.Start }
func (s Break) Pos() lexer.Pos          { return s.Start }
func (s Continue) Pos() lexer.Pos       { return s.Start }
func (s Return) Pos() lexer.Pos         { return s.Start }
func (c CaseClause) Pos() lexer.Pos     { return c.Start }
func (c DefaultClause) Pos() lexer.Pos  { return c.Start }
func (d VarDecl) Pos() lexer.Pos        { return d.Start }
func (i ForInitExpr) Pos() lexer.Pos    { return i.X.Pos() }
func (d BadDecl) Pos() lexer.Pos        { return d.Start }

func (p Program) Pos() lexer.Pos {
	if len(p.Decls) == 0 {
		return lexer.Pos{Line: 1, Column: 1}
	}
	return p.Decls[0].Pos()
}

// Marker methods for interface implementation
func (IntLit) implNode() {}
func (IntLit) implExpr() {}

func (FloatLit) implNode() {}
func (FloatLit) implExpr() {}

func (BoolLit) implNode() {}
func (BoolLit) implExpr() {}

func (StringLit) implNode() {}
func (StringLit) implExpr() {}

func (RuneLit) implNode() {}
func (RuneLit) implExpr() {}

func (Embedded) implNode() {}
func (Embedded) implExpr() {}

func (Ident) implNode() {}
func (Ident) implExpr() {}

func (Assign) implNode() {}
func (Assign) implExpr() {}

func (CompoundAssign) implNode() {}
func (CompoundAssign) implExpr() {}

func (Unary) implNode() {}
func (Unary) implExpr() {}

func (Binary) implNode() {}
func (Binary) implExpr() {}

func (Call) implNode() {}
func (Call) implExpr() {}

func (Paren) implNode() {}
func (Paren) implExpr() {}

func (IncDec) implNode() {}
func (IncDec) implExpr() {}

func (ExprStmt) implNode() {}
func (ExprStmt) implDecl() {}
func (ExprStmt) implStmt() {}

func (Block) implNode() {}
func (Block) implDecl() {}
func (Block) implStmt() {}

func (If) implNode() {}
func (If) implDecl() {}
func (If) implStmt() {}

func (While) implNode() {}
func (While) implDecl() {}
func (While) implStmt() {}

func (For) implNode() {}
func (For) implDecl() {}
func (For) implStmt() {}

func (ForCond) implNode() {}
func (ForCond) implDecl() {}
func (ForCond) implStmt() {}

func (Switch) implNode() {}
func (Switch) implDecl() {}
func (Switch) implStmt() {}

func (Break) implNode() {}
func (Break) implDecl() {}
func (Break) implStmt() {}

func (Continue) implNode() {}
func (Continue) implDecl() {}
func (Continue) implStmt() {}

func (Return) implNode() {}
func (Return) implDecl() {}
func (Return) implStmt() {}

func (CaseClause) implNode()    {}
func (DefaultClause) implNode() {}

func (VarDecl) implNode()    {}
func (VarDecl) implDecl()    {}
func (VarDecl) implForInit() {}

func (ForInitExpr) implNode()    {}
func (ForInitExpr) implForInit() {}

func (BadDecl) implNode() {}
func (BadDecl) implDecl() {}

func (Program) implNode() {}
