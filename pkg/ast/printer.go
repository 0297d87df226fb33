package ast

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Printer writes a tree back out as canonical golite source. Parsing the
// output of a parsed program yields the same tree.
type Printer struct {
	w      io.Writer
	indent int
}

// NewPrinter creates a new AST printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, indent: 0}
}

// Fprint writes the canonical source of node to w
func Fprint(w io.Writer, node Node) {
	p := NewPrinter(w)
	switch n := node.(type) {
	case Program:
		p.PrintProgram(&n)
	case *Program:
		p.PrintProgram(n)
	case Expr:
		p.printExpr(n)
	case Decl:
		p.printDecl(n)
	case ForInit:
		p.printForInit(n)
	default:
		fmt.Fprintf(p.w, "/* unknown node %T */", node)
	}
}

// Source returns the canonical source of node
func Source(node Node) string {
	var buf bytes.Buffer
	Fprint(&buf, node)
	return buf.String()
}

// PrintProgram prints a complete program
func (p *Printer) PrintProgram(prog *Program) {
	for _, d := range prog.Decls {
		p.writeIndent()
		p.printDecl(d)
		fmt.Fprintln(p.w)
	}
}

func (p *Printer) writeIndent() {
	fmt.Fprint(p.w, strings.Repeat("  ", p.indent))
}

func (p *Printer) printDecl(d Decl) {
	switch d := d.(type) {
	case VarDecl:
		p.printVarDecl(d)
		fmt.Fprint(p.w, ";")
	case BadDecl:
		fmt.Fprint(p.w, "/* bad declaration */")
	case Stmt:
		p.printStmt(d)
	default:
		fmt.Fprintf(p.w, "/* unknown declaration %T */", d)
	}
}

// printVarDecl prints a declaration without its terminator
func (p *Printer) printVarDecl(v VarDecl) {
	switch v.Form {
	case FormShort:
		fmt.Fprintf(p.w, "%s := ", v.Name.Name)
		p.printExpr(v.Init)
	case FormZero:
		fmt.Fprintf(p.w, "var %s %s", v.Name.Name, v.Type)
	default:
		fmt.Fprintf(p.w, "var %s %s = ", v.Name.Name, v.Type)
		p.printExpr(v.Init)
	}
}

func (p *Printer) printItems(items []Decl) {
	p.indent++
	for _, d := range items {
		p.writeIndent()
		p.printDecl(d)
		fmt.Fprintln(p.w)
	}
	p.indent--
}

func (p *Printer) printBlock(b Block) {
	fmt.Fprintln(p.w, "{")
	p.printItems(b.Items)
	p.writeIndent()
	fmt.Fprint(p.w, "}")
}

// printBody prints the statement following a condition or loop header.
// Bodies that would read as a continuation of the header are braced.
func (p *Printer) printBody(s Stmt) {
	if es, ok := s.(ExprStmt); ok && continuesExpr(es.X) {
		s = Block{Items: []Decl{s}}
	}
	p.printStmt(s)
}

func (p *Printer) printStmt(stmt Stmt) {
	switch s := stmt.(type) {
	case ExprStmt:
		p.printExpr(s.X)
		fmt.Fprint(p.w, ";")
	case Block:
		p.printBlock(s)
	case If:
		fmt.Fprint(p.w, "if ")
		p.printExpr(s.Cond)
		fmt.Fprint(p.w, " ")
		then := s.Then
		if inner, ok := then.(If); ok && s.Else != nil && inner.Else == nil {
			// keep the else attached to this if
			then = Block{Items: []Decl{inner}}
		}
		p.printBody(then)
		if s.Else != nil {
			fmt.Fprint(p.w, " else ")
			p.printBody(s.Else)
		}
	case While:
		fmt.Fprint(p.w, "while ")
		p.printExpr(s.Cond)
		fmt.Fprint(p.w, " ")
		p.printBody(s.Body)
	case ForCond:
		fmt.Fprint(p.w, "for ")
		p.printExpr(s.Cond)
		fmt.Fprint(p.w, " ")
		p.printBody(s.Body)
	case For:
		fmt.Fprint(p.w, "for ")
		p.printForInit(s.Init)
		fmt.Fprint(p.w, "; ")
		p.printExpr(s.Cond)
		fmt.Fprint(p.w, "; ")
		p.printExpr(s.Post)
		fmt.Fprint(p.w, " ")
		p.printBody(s.Body)
	case Switch:
		fmt.Fprint(p.w, "switch ")
		p.printExpr(s.Subject)
		fmt.Fprintln(p.w, " {")
		for _, c := range s.Cases {
			p.writeIndent()
			fmt.Fprint(p.w, "case ")
			p.printExpr(c.Match)
			fmt.Fprintln(p.w, ":")
			p.printItems(c.Body)
		}
		if s.Default != nil {
			p.writeIndent()
			fmt.Fprintln(p.w, "default:")
			p.printItems(s.Default.Body)
		}
		p.writeIndent()
		fmt.Fprint(p.w, "}")
	case Break:
		fmt.Fprint(p.w, "break;")
	case Continue:
		fmt.Fprint(p.w, "continue;")
	case Return:
		fmt.Fprint(p.w, "return")
		if s.Value != nil {
			fmt.Fprint(p.w, " ")
			p.printExpr(s.Value)
		}
		fmt.Fprint(p.w, ";")
	default:
		fmt.Fprintf(p.w, "/* unknown stmt %T */;", stmt)
	}
}

func (p *Printer) printForInit(init ForInit) {
	switch i := init.(type) {
	case VarDecl:
		p.printVarDecl(i)
	case ForInitExpr:
		p.printExpr(i.X)
	default:
		fmt.Fprintf(p.w, "/* unknown for init %T */", init)
	}
}

func (p *Printer) printExpr(expr Expr) {
	switch e := expr.(type) {
	case IntLit:
		fmt.Fprint(p.w, e.Raw)
	case FloatLit:
		fmt.Fprint(p.w, e.Raw)
	case BoolLit:
		fmt.Fprint(p.w, e.Raw)
	case StringLit:
		fmt.Fprintf(p.w, "\"%s\"", e.Raw)
	case RuneLit:
		fmt.Fprintf(p.w, "'%s'", e.Raw)
	case Embedded:
		fmt.Fprint(p.w, e.Raw)
	case Ident:
		fmt.Fprint(p.w, e.Name)
	case Assign:
		fmt.Fprintf(p.w, "%s = ", e.Target.Name)
		p.printExpr(e.Value)
	case CompoundAssign:
		fmt.Fprintf(p.w, "%s %s ", e.Target.Name, e.Op)
		p.printExpr(e.Value)
	case IncDec:
		fmt.Fprint(p.w, e.Target.Name, e.Op.String())
	case Unary:
		fmt.Fprint(p.w, e.Op.String())
		if inner, ok := e.X.(Unary); ok && e.Op == OpNeg && inner.Op == OpNeg {
			// "--" would scan as a decrement
			fmt.Fprint(p.w, " ")
		}
		p.printOperand(e.X, prefixPrec)
	case Binary:
		p.printBinary(e)
	case Call:
		p.printLeading(e.Func, callPrec)
		fmt.Fprint(p.w, "(")
		for i, arg := range e.Args {
			if i > 0 {
				fmt.Fprint(p.w, ", ")
			}
			p.printExpr(arg)
		}
		fmt.Fprint(p.w, ")")
	case Paren:
		fmt.Fprint(p.w, "(")
		p.printExpr(e.X)
		fmt.Fprint(p.w, ")")
	default:
		fmt.Fprintf(p.w, "/* unknown expr %T */", expr)
	}
}

const (
	prefixPrec  = 6
	callPrec    = 7
	primaryPrec = 8
)

// exprPrec is the binding power of the outermost construct of e.
// Assignments are primary alternatives of the grammar, so they bind like
// operands wherever they can appear unparenthesized.
func exprPrec(e Expr) int {
	switch e := e.(type) {
	case Binary:
		return e.Kind.Precedence()
	case Unary:
		return prefixPrec
	case Call:
		return callPrec
	default:
		return primaryPrec
	}
}

// printOperand prints e, parenthesizing it when it binds looser than min.
func (p *Printer) printOperand(e Expr, min int) {
	if exprPrec(e) < min {
		p.printParen(e)
		return
	}
	p.printExpr(e)
}

// printLeading prints an operand that other tokens follow. An assignment in
// that position would swallow them, so it is parenthesized too.
func (p *Printer) printLeading(e Expr, min int) {
	switch e.(type) {
	case Assign, CompoundAssign:
		p.printParen(e)
	default:
		p.printOperand(e, min)
	}
}

func (p *Printer) printParen(e Expr) {
	fmt.Fprint(p.w, "(")
	p.printExpr(e)
	fmt.Fprint(p.w, ")")
}

func (p *Printer) printBinary(b Binary) {
	prec := b.Kind.Precedence()
	p.printLeading(b.Left, prec)
	fmt.Fprintf(p.w, " %s ", b.Op.String())
	p.printOperand(b.Right, prec+1)
}

// continuesExpr reports whether e starts with a token that would extend a
// preceding expression ("(" as a call, "-" as subtraction).
func continuesExpr(e Expr) bool {
	for {
		switch x := e.(type) {
		case Paren:
			return true
		case Unary:
			return x.Op == OpNeg
		case Binary:
			e = x.Left
		case Call:
			e = x.Func
		default:
			return false
		}
	}
}
