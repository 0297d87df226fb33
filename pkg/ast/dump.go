package ast

import (
	"fmt"
	"strings"
)

// Dump converts a tree into nested maps and slices suitable for JSON or YAML
// encoding. Every node map carries a "kind" key and, unless withPos is
// false, a "pos" key of the form "line:column".
func Dump(node Node, withPos bool) map[string]any {
	d := dumper{withPos: withPos}
	return d.node(node)
}

type dumper struct {
	withPos bool
}

func (d dumper) base(kind string, n Node) map[string]any {
	m := map[string]any{"kind": kind}
	if d.withPos && n != nil {
		m["pos"] = n.Pos().String()
	}
	return m
}

func (d dumper) list(items []Decl) []any {
	out := make([]any, 0, len(items))
	for _, it := range items {
		out = append(out, d.node(it))
	}
	return out
}

func (d dumper) exprs(items []Expr) []any {
	out := make([]any, 0, len(items))
	for _, it := range items {
		out = append(out, d.node(it))
	}
	return out
}

func (d dumper) node(node Node) map[string]any {
	switch n := node.(type) {
	case nil:
		return nil
	case *Program:
		return d.node(*n)
	case Program:
		m := map[string]any{"kind": "Program"}
		m["decls"] = d.list(n.Decls)
		return m
	case IntLit:
		m := d.base("Int", n)
		m["raw"] = n.Raw
		return m
	case FloatLit:
		m := d.base("Float", n)
		m["raw"] = n.Raw
		return m
	case BoolLit:
		m := d.base("Bool", n)
		m["raw"] = n.Raw
		return m
	case StringLit:
		m := d.base("String", n)
		m["raw"] = n.Raw
		return m
	case RuneLit:
		m := d.base("Rune", n)
		m["raw"] = n.Raw
		return m
	case Embedded:
		m := d.base("Embedded", n)
		m["raw"] = n.Raw
		return m
	case Ident:
		m := d.base("Ident", n)
		m["name"] = n.Name
		return m
	case Assign:
		m := d.base("Assign", n)
		m["target"] = n.Target.Name
		m["value"] = d.node(n.Value)
		return m
	case CompoundAssign:
		m := d.base("CompoundAssign", n)
		m["target"] = n.Target.Name
		m["op"] = n.Op.String()
		m["value"] = d.node(n.Value)
		return m
	case Unary:
		m := d.base(n.Op.Name(), n)
		m["operand"] = d.node(n.X)
		return m
	case Binary:
		m := d.base(n.Kind.String(), n)
		m["op"] = n.Op.String()
		m["left"] = d.node(n.Left)
		m["right"] = d.node(n.Right)
		return m
	case Call:
		m := d.base("Call", n)
		m["func"] = d.node(n.Func)
		m["args"] = d.exprs(n.Args)
		return m
	case Paren:
		m := d.base("Paren", n)
		m["inner"] = d.node(n.X)
		return m
	case IncDec:
		m := d.base("IncDec", n)
		m["target"] = n.Target.Name
		m["op"] = n.Op.String()
		return m
	case ExprStmt:
		m := d.base("ExprStmt", n)
		m["expr"] = d.node(n.X)
		return m
	case Block:
		m := d.base("Block", n)
		m["items"] = d.list(n.Items)
		return m
	case If:
		m := d.base("If", n)
		m["cond"] = d.node(n.Cond)
		m["then"] = d.node(n.Then)
		if n.Else != nil {
			m["else"] = d.node(n.Else)
		}
		return m
	case While:
		m := d.base("While", n)
		m["cond"] = d.node(n.Cond)
		m["body"] = d.node(n.Body)
		return m
	case ForCond:
		m := d.base("ForCond", n)
		m["cond"] = d.node(n.Cond)
		m["body"] = d.node(n.Body)
		return m
	case For:
		m := d.base("For", n)
		m["init"] = d.node(n.Init)
		m["cond"] = d.node(n.Cond)
		m["post"] = d.node(n.Post)
		m["body"] = d.node(n.Body)
		return m
	case Switch:
		m := d.base("Switch", n)
		m["subject"] = d.node(n.Subject)
		cases := make([]any, 0, len(n.Cases))
		for _, c := range n.Cases {
			cases = append(cases, d.node(c))
		}
		m["cases"] = cases
		if n.Default != nil {
			m["default"] = d.node(*n.Default)
		}
		return m
	case CaseClause:
		m := d.base("Case", n)
		m["match"] = d.node(n.Match)
		m["body"] = d.list(n.Body)
		return m
	case DefaultClause:
		m := d.base("Default", n)
		m["body"] = d.list(n.Body)
		return m
	case Break:
		return d.base("Break", n)
	case Continue:
		return d.base("Continue", n)
	case Return:
		m := d.base("Return", n)
		if n.Value != nil {
			m["value"] = d.node(n.Value)
		}
		return m
	case VarDecl:
		m := d.base("VarDecl", n)
		m["name"] = n.Name.Name
		m["form"] = n.Form.String()
		if n.Form != FormShort {
			m["type"] = n.Type.String()
		}
		if n.Init != nil {
			m["init"] = d.node(n.Init)
		}
		return m
	case ForInitExpr:
		m := d.base("ForInitExpr", n)
		m["expr"] = d.node(n.X)
		return m
	case BadDecl:
		return d.base("BadDecl", n)
	default:
		return map[string]any{"kind": fmt.Sprintf("%T", node)}
	}
}

// SExpr renders a tree as a compact parenthesized form, e.g.
// (AddSub + (Int 1) (MulDivMod * (Int 2) (Int 3))). Positions are omitted,
// so two trees with equal SExpr are structurally equal.
func SExpr(node Node) string {
	var sb strings.Builder
	writeSExpr(&sb, node)
	return sb.String()
}

func writeSExpr(sb *strings.Builder, node Node) {
	open := func(head string, args ...string) {
		sb.WriteString("(")
		sb.WriteString(head)
		for _, a := range args {
			sb.WriteString(" ")
			sb.WriteString(a)
		}
	}
	child := func(n Node) {
		sb.WriteString(" ")
		writeSExpr(sb, n)
	}
	decls := func(items []Decl) {
		for _, it := range items {
			child(it)
		}
	}

	switch n := node.(type) {
	case *Program:
		writeSExpr(sb, *n)
		return
	case Program:
		open("Program")
		decls(n.Decls)
	case IntLit:
		open("Int", n.Raw)
	case FloatLit:
		open("Float", n.Raw)
	case BoolLit:
		open("Bool", n.Raw)
	case StringLit:
		open("String", `"`+n.Raw+`"`)
	case RuneLit:
		open("Rune", "'"+n.Raw+"'")
	case Embedded:
		open("Embedded", n.Raw)
	case Ident:
		open("Ident", n.Name)
	case Assign:
		open("Assign", n.Target.Name)
		child(n.Value)
	case CompoundAssign:
		open("CompoundAssign", n.Target.Name, n.Op.String())
		child(n.Value)
	case Unary:
		open(n.Op.Name())
		child(n.X)
	case Binary:
		open(n.Kind.String(), n.Op.String())
		child(n.Left)
		child(n.Right)
	case Call:
		open("Call")
		child(n.Func)
		for _, a := range n.Args {
			child(a)
		}
	case Paren:
		open("Paren")
		child(n.X)
	case IncDec:
		open("IncDec", n.Target.Name, n.Op.String())
	case ExprStmt:
		open("ExprStmt")
		child(n.X)
	case Block:
		open("Block")
		decls(n.Items)
	case If:
		open("If")
		child(n.Cond)
		child(n.Then)
		if n.Else != nil {
			child(n.Else)
		}
	case While:
		open("While")
		child(n.Cond)
		child(n.Body)
	case ForCond:
		open("ForCond")
		child(n.Cond)
		child(n.Body)
	case For:
		open("For")
		child(n.Init)
		child(n.Cond)
		child(n.Post)
		child(n.Body)
	case Switch:
		open("Switch")
		child(n.Subject)
		for _, c := range n.Cases {
			child(c)
		}
		if n.Default != nil {
			child(*n.Default)
		}
	case CaseClause:
		open("Case")
		child(n.Match)
		decls(n.Body)
	case DefaultClause:
		open("Default")
		decls(n.Body)
	case Break:
		open("Break")
	case Continue:
		open("Continue")
	case Return:
		open("Return")
		if n.Value != nil {
			child(n.Value)
		}
	case VarDecl:
		switch n.Form {
		case FormShort:
			open("Short", n.Name.Name)
		default:
			open("Var", n.Name.Name, n.Type.String())
		}
		if n.Init != nil {
			child(n.Init)
		}
	case ForInitExpr:
		open("InitExpr")
		child(n.X)
	case BadDecl:
		open("BadDecl")
	default:
		open(fmt.Sprintf("?%T", node))
	}
	sb.WriteString(")")
}
