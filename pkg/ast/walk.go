package ast

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses a tree in depth-first order, children in source order.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		walkDecls(n.Decls, v)
	case Program:
		walkDecls(n.Decls, v)

	case Assign:
		Walk(n.Target, v)
		Walk(n.Value, v)
	case CompoundAssign:
		Walk(n.Target, v)
		Walk(n.Value, v)
	case IncDec:
		Walk(n.Target, v)
	case Unary:
		Walk(n.X, v)
	case Binary:
		Walk(n.Left, v)
		Walk(n.Right, v)
	case Call:
		Walk(n.Func, v)
		for _, a := range n.Args {
			Walk(a, v)
		}
	case Paren:
		Walk(n.X, v)

	case ExprStmt:
		Walk(n.X, v)
	case Block:
		walkDecls(n.Items, v)
	case If:
		Walk(n.Cond, v)
		Walk(n.Then, v)
		if n.Else != nil {
			Walk(n.Else, v)
		}
	case While:
		Walk(n.Cond, v)
		Walk(n.Body, v)
	case ForCond:
		Walk(n.Cond, v)
		Walk(n.Body, v)
	case For:
		Walk(n.Init, v)
		Walk(n.Cond, v)
		Walk(n.Post, v)
		Walk(n.Body, v)
	case Switch:
		Walk(n.Subject, v)
		for _, c := range n.Cases {
			Walk(c, v)
		}
		if n.Default != nil {
			Walk(*n.Default, v)
		}
	case CaseClause:
		Walk(n.Match, v)
		walkDecls(n.Body, v)
	case DefaultClause:
		walkDecls(n.Body, v)
	case Return:
		if n.Value != nil {
			Walk(n.Value, v)
		}

	case VarDecl:
		Walk(n.Name, v)
		if n.Init != nil {
			Walk(n.Init, v)
		}
	case ForInitExpr:
		Walk(n.X, v)
	}
}

func walkDecls(items []Decl, v Visitor) {
	for _, d := range items {
		Walk(d, v)
	}
}

// Count returns the number of nodes in the tree rooted at node.
func Count(node Node) int {
	n := 0
	Walk(node, func(Node) bool {
		n++
		return true
	})
	return n
}
