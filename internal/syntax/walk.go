package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order.
// If visitor returns false, children are not visited.
// Nil children, which occur only in trees parsed with errors, are skipped.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *BlockStmt:
		for _, s := range n.Stmts {
			Walk(s, v)
		}

	case *IfStmt:
		Walk(n.Cond, v)
		Walk(n.Then, v)
		if n.Else != nil {
			Walk(n.Else, v)
		}

	case *WhileStmt:
		Walk(n.Cond, v)
		Walk(n.Body, v)

	case *ForStmt:
		if n.Init != nil {
			Walk(n.Init, v)
		}
		if n.Cond != nil {
			Walk(n.Cond, v)
		}
		if n.Incr != nil {
			Walk(n.Incr, v)
		}
		Walk(n.Body, v)

	case *FuncStmt:
		Walk(n.Body, v)

	case *ReturnStmt:
		if n.Result != nil {
			Walk(n.Result, v)
		}

	case *VarStmt:
		if n.Init != nil {
			Walk(n.Init, v)
		}

	case *ExprStmt:
		Walk(n.X, v)

	case *PrintStmt:
		Walk(n.X, v)

	case *Grouping:
		Walk(n.X, v)

	case *Unary:
		Walk(n.X, v)

	case *Binary:
		Walk(n.X, v)
		Walk(n.Y, v)

	case *Logical:
		Walk(n.X, v)
		Walk(n.Y, v)

	case *Assign:
		Walk(n.Value, v)

	case *Call:
		Walk(n.Callee, v)
		for _, a := range n.Args {
			Walk(a, v)
		}

	case *Literal, *Variable, *BranchStmt:
		// leaves
	}
}

// CountNodes returns the number of nodes in stmts.
func CountNodes(stmts []Stmt) int {
	n := 0
	for _, s := range stmts {
		Walk(s, func(Node) bool {
			n++
			return true
		})
	}
	return n
}
