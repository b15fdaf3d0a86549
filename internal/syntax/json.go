package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of a program to w.
func FprintJSON(w io.Writer, stmts []Stmt) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(mapSlice(stmts, func(s Stmt) interface{} { return toJSON(s) }))
}

func toJSON(node Node) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *ExprStmt:
		return map[string]interface{}{
			"type": "ExprStmt",
			"line": n.line,
			"x":    toJSON(n.X),
		}

	case *PrintStmt:
		return map[string]interface{}{
			"type": "PrintStmt",
			"line": n.line,
			"x":    toJSON(n.X),
		}

	case *VarStmt:
		m := map[string]interface{}{
			"type": "VarStmt",
			"line": n.line,
			"name": n.Name.Lexeme,
		}
		if n.Init != nil {
			m["init"] = toJSON(n.Init)
		}
		return m

	case *BlockStmt:
		return map[string]interface{}{
			"type":  "BlockStmt",
			"line":  n.line,
			"stmts": mapSlice(n.Stmts, func(s Stmt) interface{} { return toJSON(s) }),
		}

	case *IfStmt:
		m := map[string]interface{}{
			"type": "IfStmt",
			"line": n.line,
			"cond": toJSON(n.Cond),
			"then": toJSON(n.Then),
		}
		if n.Else != nil {
			m["else"] = toJSON(n.Else)
		}
		return m

	case *WhileStmt:
		return map[string]interface{}{
			"type": "WhileStmt",
			"line": n.line,
			"cond": toJSON(n.Cond),
			"body": toJSON(n.Body),
		}

	case *ForStmt:
		m := map[string]interface{}{
			"type": "ForStmt",
			"line": n.line,
			"body": toJSON(n.Body),
		}
		if n.Init != nil {
			m["init"] = toJSON(n.Init)
		}
		if n.Cond != nil {
			m["cond"] = toJSON(n.Cond)
		}
		if n.Incr != nil {
			m["incr"] = toJSON(n.Incr)
		}
		return m

	case *BranchStmt:
		return map[string]interface{}{
			"type":  "BranchStmt",
			"line":  n.line,
			"token": n.Tok.Kind.String(),
		}

	case *FuncStmt:
		return map[string]interface{}{
			"type":   "FuncStmt",
			"line":   n.line,
			"name":   n.Name.Lexeme,
			"params": mapSlice(n.Params, func(t Token) interface{} { return t.Lexeme }),
			"body":   toJSON(n.Body),
		}

	case *ReturnStmt:
		m := map[string]interface{}{
			"type": "ReturnStmt",
			"line": n.line,
		}
		if n.Result != nil {
			m["result"] = toJSON(n.Result)
		}
		return m

	case *Literal:
		return map[string]interface{}{
			"type":  "Literal",
			"line":  n.line,
			"kind":  n.Value.Kind.String(),
			"value": literalString(n.Value),
		}

	case *Grouping:
		return map[string]interface{}{
			"type": "Grouping",
			"line": n.line,
			"x":    toJSON(n.X),
		}

	case *Unary:
		return map[string]interface{}{
			"type": "Unary",
			"line": n.line,
			"op":   n.Op.Lexeme,
			"x":    toJSON(n.X),
		}

	case *Binary:
		return map[string]interface{}{
			"type": "Binary",
			"line": n.line,
			"op":   n.Op.Lexeme,
			"x":    toJSON(n.X),
			"y":    toJSON(n.Y),
		}

	case *Logical:
		return map[string]interface{}{
			"type": "Logical",
			"line": n.line,
			"op":   n.Op.Lexeme,
			"x":    toJSON(n.X),
			"y":    toJSON(n.Y),
		}

	case *Variable:
		return map[string]interface{}{
			"type": "Variable",
			"line": n.line,
			"name": n.Name.Lexeme,
		}

	case *Assign:
		return map[string]interface{}{
			"type":  "Assign",
			"line":  n.line,
			"name":  n.Name.Lexeme,
			"value": toJSON(n.Value),
		}

	case *Call:
		return map[string]interface{}{
			"type":   "Call",
			"line":   n.line,
			"callee": toJSON(n.Callee),
			"args":   mapSlice(n.Args, func(x Expr) interface{} { return toJSON(x) }),
		}

	default:
		return map[string]interface{}{
			"type": "Unknown",
		}
	}
}

func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}
