package parser

import (
	"encoding/json"
	"fmt"
	"nilan/ast"
	"os"
)

const (
	colorYellow = "\033[33m"
	colorReset  = "\033[0m"
)

// astPrinter implements the Visitor interfaces and builds a
// JSON-friendly representation of the AST using maps and slices.
// Each Visit method returns an object that can be marshaled to JSON.
type astPrinter struct{}

func (p astPrinter) VisitExpressionStmt(exprStmt ast.ExpressionStmt) any {
	return map[string]any{
		"type":       "ExpressionStmt",
		"expression": exprStmt.Expression.Accept(p),
	}
}

func (p astPrinter) VisitPrintStmt(printStmt ast.PrintStmt) any {
	return map[string]any{
		"type":       "PrintStmt",
		"expression": printStmt.Expression.Accept(p),
	}
}

func (p astPrinter) VisitBlockStmt(blockStmt ast.BlockStmt) any {
	stmts := make([]any, 0, len(blockStmt.Statements))
	for _, stmt := range blockStmt.Statements {
		stmts = append(stmts, stmt.Accept(p))
	}
	return map[string]any{
		"type":       "BlockStmt",
		"statements": stmts,
	}
}

func (p astPrinter) VisitWhileStmt(stmt ast.WhileStmt) any {
	return map[string]any{
		"type":      "WhileStmt",
		"condition": stmt.Condition.Accept(p),
		"body":      stmt.Body.Accept(p),
	}
}

func (p astPrinter) VisitForStmt(stmt ast.ForStmt) any {
	return map[string]any{
		"type":      "ForStmt",
		"init":      nilOrAcceptStmt(stmt.Init, p),
		"condition": nilOrAccept(stmt.Condition, p),
		"step":      nilOrAccept(stmt.Step, p),
		"body":      stmt.Body.Accept(p),
	}
}

func (p astPrinter) VisitIfStmt(stmt ast.IfStmt) any {
	return map[string]any{
		"type":      "IfStmt",
		"condition": stmt.Condition.Accept(p),
		"then":      stmt.Then.Accept(p),
		"else":      stmt.Else.Accept(p),
	}
}

func (p astPrinter) VisitFnStmt(stmt ast.FnStmt) any {
	params := make([]string, 0, len(stmt.Params))
	for _, param := range stmt.Params {
		params = append(params, param.Lexeme)
	}
	body := make([]any, 0, len(stmt.Body))
	for _, s := range stmt.Body {
		body = append(body, s.Accept(p))
	}
	return map[string]any{
		"type":     "FnStmt",
		"name":     stmt.Name.Lexeme,
		"params":   params,
		"body":     body,
		"isMethod": stmt.IsMethod,
	}
}

func (p astPrinter) VisitReturnStmt(stmt ast.ReturnStmt) any {
	return map[string]any{
		"type":  "ReturnStmt",
		"value": nilOrAccept(stmt.Value, p),
	}
}

func (p astPrinter) VisitBreakStmt(stmt ast.BreakStmt) any {
	return map[string]any{"type": "BreakStmt"}
}

func (p astPrinter) VisitContinueStmt(stmt ast.ContinueStmt) any {
	return map[string]any{"type": "ContinueStmt"}
}

func (p astPrinter) VisitStructStmt(stmt ast.StructStmt) any {
	members := make([]string, 0, len(stmt.Members))
	for _, m := range stmt.Members {
		members = append(members, m.Lexeme)
	}
	return map[string]any{
		"type":    "StructStmt",
		"name":    stmt.Name.Lexeme,
		"members": members,
	}
}

func (p astPrinter) VisitImplStmt(stmt ast.ImplStmt) any {
	methods := make([]any, 0, len(stmt.Methods))
	for _, m := range stmt.Methods {
		methods = append(methods, p.VisitFnStmt(m))
	}
	return map[string]any{
		"type":    "ImplStmt",
		"name":    stmt.Name.Lexeme,
		"methods": methods,
	}
}

func (p astPrinter) VisitDummyStmt(stmt ast.DummyStmt) any {
	return map[string]any{"type": "DummyStmt"}
}

func (p astPrinter) VisitUseStmt(stmt ast.UseStmt) any {
	return map[string]any{
		"type": "UseStmt",
		"path": stmt.Path.Literal,
	}
}

func (p astPrinter) VisitLogicalExpression(expr ast.Logical) any {
	return map[string]any{
		"type":     "Logical",
		"operator": expr.Operator.Lexeme,
		"left":     expr.Left.Accept(p),
		"right":    expr.Right.Accept(p),
	}
}

func (p astPrinter) VisitAssignExpression(assign ast.Assign) any {
	return map[string]any{
		"type":     "Assign",
		"target":   assign.Target.Accept(p),
		"operator": assign.Operator.Lexeme,
		"value":    assign.Value.Accept(p),
	}
}

func (p astPrinter) VisitVariableExpression(variable ast.Variable) any {
	return map[string]any{
		"type": "Variable",
		"name": variable.Name.Lexeme,
	}
}

func (p astPrinter) VisitBinary(b ast.Binary) any {
	return map[string]any{
		"type":     "Binary",
		"operator": b.Operator.Lexeme,
		"left":     b.Left.Accept(p),
		"right":    b.Right.Accept(p),
	}
}

func (p astPrinter) VisitUnary(u ast.Unary) any {
	return map[string]any{
		"type":     "Unary",
		"operator": u.Operator.Lexeme,
		"right":    u.Right.Accept(p),
	}
}

func (p astPrinter) VisitLiteral(l ast.Literal) any {
	// literals are terminal values and can be used directly in JSON
	return l.Value
}

func (p astPrinter) VisitGrouping(g ast.Grouping) any {
	return map[string]any{
		"type":       "Grouping",
		"expression": g.Expression.Accept(p),
	}
}

func (p astPrinter) VisitCallExpression(call ast.Call) any {
	args := make([]any, 0, len(call.Arguments))
	for _, a := range call.Arguments {
		args = append(args, a.Accept(p))
	}
	return map[string]any{
		"type":      "Call",
		"callee":    call.Callee.Accept(p),
		"arguments": args,
	}
}

func (p astPrinter) VisitGetExpression(get ast.Get) any {
	return map[string]any{
		"type":   "Get",
		"object": get.Object.Accept(p),
		"name":   get.Name.Lexeme,
		"arrow":  get.Arrow,
	}
}

func (p astPrinter) VisitSubscriptExpression(subscript ast.Subscript) any {
	return map[string]any{
		"type":   "Subscript",
		"object": subscript.Object.Accept(p),
		"index":  subscript.Index.Accept(p),
	}
}

func (p astPrinter) VisitStructExpression(structExpr ast.Struct) any {
	inits := make([]any, 0, len(structExpr.Initializers))
	for _, init := range structExpr.Initializers {
		inits = append(inits, p.VisitStructInitializerExpression(init))
	}
	return map[string]any{
		"type":         "Struct",
		"name":         structExpr.Name.Lexeme,
		"initializers": inits,
	}
}

func (p astPrinter) VisitStructInitializerExpression(init ast.StructInitializer) any {
	return map[string]any{
		"type":   "StructInitializer",
		"member": init.Member.Lexeme,
		"value":  init.Value.Accept(p),
	}
}

func (p astPrinter) VisitVecExpression(vec ast.Vec) any {
	elems := make([]any, 0, len(vec.Elements))
	for _, e := range vec.Elements {
		elems = append(elems, e.Accept(p))
	}
	return map[string]any{
		"type":     "Vec",
		"elements": elems,
	}
}

// nilOrAccept returns nil if expr is nil, otherwise it continues
// processing the expression and returns the result.
func nilOrAccept(expr ast.Expression, p ast.ExpressionVisitor) any {
	if expr == nil {
		return nil
	}
	return expr.Accept(p)
}

// nilOrAcceptStmt returns nil if stmt is nil, otherwise it continues
// processing the statement and returns the result.
func nilOrAcceptStmt(stmt ast.Stmt, p ast.StmtVisitor) any {
	if stmt == nil {
		return nil
	}
	return stmt.Accept(p)
}

// PrintASTJSON converts a slice of statements into a prettified JSON string.
func PrintASTJSON(statements []ast.Stmt) (string, error) {
	printer := astPrinter{}
	out := make([]any, 0, len(statements))
	for _, s := range statements {
		out = append(out, s.Accept(printer))
	}
	bytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}

	jsonStr := string(bytes)
	fmt.Println(colorYellow + "----- AST JSON -----")
	fmt.Println(colorYellow + jsonStr)
	fmt.Println(colorYellow + "-----" + colorReset)
	fmt.Println("")
	return jsonStr, nil
}

// WriteASTJSONToFile writes the prettified AST JSON to the given file path.
func WriteASTJSONToFile(statements []ast.Stmt, path string) error {
	s, err := PrintASTJSON(statements)
	if err != nil {
		return err
	}
	fDescriptor, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating AST file: %s", err.Error())
	}

	_, error := fDescriptor.Write([]byte(s))
	if error != nil {
		return fmt.Errorf("error writing AST to file: %s", error.Error())
	}
	defer fDescriptor.Close()
	return nil
}
