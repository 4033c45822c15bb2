package parser

import (
	"nilan/ast"
	"nilan/lexer"
	"testing"
)

func parseSource(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	tokens, lexErr := lexer.New(src).Scan()
	if lexErr != nil {
		t.Fatalf("unexpected lexer error for %q: %v", src, lexErr)
	}
	stmts, parseErrs := Make(tokens).Parse()
	if len(parseErrs) != 0 {
		t.Fatalf("unexpected parser errors for %q: %v", src, parseErrs)
	}
	return stmts
}

func TestParsePrintStatement(t *testing.T) {
	stmts := parseSource(t, `print 1 + 2;`)
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	printStmt, ok := stmts[0].(ast.PrintStmt)
	if !ok {
		t.Fatalf("expected PrintStmt, got %T", stmts[0])
	}
	binary, ok := printStmt.Expression.(ast.Binary)
	if !ok {
		t.Fatalf("expected Binary expression, got %T", printStmt.Expression)
	}
	if binary.Operator.TokenType != "+" {
		t.Fatalf("expected '+' operator, got %v", binary.Operator.TokenType)
	}
}

func TestParseImplicitDeclarationAssignment(t *testing.T) {
	stmts := parseSource(t, `x = 10;`)
	exprStmt, ok := stmts[0].(ast.ExpressionStmt)
	if !ok {
		t.Fatalf("expected ExpressionStmt, got %T", stmts[0])
	}
	assign, ok := exprStmt.Expression.(ast.Assign)
	if !ok {
		t.Fatalf("expected Assign, got %T", exprStmt.Expression)
	}
	if _, ok := assign.Target.(ast.Variable); !ok {
		t.Fatalf("expected Variable target, got %T", assign.Target)
	}
}

func TestParseCompoundAssignment(t *testing.T) {
	stmts := parseSource(t, `x += 1;`)
	exprStmt := stmts[0].(ast.ExpressionStmt)
	assign := exprStmt.Expression.(ast.Assign)
	if assign.Operator.TokenType != "+=" {
		t.Fatalf("expected '+=' operator, got %v", assign.Operator.TokenType)
	}
}

func TestParsePointerDereferenceAssignment(t *testing.T) {
	stmts := parseSource(t, `*p = 5;`)
	exprStmt := stmts[0].(ast.ExpressionStmt)
	assign := exprStmt.Expression.(ast.Assign)
	unary, ok := assign.Target.(ast.Unary)
	if !ok {
		t.Fatalf("expected Unary target, got %T", assign.Target)
	}
	if unary.Operator.TokenType != "*" {
		t.Fatalf("expected '*' operator on target, got %v", unary.Operator.TokenType)
	}
}

func TestParseMemberAssignment(t *testing.T) {
	stmts := parseSource(t, `s.field = 1;`)
	exprStmt := stmts[0].(ast.ExpressionStmt)
	assign := exprStmt.Expression.(ast.Assign)
	get, ok := assign.Target.(ast.Get)
	if !ok {
		t.Fatalf("expected Get target, got %T", assign.Target)
	}
	if get.Name.Lexeme != "field" || get.Arrow {
		t.Fatalf("unexpected Get target %+v", get)
	}
}

func TestParseArrowMemberAccess(t *testing.T) {
	stmts := parseSource(t, `print p->field;`)
	printStmt := stmts[0].(ast.PrintStmt)
	get, ok := printStmt.Expression.(ast.Get)
	if !ok || !get.Arrow {
		t.Fatalf("expected arrow Get expression, got %+v", printStmt.Expression)
	}
}

func TestParseSubscriptAssignment(t *testing.T) {
	stmts := parseSource(t, `v[0] = 1;`)
	exprStmt := stmts[0].(ast.ExpressionStmt)
	assign := exprStmt.Expression.(ast.Assign)
	if _, ok := assign.Target.(ast.Subscript); !ok {
		t.Fatalf("expected Subscript target, got %T", assign.Target)
	}
}

func TestParseIfWithoutElseUsesDummyStmt(t *testing.T) {
	stmts := parseSource(t, `if (true) { print 1; }`)
	ifStmt, ok := stmts[0].(ast.IfStmt)
	if !ok {
		t.Fatalf("expected IfStmt, got %T", stmts[0])
	}
	if _, ok := ifStmt.Else.(ast.DummyStmt); !ok {
		t.Fatalf("expected DummyStmt else branch, got %T", ifStmt.Else)
	}
}

func TestParseIfWithElse(t *testing.T) {
	stmts := parseSource(t, `if (true) { print 1; } else { print 2; }`)
	ifStmt := stmts[0].(ast.IfStmt)
	if _, ok := ifStmt.Else.(ast.BlockStmt); !ok {
		t.Fatalf("expected BlockStmt else branch, got %T", ifStmt.Else)
	}
}

func TestParseWhileStatement(t *testing.T) {
	stmts := parseSource(t, `while (x < 10) { x = x + 1; }`)
	whileStmt, ok := stmts[0].(ast.WhileStmt)
	if !ok {
		t.Fatalf("expected WhileStmt, got %T", stmts[0])
	}
	if _, ok := whileStmt.Condition.(ast.Binary); !ok {
		t.Fatalf("expected Binary condition, got %T", whileStmt.Condition)
	}
}

func TestParseForStatementAllClauses(t *testing.T) {
	stmts := parseSource(t, `for (i = 0; i < 10; i += 1) { print i; }`)
	forStmt, ok := stmts[0].(ast.ForStmt)
	if !ok {
		t.Fatalf("expected ForStmt, got %T", stmts[0])
	}
	if forStmt.Init == nil || forStmt.Condition == nil || forStmt.Step == nil {
		t.Fatalf("expected all for-loop clauses present, got %+v", forStmt)
	}
}

func TestParseForStatementOmittedClauses(t *testing.T) {
	stmts := parseSource(t, `for (;;) { break; }`)
	forStmt, ok := stmts[0].(ast.ForStmt)
	if !ok {
		t.Fatalf("expected ForStmt, got %T", stmts[0])
	}
	if forStmt.Init != nil || forStmt.Condition != nil || forStmt.Step != nil {
		t.Fatalf("expected omitted for-loop clauses to be nil, got %+v", forStmt)
	}
}

func TestParseBreakAndContinue(t *testing.T) {
	stmts := parseSource(t, `while (true) { break; continue; }`)
	whileStmt := stmts[0].(ast.WhileStmt)
	block := whileStmt.Body.(ast.BlockStmt)
	if _, ok := block.Statements[0].(ast.BreakStmt); !ok {
		t.Fatalf("expected BreakStmt, got %T", block.Statements[0])
	}
	if _, ok := block.Statements[1].(ast.ContinueStmt); !ok {
		t.Fatalf("expected ContinueStmt, got %T", block.Statements[1])
	}
}

func TestParseFnDeclaration(t *testing.T) {
	stmts := parseSource(t, `fn add(a, b) { return a + b; }`)
	fnStmt, ok := stmts[0].(ast.FnStmt)
	if !ok {
		t.Fatalf("expected FnStmt, got %T", stmts[0])
	}
	if fnStmt.Name.Lexeme != "add" || len(fnStmt.Params) != 2 {
		t.Fatalf("unexpected FnStmt %+v", fnStmt)
	}
	returnStmt, ok := fnStmt.Body[0].(ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected ReturnStmt in body, got %T", fnStmt.Body[0])
	}
	if returnStmt.Value == nil {
		t.Fatalf("expected return value to be parsed")
	}
}

func TestParseReturnWithoutValue(t *testing.T) {
	stmts := parseSource(t, `fn noop() { return; }`)
	fnStmt := stmts[0].(ast.FnStmt)
	returnStmt := fnStmt.Body[0].(ast.ReturnStmt)
	if returnStmt.Value != nil {
		t.Fatalf("expected nil return value, got %v", returnStmt.Value)
	}
}

func TestParseStructDeclaration(t *testing.T) {
	stmts := parseSource(t, `struct Point { x, y }`)
	structStmt, ok := stmts[0].(ast.StructStmt)
	if !ok {
		t.Fatalf("expected StructStmt, got %T", stmts[0])
	}
	if structStmt.Name.Lexeme != "Point" || len(structStmt.Members) != 2 {
		t.Fatalf("unexpected StructStmt %+v", structStmt)
	}
}

func TestParseImplDeclaration(t *testing.T) {
	stmts := parseSource(t, `impl Point { fn length(self) { return self.x; } }`)
	implStmt, ok := stmts[0].(ast.ImplStmt)
	if !ok {
		t.Fatalf("expected ImplStmt, got %T", stmts[0])
	}
	if implStmt.Name.Lexeme != "Point" || len(implStmt.Methods) != 1 {
		t.Fatalf("unexpected ImplStmt %+v", implStmt)
	}
	if !implStmt.Methods[0].IsMethod {
		t.Fatalf("expected method to be marked IsMethod")
	}
}

func TestParseStructLiteral(t *testing.T) {
	stmts := parseSource(t, `p = Point { x: 1, y: 2 };`)
	exprStmt := stmts[0].(ast.ExpressionStmt)
	assign := exprStmt.Expression.(ast.Assign)
	structExpr, ok := assign.Value.(ast.Struct)
	if !ok {
		t.Fatalf("expected Struct literal, got %T", assign.Value)
	}
	if structExpr.Name.Lexeme != "Point" || len(structExpr.Initializers) != 2 {
		t.Fatalf("unexpected Struct literal %+v", structExpr)
	}
	if structExpr.Initializers[0].Member.Lexeme != "x" {
		t.Fatalf("expected first initializer member 'x', got %s", structExpr.Initializers[0].Member.Lexeme)
	}
}

func TestParseVecLiteral(t *testing.T) {
	stmts := parseSource(t, `v = [1, 2, 3];`)
	exprStmt := stmts[0].(ast.ExpressionStmt)
	assign := exprStmt.Expression.(ast.Assign)
	vec, ok := assign.Value.(ast.Vec)
	if !ok {
		t.Fatalf("expected Vec literal, got %T", assign.Value)
	}
	if len(vec.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(vec.Elements))
	}
}

func TestParseCallExpression(t *testing.T) {
	stmts := parseSource(t, `add(1, 2);`)
	exprStmt := stmts[0].(ast.ExpressionStmt)
	call, ok := exprStmt.Expression.(ast.Call)
	if !ok {
		t.Fatalf("expected Call expression, got %T", exprStmt.Expression)
	}
	if len(call.Arguments) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(call.Arguments))
	}
}

func TestParseMethodCallChain(t *testing.T) {
	stmts := parseSource(t, `s.method(1)[0];`)
	exprStmt := stmts[0].(ast.ExpressionStmt)
	if _, ok := exprStmt.Expression.(ast.Subscript); !ok {
		t.Fatalf("expected outermost Subscript, got %T", exprStmt.Expression)
	}
}

func TestParseLogicalAndOr(t *testing.T) {
	stmts := parseSource(t, `print a && b || c;`)
	printStmt := stmts[0].(ast.PrintStmt)
	logical, ok := printStmt.Expression.(ast.Logical)
	if !ok {
		t.Fatalf("expected Logical expression, got %T", printStmt.Expression)
	}
	if logical.Operator.TokenType != "||" {
		t.Fatalf("expected top-level '||', got %v", logical.Operator.TokenType)
	}
}

func TestParseBitwiseAndShiftPrecedence(t *testing.T) {
	stmts := parseSource(t, `print a | b ^ c & d << e;`)
	printStmt := stmts[0].(ast.PrintStmt)
	top, ok := printStmt.Expression.(ast.Binary)
	if !ok || top.Operator.TokenType != "|" {
		t.Fatalf("expected top-level '|' binary, got %+v", printStmt.Expression)
	}
}

func TestParseUnaryOperators(t *testing.T) {
	stmts := parseSource(t, `print !a; print -a; print &a; print *a; print ~a;`)
	wantOps := []string{"!", "-", "&", "*", "~"}
	for i, want := range wantOps {
		printStmt := stmts[i].(ast.PrintStmt)
		unary, ok := printStmt.Expression.(ast.Unary)
		if !ok || string(unary.Operator.TokenType) != want {
			t.Fatalf("statement %d: expected unary %q, got %+v", i, want, printStmt.Expression)
		}
	}
}

func TestParseGroupingExpression(t *testing.T) {
	stmts := parseSource(t, `print (1 + 2) * 3;`)
	printStmt := stmts[0].(ast.PrintStmt)
	binary, ok := printStmt.Expression.(ast.Binary)
	if !ok || binary.Operator.TokenType != "*" {
		t.Fatalf("expected top-level '*' binary, got %+v", printStmt.Expression)
	}
	if _, ok := binary.Left.(ast.Grouping); !ok {
		t.Fatalf("expected left operand to be a Grouping, got %T", binary.Left)
	}
}

func TestParseInvalidAssignmentTargetIsError(t *testing.T) {
	tokens, lexErr := lexer.New(`1 = 2;`).Scan()
	if lexErr != nil {
		t.Fatalf("unexpected lexer error: %v", lexErr)
	}
	_, errs := Make(tokens).Parse()
	if len(errs) == 0 {
		t.Fatalf("expected a parse error for invalid assignment target")
	}
}

func TestParseMissingSemicolonIsError(t *testing.T) {
	tokens, lexErr := lexer.New(`print 1`).Scan()
	if lexErr != nil {
		t.Fatalf("unexpected lexer error: %v", lexErr)
	}
	_, errs := Make(tokens).Parse()
	if len(errs) == 0 {
		t.Fatalf("expected a parse error for missing semicolon")
	}
}
