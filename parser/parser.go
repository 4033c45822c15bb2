// Recursive descent parser
// https://en.wikipedia.org/wiki/Recursive_descent_parser

//	A Recursive descent parser is a top-down parser because it starts from the top
//
// grammar rule and works its way down in to the nested sub-experessions before reaching
// the leaves of the syntax tree (terminal rules)
package parser

import (
	"fmt"
	"nilan/ast"
	"nilan/token"
)

var comparisonTokenTypes = []token.TokenType{
	token.LARGER,
	token.LARGER_EQUAL,
	token.LESS,
	token.LESS_EQUAL,
}

var equalityTokenTypes = []token.TokenType{
	token.NOT_EQUAL,
	token.EQUAL_EQUAL,
}

var shiftTokenTypes = []token.TokenType{
	token.SHL,
	token.SHR,
}

var termTokenTypes = []token.TokenType{
	token.SUB,
	token.ADD,
	token.PLUSPLUS, // string concatenation
}

var factorExpressionTypes = []token.TokenType{
	token.MULT,
	token.DIV,
	token.MOD,
}

var unaryExpressionTypes = []token.TokenType{
	token.BANG,
	token.SUB,
	token.AMPERSAND,
	token.MULT,
	token.TILDE,
}

var assignmentOperatorTypes = []token.TokenType{
	token.ASSIGN,
	token.PLUS_EQUAL,
	token.MINUS_EQUAL,
	token.STAR_EQUAL,
	token.SLASH_EQUAL,
	token.PERCENT_EQUAL,
	token.AMP_EQUAL,
	token.PIPE_EQUAL,
	token.CARET_EQUAL,
	token.SHL_EQUAL,
	token.SHR_EQUAL,
}

type Parser struct {
	tokens   []token.Token
	position int
}

// NOTE: The parsers position is always one unit ahead of the
// current token

// Initializes and returns a new Parser instance.
//
// Parameters:
//   - tokens: []token.Token
//     The tokens created by the lexer.
//
// The parser's position starts at 0.
//
// Returns:
//   - *Parser: A pointer to a newly created Parser instance.
func Make(tokens []token.Token) *Parser {
	return &Parser{
		tokens:   tokens,
		position: 0,
	}
}

// Print prints the AST as prettified JSON to standard output.
func (parser *Parser) Print(statements []ast.Stmt) {
	_, err := PrintASTJSON(statements)
	if err != nil {
		fmt.Println("error producing AST JSON:", err)
	}
}

// PrintToFile writes the AST for the provided statements to a .json file at the given path.
func (parser *Parser) PrintToFile(statements []ast.Stmt, path string) error {
	return WriteASTJSONToFile(statements, path)
}

// Peeks the token at the parser's current position,
// without advancing the parser's position.
// Returns:
//   - token.Token: The token at the parser's current position
func (parser *Parser) peek() token.Token {
	return parser.tokens[parser.position]
}

// peekNext returns the token one position past the parser's current
// position, without advancing the parser.
func (parser *Parser) peekNext() token.Token {
	if parser.position+1 >= len(parser.tokens) {
		return parser.tokens[len(parser.tokens)-1]
	}
	return parser.tokens[parser.position+1]
}

// Retrieves the token at the parser's previous position
// (position -1)
//
// Returns:
//   - token.Token: The token at the previous position
func (parser *Parser) previous() token.Token {
	return parser.tokens[parser.position-1]
}

// Increments the parser's position by one unit and
// consumes the current token
//
// Returns:
//   - token.Token: The token at the previous position
func (parser *Parser) advance() token.Token {
	if !parser.isFinished() {
		parser.position++
	}
	return parser.previous()
}

// Determines of the parser has finished scanning all the tokens.
//
// Returns:
//   - bool: true if the parser has finished scanning, false otherwise
func (parser *Parser) isFinished() bool {
	tok := parser.peek()
	return tok.TokenType == token.EOF
}

// Determines if the provided tokenType matches the TokenType
// at the parser's current position
//
// Returns
//   - bool: true if the TokenType matches, false otherwise
func (parser *Parser) checkType(tokeType token.TokenType) bool {
	if parser.isFinished() {
		return false
	}
	tok := parser.peek()
	return tok.TokenType == tokeType
}

// Determines if the TokenType at the current
// position matches any of the provided tokenTypes. If a match is
// found the parser increments its position and consumes the
// current token
//
// Returns
//   - bool: true if a match was found, false otherwise
func (parser *Parser) isMatch(tokenTypes []token.TokenType) bool {
	for i := range tokenTypes {
		tokenType := tokenTypes[i]

		if parser.checkType(tokenType) {
			parser.advance()
			return true
		}
	}
	return false
}

// Parse parses the entire token stream into a slice of Stmt (statement) nodes,
// continuing until the end of input. Errors during parsing are collected
// but parsing continues to find additional errors where possible.
//
// Returns:
//   - []Stmt: the successfully parsed statements.
//   - []error: all errors that occurred during parsing.
func (parser *Parser) Parse() ([]ast.Stmt, []error) {
	statements := []ast.Stmt{}
	errors := []error{}

	for {
		if parser.isFinished() {
			break
		}
		statement, err := parser.declaration()
		if err != nil {
			errors = append(errors, err)
			if !parser.isFinished() {
				parser.position++
			}
			continue
		}
		statements = append(statements, statement)
	}

	return statements, errors
}

// declaration parses a top-level declaration: a function, a struct, an
// impl block, a module import, or a plain statement.
//
// Returns the parsed statement (Stmt) or an error if parsing fails.
func (parser *Parser) declaration() (ast.Stmt, error) {
	if parser.isMatch([]token.TokenType{token.FUNC}) {
		return parser.fnDeclaration(false)
	}
	if parser.isMatch([]token.TokenType{token.STRUCT}) {
		return parser.structDeclaration()
	}
	if parser.isMatch([]token.TokenType{token.IMPL}) {
		return parser.implDeclaration()
	}
	if parser.isMatch([]token.TokenType{token.USE}) {
		return parser.useDeclaration()
	}
	return parser.statement()
}

// fnDeclaration parses "fn name(params) { body }". When isMethod is true,
// the first declared parameter is conventionally the receiver.
func (parser *Parser) fnDeclaration(isMethod bool) (ast.FnStmt, error) {
	name, err := parser.consume(token.IDENTIFIER, "Expected function name.")
	if err != nil {
		return ast.FnStmt{}, err
	}
	if _, err := parser.consume(token.LPA, "Expected '(' after function name."); err != nil {
		return ast.FnStmt{}, err
	}

	params := []token.Token{}
	if !parser.checkType(token.RPA) {
		for {
			param, err := parser.consume(token.IDENTIFIER, "Expected parameter name.")
			if err != nil {
				return ast.FnStmt{}, err
			}
			params = append(params, param)
			if !parser.isMatch([]token.TokenType{token.COMMA}) {
				break
			}
		}
	}
	if _, err := parser.consume(token.RPA, "Expected ')' after parameters."); err != nil {
		return ast.FnStmt{}, err
	}
	if _, err := parser.consume(token.LCUR, "Expected '{' before function body."); err != nil {
		return ast.FnStmt{}, err
	}
	body, err := parser.block()
	if err != nil {
		return ast.FnStmt{}, err
	}

	return ast.FnStmt{
		Name:     name,
		Params:   params,
		Body:     body,
		IsMethod: isMethod,
	}, nil
}

// structDeclaration parses "struct S { a, b, c, }".
func (parser *Parser) structDeclaration() (ast.Stmt, error) {
	name, err := parser.consume(token.IDENTIFIER, "Expected struct name.")
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.LCUR, "Expected '{' after struct name."); err != nil {
		return nil, err
	}

	members := []token.Token{}
	for !parser.checkType(token.RCUR) && !parser.isFinished() {
		member, err := parser.consume(token.IDENTIFIER, "Expected member name.")
		if err != nil {
			return nil, err
		}
		members = append(members, member)
		if !parser.isMatch([]token.TokenType{token.COMMA}) {
			break
		}
	}
	if _, err := parser.consume(token.RCUR, "Expected '}' after struct members."); err != nil {
		return nil, err
	}

	return ast.StructStmt{Name: name, Members: members}, nil
}

// implDeclaration parses "impl S { fn m(self, ...) { ... } ... }".
func (parser *Parser) implDeclaration() (ast.Stmt, error) {
	name, err := parser.consume(token.IDENTIFIER, "Expected struct name after 'impl'.")
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.LCUR, "Expected '{' after impl target."); err != nil {
		return nil, err
	}

	methods := []ast.FnStmt{}
	for !parser.checkType(token.RCUR) && !parser.isFinished() {
		if _, err := parser.consume(token.FUNC, "Expected method declaration inside 'impl' block."); err != nil {
			return nil, err
		}
		method, err := parser.fnDeclaration(true)
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}
	if _, err := parser.consume(token.RCUR, "Expected '}' after impl body."); err != nil {
		return nil, err
	}

	return ast.ImplStmt{Name: name, Methods: methods}, nil
}

// useDeclaration parses "use "path";". Module loading is an external
// collaborator's concern, so the parser only recognizes the syntax; the
// compiler accepts the resulting UseStmt and compiles it as a no-op.
func (parser *Parser) useDeclaration() (ast.Stmt, error) {
	path, err := parser.consume(token.STRING, "Expected module path string after 'use'.")
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.SEMICOLON, "Expected ';' after 'use' statement."); err != nil {
		return nil, err
	}
	return ast.UseStmt{Path: path}, nil
}

// statement parses a single statement.
//
// Returns:
//   - Stmt: the parsed statement node.
//   - error: if parsing fails, otherwise nil.
func (parser *Parser) statement() (ast.Stmt, error) {

	if parser.isMatch([]token.TokenType{token.PRINT}) {
		return parser.printStatement()
	}

	if parser.isMatch([]token.TokenType{token.LCUR}) {
		statements, err := parser.block()
		if err != nil {
			return nil, err
		}
		return ast.BlockStmt{Statements: statements}, nil
	}

	if parser.isMatch([]token.TokenType{token.IF}) {
		return parser.ifStatement()
	}

	if parser.isMatch([]token.TokenType{token.WHILE}) {
		return parser.whileStatement()
	}

	if parser.isMatch([]token.TokenType{token.FOR}) {
		return parser.forStatement()
	}

	if parser.isMatch([]token.TokenType{token.RETURN}) {
		return parser.returnStatement()
	}

	if parser.isMatch([]token.TokenType{token.BREAK}) {
		return parser.breakStatement()
	}

	if parser.isMatch([]token.TokenType{token.CONTINUE}) {
		return parser.continueStatement()
	}

	return parser.expressionStatement()
}

// printStatement parses a print statement of the form "print <expression>;".
//
// Returns:
//   - Stmt: a PrintStmt containing the expression to print.
//   - error: if the inner expression fails to parse.
func (parser *Parser) printStatement() (ast.Stmt, error) {
	expression, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.SEMICOLON, "Expected ';' after print statement."); err != nil {
		return nil, err
	}
	return ast.PrintStmt{Expression: expression}, nil
}

// returnStatement parses "return;" or "return expr;".
func (parser *Parser) returnStatement() (ast.Stmt, error) {
	keyword := parser.previous()
	var value ast.Expression
	if !parser.checkType(token.SEMICOLON) {
		expr, err := parser.expression()
		if err != nil {
			return nil, err
		}
		value = expr
	}
	if _, err := parser.consume(token.SEMICOLON, "Expected ';' after return statement."); err != nil {
		return nil, err
	}
	return ast.ReturnStmt{Keyword: keyword, Value: value}, nil
}

// breakStatement parses "break;".
func (parser *Parser) breakStatement() (ast.Stmt, error) {
	keyword := parser.previous()
	if _, err := parser.consume(token.SEMICOLON, "Expected ';' after 'break'."); err != nil {
		return nil, err
	}
	return ast.BreakStmt{Keyword: keyword}, nil
}

// continueStatement parses "continue;".
func (parser *Parser) continueStatement() (ast.Stmt, error) {
	keyword := parser.previous()
	if _, err := parser.consume(token.SEMICOLON, "Expected ';' after 'continue'."); err != nil {
		return nil, err
	}
	return ast.ContinueStmt{Keyword: keyword}, nil
}

// whileStatement parses a while loop statement from the token stream.
// It parses a condition expression in parentheses followed by a statement
// representing the loop body.
// Returns:
//   - ast.WhileStmt with the parsed condition and body.
//   - error: if parsing the condition or body fails.
func (parser *Parser) whileStatement() (ast.Stmt, error) {
	if _, err := parser.consume(token.LPA, "Expected '(' after 'while'."); err != nil {
		return nil, err
	}
	expr, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.RPA, "Expected ')' after while condition."); err != nil {
		return nil, err
	}

	stmt, err := parser.statement()
	if err != nil {
		return nil, err
	}

	return ast.WhileStmt{
		Condition: expr,
		Body:      stmt,
	}, nil

}

// forStatement parses "for (init; cond; step) { body }". Any of init, cond,
// or step may be omitted.
func (parser *Parser) forStatement() (ast.Stmt, error) {
	if _, err := parser.consume(token.LPA, "Expected '(' after 'for'."); err != nil {
		return nil, err
	}

	var init ast.Stmt
	if !parser.checkType(token.SEMICOLON) {
		stmt, err := parser.expressionStatement()
		if err != nil {
			return nil, err
		}
		init = stmt
	} else {
		if _, err := parser.consume(token.SEMICOLON, "Expected ';' after for-loop initializer."); err != nil {
			return nil, err
		}
	}

	var condition ast.Expression
	if !parser.checkType(token.SEMICOLON) {
		expr, err := parser.expression()
		if err != nil {
			return nil, err
		}
		condition = expr
	}
	if _, err := parser.consume(token.SEMICOLON, "Expected ';' after for-loop condition."); err != nil {
		return nil, err
	}

	var step ast.Expression
	if !parser.checkType(token.RPA) {
		expr, err := parser.expression()
		if err != nil {
			return nil, err
		}
		step = expr
	}
	if _, err := parser.consume(token.RPA, "Expected ')' after for-loop clauses."); err != nil {
		return nil, err
	}

	body, err := parser.statement()
	if err != nil {
		return nil, err
	}

	return ast.ForStmt{
		Init:      init,
		Condition: condition,
		Step:      step,
		Body:      body,
	}, nil
}

// ifStatement parses an if-statement from the token stream.
// It expects a parenthesized condition expression followed by a 'then'
// branch, and optionally parses an 'else' branch if present. When no
// 'else' is present, Else is set to a DummyStmt rather than nil.
// Returns:
//   - ast.IfStmt: an IfStmt AST node.
//   - error: if any part fails to parse.
func (parser *Parser) ifStatement() (ast.Stmt, error) {
	if _, err := parser.consume(token.LPA, "Expected '(' after 'if'."); err != nil {
		return nil, err
	}
	conditionExpr, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.RPA, "Expected ')' after if condition."); err != nil {
		return nil, err
	}

	thenStmt, err := parser.statement()
	if err != nil {
		return nil, err
	}
	var elseStmt ast.Stmt = ast.DummyStmt{}
	if parser.isMatch([]token.TokenType{token.ELSE}) {
		stmt, err := parser.statement()
		if err != nil {
			return nil, err
		}
		elseStmt = stmt
	}

	return ast.IfStmt{
		Condition: conditionExpr,
		Then:      thenStmt,
		Else:      elseStmt,
	}, nil
}

// expressionStatement parses a statement consisting of a single expression
// terminated by ';'.
//
// Returns:
//   - Stmt: an ExpressionStmt wrapping the parsed expression.
//   - error: if the expression cannot be parsed.
func (parser *Parser) expressionStatement() (ast.Stmt, error) {
	expression, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.SEMICOLON, "Expected ';' after expression."); err != nil {
		return nil, err
	}
	return ast.ExpressionStmt{Expression: expression}, nil
}

// block parser a block statement consisting of a list of
// statement AST nodes.
// Returns:
//   - [] Stmt: A list of parsed declarations or statements
//   - error: If the block statement cant be parsed.
func (parser *Parser) block() ([]ast.Stmt, error) {
	statements := []ast.Stmt{}

	for !parser.checkType(token.RCUR) && !parser.isFinished() {
		stmt, err := parser.declaration()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}

	if _, err := parser.consume(token.RCUR, fmt.Sprintf("Expected '%s' after block.", token.RCUR)); err != nil {
		return nil, err
	}
	return statements, nil
}

// expression is the entry point for parsing expressions. It begins at
// the assignment rule, which encompasses all lower-precedence rules.
//
// Returns:
//   - Expression: the parsed expression AST node.
//   - error: if parsing fails.
func (parser *Parser) expression() (ast.Expression, error) {
	return parser.assignment()
}

// assignment parses an assignment expression from the token stream,
// including the compound forms ("+=", "-=", ...).
//
// The left-hand side is parsed as a full logical-or expression first; if it
// is followed by an assignment operator, the LHS must be one of the four
// assignable shapes the language supports: a plain Variable, a dereferenced
// pointer ("*p"), a struct member (Get), or a vector slot (Subscript).
//
// Example:
// Input:  x = 10
// AST:    Assign{Target: Variable{x}, Operator: "=", Value: Literal(10)}
func (parser *Parser) assignment() (ast.Expression, error) {
	expression, err := parser.or()
	if err != nil {
		return nil, err
	}
	if parser.isMatch(assignmentOperatorTypes) {
		operator := parser.previous()
		value, err := parser.assignment()
		if err != nil {
			return nil, err
		}
		switch target := expression.(type) {
		case ast.Variable:
			return ast.Assign{Target: target, Operator: operator, Value: value}, nil
		case ast.Unary:
			if target.Operator.TokenType == token.MULT {
				return ast.Assign{Target: target, Operator: operator, Value: value}, nil
			}
		case ast.Get:
			return ast.Assign{Target: target, Operator: operator, Value: value}, nil
		case ast.Subscript:
			return ast.Assign{Target: target, Operator: operator, Value: value}, nil
		}
		msg := "Invalid assignment target."
		return nil, CreateSyntaxError(operator.Line, operator.Column, msg)
	}

	return expression, nil
}

// or parses a logical OR expression from the token stream.
// It first parses an AND expression on the left side, then consumes
// any sequence of OR operators, building a left-associative AST of logical expressions.
// Returns:
//   - ast.Expression: The constructed ast.Expression node
//   - error: An error if parsing fails.
func (parser *Parser) or() (ast.Expression, error) {
	expr, err := parser.and()
	if err != nil {
		return nil, err
	}

	for parser.isMatch([]token.TokenType{token.OR_OR}) {
		op := parser.previous()
		rightExpr, err := parser.and()
		if err != nil {
			return nil, err
		}
		expr = ast.Logical{
			Left:     expr,
			Operator: op,
			Right:    rightExpr,
		}
	}

	return expr, nil
}

// and parses a logical AND expression from the token stream.
// It first parses a bitwise-or expression on the left side,
// then consumes any sequence of AND operators, building a left-associative
// abstract syntax tree (AST) of logical expressions.
// Returns:
//   - ast.Expression: The constructed ast.Expression node
//   - error: An error if parsing fails.
func (parser *Parser) and() (ast.Expression, error) {
	expr, err := parser.bitwiseOr()
	if err != nil {
		return nil, err
	}

	for parser.isMatch([]token.TokenType{token.AND_AND}) {
		op := parser.previous()
		rightExpr, err := parser.bitwiseOr()
		if err != nil {
			return nil, err
		}

		expr = ast.Logical{
			Left:     expr,
			Operator: op,
			Right:    rightExpr,
		}
	}
	return expr, nil
}

// bitwiseOr parses "a | b" expressions.
func (parser *Parser) bitwiseOr() (ast.Expression, error) {
	exp, err := parser.bitwiseXor()
	if err != nil {
		return nil, err
	}
	for parser.isMatch([]token.TokenType{token.PIPE}) {
		operator := parser.previous()
		right, err := parser.bitwiseXor()
		if err != nil {
			return nil, err
		}
		exp = ast.Binary{Left: exp, Operator: operator, Right: right}
	}
	return exp, nil
}

// bitwiseXor parses "a ^ b" expressions.
func (parser *Parser) bitwiseXor() (ast.Expression, error) {
	exp, err := parser.bitwiseAnd()
	if err != nil {
		return nil, err
	}
	for parser.isMatch([]token.TokenType{token.CARET}) {
		operator := parser.previous()
		right, err := parser.bitwiseAnd()
		if err != nil {
			return nil, err
		}
		exp = ast.Binary{Left: exp, Operator: operator, Right: right}
	}
	return exp, nil
}

// bitwiseAnd parses "a & b" expressions.
func (parser *Parser) bitwiseAnd() (ast.Expression, error) {
	exp, err := parser.equality()
	if err != nil {
		return nil, err
	}
	for parser.isMatch([]token.TokenType{token.AMPERSAND}) {
		operator := parser.previous()
		right, err := parser.equality()
		if err != nil {
			return nil, err
		}
		exp = ast.Binary{Left: exp, Operator: operator, Right: right}
	}
	return exp, nil
}

// equality parses equality expressions using operators "==" and "!=".
//
// Returns:
//   - Expression: a Binary node (or sub-expression) representing equality comparison.
//   - error: if parsing fails.
func (parser *Parser) equality() (ast.Expression, error) {
	exp, err := parser.comparison()
	if err != nil {
		return nil, err
	}
	for parser.isMatch(equalityTokenTypes) {
		operator := parser.previous()
		right, err := parser.comparison()
		if err != nil {
			return nil, err
		}
		exp = ast.Binary{
			Left:     exp,
			Operator: operator,
			Right:    right,
		}
	}
	return exp, nil
}

// comparison parses comparison expressions using operators "<", "<=", ">", ">=".
//
// Returns:
//   - Expression: a Binary node (or sub-expression) representing a comparison.
//   - error: if parsing fails.
func (parser *Parser) comparison() (ast.Expression, error) {
	exp, err := parser.shift()
	if err != nil {
		return nil, err
	}
	for parser.isMatch(comparisonTokenTypes) {
		operator := parser.previous()
		right, err := parser.shift()
		if err != nil {
			return nil, err
		}
		exp = ast.Binary{
			Left:     exp,
			Operator: operator,
			Right:    right,
		}
	}
	return exp, nil
}

// shift parses "<<" and ">>" expressions.
func (parser *Parser) shift() (ast.Expression, error) {
	exp, err := parser.term()
	if err != nil {
		return nil, err
	}
	for parser.isMatch(shiftTokenTypes) {
		operator := parser.previous()
		right, err := parser.term()
		if err != nil {
			return nil, err
		}
		exp = ast.Binary{Left: exp, Operator: operator, Right: right}
	}
	return exp, nil
}

// term parses addition, subtraction, and string-concatenation ("++")
// expressions.
//
// Returns:
//   - Expression: a Binary node (or sub-expression).
//   - error: if parsing fails.
func (parser *Parser) term() (ast.Expression, error) {
	exp, err := parser.factor()
	if err != nil {
		return nil, err
	}
	for parser.isMatch(termTokenTypes) {
		operator := parser.previous()
		right, err := parser.factor()
		if err != nil {
			return nil, err
		}
		exp = ast.Binary{
			Left:     exp,
			Operator: operator,
			Right:    right,
		}
	}
	return exp, nil
}

// factor parses multiplication, division, and modulo expressions using
// operators "*", "/", and "%".
//
// Returns:
//   - Expression: a Binary node (or sub-expression).
//   - error: if parsing fails.
func (parser *Parser) factor() (ast.Expression, error) {
	exp, err := parser.unary()
	if err != nil {
		return nil, err
	}
	for parser.isMatch(factorExpressionTypes) {
		operator := parser.previous()
		right, err := parser.unary()
		if err != nil {
			return nil, err
		}
		exp = ast.Binary{
			Left:     exp,
			Operator: operator,
			Right:    right,
		}
	}
	return exp, nil
}

// unary parses unary prefix expressions using operators "!", "-", "&"
// (address-of), "*" (dereference), and "~" (bitwise not).
//
// Returns:
//   - Expression: a Unary node if a unary operator was found, otherwise defers to call().
//   - error: if parsing fails.
func (parser *Parser) unary() (ast.Expression, error) {
	if parser.isMatch(unaryExpressionTypes) {
		operator := parser.previous()
		right, err := parser.unary()
		if err != nil {
			return nil, err
		}
		return ast.Unary{
			Operator: operator,
			Right:    right,
		}, nil
	}
	return parser.call()
}

// call parses postfix call, member-access, and subscript expressions:
// "callee(args)", "object.name", "object->name", "object[index]". These
// chain, so "a.b(c)[0]" parses as nested Subscript/Call/Get nodes.
//
// Returns:
//   - Expression: the parsed postfix expression chain.
//   - error: if parsing fails.
func (parser *Parser) call() (ast.Expression, error) {
	expr, err := parser.primary()
	if err != nil {
		return nil, err
	}

	for {
		if parser.isMatch([]token.TokenType{token.LPA}) {
			expr, err = parser.finishCall(expr)
			if err != nil {
				return nil, err
			}
		} else if parser.isMatch([]token.TokenType{token.DOT}) {
			name, err := parser.consume(token.IDENTIFIER, "Expected member name after '.'.")
			if err != nil {
				return nil, err
			}
			expr = ast.Get{Object: expr, Name: name, Arrow: false}
		} else if parser.isMatch([]token.TokenType{token.ARROW}) {
			name, err := parser.consume(token.IDENTIFIER, "Expected member name after '->'.")
			if err != nil {
				return nil, err
			}
			expr = ast.Get{Object: expr, Name: name, Arrow: true}
		} else if parser.isMatch([]token.TokenType{token.LBRACK}) {
			bracket := parser.previous()
			index, err := parser.expression()
			if err != nil {
				return nil, err
			}
			if _, err := parser.consume(token.RBRACK, "Expected ']' after subscript index."); err != nil {
				return nil, err
			}
			expr = ast.Subscript{Object: expr, Index: index, Bracket: bracket}
		} else {
			break
		}
	}

	return expr, nil
}

// finishCall parses the argument list of a call expression, assuming the
// opening '(' has already been consumed.
func (parser *Parser) finishCall(callee ast.Expression) (ast.Expression, error) {
	arguments := []ast.Expression{}
	if !parser.checkType(token.RPA) {
		for {
			arg, err := parser.expression()
			if err != nil {
				return nil, err
			}
			arguments = append(arguments, arg)
			if !parser.isMatch([]token.TokenType{token.COMMA}) {
				break
			}
		}
	}
	paren, err := parser.consume(token.RPA, "Expected ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return ast.Call{Callee: callee, Paren: paren, Arguments: arguments}, nil
}

// primary parses the most basic forms of expressions:
//   - Literals: true, false, null, strings, numbers
//   - Grouping: (expression)
//   - Variables and struct literals: name, name { member: value, ... }
//   - Vector literals: [elem, elem, ...]
//
// If no valid token matches, returns a syntax error.
//
// Returns:
//   - Expression: a Literal, Grouping, Variable, Struct, or Vec expression.
//   - error: if no valid primary expression can be parsed.
func (parser *Parser) primary() (ast.Expression, error) {
	if parser.isMatch([]token.TokenType{token.FALSE}) {
		return ast.Literal{Value: false}, nil
	}
	if parser.isMatch([]token.TokenType{token.NULL}) {
		return ast.Literal{Value: nil}, nil
	}
	if parser.isMatch([]token.TokenType{token.TRUE}) {
		return ast.Literal{Value: true}, nil
	}

	if parser.isMatch([]token.TokenType{token.NUMBER, token.STRING}) {
		return ast.Literal{Value: parser.previous().Literal}, nil
	}

	if parser.isMatch([]token.TokenType{token.LBRACK}) {
		return parser.vecLiteral()
	}

	if parser.isMatch([]token.TokenType{token.IDENTIFIER}) {
		name := parser.previous()
		if parser.checkType(token.LCUR) {
			return parser.structLiteral(name)
		}
		return ast.Variable{Name: name}, nil
	}

	if parser.isMatch([]token.TokenType{token.LPA}) {
		expr, err := parser.expression()
		if err != nil {
			return nil, err
		}
		_, consumeErr := parser.consume(token.RPA, fmt.Sprintf("expression is missing '%s'", token.RPA))
		if consumeErr != nil {
			return nil, consumeErr
		}
		return ast.Grouping{Expression: expr}, nil
	}

	currentToken := parser.peek()
	return nil, CreateSyntaxError(currentToken.Line, currentToken.Column, "Unrecognised expression.")
}

// vecLiteral parses "[elem, elem, ...]", assuming the opening '[' has
// already been consumed.
func (parser *Parser) vecLiteral() (ast.Expression, error) {
	bracket := parser.previous()
	elements := []ast.Expression{}
	if !parser.checkType(token.RBRACK) {
		for {
			elem, err := parser.expression()
			if err != nil {
				return nil, err
			}
			elements = append(elements, elem)
			if !parser.isMatch([]token.TokenType{token.COMMA}) {
				break
			}
		}
	}
	if _, err := parser.consume(token.RBRACK, "Expected ']' after vector elements."); err != nil {
		return nil, err
	}
	return ast.Vec{Bracket: bracket, Elements: elements}, nil
}

// structLiteral parses "Name { member: value, ... }", assuming the struct
// name has already been consumed and the next token is '{'.
func (parser *Parser) structLiteral(name token.Token) (ast.Expression, error) {
	if _, err := parser.consume(token.LCUR, "Expected '{' in struct literal."); err != nil {
		return nil, err
	}

	initializers := []ast.StructInitializer{}
	for !parser.checkType(token.RCUR) && !parser.isFinished() {
		member, err := parser.consume(token.IDENTIFIER, "Expected member name in struct literal.")
		if err != nil {
			return nil, err
		}
		if _, err := parser.consume(token.COLON, "Expected ':' after member name in struct literal."); err != nil {
			return nil, err
		}
		value, err := parser.expression()
		if err != nil {
			return nil, err
		}
		initializers = append(initializers, ast.StructInitializer{Member: member, Value: value})
		if !parser.isMatch([]token.TokenType{token.COMMA}) {
			break
		}
	}
	if _, err := parser.consume(token.RCUR, "Expected '}' after struct literal."); err != nil {
		return nil, err
	}

	return ast.Struct{Name: name, Initializers: initializers}, nil
}

// Consumes the current token by advancing the parsers current position by
// one unit if the `tokenType` matches the token type of the parsers current
// position.
//
//	Returns:
//	- A SyntaxError if the provided `tokenType` does not match the `TokenType`
//		at the parsers current position
func (parser *Parser) consume(tokenType token.TokenType, errorMessage string) (token.Token, error) {
	if parser.checkType(tokenType) {
		return parser.advance(), nil
	}
	currentToken := parser.peek()
	return token.CreateToken(token.EOF, 0, 0), CreateSyntaxError(currentToken.Line, currentToken.Column, errorMessage)
}
