package interpreter

import (
	"fmt"
	"nilan/ast"
	"nilan/token"
	"strconv"
)

// TreeWalkInterpreter executes parsed statements directly against the AST,
// without going through the compiler/vm pipeline. It exists as a reference
// and diagnostic tool behind the "repl" command: something to sanity-check
// simple scripts against, not a second production implementation. Functions,
// structs, pointers, and vectors belong to the compiled VM's value model;
// visiting one of those nodes here panics rather than duplicating that
// machinery a second time in tree-walking form.
type TreeWalkInterpreter struct {
	environment *Environment
}

// Make creates an instance of the tree-walk interpreter.
func Make() *TreeWalkInterpreter {
	return &TreeWalkInterpreter{
		environment: MakeEnvironment(),
	}
}

// Interpret executes a list of statements.
// It recovers from panics to print runtime errors without crashing.
func (i *TreeWalkInterpreter) Interpret(statements []ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Println(r)
		}
	}()
	i.executeStatements(statements)
}

func (i *TreeWalkInterpreter) executeStatements(statements []ast.Stmt) {
	for _, s := range statements {
		s.Accept(i)
	}
}

func (i *TreeWalkInterpreter) executeStmt(stmt ast.Stmt) {
	stmt.Accept(i)
}

// VisitBlockStmt executes all statements in the given block within a new
// nested environment, restoring the previous one on the way out even if a
// panic unwinds through it.
func (i *TreeWalkInterpreter) VisitBlockStmt(blockStmt ast.BlockStmt) any {
	previous := i.environment
	i.environment = MakeNestedEnvironment(i.environment)
	defer func() { i.environment = previous }()

	i.executeStatements(blockStmt.Statements)
	return nil
}

func (i *TreeWalkInterpreter) VisitExpressionStmt(exprStatement ast.ExpressionStmt) any {
	i.evaluate(exprStatement.Expression)
	return nil
}

// VisitIfStmt executes the Then branch when the condition is true, else the
// Else branch. Else is always a concrete statement (a DummyStmt when the
// source had no else), so there is no nil branch to guard against.
func (i *TreeWalkInterpreter) VisitIfStmt(stmt ast.IfStmt) any {
	if i.isTrue(i.evaluate(stmt.Condition)) {
		i.executeStmt(stmt.Then)
	} else {
		i.executeStmt(stmt.Else)
	}
	return nil
}

func (i *TreeWalkInterpreter) VisitPrintStmt(printStmt ast.PrintStmt) any {
	value := i.evaluate(printStmt.Expression)
	if value == nil {
		fmt.Println("null")
		return nil
	}
	fmt.Println(value)
	return nil
}

// loopSignal is panicked by break/continue and recovered by the nearest
// enclosing loop, giving this interpreter non-local control flow without a
// second bytecode dialect to maintain.
type loopSignal struct {
	isBreak bool
}

func (i *TreeWalkInterpreter) VisitWhileStmt(stmt ast.WhileStmt) any {
	for i.isTrue(i.evaluate(stmt.Condition)) {
		if i.runLoopBody(stmt.Body) {
			break
		}
	}
	return nil
}

func (i *TreeWalkInterpreter) VisitForStmt(stmt ast.ForStmt) any {
	if stmt.Init != nil {
		i.executeStmt(stmt.Init)
	}
	for stmt.Condition == nil || i.isTrue(i.evaluate(stmt.Condition)) {
		if i.runLoopBody(stmt.Body) {
			break
		}
		if stmt.Step != nil {
			i.evaluate(stmt.Step)
		}
	}
	return nil
}

// runLoopBody executes one loop iteration, reporting whether a break
// unwound out of it so the caller knows to stop looping.
func (i *TreeWalkInterpreter) runLoopBody(body ast.Stmt) (brk bool) {
	defer func() {
		if r := recover(); r != nil {
			signal, ok := r.(loopSignal)
			if !ok {
				panic(r)
			}
			brk = signal.isBreak
		}
	}()
	i.executeStmt(body)
	return false
}

func (i *TreeWalkInterpreter) VisitBreakStmt(stmt ast.BreakStmt) any {
	panic(loopSignal{isBreak: true})
}

func (i *TreeWalkInterpreter) VisitContinueStmt(stmt ast.ContinueStmt) any {
	panic(loopSignal{isBreak: false})
}

func (i *TreeWalkInterpreter) VisitDummyStmt(stmt ast.DummyStmt) any {
	return nil
}

func (i *TreeWalkInterpreter) VisitUseStmt(stmt ast.UseStmt) any {
	return nil
}

func (i *TreeWalkInterpreter) unsupported(what string) any {
	panic(fmt.Sprintf("💥 the reference interpreter does not support %s; run this program through the compiled pipeline instead", what))
}

func (i *TreeWalkInterpreter) VisitFnStmt(stmt ast.FnStmt) any {
	return i.unsupported("function declarations")
}

func (i *TreeWalkInterpreter) VisitReturnStmt(stmt ast.ReturnStmt) any {
	return i.unsupported("return statements")
}

func (i *TreeWalkInterpreter) VisitStructStmt(stmt ast.StructStmt) any {
	return i.unsupported("struct declarations")
}

func (i *TreeWalkInterpreter) VisitImplStmt(stmt ast.ImplStmt) any {
	return i.unsupported("impl blocks")
}

func (i *TreeWalkInterpreter) VisitCallExpression(call ast.Call) any {
	return i.unsupported("function and method calls")
}

func (i *TreeWalkInterpreter) VisitGetExpression(get ast.Get) any {
	return i.unsupported("struct member access")
}

func (i *TreeWalkInterpreter) VisitSubscriptExpression(sub ast.Subscript) any {
	return i.unsupported("vector subscripting")
}

func (i *TreeWalkInterpreter) VisitStructExpression(structExpr ast.Struct) any {
	return i.unsupported("struct literals")
}

func (i *TreeWalkInterpreter) VisitStructInitializerExpression(init ast.StructInitializer) any {
	return i.unsupported("struct literals")
}

func (i *TreeWalkInterpreter) VisitVecExpression(vec ast.Vec) any {
	return i.unsupported("vector literals")
}

// VisitAssignExpression implements the same implicit-declaration semantics
// as the compiler: assigning to a name not bound in any enclosing scope
// declares it in the current one. Only a bare variable target is supported — pointer,
// member, and subscript targets need the compiled VM's value model.
func (i *TreeWalkInterpreter) VisitAssignExpression(assign ast.Assign) any {
	variable, ok := assign.Target.(ast.Variable)
	if !ok {
		return i.unsupported("assignment to anything but a plain variable")
	}

	value := i.evaluate(assign.Value)
	if assign.Operator.TokenType != token.ASSIGN {
		current, err := i.environment.get(variable.Name)
		if err != nil {
			panic(err.Error())
		}
		value = i.applyCompoundOp(assign.Operator, current, value)
	}
	i.environment.set(variable.Name.Lexeme, value)
	return value
}

func (i *TreeWalkInterpreter) applyCompoundOp(operator token.Token, left, right any) any {
	l, lerr := literalToFloat64(left)
	r, rerr := literalToFloat64(right)
	if lerr != nil || rerr != nil {
		panic(CreateRuntimeError(operator.Line, operator.Column, "compound assignment operands must be numeric"))
	}
	switch operator.TokenType {
	case token.PLUS_EQUAL:
		return l + r
	case token.MINUS_EQUAL:
		return l - r
	case token.STAR_EQUAL:
		return l * r
	case token.SLASH_EQUAL:
		return l / r
	default:
		panic(CreateRuntimeError(operator.Line, operator.Column, fmt.Sprintf("unsupported compound operator '%s'", operator.TokenType)))
	}
}

func (i *TreeWalkInterpreter) VisitLogicalExpression(logical ast.Logical) any {
	left := i.evaluate(logical.Left)
	if logical.Operator.TokenType == token.OR_OR {
		if i.isTrue(left) {
			return left
		}
		return i.evaluate(logical.Right)
	}
	if !i.isTrue(left) {
		return left
	}
	return i.evaluate(logical.Right)
}

// VisitBinary evaluates a binary expression node.
func (i *TreeWalkInterpreter) VisitBinary(binary ast.Binary) any {
	leftResult := i.evaluate(binary.Left)
	rightResult := i.evaluate(binary.Right)
	operator := binary.Operator.TokenType

	switch operator {
	case token.MULT:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			panic(err.Error())
		}
		return leftValue * rightValue

	case token.DIV:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			panic(err.Error())
		}
		if rightValue == 0 {
			panic(CreateRuntimeError(binary.Operator.Line, binary.Operator.Column+1, "division by zero"))
		}
		return leftValue / rightValue

	case token.SUB:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			panic(err.Error())
		}
		return leftValue - rightValue

	case token.ADD:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err == nil {
			return leftValue + rightValue
		}
		leftValString, ok := leftResult.(string)
		rightValString, okk := rightResult.(string)
		if ok && okk {
			return leftValString + rightValString
		}
		panic(err.Error())

	case token.EQUAL_EQUAL:
		return leftResult == rightResult

	case token.NOT_EQUAL:
		return leftResult != rightResult

	case token.LARGER:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			panic(err)
		}
		return leftValue > rightValue

	case token.LARGER_EQUAL:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			panic(err)
		}
		return leftValue >= rightValue

	case token.LESS:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			panic(err)
		}
		return leftValue < rightValue

	case token.LESS_EQUAL:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			panic(err)
		}
		return leftValue <= rightValue

	default:
		message := fmt.Sprintf("operator '%s' not supported", operator)
		panic(CreateRuntimeError(binary.Operator.Line, binary.Operator.Column, message))
	}
}

// VisitUnary evaluates a unary expression node. Pointer operators belong to
// the compiled VM's value model, same as Get/Subscript/Vec.
func (i *TreeWalkInterpreter) VisitUnary(unary ast.Unary) any {
	operator := unary.Operator.TokenType
	if operator == token.AMPERSAND || operator == token.MULT {
		return i.unsupported("pointer operators")
	}

	rightResult := i.evaluate(unary.Right)
	switch operator {
	case token.SUB:
		r, err := literalToFloat64(rightResult)
		if err != nil {
			message := fmt.Sprintf("operand must be a numeric value. '%s %v' is not allowed", operator, rightResult)
			panic(CreateRuntimeError(unary.Operator.Line, unary.Operator.Column, message))
		}
		return -r
	case token.BANG:
		if rightResult == nil {
			return true
		}
		if value, isBool := rightResult.(bool); isBool {
			return !value
		}
		return false
	default:
		message := fmt.Sprintf("operator '%s' not supported for unary operations", operator)
		panic(CreateRuntimeError(unary.Operator.Line, unary.Operator.Column, message))
	}
}

// isTrue determines the "truthiness" of the given object. nil is false,
// bools are themselves, everything else is true.
func (i *TreeWalkInterpreter) isTrue(object any) bool {
	if object == nil {
		return false
	}
	if value, isBool := object.(bool); isBool {
		return value
	}
	return true
}

func (i *TreeWalkInterpreter) VisitVariableExpression(expression ast.Variable) any {
	value, err := i.environment.get(expression.Name)
	if err != nil {
		panic(err)
	}
	return value
}

func (i *TreeWalkInterpreter) VisitLiteral(literal ast.Literal) any {
	return literal.Value
}

func (i *TreeWalkInterpreter) VisitGrouping(grouping ast.Grouping) any {
	return i.evaluate(grouping.Expression)
}

func (i *TreeWalkInterpreter) evaluate(expression ast.Expression) any {
	return expression.Accept(i)
}

// literalToFloat64 attempts to convert a literal value into a float64.
func literalToFloat64(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		return 0, fmt.Errorf("unsupported type: %T", value)
	}
}

// isOperandsNumeric validates that both operands are numeric and converts
// them to float64.
func isOperandsNumeric(operator token.TokenType, left any, right any, pos token.Token) (float64, float64, error) {
	l, lerr := literalToFloat64(left)
	r, rerr := literalToFloat64(right)

	if lerr == nil && rerr == nil {
		return l, r, nil
	}

	message := fmt.Sprintf("operands must be numeric values. '%v %s %v' is not allowed", left, operator, right)
	return 0, 0, CreateRuntimeError(pos.Line, pos.Column, message)
}
