// This file implements the ASTCompiler, which compiles the abstract syntax tree (AST) directly to bytecode.
package compiler

import (
	"fmt"
	"nilan/ast"
	"nilan/token"

	"github.com/dolthub/swiss"
)

// FunctionRecord describes a compiled function or method: where its body
// lives in the instruction stream and how many parameters it declares.
type FunctionRecord struct {
	Location   uint32
	ParamCount int
}

// Blueprint is the compile-time record of a struct declaration: its member
// names and, once an "impl" block is compiled, its methods.
type Blueprint struct {
	Members []string
	Methods *swiss.Map[string, *FunctionRecord]
}

// ASTCompiler is a visitor that lowers an AST directly to bytecode. Inside
// the function currently being compiled, locals/pops/depth track the
// single-pass local-slot model: every referenced or declared name occupies
// one stack slot relative to the active frame, resolved at compile time.
type ASTCompiler struct {
	bytecode Bytecode

	functions *swiss.Map[string, *FunctionRecord]
	structs   *swiss.Map[string, *Blueprint]

	locals []string
	pops   []int
	depth  int

	loopStarts []int
	loopDepths []int
	breaks     []int

	Debug bool
}

// NewASTCompiler creates a new AST-to-bytecode compiler.
func NewASTCompiler() *ASTCompiler {
	return &ASTCompiler{
		bytecode: Bytecode{
			Instructions: Instructions{},
			StringPool:   []string{},
		},
		functions: swiss.NewMap[string, *FunctionRecord](0),
		structs:   swiss.NewMap[string, *Blueprint](0),
	}
}

// CompileAST compiles the full program to a single bytecode artifact. It
// recovers from SemanticError/DeveloperError panics raised anywhere during
// lowering and returns them as plain errors; any other panic propagates,
// since it indicates a bug in the compiler itself rather than a source
// error.
func (c *ASTCompiler) CompileAST(statements []ast.Stmt) (bc Bytecode, err error) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case SemanticError:
				err = v
			case DeveloperError:
				err = v
			default:
				panic(r)
			}
		}
	}()

	for _, stmt := range statements {
		stmt.Accept(c)
	}

	main, ok := c.functions.Get("main")
	if !ok {
		panic(SemanticError{Message: "'main' is not defined"})
	}
	c.emit(OpCall, 0)
	c.emit(OpJmp, int(main.Location))
	c.emit(OpPop, 1)
	c.emit(OpHalt)

	return c.bytecode, nil
}

// --- Statements ---

func (c *ASTCompiler) VisitPrintStmt(stmt ast.PrintStmt) any {
	stmt.Expression.Accept(c)
	c.emit(OpPrint)
	return nil
}

// VisitExpressionStmt compiles an expression used for its side effects.
// Assignments are always self-balancing (a fresh declaration keeps its
// pushed value as the new local's slot; every other assignment shape nets
// to zero on the stack internally), so only non-assignment expressions need
// the trailing Pop to discard their result.
func (c *ASTCompiler) VisitExpressionStmt(stmt ast.ExpressionStmt) any {
	stmt.Expression.Accept(c)
	if _, isAssign := stmt.Expression.(ast.Assign); !isAssign {
		c.emit(OpPop, 1)
	}
	return nil
}

func (c *ASTCompiler) VisitBlockStmt(stmt ast.BlockStmt) any {
	c.pops = append(c.pops, 0)
	c.depth++

	for _, s := range stmt.Statements {
		s.Accept(c)
	}

	declared := c.pops[len(c.pops)-1]
	c.locals = c.locals[:len(c.locals)-declared]
	c.pops = c.pops[:len(c.pops)-1]
	c.depth--
	if declared > 0 {
		c.emit(OpPop, declared)
	}
	return nil
}

func (c *ASTCompiler) VisitIfStmt(stmt ast.IfStmt) any {
	stmt.Condition.Accept(c)
	jz := c.emitPlaceholderJump(OpJz)

	stmt.Then.Accept(c)
	jmp := c.emitPlaceholderJump(OpJmp)

	c.patchJump(jz, len(c.bytecode.Instructions))
	stmt.Else.Accept(c)

	c.patchJump(jmp, len(c.bytecode.Instructions))
	return nil
}

func (c *ASTCompiler) VisitWhileStmt(stmt ast.WhileStmt) any {
	loopStart := len(c.bytecode.Instructions)
	c.loopStarts = append(c.loopStarts, loopStart)
	breaksMark := len(c.breaks)

	stmt.Condition.Accept(c)
	jz := c.emitPlaceholderJump(OpJz)

	c.loopDepths = append(c.loopDepths, len(c.pops))
	stmt.Body.Accept(c)
	c.loopDepths = c.loopDepths[:len(c.loopDepths)-1]

	c.emit(OpJmp, loopStart)

	loopEnd := len(c.bytecode.Instructions)
	c.patchJump(jz, loopEnd)
	c.patchBreaks(breaksMark, loopEnd)
	c.loopStarts = c.loopStarts[:len(c.loopStarts)-1]
	return nil
}

// VisitForStmt compiles "for (init; cond; step) { body }". The advancement
// expression is compiled once, out of the loop's straight-line path, and
// reached only by the Jmp that replaces "continue"/the body's fallthrough;
// this lets a single condition test serve both the first iteration and
// every subsequent one.
func (c *ASTCompiler) VisitForStmt(stmt ast.ForStmt) any {
	declaredInit := false
	if stmt.Init != nil {
		stmt.Init.Accept(c)
		declaredInit = true
	}

	loopStart := len(c.bytecode.Instructions)
	c.loopStarts = append(c.loopStarts, loopStart)
	breaksMark := len(c.breaks)

	var jz int
	hasCondition := stmt.Condition != nil
	if hasCondition {
		stmt.Condition.Accept(c)
		jz = c.emitPlaceholderJump(OpJz)
	}

	overAdvancement := c.emitPlaceholderJump(OpJmp)
	continuation := len(c.bytecode.Instructions)
	if stmt.Step != nil {
		stmt.Step.Accept(c)
		if _, isAssign := stmt.Step.(ast.Assign); !isAssign {
			c.emit(OpPop, 1)
		}
	}
	c.emit(OpJmp, loopStart)
	c.patchJump(overAdvancement, len(c.bytecode.Instructions))

	c.loopStarts[len(c.loopStarts)-1] = continuation
	c.loopDepths = append(c.loopDepths, len(c.pops))
	stmt.Body.Accept(c)
	c.loopDepths = c.loopDepths[:len(c.loopDepths)-1]

	c.emit(OpJmp, continuation)

	loopEnd := len(c.bytecode.Instructions)
	if hasCondition {
		c.patchJump(jz, loopEnd)
	}
	c.patchBreaks(breaksMark, loopEnd)
	c.loopStarts = c.loopStarts[:len(c.loopStarts)-1]

	if declaredInit {
		c.locals = c.locals[:len(c.locals)-1]
		c.emit(OpPop, 1)
	}
	return nil
}

func (c *ASTCompiler) patchBreaks(mark int, target int) {
	for _, pos := range c.breaks[mark:] {
		c.patchJump(pos, target)
	}
	c.breaks = c.breaks[:mark]
}

func (c *ASTCompiler) emitLoopUnwind() {
	loopDepth := c.loopDepths[len(c.loopDepths)-1]
	for i := len(c.pops) - 1; i >= loopDepth; i-- {
		if c.pops[i] > 0 {
			c.emit(OpPop, c.pops[i])
		}
	}
}

func (c *ASTCompiler) VisitBreakStmt(stmt ast.BreakStmt) any {
	if len(c.loopStarts) == 0 {
		panic(SemanticError{Message: "break outside a loop"})
	}
	c.emitLoopUnwind()
	pos := c.emitPlaceholderJump(OpJmp)
	c.breaks = append(c.breaks, pos)
	return nil
}

func (c *ASTCompiler) VisitContinueStmt(stmt ast.ContinueStmt) any {
	if len(c.loopStarts) == 0 {
		panic(SemanticError{Message: "continue outside a loop"})
	}
	c.emitLoopUnwind()
	c.emit(OpJmp, c.loopStarts[len(c.loopStarts)-1])
	return nil
}

// compileFunctionBody emits the skip-jump/body pair shared by top-level
// function declarations and impl methods. The leading Jmp only ever fires
// when the linear top-level scan falls through to it, skipping to just past
// the body; the returned entry is the body's first instruction, the address
// a Call/CallMethod actually transfers control to.
func (c *ASTCompiler) compileFunctionBody(fn ast.FnStmt) (entry uint32, paramCount int) {
	jmpPos := c.emitPlaceholderJump(OpJmp)
	bodyStart := len(c.bytecode.Instructions)

	savedLocals, savedPops, savedDepth := c.locals, c.pops, c.depth
	params := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		params = append(params, p.Lexeme)
	}
	c.locals = params
	c.pops = []int{len(params)}
	c.depth = 1

	for _, s := range fn.Body {
		s.Accept(c)
	}

	if !endsInReturn(fn.Body) {
		c.VisitReturnStmt(ast.ReturnStmt{Value: nil})
	}

	c.patchJump(jmpPos, len(c.bytecode.Instructions))

	c.locals, c.pops, c.depth = savedLocals, savedPops, savedDepth
	return uint32(bodyStart), len(fn.Params)
}

// endsInReturn reports whether a function body's last statement is a return,
// so compileFunctionBody knows whether it still needs to emit one itself.
// Every path out of a function must leave the Deepset cascade + Ret that
// Call's calling convention expects, even when the source never says return.
func endsInReturn(body []ast.Stmt) bool {
	if len(body) == 0 {
		return false
	}
	_, ok := body[len(body)-1].(ast.ReturnStmt)
	return ok
}

func (c *ASTCompiler) VisitFnStmt(stmt ast.FnStmt) any {
	if _, exists := c.functions.Get(stmt.Name.Lexeme); exists {
		panic(SemanticError{Message: fmt.Sprintf("function '%s' is already defined", stmt.Name.Lexeme)})
	}
	record := &FunctionRecord{ParamCount: len(stmt.Params)}
	c.functions.Put(stmt.Name.Lexeme, record)

	entry, paramCount := c.compileFunctionBody(stmt)
	record.Location = entry
	record.ParamCount = paramCount
	return nil
}

func (c *ASTCompiler) VisitReturnStmt(stmt ast.ReturnStmt) any {
	if stmt.Value != nil {
		stmt.Value.Accept(c)
	} else {
		c.emit(OpNull)
	}

	for i := len(c.locals) - 1; i >= 0; i-- {
		c.emit(OpDeepset, i)
	}
	c.emit(OpRet)
	return nil
}

func (c *ASTCompiler) VisitStructStmt(stmt ast.StructStmt) any {
	if _, exists := c.structs.Get(stmt.Name.Lexeme); exists {
		panic(SemanticError{Message: fmt.Sprintf("struct '%s' is already defined", stmt.Name.Lexeme)})
	}

	members := make([]string, 0, len(stmt.Members))
	for _, m := range stmt.Members {
		members = append(members, m.Lexeme)
	}
	c.structs.Put(stmt.Name.Lexeme, &Blueprint{
		Members: members,
		Methods: swiss.NewMap[string, *FunctionRecord](0),
	})

	nameIdx := uint32(c.addString(stmt.Name.Lexeme))
	record := PutUint32(nil, nameIdx)
	record = PutUint32(record, uint32(len(members)))
	for _, m := range members {
		record = PutUint32(record, uint32(c.addString(m)))
	}

	c.emit(OpStructBlueprint)
	c.bytecode.Instructions = append(c.bytecode.Instructions, record...)
	return nil
}

func (c *ASTCompiler) VisitImplStmt(stmt ast.ImplStmt) any {
	blueprint, exists := c.structs.Get(stmt.Name.Lexeme)
	if !exists {
		panic(SemanticError{Message: fmt.Sprintf("cannot implement undefined struct '%s'", stmt.Name.Lexeme)})
	}

	type methodEntry struct {
		nameIdx    uint32
		paramCount int
		location   uint32
	}
	entries := make([]methodEntry, 0, len(stmt.Methods))
	for _, method := range stmt.Methods {
		entry, paramCount := c.compileFunctionBody(method)
		blueprint.Methods.Put(method.Name.Lexeme, &FunctionRecord{Location: entry, ParamCount: paramCount})
		entries = append(entries, methodEntry{uint32(c.addString(method.Name.Lexeme)), paramCount, entry})
	}

	record := PutUint32(nil, uint32(c.addString(stmt.Name.Lexeme)))
	record = PutUint32(record, uint32(len(entries)))
	for _, e := range entries {
		record = PutUint32(record, e.nameIdx)
		record = PutUint32(record, uint32(e.paramCount))
		record = PutUint32(record, e.location)
	}

	c.emit(OpImpl)
	c.bytecode.Instructions = append(c.bytecode.Instructions, record...)
	return nil
}

func (c *ASTCompiler) VisitDummyStmt(stmt ast.DummyStmt) any {
	return nil
}

// VisitUseStmt accepts and ignores module imports; no loader is implemented.
func (c *ASTCompiler) VisitUseStmt(stmt ast.UseStmt) any {
	return nil
}

// --- Expressions ---

func (c *ASTCompiler) VisitBinary(binary ast.Binary) any {
	binary.Left.Accept(c)
	binary.Right.Accept(c)

	switch binary.Operator.TokenType {
	case token.ADD:
		c.emit(OpAdd)
	case token.SUB:
		c.emit(OpSub)
	case token.MULT:
		c.emit(OpMul)
	case token.DIV:
		c.emit(OpDiv)
	case token.MOD:
		c.emit(OpMod)
	case token.AMPERSAND:
		c.emit(OpBitAnd)
	case token.PIPE:
		c.emit(OpBitOr)
	case token.CARET:
		c.emit(OpBitXor)
	case token.SHL:
		c.emit(OpBitShl)
	case token.SHR:
		c.emit(OpBitShr)
	case token.EQUAL_EQUAL:
		c.emit(OpEq)
	case token.LESS:
		c.emit(OpLt)
	case token.LARGER:
		c.emit(OpGt)
	case token.LESS_EQUAL:
		c.emit(OpGt)
		c.emit(OpNot)
	case token.LARGER_EQUAL:
		c.emit(OpLt)
		c.emit(OpNot)
	case token.NOT_EQUAL:
		c.emit(OpEq)
		c.emit(OpNot)
	case token.PLUSPLUS:
		c.emit(OpStrcat)
	}
	return nil
}

func (c *ASTCompiler) VisitLogicalExpression(logical ast.Logical) any {
	logical.Left.Accept(c)

	switch logical.Operator.TokenType {
	case token.AND_AND:
		a := c.emitPlaceholderJump(OpJz)
		logical.Right.Accept(c)
		b := c.emitPlaceholderJump(OpJmp)
		c.patchJump(a, len(c.bytecode.Instructions))
		c.emit(OpFalse)
		c.patchJump(b, len(c.bytecode.Instructions))
	case token.OR_OR:
		a := c.emitPlaceholderJump(OpJz)
		c.emit(OpFalse)
		c.emit(OpNot)
		b := c.emitPlaceholderJump(OpJmp)
		c.patchJump(a, len(c.bytecode.Instructions))
		logical.Right.Accept(c)
		c.patchJump(b, len(c.bytecode.Instructions))
	}
	return nil
}

func (c *ASTCompiler) VisitUnary(unary ast.Unary) any {
	switch unary.Operator.TokenType {
	case token.SUB:
		unary.Right.Accept(c)
		c.emit(OpNeg)
	case token.BANG:
		unary.Right.Accept(c)
		c.emit(OpNot)
	case token.TILDE:
		unary.Right.Accept(c)
		c.emit(OpBitNot)
	case token.MULT:
		unary.Right.Accept(c)
		c.emit(OpDeref)
	case token.AMPERSAND:
		c.compileAddressOf(unary.Right)
	}
	return nil
}

func (c *ASTCompiler) compileAddressOf(expr ast.Expression) {
	switch target := expr.(type) {
	case ast.Variable:
		slot, _ := c.resolveLocal(target.Name.Lexeme)
		c.emit(OpDeepgetPtr, slot)
	case ast.Get:
		target.Object.Accept(c)
		if target.Arrow {
			c.emit(OpDeref)
		}
		c.emit(OpGetattrPtr, c.addString(target.Name.Lexeme))
	default:
		panic(SemanticError{Message: "cannot take the address of this expression"})
	}
}

func (c *ASTCompiler) VisitLiteral(literal ast.Literal) any {
	switch v := literal.Value.(type) {
	case float64:
		c.bytecode.Instructions = append(c.bytecode.Instructions, MakeConstInstruction(v)...)
	case bool:
		c.emit(OpFalse)
		if v {
			c.emit(OpNot)
		}
	case string:
		c.emit(OpStr, c.addString(v))
	case nil:
		c.emit(OpNull)
	}
	return nil
}

func (c *ASTCompiler) VisitGrouping(grouping ast.Grouping) any {
	grouping.Expression.Accept(c)
	return nil
}

func (c *ASTCompiler) VisitVariableExpression(variable ast.Variable) any {
	slot, _ := c.resolveLocal(variable.Name.Lexeme)
	c.emit(OpDeepget, slot)
	return nil
}

func (c *ASTCompiler) VisitAssignExpression(assign ast.Assign) any {
	switch target := assign.Target.(type) {
	case ast.Variable:
		c.compileVariableAssign(target, assign.Operator, assign.Value)
	case ast.Unary:
		c.compileDerefAssign(target, assign.Operator, assign.Value)
	case ast.Get:
		c.compileMemberAssign(target, assign.Operator, assign.Value)
	case ast.Subscript:
		c.compileSubscriptAssign(target, assign.Operator, assign.Value)
	default:
		panic(SemanticError{Message: "invalid assignment target"})
	}
	return nil
}

func (c *ASTCompiler) compileVariableAssign(variable ast.Variable, operator token.Token, value ast.Expression) {
	name := variable.Name.Lexeme
	slot, fresh := c.resolveLocal(name)

	if operator.TokenType != token.ASSIGN {
		if fresh {
			panic(SemanticError{Message: fmt.Sprintf("cannot use compound assignment on an undeclared variable '%s'", name)})
		}
		c.emit(OpDeepget, slot)
		value.Accept(c)
		c.emitCompoundOp(operator)
	} else {
		value.Accept(c)
	}

	if fresh {
		c.pops[len(c.pops)-1]++
		return
	}
	c.emit(OpDeepset, slot)
}

func (c *ASTCompiler) compileDerefAssign(unary ast.Unary, operator token.Token, value ast.Expression) {
	if unary.Operator.TokenType != token.MULT {
		panic(SemanticError{Message: "invalid assignment target"})
	}
	if operator.TokenType != token.ASSIGN {
		unary.Right.Accept(c)
		c.emit(OpDeref)
		value.Accept(c)
		c.emitCompoundOp(operator)
		unary.Right.Accept(c)
		c.emit(OpDerefSet)
		return
	}
	value.Accept(c)
	unary.Right.Accept(c)
	c.emit(OpDerefSet)
}

func (c *ASTCompiler) compileMemberAssign(get ast.Get, operator token.Token, value ast.Expression) {
	if operator.TokenType != token.ASSIGN {
		panic(SemanticError{Message: "compound assignment on a struct member is not supported"})
	}
	get.Object.Accept(c)
	if get.Arrow {
		c.emit(OpDeref)
	}
	value.Accept(c)
	c.emit(OpSetattr, c.addString(get.Name.Lexeme))
	c.emit(OpPop, 1)
}

func (c *ASTCompiler) compileSubscriptAssign(sub ast.Subscript, operator token.Token, value ast.Expression) {
	if operator.TokenType != token.ASSIGN {
		panic(SemanticError{Message: "compound assignment on a vector element is not supported"})
	}
	sub.Object.Accept(c)
	sub.Index.Accept(c)
	value.Accept(c)
	c.emit(OpVecSet)
}

func (c *ASTCompiler) emitCompoundOp(operator token.Token) {
	switch operator.TokenType {
	case token.PLUS_EQUAL:
		c.emit(OpAdd)
	case token.MINUS_EQUAL:
		c.emit(OpSub)
	case token.STAR_EQUAL:
		c.emit(OpMul)
	case token.SLASH_EQUAL:
		c.emit(OpDiv)
	case token.PERCENT_EQUAL:
		c.emit(OpMod)
	case token.AMP_EQUAL:
		c.emit(OpBitAnd)
	case token.PIPE_EQUAL:
		c.emit(OpBitOr)
	case token.CARET_EQUAL:
		c.emit(OpBitXor)
	case token.SHL_EQUAL:
		c.emit(OpBitShl)
	case token.SHR_EQUAL:
		c.emit(OpBitShr)
	}
}

func (c *ASTCompiler) VisitCallExpression(call ast.Call) any {
	switch callee := call.Callee.(type) {
	case ast.Variable:
		name := callee.Name.Lexeme
		fn, ok := c.functions.Get(name)
		if !ok {
			panic(SemanticError{Message: fmt.Sprintf("function '%s' is not defined", name)})
		}
		if fn.ParamCount != len(call.Arguments) {
			panic(SemanticError{Message: fmt.Sprintf(
				"function '%s' expects %d argument(s) but got %d", name, fn.ParamCount, len(call.Arguments))})
		}
		for _, arg := range call.Arguments {
			arg.Accept(c)
		}
		c.emit(OpCall, len(call.Arguments))
		c.emit(OpJmp, int(fn.Location))

	case ast.Get:
		callee.Object.Accept(c)
		if callee.Arrow {
			c.emit(OpDeref)
		}
		for _, arg := range call.Arguments {
			arg.Accept(c)
		}
		c.emit(OpCallMethod, c.addString(callee.Name.Lexeme), len(call.Arguments))

	default:
		panic(SemanticError{Message: "call target must be a function name or a method access"})
	}
	return nil
}

func (c *ASTCompiler) VisitGetExpression(get ast.Get) any {
	get.Object.Accept(c)
	if get.Arrow {
		c.emit(OpDeref)
	}
	c.emit(OpGetattr, c.addString(get.Name.Lexeme))
	return nil
}

func (c *ASTCompiler) VisitSubscriptExpression(sub ast.Subscript) any {
	sub.Object.Accept(c)
	sub.Index.Accept(c)
	c.emit(OpSubscript)
	return nil
}

func (c *ASTCompiler) VisitStructExpression(structExpr ast.Struct) any {
	blueprint, exists := c.structs.Get(structExpr.Name.Lexeme)
	if !exists {
		panic(SemanticError{Message: fmt.Sprintf("struct '%s' is not defined", structExpr.Name.Lexeme)})
	}
	if len(structExpr.Initializers) != len(blueprint.Members) {
		panic(SemanticError{Message: fmt.Sprintf(
			"struct '%s' expects %d initializer(s) but got %d",
			structExpr.Name.Lexeme, len(blueprint.Members), len(structExpr.Initializers))})
	}

	c.emit(OpStruct, c.addString(structExpr.Name.Lexeme))
	for _, init := range structExpr.Initializers {
		init.Value.Accept(c)
		c.emit(OpSetattr, c.addString(init.Member.Lexeme))
	}
	return nil
}

func (c *ASTCompiler) VisitStructInitializerExpression(init ast.StructInitializer) any {
	return init.Value.Accept(c)
}

func (c *ASTCompiler) VisitVecExpression(vec ast.Vec) any {
	for i := len(vec.Elements) - 1; i >= 0; i-- {
		vec.Elements[i].Accept(c)
	}
	c.emit(OpVec, len(vec.Elements))
	return nil
}

// --- Shared machinery ---

// resolveLocal returns the stack slot for name within the function
// currently being compiled. If name is not yet known it is appended to
// locals and fresh is true — this is how a bare assignment to a new name
// declares it, per the single-pass local-slot model.
func (c *ASTCompiler) resolveLocal(name string) (slot int, fresh bool) {
	for i := len(c.locals) - 1; i >= 0; i-- {
		if c.locals[i] == name {
			return i, false
		}
	}
	c.locals = append(c.locals, name)
	return len(c.locals) - 1, true
}

// addString interns a string in the shared, order-stable string pool and
// returns its index.
func (c *ASTCompiler) addString(s string) int {
	for i, existing := range c.bytecode.StringPool {
		if existing == s {
			return i
		}
	}
	c.bytecode.StringPool = append(c.bytecode.StringPool, s)
	return len(c.bytecode.StringPool) - 1
}

// emit constructs a bytecode instruction and appends it to the instruction
// stream. Panics with a DeveloperError if MakeInstruction rejects the opcode
// (one with no entry in the definitions table, such as OpConst) — that can
// only happen from a bug in this package, never from source input.
func (c *ASTCompiler) emit(opcode Opcode, operands ...int) {
	instruction, err := MakeInstruction(opcode, operands...)
	if err != nil {
		panic(DeveloperError{Message: err.Error()})
	}
	c.bytecode.Instructions = append(c.bytecode.Instructions, instruction...)
}

// emitPlaceholderJump emits a jump-family instruction with a placeholder
// operand and returns the byte offset of the opcode, to be passed later to
// patchJump.
func (c *ASTCompiler) emitPlaceholderJump(opcode Opcode) int {
	position := len(c.bytecode.Instructions)
	c.emit(opcode, 0)
	return position
}

// patchJump overwrites a previously emitted jump's placeholder operand with
// the real absolute target offset.
func (c *ASTCompiler) patchJump(jumpPos int, target int) {
	operandPos := jumpPos + 1
	instr := PutUint32(nil, uint32(target))
	copy(c.bytecode.Instructions[operandPos:operandPos+4], instr)
}
