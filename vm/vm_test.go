package vm

import (
	"nilan/compiler"
	"testing"

	"github.com/dolthub/swiss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// program assembles a minimal "Call(0), Jmp(mainEntry), Pop(1), Halt"
// trailer around a hand-built body, mirroring what ASTCompiler.CompileAST
// emits for "fn main() { <body ops> }".
func program(t *testing.T, bodyOps ...[]byte) compiler.Bytecode {
	t.Helper()

	jmp, err := compiler.MakeInstruction(compiler.OpJmp, 0)
	require.NoError(t, err)
	bodyStart := len(jmp)

	var body []byte
	for _, op := range bodyOps {
		body = append(body, op...)
	}
	// Every Call expects its callee to leave exactly one value for the
	// trailer's Pop(1), the same guarantee a real function body gets from
	// compileFunctionBody's implicit "return null" when it falls off the end.
	null, err := compiler.MakeInstruction(compiler.OpNull)
	require.NoError(t, err)
	body = append(body, null...)
	ret, err := compiler.MakeInstruction(compiler.OpRet)
	require.NoError(t, err)
	body = append(body, ret...)

	patched, err := compiler.MakeInstruction(compiler.OpJmp, bodyStart+len(body))
	require.NoError(t, err)

	instructions := append([]byte{}, patched...)
	instructions = append(instructions, body...)

	call, err := compiler.MakeInstruction(compiler.OpCall, 0)
	require.NoError(t, err)
	jmpToMain, err := compiler.MakeInstruction(compiler.OpJmp, bodyStart)
	require.NoError(t, err)
	pop, err := compiler.MakeInstruction(compiler.OpPop, 1)
	require.NoError(t, err)
	halt, err := compiler.MakeInstruction(compiler.OpHalt)
	require.NoError(t, err)

	instructions = append(instructions, call...)
	instructions = append(instructions, jmpToMain...)
	instructions = append(instructions, pop...)
	instructions = append(instructions, halt...)

	return compiler.Bytecode{Instructions: instructions}
}

func op(t *testing.T, opcode compiler.Opcode, operands ...int) []byte {
	t.Helper()
	instr, err := compiler.MakeInstruction(opcode, operands...)
	require.NoError(t, err)
	return instr
}

func TestRunHaltsCleanly(t *testing.T) {
	bc := program(t)
	require.NoError(t, New().Run(bc))
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name   string
		opcode compiler.Opcode
		a, b   float64
		want   float64
	}{
		{"add", compiler.OpAdd, 2, 3, 5},
		{"sub", compiler.OpSub, 5, 3, 2},
		{"mul", compiler.OpMul, 4, 3, 12},
		{"div", compiler.OpDiv, 9, 2, 4.5},
		{"mod", compiler.OpMod, 9, 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := New()
			bc := program(t,
				compiler.MakeConstInstruction(tt.a),
				compiler.MakeConstInstruction(tt.b),
				op(t, tt.opcode),
			)
			require.NoError(t, vm.Run(bc))
			assert.Equal(t, tt.want, vm.Peek())
		})
	}
}

// TestBitwiseOps pins down the clamp-to-[0,2^64)/unsigned-truncate semantics
// bitwise operators run under: a negative operand clamps to 0 rather than
// wrapping around as a signed value would.
func TestBitwiseOps(t *testing.T) {
	tests := []struct {
		name   string
		opcode compiler.Opcode
		a, b   float64
		want   float64
	}{
		{"and", compiler.OpBitAnd, 6, 3, 2},
		{"or", compiler.OpBitOr, 6, 3, 7},
		{"xor", compiler.OpBitXor, 6, 3, 5},
		{"shl", compiler.OpBitShl, 1, 4, 16},
		{"shr", compiler.OpBitShr, 16, 2, 4},
		{"and clamps negative operand to 0", compiler.OpBitAnd, -5, 3, 0},
		{"or clamps negative operand to 0", compiler.OpBitOr, -5, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := New()
			bc := program(t,
				compiler.MakeConstInstruction(tt.a),
				compiler.MakeConstInstruction(tt.b),
				op(t, tt.opcode),
			)
			require.NoError(t, vm.Run(bc))
			assert.Equal(t, tt.want, vm.Peek())
		})
	}
}

// TestBitNot pins down the truncate-to-uint64/reduce-mod-2^32/NOT-as-uint32
// semantics shared by the BitNot opcode ("~") and Not on a number ("!").
func TestBitNot(t *testing.T) {
	tests := []struct {
		name string
		n    float64
		want float64
	}{
		{"positive", 5, 4294967290},
		{"zero", 0, 4294967295},
		{"negative clamps to 0 before reducing", -5, 4294967295},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := New()
			bc := program(t,
				compiler.MakeConstInstruction(tt.n),
				op(t, compiler.OpBitNot),
			)
			require.NoError(t, vm.Run(bc))
			assert.Equal(t, tt.want, vm.Peek())

			vm2 := New()
			bc2 := program(t,
				compiler.MakeConstInstruction(tt.n),
				op(t, compiler.OpNot),
			)
			require.NoError(t, vm2.Run(bc2))
			assert.Equal(t, tt.want, vm2.Peek())
		})
	}
}

func TestDivisionByZeroIsARuntimeError(t *testing.T) {
	vm := New()
	bc := program(t,
		compiler.MakeConstInstruction(1),
		compiler.MakeConstInstruction(0),
		op(t, compiler.OpDiv),
	)
	err := vm.Run(bc)
	require.Error(t, err)
	assert.IsType(t, RuntimeError{}, err)
}

func TestAddingNonNumbersIsARuntimeError(t *testing.T) {
	vm := New()
	bc := program(t,
		compiler.MakeConstInstruction(1),
		op(t, compiler.OpFalse),
		op(t, compiler.OpAdd),
	)
	bc.StringPool = []string{}
	err := vm.Run(bc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only numbers can be +")
}

func TestDeepgetDeepset(t *testing.T) {
	vm := New()
	bc := program(t,
		compiler.MakeConstInstruction(5), // declares local 0
		op(t, compiler.OpDeepget, 0),
		compiler.MakeConstInstruction(1),
		op(t, compiler.OpAdd),
		op(t, compiler.OpDeepset, 0),
		op(t, compiler.OpDeepget, 0),
		op(t, compiler.OpPop, 1),
	)
	require.NoError(t, vm.Run(bc))
}

func TestStructLifecycle(t *testing.T) {
	vm := New()

	blueprint := append([]byte{byte(compiler.OpStructBlueprint)}, compiler.PutUint32(nil, 0)...) // name_idx=0 ("Point")
	blueprint = compiler.PutUint32(blueprint, 2)                                                 // 2 members
	blueprint = compiler.PutUint32(blueprint, 1)                                                 // "x"
	blueprint = compiler.PutUint32(blueprint, 2)                                                 // "y"

	bc := program(t,
		blueprint,
		op(t, compiler.OpStruct, 0),
		compiler.MakeConstInstruction(1),
		op(t, compiler.OpSetattr, 1),
		compiler.MakeConstInstruction(2),
		op(t, compiler.OpSetattr, 2),
		op(t, compiler.OpGetattr, 1),
	)
	bc.StringPool = []string{"Point", "x", "y"}
	require.NoError(t, vm.Run(bc))

	blueprintRecord, ok := vm.structs.Get("Point")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"x", "y"}, blueprintRecord.Members)
}

func TestVecSubscript(t *testing.T) {
	vm := New()
	bc := program(t,
		compiler.MakeConstInstruction(3),
		compiler.MakeConstInstruction(2),
		compiler.MakeConstInstruction(1),
		op(t, compiler.OpVec, 3),
		compiler.MakeConstInstruction(0),
		op(t, compiler.OpSubscript),
	)
	require.NoError(t, vm.Run(bc))
}

func TestOutOfRangeSubscriptIsARuntimeError(t *testing.T) {
	vm := New()
	bc := program(t,
		compiler.MakeConstInstruction(1),
		op(t, compiler.OpVec, 1),
		compiler.MakeConstInstruction(5),
		op(t, compiler.OpSubscript),
	)
	err := vm.Run(bc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestDisplayStringFormatsValues(t *testing.T) {
	assert.Equal(t, "5", displayString(float64(5)))
	assert.Equal(t, "3.5", displayString(float64(3.5)))
	assert.Equal(t, "true", displayString(true))
	assert.Equal(t, "null", displayString(Null{}))

	vec := &VecInstance{Elements: []any{float64(1), float64(2)}}
	assert.Equal(t, "[1, 2]", displayString(vec))
}

func TestValuesEqualStructural(t *testing.T) {
	a := &VecInstance{Elements: []any{float64(1), float64(2)}}
	b := &VecInstance{Elements: []any{float64(1), float64(2)}}
	assert.True(t, valuesEqual(a, b))

	members1 := swiss.NewMap[string, any](0)
	members1.Put("x", float64(1))
	members2 := swiss.NewMap[string, any](0)
	members2.Put("x", float64(1))
	s1 := &StructInstance{Name: "P", Members: members1}
	s2 := &StructInstance{Name: "P", Members: members2}
	assert.True(t, valuesEqual(s1, s2))
}
