package compiler

import (
	"fmt"
	"os"
	"strings"
)

// Disassemble walks a compiled Bytecode's instruction stream and renders it
// as human-readable text, one instruction per line prefixed with its byte
// offset. OpConst's 8-byte float immediate and the variable-length
// OpStructBlueprint/OpImpl records fall outside the generic operand-width
// table in code.go, so they are decoded by hand here same as the VM does.
func Disassemble(bc Bytecode) string {
	var builder strings.Builder
	ip := 0
	for ip < len(bc.Instructions) {
		op := Opcode(bc.Instructions[ip])

		switch op {
		case OpConst:
			value := ReadConstOperand(bc.Instructions, ip)
			fmt.Fprintf(&builder, "%04d OpConst %g\n", ip, value)
			ip += 9

		case OpStructBlueprint:
			offset := ip + 1
			nameIdx := ReadUint32At(bc.Instructions, offset)
			offset += 4
			count := ReadUint32At(bc.Instructions, offset)
			offset += 4
			members := make([]string, 0, count)
			for i := uint32(0); i < count; i++ {
				members = append(members, bc.stringAt(ReadUint32At(bc.Instructions, offset)))
				offset += 4
			}
			fmt.Fprintf(&builder, "%04d OpStructBlueprint %s { %s }\n", ip, bc.stringAt(nameIdx), strings.Join(members, ", "))
			ip = offset

		case OpImpl:
			offset := ip + 1
			nameIdx := ReadUint32At(bc.Instructions, offset)
			offset += 4
			count := ReadUint32At(bc.Instructions, offset)
			offset += 4
			methods := make([]string, 0, count)
			for i := uint32(0); i < count; i++ {
				methodIdx := ReadUint32At(bc.Instructions, offset)
				offset += 4
				paramCount := ReadUint32At(bc.Instructions, offset)
				offset += 4
				location := ReadUint32At(bc.Instructions, offset)
				offset += 4
				methods = append(methods, fmt.Sprintf("%s/%d@%d", bc.stringAt(methodIdx), paramCount, location))
			}
			fmt.Fprintf(&builder, "%04d OpImpl %s { %s }\n", ip, bc.stringAt(nameIdx), strings.Join(methods, ", "))
			ip = offset

		default:
			def, err := Get(op)
			if err != nil {
				fmt.Fprintf(&builder, "%04d <unknown opcode %d>\n", ip, op)
				ip++
				continue
			}

			operands := make([]uint32, len(def.OperandWidths))
			offset := ip + 1
			for i := range def.OperandWidths {
				operands[i] = ReadUint32At(bc.Instructions, offset)
				offset += 4
			}

			line := fmt.Sprintf("%04d %s", ip, def.Name)
			for i, operand := range operands {
				line += fmt.Sprintf(" %d", operand)
				if i == 0 && (op == OpStr || op == OpGetattr || op == OpGetattrPtr || op == OpSetattr) {
					line += fmt.Sprintf(" (%q)", bc.stringAt(operand))
				}
				if op == OpCallMethod && i == 0 {
					line += fmt.Sprintf(" (%q)", bc.stringAt(operand))
				}
			}
			builder.WriteString(line)
			builder.WriteString("\n")
			ip = offset
		}
	}
	return builder.String()
}

// stringAt safely resolves a StringPool index, falling back to a visible
// marker rather than panicking when disassembling hand-crafted bytecode.
func (bc Bytecode) stringAt(idx uint32) string {
	if int(idx) >= len(bc.StringPool) {
		return "?"
	}
	return bc.StringPool[idx]
}

// DumpBytecode writes the disassembly of a compiled bytecode to disk,
// defaulting to "bytecode.dnic" when no path is given.
func DumpBytecode(bc Bytecode, filePath string) error {
	if filePath == "" {
		filePath = "bytecode.dnic"
	} else {
		filePath += ".dnic"
	}
	return os.WriteFile(filePath, []byte(Disassemble(bc)), 0o644)
}
