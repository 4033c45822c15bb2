package vm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dolthub/swiss"
)

// Null is the runtime representation of the literal "null". It is a
// distinct, comparable zero-size type rather than a bare Go nil, so a
// missing value and "the null value" are never confused in a type switch.
type Null struct{}

// StructInstance is a struct value: shared (Go-GC-managed, referenced by
// pointer) and interior-mutable, matching the semantics of "s2 = s1; s2.x = 1"
// also changing s1.x.
type StructInstance struct {
	Name    string
	Members *swiss.Map[string, any]
}

// VecInstance is a vector value: shared and interior-mutable, same rationale
// as StructInstance.
type VecInstance struct {
	Elements []any
}

// Ptr is a raw, indexed reference produced by "&" — either to a local stack
// slot (ToMember false) or to a struct member (ToMember true). It is
// deliberately not an unsafe.Pointer: a slot reference is only ever valid
// because the owning Stack is a fixed-capacity array that never reallocates,
// so an index recorded here stays meaningful for the lifetime of the frame
// that owns it.
type Ptr struct {
	ToMember bool

	Stack *Stack
	Index int

	Struct *StructInstance
	Member string
}

func (p Ptr) Load() (any, error) {
	if p.ToMember {
		value, ok := p.Struct.Members.Get(p.Member)
		if !ok {
			return nil, RuntimeError{Message: fmt.Sprintf("struct '%s' has no member '%s'", p.Struct.Name, p.Member)}
		}
		return value, nil
	}
	return p.Stack.Get(p.Index), nil
}

func (p Ptr) Store(value any) {
	if p.ToMember {
		p.Struct.Members.Put(p.Member, value)
		return
	}
	p.Stack.Set(p.Index, value)
}

// formatNumber renders a Number the way Print and "++" do: trimming the
// fractional part for values that round-trip as whole numbers.
func formatNumber(n float64) string {
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// displayString renders any runtime value the way "print" shows it.
func displayString(value any) string {
	switch v := value.(type) {
	case float64:
		return formatNumber(v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case string:
		return v
	case Null:
		return "null"
	case *StructInstance:
		parts := make([]string, 0)
		v.Members.Iter(func(name string, val any) bool {
			parts = append(parts, fmt.Sprintf("%s: %s", name, displayString(val)))
			return false
		})
		return fmt.Sprintf("%s { %s }", v.Name, strings.Join(parts, ", "))
	case *VecInstance:
		parts := make([]string, len(v.Elements))
		for i, el := range v.Elements {
			parts[i] = displayString(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case Ptr:
		return "<pointer>"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// valuesEqual implements the language's "==": structural for Struct/Vec,
// value equality for numbers, bools, strings and null. Values of different
// runtime kinds are never equal, and a Ptr never compares equal to anything.
func valuesEqual(a, b any) bool {
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case Null:
		_, ok := b.(Null)
		return ok
	case *VecInstance:
		bv, ok := b.(*VecInstance)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !valuesEqual(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *StructInstance:
		bv, ok := b.(*StructInstance)
		if !ok || av.Name != bv.Name || av.Members.Count() != bv.Members.Count() {
			return false
		}
		equal := true
		av.Members.Iter(func(name string, val any) bool {
			other, ok := bv.Members.Get(name)
			if !ok || !valuesEqual(val, other) {
				equal = false
				return true
			}
			return false
		})
		return equal
	default:
		return false
	}
}
