package corpus

import "fmt"

// Attitude is the orientation of a cognitive function.
type Attitude string

const (
	Introverted Attitude = "introverted"
	Extraverted Attitude = "extraverted"
)

// Letter returns the E/I letter for the attitude.
func (a Attitude) Letter() string {
	if a == Extraverted {
		return "E"
	}
	return "I"
}

// Opposite returns the other attitude.
func (a Attitude) Opposite() Attitude {
	if a == Extraverted {
		return Introverted
	}
	return Extraverted
}

// Category splits functions into perceiving (N, S) and judging (T, F).
type Category string

const (
	Perceiving Category = "perceiving"
	Judging    Category = "judging"
)

// Letter returns the J/P letter for the category.
func (c Category) Letter() string {
	if c == Judging {
		return "J"
	}
	return "P"
}

// Function is one of the four cognitive functions without attitude.
type Function string

const (
	Intuition Function = "N"
	Sensing   Function = "S"
	Thinking  Function = "T"
	Feeling   Function = "F"
)

// Category returns whether the function perceives or judges.
func (f Function) Category() Category {
	switch f {
	case Thinking, Feeling:
		return Judging
	default:
		return Perceiving
	}
}

// FunctionCode is a function paired with an attitude, e.g. "Ni" or "Te".
type FunctionCode string

const (
	Ni FunctionCode = "Ni"
	Ne FunctionCode = "Ne"
	Si FunctionCode = "Si"
	Se FunctionCode = "Se"
	Ti FunctionCode = "Ti"
	Te FunctionCode = "Te"
	Fi FunctionCode = "Fi"
	Fe FunctionCode = "Fe"
)

// FunctionCodes lists the eight codes in their fixed enumeration order.
// Every tie-break that depends on "enumeration order" uses this slice.
var FunctionCodes = [8]FunctionCode{Ni, Ne, Si, Se, Ti, Te, Fi, Fe}

// NewFunctionCode composes a code from its parts.
func NewFunctionCode(f Function, a Attitude) FunctionCode {
	suffix := "i"
	if a == Extraverted {
		suffix = "e"
	}
	return FunctionCode(string(f) + suffix)
}

// ParseFunctionCode validates a code string.
func ParseFunctionCode(s string) (FunctionCode, error) {
	for _, c := range FunctionCodes {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown function code %q", s)
}

// Function returns the bare function letter.
func (c FunctionCode) Function() Function {
	if len(c) == 0 {
		return ""
	}
	return Function(c[:1])
}

// Attitude returns the code's orientation.
func (c FunctionCode) Attitude() Attitude {
	if len(c) == 2 && c[1] == 'e' {
		return Extraverted
	}
	return Introverted
}

// Category returns the code's perceiving/judging category.
func (c FunctionCode) Category() Category {
	return c.Function().Category()
}

// Index returns the position of the code in FunctionCodes, or -1.
func (c FunctionCode) Index() int {
	for i, fc := range FunctionCodes {
		if fc == c {
			return i
		}
	}
	return -1
}
