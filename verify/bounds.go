package verify

import (
	"fmt"
	"math"
)

// Unbounded is the maximum of an open-ended repetition
const Unbounded = math.MaxInt

// Bounds is the minimum and maximum number of times something can occur.
// Arithmetic on bounds saturates at Unbounded.
type Bounds struct {
	Min int
	Max int
}

// Once is the bound of an unquantified atom
var Once = Bounds{Min: 1, Max: 1}

// String returns the string representation of Bounds
func (b Bounds) String() string {
	if b.Max == Unbounded {
		return fmt.Sprintf("{%d,}", b.Min)
	}

	return fmt.Sprintf("{%d,%d}", b.Min, b.Max)
}

func (b Bounds) plus(o Bounds) Bounds {
	return Bounds{Min: addSat(b.Min, o.Min), Max: addSat(b.Max, o.Max)}
}

func (b Bounds) times(o Bounds) Bounds {
	return Bounds{Min: mulSat(b.Min, o.Min), Max: mulSat(b.Max, o.Max)}
}

// widen returns bounds covering both b and o
func (b Bounds) widen(o Bounds) Bounds {
	return Bounds{Min: min(b.Min, o.Min), Max: max(b.Max, o.Max)}
}

func addSat(a, b int) int {
	if a > Unbounded-b {
		return Unbounded
	}

	return a + b
}

func mulSat(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}

	if a > Unbounded/b {
		return Unbounded
	}

	return a * b
}
