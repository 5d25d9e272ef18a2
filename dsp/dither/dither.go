package dither

import "fmt"

// Type selects the probability distribution used for dither noise.
type Type int

const (
	// None applies no dither (plain truncation).
	None Type = iota
	// Rectangular uses a uniform (rectangular) PDF.
	Rectangular
	// Triangular uses a triangular PDF (TPDF), the most common choice.
	Triangular
	// Gaussian uses a Gaussian PDF.
	Gaussian

	typeCount // sentinel for validation
)

var typeNames = [typeCount]string{
	"None", "Rectangular", "Triangular", "Gaussian",
}

// String returns the name of the dither type.
func (t Type) String() string {
	if t >= 0 && t < typeCount {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", t)
}

// Valid reports whether t is a known dither type.
func (t Type) Valid() bool {
	return t >= 0 && t < typeCount
}
