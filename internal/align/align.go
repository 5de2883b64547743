// Package align provides the record alignment primitives.
package align

// Boundary is the alignment boundary for label and variant records.
// Every per-level payload is padded so the next record starts here.
const Boundary = 8

// Up rounds n up to the next multiple of Boundary.
func Up(n int) int {
	return (n + Boundary - 1) &^ (Boundary - 1)
}
