// Package gate provides reusable non-I/O rhythmic gating processors.
//
// Included processors:
//   - TranceGate: Periodic stereo gate with linear fades, a 10% closed
//     floor, and dry/wet mix, driven by tempo-derived cycle parameters.
package gate
