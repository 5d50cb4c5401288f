// Package convert provides some helpers for fast conversion between strings and bytes.
//
// Conversion operations are essentially unsafe and avoid copying: the results
// share memory with their input and must never be modified.
package convert
