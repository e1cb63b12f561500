// Package encoding serialises the variable-length sections of a binary
// result table: the column names payload and the column-major float64
// value payload.
package encoding
