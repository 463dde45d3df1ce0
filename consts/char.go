// Package consts defines shared character sets and field name constants.
package consts

// Character sets
const (
	Number        = "0123456789"                   // Numbers
	Lowercase     = "abcdefghijklmnopqrstuvwxyz"   // Lowercase letters
	Uppercase     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"   // Uppercase letters
	NumLower      = Number + Lowercase             // Numbers + Lowercase letters
	NumUpper      = Number + Uppercase             // Numbers + Uppercase letters
	LowerUpper    = Lowercase + Uppercase          // Lowercase + Uppercase letters
	NumLowerUpper = Number + Lowercase + Uppercase // Numbers + Lowercase + Uppercase letters
)

const (
	PrimaryKey     = NumLowerUpper
	PrimaryKeySize = 16
)
