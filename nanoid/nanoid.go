// Package nanoid generates compact random identifiers.
package nanoid

import (
	"strings"

	"github.com/ncobase/ncursor/consts"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// defaultSize is the id length used when callers pass none.
const defaultSize = 16

func sizeOf(l []int) int {
	if len(l) > 0 {
		return l[0]
	}
	return defaultSize
}

// Must returns a random id of the optional length using the library's
// default alphabet.
func Must(l ...int) string {
	return gonanoid.Must(sizeOf(l))
}

// String returns a random id drawn from upper and lower case letters.
func String(l ...int) string {
	return gonanoid.MustGenerate(consts.LowerUpper, sizeOf(l))
}

// Lower returns a random id drawn from lowercase letters.
func Lower(l ...int) string {
	return gonanoid.MustGenerate(consts.Lowercase, sizeOf(l))
}

// Upper returns a random id drawn from uppercase letters.
func Upper(l ...int) string {
	return gonanoid.MustGenerate(consts.Uppercase, sizeOf(l))
}

// Number returns a random id drawn from digits.
func Number(l ...int) string {
	return gonanoid.MustGenerate(consts.Number, sizeOf(l))
}

// PrimaryKey returns a generator of document primary keys. The optional
// length overrides consts.PrimaryKeySize.
func PrimaryKey(l ...int) func() string {
	size := consts.PrimaryKeySize
	if len(l) > 0 {
		size = l[0]
	}
	return func() string {
		return gonanoid.MustGenerate(consts.PrimaryKey, size)
	}
}

// IsPrimaryKey reports whether id has the exact shape PrimaryKey
// generates: consts.PrimaryKeySize characters, all drawn from the
// primary key alphabet.
func IsPrimaryKey(id string) bool {
	if len(id) != consts.PrimaryKeySize {
		return false
	}
	for _, r := range id {
		if !strings.ContainsRune(consts.PrimaryKey, r) {
			return false
		}
	}
	return true
}
