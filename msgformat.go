// Package msgformat validates message-format templates ("Hello {}",
// "{0} of {1}") against the arguments supplied at call sites and turns the
// outcome into diagnostics for build and lint tooling.
//
// Validation never fails with an error. A malformed template or a wrong
// argument count is an ordinary, invalid Result:
//
//	res := msgformat.ValidateArgs("Hello {}", []any{name})
//	if !res.Valid {
//		fmt.Println(res.Summary)
//	}
package msgformat

import "github.com/YakDriver/msgformat/internal/format"

// Result is the outcome of one validation call.
type Result = format.Result

// ErrorKind classifies an invalid Result.
type ErrorKind = format.ErrorKind

const (
	KindNone             = format.KindNone
	KindStructural       = format.KindStructural
	KindArgumentCount    = format.KindArgumentCount
	KindMissingArguments = format.KindMissingArguments
)

// Validate checks the template's braces and resolves how many distinct
// arguments it references.
func Validate(template string) Result {
	return format.Validate(template)
}

// ValidateArgs validates the template against an argument list. A nil list
// means no arguments were supplied and is reported as such.
func ValidateArgs(template string, args []any) Result {
	return format.ValidateArgs(template, args)
}

// ValidateCount validates the template against an explicit argument count.
func ValidateCount(template string, n int) Result {
	return format.ValidateCount(template, n)
}
