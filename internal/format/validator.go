package format

import "fmt"

// ErrorKind classifies why a template failed validation.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	// KindStructural is an unbalanced or unterminated placeholder.
	KindStructural
	// KindArgumentCount is a resolved count that differs from the supplied one.
	KindArgumentCount
	// KindMissingArguments is a template needing arguments when no list was supplied.
	KindMissingArguments
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindStructural:
		return "structural"
	case KindArgumentCount:
		return "argument_count"
	case KindMissingArguments:
		return "missing_arguments"
	}
	return "unknown"
}

// Result is the outcome of one validation call.
type Result struct {
	Valid         bool
	ArgumentCount int
	Summary       string
	Detail        string
	Kind          ErrorKind
}

// Validate parses the template and resolves its argument count. A template
// with unpaired braces is invalid and resolves to zero arguments.
func Validate(template string) Result {
	if err := CheckBrackets(template); err != nil {
		return Result{
			Summary: err.Error(),
			Detail:  err.Error(),
			Kind:    KindStructural,
		}
	}
	return Result{
		Valid:         true,
		ArgumentCount: ArgumentCount(Parse(template)),
	}
}

// ValidateArgs validates the template and checks it against an argument list.
// A nil list means no arguments were supplied at all, which is reported
// differently from an empty list.
func ValidateArgs(template string, args []any) Result {
	res := Validate(template)
	if !res.Valid {
		return res
	}
	if args == nil && res.ArgumentCount > 0 {
		res.Valid = false
		res.Kind = KindMissingArguments
		res.Summary = fmt.Sprintf("Invalid parameter count. Required %d provided null for format '%s'.", res.ArgumentCount, template)
		res.Detail = fmt.Sprintf("Required %d parameters, but none were provided for format %s.", res.ArgumentCount, template)
		return res
	}
	return checkCount(template, res, len(args))
}

// ValidateCount validates the template and checks it against an explicit
// argument count.
func ValidateCount(template string, n int) Result {
	res := Validate(template)
	if !res.Valid {
		return res
	}
	return checkCount(template, res, n)
}

func checkCount(template string, res Result, n int) Result {
	if res.ArgumentCount == n {
		return res
	}
	res.Valid = false
	res.Kind = KindArgumentCount
	res.Summary = fmt.Sprintf("Invalid parameter count. Required: %d provided %d for format '%s'.", res.ArgumentCount, n, template)
	res.Detail = fmt.Sprintf("Required %d parameters, but %d were provided for format %s.", res.ArgumentCount, n, template)
	return res
}
