// Package appargs provides positional argument validation for commands built
// with github.com/urfave/cli/v2.
package appargs

import (
	"errors"

	cli "github.com/urfave/cli/v2"
)

// Validator is an argument validator function. It returns the number of
// arguments consumed or -1 on error.
type Validator = func([]string) int

// Required is a validator for a single required parameter.
func Required(args []string) int {
	if len(args) == 0 {
		return -1
	}
	return 1
}

// RequiredNonEmpty is a validator for a single required parameter that must
// not be empty.
func RequiredNonEmpty(args []string) int {
	if len(args) == 0 || args[0] == "" {
		return -1
	}
	return 1
}

// Optional is a validator for an optional parameter.
func Optional(args []string) int {
	if len(args) == 0 {
		return 0
	}
	return 1
}

// ErrInvalidUsage is returned when there is a validation error.
var ErrInvalidUsage = errors.New("invalid command usage")

// Validate can be used as a command's Before function to validate the
// positional arguments of the command.
func Validate(vs ...Validator) cli.BeforeFunc {
	return func(c *cli.Context) error {
		return validate(c.Args().Slice(), vs...)
	}
}

func validate(remaining []string, vs ...Validator) error {
	for _, v := range vs {
		consumed := v(remaining)
		if consumed < 0 {
			return ErrInvalidUsage
		}
		remaining = remaining[consumed:]
	}

	if len(remaining) > 0 {
		return ErrInvalidUsage
	}
	return nil
}
