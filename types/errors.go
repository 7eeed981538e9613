package types

import "fmt"

// ArityMismatchError is returned by Instantiate when the number of supplied
// type arguments does not match the declaration's type parameter count.
type ArityMismatchError struct {
	Name     string
	Expected int
	Got      int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("ArityMismatch: %s expects %d type argument(s), got %d", e.Name, e.Expected, e.Got)
}

// UnknownDeclError is returned when Instantiate is asked for a name that
// was never registered in the Registry.
type UnknownDeclError struct {
	Name string
}

func (e *UnknownDeclError) Error() string {
	return fmt.Sprintf("unknown generic declaration %q", e.Name)
}
