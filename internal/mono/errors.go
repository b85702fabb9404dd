package mono

import (
	"fmt"

	"monoforce/internal/diag"
	"monoforce/internal/source"
)

// ParseError reports a malformed argument list, type, lifetime or path at
// the first offending token.
type ParseError struct {
	Code     diag.Code
	Span     source.Span
	Found    string
	Expected string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("expected %s, found %s", e.Expected, e.Found)
}

// IncompleteInstantiationError reports the first declared type or const
// parameter that has no substitution.
type IncompleteInstantiationError struct {
	Fn    string
	Param GenericParam
	Span  source.Span // сигнатура функции
}

func (e *IncompleteInstantiationError) Error() string {
	return fmt.Sprintf("all type parameters must be spelled out: %s parameter `%s` of `%s` has no substitution",
		e.Param.Kind, e.Param.Name, e.Fn)
}

// KindMismatchError reports a substitution whose value cannot fill the
// parameter it names, e.g. `T = 'a` for a type parameter.
type KindMismatchError struct {
	Param GenericParam
	Subst Subst
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("%s parameter `%s` cannot be instantiated with %s `%s`",
		e.Param.Kind, e.Param.Name, e.Subst.Value.Kind, e.Subst.Value)
}

// DuplicateSubstError reports an entry naming a parameter that an earlier
// entry already bound.
type DuplicateSubstError struct {
	Subst Subst
	First Subst
}

func (e *DuplicateSubstError) Error() string {
	return fmt.Sprintf("`%s` is bound more than once", e.Subst.Name)
}

// UnusedSubstError reports an entry naming no declared parameter.
type UnusedSubstError struct {
	Subst Subst
	Fn    string
}

func (e *UnusedSubstError) Error() string {
	return fmt.Sprintf("`%s` does not name a generic parameter of `%s`", e.Subst.Name, e.Fn)
}
