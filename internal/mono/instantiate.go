package mono

import (
	"fmt"
)

// DuplicatePolicy decides what happens when two entries bind one parameter.
type DuplicatePolicy uint8

const (
	// DuplicatesFirst keeps the first entry and warns about the rest.
	DuplicatesFirst DuplicatePolicy = iota
	// DuplicatesError rejects the expansion.
	DuplicatesError
)

// UnusedPolicy decides what happens to entries naming no parameter.
type UnusedPolicy uint8

const (
	UnusedWarn UnusedPolicy = iota
	UnusedIgnore
	UnusedError
)

// Options controls matching strictness. The zero value is the default
// policy: first duplicate wins, unused entries warn.
type Options struct {
	Duplicates DuplicatePolicy
	Unused     UnusedPolicy
}

// ParseDuplicatePolicy maps a config value ("first", "error") to a policy.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch s {
	case "", "first":
		return DuplicatesFirst, nil
	case "error":
		return DuplicatesError, nil
	default:
		return 0, fmt.Errorf("unknown duplicates policy %q (want first|error)", s)
	}
}

func (p DuplicatePolicy) String() string {
	if p == DuplicatesError {
		return "error"
	}
	return "first"
}

// ParseUnusedPolicy maps a config value ("warn", "ignore", "error") to a policy.
func ParseUnusedPolicy(s string) (UnusedPolicy, error) {
	switch s {
	case "", "warn":
		return UnusedWarn, nil
	case "ignore":
		return UnusedIgnore, nil
	case "error":
		return UnusedError, nil
	default:
		return 0, fmt.Errorf("unknown unused policy %q (want warn|ignore|error)", s)
	}
}

func (p UnusedPolicy) String() string {
	switch p {
	case UnusedIgnore:
		return "ignore"
	case UnusedError:
		return "error"
	default:
		return "warn"
	}
}

// Instance is the outcome of matching a SubstList against a signature.
type Instance struct {
	// Args are the concrete arguments in declared parameter order.
	// Unmatched lifetimes are omitted.
	Args []TypeOrLifetime
	// Warnings holds *DuplicateSubstError and *UnusedSubstError values that
	// the policy allowed through.
	Warnings []error
}

// Instantiate walks sig.Generics in declared order and picks, for every
// parameter, the first entry of the same kind and name. A type or const
// parameter without an entry stops the walk with
// *IncompleteInstantiationError; lifetimes without an entry are skipped.
func Instantiate(sig FnSig, subst SubstList, opts Options) (Instance, error) {
	var inst Instance
	used := make([]bool, len(subst))

	for _, param := range sig.Generics {
		idx := -1
		for i, entry := range subst {
			if !bindsParam(entry, param) {
				continue
			}
			if idx < 0 {
				idx = i
				used[i] = true
				continue
			}
			used[i] = true
			dup := &DuplicateSubstError{Subst: entry, First: subst[idx]}
			if opts.Duplicates == DuplicatesError {
				return Instance{}, dup
			}
			inst.Warnings = append(inst.Warnings, dup)
		}

		if idx < 0 {
			if param.Kind == ParamLifetime {
				continue
			}
			return Instance{}, &IncompleteInstantiationError{Fn: sig.Name, Param: param, Span: sig.Span}
		}

		entry := subst[idx]
		if !valueFits(entry.Value, param) {
			return Instance{}, &KindMismatchError{Param: param, Subst: entry}
		}
		inst.Args = append(inst.Args, entry.Value)
	}

	if opts.Unused == UnusedIgnore {
		return inst, nil
	}
	for i, entry := range subst {
		if used[i] {
			continue
		}
		unused := &UnusedSubstError{Subst: entry, Fn: sig.Name}
		if opts.Unused == UnusedError {
			return Instance{}, unused
		}
		inst.Warnings = append(inst.Warnings, unused)
	}
	return inst, nil
}

// bindsParam: лайфтайм связывается только лайфтаймом, тип и const только идентификатором.
func bindsParam(entry Subst, param GenericParam) bool {
	if (entry.Name.Kind == ArgLifetime) != (param.Kind == ParamLifetime) {
		return false
	}
	return entry.Name.Key() == param.Key()
}

func valueFits(v TypeOrLifetime, param GenericParam) bool {
	if param.Kind == ParamLifetime {
		return v.Kind == ArgLifetime
	}
	return v.Kind == ArgType
}
