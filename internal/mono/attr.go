package mono

// Expansion is the result of one attribute transform.
type Expansion struct {
	Decl     string
	Args     []TypeOrLifetime
	Warnings []error
}

// ExpandAttr runs the attribute transform for one `#[mono(...)]` on the fn
// described by sig. Stacked attributes call it once each with the same sig.
func ExpandAttr(sig FnSig, subst SubstList, opts Options) (Expansion, error) {
	inst, err := Instantiate(sig, subst, opts)
	if err != nil {
		return Expansion{}, err
	}
	return Expansion{
		Decl:     EmitRefCast(sig.Name, inst.Args),
		Args:     inst.Args,
		Warnings: inst.Warnings,
	}, nil
}
