package option

// ListOptions returns the options declared directly on t, in display order.
func ListOptions(t *Type) []Option {
	settings := t.exposed()
	out := make([]Option, 0, len(settings))
	for _, s := range settings {
		out = append(out, s.Option())
	}
	return out
}

// ListOptionsForHierarchy lists the options of every type in chain up to and
// including oldest. Each type contributes its own group in display order,
// concrete type first.
func ListOptionsForHierarchy(chain []*Type, oldest *Type) []Option {
	var out []Option
	for _, t := range walk(chain, oldest) {
		out = append(out, ListOptions(t)...)
	}
	return out
}
