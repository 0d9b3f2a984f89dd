// Package option describes, renders and parses the command-line settings of
// configurable objects.
//
// Each level of a configurable hierarchy declares a Type: a table of
// Settings with typed accessors. The concrete value lists those tables
// through Configurable.Hierarchy, concrete type first. Ancestor levels are
// usually embedded structs whose settings are declared against an interface
// the embedding type satisfies through a promoted method:
//
//	type Base struct{ seed int }
//
//	func (b *Base) Base() *Base { return b }
//
//	var baseType = &option.Type{
//		Name: "example.Base",
//		Settings: []option.Setting{
//			option.Int(option.Meta{Name: "S", Description: "Random seed.", Synopsis: "-S <num>", Order: option.At(0)},
//				func(h interface{ Base() *Base }) int { return h.Base().seed },
//				func(h interface{ Base() *Base }, v int) { h.Base().seed = v }),
//		},
//	}
//
// ListOptionsForHierarchy, GetOptionsForHierarchy and SetOptionsForHierarchy
// then list the settings as Option records, render their values as a token
// vector such as ["-S", "1", "-K", "example.Kernel -C 2"], and apply such a
// vector back. A setting whose value is itself a Handler travels as a single
// token holding the handler's registered type name and its own options,
// quoted with package tokens.
package option
