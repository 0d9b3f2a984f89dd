package option

import (
	"time"
)

var testRegistry = NewRegistry()

func init() {
	testRegistry.MustRegister("T", func() Handler { return &kernel{} })
	testRegistry.MustRegister("test.Tree", func() Handler { return newTree() })
	testRegistry.MustRegister("test.Plain", func() Handler { return &plain{} })
}

// base plays the ancestor of tree.
type base struct {
	seed int
}

type baseHolder interface {
	Base() *base
}

func (b *base) Base() *base { return b }

var baseType = &Type{
	Name: "test.Base",
	Settings: []Setting{
		Int(Meta{Name: "seed", Description: "Random seed.", Synopsis: "seed <num>", Order: At(1)},
			func(h baseHolder) int { return h.Base().seed },
			func(h baseHolder, v int) { h.Base().seed = v }),
	},
}

type tree struct {
	base

	depth   int
	x       bool
	hidden  string
	label   string
	ratio   float64
	timeout time.Duration
	nested  *kernel
	mode    Handler
}

func newTree() *tree {
	return &tree{depth: 1, hidden: "secret", ratio: 0.5}
}

var treeType = &Type{
	Name: "test.Tree",
	Settings: []Setting{
		Int(Meta{Name: "depth", Description: "Maximum depth.", Synopsis: "-depth <num>", Order: At(2)},
			func(t *tree) int { return t.depth },
			func(t *tree, v int) { t.depth = v }),
		Flag(Meta{Name: "-x", Description: "Extended mode.\nSecond line.", Synopsis: "-x", Order: At(0)},
			func(t *tree) bool { return t.x },
			func(t *tree, v bool) { t.x = v }),
		String(Meta{Description: "Never on the command line."},
			func(t *tree) string { return t.hidden },
			func(t *tree, v string) { t.hidden = v }),
		String(Meta{Name: "label", Description: "Free text label.", Synopsis: "-label <text>", Order: Unordered},
			func(t *tree) string { return t.label },
			func(t *tree, v string) { t.label = v }),
		Float(Meta{Name: "ratio", Description: "Split ratio.", Synopsis: "-ratio <r>", Order: At(4)},
			func(t *tree) float64 { return t.ratio },
			func(t *tree, v float64) { t.ratio = v }),
		Duration(Meta{Name: "timeout", Description: "Time limit.", Synopsis: "-timeout <d>", Order: At(5)},
			func(t *tree) time.Duration { return t.timeout },
			func(t *tree, v time.Duration) { t.timeout = v }),
		Nested(Meta{Name: "n", Description: "Nested kernel.", Synopsis: "-n <spec>", Order: At(3)}, testRegistry,
			func(t *tree) *kernel { return t.nested },
			func(t *tree, v *kernel) { t.nested = v }),
		Nested(Meta{Name: "mode", Description: "Any handler.", Synopsis: "-mode <spec>", Order: At(6)}, testRegistry,
			func(t *tree) Handler { return t.mode },
			func(t *tree, v Handler) { t.mode = v }),
	},
}

func (t *tree) Hierarchy() []*Type { return []*Type{treeType, baseType} }

func (t *tree) ListOptions() []Option { return ListOptionsForHierarchy(t.Hierarchy(), nil) }

func (t *tree) Options() ([]string, error) { return GetOptionsForHierarchy(t, nil) }

func (t *tree) SetOptions(tokens []string) error { return SetOptionsForHierarchy(tokens, t, nil) }

// kernel is registered as "T" and can nest itself.
type kernel struct {
	k     string
	inner *kernel
}

var kernelType = &Type{
	Name: "T",
	Settings: []Setting{
		String(Meta{Name: "k", Description: "Kernel parameter.", Synopsis: "-k <v>", Order: At(0)},
			func(k *kernel) string { return k.k },
			func(k *kernel, v string) { k.k = v }),
		Nested(Meta{Name: "inner", Description: "Inner kernel.", Synopsis: "-inner <spec>", Order: At(1)}, testRegistry,
			func(k *kernel) *kernel { return k.inner },
			func(k *kernel, v *kernel) { k.inner = v }),
	},
}

func (k *kernel) Hierarchy() []*Type { return []*Type{kernelType} }

func (k *kernel) ListOptions() []Option { return ListOptions(kernelType) }

func (k *kernel) Options() ([]string, error) { return GetOptions(k, kernelType) }

func (k *kernel) SetOptions(tokens []string) error { return SetOptions(tokens, k, kernelType) }

// plain implements Handler without the settings tables.
type plain struct {
	args []string
}

func (p *plain) ListOptions() []Option { return nil }

func (p *plain) Options() ([]string, error) { return p.args, nil }

func (p *plain) SetOptions(tokens []string) error {
	p.args = append([]string(nil), tokens...)
	return nil
}
