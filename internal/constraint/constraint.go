package constraint

import "fmt"

// Polarity prefixes for feature toggles, in emission order.
const (
	Enabled  = "+"
	Disabled = "~"
)

// Feature is a named boolean build option. A non-empty ArchVariant marks
// the feature as accelerator-related: its enabled polarity is paired with
// every architecture tag instead of being emitted once.
type Feature struct {
	Name        string
	ArchVariant string
}

// AMReXFeatures are the toggles that must agree between a package and an
// externally built AMReX.
var AMReXFeatures = []Feature{
	{Name: "mpi"},
	{Name: "cuda", ArchVariant: "cuda_arch"},
}

// AMReX expands the fixed mpi/cuda feature matrix against the given
// architecture tags.
func AMReX(archs []string) []string {
	return Expand(AMReXFeatures, archs)
}

// Expand enumerates every polarity assignment over features, in declared
// feature order with the enabled polarity first. Combinations that enable
// an accelerator feature produce one token per architecture tag, suffixed
// with the feature's arch variant selector; all other combinations produce
// exactly one bare token.
func Expand(features []Feature, archs []string) []string {
	type combo struct {
		expr  string
		accel *Feature
	}

	combos := []combo{{}}
	for i := range features {
		f := &features[i]
		next := make([]combo, 0, len(combos)*2)
		for _, c := range combos {
			on := combo{expr: c.expr + Enabled + f.Name, accel: c.accel}
			if f.ArchVariant != "" {
				on.accel = f
			}
			next = append(next, on, combo{expr: c.expr + Disabled + f.Name, accel: c.accel})
		}
		combos = next
	}

	var tokens []string
	for _, c := range combos {
		if c.accel == nil {
			tokens = append(tokens, c.expr)
			continue
		}
		for _, arch := range archs {
			tokens = append(tokens, fmt.Sprintf("%s %s=%s", c.expr, c.accel.ArchVariant, arch))
		}
	}
	return tokens
}
