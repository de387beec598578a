package recipe

import (
	"errors"
	"fmt"

	"yahb/internal/buildspec"
)

// DepType distinguishes link-time dependencies from build-only tools.
type DepType string

const (
	DepLink  DepType = "link"
	DepBuild DepType = "build"
)

// Version pins a fetchable release (URL + SHA256) or a git branch.
type Version struct {
	Label      string
	SHA256     string
	URL        string
	Branch     string
	Submodules bool
}

// Pinned reports whether the version points at a fixed release artifact.
func (v Version) Pinned() bool {
	return v.Branch == ""
}

// VariantDef declares a build option. A nil Values slice means boolean;
// otherwise the variant takes values from the enumeration.
type VariantDef struct {
	Name        string
	Default     string // "true"/"false" for booleans, a member of Values otherwise
	Values      []string
	Multi       bool // may carry several values at once, e.g. cuda_arch
	Description string
}

// Boolean reports whether the variant is a plain on/off toggle.
func (v VariantDef) Boolean() bool {
	return v.Values == nil
}

// Dependency conditions a requirement on the state of the depending spec.
type Dependency struct {
	Spec *buildspec.Spec // what is required, e.g. hdf5@1.10.4:+mpi
	When *buildspec.Spec // condition on the depender; empty matches always
	Type DepType
}

// Conflict declares a pair of mutually exclusive constraints.
type Conflict struct {
	Spec *buildspec.Spec
	When *buildspec.Spec
	Msg  string
}

// Recipe is a declarative build description: where the sources live, which
// versions are known, which options exist, and what the package needs.
type Recipe struct {
	Name         string
	Description  string
	Homepage     string
	URL          string
	Git          string
	Maintainers  []string
	OptionPrefix string // namespace for generated CMake options, e.g. "ERF"
	Virtual      bool   // placeholder satisfied by a site-provided implementation

	Versions      []Version
	Variants      []VariantDef
	Dependencies  []Dependency
	ConflictsWith []Conflict
}

// AddVersion appends a version pin.
func (r *Recipe) AddVersion(v Version) {
	r.Versions = append(r.Versions, v)
}

// AddVariant appends a variant declaration.
func (r *Recipe) AddVariant(v VariantDef) {
	r.Variants = append(r.Variants, v)
}

// DependsOn declares a link dependency active when the condition matches.
// Both arguments are spec strings; an empty condition always applies.
func (r *Recipe) DependsOn(spec, when string) {
	r.addDep(spec, when, DepLink)
}

// BuildDependsOn declares a build-only dependency.
func (r *Recipe) BuildDependsOn(spec, when string) {
	r.addDep(spec, when, DepBuild)
}

func (r *Recipe) addDep(spec, when string, typ DepType) {
	r.Dependencies = append(r.Dependencies, Dependency{
		Spec: buildspec.MustParse(spec),
		When: buildspec.MustParse(when),
		Type: typ,
	})
}

// Conflicts declares that spec and when are mutually exclusive.
func (r *Recipe) Conflicts(spec, when, msg string) {
	r.ConflictsWith = append(r.ConflictsWith, Conflict{
		Spec: buildspec.MustParse(spec),
		When: buildspec.MustParse(when),
		Msg:  msg,
	})
}

// Variant looks up a variant declaration by name.
func (r *Recipe) Variant(name string) (VariantDef, bool) {
	for _, v := range r.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return VariantDef{}, false
}

// PreferredVersion returns the newest pinned release, falling back to the
// first declared version when no release is pinned.
func (r *Recipe) PreferredVersion() (Version, error) {
	var best *Version
	for i := range r.Versions {
		v := &r.Versions[i]
		if !v.Pinned() {
			continue
		}
		if best == nil || buildspec.Compare(v.Label, best.Label) > 0 {
			best = v
		}
	}
	if best != nil {
		return *best, nil
	}
	if len(r.Versions) > 0 {
		return r.Versions[0], nil
	}
	return Version{}, fmt.Errorf("%s: no versions declared", r.Name)
}

// BestVersion returns the newest declared version satisfying the selector.
func (r *Recipe) BestVersion(selector string) (Version, error) {
	if selector == "" {
		return r.PreferredVersion()
	}
	var best *Version
	for i := range r.Versions {
		v := &r.Versions[i]
		if !buildspec.Satisfies(v.Label, selector) {
			continue
		}
		if best == nil || buildspec.Compare(v.Label, best.Label) > 0 {
			best = v
		}
	}
	if best == nil {
		return Version{}, fmt.Errorf("%s: no version satisfies @%s", r.Name, selector)
	}
	return *best, nil
}

// FindVersion looks up an exact declared version label.
func (r *Recipe) FindVersion(label string) (Version, bool) {
	for _, v := range r.Versions {
		if v.Label == label {
			return v, true
		}
	}
	return Version{}, false
}

// Concretize validates the spec against the recipe's declarations and
// fills every unset variant with its declared default. The version is
// pinned to the best match for the spec's selector.
func (r *Recipe) Concretize(s *buildspec.Spec) (*buildspec.Spec, error) {
	out := s.Clone()
	if out.Package == "" {
		out.Package = r.Name
	} else if out.Package != r.Name {
		return nil, fmt.Errorf("spec %q does not name package %s", s, r.Name)
	}

	for name := range out.Enabled {
		def, ok := r.Variant(name)
		if !ok {
			return nil, fmt.Errorf("%s: unknown variant %q", r.Name, name)
		}
		if !def.Boolean() {
			return nil, fmt.Errorf("%s: variant %q takes a value, not a polarity", r.Name, name)
		}
	}
	for name, values := range out.Values {
		def, ok := r.Variant(name)
		if !ok {
			return nil, fmt.Errorf("%s: unknown variant %q", r.Name, name)
		}
		if def.Boolean() {
			return nil, fmt.Errorf("%s: variant %q is boolean", r.Name, name)
		}
		if !def.Multi && len(values) > 1 {
			return nil, fmt.Errorf("%s: variant %q takes a single value", r.Name, name)
		}
		for _, v := range values {
			if !validValue(def, v) {
				return nil, fmt.Errorf("%s: invalid value %q for variant %q", r.Name, v, name)
			}
		}
	}

	for _, def := range r.Variants {
		if def.Boolean() {
			if _, ok := out.Enabled[def.Name]; !ok {
				out.Enabled[def.Name] = def.Default == "true"
			}
			continue
		}
		if _, ok := out.Values[def.Name]; !ok {
			out.Values[def.Name] = []string{def.Default}
		}
	}

	ver, err := r.BestVersion(out.Version)
	if err != nil {
		return nil, err
	}
	out.Version = ver.Label

	return out, nil
}

func validValue(def VariantDef, v string) bool {
	for _, x := range def.Values {
		if x == v {
			return true
		}
	}
	return false
}

// CheckConflicts reports every declared conflict the spec violates.
func (r *Recipe) CheckConflicts(s *buildspec.Spec) error {
	var errs []error
	for _, c := range r.ConflictsWith {
		if c.Spec.Matches(s) && c.When.Matches(s) {
			msg := c.Msg
			if msg == "" {
				msg = fmt.Sprintf("%s conflicts with %s", c.Spec, c.When)
			}
			errs = append(errs, fmt.Errorf("%s: %s", r.Name, msg))
		}
	}
	return errors.Join(errs...)
}

// ActiveDependencies returns the dependencies whose conditions match the
// concretized spec, in declaration order.
func (r *Recipe) ActiveDependencies(s *buildspec.Spec) []Dependency {
	var active []Dependency
	for _, d := range r.Dependencies {
		if d.When.Matches(s) {
			active = append(active, d)
		}
	}
	return active
}
