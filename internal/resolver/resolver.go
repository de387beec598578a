package resolver

import (
	"fmt"
	"sort"

	"yahb/internal/buildspec"
	"yahb/internal/recipe"
)

// Resolved is one package in a resolved dependency set.
type Resolved struct {
	Recipe  *recipe.Recipe
	Version recipe.Version // zero for virtual packages
	Spec    *buildspec.Spec
	Type    recipe.DepType
}

// Result holds the concretized root and its flattened dependency closure.
type Result struct {
	Root Resolved
	Deps []Resolved // sorted by package name
}

// Resolver walks conditional dependency declarations recursively.
type Resolver struct {
	registry  *recipe.Registry
	resolved  map[string]*Resolved
	resolving map[string]bool
	logFn     func(string, ...interface{})
}

// NewResolver creates a resolver over the given recipe registry.
func NewResolver(reg *recipe.Registry, verbose bool) *Resolver {
	return &Resolver{
		registry:  reg,
		resolved:  make(map[string]*Resolved),
		resolving: make(map[string]bool),
		logFn: func(format string, args ...interface{}) {
			if verbose {
				fmt.Printf(format+"\n", args...)
			}
		},
	}
}

// Resolve concretizes the spec against the named recipe, rejects conflict
// violations, and walks every active dependency transitively.
func (r *Resolver) Resolve(name string, s *buildspec.Spec) (*Result, error) {
	rec, ok := r.registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown package %q", name)
	}

	root, err := rec.Concretize(s)
	if err != nil {
		return nil, fmt.Errorf("concretizing %s: %w", name, err)
	}
	if err := rec.CheckConflicts(root); err != nil {
		return nil, fmt.Errorf("configuration conflict: %w", err)
	}

	rootVer, err := rec.BestVersion(root.Version)
	if err != nil {
		return nil, err
	}

	r.logFn("Resolving: %s", root)
	if err := r.resolveDeps(rec, root); err != nil {
		return nil, err
	}

	deps := make([]Resolved, 0, len(r.resolved))
	for _, d := range r.resolved {
		deps = append(deps, *d)
	}
	sort.Slice(deps, func(i, j int) bool {
		return deps[i].Recipe.Name < deps[j].Recipe.Name
	})

	return &Result{
		Root: Resolved{Recipe: rec, Version: rootVer, Spec: root, Type: recipe.DepLink},
		Deps: deps,
	}, nil
}

// resolveDeps walks the recipe's dependencies in declaration order,
// matching each condition against the live spec. Resolved dependency
// versions are recorded into the spec as they are picked, so later
// conditions such as ^cuda@11: see the versions chosen before them.
func (r *Resolver) resolveDeps(rec *recipe.Recipe, s *buildspec.Spec) error {
	if r.resolving[rec.Name] {
		r.logFn("Skipping circular dependency: %s", rec.Name)
		return nil
	}
	r.resolving[rec.Name] = true
	defer func() { delete(r.resolving, rec.Name) }()

	for _, d := range rec.Dependencies {
		if !d.When.Matches(s) {
			continue
		}
		res, err := r.resolveOne(d)
		if err != nil {
			return fmt.Errorf("resolving %s dependency of %s: %w", d.Spec.Package, rec.Name, err)
		}
		if res.Version.Label != "" {
			s.Deps[d.Spec.Package] = res.Version.Label
		}
	}
	return nil
}

func (r *Resolver) resolveOne(d recipe.Dependency) (*Resolved, error) {
	name := d.Spec.Package

	if existing, ok := r.resolved[name]; ok {
		if existing.Recipe.Virtual || buildspec.Satisfies(existing.Version.Label, d.Spec.Version) {
			return existing, nil
		}
	}

	dep, ok := r.registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown package %q", name)
	}

	if dep.Virtual {
		r.logFn("  %s: virtual, provided by the site", name)
		res := &Resolved{Recipe: dep, Spec: buildspec.New(), Type: d.Type}
		res.Spec.Package = name
		r.resolved[name] = res
		return res, nil
	}

	spec, err := dep.Concretize(d.Spec)
	if err != nil {
		return nil, err
	}
	if err := dep.CheckConflicts(spec); err != nil {
		return nil, fmt.Errorf("configuration conflict: %w", err)
	}
	ver, err := dep.BestVersion(spec.Version)
	if err != nil {
		return nil, err
	}
	r.logFn("  %s@%s", name, ver.Label)

	res := &Resolved{Recipe: dep, Version: ver, Spec: spec, Type: d.Type}
	r.resolved[name] = res

	if err := r.resolveDeps(dep, spec); err != nil {
		return nil, err
	}
	return res, nil
}
