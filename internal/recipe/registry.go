package recipe

import "sort"

// Registry maps package names to recipes.
type Registry struct {
	recipes map[string]*Recipe
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{recipes: make(map[string]*Recipe)}
}

// Add registers a recipe, replacing any previous recipe of the same name.
func (reg *Registry) Add(r *Recipe) {
	reg.recipes[r.Name] = r
}

// Lookup finds a recipe by package name.
func (reg *Registry) Lookup(name string) (*Recipe, bool) {
	r, ok := reg.recipes[name]
	return r, ok
}

// Names returns all registered package names, sorted.
func (reg *Registry) Names() []string {
	names := make([]string, 0, len(reg.recipes))
	for name := range reg.recipes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtin returns a registry holding every compiled-in recipe.
func Builtin() *Registry {
	reg := NewRegistry()
	for _, r := range []*Recipe{
		erfRecipe(),
		remoraRecipe(),
		amrexRecipe(),
		mpiRecipe(),
		cudaRecipe(),
		netcdfCRecipe(),
		hdf5Recipe(),
		cmakeRecipe(),
		pythonRecipe(),
		rocrandRecipe(),
		rocprimRecipe(),
	} {
		reg.Add(r)
	}
	return reg
}
