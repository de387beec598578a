package buildspec

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Spec is a parsed build spec: a package reference plus the constraints
// applied to it. An empty field means "unconstrained". Specs double as
// conditions: a recipe's `when` clause is a Spec matched against the
// concretized spec of the package being resolved.
type Spec struct {
	Package         string
	Version         string // pin or range, e.g. "24.05", ":20.04", "11:"
	Compiler        string
	CompilerVersion string
	Enabled         map[string]bool     // +variant / ~variant
	Values          map[string][]string // valued variants, e.g. cuda_arch=70,80
	Deps            map[string]string   // ^dep@range conditions
}

// New returns an empty spec with allocated maps.
func New() *Spec {
	return &Spec{
		Enabled: make(map[string]bool),
		Values:  make(map[string][]string),
		Deps:    make(map[string]string),
	}
}

var (
	polarityRe = regexp.MustCompile(`^([+~])([A-Za-z][\w-]*)`)
	versionRe  = regexp.MustCompile(`^@([\w.:-]+)`)
	compilerRe = regexp.MustCompile(`^%([A-Za-z][\w-]*)(?:@([\w.:-]+))?`)
	depRe      = regexp.MustCompile(`^\^([A-Za-z][\w-]*)(?:@([\w.:-]+))?`)
	valueRe    = regexp.MustCompile(`^([A-Za-z][\w-]*)=([\w.,-]+)`)
	nameRe     = regexp.MustCompile(`^([A-Za-z][\w-]*)`)
)

// Parse parses a spec string such as
//
//	amrex@develop+particles+mpi+cuda cuda_arch=80 ^cuda@11: %gcc@9.3.0
//
// Whitespace separates words; each word is a run of tokens.
func Parse(s string) (*Spec, error) {
	spec := New()
	for _, word := range strings.Fields(s) {
		if err := spec.parseWord(word); err != nil {
			return nil, err
		}
	}
	return spec, nil
}

// MustParse is Parse for compiled-in spec literals.
func MustParse(s string) *Spec {
	spec, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return spec
}

func (s *Spec) parseWord(word string) error {
	rest := word
	for rest != "" {
		switch {
		case polarityRe.MatchString(rest):
			m := polarityRe.FindStringSubmatch(rest)
			s.Enabled[m[2]] = m[1] == "+"
			rest = rest[len(m[0]):]
		case versionRe.MatchString(rest):
			m := versionRe.FindStringSubmatch(rest)
			if s.Version != "" {
				return fmt.Errorf("parsing spec %q: duplicate version selector", word)
			}
			s.Version = m[1]
			rest = rest[len(m[0]):]
		case compilerRe.MatchString(rest):
			m := compilerRe.FindStringSubmatch(rest)
			s.Compiler = m[1]
			s.CompilerVersion = m[2]
			rest = rest[len(m[0]):]
		case depRe.MatchString(rest):
			m := depRe.FindStringSubmatch(rest)
			s.Deps[m[1]] = m[2]
			rest = rest[len(m[0]):]
		case valueRe.MatchString(rest):
			m := valueRe.FindStringSubmatch(rest)
			s.Values[m[1]] = append(s.Values[m[1]], strings.Split(m[2], ",")...)
			rest = rest[len(m[0]):]
		case nameRe.MatchString(rest):
			m := nameRe.FindStringSubmatch(rest)
			if s.Package != "" {
				return fmt.Errorf("parsing spec %q: unexpected name %q", word, m[1])
			}
			s.Package = m[1]
			rest = rest[len(m[0]):]
		default:
			return fmt.Errorf("parsing spec %q: unrecognized token at %q", word, rest)
		}
	}
	return nil
}

// Matches reports whether target satisfies every constraint this spec
// carries. Constraints absent from the receiver always hold; constraints
// on attributes the target leaves unset do not.
func (s *Spec) Matches(target *Spec) bool {
	if s.Package != "" && s.Package != target.Package {
		return false
	}
	if s.Version != "" && !Satisfies(target.Version, s.Version) {
		return false
	}
	if s.Compiler != "" {
		if target.Compiler != s.Compiler {
			return false
		}
		if s.CompilerVersion != "" && !Satisfies(target.CompilerVersion, s.CompilerVersion) {
			return false
		}
	}
	for name, enabled := range s.Enabled {
		got, ok := target.Enabled[name]
		if !ok || got != enabled {
			return false
		}
	}
	for name, values := range s.Values {
		for _, v := range values {
			if !contains(target.Values[name], v) {
				return false
			}
		}
	}
	for dep, sel := range s.Deps {
		ver, ok := target.Deps[dep]
		if !ok || !Satisfies(ver, sel) {
			return false
		}
	}
	return true
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

// String renders the spec canonically: package, version, compiler,
// variants in sorted order, valued variants, then dependency selectors.
func (s *Spec) String() string {
	var b strings.Builder
	b.WriteString(s.Package)
	if s.Version != "" {
		b.WriteString("@" + s.Version)
	}
	if s.Compiler != "" {
		b.WriteString("%" + s.Compiler)
		if s.CompilerVersion != "" {
			b.WriteString("@" + s.CompilerVersion)
		}
	}

	names := make([]string, 0, len(s.Enabled))
	for name := range s.Enabled {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if s.Enabled[name] {
			b.WriteString("+" + name)
		} else {
			b.WriteString("~" + name)
		}
	}

	keys := make([]string, 0, len(s.Values))
	for k := range s.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(" " + k + "=" + strings.Join(s.Values[k], ","))
	}

	deps := make([]string, 0, len(s.Deps))
	for d := range s.Deps {
		deps = append(deps, d)
	}
	sort.Strings(deps)
	for _, d := range deps {
		b.WriteString(" ^" + d)
		if s.Deps[d] != "" {
			b.WriteString("@" + s.Deps[d])
		}
	}

	return strings.TrimSpace(b.String())
}

// Clone returns a deep copy.
func (s *Spec) Clone() *Spec {
	c := New()
	c.Package = s.Package
	c.Version = s.Version
	c.Compiler = s.Compiler
	c.CompilerVersion = s.CompilerVersion
	for k, v := range s.Enabled {
		c.Enabled[k] = v
	}
	for k, v := range s.Values {
		c.Values[k] = append([]string(nil), v...)
	}
	for k, v := range s.Deps {
		c.Deps[k] = v
	}
	return c
}
