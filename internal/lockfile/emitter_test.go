package lockfile

import (
	"bytes"
	"strings"
	"testing"

	"yahb/internal/buildspec"
	"yahb/internal/recipe"
	"yahb/internal/resolver"
)

func TestEmitter_Emit(t *testing.T) {
	erf := &recipe.Recipe{Name: "erf", Git: "https://github.com/erf-model/ERF.git"}
	amrex := &recipe.Recipe{Name: "amrex", Git: "https://github.com/AMReX-Codes/amrex.git"}
	mpi := &recipe.Recipe{Name: "mpi", Virtual: true}

	res := &resolver.Result{
		Root: resolver.Resolved{
			Recipe: erf,
			Version: recipe.Version{
				Label:  "24.05",
				SHA256: "cc15077f",
				URL:    "https://example.org/ERF-24.05.tar.gz",
			},
			Spec: buildspec.MustParse("erf@24.05+mpi~cuda"),
		},
		Deps: []resolver.Resolved{
			{
				Recipe:  amrex,
				Version: recipe.Version{Label: "develop", Branch: "development"},
				Spec:    buildspec.MustParse("amrex@develop+particles+mpi~cuda"),
			},
			{Recipe: mpi, Spec: buildspec.New()},
		},
	}

	var buf bytes.Buffer
	if err := NewEmitter(&buf).Emit(res); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	want := `# yahb lock format: version 1
PACKAGES
  erf@24.05
    spec: erf@24.05~cuda+mpi
    source: https://example.org/ERF-24.05.tar.gz
    sha256: cc15077f
    depends:
      amrex develop
      mpi virtual
  amrex@develop
    spec: amrex@develop~cuda+mpi+particles
    source: https://github.com/AMReX-Codes/amrex.git branch=development
  mpi
    virtual: true
`
	if got := buf.String(); got != want {
		t.Errorf("Emit() =\n%s\nwant:\n%s", got, want)
	}
}

func TestEmitter_EmptyDeps(t *testing.T) {
	res := &resolver.Result{
		Root: resolver.Resolved{
			Recipe:  &recipe.Recipe{Name: "cmake"},
			Version: recipe.Version{Label: "3.24.3", URL: "https://example.org/cmake-3.24.3.tar.gz"},
			Spec:    buildspec.MustParse("cmake@3.24.3"),
		},
	}

	var buf bytes.Buffer
	if err := NewEmitter(&buf).Emit(res); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	got := buf.String()
	if strings.Contains(got, "depends:") {
		t.Errorf("Emit() includes empty depends section:\n%s", got)
	}
	if !strings.HasPrefix(got, "# yahb lock format: version 1\nPACKAGES\n  cmake@3.24.3\n") {
		t.Errorf("Emit() =\n%s", got)
	}
}
