package buildspec

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		check   func(t *testing.T, s *Spec)
		wantErr bool
	}{
		{
			name:  "package with version",
			input: "erf@24.05",
			check: func(t *testing.T, s *Spec) {
				if s.Package != "erf" || s.Version != "24.05" {
					t.Errorf("got %q @%q", s.Package, s.Version)
				}
			},
		},
		{
			name:  "polarity variants",
			input: "+mpi~cuda+openmp",
			check: func(t *testing.T, s *Spec) {
				want := map[string]bool{"mpi": true, "cuda": false, "openmp": true}
				if !reflect.DeepEqual(s.Enabled, want) {
					t.Errorf("Enabled = %v, want %v", s.Enabled, want)
				}
			},
		},
		{
			name:  "hyphenated variant",
			input: "~internal-amrex+mpi",
			check: func(t *testing.T, s *Spec) {
				if on, ok := s.Enabled["internal-amrex"]; !ok || on {
					t.Errorf("Enabled[internal-amrex] = %v, %v", on, ok)
				}
			},
		},
		{
			name:  "valued variant with list",
			input: "+cuda cuda_arch=70,80",
			check: func(t *testing.T, s *Spec) {
				want := []string{"70", "80"}
				if !reflect.DeepEqual(s.Values["cuda_arch"], want) {
					t.Errorf("Values[cuda_arch] = %v, want %v", s.Values["cuda_arch"], want)
				}
			},
		},
		{
			name:  "dependency selector",
			input: "^cuda@11:",
			check: func(t *testing.T, s *Spec) {
				if s.Deps["cuda"] != "11:" {
					t.Errorf("Deps[cuda] = %q, want %q", s.Deps["cuda"], "11:")
				}
			},
		},
		{
			name:  "compiler with range",
			input: "%gcc@8.1.0:8.3.0",
			check: func(t *testing.T, s *Spec) {
				if s.Compiler != "gcc" || s.CompilerVersion != "8.1.0:8.3.0" {
					t.Errorf("got %%%s@%s", s.Compiler, s.CompilerVersion)
				}
			},
		},
		{
			name:  "constraint matrix token",
			input: "amrex@develop+particles+mpi+cuda cuda_arch=80",
			check: func(t *testing.T, s *Spec) {
				if s.Package != "amrex" || s.Version != "develop" {
					t.Errorf("got %q @%q", s.Package, s.Version)
				}
				if !s.Enabled["particles"] || !s.Enabled["mpi"] || !s.Enabled["cuda"] {
					t.Errorf("Enabled = %v", s.Enabled)
				}
				if !reflect.DeepEqual(s.Values["cuda_arch"], []string{"80"}) {
					t.Errorf("Values[cuda_arch] = %v", s.Values["cuda_arch"])
				}
			},
		},
		{
			name:  "open version range",
			input: "cmake@3.17:",
			check: func(t *testing.T, s *Spec) {
				if s.Version != "3.17:" {
					t.Errorf("Version = %q", s.Version)
				}
			},
		},
		{
			name:    "duplicate version",
			input:   "erf@24.05@develop",
			wantErr: true,
		},
		{
			name:    "two package names",
			input:   "erf amrex",
			wantErr: true,
		},
		{
			name:    "garbage token",
			input:   "+mpi=bad=",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			tt.check(t, got)
		})
	}
}

func TestSpec_Matches(t *testing.T) {
	target := MustParse("erf@24.05+mpi+cuda~openmp~internal-amrex cuda_arch=80 ^cuda@11.2 %gcc@9.3.0")

	tests := []struct {
		cond string
		want bool
	}{
		{"", true},
		{"+mpi", true},
		{"~mpi", false},
		{"+cuda", true},
		{"+mpi+cuda", true},
		{"+openmp", false},
		{"~internal-amrex+mpi+cuda cuda_arch=80", true},
		{"~internal-amrex+mpi+cuda cuda_arch=90", false},
		{"@24.05", true},
		{"@:20.04", false},
		{"@21.01:", true},
		{"^cuda@11:", true},
		{"^cuda@:10", false},
		{"^hdf5@1.10:", false},
		{"%gcc@8.1.0:8.3.0", false},
		{"%gcc@9:", true},
		{"%clang", false},
		{"+shared", false}, // unset in target
	}

	for _, tt := range tests {
		t.Run(tt.cond, func(t *testing.T) {
			cond := MustParse(tt.cond)
			if got := cond.Matches(target); got != tt.want {
				t.Errorf("MustParse(%q).Matches(target) = %v, want %v", tt.cond, got, tt.want)
			}
		})
	}
}

func TestSpec_String_Roundtrip(t *testing.T) {
	s := MustParse("erf@24.05+mpi~cuda cuda_arch=80 ^mpi")
	rendered := s.String()
	back := MustParse(rendered)
	if back.String() != rendered {
		t.Errorf("round trip changed: %q -> %q", rendered, back.String())
	}
}

func TestSpec_Clone(t *testing.T) {
	s := MustParse("erf+mpi cuda_arch=80")
	c := s.Clone()
	c.Enabled["mpi"] = false
	c.Values["cuda_arch"][0] = "90"
	if !s.Enabled["mpi"] || s.Values["cuda_arch"][0] != "80" {
		t.Errorf("Clone shares state with original: %v %v", s.Enabled, s.Values)
	}
}
