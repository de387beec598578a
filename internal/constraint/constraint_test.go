package constraint

import (
	"reflect"
	"strings"
	"testing"
)

func TestAMReX_BaseCombinations(t *testing.T) {
	got := AMReX(nil)

	// With no architecture tags, enabled-cuda combinations vanish and
	// only the bare ~cuda combinations remain.
	want := []string{"+mpi~cuda", "~mpi~cuda"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AMReX(nil) = %v, want %v", got, want)
	}
}

func TestAMReX_ArchFanOut(t *testing.T) {
	archs := []string{"70", "80", "86"}
	got := AMReX(archs)

	want := []string{
		"+mpi+cuda cuda_arch=70",
		"+mpi+cuda cuda_arch=80",
		"+mpi+cuda cuda_arch=86",
		"+mpi~cuda",
		"~mpi+cuda cuda_arch=70",
		"~mpi+cuda cuda_arch=80",
		"~mpi+cuda cuda_arch=86",
		"~mpi~cuda",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AMReX(%v) = %v, want %v", archs, got, want)
	}
}

func TestAMReX_Count(t *testing.T) {
	tests := []struct {
		name  string
		archs []string
		want  int
	}{
		{"no archs", nil, 2},
		{"one arch", []string{"80"}, 4},
		{"three archs", []string{"70", "80", "86"}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// 2^(|F|-1) * |A| + 2^(|F|-1) for the two-feature case.
			got := AMReX(tt.archs)
			if len(got) != tt.want {
				t.Errorf("len(AMReX(%v)) = %d, want %d", tt.archs, len(got), tt.want)
			}
		})
	}
}

func TestAMReX_PolarityPerFeature(t *testing.T) {
	for _, tok := range AMReX([]string{"80"}) {
		for _, f := range []string{"mpi", "cuda"} {
			n := strings.Count(tok, Enabled+f) + strings.Count(tok, Disabled+f)
			if n != 1 {
				t.Errorf("token %q carries %d polarity tokens for %q, want 1", tok, n, f)
			}
		}
	}
}

func TestAMReX_ArchSuffixOnlyWhenCudaEnabled(t *testing.T) {
	for _, tok := range AMReX([]string{"70", "80"}) {
		hasArch := strings.Contains(tok, " cuda_arch=")
		cudaOn := strings.Contains(tok, "+cuda")
		if cudaOn && !hasArch {
			t.Errorf("token %q enables cuda but has no cuda_arch selector", tok)
		}
		if !cudaOn && hasArch {
			t.Errorf("token %q disables cuda but carries a cuda_arch selector", tok)
		}
	}
}

func TestAMReX_Idempotent(t *testing.T) {
	archs := []string{"60", "70", "80"}
	first := AMReX(archs)
	second := AMReX(archs)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated expansion differs:\n%v\n%v", first, second)
	}
}

func TestExpand_SingleFeature(t *testing.T) {
	got := Expand([]Feature{{Name: "shared"}}, nil)
	want := []string{"+shared", "~shared"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand() = %v, want %v", got, want)
	}
}

func TestExpand_AcceleratorVariantName(t *testing.T) {
	features := []Feature{{Name: "rocm", ArchVariant: "amdgpu_target"}}
	got := Expand(features, []string{"gfx90a"})
	want := []string{"+rocm amdgpu_target=gfx90a", "~rocm"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand() = %v, want %v", got, want)
	}
}
