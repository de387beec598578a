package cmake

import (
	"fmt"
	"strconv"
	"strings"

	"yahb/internal/buildspec"
	"yahb/internal/recipe"
)

// Define renders a single -D cache entry. Booleans become BOOL ON/OFF,
// strings become STRING, and slices are joined with semicolons.
func Define(name string, value interface{}) string {
	switch v := value.(type) {
	case bool:
		if v {
			return fmt.Sprintf("-D%s:BOOL=ON", name)
		}
		return fmt.Sprintf("-D%s:BOOL=OFF", name)
	case []string:
		return fmt.Sprintf("-D%s:STRING=%s", name, strings.Join(v, ";"))
	default:
		return fmt.Sprintf("-D%s:STRING=%v", name, v)
	}
}

// DefineFromVariant renders a cache entry from the spec's value for the
// named variant.
func DefineFromVariant(name, variant string, s *buildspec.Spec) (string, error) {
	if enabled, ok := s.Enabled[variant]; ok {
		return Define(name, enabled), nil
	}
	if values, ok := s.Values[variant]; ok {
		return Define(name, values), nil
	}
	return "", fmt.Errorf("variant %q not set on spec %s", variant, s)
}

// enableVariants are the toggles exported as <PREFIX>_ENABLE_<NAME>
// options, in emission order.
var enableVariants = []string{"mpi", "cuda", "openmp", "netcdf", "tests", "fortran"}

// Args generates the CMake command line for a concretized spec.
// amrexRoot points at an external AMReX install and is only consulted
// when the internal-amrex variant is off.
func Args(r *recipe.Recipe, s *buildspec.Spec, amrexRoot string) ([]string, error) {
	var args []string

	for _, v := range enableVariants {
		arg, err := DefineFromVariant(fmt.Sprintf("%s_ENABLE_%s", r.OptionPrefix, strings.ToUpper(v)), v, s)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	args = append(args,
		Define("CMAKE_EXPORT_COMPILE_COMMANDS", true),
		Define(r.OptionPrefix+"_ENABLE_ALL_WARNINGS", true),
	)
	shared, err := DefineFromVariant("BUILD_SHARED_LIBS", "shared", s)
	if err != nil {
		return nil, err
	}
	fcompare, err := DefineFromVariant(r.OptionPrefix+"_TEST_WITH_FCOMPARE", "tests", s)
	if err != nil {
		return nil, err
	}
	args = append(args, shared, fcompare)

	if s.Enabled["cuda"] {
		if arch := amrexArchValues(s.Values["cuda_arch"]); len(arch) > 0 {
			args = append(args, Define("AMReX_CUDA_ARCH", arch))
		}
	}

	if s.Enabled["internal-amrex"] {
		args = append(args, Define(r.OptionPrefix+"_USE_INTERNAL_AMREX", true))
	} else {
		args = append(args, Define(r.OptionPrefix+"_USE_INTERNAL_AMREX", false))
		if amrexRoot != "" {
			args = append(args, Define("AMReX_ROOT", amrexRoot))
		}
	}

	return args, nil
}

// amrexArchValues converts cuda_arch tags to the x.y form AMReX expects.
// The "none" placeholder maps to 1.0, matching a compute capability of 10.
func amrexArchValues(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		f := 10.0
		if tag != "none" {
			parsed, err := strconv.ParseFloat(tag, 64)
			if err != nil {
				continue
			}
			f = parsed
		}
		out = append(out, fmt.Sprintf("%.1f", f/10.0))
	}
	return out
}

// CudaArchString formats cuda_arch values for consumers that accept an
// explicit architecture list: "none" anywhere selects automatic detection,
// otherwise capabilities are rendered as x.y and joined with semicolons.
func CudaArchString(values []string) string {
	for _, v := range values {
		if v == "none" {
			return "Auto"
		}
	}
	parts := make([]string, 0, len(values))
	for _, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("%.1f", f/10.0))
	}
	return strings.Join(parts, ";")
}
