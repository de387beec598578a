package recipe

import "yahb/internal/constraint"

func erfRecipe() *Recipe {
	r := &Recipe{
		Name: "erf",
		Description: "The Energy Research and Forecasting (ERF) code simulates the " +
			"mesoscale and microscale dynamics of the atmosphere, solving the " +
			"compressible Navier-Stokes equations on an Arakawa C-grid.",
		Homepage:     "https://erf.readthedocs.io/en/latest/index.html",
		URL:          "https://github.com/jmsexton03/ERF/releases/download/24.05/ERF-24.05.tar.gz",
		Git:          "https://github.com/erf-model/ERF.git",
		Maintainers:  []string{"WeiqunZhang", "asalmgren", "jmsexton03", "AMLattanzi"},
		OptionPrefix: "ERF",
	}

	r.AddVersion(Version{Label: "develop", Branch: "development", Submodules: true})
	r.AddVersion(Version{
		Label:  "24.05",
		SHA256: "cc15077f5045ad144379417af5861c78b3cccadd953acb0abddd9ea3e3e6b2e7",
		URL:    "https://github.com/jmsexton03/ERF/releases/download/24.05/ERF-24.05.tar.gz",
	})

	declareAMReXApp(r)
	return r
}

// declareAMReXApp declares the variants, conflicts, and dependencies
// common to AMReX-based simulation codes. ERF and REMORA share these
// wholesale.
func declareAMReXApp(r *Recipe) {
	r.AddVariant(VariantDef{
		Name: "dimensions", Default: "3", Values: []string{"2", "3"},
		Description: "Dimensionality",
	})
	r.AddVariant(VariantDef{Name: "shared", Default: "false", Description: "Build shared library"})
	r.AddVariant(VariantDef{Name: "mpi", Default: "true", Description: "Build with MPI support"})
	r.AddVariant(VariantDef{Name: "openmp", Default: "false", Description: "Build with OpenMP support"})
	r.AddVariant(VariantDef{
		Name: "precision", Default: "double", Values: []string{"single", "double"},
		Description: "Real precision",
	})
	r.AddVariant(VariantDef{Name: "eb", Default: "false", Description: "Build Embedded Boundary classes"})
	r.AddVariant(VariantDef{Name: "fortran", Default: "false", Description: "Build Fortran API"})
	r.AddVariant(VariantDef{Name: "hdf5", Default: "false", Description: "Enable HDF5-based I/O"})
	r.AddVariant(VariantDef{Name: "tests", Default: "true", Description: "Activate regression tests"})
	r.AddVariant(VariantDef{Name: "netcdf", Default: "true", Description: "Enable NetCDF support"})
	r.AddVariant(VariantDef{Name: "internal-amrex", Default: "true", Description: "Use AMReX submodule to build"})
	r.AddVariant(VariantDef{Name: "cuda", Default: "false", Description: "Build with CUDA support"})
	r.AddVariant(VariantDef{Name: "rocm", Default: "false", Description: "Build with ROCm/HIP support"})
	r.AddVariant(VariantDef{
		Name:        "cuda_arch",
		Default:     "none",
		Values:      append([]string{"none"}, CudaArchValues...),
		Multi:       true,
		Description: "CUDA architectures to build for",
	})

	r.Conflicts("+openmp", "+cuda", "")
	r.Conflicts("+cuda", "+rocm", "CUDA and HIP support are exclusive")
	// gcc 8.1-8.3 miscompile the lambda-heavy kernels in these releases.
	r.Conflicts("%gcc@8.1.0:8.3.0", "@21.03", "")
	r.Conflicts("%gcc@8.1.0:8.2.0", "@21.01:21.02", "")

	r.DependsOn("amrex", "")
	r.DependsOn("mpi", "+mpi")

	// Building against an external AMReX requires its mpi/cuda state and
	// CUDA architectures to match ours, so one conditional dependency is
	// declared per point of the feature/architecture matrix.
	for _, opt := range constraint.AMReX(CudaArchValues) {
		r.DependsOn("amrex@develop+particles"+opt, "~internal-amrex"+opt)
	}

	r.DependsOn("netcdf-c", "+netcdf")
	r.DependsOn("cuda@9.0.0:", "+cuda")
	r.DependsOn("hdf5@1.10.4:+mpi", "+hdf5")

	r.BuildDependsOn("python@2.7:", "@:20.04")
	r.BuildDependsOn("cmake@3.5:", "@:18.10.99")
	r.BuildDependsOn("cmake@3.13:", "@18.11:")
	r.BuildDependsOn("cmake@3.14:", "@19.04:")
	// cmake 3.17 is the first release that handles cuda 11 correctly.
	r.BuildDependsOn("cmake@3.17:", "^cuda@11:")
	r.BuildDependsOn("rocrand", "+rocm")
	r.BuildDependsOn("rocprim", "@21.05:+rocm")
}
