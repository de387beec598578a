package recipe

func amrexRecipe() *Recipe {
	r := &Recipe{
		Name:     "amrex",
		Homepage: "https://amrex-codes.github.io/amrex/",
		URL:      "https://github.com/AMReX-Codes/amrex/releases/download/24.05/amrex-24.05.tar.gz",
		Git:      "https://github.com/AMReX-Codes/amrex.git",
	}

	r.AddVersion(Version{Label: "develop", Branch: "development"})
	r.AddVersion(Version{
		Label: "24.05",
		URL:   "https://github.com/AMReX-Codes/amrex/releases/download/24.05/amrex-24.05.tar.gz",
	})

	r.AddVariant(VariantDef{Name: "particles", Default: "false", Description: "Build particle classes"})
	r.AddVariant(VariantDef{Name: "shared", Default: "false", Description: "Build shared library"})
	r.AddVariant(VariantDef{Name: "mpi", Default: "true", Description: "Build with MPI support"})
	r.AddVariant(VariantDef{Name: "cuda", Default: "false", Description: "Build with CUDA support"})
	r.AddVariant(VariantDef{
		Name:        "cuda_arch",
		Default:     "none",
		Values:      append([]string{"none"}, CudaArchValues...),
		Multi:       true,
		Description: "CUDA architectures to build for",
	})

	r.DependsOn("mpi", "+mpi")
	r.DependsOn("cuda@9.0.0:", "+cuda")
	r.BuildDependsOn("cmake@3.14:", "")

	return r
}
