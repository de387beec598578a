package recipe

// Recipes for the shared lower half of the dependency graph. These carry
// just enough declarations for resolution and fetching; they are not full
// build descriptions.

func mpiRecipe() *Recipe {
	return &Recipe{
		Name:     "mpi",
		Homepage: "https://www.mpi-forum.org/",
		Virtual:  true,
	}
}

func netcdfCRecipe() *Recipe {
	r := &Recipe{
		Name:     "netcdf-c",
		Homepage: "https://www.unidata.ucar.edu/software/netcdf/",
		URL:      "https://downloads.unidata.ucar.edu/netcdf-c/4.9.2/netcdf-c-4.9.2.tar.gz",
	}
	r.AddVersion(Version{
		Label: "4.9.2",
		URL:   "https://downloads.unidata.ucar.edu/netcdf-c/4.9.2/netcdf-c-4.9.2.tar.gz",
	})
	r.AddVersion(Version{
		Label: "4.8.1",
		URL:   "https://downloads.unidata.ucar.edu/netcdf-c/4.8.1/netcdf-c-4.8.1.tar.gz",
	})
	r.AddVariant(VariantDef{Name: "mpi", Default: "true", Description: "Enable parallel I/O"})
	r.DependsOn("hdf5@1.8.9:", "")
	r.DependsOn("mpi", "+mpi")
	return r
}

func hdf5Recipe() *Recipe {
	r := &Recipe{
		Name:     "hdf5",
		Homepage: "https://www.hdfgroup.org/solutions/hdf5/",
		URL:      "https://support.hdfgroup.org/ftp/HDF5/releases/hdf5-1.14/hdf5-1.14.3/src/hdf5-1.14.3.tar.gz",
	}
	r.AddVersion(Version{
		Label: "1.14.3",
		URL:   "https://support.hdfgroup.org/ftp/HDF5/releases/hdf5-1.14/hdf5-1.14.3/src/hdf5-1.14.3.tar.gz",
	})
	r.AddVersion(Version{
		Label: "1.10.7",
		URL:   "https://support.hdfgroup.org/ftp/HDF5/releases/hdf5-1.10/hdf5-1.10.7/src/hdf5-1.10.7.tar.gz",
	})
	r.AddVariant(VariantDef{Name: "mpi", Default: "true", Description: "Enable parallel HDF5"})
	r.DependsOn("mpi", "+mpi")
	return r
}

func cmakeRecipe() *Recipe {
	r := &Recipe{
		Name:     "cmake",
		Homepage: "https://cmake.org/",
		URL:      "https://github.com/Kitware/CMake/releases/download/v3.24.3/cmake-3.24.3.tar.gz",
	}
	r.AddVersion(Version{
		Label: "3.24.3",
		URL:   "https://github.com/Kitware/CMake/releases/download/v3.24.3/cmake-3.24.3.tar.gz",
	})
	r.AddVersion(Version{
		Label: "3.17.5",
		URL:   "https://github.com/Kitware/CMake/releases/download/v3.17.5/cmake-3.17.5.tar.gz",
	})
	return r
}

func pythonRecipe() *Recipe {
	r := &Recipe{
		Name:     "python",
		Homepage: "https://www.python.org/",
		URL:      "https://www.python.org/ftp/python/3.11.7/Python-3.11.7.tgz",
	}
	r.AddVersion(Version{
		Label: "3.11.7",
		URL:   "https://www.python.org/ftp/python/3.11.7/Python-3.11.7.tgz",
	})
	r.AddVersion(Version{
		Label: "2.7.18",
		URL:   "https://www.python.org/ftp/python/2.7.18/Python-2.7.18.tgz",
	})
	return r
}

func rocrandRecipe() *Recipe {
	r := &Recipe{
		Name:     "rocrand",
		Homepage: "https://github.com/ROCm/rocRAND",
		URL:      "https://github.com/ROCm/rocRAND/archive/refs/tags/rocm-5.7.1.tar.gz",
	}
	r.AddVersion(Version{
		Label: "5.7.1",
		URL:   "https://github.com/ROCm/rocRAND/archive/refs/tags/rocm-5.7.1.tar.gz",
	})
	return r
}

func rocprimRecipe() *Recipe {
	r := &Recipe{
		Name:     "rocprim",
		Homepage: "https://github.com/ROCm/rocPRIM",
		URL:      "https://github.com/ROCm/rocPRIM/archive/refs/tags/rocm-5.7.1.tar.gz",
	}
	r.AddVersion(Version{
		Label: "5.7.1",
		URL:   "https://github.com/ROCm/rocPRIM/archive/refs/tags/rocm-5.7.1.tar.gz",
	})
	return r
}
