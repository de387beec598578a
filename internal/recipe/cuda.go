package recipe

// CudaArchValues enumerates the CUDA compute capabilities a recipe may
// target, oldest first. Recipes pair these with the cuda_arch variant;
// "none" is handled by the variant default, not listed here.
var CudaArchValues = []string{
	"10", "11", "12", "13",
	"20", "21",
	"30", "32", "35", "37",
	"50", "52", "53",
	"60", "61", "62",
	"70", "72", "75",
	"80", "86", "87", "89",
	"90",
}

func cudaRecipe() *Recipe {
	r := &Recipe{
		Name:     "cuda",
		Homepage: "https://developer.nvidia.com/cuda-zone",
	}
	r.AddVersion(Version{Label: "12.4.1"})
	r.AddVersion(Version{Label: "11.8.0"})
	r.AddVersion(Version{Label: "9.0.176"})
	return r
}
