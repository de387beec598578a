package recipe

func remoraRecipe() *Recipe {
	r := &Recipe{
		Name: "remora",
		Description: "REMORA is a next-generation version of the Regional Ocean " +
			"Modeling System (ROMS) built on AMReX, targeting machines from " +
			"laptops to hybrid CPU/GPU systems.",
		Homepage:     "https://roms-x.readthedocs.io/en/latest/index.html",
		URL:          "https://github.com/iulian787/REMORA/archive/refs/tags/r0.9.tar.gz",
		Git:          "https://github.com/seahorce-scidac/REMORA.git",
		Maintainers:  []string{"jmsexton03", "hklion", "asalmgren", "iulian787"},
		OptionPrefix: "REMORA",
	}

	r.AddVersion(Version{Label: "develop", Branch: "development", Submodules: true})
	r.AddVersion(Version{
		Label: "0.9",
		URL:   "https://github.com/iulian787/REMORA/archive/refs/tags/r0.9.tar.gz",
	})

	declareAMReXApp(r)
	return r
}
