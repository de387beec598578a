package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"yahb/internal/buildspec"
	"yahb/internal/cmake"
	"yahb/internal/constraint"
	"yahb/internal/fetcher"
	"yahb/internal/lockfile"
	"yahb/internal/recipe"
	"yahb/internal/resolver"
	"yahb/internal/siteconfig"
)

var (
	configPath string
	specFlag   string
	verbose    bool
	amrexRoot  string
	lockPath   string
	workers    int
	archsFlag  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "yahb",
		Short: "Yet Another HPC Builder - build recipes for AMReX simulation codes",
		Long: "YAHB carries declarative build recipes for ERF and REMORA and their shared " +
			"dependency graph (AMReX, MPI, CUDA/ROCm, NetCDF, HDF5), resolving variants " +
			"and conditional dependencies into CMake arguments, lockfiles, and source fetches.",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Site config YAML path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	infoCmd := &cobra.Command{
		Use:   "info <package>",
		Short: "Show a recipe's versions, variants, and conflicts",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}

	depsCmd := &cobra.Command{
		Use:   "deps <package>",
		Short: "Resolve the dependency set for a spec",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeps,
	}
	depsCmd.Flags().StringVarP(&specFlag, "spec", "s", "", "Build spec, e.g. '+mpi+cuda cuda_arch=80'")

	cmakeCmd := &cobra.Command{
		Use:   "cmake-args <package>",
		Short: "Generate the CMake command line for a spec",
		Args:  cobra.ExactArgs(1),
		RunE:  runCmakeArgs,
	}
	cmakeCmd.Flags().StringVarP(&specFlag, "spec", "s", "", "Build spec")
	cmakeCmd.Flags().StringVar(&amrexRoot, "amrex-root", "", "External AMReX install prefix")

	constraintsCmd := &cobra.Command{
		Use:   "constraints",
		Short: "Print the external-AMReX feature/architecture matrix",
		RunE:  runConstraints,
	}
	constraintsCmd.Flags().StringVar(&archsFlag, "archs", "", "Comma-separated CUDA arch tags (default: site config)")

	lockCmd := &cobra.Command{
		Use:   "lock <package>",
		Short: "Resolve a spec and write a lockfile",
		Args:  cobra.ExactArgs(1),
		RunE:  runLock,
	}
	lockCmd.Flags().StringVarP(&specFlag, "spec", "s", "", "Build spec")
	lockCmd.Flags().StringVarP(&lockPath, "output", "o", "./yahb.lock", "Output lockfile path")

	fetchCmd := &cobra.Command{
		Use:   "fetch <package>",
		Short: "Download and verify source archives for a resolved spec",
		Args:  cobra.ExactArgs(1),
		RunE:  runFetch,
	}
	fetchCmd.Flags().StringVarP(&specFlag, "spec", "s", "", "Build spec")
	fetchCmd.Flags().IntVarP(&workers, "workers", "w", 0, "Parallel download workers (default: site config)")

	rootCmd.AddCommand(infoCmd, depsCmd, cmakeCmd, constraintsCmd, lockCmd, fetchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func logf(format string, args ...interface{}) {
	if verbose {
		fmt.Printf(format+"\n", args...)
	}
}

func loadConfig() (*siteconfig.Config, error) {
	if configPath != "" {
		return siteconfig.Load(configPath)
	}
	if path := siteconfig.DefaultPath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			logf("Loading site config: %s", path)
			return siteconfig.Load(path)
		}
	}
	return siteconfig.Default(), nil
}

// parseSpec combines the package argument with the --spec flag into one
// parsed spec.
func parseSpec(pkg string) (*buildspec.Spec, error) {
	s, err := buildspec.Parse(strings.TrimSpace(pkg + " " + specFlag))
	if err != nil {
		return nil, err
	}
	if s.Package == "" {
		s.Package = pkg
	}
	return s, nil
}

func resolveArg(pkg string) (*resolver.Result, error) {
	s, err := parseSpec(pkg)
	if err != nil {
		return nil, err
	}
	logf("Resolving %s", s)
	return resolver.NewResolver(recipe.Builtin(), verbose).Resolve(s.Package, s)
}

func runInfo(cmd *cobra.Command, args []string) error {
	r, ok := recipe.Builtin().Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown package %q", args[0])
	}

	fmt.Printf("%s\n", r.Name)
	if r.Description != "" {
		fmt.Printf("  %s\n", r.Description)
	}
	if r.Homepage != "" {
		fmt.Printf("  homepage: %s\n", r.Homepage)
	}
	if len(r.Maintainers) > 0 {
		fmt.Printf("  maintainers: %s\n", strings.Join(r.Maintainers, ", "))
	}

	if len(r.Versions) > 0 {
		fmt.Println("\nVersions:")
		for _, v := range r.Versions {
			switch {
			case v.Branch != "":
				fmt.Printf("  %-12s branch %s\n", v.Label, v.Branch)
			case v.SHA256 != "":
				fmt.Printf("  %-12s sha256=%s\n", v.Label, v.SHA256)
			default:
				fmt.Printf("  %s\n", v.Label)
			}
		}
	}

	if len(r.Variants) > 0 {
		fmt.Println("\nVariants:")
		for _, v := range r.Variants {
			if v.Boolean() {
				fmt.Printf("  %-16s [%s]  %s\n", v.Name, v.Default, v.Description)
			} else {
				fmt.Printf("  %-16s [%s]  %s (values: %s)\n",
					v.Name, v.Default, v.Description, strings.Join(v.Values, ", "))
			}
		}
	}

	if len(r.ConflictsWith) > 0 {
		fmt.Println("\nConflicts:")
		for _, c := range r.ConflictsWith {
			line := fmt.Sprintf("  %s when %s", c.Spec, c.When)
			if c.Msg != "" {
				line += " (" + c.Msg + ")"
			}
			fmt.Println(line)
		}
	}

	return nil
}

func runDeps(cmd *cobra.Command, args []string) error {
	res, err := resolveArg(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s@%s\n", res.Root.Recipe.Name, res.Root.Version.Label)
	for _, d := range res.Deps {
		switch {
		case d.Recipe.Virtual:
			fmt.Printf("  %-12s (virtual)\n", d.Recipe.Name)
		case d.Type == recipe.DepBuild:
			fmt.Printf("  %-12s %s (build)\n", d.Recipe.Name, d.Version.Label)
		default:
			fmt.Printf("  %-12s %s\n", d.Recipe.Name, d.Version.Label)
		}
	}
	return nil
}

func runCmakeArgs(cmd *cobra.Command, args []string) error {
	res, err := resolveArg(args[0])
	if err != nil {
		return err
	}

	cmakeArgs, err := cmake.Args(res.Root.Recipe, res.Root.Spec, amrexRoot)
	if err != nil {
		return err
	}
	for _, a := range cmakeArgs {
		fmt.Println(a)
	}
	return nil
}

func runConstraints(cmd *cobra.Command, args []string) error {
	var archs []string
	if archsFlag != "" {
		archs = strings.Split(archsFlag, ",")
	} else {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		archs = cfg.Archs()
	}

	for _, tok := range constraint.AMReX(archs) {
		fmt.Println(tok)
	}
	return nil
}

func runLock(cmd *cobra.Command, args []string) error {
	res, err := resolveArg(args[0])
	if err != nil {
		return err
	}

	outFile, err := os.Create(lockPath)
	if err != nil {
		return fmt.Errorf("creating lockfile: %w", err)
	}
	defer outFile.Close()

	if err := lockfile.NewEmitter(outFile).Emit(res); err != nil {
		return fmt.Errorf("writing lockfile: %w", err)
	}

	fmt.Printf("Wrote %s with %d packages\n", lockPath, len(res.Deps)+1)
	return nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if workers <= 0 {
		workers = cfg.Workers
	}
	cacheDir, err := cfg.Cache()
	if err != nil {
		return err
	}

	res, err := resolveArg(args[0])
	if err != nil {
		return err
	}

	f := fetcher.NewFetcher(workers, cacheDir)

	var jobs []fetcher.Job
	all := append([]resolver.Resolved{res.Root}, res.Deps...)
	for _, d := range all {
		if d.Recipe.Virtual {
			logf("Skipping %s: virtual", d.Recipe.Name)
			continue
		}
		if !d.Version.Pinned() {
			logf("Skipping %s@%s: branch version", d.Recipe.Name, d.Version.Label)
			continue
		}
		job, err := f.JobFor(d.Recipe, d.Version, cfg.Mirror)
		if err != nil {
			logf("Skipping %s@%s: %v", d.Recipe.Name, d.Version.Label, err)
			continue
		}
		jobs = append(jobs, job)
	}

	if len(jobs) == 0 {
		return fmt.Errorf("nothing fetchable for %s", args[0])
	}

	logf("Fetching %d archives with %d workers into %s", len(jobs), workers, cacheDir)
	var failed int
	for _, result := range f.Fetch(jobs) {
		if result.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "error: %s@%s: %v\n", result.Job.Package, result.Job.Version, result.Error)
			continue
		}
		logf("Fetched %s -> %s", result.Job.URL, result.Job.DestPath)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d fetches failed", failed, len(jobs))
	}

	fmt.Printf("Fetched %d archives into %s\n", len(jobs), cacheDir)
	return nil
}
