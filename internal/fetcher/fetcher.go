package fetcher

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"yahb/internal/recipe"
)

// Job is one source archive to fetch.
type Job struct {
	Package  string
	Version  string
	URL      string
	SHA256   string // empty skips digest verification
	DestPath string
}

// Result pairs a job with its outcome.
type Result struct {
	Job   Job
	Error error
}

// Fetcher downloads source archives in parallel and verifies digests.
type Fetcher struct {
	workers  int
	cacheDir string
	client   *http.Client
}

// NewFetcher creates a fetcher with the given worker count and cache dir.
func NewFetcher(workers int, cacheDir string) *Fetcher {
	return &Fetcher{
		workers:  workers,
		cacheDir: cacheDir,
		client:   &http.Client{},
	}
}

// CacheDir returns the cache directory.
func (f *Fetcher) CacheDir() string {
	return f.cacheDir
}

// JobFor builds the fetch job for a pinned version of a recipe. Branch
// versions have no fixed artifact and are rejected. A non-empty mirror
// replaces the upstream host.
func (f *Fetcher) JobFor(r *recipe.Recipe, v recipe.Version, mirror string) (Job, error) {
	if !v.Pinned() {
		return Job{}, fmt.Errorf("%s@%s: branch versions are not fetchable", r.Name, v.Label)
	}
	src := v.URL
	if src == "" {
		src = r.URL
	}
	if src == "" {
		return Job{}, fmt.Errorf("%s@%s: no download URL declared", r.Name, v.Label)
	}

	if mirror != "" {
		u, err := url.Parse(src)
		if err != nil {
			return Job{}, fmt.Errorf("%s@%s: bad URL %q: %w", r.Name, v.Label, src, err)
		}
		src = strings.TrimSuffix(mirror, "/") + u.Path
	}

	return Job{
		Package:  r.Name,
		Version:  v.Label,
		URL:      src,
		SHA256:   v.SHA256,
		DestPath: filepath.Join(f.cacheDir, filepath.Base(src)),
	}, nil
}

// Fetch downloads all jobs in parallel. Results arrive in completion
// order, one per job.
func (f *Fetcher) Fetch(jobs []Job) []Result {
	if err := os.MkdirAll(f.cacheDir, 0755); err != nil {
		results := make([]Result, len(jobs))
		for i, job := range jobs {
			results[i] = Result{Job: job, Error: err}
		}
		return results
	}

	jobChan := make(chan Job, len(jobs))
	resultChan := make(chan Result, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < f.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobChan {
				err := f.fetchOne(job)
				resultChan <- Result{Job: job, Error: err}
			}
		}()
	}

	for _, job := range jobs {
		jobChan <- job
	}
	close(jobChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]Result, 0, len(jobs))
	for result := range resultChan {
		results = append(results, result)
	}

	return results
}

func (f *Fetcher) fetchOne(job Job) error {
	// A cached file still gets its digest checked.
	if _, err := os.Stat(job.DestPath); err == nil {
		return verifyDigest(job.DestPath, job.SHA256)
	}

	if err := os.MkdirAll(filepath.Dir(job.DestPath), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	resp, err := f.client.Get(job.URL)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", job.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading %s: HTTP %d", job.URL, resp.StatusCode)
	}

	tmpPath := job.DestPath + ".tmp"
	out, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	_, err = io.Copy(out, resp.Body)
	out.Close()
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing file: %w", err)
	}

	if err := verifyDigest(tmpPath, job.SHA256); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, job.DestPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming file: %w", err)
	}

	return nil
}

func verifyDigest(path, want string) error {
	if want == "" {
		return nil
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	h := sha256.New()
	if _, err := io.Copy(h, file); err != nil {
		return fmt.Errorf("hashing %s: %w", path, err)
	}

	got := hex.EncodeToString(h.Sum(nil))
	if got != want {
		return fmt.Errorf("sha256 mismatch for %s: got %s, want %s", filepath.Base(path), got, want)
	}
	return nil
}
