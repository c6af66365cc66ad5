// Package scanner collects dependency files from disk and runs the matching
// extractors over them.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/StinkyLord/lockfile-loader/internal/formats"
	"github.com/StinkyLord/lockfile-loader/internal/model"
	"github.com/StinkyLord/lockfile-loader/internal/strategies"
)

// File is a dependency file in memory. Name is what reports show: the base
// name for explicitly given files, the slash-separated path relative to the
// walked root for files found in a directory.
type File struct {
	Name     string
	Contents []byte
}

// Result is the extraction outcome for one file.
type Result struct {
	File         File
	Descriptor   formats.Descriptor
	Recognized   bool
	Dependencies []*model.Dependency
}

// skippedDirs are never descended into while walking.
var skippedDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"target":       true,
}

// Collect reads the given paths. Regular files are always included;
// directories are walked and only files matching formats.IdentifyStrict are
// kept, so manifests like Gemfile or Pipfile next to their lockfiles are
// left out.
// Files appear in argument order, directory contents in lexical walk order.
func Collect(paths []string) ([]File, error) {
	var files []File
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if !info.IsDir() {
			data, err := os.ReadFile(p)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", p, err)
			}
			files = append(files, File{Name: filepath.Base(p), Contents: data})
			continue
		}

		found, err := walk(p)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

func walk(root string) ([]File, error) {
	var files []File
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if p != root && (strings.HasPrefix(name, ".git") || skippedDirs[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		if _, ok := formats.IdentifyStrict(filepath.ToSlash(rel)); !ok {
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		files = append(files, File{Name: filepath.ToSlash(rel), Contents: data})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return files, nil
}

// Scanner extracts dependencies from a batch of files.
type Scanner struct {
	logger  *zap.Logger
	workers int
}

// New creates a Scanner. workers <= 0 uses GOMAXPROCS.
func New(logger *zap.Logger, workers int) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Scanner{logger: logger.Named("scanner"), workers: workers}
}

// Scan identifies and extracts every file concurrently. Results keep the
// order of files.
func (s *Scanner) Scan(files []File) []Result {
	results := make([]Result, len(files))
	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := min(s.workers, len(files))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.ScanFile(files[i])
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// ScanFile identifies and extracts a single file.
func (s *Scanner) ScanFile(f File) Result {
	r := Result{File: f}
	d, ok := formats.Identify(path.Base(f.Name))
	if !ok {
		s.logger.Debug("Unrecognised file", zap.String("file", f.Name))
		return r
	}
	r.Descriptor = d
	r.Recognized = true
	r.Dependencies = strategies.ExtractFormat(d, f.Name, f.Contents, s.logger)
	return r
}

// Unique flattens results into one dependency list, dropping repeats of the
// same name and version. The first occurrence wins.
func Unique(results []Result) []*model.Dependency {
	seen := map[string]bool{}
	var out []*model.Dependency
	for _, r := range results {
		for _, d := range r.Dependencies {
			k := d.Key()
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, d)
		}
	}
	return out
}
