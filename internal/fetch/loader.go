package fetch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/filebridge/internal/types"
)

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	Options *Options
	Verbose bool // Log the shape of every outgoing request
}

// DefaultLoaderOptions returns the defaults for loading: no timeout, no retries.
func DefaultLoaderOptions() *LoaderOptions {
	return &LoaderOptions{
		Options: DefaultOptions(),
	}
}

// Loader fetches batches of project files relative to a root URL.
type Loader struct {
	options *Options
	verbose bool
	now     func() time.Time
}

// NewLoader creates a new Loader. A single HTTP client is shared across batches.
func NewLoader(config *LoaderOptions) *Loader {
	if config == nil {
		config = DefaultLoaderOptions()
	}
	opts := config.Options
	if opts == nil {
		opts = DefaultOptions()
	}
	cp := *opts
	if cp.Client == nil {
		cp.Client = &http.Client{Timeout: cp.Timeout}
	}
	return &Loader{
		options: &cp,
		verbose: config.Verbose,
		now:     time.Now,
	}
}

// outcome is the settled state of one path in a batch.
type outcome struct {
	file    *types.LoadedFile
	failure *types.LoadFailure
}

// Progress reports one path of a batch as soon as it settles.
// Exactly one of File and Failure is set.
type Progress struct {
	Path    string
	File    *types.LoadedFile
	Failure *types.LoadFailure
}

// Load fetches every path in req concurrently and waits for all of them to settle.
// A failing path is logged, recorded in Failures and omitted from Files; it never
// aborts or delays the rest of the batch. Files are ordered as the request paths.
func (l *Loader) Load(ctx context.Context, req types.FileLoadRequest) *types.LoadResult {
	return l.LoadWithProgress(ctx, req, nil)
}

// LoadWithProgress is Load that also calls report for each path in settle order.
// report is never called concurrently and may be nil.
func (l *Loader) LoadWithProgress(ctx context.Context, req types.FileLoadRequest, report func(Progress)) *types.LoadResult {
	outcomes := make([]outcome, len(req.Paths))
	var reportMu sync.Mutex

	// Tasks never return an error, so the group never cancels siblings.
	var g errgroup.Group
	for i, path := range req.Paths {
		i, path := i, path
		g.Go(func() error {
			outcomes[i] = l.loadOne(ctx, req, path)
			if report != nil {
				reportMu.Lock()
				defer reportMu.Unlock()
				report(Progress{Path: path, File: outcomes[i].file, Failure: outcomes[i].failure})
			}
			return nil
		})
	}
	_ = g.Wait()

	result := &types.LoadResult{Files: types.NewFileSet()}
	for i, path := range req.Paths {
		switch o := outcomes[i]; {
		case o.file != nil:
			result.Files.Set(path, *o.file)
		case o.failure != nil:
			result.Failures = append(result.Failures, *o.failure)
		}
	}

	if l.verbose {
		log.Printf("[LOADER] Loaded %d/%d files from %s", result.Files.Len(), len(req.Paths), req.RootURL)
	}
	return result
}

// LoadFiles is Load without the failure records.
func (l *Loader) LoadFiles(ctx context.Context, req types.FileLoadRequest) *types.FileSet {
	return l.Load(ctx, req).Files
}

// loadOne fetches a single path. Panics are contained to the path that caused them.
func (l *Loader) loadOne(ctx context.Context, req types.FileLoadRequest, path string) (o outcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[LOADER] Error loading file %s: panic: %v", path, r)
			o = outcome{failure: &types.LoadFailure{Path: path, Reason: fmt.Sprintf("panic: %v", r)}}
		}
	}()

	resolved, err := ResolveURL(req.RootURL, path)
	if err != nil {
		log.Printf("[LOADER] Error loading file %s: %v", path, err)
		return outcome{failure: &types.LoadFailure{Path: path, Reason: err.Error()}}
	}

	opts := l.options
	api := IsAPIURL(resolved)
	if api {
		opts = opts.withHeaders(AuthHeaders(req.Credentials))
		if req.Credentials != nil && tokenExpired(req.Credentials.Token, l.now()) {
			log.Printf("[LOADER] Warning: forwarding expired bearer token for %s", resolved)
		}
	}

	if l.verbose {
		log.Printf("[LOADER] GET %s (api=%t, headers=[%s])", resolved, api, headerNames(opts.Headers))
	}

	result, err := URL(ctx, resolved, opts)
	if err != nil {
		log.Printf("[LOADER] Error loading file %s: %v", path, err)
		failure := &types.LoadFailure{Path: path, URL: resolved, Reason: failureReason(err)}
		if result != nil {
			failure.StatusCode = result.StatusCode
		}
		return outcome{failure: failure}
	}

	return outcome{file: &types.LoadedFile{Content: result.Body}}
}

// failureReason returns the short description of a fetch error.
func failureReason(err error) string {
	var fetchErr *Error
	if errors.As(err, &fetchErr) {
		if fetchErr.Cause != nil {
			return fmt.Sprintf("%s: %v", fetchErr.Message, fetchErr.Cause)
		}
		return fetchErr.Message
	}
	return err.Error()
}

// headerNames lists header names only; values may carry secrets.
func headerNames(headers map[string]string) string {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
