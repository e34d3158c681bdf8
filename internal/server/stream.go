package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/jonathan/filebridge/internal/artifact"
	"github.com/jonathan/filebridge/internal/fetch"
	"github.com/jonathan/filebridge/internal/files"
	"github.com/jonathan/filebridge/internal/server/middleware"
	"github.com/jonathan/filebridge/internal/types"
)

// handleLoaderStream loads the requested files and emits one event per path as it
// settles, followed by a summary. Events after a client disconnect are dropped;
// the batch itself still runs to completion.
func (s *Server) handleLoaderStream(w http.ResponseWriter, r *http.Request) {
	paths := parseFileList(r.URL.Query().Get("files"))
	if len(paths) == 0 {
		s.errorResponse(w, &ErrValidation{Field: "files", Message: "at least one path is required"})
		return
	}

	root, err := resolveRoot(s.fileLoadRoot, r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	req := types.FileLoadRequest{
		RootURL:     root,
		Paths:       paths,
		Credentials: middleware.GetCredentials(r),
	}

	summary, err := s.streamFiles(context.WithoutCancel(r.Context()), req, sse)
	if err != nil {
		log.Printf("[SERVER] Error streaming files: %v", err)
		if werr := sse.WriteError(loadFailedMessage); werr != nil && s.verbose {
			log.Printf("[SERVER] Dropping error event: %v", werr)
		}
		return
	}
	if err := sse.WriteComplete(*summary); err != nil && s.verbose {
		log.Printf("[SERVER] Dropping complete event: %v", err)
	}
}

func (s *Server) streamFiles(ctx context.Context, req types.FileLoadRequest, sse *SSEWriter) (summary *StreamSummary, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			summary = nil
			err = fmt.Errorf("panic during load: %v", rec)
		}
	}()

	result := s.loader.LoadWithProgress(ctx, req, func(p fetch.Progress) {
		var werr error
		switch {
		case p.File != nil:
			werr = sse.WriteFile(p.Path, p.File.Content)
		case p.Failure != nil:
			werr = sse.WriteFailure(p.Failure)
		}
		if werr != nil && s.verbose {
			log.Printf("[SERVER] Dropping stream event for %s: %v", p.Path, werr)
		}
	})
	if result == nil {
		return nil, fmt.Errorf("loader returned no result")
	}

	id := s.newID()
	return &StreamSummary{
		Loaded:      result.Files.Len(),
		Failed:      len(result.Failures),
		ProjectType: files.DetectProjectType(files.FromFileSet(result.Files)),
		ArtifactID:  id,
		Artifact:    artifact.Serialize(result.Files, id),
	}, nil
}
