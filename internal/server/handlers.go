package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/jonathan/filebridge/internal/artifact"
	"github.com/jonathan/filebridge/internal/fetch"
	"github.com/jonathan/filebridge/internal/files"
	"github.com/jonathan/filebridge/internal/server/middleware"
	"github.com/jonathan/filebridge/internal/types"
)

// loadFailedMessage is returned in place of files when a batch cannot complete.
const loadFailedMessage = "Failed to load files"

// maxBodyBytes bounds JSON request bodies on the POST endpoints.
const maxBodyBytes = 32 << 20

// fileLoader runs a batch of file loads.
type fileLoader interface {
	Load(ctx context.Context, req types.FileLoadRequest) *types.LoadResult
	LoadWithProgress(ctx context.Context, req types.FileLoadRequest, report func(fetch.Progress)) *types.LoadResult
}

var newArtifactID = artifact.NewID

// LoaderResponse is the body of GET /api/loader.
type LoaderResponse struct {
	Error       string              `json:"error,omitempty"`
	LoadedFiles *types.FileSet      `json:"loadedFiles"`
	Failures    []types.LoadFailure `json:"failures,omitempty"`
	ProjectType *types.ProjectType  `json:"projectType,omitempty"`
	ArtifactID  string              `json:"artifactId,omitempty"`
	Artifact    string              `json:"artifact,omitempty"`
}

// FilesRequest is the body of the POST endpoints.
type FilesRequest struct {
	Files *types.FileSet `json:"files"`
	ID    string         `json:"id,omitempty"`
}

// ArtifactResponse is the body of POST /api/artifact.
type ArtifactResponse struct {
	ArtifactID string `json:"artifactId"`
	Artifact   string `json:"artifact"`
}

// parseFileList splits the files query value on commas, trimming entries and
// dropping empties and repeats. The first occurrence of a path keeps its position.
func parseFileList(raw string) []string {
	var paths []string
	seen := make(map[string]bool)
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		paths = append(paths, p)
	}
	return paths
}

// handleLoader fetches the requested files so the chat can start with them.
// It always answers 200: a failed batch degrades to no files.
func (s *Server) handleLoader(w http.ResponseWriter, r *http.Request) {
	paths := parseFileList(r.URL.Query().Get("files"))
	if len(paths) == 0 {
		s.jsonResponse(w, http.StatusOK, LoaderResponse{})
		return
	}

	resp, err := s.loadFiles(r, paths)
	if err != nil {
		log.Printf("[SERVER] Error loading files: %v", err)
		s.jsonResponse(w, http.StatusOK, LoaderResponse{Error: loadFailedMessage})
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// loadFiles runs one batch and converts a panic anywhere in it into an error.
func (s *Server) loadFiles(r *http.Request, paths []string) (resp *LoaderResponse, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			resp = nil
			err = fmt.Errorf("panic during load: %v", rec)
		}
	}()

	root, err := resolveRoot(s.fileLoadRoot, r)
	if err != nil {
		return nil, err
	}

	req := types.FileLoadRequest{
		RootURL:     root,
		Paths:       paths,
		Credentials: middleware.GetCredentials(r),
	}
	if err := req.Validate(); err != nil {
		return nil, &ErrValidation{Field: "files", Message: err.Error()}
	}

	// A started batch always runs to completion, even if the client goes away.
	result := s.loader.Load(context.WithoutCancel(r.Context()), req)
	if result == nil {
		return nil, fmt.Errorf("loader returned no result")
	}

	projectType := files.DetectProjectType(files.FromFileSet(result.Files))
	id := s.newID()
	return &LoaderResponse{
		LoadedFiles: result.Files,
		Failures:    result.Failures,
		ProjectType: &projectType,
		ArtifactID:  id,
		Artifact:    artifact.Serialize(result.Files, id),
	}, nil
}

// handleArtifact renders a file map as artifact markup.
func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	req, err := decodeFilesRequest(w, r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	id := req.ID
	if id == "" {
		id = s.newID()
	}
	s.jsonResponse(w, http.StatusOK, ArtifactResponse{
		ArtifactID: id,
		Artifact:   artifact.Serialize(req.Files, id),
	})
}

// handleProjectType classifies a file map.
func (s *Server) handleProjectType(w http.ResponseWriter, r *http.Request) {
	req, err := decodeFilesRequest(w, r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, files.DetectProjectType(files.FromFileSet(req.Files)))
}

func decodeFilesRequest(w http.ResponseWriter, r *http.Request) (*FilesRequest, error) {
	var req FilesRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		return nil, &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if req.Files == nil {
		return nil, &ErrValidation{Field: "files", Message: "is required"}
	}
	return &req, nil
}
