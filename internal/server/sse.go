package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/filebridge/internal/types"
)

// Stream event names. A load stream is zero or more file and failure events
// followed by exactly one complete or error event.
const (
	eventFile     = "file"
	eventFailure  = "failure"
	eventComplete = "complete"
	eventError    = "error"
)

// FileEvent is the payload of a "file" event.
type FileEvent struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// StreamSummary is the payload of the final "complete" event.
type StreamSummary struct {
	Loaded      int               `json:"loaded"`
	Failed      int               `json:"failed"`
	ProjectType types.ProjectType `json:"projectType"`
	ArtifactID  string            `json:"artifactId"`
	Artifact    string            `json:"artifact"`
}

// SSEWriter writes a file load as Server-Sent Events.
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter sets the event-stream headers on w. It fails when w cannot flush.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteFile emits one loaded file.
func (s *SSEWriter) WriteFile(path, content string) error {
	return s.writeEvent(eventFile, FileEvent{Path: path, Content: content})
}

// WriteFailure emits one path that could not be loaded.
func (s *SSEWriter) WriteFailure(f *types.LoadFailure) error {
	if f == nil {
		return fmt.Errorf("nil failure")
	}
	return s.writeEvent(eventFailure, f)
}

// WriteComplete emits the batch summary. It ends the stream.
func (s *SSEWriter) WriteComplete(summary StreamSummary) error {
	return s.writeEvent(eventComplete, summary)
}

// WriteError emits a terminal error in place of the summary.
func (s *SSEWriter) WriteError(message string) error {
	return s.writeEvent(eventError, map[string]string{"error": message})
}

func (s *SSEWriter) writeEvent(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}
