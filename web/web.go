// Package web provides the HTTP server for the token playground.
//
// The server exposes a REST API for reading the served markdown file and
// its inline token stream, tokenizes posted text on the fly, and pushes
// reload events over SSE when the file changes on disk. The playground
// frontend is served as embedded static files.
//
// SECURITY WARNING: This server has no authentication and should only be
// bound to localhost (127.0.0.1). Do not expose it to untrusted networks.
package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spanlex/spanlex/driver"
	"github.com/spanlex/spanlex/telemetry"
)

type Server struct {
	Port         int
	Host         string
	Version      string
	CommitSHA    string
	WatchEnabled bool

	// file is the path of the served markdown document. The scanned
	// stream is cached and rescanned incrementally on every change.
	file string

	mu     sync.RWMutex
	stream *driver.Stream

	// scanner drives scans of the served file; playground scans posted
	// text and reports positions without a filename.
	scanner    *driver.Driver
	playground *driver.Driver

	// SSE clients for broadcasting reload events
	sseClients map[chan string]struct{}
	sseMu      sync.Mutex
}

func New(port int, file string) *Server {
	return NewWithVersion(port, file, "", "")
}

func NewWithVersion(port int, file, version, commitSHA string) *Server {
	return &Server{
		Port:       port,
		Host:       "127.0.0.1",
		Version:    version,
		CommitSHA:  commitSHA,
		file:       file,
		scanner:    driver.New(driver.WithFilename(file)),
		playground: driver.New(),
		sseClients: make(map[chan string]struct{}),
	}
}

func (s *Server) Start(ctx context.Context) error {
	collector := telemetry.FromContext(ctx)
	timer := collector.Start(fmt.Sprintf("web.start %s:%d", s.Host, s.Port))
	defer timer.End()

	if s.file == "" {
		return fmt.Errorf("markdown file is required")
	}

	scanTimer := timer.Child(fmt.Sprintf("web.scan %s", filepath.Base(s.file)))
	if err := s.reloadStream(ctx); err != nil {
		scanTimer.End()
		return fmt.Errorf("failed to scan file: %w", err)
	}
	scanTimer.End()

	// Start file watcher if enabled
	if s.WatchEnabled {
		if err := s.startWatcher(ctx); err != nil {
			return fmt.Errorf("failed to start file watcher: %w", err)
		}
	}

	setupTimer := timer.Child("web.setup_router")
	mux, err := s.setupRouter()
	setupTimer.End()

	if err != nil {
		return fmt.Errorf("failed to setup router: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) setupRouter() (*http.ServeMux, error) {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/source", s.handleGetSource)
	mux.HandleFunc("GET /api/tokens", s.handleGetTokens)
	mux.HandleFunc("POST /api/tokens", s.handlePostTokens)
	mux.HandleFunc("GET /api/version", s.handleGetVersion)
	mux.HandleFunc("GET /api/events", s.handleSSE)

	if err := s.mountAssets(mux); err != nil {
		return nil, err
	}

	return mux, nil
}

// reloadStream rescans the served file, reusing the unchanged prefix of
// the previous stream when one exists.
// Caller must NOT hold the mutex - this method acquires it internally.
func (s *Server) reloadStream(ctx context.Context) error {
	src, err := os.ReadFile(s.file)
	if err != nil {
		return err
	}

	s.mu.RLock()
	prev := s.stream
	s.mu.RUnlock()

	st, err := s.scanner.Rescan(ctx, prev, src)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.stream = st
	s.mu.Unlock()

	return nil
}

// startWatcher starts a file watcher for the served file. It rescans and
// broadcasts SSE events when the file changes.
func (s *Server) startWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(s.file); err != nil {
		log.Printf("Warning: failed to watch %s: %v", s.file, err)
	}

	// Start watcher goroutine
	go s.runWatcher(ctx, watcher)

	return nil
}

// runWatcher processes file system events with debouncing.
func (s *Server) runWatcher(ctx context.Context, watcher *fsnotify.Watcher) {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		_ = watcher.Close()
	}()

	// Debounce timer - editors often write files in multiple steps
	const debounceDelay = 100 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			// React to write/create/remove/rename events
			// (Remove/Rename are common in atomic saves)
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			// Reset debounce timer
			if debounceTimer != nil {
				debounceTimer.Stop()
			}

			debounceTimer = time.AfterFunc(debounceDelay, func() {
				s.handleFileChange(ctx, watcher)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// handleFileChange rescans the file and notifies connected clients.
func (s *Server) handleFileChange(ctx context.Context, watcher *fsnotify.Watcher) {
	// Atomic saves replace the inode; re-add to keep receiving events.
	if err := watcher.Add(s.file); err != nil {
		log.Printf("Warning: failed to watch %s: %v", s.file, err)
	}

	if err := s.reloadStream(ctx); err != nil {
		log.Printf("Failed to rescan %s: %v", s.file, err)
		return
	}

	// Broadcast reload event to all SSE clients
	s.broadcast("reload")
}

// handleSSE handles Server-Sent Events connections for real-time updates.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	// Create client channel
	clientChan := make(chan string, 10)

	// Register client
	s.sseMu.Lock()
	s.sseClients[clientChan] = struct{}{}
	s.sseMu.Unlock()

	// Cleanup on disconnect
	defer func() {
		s.sseMu.Lock()
		delete(s.sseClients, clientChan)
		s.sseMu.Unlock()
		close(clientChan)
	}()

	// Get flusher for streaming
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	// Send initial connection event
	_, _ = fmt.Fprintf(w, "data: connected\n\n")
	flusher.Flush()

	// Stream events to client
	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-clientChan:
			_, _ = fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}

// broadcast sends an event to all connected SSE clients.
func (s *Server) broadcast(event string) {
	s.sseMu.Lock()
	defer s.sseMu.Unlock()

	for clientChan := range s.sseClients {
		select {
		case clientChan <- event:
		default:
			// Client buffer full, skip
		}
	}
}
