// Package api exposes the daemon's status over HTTP: health, last scan
// report, and recent download history.
package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Nomadcxx/extrarr/internal/finder"
	"github.com/Nomadcxx/extrarr/internal/history"
)

// HistoryReader is the read-only slice of the history store the API
// serves.
type HistoryReader interface {
	Recent(limit int) ([]history.Download, error)
	Total() (int, error)
}

// Server implements the status API.
type Server struct {
	history HistoryReader
	started time.Time

	mu         sync.RWMutex
	lastReport *finder.Report
	lastScan   time.Time
	scanning   bool
}

// NewServer creates a status API server.
func NewServer(hist HistoryReader) *Server {
	return &Server{
		history: hist,
		started: time.Now(),
	}
}

// SetScanning marks a scan as in progress.
func (s *Server) SetScanning(scanning bool) {
	s.mu.Lock()
	s.scanning = scanning
	s.mu.Unlock()
}

// RecordReport stores the report of a finished scan.
func (s *Server) RecordReport(r *finder.Report) {
	s.mu.Lock()
	s.lastReport = r
	s.lastScan = time.Now()
	s.scanning = false
	s.mu.Unlock()
}

// Handler returns the HTTP handler.
func (s *Server) Handler() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.SetHeader("Content-Type", "application/json"))
		r.Get("/status", s.handleStatus)
		r.Get("/downloads", s.handleDownloads)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type statusResponse struct {
	UptimeSeconds  int64          `json:"uptime_seconds"`
	Scanning       bool           `json:"scanning"`
	LastScan       *time.Time     `json:"last_scan,omitempty"`
	LastReport     *finder.Report `json:"last_report,omitempty"`
	TotalDownloads int            `json:"total_downloads"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	resp := statusResponse{
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
		Scanning:      s.scanning,
		LastReport:    s.lastReport,
	}
	if !s.lastScan.IsZero() {
		t := s.lastScan
		resp.LastScan = &t
	}
	s.mu.RUnlock()

	if total, err := s.history.Total(); err == nil {
		resp.TotalDownloads = total
	}

	writeJSON(w, http.StatusOK, resp)
}

type downloadEntry struct {
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	Channel      string    `json:"channel,omitempty"`
	URL          string    `json:"url,omitempty"`
	Score        float64   `json:"score"`
	MediaType    string    `json:"media_type"`
	MediaTitle   string    `json:"media_title"`
	Path         string    `json:"path"`
	DownloadedAt time.Time `json:"downloaded_at"`
}

func (s *Server) handleDownloads(w http.ResponseWriter, r *http.Request) {
	downloads, err := s.history.Recent(100)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	entries := make([]downloadEntry, 0, len(downloads))
	for _, d := range downloads {
		entries = append(entries, downloadEntry{
			VideoID:      d.VideoID,
			Title:        d.Title,
			Channel:      d.Channel,
			URL:          d.URL,
			Score:        d.Score,
			MediaType:    d.MediaType,
			MediaTitle:   d.MediaTitle,
			Path:         d.Path,
			DownloadedAt: d.DownloadedAt,
		})
	}
	writeJSON(w, http.StatusOK, entries)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
