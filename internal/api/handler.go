package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/anthropics/slack-export-forge/internal/archive"
	"github.com/anthropics/slack-export-forge/internal/biz/domain"
	"github.com/anthropics/slack-export-forge/internal/biz/repo"
	"github.com/anthropics/slack-export-forge/internal/service"
)

// Server provides the HTTP API that accepts an export request, runs
// the engine and streams back the zipped export tree
type Server struct {
	exportSvc *service.ExportService
	runRepo   repo.RunRepo
	workDir   string

	server *http.Server
	port   int
}

// NewServer creates a new API server. runRepo may be nil to disable
// run history.
func NewServer(exportSvc *service.ExportService, runRepo repo.RunRepo, workDir string, port int) *Server {
	return &Server{
		exportSvc: exportSvc,
		runRepo:   runRepo,
		workDir:   workDir,
		port:      port,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/generate-export", s.handleGenerateExport)
	mux.HandleFunc("/api/runs", s.handleRuns)

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: mux,
	}

	log.Printf("[API] Starting HTTP server on port %d", s.port)
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server gracefully
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleGenerateExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}

	var body struct {
		OneOnOneDMs  *[]domain.PairConversation  `json:"oneOnOneDMs"`
		GroupDMs     *[]domain.GroupConversation `json:"groupDMs"`
		MessageRules *domain.GenerationConfig    `json:"messageRules"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if body.OneOnOneDMs == nil || body.GroupDMs == nil || body.MessageRules == nil {
		writeError(w, http.StatusBadRequest, "Missing required export data", "")
		return
	}

	req := &service.ExportRequest{
		OneOnOneDMs:  *body.OneOnOneDMs,
		GroupDMs:     *body.GroupDMs,
		MessageRules: *body.MessageRules,
	}

	runID := uuid.NewString()
	exportDir := filepath.Join(s.workDir, "export-"+runID)
	zipPath := filepath.Join(s.workDir, "export-"+runID+".zip")
	defer os.RemoveAll(exportDir)
	defer os.Remove(zipPath)

	if err := s.exportSvc.Generate(req, exportDir); err != nil {
		log.Printf("[API] Export generation failed: %v", err)
		s.recordRun(r.Context(), runID, req, err)
		writeError(w, http.StatusInternalServerError, "Failed to generate export", err.Error())
		return
	}

	if err := archive.ZipDir(exportDir, zipPath); err != nil {
		log.Printf("[API] Export archival failed: %v", err)
		s.recordRun(r.Context(), runID, req, err)
		writeError(w, http.StatusInternalServerError, "Failed to archive export", err.Error())
		return
	}
	s.recordRun(r.Context(), runID, req, nil)

	f, err := os.Open(zipPath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read archive", err.Error())
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", "attachment; filename=slack-dm-export.zip")
	if _, err := io.Copy(w, f); err != nil {
		log.Printf("[API] Failed to stream archive: %v", err)
	}
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}
	if s.runRepo == nil {
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}
	runs, err := s.runRepo.ListRecent(r.Context(), 50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list runs", err.Error())
		return
	}
	type runView struct {
		ID              string `json:"id"`
		CreatedAt       int64  `json:"created_at"`
		Conversations   int    `json:"conversations"`
		Days            int    `json:"days"`
		MessagesPerDate int    `json:"messages_per_date"`
		Status          string `json:"status"`
		Error           string `json:"error,omitempty"`
	}
	views := make([]runView, 0, len(runs))
	for _, run := range runs {
		views = append(views, runView{
			ID:              run.ID,
			CreatedAt:       run.CreatedAt.Unix(),
			Conversations:   run.Conversations,
			Days:            run.Days,
			MessagesPerDate: run.MessagesPerDate,
			Status:          run.Status,
			Error:           run.Error,
		})
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) recordRun(ctx context.Context, runID string, req *service.ExportRequest, genErr error) {
	if s.runRepo == nil {
		return
	}
	run := &domain.Run{
		ID:              runID,
		CreatedAt:       time.Now(),
		Conversations:   len(req.OneOnOneDMs) + len(req.GroupDMs),
		Days:            req.MessageRules.NumberOfDates,
		MessagesPerDate: req.MessageRules.MessagesPerDate,
		Status:          domain.RunStatusOK,
	}
	if genErr != nil {
		run.Status = domain.RunStatusFailed
		run.Error = genErr.Error()
	}
	if err := s.runRepo.Save(ctx, run); err != nil {
		log.Printf("[API] Failed to record run: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, details string) {
	payload := map[string]string{"error": msg}
	if details != "" {
		payload["details"] = details
	}
	writeJSON(w, status, payload)
}
