package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/divyamb08/multilingual-summarizer/internal/extract"
	"github.com/divyamb08/multilingual-summarizer/internal/models"
	"github.com/divyamb08/multilingual-summarizer/pkg/utils"
)

// previewLen is how much of the source content a history entry keeps.
const previewLen = 200

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.Upload.MaxBytes)
	if err := r.ParseMultipartForm(s.config.Upload.MaxBytes); err != nil {
		s.respondUploadError(w, err)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondUploadError(w, err)
		return
	}

	raw := &models.RawFile{
		Data:     data,
		MIMEType: header.Header.Get("Content-Type"),
		FileName: header.Filename,
		Size:     int64(len(data)),
	}
	s.logger.Debug("extract request",
		zap.String("file", raw.FileName),
		zap.String("mime", raw.MIMEType),
		zap.Int64("size", raw.Size))

	result, err := s.extractor.Extract(r.Context(), raw)
	if err != nil {
		s.respondExtractionError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req models.SummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Content == "" {
		s.respondError(w, http.StatusBadRequest, "content is required")
		return
	}
	if req.TargetLanguage == "" {
		s.respondError(w, http.StatusBadRequest, "targetLanguage is required")
		return
	}
	if !req.SummaryLength.Valid() {
		req.SummaryLength = models.LengthMedium
	}
	if req.SourceLanguage == "" {
		req.SourceLanguage = s.detector.Detect(req.Content)
	}
	s.logger.Debug("summarize request",
		zap.String("target", req.TargetLanguage),
		zap.String("source", req.SourceLanguage),
		zap.String("length", string(req.SummaryLength)),
		zap.Int("content_chars", len(req.Content)))

	summary, err := s.summarizer.Summarize(r.Context(), &req)
	if err != nil {
		s.logger.Error("summarization failed", zap.Error(err))
		s.respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	entry := &models.HistoryEntry{
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
		SummaryLength:  req.SummaryLength,
		ContentPreview: utils.Truncate(req.Content, previewLen),
		Summary:        summary,
		SourceType:     req.SourceType,
		FileName:       req.FileName,
	}
	if err := s.store.AddEntry(r.Context(), entry); err != nil {
		// History is best-effort; the summary still goes back to the caller.
		s.logger.Warn("failed to record history entry", zap.Error(err))
	}

	s.respondJSON(w, http.StatusOK, &models.SummaryResponse{
		Summary:        summary,
		SourceLanguage: req.SourceLanguage,
		HistoryID:      entry.ID,
	})
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	lang := s.detector.Detect(req.Content)
	s.respondJSON(w, http.StatusOK, map[string]string{"language": lang})
}

func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.ListEntries(r.Context())
	if err != nil {
		s.logger.Error("history list failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

func (s *Server) handleHistoryDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.DeleteEntry(r.Context(), id); err != nil {
		s.respondError(w, http.StatusNotFound, "history entry not found")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleHistoryClear(w http.ResponseWriter, r *http.Request) {
	if err := s.store.ClearEntries(r.Context()); err != nil {
		s.logger.Error("history clear failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (s *Server) handlePreferencesGet(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.store.Preferences(r.Context())
	if err != nil {
		s.logger.Error("preferences load failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, prefs)
}

func (s *Server) handlePreferencesPut(w http.ResponseWriter, r *http.Request) {
	var prefs models.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if prefs.DefaultSummaryLength != "" && !prefs.DefaultSummaryLength.Valid() {
		s.respondError(w, http.StatusBadRequest, "invalid defaultSummaryLength")
		return
	}
	if err := s.store.SavePreferences(r.Context(), &prefs); err != nil {
		s.logger.Error("preferences save failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, &prefs)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondUploadError distinguishes the caller-enforced size limit from
// garden-variety bad requests.
func (s *Server) respondUploadError(w http.ResponseWriter, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		s.respondError(w, http.StatusRequestEntityTooLarge, "file exceeds the upload size limit")
		return
	}
	s.respondError(w, http.StatusBadRequest, "invalid upload")
}

// respondExtractionError maps the extraction taxonomy onto HTTP statuses.
// Messages come from the typed error, which carries a probable cause and a
// suggested remedy rather than parser internals.
func (s *Server) respondExtractionError(w http.ResponseWriter, err error) {
	switch extract.KindOf(err) {
	case extract.KindUnsupportedFormat:
		s.respondError(w, http.StatusUnsupportedMediaType, err.Error())
	case extract.KindCorruptedFile:
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
	case extract.KindTimeout:
		s.respondError(w, http.StatusGatewayTimeout, err.Error())
	default:
		s.logger.Error("extraction failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "extraction failed")
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
