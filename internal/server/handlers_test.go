package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/divyamb08/multilingual-summarizer/internal/config"
	"github.com/divyamb08/multilingual-summarizer/internal/extract"
	"github.com/divyamb08/multilingual-summarizer/internal/language"
	"github.com/divyamb08/multilingual-summarizer/internal/models"
	"github.com/divyamb08/multilingual-summarizer/internal/store"
	"github.com/divyamb08/multilingual-summarizer/internal/summarize"
)

type stubProvider struct {
	reply string
	err   error
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Complete(context.Context, string) (string, error) {
	return p.reply, p.err
}

func testServer(t *testing.T, provider summarize.Provider) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Upload.MaxBytes = 1 << 20
	st, err := store.Open(filepath.Join(t.TempDir(), "history.db"), 5)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	if provider == nil {
		provider = &stubProvider{reply: "stub summary"}
	}
	return NewServer(
		extract.NewExtractor(extract.Config{}, zap.NewNop()),
		language.New(0),
		summarize.NewService(provider, 0, zap.NewNop()),
		st,
		cfg,
		zap.NewNop(),
	)
}

// testRouter mounts the API routes without binding a listener.
func testRouter(s *Server) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/v1/extract", s.handleExtract)
	r.Post("/api/v1/summarize", s.handleSummarize)
	r.Post("/api/v1/detect", s.handleDetect)
	r.Get("/api/v1/history", s.handleHistoryList)
	r.Delete("/api/v1/history/{id}", s.handleHistoryDelete)
	r.Delete("/api/v1/history", s.handleHistoryClear)
	r.Get("/api/v1/preferences", s.handlePreferencesGet)
	r.Put("/api/v1/preferences", s.handlePreferencesPut)
	r.Get("/health", s.handleHealth)
	return r
}

func multipartUpload(t *testing.T, fieldName, fileName, mimeType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {`form-data; name="` + fieldName + `"; filename="` + fileName + `"`},
		"Content-Type":        {mimeType},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &body, w.FormDataContentType()
}

func TestHandleExtract(t *testing.T) {
	s := testServer(t, nil)
	body, contentType := multipartUpload(t, "file", "notes.txt", "text/plain", []byte("Hello from a text file"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	testRouter(s).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var result models.ExtractionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result.Text != "Hello from a text file" || result.Format != "TXT" || result.FileName != "notes.txt" {
		t.Errorf("result = %+v", result)
	}
}

func TestHandleExtract_unsupported(t *testing.T) {
	s := testServer(t, nil)
	body, contentType := multipartUpload(t, "file", "blob.bin", "application/octet-stream", []byte{0x00, 0x01, 0xff})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	testRouter(s).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "error") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestHandleExtract_corrupted(t *testing.T) {
	s := testServer(t, nil)
	body, contentType := multipartUpload(t, "file", "broken.docx", "", []byte("not a zip"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	testRouter(s).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleExtract_missingFileField(t *testing.T) {
	s := testServer(t, nil)
	body, contentType := multipartUpload(t, "wrong", "a.txt", "text/plain", []byte("x"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	testRouter(s).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHandleExtract_oversized(t *testing.T) {
	s := testServer(t, nil)
	s.config.Upload.MaxBytes = 100
	big := bytes.Repeat([]byte("a"), 2048)
	body, contentType := multipartUpload(t, "file", "big.txt", "text/plain", big)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	testRouter(s).ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHandleSummarize(t *testing.T) {
	s := testServer(t, &stubProvider{reply: "a fine summary"})
	payload := `{"content":"The committee reviewed the annual budget proposal and approved funding for the new library.","targetLanguage":"Spanish","summaryLength":"short"}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/summarize", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	testRouter(s).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp models.SummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Summary != "a fine summary" {
		t.Errorf("summary = %q", resp.Summary)
	}
	if resp.SourceLanguage != "English" {
		t.Errorf("auto-detected source = %q", resp.SourceLanguage)
	}
	if resp.HistoryID == "" {
		t.Error("history id not set")
	}

	// The summarization landed in history.
	entries, err := s.store.ListEntries(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Summary != "a fine summary" {
		t.Errorf("history = %+v", entries)
	}
}

func TestHandleSummarize_validation(t *testing.T) {
	s := testServer(t, nil)
	router := testRouter(s)
	for _, payload := range []string{
		`{`,
		`{"targetLanguage":"Spanish"}`,
		`{"content":"something"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/summarize", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("payload %q: status = %d", payload, rec.Code)
		}
	}
}

func TestHandleSummarize_providerFailure(t *testing.T) {
	s := testServer(t, &stubProvider{err: context.DeadlineExceeded})
	payload := `{"content":"Plenty of content for a real summarization request goes here.","targetLanguage":"French"}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/summarize", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	testRouter(s).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHandleDetect(t *testing.T) {
	s := testServer(t, nil)
	payload := `{"content":"The committee reviewed the annual budget proposal and approved the funding."}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/detect", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	testRouter(s).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["language"] != "English" {
		t.Errorf("language = %q", resp["language"])
	}
}

func TestHandleDetect_shortContent(t *testing.T) {
	s := testServer(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/detect", strings.NewReader(`{"content":"hi"}`))
	rec := httptest.NewRecorder()
	testRouter(s).ServeHTTP(rec, req)

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["language"] != language.Unknown {
		t.Errorf("language = %q", resp["language"])
	}
}

func TestHistoryEndpoints(t *testing.T) {
	s := testServer(t, nil)
	router := testRouter(s)
	ctx := context.Background()

	entry := &models.HistoryEntry{
		TargetLanguage: "German",
		SummaryLength:  models.LengthShort,
		Summary:        "kept",
	}
	if err := s.store.AddEntry(ctx, entry); err != nil {
		t.Fatal(err)
	}

	// List.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var listResp struct {
		Entries []*models.HistoryEntry `json:"entries"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listResp); err != nil {
		t.Fatal(err)
	}
	if len(listResp.Entries) != 1 || listResp.Entries[0].Summary != "kept" {
		t.Errorf("entries = %+v", listResp.Entries)
	}

	// Delete one.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/history/"+entry.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}

	// Delete missing.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/history/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("delete missing status = %d", rec.Code)
	}

	// Clear.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/history", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("clear status = %d", rec.Code)
	}
}

func TestPreferencesEndpoints(t *testing.T) {
	s := testServer(t, nil)
	router := testRouter(s)

	// Defaults before anything is saved.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/preferences", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var prefs models.Preferences
	if err := json.Unmarshal(rec.Body.Bytes(), &prefs); err != nil {
		t.Fatal(err)
	}
	if prefs.DefaultTargetLanguage != "" {
		t.Errorf("prefs = %+v", prefs)
	}

	// Save and read back.
	body := `{"defaultTargetLanguage":"Italian","defaultSummaryLength":"long","darkMode":true}`
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/v1/preferences", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/preferences", nil))
	if err := json.Unmarshal(rec.Body.Bytes(), &prefs); err != nil {
		t.Fatal(err)
	}
	if prefs.DefaultTargetLanguage != "Italian" || prefs.DefaultSummaryLength != models.LengthLong || !prefs.DarkMode {
		t.Errorf("prefs = %+v", prefs)
	}
}

func TestPreferencesPut_invalidLength(t *testing.T) {
	s := testServer(t, nil)
	body := `{"defaultSummaryLength":"gigantic"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/preferences", strings.NewReader(body))
	rec := httptest.NewRecorder()
	testRouter(s).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	s := testServer(t, nil)
	rec := httptest.NewRecorder()
	testRouter(s).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("body = %s", rec.Body.String())
	}
}
