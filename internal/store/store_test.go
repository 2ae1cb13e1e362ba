package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/divyamb08/multilingual-summarizer/internal/models"
)

func testStore(t *testing.T, maxEntries int) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"), maxEntries)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func entry(i int, date time.Time) *models.HistoryEntry {
	return &models.HistoryEntry{
		Date:           date,
		SourceLanguage: "English",
		TargetLanguage: "Spanish",
		SummaryLength:  models.LengthMedium,
		ContentPreview: fmt.Sprintf("preview %d", i),
		Summary:        fmt.Sprintf("summary %d", i),
		SourceType:     "file",
		FileName:       fmt.Sprintf("doc%d.txt", i),
	}
}

func TestAddEntry_assignsIDAndDate(t *testing.T) {
	s := testStore(t, 0)
	e := &models.HistoryEntry{
		TargetLanguage: "French",
		SummaryLength:  models.LengthShort,
		Summary:        "a summary",
	}
	if err := s.AddEntry(context.Background(), e); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if e.ID == "" {
		t.Error("ID not assigned")
	}
	if e.Date.IsZero() {
		t.Error("Date not assigned")
	}
}

func TestListEntries_newestFirst(t *testing.T) {
	s := testStore(t, 0)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if err := s.AddEntry(ctx, entry(i, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.ListEntries(ctx)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("entries = %d", len(got))
	}
	for i, want := range []string{"summary 2", "summary 1", "summary 0"} {
		if got[i].Summary != want {
			t.Errorf("entry %d = %q, want %q", i, got[i].Summary, want)
		}
	}
}

func TestListEntries_roundtripFields(t *testing.T) {
	s := testStore(t, 0)
	ctx := context.Background()
	in := entry(7, time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC))
	if err := s.AddEntry(ctx, in); err != nil {
		t.Fatal(err)
	}

	got, err := s.ListEntries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("entries = %d", len(got))
	}
	e := got[0]
	if e.ID != in.ID || e.SourceLanguage != "English" || e.TargetLanguage != "Spanish" ||
		e.SummaryLength != models.LengthMedium || e.ContentPreview != "preview 7" ||
		e.Summary != "summary 7" || e.SourceType != "file" || e.FileName != "doc7.txt" {
		t.Errorf("roundtrip mismatch: %+v", e)
	}
}

func TestAddEntry_prunesOldest(t *testing.T) {
	s := testStore(t, 5)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 8; i++ {
		if err := s.AddEntry(ctx, entry(i, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.ListEntries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 5 {
		t.Fatalf("entries after pruning = %d, want 5", len(got))
	}
	if got[0].Summary != "summary 7" || got[4].Summary != "summary 3" {
		t.Errorf("wrong survivors: first %q, last %q", got[0].Summary, got[4].Summary)
	}
}

func TestDeleteEntry(t *testing.T) {
	s := testStore(t, 0)
	ctx := context.Background()
	e := entry(1, time.Now())
	if err := s.AddEntry(ctx, e); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteEntry(ctx, e.ID); err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}
	got, err := s.ListEntries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("entries = %d after delete", len(got))
	}
}

func TestDeleteEntry_missing(t *testing.T) {
	s := testStore(t, 0)
	if err := s.DeleteEntry(context.Background(), "no-such-id"); err == nil {
		t.Fatal("want error for unknown id")
	}
}

func TestClearEntries(t *testing.T) {
	s := testStore(t, 0)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := s.AddEntry(ctx, entry(i, time.Now())); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.ClearEntries(ctx); err != nil {
		t.Fatalf("ClearEntries: %v", err)
	}
	got, err := s.ListEntries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("entries = %d after clear", len(got))
	}
}

func TestPreferences_defaultWhenUnset(t *testing.T) {
	s := testStore(t, 0)
	prefs, err := s.Preferences(context.Background())
	if err != nil {
		t.Fatalf("Preferences: %v", err)
	}
	if prefs.DefaultTargetLanguage != "" || prefs.DefaultSummaryLength != "" || prefs.DarkMode {
		t.Errorf("want zero-value prefs, got %+v", prefs)
	}
}

func TestPreferences_roundtrip(t *testing.T) {
	s := testStore(t, 0)
	ctx := context.Background()
	in := &models.Preferences{
		DefaultTargetLanguage: "Japanese",
		DefaultSummaryLength:  models.LengthLong,
		DarkMode:              true,
	}
	if err := s.SavePreferences(ctx, in); err != nil {
		t.Fatalf("SavePreferences: %v", err)
	}
	got, err := s.Preferences(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *in {
		t.Errorf("got %+v, want %+v", got, in)
	}

	// Saving again overwrites, not duplicates.
	in.DarkMode = false
	if err := s.SavePreferences(ctx, in); err != nil {
		t.Fatal(err)
	}
	got, err = s.Preferences(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.DarkMode {
		t.Error("update did not overwrite")
	}
}

func TestOpen_createsParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	s, err := Open(path, 0)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	if err := s.AddEntry(context.Background(), entry(0, time.Now())); err != nil {
		t.Errorf("AddEntry: %v", err)
	}
}
