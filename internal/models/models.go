// Package models defines core data structures for uploads, extraction
// results, summaries, and the history/preferences store.
package models

import "time"

// RawFile is an uploaded file handed to the extraction pipeline: the raw
// bytes plus whatever the client declared about them. It is read-only; the
// pipeline never mutates the buffer.
type RawFile struct {
	Data     []byte
	MIMEType string
	FileName string
	Size     int64
}

// ExtractionResult is the outcome of extracting one file. Text is always
// populated: extractors that cannot raise (PDF, legacy DOC) put a descriptive
// message there instead of failing.
type ExtractionResult struct {
	Text     string `json:"text"`
	Format   string `json:"format"`
	FileName string `json:"fileName"`
}

// SummaryLength selects how long a generated summary should be.
type SummaryLength string

const (
	LengthShort  SummaryLength = "short"
	LengthMedium SummaryLength = "medium"
	LengthLong   SummaryLength = "long"
)

// Valid reports whether l is one of the supported lengths.
func (l SummaryLength) Valid() bool {
	switch l {
	case LengthShort, LengthMedium, LengthLong:
		return true
	}
	return false
}

// SummaryRequest is the input to the summarization pipeline.
type SummaryRequest struct {
	Content        string        `json:"content"`
	TargetLanguage string        `json:"targetLanguage"`
	SummaryLength  SummaryLength `json:"summaryLength"`
	SourceLanguage string        `json:"sourceLanguage,omitempty"`
	SourceType     string        `json:"sourceType,omitempty"`
	FileName       string        `json:"fileName,omitempty"`
}

// SummaryResponse is what the summarize endpoint returns on success.
type SummaryResponse struct {
	Summary        string `json:"summary"`
	SourceLanguage string `json:"sourceLanguage,omitempty"`
	HistoryID      string `json:"historyId,omitempty"`
}

// HistoryEntry is one recorded summarization, newest first in listings.
type HistoryEntry struct {
	ID             string        `json:"id"`
	Date           time.Time     `json:"date"`
	SourceLanguage string        `json:"sourceLanguage"`
	TargetLanguage string        `json:"targetLanguage"`
	SummaryLength  SummaryLength `json:"summaryLength"`
	ContentPreview string        `json:"contentPreview"`
	Summary        string        `json:"summary"`
	SourceType     string        `json:"sourceType"`
	FileName       string        `json:"fileName,omitempty"`
}

// Preferences holds the user's persisted defaults.
type Preferences struct {
	DefaultTargetLanguage string        `json:"defaultTargetLanguage"`
	DefaultSummaryLength  SummaryLength `json:"defaultSummaryLength"`
	DarkMode              bool          `json:"darkMode"`
}
