package model

import "time"

// Status is the three-way verification label (plus the error terminal).
type Status string

const (
	StatusVerified          Status = "verified"
	StatusPartiallyVerified Status = "partially-verified"
	StatusUnverified        Status = "unverified"
	StatusError             Status = "error"
)

// Confidence labels how sure the engine is about a result.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// VerificationResult is produced once per verify() call. The calling
// layer may persist it; this core does not.
type VerificationResult struct {
	Query            string      `json:"query"`
	Status           Status      `json:"status"`
	CredibilityScore float64     `json:"credibility_score"` // Final 0-10 number for the result itself
	Confidence       Confidence  `json:"confidence"`
	Explanation      string      `json:"explanation"`
	Summary          string      `json:"summary"`
	OfficialSources  []SourceRef `json:"official_sources"`
	SourcesFound     int         `json:"sources_found"`
	ProcessingTimeMS int64       `json:"processing_time_ms"`
	Timestamp        time.Time   `json:"timestamp"`
	Method           string      `json:"method,omitempty"`          // Which path decided: rule, geographical, knowledge_base, search, llm, url_verification
	ExtractedTitle   string      `json:"extracted_title,omitempty"` // URL mode only
}
