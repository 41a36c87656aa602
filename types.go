package client

import "time"

// DocumentState enumerates the server-reported states of a document job.
type DocumentState string

const (
	DocumentStateQueued      DocumentState = "queued"
	DocumentStateTranslating DocumentState = "translating"
	DocumentStateDone        DocumentState = "done"
	DocumentStateError       DocumentState = "error"
)

// Formality enumerates the formality settings accepted by the server.
type Formality string

const (
	FormalityDefault    Formality = "default"
	FormalityMore       Formality = "more"
	FormalityLess       Formality = "less"
	FormalityPreferMore Formality = "prefer_more"
	FormalityPreferLess Formality = "prefer_less"
)

// LimitKind enumerates the usage limits the server enforces.
type LimitKind string

const (
	LimitCharacters    LimitKind = "character"
	LimitDocuments     LimitKind = "document"
	LimitTeamDocuments LimitKind = "team_document"
)

// DocumentHandle identifies a submitted document. The document key is a
// capability token required for every subsequent call on the document.
// Issued once by the server and never reused across documents.
type DocumentHandle struct {
	DocumentID  string `json:"document_id"`
	DocumentKey string `json:"document_key"`
}

// DocumentStatus is one status snapshot for a document job. Each poll
// produces a fresh snapshot that supersedes the previous one.
type DocumentStatus struct {
	DocumentID       string        `json:"document_id"`
	Status           DocumentState `json:"status"`
	SecondsRemaining *int          `json:"seconds_remaining,omitempty"`
	BilledCharacters *int64        `json:"billed_characters,omitempty"`
	ErrorMessage     string        `json:"error_message,omitempty"`
}

// Terminal reports whether the document has reached a final state.
func (s *DocumentStatus) Terminal() bool {
	return s.Status == DocumentStateDone || s.Status == DocumentStateError
}

// TranslationOptions configures one translation request. Immutable for
// the lifetime of a document job.
type TranslationOptions struct {
	SourceLang   string    // optional, server auto-detects when empty
	TargetLang   string    // required
	Formality    Formality // optional
	GlossaryID   string    // optional
	OutputFormat string    // optional, e.g. "docx" to convert on download
}

// Validate checks the options before any network activity.
func (o TranslationOptions) Validate() error {
	if o.TargetLang == "" {
		return &ValidationError{Field: "target_lang", Message: "target language is required"}
	}
	if o.SourceLang != "" && o.SourceLang == o.TargetLang {
		return &ValidationError{Field: "source_lang", Message: "source and target language must differ"}
	}
	return nil
}

// DocumentResult is the outcome of a completed document translation.
type DocumentResult struct {
	Content          []byte
	BilledCharacters int64
	Status           DocumentStatus
}

// TextTranslation is one translated text from a text translation call.
type TextTranslation struct {
	DetectedSourceLang string `json:"detected_source_language,omitempty"`
	Text               string `json:"text"`
}

// LimitUsage is the (used, max) pair for one limit kind.
type LimitUsage struct {
	Used int64
	Max  int64
}

// Exhausted reports whether the tracked limit leaves no headroom.
func (u LimitUsage) Exhausted() bool {
	return u.Max > 0 && u.Used >= u.Max
}

// Usage reports account usage as returned by the usage endpoint. A zero
// Max means the server did not report that limit for the account.
type Usage struct {
	Character    LimitUsage
	Document     LimitUsage
	TeamDocument LimitUsage
}

// Language describes one supported source or target language.
type Language struct {
	Code              string `json:"language"`
	Name              string `json:"name"`
	SupportsFormality bool   `json:"supports_formality,omitempty"`
}

// GlossaryInfo describes a stored glossary.
type GlossaryInfo struct {
	GlossaryID   string    `json:"glossary_id"`
	Name         string    `json:"name"`
	SourceLang   string    `json:"source_lang"`
	TargetLang   string    `json:"target_lang"`
	Ready        bool      `json:"ready"`
	EntryCount   int       `json:"entry_count"`
	CreationTime time.Time `json:"creation_time"`
}
