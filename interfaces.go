package client

import (
	"context"
	"io"
)

// Info provides metadata about the client
type Info interface {
	Name() string
	Version() string
}

// TextTranslator handles plain-text translation calls
type TextTranslator interface {
	TranslateText(ctx context.Context, texts []string, opts TranslationOptions) ([]TextTranslation, error)
}

// DocumentTranslator handles the asynchronous document lifecycle
type DocumentTranslator interface {
	TranslateDocument(ctx context.Context, filename string, content []byte, opts TranslationOptions) (*DocumentResult, error)
	TranslateDocumentFrom(ctx context.Context, filename string, r io.Reader, opts TranslationOptions) (*DocumentResult, error)
	TranslateDocumentFile(ctx context.Context, inputPath, outputPath string, opts TranslationOptions) (*DocumentResult, error)
	UploadDocument(ctx context.Context, filename string, content []byte, opts TranslationOptions) (*DocumentHandle, error)
	GetDocumentStatus(ctx context.Context, handle DocumentHandle) (*DocumentStatus, error)
	DownloadDocument(ctx context.Context, handle DocumentHandle) ([]byte, error)
	DownloadDocumentTo(ctx context.Context, handle DocumentHandle, dst io.Writer) error
}

// GlossaryManager handles glossary CRUD operations
type GlossaryManager interface {
	CreateGlossary(ctx context.Context, name, sourceLang, targetLang string, entries map[string]string) (*GlossaryInfo, error)
	GetGlossary(ctx context.Context, glossaryID string) (*GlossaryInfo, error)
	ListGlossaries(ctx context.Context) ([]GlossaryInfo, error)
	GetGlossaryEntries(ctx context.Context, glossaryID string) (map[string]string, error)
	DeleteGlossary(ctx context.Context, glossaryID string) error
}

// LanguageLister reports the language pairs the server supports
type LanguageLister interface {
	GetSourceLanguages(ctx context.Context) ([]Language, error)
	GetTargetLanguages(ctx context.Context) ([]Language, error)
}

// UsageReporter reports account usage and limits
type UsageReporter interface {
	GetUsage(ctx context.Context) (*Usage, error)
}

// Client combines all translation service operations
type Client interface {
	Info
	TextTranslator
	DocumentTranslator
	GlossaryManager
	LanguageLister
	UsageReporter
}
