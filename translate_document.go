package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// TranslateDocument submits a document, waits for the server to finish
// translating it and downloads the result. Each call owns one job end
// to end; partial progress is not resumable across calls. Multiple
// calls for different documents run concurrently and independently.
func (c *client) TranslateDocument(ctx context.Context, filename string, content []byte, opts TranslationOptions) (*DocumentResult, error) {
	job, err := newDocumentJob(c, filename, content, opts)
	if err != nil {
		return nil, err
	}

	if err := c.quota.checkBeforeSubmit(int64(len(content))); err != nil {
		return nil, err
	}

	if err := job.upload(ctx); err != nil {
		return nil, err
	}

	status, err := c.poller().run(ctx, job)
	if err != nil {
		return nil, withDocumentContext(job, err)
	}

	translated, err := job.download(ctx)
	if err != nil {
		return nil, withDocumentContext(job, err)
	}

	result := &DocumentResult{Content: translated, Status: *status}
	if status.BilledCharacters != nil {
		result.BilledCharacters = *status.BilledCharacters
		c.quota.consume(LimitCharacters, *status.BilledCharacters)
	}
	c.quota.consume(LimitDocuments, 1)
	c.quota.consume(LimitTeamDocuments, 1)

	c.logger.Debug().
		Str("document_id", job.handle.DocumentID).
		Int64("billed_characters", result.BilledCharacters).
		Msg("document translation finished")

	return result, nil
}

// TranslateDocumentFrom reads the whole document from r and translates
// it. The filename hints the server at the document format.
func (c *client) TranslateDocumentFrom(ctx context.Context, filename string, r io.Reader, opts TranslationOptions) (*DocumentResult, error) {
	if r == nil {
		return nil, ErrNilReader
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return c.TranslateDocument(ctx, filename, content, opts)
}

// TranslateDocumentFile translates the document at inputPath and writes
// the result to outputPath.
func (c *client) TranslateDocumentFile(ctx context.Context, inputPath, outputPath string, opts TranslationOptions) (*DocumentResult, error) {
	content, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	result, err := c.TranslateDocument(ctx, filepath.Base(inputPath), content, opts)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(outputPath, result.Content, 0o644); err != nil {
		return nil, fmt.Errorf("write translated document: %w", err)
	}
	return result, nil
}

// withDocumentContext annotates an error with the document id once a
// handle exists. The error's type is never changed, only wrapped.
func withDocumentContext(job *documentJob, err error) error {
	if job.handle.DocumentID == "" {
		return err
	}
	switch err.(type) {
	case *DocumentTranslationError:
		return err // already carries the document id
	default:
		return fmt.Errorf("document %s: %w", job.handle.DocumentID, err)
	}
}
