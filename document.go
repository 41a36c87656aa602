package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// jobPhase is the client-side lifecycle of one document submission.
type jobPhase int

const (
	phaseCreated jobPhase = iota
	phaseUploading
	phaseQueued
	phaseTranslating
	phaseDone
	phaseError
)

func (p jobPhase) String() string {
	switch p {
	case phaseCreated:
		return "created"
	case phaseUploading:
		return "uploading"
	case phaseQueued:
		return "queued"
	case phaseTranslating:
		return "translating"
	case phaseDone:
		return "done"
	case phaseError:
		return "error"
	default:
		return "unknown"
	}
}

func (p jobPhase) terminal() bool {
	return p == phaseDone || p == phaseError
}

// jobEvent is one observed transition trigger for a document job.
type jobEvent int

const (
	eventBeginUpload jobEvent = iota
	eventUploaded
	eventStatusQueued
	eventStatusTranslating
	eventStatusDone
	eventStatusError
	eventFailed
)

// nextPhase is the pure transition function of the job state machine.
// Terminal phases admit no transitions at all; eventFailed is accepted
// from every non-terminal phase.
func nextPhase(phase jobPhase, event jobEvent) (jobPhase, error) {
	if phase.terminal() {
		return phase, fmt.Errorf("document job already %s", phase)
	}
	if event == eventFailed {
		return phaseError, nil
	}

	switch phase {
	case phaseCreated:
		if event == eventBeginUpload {
			return phaseUploading, nil
		}
	case phaseUploading:
		if event == eventUploaded {
			return phaseQueued, nil
		}
	case phaseQueued, phaseTranslating:
		switch event {
		case eventStatusQueued:
			return phaseQueued, nil
		case eventStatusTranslating:
			return phaseTranslating, nil
		case eventStatusDone:
			return phaseDone, nil
		case eventStatusError:
			return phaseError, nil
		}
	}

	return phase, fmt.Errorf("invalid transition from %s on event %d", phase, int(event))
}

func statusEvent(state DocumentState) (jobEvent, error) {
	switch state {
	case DocumentStateQueued:
		return eventStatusQueued, nil
	case DocumentStateTranslating:
		return eventStatusTranslating, nil
	case DocumentStateDone:
		return eventStatusDone, nil
	case DocumentStateError:
		return eventStatusError, nil
	default:
		return eventFailed, fmt.Errorf("unknown document status %q", state)
	}
}

// documentJob owns one document's end-to-end lifecycle: upload, status
// polling, result download. Not safe for concurrent use; each
// TranslateDocument call drives exactly one job.
type documentJob struct {
	client   *client
	filename string
	content  []byte
	opts     TranslationOptions

	phase  jobPhase
	handle DocumentHandle
	last   DocumentStatus // latest snapshot only, superseded on each poll
	err    error          // terminal error, set once and never overwritten
}

func newDocumentJob(c *client, filename string, content []byte, opts TranslationOptions) (*documentJob, error) {
	if len(content) == 0 {
		return nil, ErrEmptyDocument
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &documentJob{
		client:   c,
		filename: filename,
		content:  content,
		opts:     opts,
		phase:    phaseCreated,
	}, nil
}

// fail records the terminating error and moves the job to its error
// phase. The first recorded error wins.
func (j *documentJob) fail(err error) {
	if j.err == nil {
		j.err = err
	}
	if !j.phase.terminal() {
		j.phase = phaseError
	}
}

// upload submits the document and captures its handle. One retried
// upload call; a fatal failure ends the whole job.
func (j *documentJob) upload(ctx context.Context) error {
	phase, err := nextPhase(j.phase, eventBeginUpload)
	if err != nil {
		return err
	}
	j.phase = phase

	handle, err := j.client.uploadDocument(ctx, j.filename, j.content, j.opts)
	if err != nil {
		j.fail(err)
		return err
	}

	if phase, err = nextPhase(j.phase, eventUploaded); err != nil {
		j.fail(err)
		return err
	}
	j.handle = *handle
	j.phase = phase
	j.client.logger.Debug().
		Str("document_id", handle.DocumentID).
		Str("filename", j.filename).
		Msg("document uploaded")
	return nil
}

// poll issues one status call and applies the snapshot to the state
// machine. Must not be called after a terminal status was observed.
func (j *documentJob) poll(ctx context.Context) (*DocumentStatus, error) {
	if j.phase.terminal() {
		return nil, fmt.Errorf("document job already %s", j.phase)
	}

	status, err := j.client.GetDocumentStatus(ctx, j.handle)
	if err != nil {
		j.fail(err)
		return nil, err
	}

	event, err := statusEvent(status.Status)
	if err != nil {
		j.fail(err)
		return nil, err
	}
	phase, err := nextPhase(j.phase, event)
	if err != nil {
		j.fail(err)
		return nil, err
	}

	j.phase = phase
	j.last = *status

	if status.Status == DocumentStateError {
		terr := &DocumentTranslationError{DocumentID: j.handle.DocumentID, Message: status.ErrorMessage}
		j.err = terr
		return nil, terr
	}
	return status, nil
}

// download fetches the translated result. Valid only from the done
// phase; idempotent, the server retains the result until the document
// expires.
func (j *documentJob) download(ctx context.Context) ([]byte, error) {
	if j.phase != phaseDone {
		return nil, fmt.Errorf("document job is %s, result is only available when done", j.phase)
	}
	return j.client.DownloadDocument(ctx, j.handle)
}

// uploadDocument performs the retried upload call and returns the
// server-issued handle.
func (c *client) uploadDocument(ctx context.Context, filename string, content []byte, opts TranslationOptions) (*DocumentHandle, error) {
	const operation = "upload document"

	form := url.Values{}
	form.Set("target_lang", opts.TargetLang)
	if opts.SourceLang != "" {
		form.Set("source_lang", opts.SourceLang)
	}
	if opts.Formality != "" {
		form.Set("formality", string(opts.Formality))
	}
	if opts.GlossaryID != "" {
		form.Set("glossary_id", opts.GlossaryID)
	}
	if opts.OutputFormat != "" {
		form.Set("output_format", opts.OutputFormat)
	}
	if filename == "" {
		filename = "document"
	}

	return executeWithRetry(ctx, c.retry(), operation,
		func(ctx context.Context) (*response, error) {
			return c.api.send(ctx, &request{
				method:    http.MethodPost,
				path:      EndpointDocument,
				form:      form,
				fileField: "file",
				fileName:  filename,
				fileData:  content,
			})
		},
		jsonClassifier[DocumentHandle](operation),
	)
}

// GetDocumentStatus fetches the current status snapshot for a submitted
// document.
func (c *client) GetDocumentStatus(ctx context.Context, handle DocumentHandle) (*DocumentStatus, error) {
	if handle.DocumentID == "" {
		return nil, ErrEmptyDocumentID
	}
	if handle.DocumentKey == "" {
		return nil, ErrEmptyDocumentKey
	}

	const operation = "get document status"
	query := url.Values{}
	query.Set("document_key", handle.DocumentKey)

	return executeWithRetry(ctx, c.retry(), operation,
		func(ctx context.Context) (*response, error) {
			return c.api.send(ctx, &request{
				method: http.MethodGet,
				path:   documentStatusPath(handle.DocumentID),
				query:  query,
			})
		},
		jsonClassifier[DocumentStatus](operation),
	)
}

// DownloadDocument fetches the translated document. Repeatable while
// the document is done server-side; every call returns the same bytes.
func (c *client) DownloadDocument(ctx context.Context, handle DocumentHandle) ([]byte, error) {
	if handle.DocumentID == "" {
		return nil, ErrEmptyDocumentID
	}
	if handle.DocumentKey == "" {
		return nil, ErrEmptyDocumentKey
	}

	const operation = "download document"
	query := url.Values{}
	query.Set("document_key", handle.DocumentKey)

	body, err := executeWithRetry(ctx, c.retry(), operation,
		func(ctx context.Context) (*response, error) {
			return c.transfer.send(ctx, &request{
				method: http.MethodGet,
				path:   documentResultPath(handle.DocumentID),
				query:  query,
			})
		},
		rawClassifier(operation),
	)
	if err != nil {
		return nil, err
	}
	return *body, nil
}

// DownloadDocumentTo streams the translated document into dst.
func (c *client) DownloadDocumentTo(ctx context.Context, handle DocumentHandle, dst io.Writer) error {
	if dst == nil {
		return ErrNilWriter
	}

	data, err := c.DownloadDocument(ctx, handle)
	if err != nil {
		return err
	}
	_, err = dst.Write(data)
	return err
}

// UploadDocument submits a document without waiting for translation.
// Callers that want the full managed lifecycle use TranslateDocument.
func (c *client) UploadDocument(ctx context.Context, filename string, content []byte, opts TranslationOptions) (*DocumentHandle, error) {
	if len(content) == 0 {
		return nil, ErrEmptyDocument
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return c.uploadDocument(ctx, filename, content, opts)
}
