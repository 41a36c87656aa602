package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// CreateGlossary stores a glossary of exact source→target term pairs
// for use in later translation calls.
func (c *client) CreateGlossary(ctx context.Context, name, sourceLang, targetLang string, entries map[string]string) (*GlossaryInfo, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Field: "name", Message: "glossary name is required"}
	}
	if sourceLang == "" || targetLang == "" {
		return nil, &ValidationError{Field: "language", Message: "source and target language are required"}
	}
	if len(entries) == 0 {
		return nil, ErrEmptyEntries
	}

	const operation = "create glossary"

	form := url.Values{}
	form.Set("name", name)
	form.Set("source_lang", sourceLang)
	form.Set("target_lang", targetLang)
	form.Set("entries", encodeGlossaryTSV(entries))
	form.Set("entries_format", "tsv")

	return executeWithRetry(ctx, c.retry(), operation,
		func(ctx context.Context) (*response, error) {
			return c.api.send(ctx, &request{
				method: http.MethodPost,
				path:   EndpointGlossaries,
				form:   form,
			})
		},
		jsonClassifier[GlossaryInfo](operation),
	)
}

// GetGlossary fetches metadata for one glossary.
func (c *client) GetGlossary(ctx context.Context, glossaryID string) (*GlossaryInfo, error) {
	if glossaryID == "" {
		return nil, ErrEmptyGlossaryID
	}

	const operation = "get glossary"

	return executeWithRetry(ctx, c.retry(), operation,
		func(ctx context.Context) (*response, error) {
			return c.api.send(ctx, &request{
				method: http.MethodGet,
				path:   glossaryPath(glossaryID),
			})
		},
		jsonClassifier[GlossaryInfo](operation),
	)
}

// ListGlossaries lists all glossaries stored for the account.
func (c *client) ListGlossaries(ctx context.Context) ([]GlossaryInfo, error) {
	const operation = "list glossaries"

	type listResponse struct {
		Glossaries []GlossaryInfo `json:"glossaries"`
	}

	result, err := executeWithRetry(ctx, c.retry(), operation,
		func(ctx context.Context) (*response, error) {
			return c.api.send(ctx, &request{
				method: http.MethodGet,
				path:   EndpointGlossaries,
			})
		},
		jsonClassifier[listResponse](operation),
	)
	if err != nil {
		return nil, err
	}

	return result.Glossaries, nil
}

// GetGlossaryEntries fetches the term pairs of one glossary.
func (c *client) GetGlossaryEntries(ctx context.Context, glossaryID string) (map[string]string, error) {
	if glossaryID == "" {
		return nil, ErrEmptyGlossaryID
	}

	const operation = "get glossary entries"

	body, err := executeWithRetry(ctx, c.retry(), operation,
		func(ctx context.Context) (*response, error) {
			return c.api.send(ctx, &request{
				method: http.MethodGet,
				path:   glossaryEntriesPath(glossaryID),
				accept: "text/tab-separated-values",
			})
		},
		rawClassifier(operation),
	)
	if err != nil {
		return nil, err
	}

	return decodeGlossaryTSV(string(*body))
}

// DeleteGlossary removes a glossary. Translations already submitted
// with it are unaffected.
func (c *client) DeleteGlossary(ctx context.Context, glossaryID string) error {
	if glossaryID == "" {
		return ErrEmptyGlossaryID
	}

	const operation = "delete glossary"

	_, err := executeWithRetry(ctx, c.retry(), operation,
		func(ctx context.Context) (*response, error) {
			return c.api.send(ctx, &request{
				method: http.MethodDelete,
				path:   glossaryPath(glossaryID),
			})
		},
		rawClassifier(operation),
	)
	return err
}

func encodeGlossaryTSV(entries map[string]string) string {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(key)
		b.WriteByte('\t')
		b.WriteString(entries[key])
	}
	return b.String()
}

func decodeGlossaryTSV(body string) (map[string]string, error) {
	entries := make(map[string]string)
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		source, target, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("malformed glossary entry %q", line)
		}
		entries[source] = target
	}
	return entries, nil
}
