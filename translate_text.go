package client

import (
	"context"
	"net/http"
	"net/url"
)

// TranslateText translates one or more texts in a single call. Unlike
// document translation this is a plain synchronous request.
func (c *client) TranslateText(ctx context.Context, texts []string, opts TranslationOptions) ([]TextTranslation, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyText
	}
	for _, text := range texts {
		if text == "" {
			return nil, ErrEmptyText
		}
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	const operation = "translate text"

	form := url.Values{}
	for _, text := range texts {
		form.Add("text", text)
	}
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

	type translateResponse struct {
		Translations []TextTranslation `json:"translations"`
	}

	result, err := executeWithRetry(ctx, c.retry(), operation,
		func(ctx context.Context) (*response, error) {
			return c.api.send(ctx, &request{
				method: http.MethodPost,
				path:   EndpointTranslate,
				form:   form,
			})
		},
		jsonClassifier[translateResponse](operation),
	)
	if err != nil {
		return nil, err
	}

	return result.Translations, nil
}
