package client

import (
	"context"
	"net/http"
	"net/url"
)

// GetSourceLanguages lists the languages documents can be translated from.
func (c *client) GetSourceLanguages(ctx context.Context) ([]Language, error) {
	return c.languages(ctx, "source")
}

// GetTargetLanguages lists the languages documents can be translated into.
func (c *client) GetTargetLanguages(ctx context.Context) ([]Language, error) {
	return c.languages(ctx, "target")
}

func (c *client) languages(ctx context.Context, kind string) ([]Language, error) {
	const operation = "get languages"

	query := url.Values{}
	query.Set("type", kind)

	result, err := executeWithRetry(ctx, c.retry(), operation,
		func(ctx context.Context) (*response, error) {
			return c.api.send(ctx, &request{
				method: http.MethodGet,
				path:   EndpointLanguages,
				query:  query,
			})
		},
		jsonClassifier[[]Language](operation),
	)
	if err != nil {
		return nil, err
	}

	return *result, nil
}
