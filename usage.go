package client

import (
	"context"
	"net/http"
)

// GetUsage fetches account usage and limits. The result also refreshes
// the local quota pre-check state, the server being ground truth.
func (c *client) GetUsage(ctx context.Context) (*Usage, error) {
	const operation = "get usage"

	type usageResponse struct {
		CharacterCount    int64 `json:"character_count"`
		CharacterLimit    int64 `json:"character_limit"`
		DocumentCount     int64 `json:"document_count"`
		DocumentLimit     int64 `json:"document_limit"`
		TeamDocumentCount int64 `json:"team_document_count"`
		TeamDocumentLimit int64 `json:"team_document_limit"`
	}

	raw, err := executeWithRetry(ctx, c.retry(), operation,
		func(ctx context.Context) (*response, error) {
			return c.api.send(ctx, &request{
				method: http.MethodGet,
				path:   EndpointUsage,
			})
		},
		jsonClassifier[usageResponse](operation),
	)
	if err != nil {
		return nil, err
	}

	usage := &Usage{
		Character:    LimitUsage{Used: raw.CharacterCount, Max: raw.CharacterLimit},
		Document:     LimitUsage{Used: raw.DocumentCount, Max: raw.DocumentLimit},
		TeamDocument: LimitUsage{Used: raw.TeamDocumentCount, Max: raw.TeamDocumentLimit},
	}

	if usage.Character.Max > 0 {
		c.quota.updateFromServer(LimitCharacters, usage.Character.Used, usage.Character.Max)
	}
	if usage.Document.Max > 0 {
		c.quota.updateFromServer(LimitDocuments, usage.Document.Used, usage.Document.Max)
	}
	if usage.TeamDocument.Max > 0 {
		c.quota.updateFromServer(LimitTeamDocuments, usage.TeamDocument.Used, usage.TeamDocument.Max)
	}

	return usage, nil
}
