package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-resty/resty/v2"
)

// request describes one HTTP call to the API. Bodies are kept as
// rebuildable values so a retried attempt can resend them.
type request struct {
	method string
	path   string
	query  url.Values
	form   url.Values
	accept string

	// file upload, sent as multipart together with form when set
	fileField string
	fileName  string
	fileData  []byte
}

// response is the structured outcome of one completed attempt. A nil
// response with a non-nil error means the attempt got nothing back at
// all (connection failure or per-attempt timeout); status codes are
// never interpreted here.
type response struct {
	status  int
	headers http.Header
	body    []byte
}

// transport issues exactly one attempt per call. Retrying is the retry
// policy's job, so the underlying resty retry machinery stays disabled.
type transport struct {
	resty *resty.Client
}

func (t *transport) send(ctx context.Context, req *request) (*response, error) {
	r := t.resty.R().SetContext(ctx)

	if len(req.query) > 0 {
		r.SetQueryParamsFromValues(req.query)
	}
	if req.accept != "" {
		r.SetHeader("Accept", req.accept)
	}
	if req.fileField != "" {
		// resty folds the form fields into the multipart body
		r.SetFileReader(req.fileField, req.fileName, bytes.NewReader(req.fileData))
	}
	if len(req.form) > 0 {
		r.SetFormDataFromValues(req.form)
	}

	resp, err := r.Execute(req.method, req.path)
	if err != nil {
		return nil, err
	}

	return &response{
		status:  resp.StatusCode(),
		headers: resp.Header(),
		body:    resp.Body(),
	}, nil
}

// serverMessage extracts the "message" field from an error response
// body, or returns the empty string when the body has none.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}
