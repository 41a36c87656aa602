package client

import (
	"context"
	"errors"
	"testing"
)

func TestTranslateText(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	c := newTestClient(t, server.URL, newTestSession())

	translations, err := c.TranslateText(context.Background(), []string{"Hello", "World"}, docOpts)
	if err != nil {
		t.Fatalf("TranslateText: %v", err)
	}
	if len(translations) != 2 {
		t.Fatalf("translations = %d, want 2", len(translations))
	}
	if want := string(mockTranslate([]byte("Hello"), "DE")); translations[0].Text != want {
		t.Errorf("text = %q, want %q", translations[0].Text, want)
	}
	if translations[0].DetectedSourceLang == "" {
		t.Error("detected source language missing")
	}
}

func TestTranslateTextValidation(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	c := newTestClient(t, server.URL, newTestSession())
	ctx := context.Background()

	if _, err := c.TranslateText(ctx, nil, docOpts); !errors.Is(err, ErrEmptyText) {
		t.Errorf("no texts: %v", err)
	}
	if _, err := c.TranslateText(ctx, []string{""}, docOpts); !errors.Is(err, ErrEmptyText) {
		t.Errorf("empty text: %v", err)
	}

	var verr *ValidationError
	if _, err := c.TranslateText(ctx, []string{"hi"}, TranslationOptions{}); !errors.As(err, &verr) {
		t.Errorf("missing target language: %v", err)
	}
}
