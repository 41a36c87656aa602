package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

const (
	testAuthKey = "test-auth-key"

	mockSessionHeader = "x-lingua-session"

	// Fault injection knobs, read once when a session is first seen.
	mockHeader429Count        = "mock-session-429-count"
	mockHeaderNoResponseCount = "mock-session-no-response-count"
	mockHeaderDocFailure      = "mock-session-doc-failure"
	mockHeaderQueuePolls      = "mock-session-doc-queue-polls"
	mockHeaderTranslatePolls  = "mock-session-doc-translate-polls"
	mockHeaderCharacterLimit  = "mock-session-init-character-limit"
	mockHeaderDocumentLimit   = "mock-session-init-document-limit"

	defaultCharacterLimit = int64(20_000_000)
	defaultDocumentLimit  = int64(10_000)
)

// mockTranslate is the server's deterministic translation function;
// tests recompute it to check downloaded content.
func mockTranslate(content []byte, targetLang string) []byte {
	return []byte(strings.ToLower(targetLang) + ":" + string(content))
}

type mockDocument struct {
	id            string
	key           string
	content       []byte
	targetLang    string
	queuePolls    int
	translating   int
	failed        bool
	polls         int
	billed        int64
	billedApplied bool
}

type mockGlossary struct {
	info    GlossaryInfo
	entries map[string]string
}

type mockSession struct {
	reject429    int
	noResponse   int
	docFailures  int
	queuePolls   int
	translPolls  int
	charLimit    int64
	docLimit     int64
	usedChars    int64
	docCount     int64
	requestCount map[string]int
}

// mockServer simulates the translation API with per-session fault
// injection, the way the hosted test double behaves.
type mockServer struct {
	*httptest.Server

	mu         sync.Mutex
	sessions   map[string]*mockSession
	documents  map[string]*mockDocument
	glossaries map[string]*mockGlossary
}

func newMockServer() *mockServer {
	s := &mockServer{
		sessions:   make(map[string]*mockSession),
		documents:  make(map[string]*mockDocument),
		glossaries: make(map[string]*mockGlossary),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+EndpointTranslate, s.handleTranslate)
	mux.HandleFunc("POST "+EndpointDocument, s.handleUpload)
	mux.HandleFunc("GET "+EndpointDocument+"/{id}", s.handleStatus)
	mux.HandleFunc("GET "+EndpointDocument+"/{id}/result", s.handleResult)
	mux.HandleFunc("GET "+EndpointUsage, s.handleUsage)
	mux.HandleFunc("GET "+EndpointLanguages, s.handleLanguages)
	mux.HandleFunc("POST "+EndpointGlossaries, s.handleGlossaryCreate)
	mux.HandleFunc("GET "+EndpointGlossaries, s.handleGlossaryList)
	mux.HandleFunc("GET "+EndpointGlossaries+"/{id}", s.handleGlossaryGet)
	mux.HandleFunc("GET "+EndpointGlossaries+"/{id}/entries", s.handleGlossaryEntries)
	mux.HandleFunc("DELETE "+EndpointGlossaries+"/{id}", s.handleGlossaryDelete)

	s.Server = httptest.NewServer(s.intercept(mux))
	return s
}

func (s *mockServer) session(r *http.Request) *mockSession {
	id := r.Header.Get(mockSessionHeader)
	if id == "" {
		id = "default"
	}

	sess, ok := s.sessions[id]
	if !ok {
		sess = &mockSession{
			charLimit:    headerInt64(r, mockHeaderCharacterLimit, defaultCharacterLimit),
			docLimit:     headerInt64(r, mockHeaderDocumentLimit, defaultDocumentLimit),
			reject429:    headerInt(r, mockHeader429Count),
			noResponse:   headerInt(r, mockHeaderNoResponseCount),
			docFailures:  headerInt(r, mockHeaderDocFailure),
			queuePolls:   headerInt(r, mockHeaderQueuePolls),
			translPolls:  headerInt(r, mockHeaderTranslatePolls),
			requestCount: make(map[string]int),
		}
		s.sessions[id] = sess
	}
	return sess
}

func headerInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(r.Header.Get(key))
	return n
}

func headerInt64(r *http.Request, key string, fallback int64) int64 {
	value := r.Header.Get(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

// requests reports how many requests a session issued to a path.
func (s *mockServer) requests(sessionID, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return 0
	}
	return sess.requestCount[path]
}

// intercept applies session bookkeeping and fault injection before any
// endpoint logic runs.
func (s *mockServer) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		sess := s.session(r)
		sess.requestCount[r.URL.Path]++

		if sess.noResponse > 0 {
			sess.noResponse--
			s.mu.Unlock()
			dropConnection(w)
			return
		}
		if sess.reject429 > 0 {
			sess.reject429--
			s.mu.Unlock()
			writeError(w, http.StatusTooManyRequests, "too many requests, retry later")
			return
		}
		s.mu.Unlock()

		if r.Header.Get("Authorization") != authKeyScheme+" "+testAuthKey {
			writeError(w, http.StatusForbidden, "invalid auth key")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// dropConnection simulates a server that never answers by killing the
// TCP connection, which the client sees as a connectivity failure.
func dropConnection(w http.ResponseWriter) {
	hj, ok := w.(http.Hijacker)
	if !ok {
		panic("mock server: response writer does not support hijacking")
	}
	conn, _, err := hj.Hijack()
	if err != nil {
		panic(fmt.Sprintf("mock server: hijack failed: %v", err))
	}
	conn.Close()
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *mockServer) handleTranslate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed form")
		return
	}
	texts := r.PostForm["text"]
	targetLang := r.PostFormValue("target_lang")
	if len(texts) == 0 || targetLang == "" {
		writeError(w, http.StatusBadRequest, "text and target_lang are required")
		return
	}

	translations := make([]TextTranslation, 0, len(texts))
	var billed int64
	for _, text := range texts {
		translations = append(translations, TextTranslation{
			DetectedSourceLang: "EN",
			Text:               string(mockTranslate([]byte(text), targetLang)),
		})
		billed += int64(len(text))
	}

	s.mu.Lock()
	s.session(r).usedChars += billed
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"translations": translations})
}

func (s *mockServer) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "expected multipart upload")
		return
	}
	targetLang := r.FormValue("target_lang")
	if targetLang == "" {
		writeError(w, http.StatusBadRequest, "target_lang is required")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable file")
		return
	}

	s.mu.Lock()
	sess := s.session(r)
	if sess.usedChars+int64(len(content)) > sess.charLimit || sess.docCount >= sess.docLimit {
		s.mu.Unlock()
		writeError(w, StatusQuotaExceeded, "quota for this billing period has been exceeded")
		return
	}

	doc := &mockDocument{
		id:          uuid.NewString(),
		key:         uuid.NewString(),
		content:     content,
		targetLang:  targetLang,
		queuePolls:  sess.queuePolls,
		translating: sess.translPolls,
		billed:      int64(len(content)),
	}
	if sess.docFailures > 0 {
		sess.docFailures--
		doc.failed = true
	}
	s.documents[doc.id] = doc
	sess.docCount++
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, DocumentHandle{DocumentID: doc.id, DocumentKey: doc.key})
}

func (s *mockServer) document(w http.ResponseWriter, r *http.Request) *mockDocument {
	s.mu.Lock()
	doc, ok := s.documents[r.PathValue("id")]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "document not found")
		return nil
	}
	if r.URL.Query().Get("document_key") != doc.key {
		writeError(w, http.StatusForbidden, "invalid document key")
		return nil
	}
	return doc
}

func (s *mockServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	doc := s.document(w, r)
	if doc == nil {
		return
	}

	s.mu.Lock()
	doc.polls++
	status := DocumentStatus{DocumentID: doc.id}
	switch {
	case doc.polls <= doc.queuePolls:
		status.Status = DocumentStateQueued
	case doc.polls <= doc.queuePolls+doc.translating:
		status.Status = DocumentStateTranslating
		remaining := doc.queuePolls + doc.translating - doc.polls + 1
		status.SecondsRemaining = &remaining
	case doc.failed:
		status.Status = DocumentStateError
		status.ErrorMessage = "source document could not be translated"
	default:
		status.Status = DocumentStateDone
		status.BilledCharacters = &doc.billed
		if !doc.billedApplied {
			doc.billedApplied = true
			s.session(r).usedChars += doc.billed
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, status)
}

func (s *mockServer) handleResult(w http.ResponseWriter, r *http.Request) {
	doc := s.document(w, r)
	if doc == nil {
		return
	}

	s.mu.Lock()
	ready := doc.polls > doc.queuePolls+doc.translating && !doc.failed
	content := mockTranslate(doc.content, doc.targetLang)
	s.mu.Unlock()

	if !ready {
		writeError(w, http.StatusServiceUnavailable, "document is not ready yet")
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(content)
}

func (s *mockServer) handleUsage(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	sess := s.session(r)
	payload := map[string]int64{
		"character_count": sess.usedChars,
		"character_limit": sess.charLimit,
		"document_count":  sess.docCount,
		"document_limit":  sess.docLimit,
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, payload)
}

func (s *mockServer) handleLanguages(w http.ResponseWriter, r *http.Request) {
	languages := []Language{
		{Code: "EN", Name: "English"},
		{Code: "DE", Name: "German", SupportsFormality: true},
		{Code: "JA", Name: "Japanese", SupportsFormality: true},
	}
	if r.URL.Query().Get("type") == "source" {
		for i := range languages {
			languages[i].SupportsFormality = false
		}
	}
	writeJSON(w, http.StatusOK, languages)
}

func (s *mockServer) handleGlossaryCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed form")
		return
	}
	name := r.PostFormValue("name")
	sourceLang := r.PostFormValue("source_lang")
	targetLang := r.PostFormValue("target_lang")
	rawEntries := r.PostFormValue("entries")
	if name == "" || sourceLang == "" || targetLang == "" || rawEntries == "" {
		writeError(w, http.StatusBadRequest, "missing glossary fields")
		return
	}

	entries := make(map[string]string)
	for _, line := range strings.Split(rawEntries, "\n") {
		source, target, ok := strings.Cut(line, "\t")
		if !ok {
			writeError(w, http.StatusBadRequest, "malformed glossary entries")
			return
		}
		entries[source] = target
	}

	glossary := &mockGlossary{
		info: GlossaryInfo{
			GlossaryID:   uuid.NewString(),
			Name:         name,
			SourceLang:   sourceLang,
			TargetLang:   targetLang,
			Ready:        true,
			EntryCount:   len(entries),
			CreationTime: time.Now().UTC(),
		},
		entries: entries,
	}

	s.mu.Lock()
	s.glossaries[glossary.info.GlossaryID] = glossary
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, glossary.info)
}

func (s *mockServer) glossary(w http.ResponseWriter, r *http.Request) *mockGlossary {
	s.mu.Lock()
	glossary, ok := s.glossaries[r.PathValue("id")]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "glossary not found")
		return nil
	}
	return glossary
}

func (s *mockServer) handleGlossaryList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	infos := make([]GlossaryInfo, 0, len(s.glossaries))
	for _, glossary := range s.glossaries {
		infos = append(infos, glossary.info)
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"glossaries": infos})
}

func (s *mockServer) handleGlossaryGet(w http.ResponseWriter, r *http.Request) {
	if glossary := s.glossary(w, r); glossary != nil {
		writeJSON(w, http.StatusOK, glossary.info)
	}
}

func (s *mockServer) handleGlossaryEntries(w http.ResponseWriter, r *http.Request) {
	glossary := s.glossary(w, r)
	if glossary == nil {
		return
	}

	var b strings.Builder
	for source, target := range glossary.entries {
		b.WriteString(source)
		b.WriteByte('\t')
		b.WriteString(target)
		b.WriteByte('\n')
	}

	w.Header().Set("Content-Type", "text/tab-separated-values")
	_, _ = w.Write([]byte(b.String()))
}

func (s *mockServer) handleGlossaryDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	_, ok := s.glossaries[r.PathValue("id")]
	delete(s.glossaries, r.PathValue("id"))
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "glossary not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// newTestClient builds a client against the mock server with timing
// injection replaced so retry and poll loops run without real sleeps.
func newTestClient(t *testing.T, serverURL, session string, extra ...Option) *client {
	t.Helper()

	options := append([]Option{
		WithServerURL(serverURL),
		WithHeader(mockSessionHeader, session),
	}, extra...)

	c := NewClient(testAuthKey, options...).(*client)
	c.jitter = func() float64 { return 0 }
	c.sleep = func(ctx context.Context, d time.Duration) error {
		return ctx.Err()
	}
	return c
}

func newTestSession() string {
	return uuid.NewString()
}
