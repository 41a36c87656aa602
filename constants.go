package client

import "time"

const (
	ServiceName      = "lingua"
	DefaultServerURL = "https://api.linguahq.com"
	DefaultTimeout   = 30 * time.Second
	APIVersion       = "v2"

	// DocumentWaitTimeout caps how long TranslateDocument waits for the
	// server to finish one document before giving up. The server-side job
	// is not cancelled when the client stops waiting.
	DocumentWaitTimeout = 10 * time.Minute

	authHeader    = "Authorization"
	authKeyScheme = "LinguaHQ-Auth-Key"
)

// Retry and polling defaults.
const (
	DefaultMaxAttempts  = 5
	DefaultBackoffMin   = 1 * time.Second
	DefaultBackoffMax   = 30 * time.Second
	DefaultPollInterval = 1 * time.Second
	DefaultPollMax      = 60 * time.Second

	pollGrowthFactor = 1.5
)

// StatusQuotaExceeded is the non-standard status code the server uses
// when an account usage limit is reached.
const StatusQuotaExceeded = 456

// API endpoints
const (
	EndpointTranslate  = "/" + APIVersion + "/translate"
	EndpointDocument   = "/" + APIVersion + "/document"
	EndpointUsage      = "/" + APIVersion + "/usage"
	EndpointLanguages  = "/" + APIVersion + "/languages"
	EndpointGlossaries = "/" + APIVersion + "/glossaries"
)

func documentStatusPath(documentID string) string {
	return EndpointDocument + "/" + documentID
}

func documentResultPath(documentID string) string {
	return EndpointDocument + "/" + documentID + "/result"
}

func glossaryPath(glossaryID string) string {
	return EndpointGlossaries + "/" + glossaryID
}

func glossaryEntriesPath(glossaryID string) string {
	return EndpointGlossaries + "/" + glossaryID + "/entries"
}
