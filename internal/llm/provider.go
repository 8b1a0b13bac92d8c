package llm

import (
	"errors"
	"strings"
)

// Backends the selector can resolve to.
const (
	BackendGroq   = "groq"
	BackendOpenAI = "openai"
	BackendLocal  = "local"
)

// Model pairs per backend. Primary serves the opponent and analyst
// roles, fast serves the coach.
const (
	groqBaseURL      = "https://api.groq.com/openai/v1"
	groqPrimaryModel = "llama-3.3-70b-versatile"
	groqFastModel    = "llama-3.1-8b-instant"

	openAIPrimaryModel = "gpt-4-turbo"
	openAIFastModel    = "gpt-3.5-turbo"
)

// ErrMissingCredential is returned when no backend can be selected.
// This is a startup-fatal condition, never a request-time error.
var ErrMissingCredential = errors.New("no usable inference credential")

// Credentials is the raw material the selector resolves a backend from.
type Credentials struct {
	OpenAIAPIKey      string
	GroqAPIKey        string
	LocalInferenceURL string
	LocalModel        string
}

// Providers bundles the resolved backend and its two model tiers. It is
// constructed once at startup and passed by reference into the
// coordinator and analyzer constructors.
type Providers struct {
	Backend string
	Primary Client
	Fast    Client
}

// Select deterministically resolves one backend and its model pair from
// the available credentials. Resolution order: an explicit local
// endpoint wins, then a gsk_-prefixed key selects Groq, then any
// remaining key selects OpenAI. No usable credential is an error.
func Select(creds Credentials) (*Providers, error) {
	if creds.LocalInferenceURL != "" {
		// Local OpenAI-compatible server (llama.cpp, Ollama). One model
		// serves both tiers; the key is a placeholder the server ignores.
		c := NewOpenAI("local", creds.LocalInferenceURL, creds.LocalModel)
		return &Providers{Backend: BackendLocal, Primary: c, Fast: c}, nil
	}

	key := creds.OpenAIAPIKey
	if key == "" {
		key = creds.GroqAPIKey
	}
	if key == "" {
		return nil, ErrMissingCredential
	}

	if strings.HasPrefix(key, "gsk_") {
		return &Providers{
			Backend: BackendGroq,
			Primary: NewOpenAI(key, groqBaseURL, groqPrimaryModel),
			Fast:    NewOpenAI(key, groqBaseURL, groqFastModel),
		}, nil
	}

	return &Providers{
		Backend: BackendOpenAI,
		Primary: NewOpenAI(key, "", openAIPrimaryModel),
		Fast:    NewOpenAI(key, "", openAIFastModel),
	}, nil
}
