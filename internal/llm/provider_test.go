package llm

import (
	"errors"
	"testing"
)

func TestSelectGroqByKeyPrefix(t *testing.T) {
	p, err := Select(Credentials{OpenAIAPIKey: "gsk_test123"})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	if p.Backend != BackendGroq {
		t.Errorf("Expected backend %q, got %q", BackendGroq, p.Backend)
	}
	if got := p.Primary.(*OpenAIClient).Model(); got != groqPrimaryModel {
		t.Errorf("Expected primary model %q, got %q", groqPrimaryModel, got)
	}
	if got := p.Fast.(*OpenAIClient).Model(); got != groqFastModel {
		t.Errorf("Expected fast model %q, got %q", groqFastModel, got)
	}
}

func TestSelectGroqViaDedicatedKey(t *testing.T) {
	p, err := Select(Credentials{GroqAPIKey: "gsk_other"})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if p.Backend != BackendGroq {
		t.Errorf("Expected backend %q, got %q", BackendGroq, p.Backend)
	}
}

func TestSelectOpenAIByDefault(t *testing.T) {
	p, err := Select(Credentials{OpenAIAPIKey: "sk-test123"})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	if p.Backend != BackendOpenAI {
		t.Errorf("Expected backend %q, got %q", BackendOpenAI, p.Backend)
	}
	if got := p.Primary.(*OpenAIClient).Model(); got != openAIPrimaryModel {
		t.Errorf("Expected primary model %q, got %q", openAIPrimaryModel, got)
	}
	if got := p.Fast.(*OpenAIClient).Model(); got != openAIFastModel {
		t.Errorf("Expected fast model %q, got %q", openAIFastModel, got)
	}
}

func TestSelectLocalEndpointWins(t *testing.T) {
	p, err := Select(Credentials{
		OpenAIAPIKey:      "gsk_ignored",
		LocalInferenceURL: "http://localhost:11434/v1",
		LocalModel:        "phi-1_5",
	})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	if p.Backend != BackendLocal {
		t.Errorf("Expected backend %q, got %q", BackendLocal, p.Backend)
	}
	if p.Primary != p.Fast {
		t.Error("Expected local backend to serve both tiers with one client")
	}
	if got := p.Primary.(*OpenAIClient).Model(); got != "phi-1_5" {
		t.Errorf("Expected local model phi-1_5, got %q", got)
	}
}

func TestSelectMissingCredential(t *testing.T) {
	_, err := Select(Credentials{})
	if !errors.Is(err, ErrMissingCredential) {
		t.Errorf("Expected ErrMissingCredential, got %v", err)
	}
}
