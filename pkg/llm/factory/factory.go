package factory

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"admission-assistant-be/pkg/llm"
	"admission-assistant-be/pkg/llm/gemini"
	"admission-assistant-be/pkg/llm/ollama"

	"github.com/patrickmn/go-cache"
)

// providerCache memoizes constructed clients keyed by a credential
// fingerprint. Rebuilding is idempotent, so concurrent rebuilds after a
// credential rotation are harmless.
var providerCache = cache.New(cache.NoExpiration, 10*time.Minute)

func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	key := fingerprint(providerType, modelName, baseURL, apiKey)
	if cached, found := providerCache.Get(key); found {
		return cached.(llm.LLMProvider), nil
	}

	var provider llm.LLMProvider
	switch providerType {
	case "gemini":
		if apiKey == "" {
			return nil, llm.ErrCredentialsMissing
		}
		provider = gemini.NewGeminiProvider(apiKey, modelName)
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		provider = ollama.NewOllamaProvider(baseURL, modelName)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}

	providerCache.Flush() // A new fingerprint means the credential rotated
	providerCache.Set(key, provider, cache.NoExpiration)
	return provider, nil
}

func fingerprint(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
