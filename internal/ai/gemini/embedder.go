package gemini

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"
)

type embedClient interface {
	EmbedContent(ctx context.Context, text string) ([]float32, error)
}

// Embedder embeds texts through Gemini and remembers vectors by content hash,
// so repeated texts within a run cost one call.
type Embedder struct {
	client embedClient

	cacheMu sync.RWMutex
	cache   map[string][]float32
}

func NewEmbedder(client embedClient) *Embedder {
	return &Embedder{client: client, cache: make(map[string][]float32)}
}

// Embed returns nil without calling the model when text is blank.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	hash := fmt.Sprintf("%x", sha256.Sum256([]byte(text)))

	e.cacheMu.RLock()
	cached, ok := e.cache[hash]
	e.cacheMu.RUnlock()
	if ok {
		return cached, nil
	}

	values, err := e.client.EmbedContent(ctx, text)
	if err != nil {
		return nil, err
	}

	e.cacheMu.Lock()
	e.cache[hash] = values
	e.cacheMu.Unlock()

	return values, nil
}
