package gemini

import (
	"context"
	"errors"
	"testing"
)

type countingEmbedClient struct {
	calls int
	err   error
}

func (c *countingEmbedClient) EmbedContent(_ context.Context, text string) ([]float32, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return []float32{float32(len(text))}, nil
}

func TestEmbedderCachesByContent(t *testing.T) {
	client := &countingEmbedClient{}
	e := NewEmbedder(client)

	first, err := e.Embed(context.Background(), "python developer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := e.Embed(context.Background(), "  python developer  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.calls != 1 {
		t.Fatalf("expected a single call, got %d", client.calls)
	}
	if first[0] != 16 || second[0] != 16 {
		t.Fatalf("unexpected vectors: %v %v", first, second)
	}
}

func TestEmbedderBlankText(t *testing.T) {
	client := &countingEmbedClient{}

	got, err := NewEmbedder(client).Embed(context.Background(), "  ")
	if err != nil || got != nil {
		t.Fatalf("expected nil vector, got %v (%v)", got, err)
	}
	if client.calls != 0 {
		t.Fatalf("expected no call, got %d", client.calls)
	}
}

func TestEmbedderDoesNotCacheErrors(t *testing.T) {
	client := &countingEmbedClient{err: errors.New("boom")}
	e := NewEmbedder(client)

	for i := 0; i < 2; i++ {
		if _, err := e.Embed(context.Background(), "text"); err == nil {
			t.Fatal("expected error")
		}
	}
	if client.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", client.calls)
	}
}
