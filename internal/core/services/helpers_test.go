package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"path/filepath"
	"strings"
	"sync"

	"github.com/askpaper/askpaper-cli/internal/core/ports/driven"
)

// fakeEmbedder is a deterministic in-process embedding service.
// Known texts can be pinned to exact vectors; everything else gets a
// pseudo-random vector seeded from the text's hash, so equal texts
// always embed equally.
type fakeEmbedder struct {
	mu      sync.Mutex
	vectors map[string][]float32
	err     error
	dims    int
}

var _ driven.EmbeddingService = (*fakeEmbedder)(nil)

func newFakeEmbedder() *fakeEmbedder {
	return &fakeEmbedder{vectors: make(map[string][]float32), dims: 8}
}

// pin fixes the vector returned for a given text.
func (f *fakeEmbedder) pin(text string, vector []float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vectors[text] = vector
}

// setErr makes every subsequent call fail (nil restores service).
func (f *fakeEmbedder) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return hashVector(text, f.dims), nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := f.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		result[i] = v
	}
	return result, nil
}

func (f *fakeEmbedder) Dimensions() int            { return f.dims }
func (f *fakeEmbedder) ModelName() string          { return "fake-embed" }
func (f *fakeEmbedder) Ping(context.Context) error { return nil }
func (f *fakeEmbedder) Close() error               { return nil }

// hashVector derives a deterministic pseudo-random unit-scale vector
// from the text.
func hashVector(text string, dims int) []float32 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	state := h.Sum64()

	v := make([]float32, dims)
	for i := range v {
		state = state*6364136223846793005 + 1442695040888963407
		v[i] = float32(int64(state>>33))/float32(1<<30) - 1
	}
	return v
}

// fakeLLM returns a canned response and records the last prompt.
type fakeLLM struct {
	mu         sync.Mutex
	response   string
	err        error
	lastPrompt string
	calls      int
}

var _ driven.LLMService = (*fakeLLM)(nil)

func newFakeLLM(response string) *fakeLLM {
	return &fakeLLM{response: response}
}

func (f *fakeLLM) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLM) ModelName() string          { return "fake-llm" }
func (f *fakeLLM) Ping(context.Context) error { return nil }
func (f *fakeLLM) Close() error               { return nil }

// fakeExtractor treats uploaded bytes as plain text for .txt and .md.
type fakeExtractor struct {
	mu  sync.Mutex
	err error
}

var _ driven.TextExtractor = (*fakeExtractor)(nil)

func (f *fakeExtractor) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeExtractor) Supports(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".txt" || ext == ".md"
}

func (f *fakeExtractor) Extract(_ context.Context, filename string, content []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	if !f.Supports(filename) {
		return "", fmt.Errorf("unsupported: %s", filename)
	}
	return string(content), nil
}
