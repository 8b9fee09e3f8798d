package ai

import (
	"context"
	"errors"
	"sync"
	"time"
)

// fakeProvider returns queued responses in order, then repeats the last one.
type fakeProvider struct {
	mu        sync.Mutex
	responses []fakeResponse
	calls     int
	prompts   []string
}

type fakeResponse struct {
	content string
	err     error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(_ context.Context, req *Request) (*Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.prompts = append(f.prompts, req.Prompt)
	idx := min(f.calls, len(f.responses)-1)
	f.calls++
	r := f.responses[idx]
	if r.err != nil {
		return nil, r.err
	}
	return &Response{Content: r.content}, nil
}

// memoryCache is an in-process Cache.
type memoryCache struct {
	mu      sync.Mutex
	items   map[string][]byte
	failGet bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return nil, false, errors.New("cache down")
	}
	v, ok := c.items[key]
	return v, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

// noDelay retries immediately.
var noDelay = RetryPolicy{MaxAttempts: 3}
