package testsupport

import (
	"context"
	"fmt"
	"sync"

	"moviecat/internal/metadata"
	"moviecat/internal/services"
	"moviecat/internal/textutil"
)

// StubProvider is an in-memory metadata.Provider keyed by folded title.
type StubProvider struct {
	mu      sync.Mutex
	matches map[string]metadata.Match
	err     error
	queries []string
}

// NewStubProvider returns a provider that answers with the given matches.
// Each match is reachable by its own title.
func NewStubProvider(matches ...metadata.Match) *StubProvider {
	p := &StubProvider{matches: make(map[string]metadata.Match, len(matches))}
	for _, m := range matches {
		p.matches[textutil.TitleKey(m.Title)] = m
	}
	return p
}

// Alias makes query resolve to the match stored under title.
func (p *StubProvider) Alias(query, title string) *StubProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.matches[textutil.TitleKey(query)] = p.matches[textutil.TitleKey(title)]
	return p
}

// FailWith makes every lookup return err.
func (p *StubProvider) FailWith(err error) *StubProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
	return p
}

// Queries returns the titles looked up so far.
func (p *StubProvider) Queries() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.queries...)
}

func (p *StubProvider) Name() string { return "stub" }

func (p *StubProvider) Lookup(_ context.Context, title string) (*metadata.Match, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queries = append(p.queries, title)
	if p.err != nil {
		return nil, p.err
	}
	m, ok := p.matches[textutil.TitleKey(title)]
	if !ok {
		return nil, services.Wrap(services.ErrNotFound, "metadata", "lookup", fmt.Sprintf("%q", title), metadata.ErrNotFound)
	}
	return &m, nil
}
