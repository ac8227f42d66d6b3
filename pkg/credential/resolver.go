package credential

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotAuthenticated no usable credential in storage
var ErrNotAuthenticated = errors.New("not authenticated")

// Strategy looks up a token in storage. ok is false when this strategy found nothing usable.
type Strategy interface {
	Name() string
	Lookup(ctx context.Context, storage Storage) (token string, ok bool, err error)
}

// directToken reads a bare token string stored under one key
type directToken struct {
	key string
}

// DirectToken returns a Strategy reading a bare token stored under key
func DirectToken(key string) Strategy {
	return directToken{key: key}
}

func (s directToken) Name() string { return "direct:" + s.key }

func (s directToken) Lookup(ctx context.Context, storage Storage) (string, bool, error) {
	raw, ok, err := storage.Get(ctx, s.key)
	if err != nil || !ok {
		return "", false, err
	}
	token := strings.TrimSpace(raw)
	return token, token != "", nil
}

// sessionToken reads a token field out of a serialized session object
type sessionToken struct {
	key    string
	fields []string
}

// SessionToken returns a Strategy that parses the JSON session object stored under key
// and returns the first non-empty string among fields
func SessionToken(key string, fields ...string) Strategy {
	return sessionToken{key: key, fields: append([]string(nil), fields...)}
}

func (s sessionToken) Name() string { return "session:" + s.key }

func (s sessionToken) Lookup(ctx context.Context, storage Storage) (string, bool, error) {
	raw, ok, err := storage.Get(ctx, s.key)
	if err != nil || !ok {
		return "", false, err
	}

	var session map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		// A corrupt session blob is the same as no session
		return "", false, nil
	}

	for _, field := range s.fields {
		v, ok := session[field].(string)
		if !ok {
			continue
		}
		if token := strings.TrimSpace(v); token != "" {
			return token, true, nil
		}
	}
	return "", false, nil
}

// Resolver locates the bearer token by trying its strategies in order.
// Nothing is cached; every call re-reads storage.
type Resolver struct {
	storage    Storage
	strategies []Strategy
}

// NewResolver creates a Resolver over storage with an explicit strategy order
func NewResolver(storage Storage, strategies ...Strategy) *Resolver {
	return &Resolver{
		storage:    storage,
		strategies: append([]Strategy(nil), strategies...),
	}
}

// NewDefaultResolver checks the direct token key first, then the session object
func NewDefaultResolver(storage Storage, tokenKey, sessionKey string, sessionFields []string) *Resolver {
	return NewResolver(storage,
		DirectToken(tokenKey),
		SessionToken(sessionKey, sessionFields...),
	)
}

// Strategies returns the lookup order
func (r *Resolver) Strategies() []string {
	names := make([]string, len(r.strategies))
	for i, s := range r.strategies {
		names[i] = s.Name()
	}
	return names
}

// Resolve returns the first token any strategy yields, or ErrNotAuthenticated
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	for _, s := range r.strategies {
		token, ok, err := s.Lookup(ctx, r.storage)
		if err != nil {
			return "", fmt.Errorf("failed to read credential (%s): %w", s.Name(), err)
		}
		if ok {
			return token, nil
		}
	}
	return "", ErrNotAuthenticated
}
