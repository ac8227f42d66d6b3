package credential

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStorage struct{ err error }

func (f failingStorage) Get(context.Context, string) (string, bool, error) {
	return "", false, f.err
}

func newDefault(storage Storage) *Resolver {
	return NewDefaultResolver(storage, "token", "user", []string{"token", "accessToken"})
}

func TestResolve_StorageStates(t *testing.T) {
	tests := []struct {
		name     string
		values   map[string]string
		expected string
		wantErr  error
	}{
		{
			name:     "direct token",
			values:   map[string]string{"token": "direct-abc"},
			expected: "direct-abc",
		},
		{
			name:     "session token field",
			values:   map[string]string{"user": `{"name":"Ann","token":"sess-1"}`},
			expected: "sess-1",
		},
		{
			name:     "session accessToken field",
			values:   map[string]string{"user": `{"name":"Ann","accessToken":"sess-2"}`},
			expected: "sess-2",
		},
		{
			name:     "direct wins over session",
			values:   map[string]string{"token": "direct-abc", "user": `{"token":"sess-1"}`},
			expected: "direct-abc",
		},
		{
			name:     "blank direct falls through to session",
			values:   map[string]string{"token": "   ", "user": `{"token":"sess-1"}`},
			expected: "sess-1",
		},
		{
			name:     "empty token field falls back to accessToken",
			values:   map[string]string{"user": `{"token":"","accessToken":"sess-2"}`},
			expected: "sess-2",
		},
		{
			name:    "non-string token field",
			values:  map[string]string{"user": `{"token":42}`},
			wantErr: ErrNotAuthenticated,
		},
		{
			name:    "corrupt session",
			values:  map[string]string{"user": `{not json`},
			wantErr: ErrNotAuthenticated,
		},
		{
			name:    "session without token",
			values:  map[string]string{"user": `{"name":"Ann"}`},
			wantErr: ErrNotAuthenticated,
		},
		{
			name:    "nothing stored",
			values:  map[string]string{},
			wantErr: ErrNotAuthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := NewMemoryStorage()
			for k, v := range tt.values {
				storage.Set(k, v)
			}

			token, err := newDefault(storage).Resolve(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, token)
		})
	}
}

func TestResolve_NotCached(t *testing.T) {
	storage := NewMemoryStorage()
	resolver := newDefault(storage)
	ctx := context.Background()

	storage.Set("token", "first")
	token, err := resolver.Resolve(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first", token)

	storage.Delete("token")
	_, err = resolver.Resolve(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestResolve_StorageError(t *testing.T) {
	boom := errors.New("connection refused")
	_, err := newDefault(failingStorage{err: boom}).Resolve(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotAuthenticated)
}

func TestResolver_Strategies(t *testing.T) {
	resolver := newDefault(NewMemoryStorage())
	assert.Equal(t, []string{"direct:token", "session:user"}, resolver.Strategies())
}
