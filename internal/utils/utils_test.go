package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContext(t *testing.T) {
	t.Run("SetUserContext and getters", func(t *testing.T) {
		ctx := SetUserContext(context.Background(), 100, "alice", "Customer")

		id, ok := GetUserIDFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, int64(100), id)
		assert.Equal(t, "alice", GetUserLoginFromContext(ctx))
		assert.Equal(t, "Customer", GetUserRoleFromContext(ctx))
	})

	t.Run("Empty context", func(t *testing.T) {
		ctx := context.Background()
		_, ok := GetUserIDFromContext(ctx)
		assert.False(t, ok)
		assert.Empty(t, GetUserLoginFromContext(ctx))
		assert.Empty(t, GetUserRoleFromContext(ctx))
	})
}

func TestIsDigits(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0", true},
		{"42", true},
		{"", false},
		{"-1", false},
		{"4.0", false},
		{" 4", false},
		{"١٢", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsDigits(tt.in), "input %q", tt.in)
	}
}

func TestProvided(t *testing.T) {
	assert.False(t, Provided(nil))
	assert.False(t, Provided(StrPtr("")))
	assert.False(t, Provided(StrPtr("   ")))
	assert.True(t, Provided(StrPtr("x")))
}

func TestParseID(t *testing.T) {
	id, err := ParseID("17")
	require.NoError(t, err)
	assert.Equal(t, int64(17), id)

	_, err = ParseID("x")
	assert.Error(t, err)
}

func TestWriteJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONError(w, "bad input", http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "bad input", body["error"])
}
