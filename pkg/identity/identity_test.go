package identity

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T, handler http.HandlerFunc, token string) (*Resolver, *httptest.Server) {
	server := httptest.NewServer(handler)
	resolver, err := NewResolver(server.URL, token, 5*time.Second)
	require.NoError(t, err)
	return resolver, server
}

func TestFullName(t *testing.T) {
	var userAgent, path string
	resolver, server := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		path = r.URL.Path
		fmt.Fprint(w, `{"login": "laszlocph", "name": "Laszlo Fogas"}`)
	}, "")
	defer server.Close()

	assert.Equal(t, "Laszlo Fogas", resolver.FullName(context.Background(), "laszlocph"))
	assert.Equal(t, UserAgent, userAgent)
	assert.Equal(t, "/users/laszlocph", path)
}

func TestFullNameFallsBackToPlaceholder(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"not found": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message": "Not Found"}`)
		},
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"malformed body": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"name": `)
		},
		"no name": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"login": "laszlocph"}`)
		},
		"empty name": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"login": "laszlocph", "name": ""}`)
		},
	}

	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			resolver, server := newTestResolver(t, handler, "")
			defer server.Close()

			assert.Equal(t, Placeholder, resolver.FullName(context.Background(), "laszlocph"))
		})
	}
}

func TestFullNameNetworkError(t *testing.T) {
	resolver, server := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {}, "")
	server.Close()

	assert.Equal(t, Placeholder, resolver.FullName(context.Background(), "laszlocph"))
}

func TestFullNameTimeout(t *testing.T) {
	done := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-done
	}))
	defer server.Close()
	defer close(done)

	resolver, err := NewResolver(server.URL, "", 50*time.Millisecond)
	require.NoError(t, err)

	assert.Equal(t, Placeholder, resolver.FullName(context.Background(), "laszlocph"))
}

func TestEmptyUsernameIsNotLookedUp(t *testing.T) {
	called := false
	resolver, server := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		fmt.Fprint(w, `{"name": "Authenticated User"}`)
	}, "")
	defer server.Close()

	assert.Equal(t, Placeholder, resolver.FullName(context.Background(), ""))
	assert.False(t, called)
}

func TestTokenIsSent(t *testing.T) {
	var authorization string
	resolver, server := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		authorization = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"name": "Laszlo Fogas"}`)
	}, "c012367f6e6f71de17ae4c6a7baac2e9")
	defer server.Close()

	assert.Equal(t, "Laszlo Fogas", resolver.FullName(context.Background(), "laszlocph"))
	assert.Equal(t, "Bearer c012367f6e6f71de17ae4c6a7baac2e9", authorization)
}

func TestInvalidAPIURL(t *testing.T) {
	_, err := NewResolver("://nope", "", time.Second)
	assert.Error(t, err)
}
