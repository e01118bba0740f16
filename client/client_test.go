package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzigoego/mzigo/client"
	"github.com/mzigoego/mzigo/db"
	"github.com/mzigoego/mzigo/pkg/apierr"
)

func TestRequest_AuthHeaderPresentWithToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	store := &memStore{}
	require.NoError(t, store.Save(context.Background(), db.TokenPair{Access: "T1", Refresh: "R1"}))
	c := client.New(server.URL, store)

	_, err := c.Request(context.Background(), http.MethodGet, "/auth/profile/", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer T1", gotAuth)
}

func TestRequest_AuthHeaderAbsentWithoutAuth(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	// Even with a token stored, WithoutAuth must suppress the header.
	store := &memStore{}
	require.NoError(t, store.Save(context.Background(), db.TokenPair{Access: "T1", Refresh: "R1"}))
	c := client.New(server.URL, store)

	_, err := c.Request(context.Background(), http.MethodPost, "/auth/login/", map[string]string{}, client.WithoutAuth())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestRequest_AuthHeaderAbsentWithoutToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := client.New(server.URL, &memStore{})
	_, err := c.Request(context.Background(), http.MethodGet, "/notifications/", nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestRequest_BodySerializedAsJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "a@b.com", payload["email"])
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := client.New(server.URL, &memStore{})
	_, err := c.Request(context.Background(), http.MethodPost, "/auth/login/", map[string]string{"email": "a@b.com"}, client.WithoutAuth())
	require.NoError(t, err)
}

func TestRequest_MultipartCarriesBoundary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType := r.Header.Get("Content-Type")
		assert.True(t, strings.HasPrefix(contentType, "multipart/form-data; boundary="), "unexpected content type %q", contentType)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "avatar", r.FormValue("kind"))
		file, header, err := r.FormFile("picture")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "me.png", header.Filename)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := client.New(server.URL, &memStore{})
	body := &client.Multipart{
		Fields: map[string]string{"kind": "avatar"},
		Files:  map[string]client.MultipartFile{"picture": {Name: "me.png", Content: []byte("png-bytes")}},
	}
	_, err := c.Request(context.Background(), http.MethodPatch, "/auth/profile/", body)
	require.NoError(t, err)
}

func TestRequest_TransportErrorRecovered(t *testing.T) {
	// Point at a closed server so the dial fails.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c := client.New(server.URL, &memStore{})
	_, err := c.Request(context.Background(), http.MethodGet, "/notifications/", nil)
	require.Error(t, err)
	assert.Equal(t, apierr.Transport, apierr.TypeOf(err))
	assert.False(t, apierr.IsSessionExpired(err))
}

func TestRequest_FailureMessageFromBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	defer server.Close()

	c := client.New(server.URL, &memStore{})
	_, err := c.Request(context.Background(), http.MethodPost, "/auth/login/", map[string]string{}, client.WithoutAuth())
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())
}

func TestRequest_FailureDetailFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail":"You do not have permission"}`))
	}))
	defer server.Close()

	c := client.New(server.URL, &memStore{})
	_, err := c.Request(context.Background(), http.MethodGet, "/deliveries/mine/", nil)
	require.Error(t, err)
	assert.Equal(t, "You do not have permission", err.Error())
}

func TestRequest_FailureGenericWhenBodyEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := client.New(server.URL, &memStore{})
	_, err := c.Request(context.Background(), http.MethodGet, "/deliveries/mine/", nil)
	require.Error(t, err)
	assert.Equal(t, "Request failed", err.Error())
}

func TestRequest_FieldErrorsSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Registration failed","errors":{"email":["already taken"]}}`))
	}))
	defer server.Close()

	c := client.New(server.URL, &memStore{})
	_, err := c.Request(context.Background(), http.MethodPost, "/auth/register/", map[string]string{}, client.WithoutAuth())
	require.Error(t, err)
	assert.Equal(t, apierr.Validation, apierr.TypeOf(err))
	fields := apierr.FieldsOf(err)
	require.Contains(t, fields, "email")
	assert.Equal(t, []string{"already taken"}, fields["email"])
}

func TestRequest_TopLevelFieldErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"phone":["invalid format"]}`))
	}))
	defer server.Close()

	c := client.New(server.URL, &memStore{})
	_, err := c.Request(context.Background(), http.MethodPost, "/auth/register/", map[string]string{}, client.WithoutAuth())
	require.Error(t, err)
	fields := apierr.FieldsOf(err)
	require.Contains(t, fields, "phone")
	assert.Equal(t, []string{"invalid format"}, fields["phone"])
}

func TestNew_PrimesCachedTokenFromStore(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	store := &memStore{}
	require.NoError(t, store.Save(context.Background(), db.TokenPair{Access: "persisted", Refresh: "R"}))

	// A freshly constructed client picks up the persisted session.
	c := client.New(server.URL, store)
	_, err := c.Request(context.Background(), http.MethodGet, "/auth/profile/", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer persisted", gotAuth)
}
