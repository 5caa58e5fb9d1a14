package remote_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/thermo"
	"github.com/fwojciec/thermo/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_RequestFormat(t *testing.T) {
	t.Parallel()

	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/backend/call", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"output":[300,1000000],"code":0}`))
	}))
	defer srv.Close()

	client := remote.New(srv.URL+"/", remote.WithAPIKey("secret"))
	s, err := client.Open(context.Background())
	require.NoError(t, err)
	defer s.Close()

	call := thermo.Call{Fluid: "R32", Input: "PT", Outputs: []string{"T", "P"}, A: 1e6, B: 300}
	call.Fractions[0] = 1
	reply, err := s.Call(context.Background(), call)
	require.NoError(t, err)
	assert.Equal(t, []float64{300, 1e6}, reply.Output)
	assert.Equal(t, 0, reply.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(captured, &body))
	assert.Equal(t, "R32", body["fluid"])
	assert.Equal(t, "PT", body["input"])
	assert.Equal(t, []any{1.0}, body["fractions"])
	assert.Equal(t, []any{"T", "P"}, body["outputs"])
	assert.Equal(t, 1e6, body["a"])
	assert.Equal(t, 300.0, body["b"])
}

func TestClient_NoAPIKeyHeaderByDefault(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.Header["X-Api-Key"]
		assert.False(t, ok)
		_, _ = w.Write([]byte(`{"output":[],"code":0}`))
	}))
	defer srv.Close()

	s, err := remote.New(srv.URL).Open(context.Background())
	require.NoError(t, err)
	_, err = s.Call(context.Background(), thermo.Call{Fluid: "R32", Input: "CRIT", Outputs: []string{"T"}})
	require.NoError(t, err)
}

func TestClient_LibraryErrorsArePassedThrough(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"output":[-9999970],"code":248,"message":"temperature out of range"}`))
	}))
	defer srv.Close()

	s, err := remote.New(srv.URL).Open(context.Background())
	require.NoError(t, err)
	reply, err := s.Call(context.Background(), thermo.Call{Fluid: "R32", Input: "TQ"})
	require.NoError(t, err, "library failures travel in the reply, not as errors")
	assert.Equal(t, 248, reply.Code)
	assert.Equal(t, "temperature out of range", reply.Message)
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "detail body", status: http.StatusUnauthorized, body: `{"detail":"invalid API key"}`, wantErr: "remote: HTTP 401: invalid API key"},
		{name: "plain body", status: http.StatusBadGateway, body: "upstream down\n", wantErr: "remote: HTTP 502: upstream down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			s, err := remote.New(srv.URL).Open(context.Background())
			require.NoError(t, err)
			_, err = s.Call(context.Background(), thermo.Call{})
			require.Error(t, err)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestClient_MalformedReply(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	s, err := remote.New(srv.URL).Open(context.Background())
	require.NoError(t, err)
	_, err = s.Call(context.Background(), thermo.Call{})
	assert.Error(t, err)
}

func TestClient_WithHTTPClient(t *testing.T) {
	t.Parallel()
	var used bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"output":[1],"code":0}`))
	}))
	defer srv.Close()

	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		used = true
		return http.DefaultTransport.RoundTrip(r)
	})}
	s, err := remote.New(srv.URL, remote.WithHTTPClient(hc)).Open(context.Background())
	require.NoError(t, err)
	_, err = s.Call(context.Background(), thermo.Call{})
	require.NoError(t, err)
	assert.True(t, used)
}

func TestClient_ClosedSession(t *testing.T) {
	t.Parallel()
	s, err := remote.New("http://localhost:1").Open(context.Background())
	require.NoError(t, err)
	require.NoError(t, s.Close())
	_, err = s.Call(context.Background(), thermo.Call{})
	assert.ErrorIs(t, err, thermo.ErrSessionClosed)
}

func TestClient_OpenWithoutBaseURL(t *testing.T) {
	t.Parallel()
	_, err := remote.New("").Open(context.Background())
	assert.ErrorIs(t, err, thermo.ErrConfiguration)
}

func TestClient_Engine(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"output":[300,1000000,20450,24100,112,-9999970,95,62,420],"code":0}`))
	}))
	defer srv.Close()

	props, err := thermo.NewEngine(remote.New(srv.URL)).Calculate(context.Background(), "R32", "PT", 1000, 300)
	require.NoError(t, err)
	require.NotNil(t, props.Pressure)
	assert.Equal(t, 1000.0, *props.Pressure)
	assert.Nil(t, props.Quality)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
