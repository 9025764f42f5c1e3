// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQueryServer(t *testing.T, status int, body string, seen *[]byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		data, _ := io.ReadAll(r.Body)
		if seen != nil {
			*seen = data
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func newQueryClient(url string) *Client {
	cfg := DefaultConfig()
	cfg.QueryURL = url
	cfg.Logger = quietLogger()
	return NewClient(cfg)
}

func TestQueryRequest_WireShape(t *testing.T) {
	tests := []struct {
		question string
		persona  string
		want     string
	}{
		{"X", "Y", `{"question":"X","persona":"Y","stream":false}`},
		{"X", "", `{"question":"X","persona":"intermediate","stream":false}`},
		{"X", "   ", `{"question":"X","persona":"intermediate","stream":false}`},
		{"ಭಕ್ತಿ ಎಂದರೇನು?", "scholar", `{"question":"ಭಕ್ತಿ ಎಂದರೇನು?","persona":"scholar","stream":false}`},
	}

	for _, tc := range tests {
		data, err := json.Marshal(NewQueryRequest(tc.question, tc.persona))
		require.NoError(t, err)
		assert.Equal(t, tc.want, string(data))
	}
}

func TestQueryRequest_StreamAlwaysFalse(t *testing.T) {
	req := NewQueryRequest("X", "Y")
	assert.False(t, req.Stream)

	var back QueryRequest
	require.NoError(t, json.Unmarshal([]byte(`{"question":"X","persona":"Y","stream":false}`), &back))
	assert.Equal(t, NewQueryRequest("X", "Y"), back)
}

func TestAsk_Success(t *testing.T) {
	var body []byte
	server := newQueryServer(t, http.StatusOK, `{"answer":"Five-fold difference..."}`, &body)
	defer server.Close()

	client := newQueryClient(server.URL)
	answer, err := client.Ask(context.Background(), "What is Pancha-bheda?", "intermediate")

	require.NoError(t, err)
	assert.Equal(t, "Five-fold difference...", answer)
	assert.JSONEq(t, `{"question":"What is Pancha-bheda?","persona":"intermediate","stream":false}`, string(body))
	assert.Equal(t, `{"question":"What is Pancha-bheda?","persona":"intermediate","stream":false}`, string(body))
}

func TestAsk_ServerErrorThenEmptyPolicy(t *testing.T) {
	server := newQueryServer(t, http.StatusInternalServerError, `{"answer":"ignored"}`, nil)
	defer server.Close()

	client := newQueryClient(server.URL)
	answer, err := client.Ask(context.Background(), "What is Pancha-bheda?", "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadStatus))
	code, ok := StatusCode(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "", answer)

	// The call-site policy turns the typed failure into an empty answer.
	assert.Equal(t, "", AnswerOrEmpty(quietLogger(), answer, err))
}

func TestAsk_DecodeFailures(t *testing.T) {
	for _, body := range []string{`{}`, `{"answer":42}`, `<html>sleeping</html>`, `{"text":"x"}`} {
		server := newQueryServer(t, http.StatusOK, body, nil)
		client := newQueryClient(server.URL)

		_, err := client.Ask(context.Background(), "q", "")
		server.Close()

		assert.Truef(t, errors.Is(err, ErrDecode), "body %q: error = %v, want ErrDecode", body, err)
	}
}

func TestAsk_EmptyAnswerIsValid(t *testing.T) {
	server := newQueryServer(t, http.StatusOK, `{"answer":""}`, nil)
	defer server.Close()

	answer, err := newQueryClient(server.URL).Ask(context.Background(), "q", "")
	require.NoError(t, err)
	assert.Equal(t, "", answer)
}

func TestAsk_BlankQuestionMakesNoRequest(t *testing.T) {
	rt := &countingTransport{}
	client := newTestClient(t, rt)

	_, err := client.Ask(context.Background(), "  \n", "")
	assert.True(t, errors.Is(err, ErrInvalidRequest))
	assert.Equal(t, int32(0), rt.calls.Load())
}

func TestAsk_MalformedQueryURL(t *testing.T) {
	rt := &countingTransport{}
	cfg := DefaultConfig()
	cfg.QueryURL = "not a url"
	cfg.Logger = quietLogger()
	cfg.HTTPClient = &http.Client{Transport: rt}

	_, err := NewClient(cfg).Ask(context.Background(), "q", "")
	assert.True(t, errors.Is(err, ErrInvalidURL))
	assert.Equal(t, int32(0), rt.calls.Load())
}

func TestAsk_RateLimiterHonoursContext(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"answer":"ok"}`))
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.QueryURL = server.URL
	cfg.QueryRate = 0.001 // one token, then a very long wait
	cfg.QueryBurst = 1
	cfg.Logger = quietLogger()
	client := NewClient(cfg)

	_, err := client.Ask(context.Background(), "first", "")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = client.Ask(ctx, "second", "")
	assert.True(t, errors.Is(err, ErrTransport))
	assert.Equal(t, int32(1), hits.Load())
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{})
	assert.Equal(t, QueryURL, client.QueryEndpoint())
	assert.Nil(t, client.limiter)
	assert.Equal(t, DefaultUserAgent, client.userAgent)
}
