package api

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticToken string

func (s staticToken) CurrentToken() string { return string(s) }

func newTestClient(baseURL, token string) *Client {
	return NewClient(baseURL, &http.Client{Timeout: time.Second}, staticToken(token), zap.NewNop())
}

func TestCallReturnsEnvelopeData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":0,"message":"ok","data":{"token":"abc","is_admin":false}}`))
	}))
	defer srv.Close()

	raw, err := newTestClient(srv.URL, "").Get(context.Background(), "/login")
	require.NoError(t, err)

	var result LoginResult
	require.NoError(t, decode(raw, &result))
	assert.Equal(t, "abc", result.Token)
	assert.False(t, result.IsAdmin)
}

func TestCallVoidDataIsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":0,"message":"ok","data":null}`))
	}))
	defer srv.Close()

	raw, err := newTestClient(srv.URL, "").Get(context.Background(), "/user/end_charging_request")
	require.NoError(t, err)

	var result LoginResult
	require.NoError(t, decode(raw, &result))
	assert.Empty(t, result.Token)
}

func TestCallApplicationErrorKeepsServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":-1,"message":"用户名已存在","data":null}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, "").Post(context.Background(), "/user/register", map[string]string{})
	require.Error(t, err)

	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindApplication, apiErr.Kind)
	assert.Equal(t, "用户名已存在", apiErr.Message)
	assert.Equal(t, "用户名已存在", err.Error())
}

func TestCallAttachesBearerOnlyWhenTokenPresent(t *testing.T) {
	var authHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		w.Write([]byte(`{"code":0,"message":"ok","data":null}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, "tok-123").Get(context.Background(), "/user/preview_queue")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", authHeader)

	_, err = newTestClient(srv.URL, "").Get(context.Background(), "/user/preview_queue")
	require.NoError(t, err)
	assert.Empty(t, authHeader)
}

func TestCallConnectionRefused(t *testing.T) {
	// Grab a port that nothing listens on.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	_, err = newTestClient("http://"+addr, "").Get(context.Background(), "/time")
	require.Error(t, err)

	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindConnectionRefused, apiErr.Kind)
	assert.Equal(t, "连接错误", apiErr.Message)
}

func TestCallClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{"code":0,"message":"ok","data":null}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, &http.Client{Timeout: 30 * time.Millisecond}, staticToken(""), zap.NewNop())
	_, err := client.Get(context.Background(), "/time")
	require.Error(t, err)

	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindReadTimeout, apiErr.Kind)
	assert.Equal(t, "数据读取超时", apiErr.Message)
}

func TestCallNonEnvelopeBodyIsProtocolError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway error</html>`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, "").Get(context.Background(), "/time")
	require.Error(t, err)

	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindProtocol, apiErr.Kind)
	assert.Equal(t, "Http错误", apiErr.Message)
}
