// Copyright 2021 The httptimeout Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httptimeout

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogama/httptimeout/transient"
)

func TestNewTransport(t *testing.T) {
	t.Run("nil connector", func(t *testing.T) {
		assert.PanicsWithValue(t, "httptimeout: nil connector", func() { _, _ = NewTransport(nil, nil) })
	})
	t.Run("default TLS", func(t *testing.T) {
		tr, err := NewTransport(&Connector{}, nil)
		require.NoError(t, err)
		assert.NotNil(t, tr.DialContext)
		assert.Contains(t, tr.TLSNextProto, "h2")
		require.NotNil(t, tr.TLSClientConfig)
		assert.Contains(t, tr.TLSClientConfig.NextProtos, "h2")
	})
	t.Run("custom TLS", func(t *testing.T) {
		tlsConfig := &tls.Config{ServerName: "example.com"}
		tr, err := NewTransport(&Connector{}, tlsConfig)
		require.NoError(t, err)
		require.NotNil(t, tr.TLSClientConfig)
		assert.NotSame(t, tlsConfig, tr.TLSClientConfig)
		assert.Equal(t, "example.com", tr.TLSClientConfig.ServerName)
		assert.Empty(t, tlsConfig.NextProtos)
	})
}

func TestNewClient(t *testing.T) {
	cl, err := NewClient(&Connector{}, nil)
	require.NoError(t, err)
	assert.IsType(t, &http.Transport{}, cl.Transport)
	assert.Equal(t, time.Duration(0), cl.Timeout)
}

func TestClient(t *testing.T) {
	for _, server := range servers {
		server := server
		t.Run(serverName(server), func(t *testing.T) {
			t.Run("happy path", func(t *testing.T) { testClientHappyPath(t, server.URL, serverTLSConfig(server)) })
			t.Run("header read timeout", func(t *testing.T) { testClientHeaderReadTimeout(t, server.URL, serverTLSConfig(server)) })
			t.Run("body read timeout", func(t *testing.T) { testClientBodyReadTimeout(t, server.URL, serverTLSConfig(server)) })
			t.Run("slow body", func(t *testing.T) { testClientSlowBody(t, server.URL, serverTLSConfig(server)) })
			t.Run("connect timeout", func(t *testing.T) { testClientConnectTimeout(t, server.URL, serverTLSConfig(server)) })
		})
	}
}

func testClientHappyPath(t *testing.T, url string, tlsConfig *tls.Config) {
	c := NewConnector(&net.Dialer{})
	Config{ConnectTimeout: time.Second, ReadTimeout: time.Second, WriteTimeout: time.Second}.Apply(c)
	cl, err := NewClient(c, tlsConfig)
	require.NoError(t, err)
	defer cl.CloseIdleConnections()

	i := serverInstruction{
		StatusCode: 200,
		Body:       []bodyChunk{{Data: []byte("hello, ")}, {Data: []byte("world")}},
	}
	resp, err := cl.Do(i.toRequest(context.Background(), url))
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "hello, world", string(b))
	if url == http2Server.URL {
		assert.Equal(t, 2, resp.ProtoMajor)
	} else {
		assert.Equal(t, 1, resp.ProtoMajor)
	}
}

func testClientHeaderReadTimeout(t *testing.T, url string, tlsConfig *tls.Config) {
	c := NewConnector(&net.Dialer{})
	c.SetReadTimeout(100 * time.Millisecond)
	cl, err := NewClient(c, tlsConfig)
	require.NoError(t, err)
	defer cl.CloseIdleConnections()

	i := serverInstruction{HeaderPause: 500 * time.Millisecond, StatusCode: 200}
	start := time.Now()
	resp, err := cl.Do(i.toRequest(context.Background(), url))
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Less(t, elapsed, 450*time.Millisecond)
	if url == httpServer.URL {
		assert.ErrorIs(t, err, ErrReadTimeout)
		assert.Equal(t, transient.ConnReset, transient.Categorize(err))
	}
}

func testClientBodyReadTimeout(t *testing.T, url string, tlsConfig *tls.Config) {
	c := NewConnector(&net.Dialer{})
	c.SetReadTimeout(100 * time.Millisecond)
	cl, err := NewClient(c, tlsConfig)
	require.NoError(t, err)
	defer cl.CloseIdleConnections()

	i := serverInstruction{
		StatusCode: 200,
		Body: []bodyChunk{
			{Data: []byte("a"), Pause: 500 * time.Millisecond},
			{Data: []byte("b")},
		},
	}
	resp, err := cl.Do(i.toRequest(context.Background(), url))
	require.NoError(t, err)
	defer resp.Body.Close()
	start := time.Now()
	_, err = io.ReadAll(resp.Body)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Less(t, elapsed, 450*time.Millisecond)
	if url == httpServer.URL {
		assert.ErrorIs(t, err, ErrReadTimeout)
	}
}

func testClientSlowBody(t *testing.T, url string, tlsConfig *tls.Config) {
	c := NewConnector(&net.Dialer{})
	c.SetReadTimeout(250 * time.Millisecond)
	cl, err := NewClient(c, tlsConfig)
	require.NoError(t, err)
	defer cl.CloseIdleConnections()

	// Each byte arrives well inside the read timeout, but the whole body
	// takes longer than it.
	i := serverInstruction{
		StatusCode: 200,
		Body:       []bodyChunk{{Data: []byte("0123456789"), Pause: 600 * time.Millisecond}},
	}
	start := time.Now()
	resp, err := cl.Do(i.toRequest(context.Background(), url))
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)

	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(b))
	assert.Greater(t, time.Since(start), 250*time.Millisecond)
}

func testClientConnectTimeout(t *testing.T, url string, tlsConfig *tls.Config) {
	c := NewConnector(DialerFunc(func(ctx context.Context, _, _ string) (net.Conn, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}))
	c.SetConnectTimeout(100 * time.Millisecond)
	cl, err := NewClient(c, tlsConfig)
	require.NoError(t, err)
	defer cl.CloseIdleConnections()

	i := serverInstruction{StatusCode: 200}
	start := time.Now()
	resp, err := cl.Do(i.toRequest(context.Background(), url))
	elapsed := time.Since(start)

	assert.Nil(t, resp)
	require.Error(t, err)
	assert.GreaterOrEqual(t, elapsed, 100*time.Millisecond)
	assert.Less(t, elapsed, 450*time.Millisecond)
	assert.ErrorIs(t, err, ErrConnectTimeout)
	assert.Equal(t, transient.Timeout, transient.Categorize(err))
}
