// Copyright 2021 The httptimeout Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httptimeout

import (
	"crypto/tls"
	"net/http"
	"time"

	"golang.org/x/net/http2"
)

// NewTransport returns an HTTP transport which dials every connection,
// plain or TLS, through c, so that c's timeouts bound every connection
// the transport uses. The transport speaks HTTP/2 to servers which
// negotiate it.
//
// Parameter tlsConfig may be nil for the default TLS configuration. A
// non-nil tlsConfig is cloned, never modified.
//
// The transport's other settings match http.DefaultTransport. Because
// the read timeout also bounds reads on idle keep-alive connections, an
// idle connection is dropped after the read timeout rather than after
// the transport's idle timeout.
func NewTransport(c *Connector, tlsConfig *tls.Config) (*http.Transport, error) {
	if c == nil {
		panic("httptimeout: nil connector")
	}
	if tlsConfig != nil {
		tlsConfig = tlsConfig.Clone()
	}

	t := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           c.DialContext,
		TLSClientConfig:       tlsConfig,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	if err := http2.ConfigureTransport(t); err != nil {
		return nil, err
	}
	return t, nil
}

// NewClient returns an HTTP client whose transport is constructed by
// NewTransport.
func NewClient(c *Connector, tlsConfig *tls.Config) (*http.Client, error) {
	t, err := NewTransport(c, tlsConfig)
	if err != nil {
		return nil, err
	}
	return &http.Client{Transport: t}, nil
}
