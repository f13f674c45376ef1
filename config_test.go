// Copyright 2021 The httptimeout Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httptimeout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	testCases := []struct {
		name     string
		yaml     string
		expected Config
		err      string
	}{
		{
			name: "empty",
		},
		{
			name: "all",
			yaml: "connectTimeout: 5s\nreadTimeout: 30s\nwriteTimeout: 1m30s\n",
			expected: Config{
				ConnectTimeout: 5 * time.Second,
				ReadTimeout:    30 * time.Second,
				WriteTimeout:   90 * time.Second,
			},
		},
		{
			name:     "partial",
			yaml:     "readTimeout: 250ms\n",
			expected: Config{ReadTimeout: 250 * time.Millisecond},
		},
		{
			name: "negative",
			yaml: "writeTimeout: -1s\n",
			err:  "httptimeout: negative write timeout -1s",
		},
		{
			name: "not a duration",
			yaml: "connectTimeout: soon\n",
			err:  "httptimeout: invalid config: ",
		},
		{
			name: "not a map",
			yaml: "- 5s\n",
			err:  "httptimeout: invalid config: ",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			cfg, err := ParseConfig([]byte(testCase.yaml))
			if testCase.err != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), testCase.err)
				assert.Equal(t, Config{}, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, cfg)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, Config{}.Validate())
	assert.NoError(t, Config{ConnectTimeout: time.Second}.Validate())
	assert.EqualError(t, Config{ConnectTimeout: -time.Second}.Validate(), "httptimeout: negative connect timeout -1s")
	assert.EqualError(t, Config{ReadTimeout: -time.Millisecond}.Validate(), "httptimeout: negative read timeout -1ms")
	assert.EqualError(t, Config{WriteTimeout: -time.Minute}.Validate(), "httptimeout: negative write timeout -1m0s")
}

func TestConfig_NewConnector(t *testing.T) {
	cfg := Config{
		ConnectTimeout: time.Second,
		ReadTimeout:    2 * time.Second,
		WriteTimeout:   3 * time.Second,
	}
	d := newMockDialer(t)

	c := cfg.NewConnector(d)

	assert.Same(t, d, c.Dialer)
	assert.Equal(t, time.Second, c.ConnectTimeout())
	assert.Equal(t, 2*time.Second, c.ReadTimeout())
	assert.Equal(t, 3*time.Second, c.WriteTimeout())

	Config{}.Apply(c)
	assert.Equal(t, time.Duration(0), c.ConnectTimeout())
	assert.Equal(t, time.Duration(0), c.ReadTimeout())
	assert.Equal(t, time.Duration(0), c.WriteTimeout())
}
