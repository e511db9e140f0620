package main

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/aretw0/incorporate/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinkMiddlewares(t *testing.T) {
	key := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("k", 32)))

	tests := []struct {
		name    string
		setup   func(*config.Config)
		want    int
		wantErr bool
	}{
		{"plain", func(c *config.Config) {}, 0, false},
		{"redact", func(c *config.Config) { c.Leads.Redact = true }, 1, false},
		{"encrypt", func(c *config.Config) { c.Leads.EncryptionKey = key }, 1, false},
		{"encrypt with fallback", func(c *config.Config) {
			c.Leads.EncryptionKey = key
			c.Leads.FallbackKeys = []string{key}
		}, 1, false},
		{"bad key", func(c *config.Config) { c.Leads.EncryptionKey = "c2hvcnQ=" }, 0, true},
		{"bad fallback", func(c *config.Config) {
			c.Leads.EncryptionKey = key
			c.Leads.FallbackKeys = []string{"!!"}
		}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			tt.setup(cfg)

			mws, err := sinkMiddlewares(cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, mws, tt.want)
		})
	}
}
