// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/inkwell/internal/platform/config"
)

/*
TestConfig_AllowedOrigins verifies the comma-separated EXTRA_ORIGINS value is
split and trimmed into the CORS allow-list.
*/
func TestConfig_AllowedOrigins(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		wantS []string
	}{
		{"empty", "", nil},
		{"single", "https://studio.example.com", []string{"https://studio.example.com"}},
		{"multiple with spaces", "https://a.example.com, https://b.example.com", []string{"https://a.example.com", "https://b.example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{ExtraOrigins: tt.raw}
			assert.Equal(t, tt.wantS, cfg.AllowedOrigins())
		})
	}
}

/*
TestConfig_Environment verifies the environment predicates.
*/
func TestConfig_Environment(t *testing.T) {
	development := &config.Config{Environment: "development"}
	assert.True(t, development.IsDevelopment())
	assert.False(t, development.IsProduction())

	production := &config.Config{Environment: "production"}
	assert.False(t, production.IsDevelopment())
	assert.True(t, production.IsProduction())
}
