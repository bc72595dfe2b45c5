package sitepay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoffDelay(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 1 * time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 8 * time.Second},
		{5, 10 * time.Second},
		{10, 10 * time.Second},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, backoffDelay(tt.attempt), "attempt %d", tt.attempt)
	}
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/customers", normalizePath("customers"))
	assert.Equal(t, "/customers", normalizePath("/customers"))
}

func TestMethodHasBody(t *testing.T) {
	assert.True(t, methodHasBody("POST"))
	assert.True(t, methodHasBody("PUT"))
	assert.True(t, methodHasBody("PATCH"))
	assert.True(t, methodHasBody("DELETE"))
	assert.False(t, methodHasBody("GET"))
	assert.False(t, methodHasBody("HEAD"))
}

func TestBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		expected string
	}{
		{
			name:     "standard https port omitted",
			cfg:      Config{Protocol: "https", Host: "api.sitepay.com", Port: 443},
			expected: "https://api.sitepay.com",
		},
		{
			name:     "standard http port omitted",
			cfg:      Config{Protocol: "http", Host: "localhost", Port: 80},
			expected: "http://localhost",
		},
		{
			name:     "custom port kept",
			cfg:      Config{Protocol: "http", Host: "localhost", Port: 8080},
			expected: "http://localhost:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, baseURL(tt.cfg))
		})
	}
}
