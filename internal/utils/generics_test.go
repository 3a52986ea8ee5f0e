package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetListenAddress(t *testing.T) {
	tests := []struct {
		port, env, want string
	}{
		{"5005", "development", ":5005"},
		{"8080", "production", "0.0.0.0:8080"},
		{"abc", "", ":5005"},
		{"70000", "", ":5005"},
		{"", "production", "0.0.0.0:5005"},
	}
	for _, tt := range tests {
		t.Run(tt.port+"/"+tt.env, func(t *testing.T) {
			assert.Equal(t, tt.want, GetListenAddress(tt.port, tt.env))
		})
	}
}
