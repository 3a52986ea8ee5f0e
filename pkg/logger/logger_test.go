package app_logger

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	assert.Equal(t, "unknown", RequestID(context.Background()))
	assert.Equal(t, "abc", RequestID(WithRequestID(context.Background(), "abc")))
}

func TestLogError_IncludesRequestID(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	LogError(WithRequestID(context.Background(), "rid-1"), "auth/login", errors.New("boom"))

	assert.Contains(t, buf.String(), "request_id=rid-1 operation=auth/login error=boom")
}
