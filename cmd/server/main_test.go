package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFlushAudit_UsesBoundedContext(t *testing.T) {
	var called bool
	flushAudit(slog.Default(), func(ctx context.Context) error {
		called = true
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		assert.NoError(t, ctx.Err())
		return nil
	}, time.Second)
	assert.True(t, called)
}

func TestFlushAudit_LogsFlushFailure(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	flushAudit(log, func(context.Context) error { return errors.New("broker unreachable") }, time.Second)

	assert.Contains(t, buf.String(), "failed to flush audit events")
	assert.Contains(t, buf.String(), "broker unreachable")
}
