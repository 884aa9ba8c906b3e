package main

import (
	"context"
	"errors"

	"github.com/activity-platform/moderation-api/internal/core/ports"
)

var errDatabaseUnavailable = errors.New("moderation database unavailable")

// unavailableExecutor stands in while the database is unreachable: every
// dispatch fails as a transport error, which the edge renders as a generic
// 500 while /health reports the degraded state.
type unavailableExecutor struct{}

func (unavailableExecutor) Execute(context.Context, string, string, map[string]any) (ports.Payload, error) {
	return nil, errDatabaseUnavailable
}

func (unavailableExecutor) ExecuteList(context.Context, string, string, map[string]any) ([]ports.Payload, error) {
	return nil, errDatabaseUnavailable
}
