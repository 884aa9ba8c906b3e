package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/activity-platform/moderation-api/internal/api/metrics"
	"github.com/activity-platform/moderation-api/internal/core/domain"
	"github.com/activity-platform/moderation-api/internal/core/ports"
)

// CommandExecutor invokes the moderation engine's server-side commands. The
// engine owns every business rule; this adapter only ships the command name,
// the acting user, and the argument map across, and separates domain failures
// (stable "CODE: detail" messages) from transport failures.
type CommandExecutor struct {
	db *mongo.Database
}

func NewCommandExecutor(db *mongo.Database) *CommandExecutor {
	return &CommandExecutor{db: db}
}

func (e *CommandExecutor) Execute(ctx context.Context, command, actorID string, args map[string]any) (ports.Payload, error) {
	var doc bson.M
	err := e.run(ctx, command, actorID, args, &doc)
	if err != nil {
		return nil, err
	}

	if result, ok := doc["result"].(bson.M); ok {
		return ports.Payload(result), nil
	}
	return ports.Payload(doc), nil
}

func (e *CommandExecutor) ExecuteList(ctx context.Context, command, actorID string, args map[string]any) ([]ports.Payload, error) {
	var doc bson.M
	err := e.run(ctx, command, actorID, args, &doc)
	if err != nil {
		return nil, err
	}

	rows, _ := doc["results"].(bson.A)
	out := make([]ports.Payload, 0, len(rows))
	for _, row := range rows {
		if m, ok := row.(bson.M); ok {
			out = append(out, ports.Payload(m))
		}
	}
	return out, nil
}

// run executes one command, decodes the reply into out, and records the
// dispatch metric by outcome.
func (e *CommandExecutor) run(ctx context.Context, command, actorID string, args map[string]any, out *bson.M) error {
	// A caller disconnect must not abort a command mid-flight and leave the
	// engine in an ambiguous half-applied state; once dispatched, the command
	// runs to completion.
	ctx = context.WithoutCancel(ctx)

	start := time.Now()
	err := e.db.RunCommand(ctx, commandDoc(command, actorID, args)).Decode(out)
	metrics.CommandDuration.WithLabelValues(command).Observe(time.Since(start).Seconds())

	if err == nil {
		metrics.CommandsTotal.WithLabelValues(command, "ok").Inc()
		return nil
	}

	err = classifyError(command, err)
	var domErr *domain.Error
	if errors.As(err, &domErr) {
		metrics.CommandsTotal.WithLabelValues(command, "domain_error").Inc()
	} else {
		metrics.CommandsTotal.WithLabelValues(command, "transport_error").Inc()
	}
	return err
}

func commandDoc(command, actorID string, args map[string]any) bson.D {
	doc := bson.D{
		{Key: command, Value: 1},
		{Key: "actor_id", Value: actorID},
	}
	if len(args) > 0 {
		doc = append(doc, bson.E{Key: "args", Value: args})
	}
	return doc
}

// classifyError extracts a *domain.Error when the engine rejected the command
// with a stable code; anything else stays a wrapped transport error so the
// edge renders a generic 500 instead of echoing storage internals.
func classifyError(command string, err error) error {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		if domErr := domain.ParseDomainError(cmdErr.Message); domErr != nil {
			return domErr
		}
	}
	return fmt.Errorf("execute %s: %w", command, err)
}
