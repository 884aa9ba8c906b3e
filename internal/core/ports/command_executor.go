package ports

import "context"

// Payload is the opaque structured result returned by the command executor.
// The gateway only ever reads individual fields needed to build responses and
// to address notifications; everything else passes through untouched.
type Payload map[string]any

// Str returns the named field as a string, or "" when absent or not a string.
func (p Payload) Str(key string) string {
	s, _ := p[key].(string)
	return s
}

// CommandExecutor is the boundary to the backing store that runs the actual
// moderation business logic. A failure is either a *domain.Error (stable
// code, translated to an HTTP status at the edge) or a transport error.
type CommandExecutor interface {
	// Execute runs a named command on behalf of an actor and returns its
	// single result document.
	Execute(ctx context.Context, command, actorID string, args map[string]any) (Payload, error)

	// ExecuteList runs a named command that yields zero or more rows.
	ExecuteList(ctx context.Context, command, actorID string, args map[string]any) ([]Payload, error)
}
