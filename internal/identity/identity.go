// Package identity hands the current actor to services that need one.
package identity

import (
	"context"

	"github.com/kirinyoku/eventbuzz/internal/domain"
)

// Provider resolves who is acting on behalf of a request.
type Provider interface {
	CurrentActor(ctx context.Context) (domain.Actor, bool)
}

type actorKey struct{}

// WithActor returns a copy of ctx carrying actor.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// FromContext returns the actor stored by WithActor.
func FromContext(ctx context.Context) (domain.Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(domain.Actor)
	if !ok || a.ID == "" {
		return domain.Actor{}, false
	}
	return a, true
}

// ContextProvider reads the actor placed on the context by the HTTP layer.
type ContextProvider struct{}

func (ContextProvider) CurrentActor(ctx context.Context) (domain.Actor, bool) {
	return FromContext(ctx)
}

// Static always reports the same actor. A zero value reports none.
type Static domain.Actor

func (s Static) CurrentActor(context.Context) (domain.Actor, bool) {
	if s.ID == "" {
		return domain.Actor{}, false
	}
	return domain.Actor(s), true
}
