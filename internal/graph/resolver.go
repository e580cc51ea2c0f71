package graph

import (
	"context"
	"errors"

	"github.com/graphql-go/graphql"

	"github.com/schoolhub/classroom/internal/auth"
	"github.com/schoolhub/classroom/internal/events"
	"github.com/schoolhub/classroom/internal/models"
	"github.com/schoolhub/classroom/internal/repo"
	"github.com/schoolhub/classroom/internal/search"
	"github.com/schoolhub/classroom/pkg/logging"
)

// Resolver carries everything the schema's resolve functions need. The
// producer and task indexer may be nil; both degrade to no-ops.
type Resolver struct {
	Repo     *repo.GormRepo
	Auth     *auth.Service
	Guard    *auth.Guard
	Producer *events.Producer
	Tasks    *search.TaskIndexer
}

var errBadArgument = errors.New("bad argument")

func stringArg(p graphql.ResolveParams, name string) (string, error) {
	v, ok := p.Args[name].(string)
	if !ok {
		return "", errBadArgument
	}
	return v, nil
}

func intArg(p graphql.ResolveParams, name string) (int, error) {
	v, ok := p.Args[name].(int)
	if !ok {
		return 0, errBadArgument
	}
	return v, nil
}

func optStringArg(p graphql.ResolveParams, name string) (string, bool) {
	v, ok := p.Args[name].(string)
	return v, ok
}

func intArgDefault(p graphql.ResolveParams, name string, def int) int {
	if v, ok := p.Args[name].(int); ok {
		return v
	}
	return def
}

// publish fires a domain event without letting broker trouble fail the
// request.
func (r *Resolver) publish(ctx context.Context, key string, event map[string]any) {
	if err := r.Producer.Publish(ctx, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}

func userSource(p graphql.ResolveParams) (*models.User, bool) {
	switch u := p.Source.(type) {
	case *models.User:
		return u, true
	case models.User:
		return &u, true
	}
	return nil, false
}

func roomSource(p graphql.ResolveParams) (*models.Room, bool) {
	switch r := p.Source.(type) {
	case *models.Room:
		return r, true
	case models.Room:
		return &r, true
	}
	return nil, false
}
