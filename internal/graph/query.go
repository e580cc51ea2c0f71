package graph

import (
	"errors"

	"github.com/graphql-go/graphql"

	"github.com/schoolhub/classroom/internal/auth"
	"github.com/schoolhub/classroom/internal/models"
)

var errNotInRoom = errors.New("you do not exist in this room")

func (r *Resolver) queryRoot(t *schemaTypes) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type: t.user,
				Args: graphql.FieldConfigArgument{
					"accessToken": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					token, err := stringArg(p, "accessToken")
					if err != nil {
						return nil, err
					}
					identity, err := r.Guard.Authenticate(token, auth.AnyRole)
					if err != nil {
						return nil, err
					}
					return r.Repo.FindUserByID(p.Context, identity.UserID)
				},
			},
			"getUser": &graphql.Field{
				Type: t.user,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := intArg(p, "id")
					if err != nil {
						return nil, err
					}
					return r.Repo.FindUserByID(p.Context, uint(id))
				},
			},
			"getTask": &graphql.Field{
				Type: t.task,
				Args: graphql.FieldConfigArgument{
					"id":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"accessToken": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					token, err := stringArg(p, "accessToken")
					if err != nil {
						return nil, err
					}
					if _, err := r.Guard.Authenticate(token, auth.AnyRole); err != nil {
						return nil, err
					}
					id, err := intArg(p, "id")
					if err != nil {
						return nil, err
					}
					return r.Repo.FindTaskByID(p.Context, uint(id))
				},
			},
			"getRoom": &graphql.Field{
				Type: t.room,
				Args: graphql.FieldConfigArgument{
					"roomId":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"accessToken": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					token, err := stringArg(p, "accessToken")
					if err != nil {
						return nil, err
					}
					identity, err := r.Guard.Authenticate(token, auth.AnyRole)
					if err != nil {
						return nil, err
					}
					roomID, err := intArg(p, "roomId")
					if err != nil {
						return nil, err
					}
					member, err := r.Repo.UserInRoom(p.Context, identity.UserID, uint(roomID))
					if err != nil {
						return nil, err
					}
					if !member {
						return nil, errNotInRoom
					}
					return r.Repo.FindRoomByID(p.Context, uint(roomID))
				},
			},
			"searchTasks": &graphql.Field{
				Type: t.taskSearch,
				Args: graphql.FieldConfigArgument{
					"query":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"accessToken": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"page":        &graphql.ArgumentConfig{Type: graphql.Int},
					"size":        &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					token, err := stringArg(p, "accessToken")
					if err != nil {
						return nil, err
					}
					if _, err := r.Guard.Authenticate(token, auth.AnyRole); err != nil {
						return nil, err
					}
					query, err := stringArg(p, "query")
					if err != nil {
						return nil, err
					}
					page := intArgDefault(p, "page", 1)
					size := intArgDefault(p, "size", 20)
					if page < 1 {
						page = 1
					}

					total, found, err := r.Tasks.Search(p.Context, query, (page-1)*size, size)
					if err != nil {
						return nil, err
					}
					return taskSearchResult{Total: total, Tasks: found}, nil
				},
			},
		},
	})
}

type taskSearchResult struct {
	Total int64
	Tasks []models.Task
}
