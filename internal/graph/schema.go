package graph

import (
	"github.com/graphql-go/graphql"
)

// NewSchema assembles the full query/mutation schema around the resolver.
// Scalar fields resolve off the model structs by name; relation fields get
// explicit resolvers that hit the repository.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	achievementType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Achievment",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.Int},
			"title":       &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"createdAt":   &graphql.Field{Type: graphql.DateTime},
			"updatedAt":   &graphql.Field{Type: graphql.DateTime},
		},
	})

	taskType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Task",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.Int},
			"roomId":    &graphql.Field{Type: graphql.Int},
			"title":     &graphql.Field{Type: graphql.String},
			"content":   &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
			"updatedAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "UserModel",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.Int},
			"username":  &graphql.Field{Type: graphql.String},
			"email":     &graphql.Field{Type: graphql.String},
			"role":      &graphql.Field{Type: graphql.Int},
			"name":      &graphql.Field{Type: graphql.String},
			"lastName":  &graphql.Field{Type: graphql.String},
			"school":    &graphql.Field{Type: graphql.String},
			"class":     &graphql.Field{Type: graphql.String},
			"score":     &graphql.Field{Type: graphql.Int},
			"avatarUrl": &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
			"updatedAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	roomType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RoomModel",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.Int},
			"owner":     &graphql.Field{Type: graphql.Int},
			"name":      &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
			"updatedAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	// Relation fields are added after construction because user and room
	// reference each other.
	userType.AddFieldConfig("achievments", &graphql.Field{
		Type: graphql.NewList(achievementType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			user, ok := userSource(p)
			if !ok {
				return nil, nil
			}
			return r.Repo.AchievementsOfUser(p.Context, user.ID)
		},
	})
	userType.AddFieldConfig("rooms", &graphql.Field{
		Type: graphql.NewList(roomType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			user, ok := userSource(p)
			if !ok {
				return nil, nil
			}
			return r.Repo.RoomsOfUser(p.Context, user.ID)
		},
	})
	roomType.AddFieldConfig("tasks", &graphql.Field{
		Type: graphql.NewList(taskType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			room, ok := roomSource(p)
			if !ok {
				return nil, nil
			}
			return r.Repo.TasksOfRoom(p.Context, room.ID)
		},
	})
	roomType.AddFieldConfig("users", &graphql.Field{
		Type: graphql.NewList(userType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			room, ok := roomSource(p)
			if !ok {
				return nil, nil
			}
			return r.Repo.MembersOfRoom(p.Context, room.ID)
		},
	})

	userRoomType := graphql.NewObject(graphql.ObjectConfig{
		Name: "UserRoomModel",
		Fields: graphql.Fields{
			"id":     &graphql.Field{Type: graphql.Int},
			"userId": &graphql.Field{Type: graphql.Int},
			"roomId": &graphql.Field{Type: graphql.Int},
		},
	})

	userAchievementType := graphql.NewObject(graphql.ObjectConfig{
		Name: "UserAchievmentModel",
		Fields: graphql.Fields{
			"id":            &graphql.Field{Type: graphql.Int},
			"userId":        &graphql.Field{Type: graphql.Int},
			"achievementId": &graphql.Field{Type: graphql.Int},
		},
	})

	loginResponseType := graphql.NewObject(graphql.ObjectConfig{
		Name: "LoginResponse",
		Fields: graphql.Fields{
			"accessToken":  &graphql.Field{Type: graphql.String},
			"refreshToken": &graphql.Field{Type: graphql.String},
		},
	})

	taskSearchResultType := graphql.NewObject(graphql.ObjectConfig{
		Name: "TaskSearchResult",
		Fields: graphql.Fields{
			"total": &graphql.Field{Type: graphql.Int},
			"tasks": &graphql.Field{Type: graphql.NewList(taskType)},
		},
	})

	types := &schemaTypes{
		user:            userType,
		room:            roomType,
		task:            taskType,
		achievement:     achievementType,
		userRoom:        userRoomType,
		userAchievement: userAchievementType,
		loginResponse:   loginResponseType,
		taskSearch:      taskSearchResultType,
	}

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    r.queryRoot(types),
		Mutation: r.mutationRoot(types),
	})
}

type schemaTypes struct {
	user            *graphql.Object
	room            *graphql.Object
	task            *graphql.Object
	achievement     *graphql.Object
	userRoom        *graphql.Object
	userAchievement *graphql.Object
	loginResponse   *graphql.Object
	taskSearch      *graphql.Object
}
