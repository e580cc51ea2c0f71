package graph

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/schoolhub/classroom/internal/auth"
	"github.com/schoolhub/classroom/internal/models"
	"github.com/schoolhub/classroom/pkg/logging"
)

func (r *Resolver) mutationRoot(t *schemaTypes) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"register": &graphql.Field{
				Type: t.user,
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"role":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"name":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"lastName": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"school":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"class":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveRegister,
			},
			"login": &graphql.Field{
				Type: t.loginResponse,
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveLogin,
			},
			"refresh": &graphql.Field{
				Type: t.loginResponse,
				Args: graphql.FieldConfigArgument{
					"refreshToken": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					token, err := stringArg(p, "refreshToken")
					if err != nil {
						return nil, err
					}
					return r.Auth.Refresh(p.Context, token)
				},
			},
			"createRoom": &graphql.Field{
				Type: t.room,
				Args: graphql.FieldConfigArgument{
					"accessToken": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"name":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveCreateRoom,
			},
			"createTask": &graphql.Field{
				Type: t.task,
				Args: graphql.FieldConfigArgument{
					"accessToken": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"roomId":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"title":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"content":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveCreateTask,
			},
			// Spelling preserved from the public API contract.
			"createAchievment": &graphql.Field{
				Type: t.achievement,
				Args: graphql.FieldConfigArgument{
					"accessToken": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"title":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"description": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveCreateAchievement,
			},
			"addToRoom": &graphql.Field{
				Type: t.userRoom,
				Args: graphql.FieldConfigArgument{
					"accessToken": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"userId":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"roomId":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.resolveAddToRoom,
			},
			"addAchievement": &graphql.Field{
				Type: t.userAchievement,
				Args: graphql.FieldConfigArgument{
					"accessToken":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"userId":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"achievmentId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.resolveAddAchievement,
			},
			"edit": &graphql.Field{
				Type: t.user,
				Args: graphql.FieldConfigArgument{
					"accessToken": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"school":      &graphql.ArgumentConfig{Type: graphql.String},
					"name":        &graphql.ArgumentConfig{Type: graphql.String},
					"lastName":    &graphql.ArgumentConfig{Type: graphql.String},
					"class":       &graphql.ArgumentConfig{Type: graphql.String},
					"avatarUrl":   &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.resolveEdit,
			},
		},
	})
}

func (r *Resolver) resolveRegister(p graphql.ResolveParams) (interface{}, error) {
	var in auth.RegisterInput
	var err error
	if in.Username, err = stringArg(p, "username"); err != nil {
		return nil, err
	}
	if in.Email, err = stringArg(p, "email"); err != nil {
		return nil, err
	}
	if in.Password, err = stringArg(p, "password"); err != nil {
		return nil, err
	}
	if in.Role, err = intArg(p, "role"); err != nil {
		return nil, err
	}
	if in.Name, err = stringArg(p, "name"); err != nil {
		return nil, err
	}
	if in.LastName, err = stringArg(p, "lastName"); err != nil {
		return nil, err
	}
	if in.School, err = stringArg(p, "school"); err != nil {
		return nil, err
	}
	if in.Class, err = stringArg(p, "class"); err != nil {
		return nil, err
	}

	user, err := r.Auth.Register(p.Context, in)
	if err != nil {
		return nil, err
	}

	r.publish(p.Context, fmt.Sprint(user.ID), map[string]any{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	})
	return user, nil
}

func (r *Resolver) resolveLogin(p graphql.ResolveParams) (interface{}, error) {
	email, err := stringArg(p, "email")
	if err != nil {
		return nil, err
	}
	password, err := stringArg(p, "password")
	if err != nil {
		return nil, err
	}

	pair, err := r.Auth.Login(p.Context, email, password)
	if err != nil {
		return nil, err
	}

	r.publish(p.Context, email, map[string]any{
		"type":  "user_logged_in",
		"email": email,
	})
	return pair, nil
}

func (r *Resolver) resolveCreateRoom(p graphql.ResolveParams) (interface{}, error) {
	token, err := stringArg(p, "accessToken")
	if err != nil {
		return nil, err
	}
	identity, err := r.Guard.Authenticate(token, auth.TeacherOrAdmin)
	if err != nil {
		return nil, err
	}
	name, err := stringArg(p, "name")
	if err != nil {
		return nil, err
	}

	room := models.Room{Owner: identity.UserID, Name: name}
	if err := r.Repo.CreateRoom(p.Context, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *Resolver) resolveCreateTask(p graphql.ResolveParams) (interface{}, error) {
	token, err := stringArg(p, "accessToken")
	if err != nil {
		return nil, err
	}
	if _, err := r.Guard.Authenticate(token, auth.TeacherOrAdmin); err != nil {
		return nil, err
	}
	roomID, err := intArg(p, "roomId")
	if err != nil {
		return nil, err
	}
	title, err := stringArg(p, "title")
	if err != nil {
		return nil, err
	}
	content, err := stringArg(p, "content")
	if err != nil {
		return nil, err
	}

	task := models.Task{RoomID: uint(roomID), Title: title, Content: content}
	if err := r.Repo.CreateTask(p.Context, &task); err != nil {
		return nil, err
	}

	if err := r.Tasks.Index(p.Context, &task); err != nil {
		logging.FromContext(p.Context).Error("task index error", "task_id", task.ID, "error", err)
	}
	return &task, nil
}

func (r *Resolver) resolveCreateAchievement(p graphql.ResolveParams) (interface{}, error) {
	token, err := stringArg(p, "accessToken")
	if err != nil {
		return nil, err
	}
	if _, err := r.Guard.Authenticate(token, auth.AdminOnly); err != nil {
		return nil, err
	}
	title, err := stringArg(p, "title")
	if err != nil {
		return nil, err
	}
	description, err := stringArg(p, "description")
	if err != nil {
		return nil, err
	}

	achievement := models.Achievement{Title: title, Description: description}
	if err := r.Repo.CreateAchievement(p.Context, &achievement); err != nil {
		return nil, err
	}
	return &achievement, nil
}

func (r *Resolver) resolveAddToRoom(p graphql.ResolveParams) (interface{}, error) {
	token, err := stringArg(p, "accessToken")
	if err != nil {
		return nil, err
	}
	if _, err := r.Guard.Authenticate(token, auth.TeacherOrAdmin); err != nil {
		return nil, err
	}
	userID, err := intArg(p, "userId")
	if err != nil {
		return nil, err
	}
	roomID, err := intArg(p, "roomId")
	if err != nil {
		return nil, err
	}

	return r.Repo.AddUserToRoom(p.Context, uint(userID), uint(roomID))
}

func (r *Resolver) resolveAddAchievement(p graphql.ResolveParams) (interface{}, error) {
	token, err := stringArg(p, "accessToken")
	if err != nil {
		return nil, err
	}
	if _, err := r.Guard.Authenticate(token, auth.TeacherOrAdmin); err != nil {
		return nil, err
	}
	userID, err := intArg(p, "userId")
	if err != nil {
		return nil, err
	}
	achievementID, err := intArg(p, "achievmentId")
	if err != nil {
		return nil, err
	}

	link, err := r.Repo.AwardAchievement(p.Context, uint(userID), uint(achievementID))
	if err != nil {
		return nil, err
	}

	r.publish(p.Context, fmt.Sprint(userID), map[string]any{
		"type":           "achievement_awarded",
		"user_id":        userID,
		"achievement_id": achievementID,
	})
	return link, nil
}

func (r *Resolver) resolveEdit(p graphql.ResolveParams) (interface{}, error) {
	token, err := stringArg(p, "accessToken")
	if err != nil {
		return nil, err
	}
	identity, err := r.Guard.Authenticate(token, auth.AnyRole)
	if err != nil {
		return nil, err
	}

	user, err := r.Repo.FindUserByID(p.Context, identity.UserID)
	if err != nil {
		return nil, err
	}

	if school, ok := optStringArg(p, "school"); ok {
		user.School = school
	}
	if name, ok := optStringArg(p, "name"); ok {
		user.Name = name
	}
	if lastName, ok := optStringArg(p, "lastName"); ok {
		user.LastName = lastName
	}
	if class, ok := optStringArg(p, "class"); ok {
		user.Class = class
	}
	if avatarURL, ok := optStringArg(p, "avatarUrl"); ok {
		user.AvatarURL = &avatarURL
	}

	if err := r.Repo.UpdateUser(p.Context, user); err != nil {
		return nil, err
	}
	return user, nil
}
