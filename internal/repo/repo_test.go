package repo

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/schoolhub/classroom/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Task{},
		&models.Achievement{},
		&models.UserRoom{},
		&models.UserAchievement{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return New(db)
}

func createUser(t *testing.T, r *GormRepo, email string) *models.User {
	user := models.User{
		Username:     "user_" + email,
		Email:        email,
		PasswordHash: "x",
		Role:         models.RoleStudent,
	}
	require.NoError(t, r.CreateUser(context.Background(), &user))
	return &user
}

func TestRotateRefreshTokenIsConditional(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	user := createUser(t, r, "student@school.edu")

	require.NoError(t, r.SetRefreshToken(ctx, user.ID, "token-1"))

	require.NoError(t, r.RotateRefreshToken(ctx, user.ID, "token-1", "token-2"))

	// losing side of the race: the stored token moved on
	err := r.RotateRefreshToken(ctx, user.ID, "token-1", "token-3")
	require.ErrorIs(t, err, ErrStaleRefreshToken)

	stored, err := r.FindUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "token-2", *stored.RefreshToken)
}

func TestAwardAchievementBumpsScore(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	user := createUser(t, r, "student@school.edu")

	achievement := models.Achievement{Title: "First steps", Description: "Finish a task"}
	require.NoError(t, r.CreateAchievement(ctx, &achievement))

	link, err := r.AwardAchievement(ctx, user.ID, achievement.ID)
	require.NoError(t, err)
	require.Equal(t, user.ID, link.UserID)
	require.Equal(t, achievement.ID, link.AchievementID)

	stored, err := r.FindUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 1, stored.Score)

	achievements, err := r.AchievementsOfUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, achievements, 1)
	require.Equal(t, "First steps", achievements[0].Title)
}

func TestAwardAchievementUnknownUser(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	achievement := models.Achievement{Title: "First steps", Description: "Finish a task"}
	require.NoError(t, r.CreateAchievement(ctx, &achievement))

	_, err := r.AwardAchievement(ctx, 999, achievement.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRoomMembership(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	teacher := createUser(t, r, "teacher@school.edu")
	student := createUser(t, r, "student@school.edu")

	room := models.Room{Owner: teacher.ID, Name: "5A Math"}
	require.NoError(t, r.CreateRoom(ctx, &room))

	_, err := r.AddUserToRoom(ctx, student.ID, room.ID)
	require.NoError(t, err)

	member, err := r.UserInRoom(ctx, student.ID, room.ID)
	require.NoError(t, err)
	require.True(t, member)

	member, err = r.UserInRoom(ctx, teacher.ID, room.ID)
	require.NoError(t, err)
	require.False(t, member)

	rooms, err := r.RoomsOfUser(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	require.Equal(t, "5A Math", rooms[0].Name)

	members, err := r.MembersOfRoom(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, student.ID, members[0].ID)
}

func TestFindUserByEmailNotFound(t *testing.T) {
	r := newTestRepo(t)

	_, err := r.FindUserByEmail(context.Background(), "nobody@school.edu")
	require.ErrorIs(t, err, ErrNotFound)
}
