package models

import (
	"time"
)

// Role values carried in token claims and stored on the user row.
const (
	RoleStudent = 0
	RoleTeacher = 1
	RoleAdmin   = 2
)

type User struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string  `gorm:"unique;not null"          json:"username"`
	Email        string  `gorm:"unique;not null"          json:"email"`
	PasswordHash string  `gorm:"not null"                 json:"-"`
	Role         int     `gorm:"not null"                 json:"role"`
	RefreshToken *string `json:"-"`

	Name      string  `json:"name"`
	LastName  string  `json:"last_name"`
	School    string  `json:"school"`
	Class     string  `json:"class"`
	Score     int     `gorm:"default:0" json:"score"`
	AvatarURL *string `json:"avatar_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Room struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Owner     uint      `gorm:"index;not null"           json:"owner"`
	Name      string    `gorm:"not null"                 json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Task struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomID    uint      `gorm:"index;not null"           json:"room_id"`
	Title     string    `gorm:"not null"                 json:"title"`
	Content   string    `gorm:"not null"                 json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Achievement struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"not null"                 json:"title"`
	Description string    `gorm:"not null"                 json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UserRoom struct {
	ID     uint `gorm:"primaryKey;autoIncrement"            json:"id"`
	UserID uint `gorm:"index;not null;uniqueIndex:idx_user_room" json:"user_id"`
	RoomID uint `gorm:"not null;uniqueIndex:idx_user_room"  json:"room_id"`
}

type UserAchievement struct {
	ID            uint `gorm:"primaryKey;autoIncrement"                   json:"id"`
	UserID        uint `gorm:"index;not null;uniqueIndex:idx_user_achievement" json:"user_id"`
	AchievementID uint `gorm:"not null;uniqueIndex:idx_user_achievement"  json:"achievement_id"`
}
