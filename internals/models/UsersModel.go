package models

import "time"

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// defining the schema
type User struct {
	Id           uint      `gorm:"primaryKey;column:id"`
	Username     string    `gorm:"column:username;type:varchar(100);unique;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Role         string    `gorm:"column:role;type:varchar(20);not null;default:'User';check:role IN ('Admin', 'User')"`
	CreatedAt    time.Time `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime;column:updated_at"`
}
