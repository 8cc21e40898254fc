package models

import "time"

type Borrower struct {
	Id          uint      `gorm:"primaryKey;column:id" json:"id"`
	Name        string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email       string    `gorm:"column:email;type:varchar(255);unique;not null" json:"email"`
	PhoneNumber string    `gorm:"column:phone_number;type:varchar(30)" json:"phone_number"`
	CreatedAt   time.Time `gorm:"autoCreateTime;column:created_at" json:"-"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;column:updated_at" json:"-"`
}
