package models

import "time"

type Book struct {
	Id              uint      `gorm:"primaryKey;column:id" json:"id"`
	Title           string    `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Author          string    `gorm:"column:author;type:varchar(255);not null" json:"author"`
	IsBn            string    `gorm:"column:isbn;type:varchar(20);unique;not null" json:"isbn"`
	TotalCopies     int       `gorm:"column:total_copies;type:integer;not null" json:"total_copies"`
	AvailableCopies int       `gorm:"column:available_copies;type:integer;not null" json:"available_copies"`
	CreatedAt       time.Time `gorm:"autoCreateTime;column:created_at" json:"-"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime;column:updated_at" json:"-"`
}
