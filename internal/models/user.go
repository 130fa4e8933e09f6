package models

import "time"

// User is a person whose exercises are tracked.
type User struct {
	ID        string    `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	Username  string    `json:"username" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"-"`
}
