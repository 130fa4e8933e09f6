package models

import "time"

// DateLayout is the human readable form used for exercise dates in responses.
const DateLayout = "Mon Jan 02 2006"

// Exercise is a single logged exercise session.
type Exercise struct {
	ID          string    `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string    `json:"user_id" gorm:"index;type:varchar(36);not null"`
	Description string    `json:"description" gorm:"not null"`
	Duration    int       `json:"duration" gorm:"not null"` // minutes
	Date        time.Time `json:"date" gorm:"index"`
	CreatedAt   time.Time `json:"-"`
}

// FormattedDate returns the exercise date in DateLayout, in UTC.
func (e Exercise) FormattedDate() string {
	return e.Date.UTC().Format(DateLayout)
}

// ExerciseFilter narrows an exercise log query. Nil bounds are open and both
// bounds are inclusive.
type ExerciseFilter struct {
	UserID string
	From   *time.Time
	To     *time.Time
	Limit  int
}
