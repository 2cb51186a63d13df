package auth

import "time"

// User is the domain entity. The daily analysis counter lives on the
// profile row and is interpreted lazily against today's date.
type User struct {
	ID                 string
	Email              string
	Password           string
	Role               string
	IsActive           bool
	DailyAnalysisCount int
	LastAnalysisDate   *time.Time
	CreatedAt          time.Time
}
