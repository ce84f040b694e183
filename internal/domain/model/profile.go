package model

import "time"

// Profile представляет вычисленный профиль пользователя по тесту:
// наиболее частое направление и следующее за ним.
type Profile struct {
	ID                int       `json:"id"`
	UserID            int64     `json:"user_id"`
	TestID            int       `json:"test_id"`
	PrimaryCategory   string    `json:"primary_category"`
	SecondaryCategory string    `json:"secondary_category"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
