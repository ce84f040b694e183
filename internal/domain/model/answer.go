package model

import "time"

// Answer представляет выбор пользователем варианта ответа на вопрос теста.
// На пару (test_id, question_id, user_id) допускается не более одной записи.
type Answer struct {
	ID         int       `json:"id"`
	TestID     int       `json:"test_id"`
	QuestionID int       `json:"question_id"`
	OptionID   int       `json:"option_id"`
	UserID     int64     `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AnswerDetails ответ пользователя вместе с текстом вопроса и выбранного варианта
type AnswerDetails struct {
	ID         int    `json:"id"`
	QuestionID int    `json:"question_id"`
	Statement  string `json:"statement"`
	OptionID   int    `json:"option_id"`
	OptionText string `json:"option_text"`
}
