package model

// Test представляет тест, набор вопросов которого проходит пользователь
type Test struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
