package model

// Question представляет вопрос теста
type Question struct {
	ID        int    `json:"id"`
	TestID    int    `json:"test_id"`
	Statement string `json:"statement"`
}

// Option представляет вариант ответа на вопрос. Category - метка направления (вокации),
// по которой строится профиль пользователя.
type Option struct {
	ID         int    `json:"id"`
	QuestionID int    `json:"question_id"`
	Text       string `json:"text"`
	Category   string `json:"category"`
}
