package model

// Префиксы callback-данных инлайн-кнопок. Привязаны к разбору в обработчиках telegram,
// не следует изменять их без изменения логики в answer_handler и select_test_handler.
const (
	SelectTestPrefix = "test_"
	AnswerPrefix     = "answer_"
)
