package tgutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/IT-Nick/vocational-profile/internal/domain/model"
)

// CleanCallbackData очищает данные callback от служебного префикса telebot и пробелов
func CleanCallbackData(data string) string {
	cleaned := strings.TrimSpace(data)
	cleaned = strings.ReplaceAll(cleaned, "\f", "")
	cleaned = strings.ReplaceAll(cleaned, "\\f", "")
	return cleaned
}

// SelectTestData данные кнопки выбора теста: test_<testID>
func SelectTestData(testID int) string {
	return fmt.Sprintf("%s%d", model.SelectTestPrefix, testID)
}

// ParseSelectTestData разбирает данные кнопки выбора теста
func ParseSelectTestData(data string) (int, error) {
	cleaned := CleanCallbackData(data)
	if !strings.HasPrefix(cleaned, model.SelectTestPrefix) {
		return 0, fmt.Errorf("invalid select test data: %q", data)
	}
	return parseID("test ID", strings.TrimPrefix(cleaned, model.SelectTestPrefix))
}

// AnswerData данные кнопки варианта ответа: answer_<testID>_<questionID>_<optionID>
func AnswerData(testID, questionID, optionID int) string {
	return fmt.Sprintf("%s%d_%d_%d", model.AnswerPrefix, testID, questionID, optionID)
}

// ParseAnswerData разбирает данные кнопки варианта ответа
func ParseAnswerData(data string) (testID, questionID, optionID int, err error) {
	cleaned := CleanCallbackData(data)
	if !strings.HasPrefix(cleaned, model.AnswerPrefix) {
		return 0, 0, 0, fmt.Errorf("invalid answer data: %q", data)
	}

	parts := strings.Split(strings.TrimPrefix(cleaned, model.AnswerPrefix), "_")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid answer data: %q", data)
	}

	if testID, err = parseID("test ID", parts[0]); err != nil {
		return 0, 0, 0, err
	}
	if questionID, err = parseID("question ID", parts[1]); err != nil {
		return 0, 0, 0, err
	}
	if optionID, err = parseID("option ID", parts[2]); err != nil {
		return 0, 0, 0, err
	}
	return testID, questionID, optionID, nil
}

func parseID(name, value string) (int, error) {
	id, err := strconv.Atoi(value)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, value)
	}
	return id, nil
}
