package model

// Ключи текстов сообщений бота в таблице messages
const (
	WelcomeMessageKey    = "welcome_message"
	NoTestsMessageKey    = "no_tests_message"
	QuestionMessageKey   = "question_message"
	TestFinishedKey      = "test_finished_message"
	ProfileMessageKey    = "profile_message"
	NoProfilesMessageKey = "no_profiles_message"
	PurgeDoneMessageKey  = "purge_done_message"
	PurgeUsageMessageKey = "purge_usage_message"
	NothingToPurgeKey    = "nothing_to_purge_message"
	ForbiddenMessageKey  = "forbidden_message"
	StaleButtonKey       = "stale_button_message"
	ErrorMessageKey      = "error_message"
)
