package api

const (
	authCookieName     = "milla_admin"
	languageCookieName = "milla_lang"
	contextAdminKey    = "admin_subject"
	contextLanguageKey = "current_language"
	contextMessagesKey = "current_messages"
)
