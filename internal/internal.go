package internal

const (
	COOKIE_SESSION_NAME  = "mtys_session"
	COOKIE_REDIRECT_NAME = "mtys_redirect"
)
