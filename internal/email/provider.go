package email

// Provider sends the transactional mail the API needs. The SMTP
// implementation lives in sender.go; tests substitute a mock.
type Provider interface {
	SendVerification(to, login, token string) error
	SendPasswordReset(to, login, token string) error
}
