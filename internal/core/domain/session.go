package domain

// Session is the credential pair the gateway holds for one logged-in
// browser: the opaque bearer token issued by the remote flags server plus
// the account email. Token and Email are always written and cleared
// together; there is no client-side expiry tracking beyond what the server
// enforces through 401 responses.
type Session struct {
	// ID is the gateway-issued session identifier (never sent upstream).
	ID    string `json:"-"`
	Token string `json:"token"`
	Email string `json:"email"`
}

// Authenticated reports whether the session carries an upstream token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}
