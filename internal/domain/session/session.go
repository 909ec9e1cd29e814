package session

// Session holds the identity credentials attached to every gateway
// request. Either both fields are set or both are empty; there is no
// partial state.
type Session struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// IsAuthenticated reports whether the session carries a full identity.
func (s Session) IsAuthenticated() bool {
	return s.Email != "" && s.Password != ""
}
