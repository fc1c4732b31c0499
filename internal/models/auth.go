package models

// LoginRequest holds credentials forwarded to the remote store. Login may
// be an email or a username; neither is interpreted locally.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Session is the remote store's answer to a successful login. Token is
// opaque: it is echoed back by clients in the user-token header and
// forwarded verbatim, never inspected or cached.
type Session struct {
	Token    string `json:"user-token"`
	ObjectID string `json:"objectId"`
	Email    string `json:"email"`
}
