package model

// Identity is the verified caller identity derived from a bearer token.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
