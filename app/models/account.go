package models

// Account is the single local user record stored under the "user" key.
type Account struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PostalCode   string `json:"cep,omitempty"`
	PasswordHash string `json:"passwordHash"`
}
