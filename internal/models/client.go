package models

// Client represents a customer of the moving business.
//
// The identifier is assigned by the backend and immutable. NombreDevis is a
// server-computed count of associated devis; it is carried for display only
// and never authoritative on this side.
type Client struct {
	ID           int64    `json:"id"`
	Nom          string   `json:"nom"`
	Email        string   `json:"email"`
	Telephone    string   `json:"telephone,omitempty"`
	DateCreation DateOnly `json:"dateCreation"`
	NombreDevis  int      `json:"nombreDevis"`
}

// Validate checks the locally required fields before a create or update
// call. Remote-side rules (uniqueness, referential checks) stay with the
// backend.
func (c *Client) Validate() error {
	if c.Nom == "" {
		return NewValidationError("nom", "le nom est obligatoire")
	}
	if c.Email == "" {
		return NewValidationError("email", "l'email est obligatoire")
	}
	return nil
}
