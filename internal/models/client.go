package models

import "github.com/diewo77/gestion-commandes/validation"

// Client is a customer, identified by a user-chosen code.
type Client struct {
	Code          string `gorm:"primaryKey;size:50" json:"codeClient"`
	Nom           string `gorm:"size:255;not null" json:"nomClient"`
	Prenom        string `gorm:"size:255" json:"prenomClient"`
	DateNaissance Date   `json:"dateNaissance"`
	Email         string `gorm:"size:255" json:"email"`
	Telephone     string `gorm:"size:50" json:"telephone"`
}

func (c Client) Key() string { return c.Code }

func (c Client) Label() string {
	if c.Prenom == "" {
		return c.Nom
	}
	return c.Prenom + " " + c.Nom
}

// Validate checks that every field is filled in.
func (c Client) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("codeClient", c.Code, v)
	validation.Required("nomClient", c.Nom, v)
	validation.Required("prenomClient", c.Prenom, v)
	validation.Required("dateNaissance", c.DateNaissance.String(), v)
	validation.Required("email", c.Email, v)
	validation.Required("telephone", c.Telephone, v)
	return v
}
