package models

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/diewo77/gestion-commandes/validation"
)

// Order is a customer order. Totals are entered by the user and stored as
// given. An Order with a zero ID has not been confirmed by the server yet.
type Order struct {
	ID         int         `gorm:"primaryKey;autoIncrement" json:"idCommande,omitempty"`
	CodeClient string      `gorm:"size:50;index;not null" json:"codeClient"`
	Date       Date        `json:"dateCommande"`
	TotalHT    Number      `json:"totalHT"`
	TotalTTC   Number      `json:"totalTTC"`
	TVA        Number      `json:"TVA"`
	Lines      []OrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"produits,omitempty"`
}

func (o Order) Key() int      { return o.ID }
func (o Order) IsNew() bool   { return o.ID == 0 }
func (o Order) Label() string { return "la commande " + strconv.Itoa(o.ID) }

func (o Order) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("codeClient", o.CodeClient, v)
	validation.NonNegativeFloat("totalHT", o.TotalHT.Float(), v)
	validation.NonNegativeFloat("totalTTC", o.TotalTTC.Float(), v)
	validation.NonNegativeFloat("TVA", o.TVA.Float(), v)
	return v
}

// MarshalJSON writes the lines of "produits" with an upper-case TVA member,
// as ajouter_commande.php expects. Standalone lines keep "tva".
func (o Order) MarshalJSON() ([]byte, error) {
	type plain Order
	return json.Marshal(struct {
		plain
		Lines []aggregateLine `json:"produits,omitempty"`
	}{plain(o), aggregateLines(len(o.Lines), func(i int) aggregateLine {
		l := o.Lines[i]
		return aggregateLine{l.CodeProduit, l.Quantite, l.PrixUnitaireHT, l.TVA, l.Designation}
	})})
}

// aggregateLine is a line inside the "produits" member of a submission.
type aggregateLine struct {
	CodeProduit    string `json:"codeProduit"`
	Quantite       int    `json:"quantite"`
	PrixUnitaireHT Number `json:"prixUnitaireHT"`
	TVA            Number `json:"TVA"`
	Designation    string `json:"designation,omitempty"`
}

func aggregateLines(n int, at func(int) aggregateLine) []aggregateLine {
	if n == 0 {
		return nil
	}
	out := make([]aggregateLine, n)
	for i := range out {
		out[i] = at(i)
	}
	return out
}

// ValidateSubmission checks an order submitted together with its lines.
func (o Order) ValidateSubmission() validation.Violations {
	v := o.Validate()
	validateLines(len(o.Lines), func(i int) (string, int) { return o.Lines[i].CodeProduit, o.Lines[i].Quantite }, v)
	return v
}

// OrderLine is one product of an order. Designation is filled in on reads.
type OrderLine struct {
	OrderID        int    `gorm:"primaryKey;autoIncrement:false" json:"idCommande,omitempty"`
	CodeProduit    string `gorm:"primaryKey;size:50" json:"codeProduit"`
	Quantite       int    `gorm:"not null" json:"quantite"`
	PrixUnitaireHT Number `json:"prixUnitaireHT"`
	TVA            Number `json:"tva"`
	Designation    string `gorm:"-" json:"designation,omitempty"`
}

func (l OrderLine) Label() string {
	if l.Designation != "" {
		return l.Designation
	}
	return l.CodeProduit
}

// Validate checks a line added on its own to an existing order.
func (l OrderLine) Validate() validation.Violations {
	v := validation.Violations{}
	validation.PositiveInt("idCommande", l.OrderID, v)
	validation.Required("codeProduit", l.CodeProduit, v)
	validation.PositiveInt("quantite", l.Quantite, v)
	validation.NonNegativeFloat("prixUnitaireHT", l.PrixUnitaireHT.Float(), v)
	validation.RangeFloat("tva", l.TVA.Float(), 0, 100, v)
	return v
}

func validateLines(n int, at func(int) (string, int), v validation.Violations) {
	if n == 0 {
		v["produits"] = "required"
		return
	}
	for i := 0; i < n; i++ {
		code, qty := at(i)
		if code == "" {
			v[fmt.Sprintf("produits[%d].codeProduit", i)] = "required"
		}
		validation.PositiveInt(fmt.Sprintf("produits[%d].quantite", i), qty, v)
	}
}
