package models

import (
	"strconv"

	"github.com/diewo77/gestion-commandes/validation"
)

// Proforma is a pro-forma invoice, shaped like an Order.
type Proforma struct {
	ID         int            `gorm:"primaryKey;autoIncrement" json:"idProforma,omitempty"`
	CodeClient string         `gorm:"size:50;index;not null" json:"codeClient"`
	Date       Date           `json:"dateProforma"`
	TotalHT    Number         `json:"totalHT"`
	TotalTTC   Number         `json:"totalTTC"`
	TVA        Number         `json:"TVA"`
	Lines      []ProformaLine `gorm:"foreignKey:ProformaID;constraint:OnDelete:CASCADE" json:"produits,omitempty"`
}

func (p Proforma) Key() int      { return p.ID }
func (p Proforma) IsNew() bool   { return p.ID == 0 }
func (p Proforma) Label() string { return "la proforma " + strconv.Itoa(p.ID) }

func (p Proforma) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("codeClient", p.CodeClient, v)
	validation.NonNegativeFloat("totalHT", p.TotalHT.Float(), v)
	validation.NonNegativeFloat("totalTTC", p.TotalTTC.Float(), v)
	validation.NonNegativeFloat("TVA", p.TVA.Float(), v)
	return v
}

func (p Proforma) ValidateSubmission() validation.Violations {
	v := p.Validate()
	validateLines(len(p.Lines), func(i int) (string, int) { return p.Lines[i].CodeProduit, p.Lines[i].Quantite }, v)
	return v
}

type ProformaLine struct {
	ProformaID     int    `gorm:"primaryKey;autoIncrement:false" json:"idProforma,omitempty"`
	CodeProduit    string `gorm:"primaryKey;size:50" json:"codeProduit"`
	Quantite       int    `gorm:"not null" json:"quantite"`
	PrixUnitaireHT Number `json:"prixUnitaireHT"`
	TVA            Number `json:"TVA"`
}

// ProformaLines converts order lines into pro-forma lines.
func ProformaLines(lines []OrderLine) []ProformaLine {
	out := make([]ProformaLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, ProformaLine{
			CodeProduit:    l.CodeProduit,
			Quantite:       l.Quantite,
			PrixUnitaireHT: l.PrixUnitaireHT,
			TVA:            l.TVA,
		})
	}
	return out
}
