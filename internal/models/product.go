package models

import "github.com/diewo77/gestion-commandes/validation"

// Product is a catalogue item. TotalHT is the sale price excluding tax and
// TVA the VAT rate in percent.
type Product struct {
	Code        string `gorm:"primaryKey;size:50" json:"codeProduit"`
	Designation string `gorm:"size:255;not null" json:"designation"`
	Suite       string `gorm:"size:255" json:"suite"`
	PrixAchatHT Number `gorm:"not null" json:"prixAchatHT"`
	TotalHT     Number `gorm:"not null" json:"totalHT"`
	TVA         Number `gorm:"not null" json:"TVA"`
}

func (p Product) Key() string   { return p.Code }
func (p Product) Label() string { return p.Designation }

// PriceTTC is the sale price including VAT.
func (p Product) PriceTTC() float64 {
	return p.TotalHT.Float() * (1 + p.TVA.Float()/100)
}

func (p Product) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("codeProduit", p.Code, v)
	validation.Required("designation", p.Designation, v)
	validation.NonNegativeFloat("prixAchatHT", p.PrixAchatHT.Float(), v)
	validation.NonNegativeFloat("totalHT", p.TotalHT.Float(), v)
	validation.RangeFloat("TVA", p.TVA.Float(), 0, 100, v)
	return v
}
