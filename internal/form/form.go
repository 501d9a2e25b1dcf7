// Package form holds the text the user is typing and turns it into
// validated entities.
package form

import (
	"strconv"
	"strings"

	"github.com/diewo77/gestion-commandes/internal/models"
	"github.com/diewo77/gestion-commandes/validation"
)

// ClientForm edits a client. When Editing, the code is read-only.
type ClientForm struct {
	Code          string
	Nom           string
	Prenom        string
	DateNaissance string
	Email         string
	Telephone     string
	editing       bool
}

func (f *ClientForm) Editing() bool { return f.editing }

// CodeReadOnly reports whether the identity field may not be changed.
func (f *ClientForm) CodeReadOnly() bool { return f.editing }

func (f *ClientForm) Reset() { *f = ClientForm{} }

func (f *ClientForm) Load(c models.Client) {
	*f = ClientForm{
		Code:          c.Code,
		Nom:           c.Nom,
		Prenom:        c.Prenom,
		DateNaissance: c.DateNaissance.String(),
		Email:         c.Email,
		Telephone:     c.Telephone,
		editing:       true,
	}
}

func (f *ClientForm) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("codeClient", f.Code, v)
	validation.Required("nomClient", f.Nom, v)
	validation.Required("prenomClient", f.Prenom, v)
	validation.Required("dateNaissance", f.DateNaissance, v)
	validation.Date("dateNaissance", f.DateNaissance, v)
	validation.Required("email", f.Email, v)
	validation.Required("telephone", f.Telephone, v)
	return v
}

func (f *ClientForm) Build() (models.Client, error) {
	if v := f.Validate(); !v.Empty() {
		return models.Client{}, v
	}
	d, err := models.ParseDate(f.DateNaissance)
	if err != nil {
		return models.Client{}, validation.Violations{"dateNaissance": "invalid_date"}
	}
	return models.Client{
		Code:          strings.TrimSpace(f.Code),
		Nom:           strings.TrimSpace(f.Nom),
		Prenom:        strings.TrimSpace(f.Prenom),
		DateNaissance: d,
		Email:         strings.TrimSpace(f.Email),
		Telephone:     strings.TrimSpace(f.Telephone),
	}, nil
}

// ProductForm edits a product. Suite is optional.
type ProductForm struct {
	Code        string
	Designation string
	Suite       string
	PrixAchatHT string
	TotalHT     string
	TVA         string
	editing     bool
}

func (f *ProductForm) Editing() bool      { return f.editing }
func (f *ProductForm) CodeReadOnly() bool { return f.editing }
func (f *ProductForm) Reset()             { *f = ProductForm{} }

func (f *ProductForm) Load(p models.Product) {
	*f = ProductForm{
		Code:        p.Code,
		Designation: p.Designation,
		Suite:       p.Suite,
		PrixAchatHT: p.PrixAchatHT.String(),
		TotalHT:     p.TotalHT.String(),
		TVA:         p.TVA.String(),
		editing:     true,
	}
}

func (f *ProductForm) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("codeProduit", f.Code, v)
	validation.Required("designation", f.Designation, v)
	requiredNumber("prixAchatHT", f.PrixAchatHT, v)
	requiredNumber("totalHT", f.TotalHT, v)
	requiredNumber("TVA", f.TVA, v)
	return v
}

func (f *ProductForm) Build() (models.Product, error) {
	if v := f.Validate(); !v.Empty() {
		return models.Product{}, v
	}
	p := models.Product{
		Code:        strings.TrimSpace(f.Code),
		Designation: strings.TrimSpace(f.Designation),
		Suite:       strings.TrimSpace(f.Suite),
		PrixAchatHT: number(f.PrixAchatHT),
		TotalHT:     number(f.TotalHT),
		TVA:         number(f.TVA),
	}
	if v := p.Validate(); !v.Empty() {
		return models.Product{}, v
	}
	return p, nil
}

// DocumentForm edits the header of an order or a pro-forma. Totals are
// typed by the user and never recomputed.
type DocumentForm struct {
	ID         int
	CodeClient string
	Date       string
	TotalHT    string
	TotalTTC   string
	TVA        string
	editing    bool
}

// NewDocumentForm returns an empty form dated today.
func NewDocumentForm() *DocumentForm {
	f := &DocumentForm{}
	f.Reset()
	return f
}

func (f *DocumentForm) Editing() bool { return f.editing }

func (f *DocumentForm) Reset() { *f = DocumentForm{Date: models.Today().String()} }

func (f *DocumentForm) LoadOrder(o models.Order) {
	f.load(o.ID, o.CodeClient, o.Date, o.TotalHT, o.TotalTTC, o.TVA)
}

func (f *DocumentForm) LoadProforma(p models.Proforma) {
	f.load(p.ID, p.CodeClient, p.Date, p.TotalHT, p.TotalTTC, p.TVA)
}

func (f *DocumentForm) load(id int, code string, d models.Date, ht, ttc, tva models.Number) {
	*f = DocumentForm{
		ID:         id,
		CodeClient: code,
		Date:       d.String(),
		TotalHT:    ht.String(),
		TotalTTC:   ttc.String(),
		TVA:        tva.String(),
		editing:    true,
	}
}

func (f *DocumentForm) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("codeClient", f.CodeClient, v)
	validation.Date("date", f.Date, v)
	requiredNumber("totalHT", f.TotalHT, v)
	requiredNumber("totalTTC", f.TotalTTC, v)
	requiredNumber("TVA", f.TVA, v)
	return v
}

func (f *DocumentForm) header() (models.Date, error) {
	if v := f.Validate(); !v.Empty() {
		return models.Date{}, v
	}
	if strings.TrimSpace(f.Date) == "" {
		return models.Today(), nil
	}
	return models.ParseDate(f.Date)
}

func (f *DocumentForm) BuildOrder() (models.Order, error) {
	d, err := f.header()
	if err != nil {
		return models.Order{}, err
	}
	return models.Order{
		ID:         f.ID,
		CodeClient: strings.TrimSpace(f.CodeClient),
		Date:       d,
		TotalHT:    number(f.TotalHT),
		TotalTTC:   number(f.TotalTTC),
		TVA:        number(f.TVA),
	}, nil
}

func (f *DocumentForm) BuildProforma() (models.Proforma, error) {
	o, err := f.BuildOrder()
	if err != nil {
		return models.Proforma{}, err
	}
	return models.Proforma{ID: o.ID, CodeClient: o.CodeClient, Date: o.Date, TotalHT: o.TotalHT, TotalTTC: o.TotalTTC, TVA: o.TVA}, nil
}

// LineForm adds one product to an existing order.
type LineForm struct {
	CodeProduit    string
	Quantite       string
	PrixUnitaireHT string
	TVA            string
}

func (f *LineForm) Reset() { *f = LineForm{} }

func (f *LineForm) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("codeProduit", f.CodeProduit, v)
	validation.Required("quantite", f.Quantite, v)
	validation.Integer("quantite", f.Quantite, v)
	requiredNumber("prixUnitaireHT", f.PrixUnitaireHT, v)
	requiredNumber("tva", f.TVA, v)
	if _, bad := v["quantite"]; !bad {
		q, _ := strconv.Atoi(strings.TrimSpace(f.Quantite))
		validation.PositiveInt("quantite", q, v)
	}
	return v
}

func (f *LineForm) Build(orderID int) (models.OrderLine, error) {
	if v := f.Validate(); !v.Empty() {
		return models.OrderLine{}, v
	}
	q, _ := strconv.Atoi(strings.TrimSpace(f.Quantite))
	l := models.OrderLine{
		OrderID:        orderID,
		CodeProduit:    strings.TrimSpace(f.CodeProduit),
		Quantite:       q,
		PrixUnitaireHT: number(f.PrixUnitaireHT),
		TVA:            number(f.TVA),
	}
	if v := l.Validate(); !v.Empty() {
		return models.OrderLine{}, v
	}
	return l, nil
}

func requiredNumber(field, value string, v validation.Violations) {
	validation.Required(field, value, v)
	validation.Numeric(field, value, v)
}

// number parses text already checked by validation.Numeric.
func number(s string) models.Number {
	n, _ := models.ParseNumber(s)
	return n
}
