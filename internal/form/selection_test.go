package form

import (
	"testing"

	"github.com/diewo77/gestion-commandes/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSelection_Toggle(t *testing.T) {
	s := NewSelection()
	p1 := models.Product{Code: "P1", TotalHT: 12}
	assert.True(t, s.Toggle(p1))
	it, ok := s.Get("P1")
	assert.True(t, ok)
	assert.Equal(t, Selected{Quantite: 0, PrixUnitaireHT: 12, TVA: DefaultVATRate}, it)
	assert.False(t, s.Toggle(p1))
	assert.False(t, s.IsSelected("P1"))
}

func TestSelection_SetQuantity(t *testing.T) {
	s := NewSelection()
	s.Toggle(models.Product{Code: "P1"})
	assert.True(t, s.SetQuantity("P1", " 4 "))
	it, _ := s.Get("P1")
	assert.Equal(t, 4, it.Quantite)

	s.SetQuantity("P1", "quatre")
	it, _ = s.Get("P1")
	assert.Equal(t, 0, it.Quantite)

	assert.False(t, s.SetQuantity("P2", "1"))
	assert.Equal(t, 1, s.Len())
}

func TestSelection_LinesOrderedByCode(t *testing.T) {
	s := NewSelection()
	for _, c := range []string{"P3", "P1", "P2"} {
		s.Toggle(models.Product{Code: c})
		s.SetQuantity(c, "1")
	}
	var codes []string
	for _, l := range s.Lines() {
		codes = append(codes, l.CodeProduit)
	}
	assert.Equal(t, []string{"P1", "P2", "P3"}, codes)
}

func TestSelection_Validate(t *testing.T) {
	s := NewSelection()
	v := s.Validate("")
	assert.Equal(t, "required", v["codeClient"])
	assert.Equal(t, "required", v["produits"])

	s.Toggle(models.Product{Code: "P1"})
	v = s.Validate("C1")
	assert.Equal(t, map[string]string{"produits.P1": "must_be_positive"}, map[string]string(v))

	s.SetQuantity("P1", "2")
	assert.True(t, s.Validate("C1").Empty())
	s.Clear()
	assert.Zero(t, s.Len())
}
