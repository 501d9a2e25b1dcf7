package form

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/diewo77/gestion-commandes/internal/models"
	"github.com/diewo77/gestion-commandes/validation"
)

// DefaultVATRate is applied to every newly selected product.
const DefaultVATRate = 19

// Selected is the per-product entry of a Selection.
type Selected struct {
	Quantite       int
	PrixUnitaireHT models.Number
	TVA            models.Number
}

// Selection maps product codes to the quantity being ordered.
type Selection struct {
	mu    sync.Mutex
	items map[string]Selected
}

func NewSelection() *Selection { return &Selection{items: map[string]Selected{}} }

// Toggle selects p with quantity 0 or deselects it. It returns whether p is
// selected afterwards.
func (s *Selection) Toggle(p models.Product) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[p.Code]; ok {
		delete(s.items, p.Code)
		return false
	}
	s.items[p.Code] = Selected{PrixUnitaireHT: p.TotalHT, TVA: DefaultVATRate}
	return true
}

// SetQuantity stores the parsed quantity; text that is not a number counts
// as 0. Unselected codes are ignored.
func (s *Selection) SetQuantity(code, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[code]
	if !ok {
		return false
	}
	q, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		q = 0
	}
	it.Quantite = q
	s.items[code] = it
	return true
}

func (s *Selection) Get(code string) (Selected, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[code]
	return it, ok
}

func (s *Selection) IsSelected(code string) bool {
	_, ok := s.Get(code)
	return ok
}

func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = map[string]Selected{}
}

// Lines flattens the selection ordered by product code.
func (s *Selection) Lines() []models.OrderLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	codes := make([]string, 0, len(s.items))
	for c := range s.items {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	out := make([]models.OrderLine, 0, len(codes))
	for _, c := range codes {
		it := s.items[c]
		out = append(out, models.OrderLine{CodeProduit: c, Quantite: it.Quantite, PrixUnitaireHT: it.PrixUnitaireHT, TVA: it.TVA})
	}
	return out
}

// Validate rejects an empty client code, an empty selection, and any
// quantity that is not strictly positive.
func (s *Selection) Validate(codeClient string) validation.Violations {
	v := validation.Violations{}
	validation.Required("codeClient", codeClient, v)
	lines := s.Lines()
	if len(lines) == 0 {
		v["produits"] = "required"
	}
	for _, l := range lines {
		validation.PositiveInt("produits."+l.CodeProduit, l.Quantite, v)
	}
	return v
}
