package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"number", `12.5`, 12.5},
		{"string", `"12.5"`, 12.5},
		{"comma string", `"12,5"`, 12.5},
		{"empty string", `""`, 0},
		{"null", `null`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Number
			if err := json.Unmarshal([]byte(tt.in), &n); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.in, err)
			}
			if n.Float() != tt.want {
				t.Errorf("got %v, want %v", n, tt.want)
			}
		})
	}
}

func TestNumber_RejectsText(t *testing.T) {
	var n Number
	if err := json.Unmarshal([]byte(`"abc"`), &n); err == nil {
		t.Fatalf("expected error for non-numeric string")
	}
}

func TestDate_JSON(t *testing.T) {
	var c Client
	if err := json.Unmarshal([]byte(`{"codeClient":"C1","dateNaissance":"1990-04-12"}`), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !c.DateNaissance.Equal(time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v", c.DateNaissance)
	}
	b, _ := json.Marshal(Client{Code: "C2"})
	var raw map[string]any
	_ = json.Unmarshal(b, &raw)
	if v, ok := raw["dateNaissance"]; !ok || v != nil {
		t.Fatalf("zero date should encode as null, got %s", b)
	}
}

func TestDate_AcceptsTimestamp(t *testing.T) {
	d, err := ParseDate("2024-01-31 00:00:00")
	if err != nil || d.String() != "2024-01-31" {
		t.Fatalf("ParseDate = %v, %v", d, err)
	}
}

func TestDate_Scan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2023, 5, 6, 14, 0, 0, 0, time.Local)); err != nil || d.String() != "2023-05-06" {
		t.Fatalf("scan time: %v %v", d, err)
	}
	if err := d.Scan([]byte("2023-05-07")); err != nil || d.String() != "2023-05-07" {
		t.Fatalf("scan bytes: %v %v", d, err)
	}
	if err := d.Scan(nil); err != nil || !d.IsZero() {
		t.Fatalf("scan nil: %v %v", d, err)
	}
}

func TestClient_Validate(t *testing.T) {
	full := Client{Code: "C1", Nom: "Dupont", Prenom: "Jean", DateNaissance: NewDate(1980, 1, 2), Email: "j@d.fr", Telephone: "0600"}
	if v := full.Validate(); !v.Empty() {
		t.Fatalf("complete client rejected: %v", v)
	}
	missing := full
	missing.Email = ""
	if v := missing.Validate(); v["email"] != "required" {
		t.Fatalf("expected email required, got %v", v)
	}
}

func TestOrder_ValidateSubmission(t *testing.T) {
	o := Order{CodeClient: "C1"}
	if v := o.ValidateSubmission(); v["produits"] != "required" {
		t.Fatalf("expected produits required, got %v", v)
	}
	o.Lines = []OrderLine{{CodeProduit: "P1", Quantite: 0}}
	if v := o.ValidateSubmission(); v["produits[0].quantite"] != "must_be_positive" {
		t.Fatalf("expected quantity violation, got %v", v)
	}
	o.Lines[0].Quantite = 2
	if v := o.ValidateSubmission(); !v.Empty() {
		t.Fatalf("valid submission rejected: %v", v)
	}
	if !o.IsNew() {
		t.Fatalf("order without id should be new")
	}
}

func TestOrderLine_DecodesUppercaseVAT(t *testing.T) {
	var l OrderLine
	if err := json.Unmarshal([]byte(`{"codeProduit":"P1","quantite":3,"prixUnitaireHT":"10","TVA":19}`), &l); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if l.TVA != 19 || l.PrixUnitaireHT != 10 {
		t.Fatalf("unexpected line %+v", l)
	}
}

func TestSubmissionLinesUseUppercaseVAT(t *testing.T) {
	lines := []OrderLine{{CodeProduit: "P1", Quantite: 2, PrixUnitaireHT: 10, TVA: 19}}
	docs := map[string]any{
		"order":    Order{CodeClient: "C1", Lines: lines},
		"proforma": Proforma{CodeClient: "C1", Lines: ProformaLines(lines)},
	}
	for name, doc := range docs {
		b, err := json.Marshal(doc)
		if err != nil {
			t.Fatalf("%s: marshal: %v", name, err)
		}
		var wire struct {
			Produits []map[string]any `json:"produits"`
		}
		if err := json.Unmarshal(b, &wire); err != nil {
			t.Fatalf("%s: unmarshal: %v", name, err)
		}
		if len(wire.Produits) != 1 {
			t.Fatalf("%s: expected 1 line in %s", name, b)
		}
		line := wire.Produits[0]
		for _, key := range []string{"codeProduit", "quantite", "prixUnitaireHT", "TVA"} {
			if _, ok := line[key]; !ok {
				t.Fatalf("%s: missing %q in %s", name, key, b)
			}
		}
		if _, ok := line["tva"]; ok {
			t.Fatalf("%s: lower-case tva in %s", name, b)
		}
	}
}

func TestOrderLine_StandaloneKeepsLowercaseVAT(t *testing.T) {
	b, err := json.Marshal(OrderLine{OrderID: 4, CodeProduit: "P1", Quantite: 1, TVA: 19})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var wire map[string]any
	if err := json.Unmarshal(b, &wire); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if wire["tva"] != float64(19) {
		t.Fatalf("expected tva 19 in %s", b)
	}
}

func TestOrder_MarshalOmitsEmptyLines(t *testing.T) {
	b, err := json.Marshal(Order{ID: 3, CodeClient: "C1"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var wire map[string]any
	if err := json.Unmarshal(b, &wire); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := wire["produits"]; ok {
		t.Fatalf("unexpected produits in %s", b)
	}
	if wire["idCommande"] != float64(3) || wire["codeClient"] != "C1" {
		t.Fatalf("header lost in %s", b)
	}
}

func TestProduct_PriceTTC(t *testing.T) {
	p := Product{TotalHT: 100, TVA: 19}
	if got := p.PriceTTC(); got < 118.999 || got > 119.001 {
		t.Errorf("PriceTTC() = %f, want 119", got)
	}
}
