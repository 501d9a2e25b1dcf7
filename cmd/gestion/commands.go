package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/diewo77/gestion-commandes/internal/form"
	"github.com/diewo77/gestion-commandes/internal/screens"
)

// set assigns v to *dst when v is not empty.
func set(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func (a *app) table(header string, rows func(w *tabwriter.Writer)) {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, header)
	rows(w)
	w.Flush()
}

func (a *app) clients(ctx context.Context, args []string) error {
	var in form.ClientForm
	action, err := subcommand("clients", args, func(fs *flag.FlagSet) {
		fs.StringVar(&in.Code, "code", "", "code client")
		fs.StringVar(&in.Nom, "nom", "", "nom")
		fs.StringVar(&in.Prenom, "prenom", "", "prénom")
		fs.StringVar(&in.DateNaissance, "naissance", "", "date de naissance AAAA-MM-JJ")
		fs.StringVar(&in.Email, "email", "", "email")
		fs.StringVar(&in.Telephone, "tel", "", "téléphone")
	})
	if err != nil {
		return err
	}
	s := screens.NewClientsScreen(a.api.Clients(), a.deps)
	if err := s.Open(ctx); err != nil {
		return err
	}
	switch action {
	case "list":
		a.table("CODE\tNOM\tPRÉNOM\tNAISSANCE\tEMAIL\tTÉLÉPHONE", func(w *tabwriter.Writer) {
			for _, c := range s.Items() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", c.Code, c.Nom, c.Prenom, c.DateNaissance, c.Email, c.Telephone)
			}
		})
		return nil
	case "add":
		s.NewForm()
		*s.Form = in
		return s.Save(ctx)
	case "edit", "delete":
		item, ok := s.Find(in.Code)
		if !ok {
			return fmt.Errorf("client %q introuvable", in.Code)
		}
		if action == "delete" {
			if err := s.RequestDelete(item); err != nil {
				return err
			}
			return a.confirm(ctx, s)
		}
		s.Edit(item)
		set(&s.Form.Nom, in.Nom)
		set(&s.Form.Prenom, in.Prenom)
		set(&s.Form.DateNaissance, in.DateNaissance)
		set(&s.Form.Email, in.Email)
		set(&s.Form.Telephone, in.Telephone)
		if err := s.Save(ctx); err != nil {
			return err
		}
		return a.confirm(ctx, s)
	}
	return fmt.Errorf("unknown action %q", action)
}

func (a *app) products(ctx context.Context, args []string) error {
	var in form.ProductForm
	action, err := subcommand("produits", args, func(fs *flag.FlagSet) {
		fs.StringVar(&in.Code, "code", "", "code produit")
		fs.StringVar(&in.Designation, "designation", "", "désignation")
		fs.StringVar(&in.Suite, "suite", "", "suite de la désignation")
		fs.StringVar(&in.PrixAchatHT, "achat", "", "prix d'achat HT")
		fs.StringVar(&in.TotalHT, "ht", "", "prix de vente HT")
		fs.StringVar(&in.TVA, "tva", "", "taux de TVA")
	})
	if err != nil {
		return err
	}
	s := screens.NewProductsScreen(a.api.Products(), a.deps)
	if err := s.Open(ctx); err != nil {
		return err
	}
	switch action {
	case "list":
		a.table("CODE\tDÉSIGNATION\tACHAT HT\tVENTE HT\tTVA\tTTC", func(w *tabwriter.Writer) {
			for _, p := range s.Items() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.2f\n",
					p.Code, strings.TrimSpace(p.Designation+" "+p.Suite), p.PrixAchatHT, p.TotalHT, p.TVA, p.PriceTTC())
			}
		})
		return nil
	case "add":
		s.NewForm()
		*s.Form = in
		return s.Save(ctx)
	case "edit", "delete":
		item, ok := s.Find(in.Code)
		if !ok {
			return fmt.Errorf("produit %q introuvable", in.Code)
		}
		if action == "delete" {
			if err := s.RequestDelete(item); err != nil {
				return err
			}
			return a.confirm(ctx, s)
		}
		s.Edit(item)
		set(&s.Form.Designation, in.Designation)
		set(&s.Form.Suite, in.Suite)
		set(&s.Form.PrixAchatHT, in.PrixAchatHT)
		set(&s.Form.TotalHT, in.TotalHT)
		set(&s.Form.TVA, in.TVA)
		if err := s.Save(ctx); err != nil {
			return err
		}
		return a.confirm(ctx, s)
	}
	return fmt.Errorf("unknown action %q", action)
}

// documentFlags are shared by the order and pro-forma commands.
type documentFlags struct {
	id       int
	header   form.DocumentForm
	line     form.LineForm
	products lineFlags
}

func (d *documentFlags) define(fs *flag.FlagSet) {
	fs.IntVar(&d.id, "id", 0, "numéro du document")
	fs.StringVar(&d.header.CodeClient, "client", "", "code client")
	fs.StringVar(&d.header.Date, "date", "", "date AAAA-MM-JJ")
	fs.StringVar(&d.header.TotalHT, "ht", "", "total HT")
	fs.StringVar(&d.header.TotalTTC, "ttc", "", "total TTC")
	fs.StringVar(&d.header.TVA, "tva", "", "TVA")
	fs.StringVar(&d.line.CodeProduit, "code-produit", "", "code produit de la ligne")
	fs.StringVar(&d.line.Quantite, "quantite", "", "quantité de la ligne")
	fs.StringVar(&d.line.PrixUnitaireHT, "prix", "", "prix unitaire HT de la ligne")
	fs.Var(&d.products, "produit", "CODE=QUANTITE, répétable")
}

func (d *documentFlags) apply(f *form.DocumentForm) {
	set(&f.CodeClient, d.header.CodeClient)
	set(&f.Date, d.header.Date)
	set(&f.TotalHT, d.header.TotalHT)
	set(&f.TotalTTC, d.header.TotalTTC)
	set(&f.TVA, d.header.TVA)
}

// lineFlags collects repeated -produit CODE=QUANTITE values.
type lineFlags []string

func (l *lineFlags) String() string { return strings.Join(*l, ",") }

func (l *lineFlags) Set(v string) error {
	if !strings.Contains(v, "=") {
		return fmt.Errorf("attendu CODE=QUANTITE, reçu %q", v)
	}
	*l = append(*l, v)
	return nil
}

func (a *app) orders(ctx context.Context, args []string) error {
	var d documentFlags
	action, err := subcommand("commandes", args, d.define)
	if err != nil {
		return err
	}
	switch action {
	case "lignes", "ajouter-ligne", "retirer-ligne":
		return a.lines(ctx, action, d)
	}
	s := screens.NewOrdersScreen(a.api.Orders(), a.deps)
	if err := s.Open(ctx); err != nil {
		return err
	}
	switch action {
	case "list":
		a.table("N°\tCLIENT\tDATE\tTOTAL HT\tTOTAL TTC\tTVA", func(w *tabwriter.Writer) {
			for _, o := range s.Items() {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", o.ID, o.CodeClient, o.Date, o.TotalHT, o.TotalTTC, o.TVA)
			}
		})
		return nil
	case "add":
		s.NewForm()
		d.apply(s.Form)
		return s.Save(ctx)
	case "edit", "delete":
		item, ok := s.Find(d.id)
		if !ok {
			return fmt.Errorf("commande %d introuvable", d.id)
		}
		if action == "delete" {
			if err := s.RequestDelete(item); err != nil {
				return err
			}
			return a.confirm(ctx, s)
		}
		s.Edit(item)
		d.apply(s.Form)
		if err := s.Save(ctx); err != nil {
			return err
		}
		return a.confirm(ctx, s)
	}
	return fmt.Errorf("unknown action %q", action)
}

func (a *app) lines(ctx context.Context, action string, d documentFlags) error {
	s := screens.NewLinesScreen(d.id, a.api.OrderLines(), a.deps)
	if err := s.Open(ctx); err != nil {
		return err
	}
	switch action {
	case "lignes":
		a.table("PRODUIT\tDÉSIGNATION\tQUANTITÉ\tPRIX HT\tTVA", func(w *tabwriter.Writer) {
			for _, l := range s.Items() {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", l.CodeProduit, l.Designation, l.Quantite, l.PrixUnitaireHT, l.TVA)
			}
		})
		return nil
	case "ajouter-ligne":
		*s.Form = d.line
		s.Form.TVA = d.header.TVA
		return s.Add(ctx)
	default:
		for _, l := range s.Items() {
			if l.CodeProduit == d.line.CodeProduit {
				if err := s.RequestRemove(l); err != nil {
					return err
				}
				return a.confirm(ctx, s)
			}
		}
		return fmt.Errorf("produit %q absent de la commande %d", d.line.CodeProduit, d.id)
	}
}

func (a *app) proformas(ctx context.Context, args []string) error {
	var d documentFlags
	action, err := subcommand("proformas", args, d.define)
	if err != nil {
		return err
	}
	s := screens.NewProformasScreen(a.api.Proformas(), a.deps)
	if err := s.Open(ctx); err != nil {
		return err
	}
	switch action {
	case "list":
		a.table("N°\tCLIENT\tDATE\tTOTAL HT\tTOTAL TTC\tTVA", func(w *tabwriter.Writer) {
			for _, p := range s.Items() {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", p.ID, p.CodeClient, p.Date, p.TotalHT, p.TotalTTC, p.TVA)
			}
		})
		return nil
	case "add":
		s.NewForm()
		d.apply(s.Form)
		return s.Save(ctx)
	case "edit", "delete":
		item, ok := s.Find(d.id)
		if !ok {
			return fmt.Errorf("proforma %d introuvable", d.id)
		}
		if action == "delete" {
			if err := s.RequestDelete(item); err != nil {
				return err
			}
			return a.confirm(ctx, s)
		}
		s.Edit(item)
		d.apply(s.Form)
		if err := s.Save(ctx); err != nil {
			return err
		}
		return a.confirm(ctx, s)
	}
	return fmt.Errorf("unknown action %q", action)
}

func (a *app) newDocument(ctx context.Context, kind screens.DocumentKind, args []string) error {
	var d documentFlags
	fs := flag.NewFlagSet(kind.String(), flag.ContinueOnError)
	d.define(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	var s *screens.NewDocumentScreen
	if kind == screens.KindProforma {
		s = screens.NewProformaScreen(a.api.Products(), a.api, d.header.CodeClient, a.deps)
	} else {
		s = screens.NewOrderScreen(a.api.Products(), a.api, a.deps)
	}
	if err := s.Open(ctx); err != nil {
		return err
	}
	d.apply(s.Header)
	for _, p := range d.products {
		code, qty, _ := strings.Cut(p, "=")
		code = strings.TrimSpace(code)
		if s.Selection.IsSelected(code) {
			s.SetQuantity(code, qty)
			continue
		}
		if !s.Toggle(code) {
			return fmt.Errorf("produit %q inconnu", code)
		}
		s.SetQuantity(code, qty)
	}
	if err := s.Submit(); err != nil {
		return err
	}
	if err := a.confirm(ctx, s); err != nil {
		return err
	}
	if id := s.LastID(); id > 0 {
		label := "Commande"
		if kind == screens.KindProforma {
			label = "Proforma"
		}
		fmt.Fprintf(a.out, "%s n° %d\n", label, id)
	}
	return nil
}
