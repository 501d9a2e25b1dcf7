// Package i18n holds the user-facing notice catalogue.
package i18n

import (
	"fmt"
	"strings"
)

const DefaultLang = "fr"

var catalog = map[string]map[string]string{
	"fr": {
		"required":             "Requis",
		"must_be_positive":     "Doit être positif",
		"must_not_be_negative": "Ne peut pas être négatif",
		"not_a_number":         "Nombre invalide",
		"invalid_date":         "Date invalide (AAAA-MM-JJ)",
		"out_of_range":         "Hors limites",

		"form.incomplete": "Erreur : Veuillez remplir tous les champs !",
		"error.network":   "Impossible de contacter le serveur.",
		"error.generic":   "Une erreur s'est produite.",
		"error.delete":    "Échec de la suppression.",
		"error.not_found": "Élément introuvable.",
		"error.exists":    "Cet élément existe déjà.",

		"client.list_failed":   "Erreur : Impossible de récupérer les clients.",
		"client.added":         "Client ajouté avec succès !",
		"client.updated":       "Client modifié avec succès !",
		"client.deleted":       "Client supprimé avec succès !",
		"product.list_failed":  "Erreur : Impossible de récupérer les produits.",
		"product.added":        "Produit ajouté avec succès !",
		"product.updated":      "Produit modifié avec succès !",
		"product.deleted":      "Produit supprimé avec succès !",
		"order.list_failed":    "Erreur : Impossible de récupérer les commandes.",
		"order.added":          "Commande ajoutée avec succès !",
		"order.updated":        "Commande modifiée avec succès !",
		"order.deleted":        "Commande supprimée avec succès !",
		"proforma.list_failed": "Erreur : Impossible de récupérer les proformas.",
		"proforma.added":       "Proforma ajoutée avec succès !",
		"proforma.updated":     "Proforma modifiée avec succès !",
		"proforma.deleted":     "Proforma supprimée avec succès !",

		"line.list_failed": "Erreur : Impossible de récupérer les produits de la commande.",
		"line.added":       "Produit ajouté à la commande !",
		"line.removed":     "Produit retiré de la commande !",
		"line.no_order":    "Aucun ID de commande fourni.",

		"selection.no_client":    "Veuillez entrer un code client.",
		"selection.empty":        "Veuillez sélectionner au moins un produit.",
		"selection.bad_quantity": "Veuillez spécifier une quantité positive pour chaque produit.",

		"confirm.delete": "Êtes-vous sûr de vouloir supprimer %s ?",
		"confirm.edit":   "Voulez-vous enregistrer les modifications de %s ?",
		"confirm.submit": "Voulez-vous enregistrer %s ?",

		"auth.login_ok":    "Connexion réussie.",
		"auth.register_ok": "Inscription réussie.",
		"auth.failed":      "Identifiants invalides.",
		"auth.required":    "Veuillez vous connecter.",
		"home.welcome":     "Bienvenue %s",
		"home.logout":      "Déconnexion réussie.",
	},
	"en": {
		"required":             "Required",
		"must_be_positive":     "Must be positive",
		"must_not_be_negative": "Must not be negative",
		"not_a_number":         "Invalid number",
		"invalid_date":         "Invalid date (YYYY-MM-DD)",
		"out_of_range":         "Out of range",

		"form.incomplete": "Error: please fill in all fields!",
		"error.network":   "Unable to reach the server.",
		"error.generic":   "Something went wrong.",
		"error.delete":    "Delete failed.",
		"error.not_found": "Item not found.",
		"error.exists":    "This item already exists.",

		"client.list_failed":   "Error: unable to fetch clients.",
		"client.added":         "Client added!",
		"client.updated":       "Client updated!",
		"client.deleted":       "Client deleted!",
		"product.list_failed":  "Error: unable to fetch products.",
		"product.added":        "Product added!",
		"product.updated":      "Product updated!",
		"product.deleted":      "Product deleted!",
		"order.list_failed":    "Error: unable to fetch orders.",
		"order.added":          "Order added!",
		"order.updated":        "Order updated!",
		"order.deleted":        "Order deleted!",
		"proforma.list_failed": "Error: unable to fetch pro-formas.",
		"proforma.added":       "Pro-forma added!",
		"proforma.updated":     "Pro-forma updated!",
		"proforma.deleted":     "Pro-forma deleted!",

		"line.list_failed": "Error: unable to fetch the order's products.",
		"line.added":       "Product added to the order!",
		"line.removed":     "Product removed from the order!",
		"line.no_order":    "No order id given.",

		"selection.no_client":    "Please enter a client code.",
		"selection.empty":        "Please select at least one product.",
		"selection.bad_quantity": "Please give a positive quantity for every product.",

		"confirm.delete": "Are you sure you want to delete %s?",
		"confirm.edit":   "Save changes to %s?",
		"confirm.submit": "Save %s?",

		"auth.login_ok":    "Logged in.",
		"auth.register_ok": "Registered.",
		"auth.failed":      "Invalid credentials.",
		"auth.required":    "Please log in.",
		"home.welcome":     "Welcome %s",
		"home.logout":      "Logged out.",
	},
}

// DetectLanguage picks a supported language from an Accept-Language style
// value. Only the first tag is considered.
func DetectLanguage(accept string) string {
	first := strings.TrimSpace(strings.SplitN(accept, ",", 2)[0])
	first = strings.ToLower(strings.SplitN(first, ";", 2)[0])
	primary := strings.SplitN(first, "-", 2)[0]
	if _, ok := catalog[primary]; ok && primary != "" {
		return primary
	}
	return DefaultLang
}

// T translates code, falling back to French then to the code itself.
func T(lang, code string) string {
	if msgs, ok := catalog[lang]; ok {
		if s, ok := msgs[code]; ok {
			return s
		}
	}
	if s, ok := catalog[DefaultLang][code]; ok {
		return s
	}
	return code
}

func Tf(lang, code string, args ...any) string {
	return fmt.Sprintf(T(lang, code), args...)
}
