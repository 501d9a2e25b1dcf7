package models

// Endpoint paths of the gestion_commandes_api backend, relative to its base URL.
const (
	PathClients        = "/clients.php"
	PathAddClient      = "/ajouter_client.php"
	PathUpdateClient   = "/modifier_client.php"
	PathDeleteClient   = "/supp_client.php"
	PathProducts       = "/produits.php"
	PathAddProduct     = "/ajouter_produit.php"
	PathUpdateProduct  = "/modifier_produit.php"
	PathDeleteProduct  = "/supp_produit.php"
	PathOrders         = "/commandes.php"
	PathAddOrder       = "/ajouter_commande.php"
	PathUpdateOrder    = "/modifier_commande.php"
	PathDeleteOrder    = "/supp_commande.php"
	PathOrderLines     = "/commande_produit.php"
	PathProformas      = "/proformas.php"
	PathAddProforma    = "/ajouter_proforma.php"
	PathUpdateProforma = "/modifier_proforma.php"
	PathDeleteProforma = "/supp_proforma.php"
	PathLogin          = "/login.php"
	PathRegister       = "/register.php"
)
