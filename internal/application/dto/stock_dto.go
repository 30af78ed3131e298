package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EnregistrerMouvementRequest body pour POST /api/stock/mouvements.
// Pour ENTREE/SORTIE, quantite est strictement positive (le sens est donné par
// le type). Pour AJUSTEMENT, quantite est la nouvelle valeur absolue visée.
type EnregistrerMouvementRequest struct {
	ProduitID    string           `json:"produit_id"`
	Type         string           `json:"type"`
	Quantite     decimal.Decimal  `json:"quantite"`
	CoutUnitaire *decimal.Decimal `json:"cout_unitaire,omitempty"`
	Reference    string           `json:"reference,omitempty"`
	Motif        string           `json:"motif,omitempty"`
	EmployeID    string           `json:"employe_id,omitempty"`
}

// MouvementResponse une écriture du grand livre dans les réponses.
type MouvementResponse struct {
	ID           string           `json:"id"`
	ProduitID    string           `json:"produit_id"`
	Type         string           `json:"type"`
	Quantite     decimal.Decimal  `json:"quantite"`
	CoutUnitaire *decimal.Decimal `json:"cout_unitaire,omitempty"`
	Reference    string           `json:"reference,omitempty"`
	Motif        string           `json:"motif,omitempty"`
	EmployeID    string           `json:"employe_id,omitempty"`
	StockAvant   decimal.Decimal  `json:"stock_avant"`
	StockApres   decimal.Decimal  `json:"stock_apres"`
	CreatedAt    time.Time        `json:"created_at"`
}

// ReserverStockRequest body pour POST /api/stock/reservations.
type ReserverStockRequest struct {
	ProduitID    string          `json:"produit_id"`
	Quantite     decimal.Decimal `json:"quantite"`
	DocumentRef  string          `json:"document_ref"`
	TypeDocument string          `json:"type_document"`
	Notes        string          `json:"notes,omitempty"`
	EmployeID    string          `json:"employe_id,omitempty"`
}

// ConsommerReservationRequest body optionnel pour consommer une réservation.
type ConsommerReservationRequest struct {
	EmployeID string `json:"employe_id,omitempty"`
}

// LibererParDocumentRequest body pour la libération en cascade d'un document.
type LibererParDocumentRequest struct {
	TypeDocument string `json:"type_document"`
	DocumentRef  string `json:"document_ref"`
}

// ReservationResponse représentation d'une réservation.
type ReservationResponse struct {
	ID           string          `json:"id"`
	ProduitID    string          `json:"produit_id"`
	Quantite     decimal.Decimal `json:"quantite"`
	DocumentRef  string          `json:"document_ref"`
	TypeDocument string          `json:"type_document"`
	Statut       string          `json:"statut"`
	Notes        string          `json:"notes,omitempty"`
	EmployeID    string          `json:"employe_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// StockLibreResponse stock libre dérivé d'un produit.
type StockLibreResponse struct {
	ProduitID        string          `json:"produit_id"`
	StockDisponible  decimal.Decimal `json:"stock_disponible"`
	QuantiteReservee decimal.Decimal `json:"quantite_reservee"`
	StockLibre       decimal.Decimal `json:"stock_libre"`
}

// ProduitStockBasDTO ligne d'alerte stock bas.
type ProduitStockBasDTO struct {
	ProduitID       string          `json:"produit_id"`
	Code            string          `json:"code"`
	Nom             string          `json:"nom"`
	Categorie       string          `json:"categorie"`
	StockDisponible decimal.Decimal `json:"stock_disponible"`
	StockMinimum    decimal.Decimal `json:"stock_minimum"`
	Ratio           decimal.Decimal `json:"ratio"`
}

// ValorisationResponse valeur d'inventaire globale et par catégorie.
type ValorisationResponse struct {
	ValeurTotale decimal.Decimal        `json:"valeur_totale"`
	ParCategorie []LigneValorisationDTO `json:"par_categorie"`
}

// LigneValorisationDTO agrégat de valorisation d'une catégorie.
type LigneValorisationDTO struct {
	Categorie  string          `json:"categorie"`
	NbProduits int             `json:"nb_produits"`
	Quantite   decimal.Decimal `json:"quantite"`
	Valeur     decimal.Decimal `json:"valeur"`
}

// EcartReconciliationDTO produit dont le cache diverge du grand livre.
type EcartReconciliationDTO struct {
	ProduitID       string          `json:"produit_id"`
	Code            string          `json:"code"`
	StockDisponible decimal.Decimal `json:"stock_disponible"`
	SommeMouvements decimal.Decimal `json:"somme_mouvements"`
	Ecart           decimal.Decimal `json:"ecart"`
}

// StatistiquesResponse agrégats globaux de l'inventaire.
type StatistiquesResponse struct {
	TotalProduits    int             `json:"total_produits"`
	ProduitsActifs   int             `json:"produits_actifs"`
	ProduitsStockBas int             `json:"produits_stock_bas"`
	ValeurTotale     decimal.Decimal `json:"valeur_totale"`
	ParCategorie     map[string]int  `json:"par_categorie"`
}
