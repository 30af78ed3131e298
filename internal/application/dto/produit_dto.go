package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProduitRequest body pour POST /api/produits.
type CreateProduitRequest struct {
	Code                 string          `json:"code"`
	Nom                  string          `json:"nom"`
	Description          string          `json:"description,omitempty"`
	Categorie            string          `json:"categorie"`
	Materiau             string          `json:"materiau,omitempty"`
	Nuance               string          `json:"nuance,omitempty"`
	Dimensions           string          `json:"dimensions,omitempty"`
	UniteVente           string          `json:"unite_vente,omitempty"`
	PrixUnitaire         decimal.Decimal `json:"prix_unitaire"`
	StockMinimum         decimal.Decimal `json:"stock_minimum"`
	SeuilReappro         decimal.Decimal `json:"seuil_reappro"`
	LotReappro           decimal.Decimal `json:"lot_reappro"`
	DelaiReapproJours    int             `json:"delai_reappro_jours"`
	FournisseurPrincipal string          `json:"fournisseur_principal,omitempty"`
	NotesTechniques      string          `json:"notes_techniques,omitempty"`
}

// UpdateProduitRequest body pour PUT /api/produits/:id. Champs à nil = inchangés.
// Le stock disponible n'est pas modifiable ici: il passe par les mouvements.
type UpdateProduitRequest struct {
	Nom                  *string          `json:"nom,omitempty"`
	Description          *string          `json:"description,omitempty"`
	Categorie            *string          `json:"categorie,omitempty"`
	Materiau             *string          `json:"materiau,omitempty"`
	Nuance               *string          `json:"nuance,omitempty"`
	Dimensions           *string          `json:"dimensions,omitempty"`
	UniteVente           *string          `json:"unite_vente,omitempty"`
	PrixUnitaire         *decimal.Decimal `json:"prix_unitaire,omitempty"`
	StockMinimum         *decimal.Decimal `json:"stock_minimum,omitempty"`
	SeuilReappro         *decimal.Decimal `json:"seuil_reappro,omitempty"`
	LotReappro           *decimal.Decimal `json:"lot_reappro,omitempty"`
	DelaiReapproJours    *int             `json:"delai_reappro_jours,omitempty"`
	FournisseurPrincipal *string          `json:"fournisseur_principal,omitempty"`
	NotesTechniques      *string          `json:"notes_techniques,omitempty"`
}

// ProduitResponse représentation d'un produit dans les réponses.
type ProduitResponse struct {
	ID                   string          `json:"id"`
	Code                 string          `json:"code"`
	Nom                  string          `json:"nom"`
	Description          string          `json:"description,omitempty"`
	Categorie            string          `json:"categorie"`
	Materiau             string          `json:"materiau,omitempty"`
	Nuance               string          `json:"nuance,omitempty"`
	Dimensions           string          `json:"dimensions,omitempty"`
	UniteVente           string          `json:"unite_vente"`
	PrixUnitaire         decimal.Decimal `json:"prix_unitaire"`
	StockDisponible      decimal.Decimal `json:"stock_disponible"`
	StockMinimum         decimal.Decimal `json:"stock_minimum"`
	SeuilReappro         decimal.Decimal `json:"seuil_reappro"`
	LotReappro           decimal.Decimal `json:"lot_reappro"`
	DelaiReapproJours    int             `json:"delai_reappro_jours"`
	FournisseurPrincipal string          `json:"fournisseur_principal,omitempty"`
	NotesTechniques      string          `json:"notes_techniques,omitempty"`
	Actif                bool            `json:"actif"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// ProduitListResponse listage paginé.
type ProduitListResponse struct {
	Items []ProduitResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
