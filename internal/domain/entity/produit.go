package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Produit représente un article stockable du catalogue (métallurgie).
// StockDisponible est un cache dérivé du grand livre des mouvements; il ne se
// modifie jamais directement, uniquement via les opérations de mouvement.
type Produit struct {
	ID                   string
	Code                 string // code produit unique (ex: AC-PLT-001)
	Nom                  string
	Description          string
	Categorie            string
	Materiau             string // Acier, Aluminium, Inox...
	Nuance               string // S235, 6061-T6, 316L...
	Dimensions           string
	UniteVente           string          // kg, m, m², unité
	PrixUnitaire         decimal.Decimal // prix de vente par unité
	StockDisponible      decimal.Decimal // quantité en main (cache, réconcilié avec les mouvements)
	StockMinimum         decimal.Decimal // seuil d'alerte stock bas
	SeuilReappro         decimal.Decimal // point de commande
	LotReappro           decimal.Decimal // quantité de commande
	DelaiReapproJours    int             // délai fournisseur en jours
	FournisseurPrincipal string
	NotesTechniques      string
	Actif                bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
