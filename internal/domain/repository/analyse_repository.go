package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// ProduitStockBas résultat brut du repository pour un produit sous son seuil.
type ProduitStockBas struct {
	ProduitID       string
	Code            string
	Nom             string
	Categorie       string
	StockDisponible decimal.Decimal
	StockMinimum    decimal.Decimal
	Ratio           decimal.Decimal // StockDisponible / StockMinimum (0 si seuil nul)
}

// LigneValorisation valeur du stock agrégée par catégorie.
type LigneValorisation struct {
	Categorie  string
	NbProduits int
	Quantite   decimal.Decimal
	Valeur     decimal.Decimal
}

// EcartReconciliation produit dont le cache de stock diverge de la somme
// signée de ses mouvements. Liste vide = invariant de réconciliation respecté.
type EcartReconciliation struct {
	ProduitID       string
	Code            string
	StockDisponible decimal.Decimal
	SommeMouvements decimal.Decimal
	Ecart           decimal.Decimal
}

// StatistiquesInventaire agrégats globaux du catalogue.
type StatistiquesInventaire struct {
	TotalProduits    int
	ProduitsActifs   int
	ProduitsStockBas int
	ValeurTotale     decimal.Decimal
	ParCategorie     map[string]int
}

// AnalyseRepository définit le port des vues dérivées, en lecture seule.
type AnalyseRepository interface {
	// ProduitsStockBas liste les produits actifs dont le stock disponible est
	// inférieur ou égal au seuil minimum, du plus critique au moins critique.
	ProduitsStockBas(ctx context.Context) ([]ProduitStockBas, error)
	// Valorisation agrège stock × prix unitaire des produits actifs.
	Valorisation(ctx context.Context) ([]LigneValorisation, decimal.Decimal, error)
	// EcartsReconciliation compare le cache de stock à la somme des mouvements.
	EcartsReconciliation(ctx context.Context) ([]EcartReconciliation, error)
	Statistiques(ctx context.Context) (*StatistiquesInventaire, error)
}
