package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain/entity"
)

// MouvementIterator parcourt paresseusement un historique de mouvements en
// ordre chronologique inverse. Séquence finie, à passage unique: une fois
// épuisée, elle ne se réinitialise pas. Close libère le curseur sous-jacent.
type MouvementIterator interface {
	Next() bool
	Mouvement() *entity.MouvementStock
	Err() error
	Close()
}

// MouvementRepository définit le port de persistance du grand livre des
// mouvements. Volontairement sans Update ni Delete: le journal est append-only.
type MouvementRepository interface {
	Create(mouvement *entity.MouvementStock) error
	GetByID(id string) (*entity.MouvementStock, error)
	ListByProduit(produitID string, limit, offset int) ([]*entity.MouvementStock, error)
	// History renvoie un itérateur paresseux borné par limit, du plus récent
	// au plus ancien.
	History(ctx context.Context, produitID string, limit int) (MouvementIterator, error)
	// SumByProduit renvoie la somme signée de tous les mouvements d'un produit
	// (source de vérité pour la réconciliation du cache de stock).
	SumByProduit(produitID string) (decimal.Decimal, error)
}
