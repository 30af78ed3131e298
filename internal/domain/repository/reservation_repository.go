package repository

import (
	"github.com/shopspring/decimal"

	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain/entity"
)

// ReservationRepository définit le port de persistance des réservations (DIP).
// Les transitions d'état passent par UpdateStatut à l'intérieur d'une
// transaction qui détient le verrou de la ligne produit concernée.
type ReservationRepository interface {
	Create(reservation *entity.Reservation) error
	GetByID(id string) (*entity.Reservation, error)
	// GetForUpdate verrouille la ligne réservation pour une transition d'état.
	GetForUpdate(id string) (*entity.Reservation, error)
	UpdateStatut(id, statut string) error
	// SumActiveByProduit renvoie la quantité totale réservée (statut ACTIVE)
	// pour un produit. Entre dans le calcul du stock libre.
	SumActiveByProduit(produitID string) (decimal.Decimal, error)
	ListByProduit(produitID string, limit, offset int) ([]*entity.Reservation, error)
	// ListActiveByDocument liste les réservations ACTIVE d'un document aval,
	// verrouillées pour mise à jour (libération en cascade).
	ListActiveByDocument(typeDocument, documentRef string) ([]*entity.Reservation, error)
}
