package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain/entity"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain/repository"
	domstock "github.com/Estimation79/gestion-projets-dg-sub003/internal/domain/stock"
)

// ReservationUseCase gère le cycle de vie des réservations:
// ACTIVE -> LIBEREE (annulation) ou ACTIVE -> CONSOMMEE (sortie appariée),
// les deux états étant terminaux. Le contrôle de stock libre et la création se
// font sous verrou de la ligne produit pour sérialiser les réservations
// concurrentes d'un même produit.
type ReservationUseCase struct {
	txRunner TxRunner
}

// NewReservationUseCase construit le cas d'usage.
func NewReservationUseCase(txRunner TxRunner) *ReservationUseCase {
	return &ReservationUseCase{txRunner: txRunner}
}

// ReservationInput entrée pour réserver du stock.
type ReservationInput struct {
	ProduitID    string
	Quantite     decimal.Decimal
	DocumentRef  string
	TypeDocument string
	Notes        string
	EmployeID    string
}

// Reserver bloque une quantité pour un document aval. Échoue avec
// ErrStockInsuffisant, sans rien créer, si la quantité dépasse le stock libre.
func (uc *ReservationUseCase) Reserver(ctx context.Context, input ReservationInput) (string, error) {
	if input.ProduitID == "" || input.DocumentRef == "" || input.TypeDocument == "" {
		return "", domain.ErrInvalidInput
	}
	if !input.Quantite.GreaterThan(decimal.Zero) {
		return "", domain.ErrInvalidInput
	}

	reservationID := uuid.New().String()
	now := time.Now()

	err := uc.txRunner.Run(ctx, func(
		produitRepo repository.ProduitRepository,
		_ repository.MouvementRepository,
		reservationRepo repository.ReservationRepository,
	) error {
		produit, err := produitRepo.GetForUpdate(input.ProduitID)
		if err != nil {
			return err
		}
		if produit == nil {
			return domain.ErrNotFound
		}
		reserve, err := reservationRepo.SumActiveByProduit(input.ProduitID)
		if err != nil {
			return err
		}
		if !domstock.Suffisant(produit.StockDisponible, reserve, input.Quantite) {
			return domain.ErrStockInsuffisant
		}
		return reservationRepo.Create(&entity.Reservation{
			ID:           reservationID,
			ProduitID:    input.ProduitID,
			Quantite:     input.Quantite,
			DocumentRef:  input.DocumentRef,
			TypeDocument: input.TypeDocument,
			Statut:       entity.ReservationActive,
			Notes:        input.Notes,
			EmployeID:    input.EmployeID,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	})
	if err != nil {
		return "", err
	}
	return reservationID, nil
}

// Liberer annule une réservation: ACTIVE -> LIBEREE, la quantité retourne dans
// le stock libre. No-op idempotent si la réservation est déjà terminale.
func (uc *ReservationUseCase) Liberer(ctx context.Context, reservationID string) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.ProduitRepository,
		_ repository.MouvementRepository,
		reservationRepo repository.ReservationRepository,
	) error {
		reservation, err := reservationRepo.GetForUpdate(reservationID)
		if err != nil {
			return err
		}
		if reservation == nil {
			return domain.ErrNotFound
		}
		if reservation.Terminale() {
			return nil
		}
		return reservationRepo.UpdateStatut(reservationID, entity.ReservationLiberee)
	})
}

// Consommer passe une réservation ACTIVE à CONSOMMEE et enregistre dans la
// même transaction la SORTIE appariée de la quantité réservée. Échoue avec
// ErrEtatInvalide si la réservation n'est pas ACTIVE.
func (uc *ReservationUseCase) Consommer(ctx context.Context, reservationID, employeID string) error {
	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		produitRepo repository.ProduitRepository,
		mouvementRepo repository.MouvementRepository,
		reservationRepo repository.ReservationRepository,
	) error {
		reservation, err := reservationRepo.GetForUpdate(reservationID)
		if err != nil {
			return err
		}
		if reservation == nil {
			return domain.ErrNotFound
		}
		if reservation.Statut != entity.ReservationActive {
			return domain.ErrEtatInvalide
		}
		produit, err := produitRepo.GetForUpdate(reservation.ProduitID)
		if err != nil {
			return err
		}
		if produit == nil {
			return domain.ErrNotFound
		}
		// La réservation sort d'abord du pool ACTIVE, puis la sortie est
		// contrôlée contre le stock libre restant. Tout est dans la même
		// transaction: un échec annule les deux écritures.
		if err := reservationRepo.UpdateStatut(reservationID, entity.ReservationConsommee); err != nil {
			return err
		}
		reserve, err := reservationRepo.SumActiveByProduit(reservation.ProduitID)
		if err != nil {
			return err
		}
		if !domstock.Suffisant(produit.StockDisponible, reserve, reservation.Quantite) {
			return domain.ErrStockInsuffisant
		}
		stockApres := produit.StockDisponible.Sub(reservation.Quantite)
		if err := produitRepo.UpdateStock(produit.ID, stockApres); err != nil {
			return err
		}
		return mouvementRepo.Create(&entity.MouvementStock{
			ID:         uuid.New().String(),
			ProduitID:  produit.ID,
			Type:       entity.MouvementSortie,
			Quantite:   reservation.Quantite.Neg(),
			Reference:  reservation.DocumentRef,
			Motif:      fmt.Sprintf("Consommation réservation %s", reservationID),
			EmployeID:  employeID,
			StockAvant: produit.StockDisponible,
			StockApres: stockApres,
			CreatedAt:  now,
		})
	})
}

// LibererParDocument libère en cascade toutes les réservations ACTIVE d'un
// document aval (politique retenue quand le document est annulé ou supprimé).
// Renvoie le nombre de réservations libérées.
func (uc *ReservationUseCase) LibererParDocument(ctx context.Context, typeDocument, documentRef string) (int, error) {
	if typeDocument == "" || documentRef == "" {
		return 0, domain.ErrInvalidInput
	}
	liberees := 0
	err := uc.txRunner.Run(ctx, func(
		_ repository.ProduitRepository,
		_ repository.MouvementRepository,
		reservationRepo repository.ReservationRepository,
	) error {
		actives, err := reservationRepo.ListActiveByDocument(typeDocument, documentRef)
		if err != nil {
			return err
		}
		for _, r := range actives {
			if err := reservationRepo.UpdateStatut(r.ID, entity.ReservationLiberee); err != nil {
				return err
			}
			liberees++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return liberees, nil
}
