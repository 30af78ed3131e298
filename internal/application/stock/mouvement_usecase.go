package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain/entity"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain/repository"
	domstock "github.com/Estimation79/gestion-projets-dg-sub003/internal/domain/stock"
)

// MouvementUseCase enregistre les mouvements de stock de façon transactionnelle
// (ENTREE, SORTIE, AJUSTEMENT) avec verrou de ligne (SELECT FOR UPDATE) sur le
// produit et Commit/Rollback. Chaque mouvement met à jour le cache
// StockDisponible du même delta signé, dans la même transaction.
type MouvementUseCase struct {
	txRunner TxRunner
}

// NewMouvementUseCase construit le cas d'usage.
func NewMouvementUseCase(txRunner TxRunner) *MouvementUseCase {
	return &MouvementUseCase{txRunner: txRunner}
}

// MouvementInput entrée pour enregistrer un mouvement.
// ENTREE/SORTIE: Quantite > 0, le sens est donné par le type.
// AJUSTEMENT: Quantite est la nouvelle valeur absolue visée (>= 0).
type MouvementInput struct {
	ProduitID    string
	Type         string
	Quantite     decimal.Decimal
	CoutUnitaire *decimal.Decimal
	Reference    string
	Motif        string
	EmployeID    string
}

// Enregistrer valide l'entrée puis, dans une transaction: verrouille la ligne
// produit, contrôle le stock libre pour les sorties, écrit la ligne de
// mouvement et applique le delta au cache. Renvoie l'identifiant du mouvement.
func (uc *MouvementUseCase) Enregistrer(ctx context.Context, input MouvementInput) (string, error) {
	if input.ProduitID == "" {
		return "", domain.ErrInvalidInput
	}
	switch input.Type {
	case entity.MouvementEntree, entity.MouvementSortie:
		if !input.Quantite.GreaterThan(decimal.Zero) {
			return "", domain.ErrInvalidInput
		}
	case entity.MouvementAjustement:
		if input.Quantite.LessThan(decimal.Zero) {
			return "", domain.ErrInvalidInput
		}
	default:
		return "", domain.ErrInvalidInput
	}
	if input.CoutUnitaire != nil && input.CoutUnitaire.LessThan(decimal.Zero) {
		return "", domain.ErrInvalidInput
	}

	mouvementID := uuid.New().String()
	now := time.Now()

	err := uc.txRunner.Run(ctx, func(
		produitRepo repository.ProduitRepository,
		mouvementRepo repository.MouvementRepository,
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

		var delta decimal.Decimal
		switch input.Type {
		case entity.MouvementEntree:
			delta = input.Quantite
		case entity.MouvementSortie:
			if !domstock.Suffisant(produit.StockDisponible, reserve, input.Quantite) {
				return domain.ErrStockInsuffisant
			}
			delta = input.Quantite.Neg()
		case entity.MouvementAjustement:
			// Un ajustement sous la quantité réservée rendrait le stock libre
			// négatif; on le refuse plutôt que de casser l'invariant.
			if input.Quantite.LessThan(reserve) {
				return domain.ErrStockInsuffisant
			}
			delta = input.Quantite.Sub(produit.StockDisponible)
		}

		stockApres := produit.StockDisponible.Add(delta)
		if err := produitRepo.UpdateStock(produit.ID, stockApres); err != nil {
			return err
		}
		return mouvementRepo.Create(&entity.MouvementStock{
			ID:           mouvementID,
			ProduitID:    produit.ID,
			Type:         input.Type,
			Quantite:     delta,
			CoutUnitaire: input.CoutUnitaire,
			Reference:    input.Reference,
			Motif:        input.Motif,
			EmployeID:    input.EmployeID,
			StockAvant:   produit.StockDisponible,
			StockApres:   stockApres,
			CreatedAt:    now,
		})
	})
	if err != nil {
		return "", err
	}
	return mouvementID, nil
}
