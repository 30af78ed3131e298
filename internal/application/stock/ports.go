package stock

import (
	"context"

	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain/repository"
)

// TxRunner exécute une fonction dans une transaction de BD, en lui passant des
// repositories liés à cette transaction. Garantit l'atomicité du ledger:
// l'écriture du mouvement (ou de la réservation) et la mise à jour du cache de
// stock ne sont jamais observables l'une sans l'autre.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		produitRepo repository.ProduitRepository,
		mouvementRepo repository.MouvementRepository,
		reservationRepo repository.ReservationRepository,
	) error) error
}
