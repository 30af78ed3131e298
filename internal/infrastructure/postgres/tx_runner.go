package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	appstock "github.com/Estimation79/gestion-projets-dg-sub003/internal/application/stock"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain/repository"
)

// Vérifie que TxRunner satisfait le port applicatif.
var _ appstock.TxRunner = (*TxRunner)(nil)

// TxRunner exécute des callbacks dans une transaction PostgreSQL. C'est lui
// qui matérialise l'atomicité du ledger: écriture de mouvement/réservation et
// mise à jour du cache de stock partagent la même transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construit le runner avec le pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run démarre une transaction, exécute fn avec des repos liés à la tx et fait
// Commit, ou Rollback intégral si fn ou le Commit échoue.
func (r *TxRunner) Run(ctx context.Context, fn func(
	produitRepo repository.ProduitRepository,
	mouvementRepo repository.MouvementRepository,
	reservationRepo repository.ReservationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	produitRepo := NewProduitRepository(tx)
	mouvementRepo := NewMouvementRepository(tx)
	reservationRepo := NewReservationRepository(tx)

	if err := fn(produitRepo, mouvementRepo, reservationRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
