package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain/entity"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain/repository"
)

var _ repository.MouvementRepository = (*MouvementRepo)(nil)

const mouvementColonnes = `id, produit_id, type, quantite, cout_unitaire, reference,
	motif, employe_id, stock_avant, stock_apres, created_at`

// MouvementRepo implémentation du grand livre sur PostgreSQL (pool ou tx).
// Aucune méthode de mise à jour ni de suppression: le journal est append-only,
// et un trigger en base refuse toute tentative hors de ce code.
type MouvementRepo struct {
	q Querier
}

// NewMouvementRepository construit l'adaptateur. Passer un pool ou une tx (Querier).
func NewMouvementRepository(q Querier) *MouvementRepo {
	return &MouvementRepo{q: q}
}

func scanMouvement(row pgx.Row) (*entity.MouvementStock, error) {
	var m entity.MouvementStock
	err := row.Scan(
		&m.ID, &m.ProduitID, &m.Type, &m.Quantite, &m.CoutUnitaire, &m.Reference,
		&m.Motif, &m.EmployeID, &m.StockAvant, &m.StockApres, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create appose une écriture au grand livre.
func (r *MouvementRepo) Create(mouvement *entity.MouvementStock) error {
	query := `
		INSERT INTO mouvements_stock (id, produit_id, type, quantite, cout_unitaire,
			reference, motif, employe_id, stock_avant, stock_apres, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		mouvement.ID, mouvement.ProduitID, mouvement.Type, mouvement.Quantite,
		mouvement.CoutUnitaire, mouvement.Reference, mouvement.Motif,
		mouvement.EmployeID, mouvement.StockAvant, mouvement.StockApres,
		mouvement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create mouvement: %w", err)
	}
	return nil
}

// GetByID obtient une écriture par ID.
func (r *MouvementRepo) GetByID(id string) (*entity.MouvementStock, error) {
	query := `SELECT ` + mouvementColonnes + ` FROM mouvements_stock WHERE id = $1`
	m, err := scanMouvement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get mouvement: %w", err)
	}
	return m, nil
}

// ListByProduit liste les mouvements d'un produit, du plus récent au plus ancien.
func (r *MouvementRepo) ListByProduit(produitID string, limit, offset int) ([]*entity.MouvementStock, error) {
	query := `
		SELECT ` + mouvementColonnes + ` FROM mouvements_stock
		WHERE produit_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, produitID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list mouvements: %w", err)
	}
	defer rows.Close()
	var list []*entity.MouvementStock
	for rows.Next() {
		m, err := scanMouvement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan mouvement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// History renvoie un itérateur paresseux sur le curseur pgx, borné par limit,
// en ordre chronologique inverse. À passage unique; l'appelant doit le fermer.
func (r *MouvementRepo) History(ctx context.Context, produitID string, limit int) (repository.MouvementIterator, error) {
	query := `
		SELECT ` + mouvementColonnes + ` FROM mouvements_stock
		WHERE produit_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, produitID, limit)
	if err != nil {
		return nil, fmt.Errorf("history mouvements: %w", err)
	}
	return &mouvementIterator{rows: rows}, nil
}

// SumByProduit somme signée de tous les mouvements d'un produit.
func (r *MouvementRepo) SumByProduit(produitID string) (decimal.Decimal, error) {
	var somme decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantite), 0) FROM mouvements_stock WHERE produit_id = $1`,
		produitID,
	).Scan(&somme)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum mouvements: %w", err)
	}
	return somme, nil
}

// mouvementIterator adapte pgx.Rows au port MouvementIterator.
type mouvementIterator struct {
	rows    pgx.Rows
	courant *entity.MouvementStock
	err     error
}

func (it *mouvementIterator) Next() bool {
	if it.err != nil {
		return false
	}
	if !it.rows.Next() {
		it.err = it.rows.Err()
		return false
	}
	m, err := scanMouvement(it.rows)
	if err != nil {
		it.err = fmt.Errorf("scan mouvement: %w", err)
		return false
	}
	it.courant = m
	return true
}

func (it *mouvementIterator) Mouvement() *entity.MouvementStock { return it.courant }

func (it *mouvementIterator) Err() error { return it.err }

func (it *mouvementIterator) Close() { it.rows.Close() }
