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

var _ repository.ReservationRepository = (*ReservationRepo)(nil)

const reservationColonnes = `id, produit_id, quantite, document_ref, type_document,
	statut, notes, employe_id, created_at, updated_at`

// ReservationRepo implémentation de ReservationRepository sur PostgreSQL (pool ou tx).
type ReservationRepo struct {
	q Querier
}

// NewReservationRepository construit l'adaptateur. Passer un pool ou une tx (Querier).
func NewReservationRepository(q Querier) *ReservationRepo {
	return &ReservationRepo{q: q}
}

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var r entity.Reservation
	err := row.Scan(
		&r.ID, &r.ProduitID, &r.Quantite, &r.DocumentRef, &r.TypeDocument,
		&r.Statut, &r.Notes, &r.EmployeID, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Create persiste une réservation.
func (r *ReservationRepo) Create(reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations_stock (id, produit_id, quantite, document_ref,
			type_document, statut, notes, employe_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		reservation.ID, reservation.ProduitID, reservation.Quantite,
		reservation.DocumentRef, reservation.TypeDocument, reservation.Statut,
		reservation.Notes, reservation.EmployeID, reservation.CreatedAt,
		reservation.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

// GetByID obtient une réservation par ID.
func (r *ReservationRepo) GetByID(id string) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColonnes + ` FROM reservations_stock WHERE id = $1`
	res, err := scanReservation(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	return res, nil
}

// GetForUpdate obtient la réservation et verrouille sa ligne pour une
// transition d'état.
func (r *ReservationRepo) GetForUpdate(id string) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColonnes + ` FROM reservations_stock WHERE id = $1 FOR UPDATE`
	res, err := scanReservation(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reservation for update: %w", err)
	}
	return res, nil
}

// UpdateStatut applique une transition d'état.
func (r *ReservationRepo) UpdateStatut(id, statut string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE reservations_stock SET statut = $2, updated_at = now() WHERE id = $1`,
		id, statut,
	)
	if err != nil {
		return fmt.Errorf("update statut reservation: %w", err)
	}
	return nil
}

// SumActiveByProduit quantité totale réservée (ACTIVE) d'un produit.
func (r *ReservationRepo) SumActiveByProduit(produitID string) (decimal.Decimal, error) {
	var somme decimal.Decimal
	err := r.q.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(quantite), 0) FROM reservations_stock
		WHERE produit_id = $1 AND statut = 'ACTIVE'`,
		produitID,
	).Scan(&somme)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum reservations actives: %w", err)
	}
	return somme, nil
}

// ListByProduit liste les réservations d'un produit, récentes d'abord.
func (r *ReservationRepo) ListByProduit(produitID string, limit, offset int) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColonnes + ` FROM reservations_stock
		WHERE produit_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, produitID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		list = append(list, res)
	}
	return list, rows.Err()
}

// ListActiveByDocument liste les réservations ACTIVE d'un document aval,
// verrouillées pour mise à jour (libération en cascade).
func (r *ReservationRepo) ListActiveByDocument(typeDocument, documentRef string) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColonnes + ` FROM reservations_stock
		WHERE type_document = $1 AND document_ref = $2 AND statut = 'ACTIVE'
		ORDER BY created_at
		FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, typeDocument, documentRef)
	if err != nil {
		return nil, fmt.Errorf("list reservations par document: %w", err)
	}
	defer rows.Close()
	var list []*entity.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		list = append(list, res)
	}
	return list, rows.Err()
}
