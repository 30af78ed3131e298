package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain/entity"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain/repository"
)

var _ repository.ProduitRepository = (*ProduitRepo)(nil)

const produitColonnes = `id, code, nom, description, categorie, materiau, nuance, dimensions,
	unite_vente, prix_unitaire, stock_disponible, stock_minimum, seuil_reappro,
	lot_reappro, delai_reappro_jours, fournisseur_principal, notes_techniques,
	actif, created_at, updated_at`

// ProduitRepo implémentation de ProduitRepository sur PostgreSQL (pool ou tx).
type ProduitRepo struct {
	q Querier
}

// NewProduitRepository construit l'adaptateur. Passer un pool ou une tx (Querier).
func NewProduitRepository(q Querier) *ProduitRepo {
	return &ProduitRepo{q: q}
}

func scanProduit(row pgx.Row) (*entity.Produit, error) {
	var p entity.Produit
	err := row.Scan(
		&p.ID, &p.Code, &p.Nom, &p.Description, &p.Categorie, &p.Materiau, &p.Nuance,
		&p.Dimensions, &p.UniteVente, &p.PrixUnitaire, &p.StockDisponible,
		&p.StockMinimum, &p.SeuilReappro, &p.LotReappro, &p.DelaiReapproJours,
		&p.FournisseurPrincipal, &p.NotesTechniques, &p.Actif, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nouveau produit. Le stock initial est zéro.
func (r *ProduitRepo) Create(produit *entity.Produit) error {
	query := `
		INSERT INTO produits (id, code, nom, description, categorie, materiau, nuance, dimensions,
			unite_vente, prix_unitaire, stock_disponible, stock_minimum, seuil_reappro,
			lot_reappro, delai_reappro_jours, fournisseur_principal, notes_techniques,
			actif, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(context.Background(), query,
		produit.ID, produit.Code, produit.Nom, produit.Description, produit.Categorie,
		produit.Materiau, produit.Nuance, produit.Dimensions, produit.UniteVente,
		produit.PrixUnitaire, produit.StockDisponible, produit.StockMinimum,
		produit.SeuilReappro, produit.LotReappro, produit.DelaiReapproJours,
		produit.FournisseurPrincipal, produit.NotesTechniques, produit.Actif,
		produit.CreatedAt, produit.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert produit: %w", err)
	}
	return nil
}

// GetByID obtient un produit par ID.
func (r *ProduitRepo) GetByID(id string) (*entity.Produit, error) {
	query := `SELECT ` + produitColonnes + ` FROM produits WHERE id = $1`
	p, err := scanProduit(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produit: %w", err)
	}
	return p, nil
}

// GetByCode obtient un produit par code catalogue.
func (r *ProduitRepo) GetByCode(code string) (*entity.Produit, error) {
	query := `SELECT ` + produitColonnes + ` FROM produits WHERE code = $1`
	p, err := scanProduit(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produit par code: %w", err)
	}
	return p, nil
}

// GetForUpdate obtient le produit et verrouille sa ligne (SELECT FOR UPDATE).
// Sérialise le contrôle de stock libre et l'écriture du cache de stock.
func (r *ProduitRepo) GetForUpdate(id string) (*entity.Produit, error) {
	query := `SELECT ` + produitColonnes + ` FROM produits WHERE id = $1 FOR UPDATE`
	p, err := scanProduit(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produit for update: %w", err)
	}
	return p, nil
}

// Update actualise les métadonnées d'un produit. Ne touche jamais
// stock_disponible: le cache est réservé aux opérations de mouvement.
func (r *ProduitRepo) Update(produit *entity.Produit) error {
	query := `
		UPDATE produits SET nom = $2, description = $3, categorie = $4, materiau = $5,
			nuance = $6, dimensions = $7, unite_vente = $8, prix_unitaire = $9,
			stock_minimum = $10, seuil_reappro = $11, lot_reappro = $12,
			delai_reappro_jours = $13, fournisseur_principal = $14,
			notes_techniques = $15, updated_at = $16
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		produit.ID, produit.Nom, produit.Description, produit.Categorie, produit.Materiau,
		produit.Nuance, produit.Dimensions, produit.UniteVente, produit.PrixUnitaire,
		produit.StockMinimum, produit.SeuilReappro, produit.LotReappro,
		produit.DelaiReapproJours, produit.FournisseurPrincipal, produit.NotesTechniques,
		produit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update produit: %w", err)
	}
	return nil
}

// UpdateStock actualise uniquement le cache de stock (moteur de mouvements).
func (r *ProduitRepo) UpdateStock(produitID string, quantite decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE produits SET stock_disponible = $2, updated_at = now() WHERE id = $1`,
		produitID, quantite,
	)
	if err != nil {
		return fmt.Errorf("update stock produit: %w", err)
	}
	return nil
}

// List liste les produits avec pagination, optionnellement les actifs seuls.
func (r *ProduitRepo) List(actifSeulement bool, limit, offset int) ([]*entity.Produit, error) {
	query := `SELECT ` + produitColonnes + ` FROM produits`
	if actifSeulement {
		query += ` WHERE actif = TRUE`
	}
	query += ` ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list produits: %w", err)
	}
	defer rows.Close()
	var list []*entity.Produit
	for rows.Next() {
		p, err := scanProduit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan produit: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Search recherche les produits actifs sur code, nom, description et matériau.
func (r *ProduitRepo) Search(terme string) ([]*entity.Produit, error) {
	query := `
		SELECT ` + produitColonnes + ` FROM produits
		WHERE actif = TRUE AND (
			LOWER(code) LIKE $1 OR LOWER(nom) LIKE $1 OR
			LOWER(description) LIKE $1 OR LOWER(materiau) LIKE $1
		)
		ORDER BY nom`
	motif := "%" + strings.ToLower(terme) + "%"
	rows, err := r.q.Query(context.Background(), query, motif)
	if err != nil {
		return nil, fmt.Errorf("search produits: %w", err)
	}
	defer rows.Close()
	var list []*entity.Produit
	for rows.Next() {
		p, err := scanProduit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan produit: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// SoftDelete désactive un produit sans le supprimer physiquement.
func (r *ProduitRepo) SoftDelete(id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE produits SET actif = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete produit: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HardDelete supprime physiquement un produit (demande explicite seulement).
func (r *ProduitRepo) HardDelete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM produits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("hard delete produit: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
