package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// migration étape de schéma versionnée, appliquée une seule fois.
type migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations liste ordonnée des étapes de schéma. Append-only: ne jamais
// modifier une étape déjà livrée, en ajouter une nouvelle.
var migrations = []migration{
	{
		Version: 1,
		Name:    "create_produits",
		SQL: `
		CREATE TABLE IF NOT EXISTS produits (
			id UUID PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			nom TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			categorie TEXT NOT NULL,
			materiau TEXT NOT NULL DEFAULT '',
			nuance TEXT NOT NULL DEFAULT '',
			dimensions TEXT NOT NULL DEFAULT '',
			unite_vente TEXT NOT NULL DEFAULT 'kg',
			prix_unitaire NUMERIC(14,4) NOT NULL DEFAULT 0,
			stock_disponible NUMERIC(14,4) NOT NULL DEFAULT 0,
			stock_minimum NUMERIC(14,4) NOT NULL DEFAULT 0,
			seuil_reappro NUMERIC(14,4) NOT NULL DEFAULT 0,
			lot_reappro NUMERIC(14,4) NOT NULL DEFAULT 0,
			delai_reappro_jours INTEGER NOT NULL DEFAULT 0,
			fournisseur_principal TEXT NOT NULL DEFAULT '',
			notes_techniques TEXT NOT NULL DEFAULT '',
			actif BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	},
	{
		Version: 2,
		Name:    "create_mouvements_stock",
		SQL: `
		CREATE TABLE IF NOT EXISTS mouvements_stock (
			id UUID PRIMARY KEY,
			produit_id UUID NOT NULL REFERENCES produits(id),
			type TEXT NOT NULL CHECK (type IN ('ENTREE', 'SORTIE', 'AJUSTEMENT')),
			quantite NUMERIC(14,4) NOT NULL,
			cout_unitaire NUMERIC(14,4),
			reference TEXT NOT NULL DEFAULT '',
			motif TEXT NOT NULL DEFAULT '',
			employe_id TEXT NOT NULL DEFAULT '',
			stock_avant NUMERIC(14,4) NOT NULL,
			stock_apres NUMERIC(14,4) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_mouvements_produit_date
			ON mouvements_stock (produit_id, created_at DESC)`,
	},
	{
		Version: 3,
		Name:    "create_reservations_stock",
		SQL: `
		CREATE TABLE IF NOT EXISTS reservations_stock (
			id UUID PRIMARY KEY,
			produit_id UUID NOT NULL REFERENCES produits(id),
			quantite NUMERIC(14,4) NOT NULL CHECK (quantite > 0),
			document_ref TEXT NOT NULL,
			type_document TEXT NOT NULL,
			statut TEXT NOT NULL DEFAULT 'ACTIVE'
				CHECK (statut IN ('ACTIVE', 'LIBEREE', 'CONSOMMEE')),
			notes TEXT NOT NULL DEFAULT '',
			employe_id TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_reservations_produit_statut
			ON reservations_stock (produit_id, statut);
		CREATE INDEX IF NOT EXISTS idx_reservations_document
			ON reservations_stock (type_document, document_ref)`,
	},
	{
		Version: 4,
		Name:    "revoke_mouvements_update_delete",
		SQL: `
		CREATE OR REPLACE FUNCTION interdire_modification_mouvement()
		RETURNS trigger AS $$
		BEGIN
			RAISE EXCEPTION 'mouvements_stock est append-only';
		END;
		$$ LANGUAGE plpgsql;
		DROP TRIGGER IF EXISTS trg_mouvements_append_only ON mouvements_stock;
		CREATE TRIGGER trg_mouvements_append_only
			BEFORE UPDATE OR DELETE ON mouvements_stock
			FOR EACH ROW EXECUTE FUNCTION interdire_modification_mouvement()`,
	},
}

// Migrate applique les migrations non encore jouées, chacune dans sa propre
// transaction, et les journalise dans schema_migrations. Tout échec est
// renvoyé à l'appelant et doit être traité comme fatal au démarrage: pas
// d'ALTER TABLE implicite avalé en silence.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	for _, m := range migrations {
		applied, err := isApplied(ctx, pool, m.Version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}
		if err := apply(ctx, pool, m); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}
	}
	return nil
}

func isApplied(ctx context.Context, pool *pgxpool.Pool, version int) (bool, error) {
	var exists bool
	err := pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, version,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check migration %d: %w", version, err)
	}
	return exists, nil
}

func apply(ctx context.Context, pool *pgxpool.Pool, m migration) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, m.SQL); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`,
		m.Version, m.Name,
	); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	return tx.Commit(ctx)
}
