package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain/repository"
)

var _ repository.AnalyseRepository = (*AnalyseRepo)(nil)

// AnalyseRepo requêtes de lecture seule pour les vues dérivées du ledger.
type AnalyseRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyseRepository construit l'adaptateur d'analyse.
func NewAnalyseRepository(pool *pgxpool.Pool) *AnalyseRepo {
	return &AnalyseRepo{pool: pool}
}

// ProduitsStockBas produits actifs à stock <= seuil minimum, triés du plus
// critique au moins critique (ratio stock/seuil croissant, seuil nul en tête).
func (r *AnalyseRepo) ProduitsStockBas(ctx context.Context) ([]repository.ProduitStockBas, error) {
	const query = `
		SELECT id, code, nom, categorie, stock_disponible, stock_minimum,
			CASE WHEN stock_minimum > 0
				THEN stock_disponible / stock_minimum
				ELSE 0
			END AS ratio
		FROM produits
		WHERE actif = TRUE AND stock_disponible <= stock_minimum
		ORDER BY ratio ASC, stock_disponible ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("produits stock bas: %w", err)
	}
	defer rows.Close()
	var list []repository.ProduitStockBas
	for rows.Next() {
		var p repository.ProduitStockBas
		if err := rows.Scan(&p.ProduitID, &p.Code, &p.Nom, &p.Categorie,
			&p.StockDisponible, &p.StockMinimum, &p.Ratio); err != nil {
			return nil, fmt.Errorf("scan stock bas: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Valorisation agrège stock × prix unitaire des produits actifs par catégorie,
// et renvoie aussi le total global.
func (r *AnalyseRepo) Valorisation(ctx context.Context) ([]repository.LigneValorisation, decimal.Decimal, error) {
	const query = `
		SELECT categorie,
			COUNT(*) AS nb_produits,
			COALESCE(SUM(stock_disponible), 0) AS quantite,
			COALESCE(SUM(stock_disponible * prix_unitaire), 0) AS valeur
		FROM produits
		WHERE actif = TRUE
		GROUP BY categorie
		ORDER BY valeur DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("valorisation: %w", err)
	}
	defer rows.Close()
	var lignes []repository.LigneValorisation
	total := decimal.Zero
	for rows.Next() {
		var l repository.LigneValorisation
		if err := rows.Scan(&l.Categorie, &l.NbProduits, &l.Quantite, &l.Valeur); err != nil {
			return nil, decimal.Zero, fmt.Errorf("scan valorisation: %w", err)
		}
		total = total.Add(l.Valeur)
		lignes = append(lignes, l)
	}
	return lignes, total, rows.Err()
}

// EcartsReconciliation produits dont le cache stock_disponible diverge de la
// somme signée de leurs mouvements. Doit rester vide en fonctionnement normal.
func (r *AnalyseRepo) EcartsReconciliation(ctx context.Context) ([]repository.EcartReconciliation, error) {
	const query = `
		SELECT p.id, p.code, p.stock_disponible,
			COALESCE(m.somme, 0) AS somme_mouvements,
			p.stock_disponible - COALESCE(m.somme, 0) AS ecart
		FROM produits p
		LEFT JOIN (
			SELECT produit_id, SUM(quantite) AS somme
			FROM mouvements_stock
			GROUP BY produit_id
		) m ON m.produit_id = p.id
		WHERE p.stock_disponible <> COALESCE(m.somme, 0)
		ORDER BY ABS(p.stock_disponible - COALESCE(m.somme, 0)) DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reconciliation: %w", err)
	}
	defer rows.Close()
	var list []repository.EcartReconciliation
	for rows.Next() {
		var e repository.EcartReconciliation
		if err := rows.Scan(&e.ProduitID, &e.Code, &e.StockDisponible,
			&e.SommeMouvements, &e.Ecart); err != nil {
			return nil, fmt.Errorf("scan reconciliation: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Statistiques agrégats globaux du catalogue.
func (r *AnalyseRepo) Statistiques(ctx context.Context) (*repository.StatistiquesInventaire, error) {
	stats := &repository.StatistiquesInventaire{ParCategorie: map[string]int{}}

	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE actif),
			COUNT(*) FILTER (WHERE actif AND stock_disponible <= stock_minimum),
			COALESCE(SUM(stock_disponible * prix_unitaire) FILTER (WHERE actif), 0)
		FROM produits`,
	).Scan(&stats.TotalProduits, &stats.ProduitsActifs, &stats.ProduitsStockBas, &stats.ValeurTotale)
	if err != nil {
		return nil, fmt.Errorf("statistiques globales: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT categorie, COUNT(*) FROM produits WHERE actif = TRUE GROUP BY categorie`)
	if err != nil {
		return nil, fmt.Errorf("statistiques catégories: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var categorie string
		var n int
		if err := rows.Scan(&categorie, &n); err != nil {
			return nil, fmt.Errorf("scan catégorie: %w", err)
		}
		stats.ParCategorie[categorie] = n
	}
	return stats, rows.Err()
}
