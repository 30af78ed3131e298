package stock

import (
	"context"

	"github.com/Estimation79/gestion-projets-dg-sub003/internal/application/dto"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain/repository"
	domstock "github.com/Estimation79/gestion-projets-dg-sub003/internal/domain/stock"
)

// AnalyseUseCase vues dérivées du ledger, en lecture seule: stock libre,
// alertes stock bas, historique, valorisation, réconciliation. Aucune mutation.
// Les repositories sont liés au pool (pas de transaction nécessaire).
type AnalyseUseCase struct {
	produitRepo     repository.ProduitRepository
	mouvementRepo   repository.MouvementRepository
	reservationRepo repository.ReservationRepository
	analyseRepo     repository.AnalyseRepository
}

// NewAnalyseUseCase construit le cas d'usage.
func NewAnalyseUseCase(
	produitRepo repository.ProduitRepository,
	mouvementRepo repository.MouvementRepository,
	reservationRepo repository.ReservationRepository,
	analyseRepo repository.AnalyseRepository,
) *AnalyseUseCase {
	return &AnalyseUseCase{
		produitRepo:     produitRepo,
		mouvementRepo:   mouvementRepo,
		reservationRepo: reservationRepo,
		analyseRepo:     analyseRepo,
	}
}

// StockLibre renvoie le stock disponible, la quantité réservée (ACTIVE) et le
// stock libre dérivé d'un produit. Jamais négatif par construction: le
// contrôle est fait à la réservation et à la sortie.
func (uc *AnalyseUseCase) StockLibre(ctx context.Context, produitID string) (*dto.StockLibreResponse, error) {
	produit, err := uc.produitRepo.GetByID(produitID)
	if err != nil {
		return nil, err
	}
	if produit == nil {
		return nil, domain.ErrNotFound
	}
	reserve, err := uc.reservationRepo.SumActiveByProduit(produitID)
	if err != nil {
		return nil, err
	}
	return &dto.StockLibreResponse{
		ProduitID:        produitID,
		StockDisponible:  produit.StockDisponible,
		QuantiteReservee: reserve,
		StockLibre:       domstock.StockLibre(produit.StockDisponible, reserve),
	}, nil
}

// ProduitsStockBas liste les produits actifs sous leur seuil minimum, du plus
// critique au moins critique (ratio stock/seuil croissant).
func (uc *AnalyseUseCase) ProduitsStockBas(ctx context.Context) ([]dto.ProduitStockBasDTO, error) {
	items, err := uc.analyseRepo.ProduitsStockBas(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProduitStockBasDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ProduitStockBasDTO{
			ProduitID:       it.ProduitID,
			Code:            it.Code,
			Nom:             it.Nom,
			Categorie:       it.Categorie,
			StockDisponible: it.StockDisponible,
			StockMinimum:    it.StockMinimum,
			Ratio:           it.Ratio,
		})
	}
	return out, nil
}

// Historique renvoie un itérateur paresseux sur les mouvements d'un produit,
// du plus récent au plus ancien, borné par limit. Passage unique: l'itérateur
// ne se réinitialise pas; l'appelant doit le fermer.
func (uc *AnalyseUseCase) Historique(ctx context.Context, produitID string, limit int) (repository.MouvementIterator, error) {
	if limit <= 0 {
		limit = 100
	}
	produit, err := uc.produitRepo.GetByID(produitID)
	if err != nil {
		return nil, err
	}
	if produit == nil {
		return nil, domain.ErrNotFound
	}
	return uc.mouvementRepo.History(ctx, produitID, limit)
}

// Valorisation agrège stock disponible × prix unitaire des produits actifs,
// globalement et par catégorie.
func (uc *AnalyseUseCase) Valorisation(ctx context.Context) (*dto.ValorisationResponse, error) {
	lignes, total, err := uc.analyseRepo.Valorisation(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.ValorisationResponse{
		ValeurTotale: total,
		ParCategorie: make([]dto.LigneValorisationDTO, 0, len(lignes)),
	}
	for _, l := range lignes {
		out.ParCategorie = append(out.ParCategorie, dto.LigneValorisationDTO{
			Categorie:  l.Categorie,
			NbProduits: l.NbProduits,
			Quantite:   l.Quantite,
			Valeur:     l.Valeur,
		})
	}
	return out, nil
}

// Reservations liste les réservations d'un produit, récentes d'abord.
func (uc *AnalyseUseCase) Reservations(ctx context.Context, produitID string, page dto.PageRequest) ([]dto.ReservationResponse, error) {
	page.DefaultPage()
	produit, err := uc.produitRepo.GetByID(produitID)
	if err != nil {
		return nil, err
	}
	if produit == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.reservationRepo.ListByProduit(produitID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReservationResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.ReservationResponse{
			ID:           r.ID,
			ProduitID:    r.ProduitID,
			Quantite:     r.Quantite,
			DocumentRef:  r.DocumentRef,
			TypeDocument: r.TypeDocument,
			Statut:       r.Statut,
			Notes:        r.Notes,
			EmployeID:    r.EmployeID,
			CreatedAt:    r.CreatedAt,
			UpdatedAt:    r.UpdatedAt,
		})
	}
	return out, nil
}

// EcartsReconciliation compare, pour chaque produit, le cache StockDisponible
// à la somme signée de ses mouvements. Liste vide = ledger cohérent.
func (uc *AnalyseUseCase) EcartsReconciliation(ctx context.Context) ([]repository.EcartReconciliation, error) {
	return uc.analyseRepo.EcartsReconciliation(ctx)
}

// Statistiques agrégats globaux du catalogue (total, actifs, stock bas, valeur).
func (uc *AnalyseUseCase) Statistiques(ctx context.Context) (*repository.StatistiquesInventaire, error) {
	return uc.analyseRepo.Statistiques(ctx)
}
