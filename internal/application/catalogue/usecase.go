package catalogue

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Estimation79/gestion-projets-dg-sub003/internal/application/dto"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain/entity"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain/repository"
)

// ProduitUseCase cas d'usage CRUD du catalogue. Le stock disponible ne se modifie
// jamais ici: il passe exclusivement par les mouvements du ledger.
type ProduitUseCase struct {
	repo repository.ProduitRepository
}

// NewProduitUseCase construit le cas d'usage.
func NewProduitUseCase(repo repository.ProduitRepository) *ProduitUseCase {
	return &ProduitUseCase{repo: repo}
}

// Create crée un produit. Le stock initial est zéro; une ENTREE l'alimente.
func (uc *ProduitUseCase) Create(in dto.CreateProduitRequest) (*dto.ProduitResponse, error) {
	if in.Code == "" || in.Nom == "" || in.Categorie == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.PrixUnitaire.LessThan(decimal.Zero) || in.StockMinimum.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.UniteVente == "" {
		in.UniteVente = "kg"
	}
	now := time.Now()
	produit := &entity.Produit{
		ID:                   uuid.New().String(),
		Code:                 in.Code,
		Nom:                  in.Nom,
		Description:          in.Description,
		Categorie:            in.Categorie,
		Materiau:             in.Materiau,
		Nuance:               in.Nuance,
		Dimensions:           in.Dimensions,
		UniteVente:           in.UniteVente,
		PrixUnitaire:         in.PrixUnitaire,
		StockDisponible:      decimal.Zero,
		StockMinimum:         in.StockMinimum,
		SeuilReappro:         in.SeuilReappro,
		LotReappro:           in.LotReappro,
		DelaiReapproJours:    in.DelaiReapproJours,
		FournisseurPrincipal: in.FournisseurPrincipal,
		NotesTechniques:      in.NotesTechniques,
		Actif:                true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.repo.Create(produit); err != nil {
		return nil, err
	}
	return toProduitResponse(produit), nil
}

// GetByID obtient un produit par ID.
func (uc *ProduitUseCase) GetByID(id string) (*dto.ProduitResponse, error) {
	produit, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if produit == nil {
		return nil, domain.ErrNotFound
	}
	return toProduitResponse(produit), nil
}

// GetByCode obtient un produit par code catalogue.
func (uc *ProduitUseCase) GetByCode(code string) (*dto.ProduitResponse, error) {
	produit, err := uc.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if produit == nil {
		return nil, domain.ErrNotFound
	}
	return toProduitResponse(produit), nil
}

// Update modifie les métadonnées d'un produit. StockDisponible est hors de
// portée: seules les opérations de mouvement y touchent.
func (uc *ProduitUseCase) Update(id string, in dto.UpdateProduitRequest) (*dto.ProduitResponse, error) {
	produit, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if produit == nil {
		return nil, domain.ErrNotFound
	}
	if in.Nom != nil {
		produit.Nom = *in.Nom
	}
	if in.Description != nil {
		produit.Description = *in.Description
	}
	if in.Categorie != nil {
		produit.Categorie = *in.Categorie
	}
	if in.Materiau != nil {
		produit.Materiau = *in.Materiau
	}
	if in.Nuance != nil {
		produit.Nuance = *in.Nuance
	}
	if in.Dimensions != nil {
		produit.Dimensions = *in.Dimensions
	}
	if in.UniteVente != nil {
		produit.UniteVente = *in.UniteVente
	}
	if in.PrixUnitaire != nil {
		if in.PrixUnitaire.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		produit.PrixUnitaire = *in.PrixUnitaire
	}
	if in.StockMinimum != nil {
		if in.StockMinimum.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		produit.StockMinimum = *in.StockMinimum
	}
	if in.SeuilReappro != nil {
		produit.SeuilReappro = *in.SeuilReappro
	}
	if in.LotReappro != nil {
		produit.LotReappro = *in.LotReappro
	}
	if in.DelaiReapproJours != nil {
		produit.DelaiReapproJours = *in.DelaiReapproJours
	}
	if in.FournisseurPrincipal != nil {
		produit.FournisseurPrincipal = *in.FournisseurPrincipal
	}
	if in.NotesTechniques != nil {
		produit.NotesTechniques = *in.NotesTechniques
	}
	produit.UpdatedAt = time.Now()
	if err := uc.repo.Update(produit); err != nil {
		return nil, err
	}
	return toProduitResponse(produit), nil
}

// List liste les produits avec pagination.
func (uc *ProduitUseCase) List(actifSeulement bool, page dto.PageRequest) (*dto.ProduitListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(actifSeulement, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProduitResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProduitResponse(p))
	}
	return &dto.ProduitListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Search recherche dans code, nom, description et matériau des produits actifs.
func (uc *ProduitUseCase) Search(terme string) ([]dto.ProduitResponse, error) {
	if terme == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.Search(terme)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProduitResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProduitResponse(p))
	}
	return items, nil
}

// Delete désactive un produit (soft delete). Avec hard=true, suppression
// physique sur demande explicite.
func (uc *ProduitUseCase) Delete(id string, hard bool) error {
	produit, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if produit == nil {
		return domain.ErrNotFound
	}
	if hard {
		return uc.repo.HardDelete(id)
	}
	return uc.repo.SoftDelete(id)
}

func toProduitResponse(p *entity.Produit) *dto.ProduitResponse {
	if p == nil {
		return nil
	}
	return &dto.ProduitResponse{
		ID:                   p.ID,
		Code:                 p.Code,
		Nom:                  p.Nom,
		Description:          p.Description,
		Categorie:            p.Categorie,
		Materiau:             p.Materiau,
		Nuance:               p.Nuance,
		Dimensions:           p.Dimensions,
		UniteVente:           p.UniteVente,
		PrixUnitaire:         p.PrixUnitaire,
		StockDisponible:      p.StockDisponible,
		StockMinimum:         p.StockMinimum,
		SeuilReappro:         p.SeuilReappro,
		LotReappro:           p.LotReappro,
		DelaiReapproJours:    p.DelaiReapproJours,
		FournisseurPrincipal: p.FournisseurPrincipal,
		NotesTechniques:      p.NotesTechniques,
		Actif:                p.Actif,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}
