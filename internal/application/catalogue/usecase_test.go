package catalogue_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Estimation79/gestion-projets-dg-sub003/internal/application/catalogue"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/application/dto"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain/entity"
)

// fakeRepo ProduitRepository en mémoire, suffisant pour tester le CRUD.
type fakeRepo struct {
	produits map[string]*entity.Produit
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{produits: make(map[string]*entity.Produit)}
}

func (r *fakeRepo) Create(p *entity.Produit) error {
	cp := *p
	r.produits[p.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(id string) (*entity.Produit, error) {
	if p, ok := r.produits[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeRepo) GetByCode(code string) (*entity.Produit, error) {
	for _, p := range r.produits {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) GetForUpdate(id string) (*entity.Produit, error) { return r.GetByID(id) }

func (r *fakeRepo) Update(p *entity.Produit) error {
	if _, ok := r.produits[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.produits[p.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdateStock(id string, quantite decimal.Decimal) error {
	p, ok := r.produits[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockDisponible = quantite
	return nil
}

func (r *fakeRepo) List(actifSeulement bool, limit, offset int) ([]*entity.Produit, error) {
	var out []*entity.Produit
	for _, p := range r.produits {
		if actifSeulement && !p.Actif {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeRepo) Search(terme string) ([]*entity.Produit, error) {
	terme = strings.ToLower(terme)
	var out []*entity.Produit
	for _, p := range r.produits {
		if !p.Actif {
			continue
		}
		if strings.Contains(strings.ToLower(p.Nom), terme) ||
			strings.Contains(strings.ToLower(p.Code), terme) ||
			strings.Contains(strings.ToLower(p.Materiau), terme) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRepo) SoftDelete(id string) error {
	p, ok := r.produits[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Actif = false
	return nil
}

func (r *fakeRepo) HardDelete(id string) error {
	if _, ok := r.produits[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.produits, id)
	return nil
}

func creationValide() dto.CreateProduitRequest {
	return dto.CreateProduitRequest{
		Code:         "ALU-TUBE-30x2",
		Nom:          "Tube aluminium 30 x 2",
		Categorie:    "ALUMINIUM",
		Materiau:     "6061-T6",
		PrixUnitaire: decimal.RequireFromString("8.40"),
		StockMinimum: decimal.NewFromInt(25),
	}
}

func TestCreate_StockInitialZero(t *testing.T) {
	uc := catalogue.NewProduitUseCase(newFakeRepo())

	out, err := uc.Create(creationValide())
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.True(t, out.StockDisponible.Equal(decimal.Zero),
		"le stock initial est zéro: une ENTREE l'alimente")
	assert.Equal(t, "kg", out.UniteVente, "l'unité de vente par défaut est le kg")
	assert.True(t, out.Actif)
}

func TestCreate_ChampsObligatoires(t *testing.T) {
	uc := catalogue.NewProduitUseCase(newFakeRepo())

	for _, cas := range []func(*dto.CreateProduitRequest){
		func(in *dto.CreateProduitRequest) { in.Code = "" },
		func(in *dto.CreateProduitRequest) { in.Nom = "" },
		func(in *dto.CreateProduitRequest) { in.Categorie = "" },
	} {
		in := creationValide()
		cas(&in)
		_, err := uc.Create(in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestCreate_PrixNegatifRefuse(t *testing.T) {
	uc := catalogue.NewProduitUseCase(newFakeRepo())
	in := creationValide()
	in.PrixUnitaire = decimal.NewFromInt(-1)
	_, err := uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_CodeDuplique(t *testing.T) {
	uc := catalogue.NewProduitUseCase(newFakeRepo())

	_, err := uc.Create(creationValide())
	require.NoError(t, err)

	_, err = uc.Create(creationValide())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUpdate_NeTouchePasAuStock(t *testing.T) {
	repo := newFakeRepo()
	uc := catalogue.NewProduitUseCase(repo)

	created, err := uc.Create(creationValide())
	require.NoError(t, err)
	// Simule un stock alimenté par le moteur de mouvements.
	require.NoError(t, repo.UpdateStock(created.ID, decimal.NewFromInt(42)))

	nouveauNom := "Tube aluminium 30 x 2 mm"
	out, err := uc.Update(created.ID, dto.UpdateProduitRequest{Nom: &nouveauNom})
	require.NoError(t, err)

	assert.Equal(t, nouveauNom, out.Nom)
	assert.True(t, out.StockDisponible.Equal(decimal.NewFromInt(42)),
		"la mise à jour des métadonnées ne doit pas toucher le cache de stock")
}

func TestUpdate_ProduitInconnu(t *testing.T) {
	uc := catalogue.NewProduitUseCase(newFakeRepo())
	nom := "X"
	_, err := uc.Update("00000000-0000-0000-0000-00000000dead", dto.UpdateProduitRequest{Nom: &nom})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearch_TermeObligatoire(t *testing.T) {
	uc := catalogue.NewProduitUseCase(newFakeRepo())
	_, err := uc.Search("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDelete_SoftParDefaut(t *testing.T) {
	repo := newFakeRepo()
	uc := catalogue.NewProduitUseCase(repo)

	created, err := uc.Create(creationValide())
	require.NoError(t, err)

	require.NoError(t, uc.Delete(created.ID, false))
	p, _ := repo.GetByID(created.ID)
	require.NotNil(t, p, "le soft delete conserve la ligne")
	assert.False(t, p.Actif)

	require.NoError(t, uc.Delete(created.ID, true))
	p, _ = repo.GetByID(created.ID)
	assert.Nil(t, p, "le hard delete supprime physiquement")
}

func TestList_PaginationParDefaut(t *testing.T) {
	uc := catalogue.NewProduitUseCase(newFakeRepo())
	out, err := uc.List(true, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 20, out.Page.Limit, "la taille de page par défaut est 20")
}
