package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Estimation79/gestion-projets-dg-sub003/internal/application/catalogue"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/application/dto"
	appstock "github.com/Estimation79/gestion-projets-dg-sub003/internal/application/stock"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain/entity"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain/repository"
	apphttp "github.com/Estimation79/gestion-projets-dg-sub003/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en mémoire: juste assez pour traverser les handlers jusqu'aux cas
// d'usage et vérifier le mapping erreur -> code HTTP.
// ──────────────────────────────────────────────────────────────────────────────

type fakeProduits struct {
	parID map[string]*entity.Produit
}

func (r *fakeProduits) Create(p *entity.Produit) error {
	r.parID[p.ID] = p
	return nil
}

func (r *fakeProduits) GetByID(id string) (*entity.Produit, error) {
	if p, ok := r.parID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProduits) GetByCode(code string) (*entity.Produit, error) {
	for _, p := range r.parID {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProduits) GetForUpdate(id string) (*entity.Produit, error) { return r.GetByID(id) }

func (r *fakeProduits) Update(p *entity.Produit) error {
	cp := *p
	r.parID[p.ID] = &cp
	return nil
}

func (r *fakeProduits) UpdateStock(id string, q decimal.Decimal) error {
	if p, ok := r.parID[id]; ok {
		p.StockDisponible = q
		return nil
	}
	return domain.ErrNotFound
}

func (r *fakeProduits) List(actifSeulement bool, limit, offset int) ([]*entity.Produit, error) {
	var out []*entity.Produit
	for _, p := range r.parID {
		if actifSeulement && !p.Actif {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProduits) Search(terme string) ([]*entity.Produit, error) { return nil, nil }

func (r *fakeProduits) SoftDelete(id string) error {
	if p, ok := r.parID[id]; ok {
		p.Actif = false
		return nil
	}
	return domain.ErrNotFound
}

func (r *fakeProduits) HardDelete(id string) error {
	if _, ok := r.parID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.parID, id)
	return nil
}

type fakeMouvements struct {
	journal []*entity.MouvementStock
}

func (r *fakeMouvements) Create(m *entity.MouvementStock) error {
	r.journal = append(r.journal, m)
	return nil
}

func (r *fakeMouvements) GetByID(string) (*entity.MouvementStock, error) { return nil, nil }

func (r *fakeMouvements) ListByProduit(string, int, int) ([]*entity.MouvementStock, error) {
	return nil, nil
}

func (r *fakeMouvements) History(_ context.Context, produitID string, limit int) (repository.MouvementIterator, error) {
	var items []*entity.MouvementStock
	for i := len(r.journal) - 1; i >= 0 && len(items) < limit; i-- {
		if r.journal[i].ProduitID == produitID {
			items = append(items, r.journal[i])
		}
	}
	return &iterateurTranche{items: items}, nil
}

func (r *fakeMouvements) SumByProduit(produitID string) (decimal.Decimal, error) {
	somme := decimal.Zero
	for _, m := range r.journal {
		if m.ProduitID == produitID {
			somme = somme.Add(m.Quantite)
		}
	}
	return somme, nil
}

type iterateurTranche struct {
	items   []*entity.MouvementStock
	courant *entity.MouvementStock
}

func (it *iterateurTranche) Next() bool {
	if len(it.items) == 0 {
		return false
	}
	it.courant = it.items[0]
	it.items = it.items[1:]
	return true
}

func (it *iterateurTranche) Mouvement() *entity.MouvementStock { return it.courant }
func (it *iterateurTranche) Err() error                        { return nil }
func (it *iterateurTranche) Close()                            {}

type fakeReservations struct {
	parID map[string]*entity.Reservation
}

func (r *fakeReservations) Create(res *entity.Reservation) error {
	r.parID[res.ID] = res
	return nil
}

func (r *fakeReservations) GetByID(id string) (*entity.Reservation, error) {
	if res, ok := r.parID[id]; ok {
		cp := *res
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeReservations) GetForUpdate(id string) (*entity.Reservation, error) { return r.GetByID(id) }

func (r *fakeReservations) UpdateStatut(id, statut string) error {
	if res, ok := r.parID[id]; ok {
		res.Statut = statut
		return nil
	}
	return domain.ErrNotFound
}

func (r *fakeReservations) SumActiveByProduit(produitID string) (decimal.Decimal, error) {
	somme := decimal.Zero
	for _, res := range r.parID {
		if res.ProduitID == produitID && res.Statut == entity.ReservationActive {
			somme = somme.Add(res.Quantite)
		}
	}
	return somme, nil
}

func (r *fakeReservations) ListByProduit(string, int, int) ([]*entity.Reservation, error) {
	return nil, nil
}

func (r *fakeReservations) ListActiveByDocument(typeDocument, documentRef string) ([]*entity.Reservation, error) {
	var out []*entity.Reservation
	for _, res := range r.parID {
		if res.TypeDocument == typeDocument && res.DocumentRef == documentRef &&
			res.Statut == entity.ReservationActive {
			out = append(out, res)
		}
	}
	return out, nil
}

// fakeAnalyse dérive les vues de lecture de l'état courant des fakes, avec
// les mêmes règles d'inclusion que l'adaptateur SQL.
type fakeAnalyse struct {
	produits *fakeProduits
}

func (r *fakeAnalyse) ProduitsStockBas(context.Context) ([]repository.ProduitStockBas, error) {
	var list []repository.ProduitStockBas
	for _, p := range r.produits.parID {
		if !p.Actif || p.StockDisponible.GreaterThan(p.StockMinimum) {
			continue
		}
		list = append(list, repository.ProduitStockBas{
			ProduitID:       p.ID,
			Code:            p.Code,
			Nom:             p.Nom,
			Categorie:       p.Categorie,
			StockDisponible: p.StockDisponible,
			StockMinimum:    p.StockMinimum,
		})
	}
	return list, nil
}

func (r *fakeAnalyse) Valorisation(context.Context) ([]repository.LigneValorisation, decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range r.produits.parID {
		if p.Actif {
			total = total.Add(p.StockDisponible.Mul(p.PrixUnitaire))
		}
	}
	return nil, total, nil
}

func (r *fakeAnalyse) EcartsReconciliation(context.Context) ([]repository.EcartReconciliation, error) {
	return nil, nil
}

func (r *fakeAnalyse) Statistiques(context.Context) (*repository.StatistiquesInventaire, error) {
	return &repository.StatistiquesInventaire{ParCategorie: map[string]int{}}, nil
}

// fakeRunner exécute le callback directement sur les fakes, sans rollback:
// les tests HTTP ne vérifient que le routage et les codes de statut.
type fakeRunner struct {
	produits     *fakeProduits
	mouvements   *fakeMouvements
	reservations *fakeReservations
}

func (f *fakeRunner) Run(_ context.Context, fn func(
	repository.ProduitRepository,
	repository.MouvementRepository,
	repository.ReservationRepository,
) error) error {
	return fn(f.produits, f.mouvements, f.reservations)
}

// ── helpers ───────────────────────────────────────────────────────────────────

const produitID = "00000000-0000-0000-0000-00000000b001"

func buildApp(t *testing.T) *fiber.App {
	t.Helper()
	produits := &fakeProduits{parID: map[string]*entity.Produit{
		produitID: {
			ID:              produitID,
			Code:            "INOX-TOLE-2MM",
			Nom:             "Tôle inox 2 mm",
			Categorie:       "INOX",
			UniteVente:      "kg",
			StockDisponible: decimal.NewFromInt(100),
			StockMinimum:    decimal.NewFromInt(20),
			Actif:           true,
		},
	}}
	mouvements := &fakeMouvements{}
	reservations := &fakeReservations{parID: make(map[string]*entity.Reservation)}
	runner := &fakeRunner{produits: produits, mouvements: mouvements, reservations: reservations}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProduitUC:     catalogue.NewProduitUseCase(produits),
		MouvementUC:   appstock.NewMouvementUseCase(runner),
		ReservationUC: appstock.NewReservationUseCase(runner),
		AnalyseUC:     appstock.NewAnalyseUseCase(produits, mouvements, reservations, &fakeAnalyse{produits: produits}),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, cible string, body any) *http.Response {
	t.Helper()
	var lecteur io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		lecteur = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, cible, lecteur)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ── routes produits ───────────────────────────────────────────────────────────

func TestPostProduit_201(t *testing.T) {
	app := buildApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/produits/", dto.CreateProduitRequest{
		Code:      "ACIER-ROND-20",
		Nom:       "Rond acier 20",
		Categorie: "ACIER",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	created := decode[dto.ProduitResponse](t, resp)
	assert.Equal(t, "ACIER-ROND-20", created.Code)
	assert.True(t, created.StockDisponible.Equal(decimal.Zero))
}

func TestPostProduit_ValidationEtDoublon(t *testing.T) {
	app := buildApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/produits/", dto.CreateProduitRequest{Nom: "Sans code"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/api/produits/", dto.CreateProduitRequest{
		Code: "INOX-TOLE-2MM", Nom: "Doublon", Categorie: "INOX",
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	erreur := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "DUPLICATE", erreur.Code)
}

func TestGetProduit_404(t *testing.T) {
	app := buildApp(t)
	resp := doJSON(t, app, fiber.MethodGet, "/api/produits/00000000-0000-0000-0000-00000000dead", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// ── routes mouvements ─────────────────────────────────────────────────────────

func TestPostMouvement_EntreePuisHistorique(t *testing.T) {
	app := buildApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/stock/mouvements", dto.EnregistrerMouvementRequest{
		ProduitID: produitID,
		Type:      entity.MouvementEntree,
		Quantite:  decimal.NewFromInt(50),
		Reference: "BC-2026-0100",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/stock/mouvements/"+produitID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	historique := decode[[]dto.MouvementResponse](t, resp)
	require.Len(t, historique, 1)
	assert.Equal(t, "BC-2026-0100", historique[0].Reference)
	assert.True(t, historique[0].Quantite.Equal(decimal.NewFromInt(50)))
}

func TestPostMouvement_TypeInconnu400(t *testing.T) {
	app := buildApp(t)
	resp := doJSON(t, app, fiber.MethodPost, "/api/stock/mouvements", dto.EnregistrerMouvementRequest{
		ProduitID: produitID,
		Type:      "TRANSFERT",
		Quantite:  decimal.NewFromInt(1),
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPostMouvement_SortieInsuffisante409(t *testing.T) {
	app := buildApp(t)
	resp := doJSON(t, app, fiber.MethodPost, "/api/stock/mouvements", dto.EnregistrerMouvementRequest{
		ProduitID: produitID,
		Type:      entity.MouvementSortie,
		Quantite:  decimal.NewFromInt(101),
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	erreur := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "STOCK_INSUFFISANT", erreur.Code)
}

// ── routes réservations ───────────────────────────────────────────────────────

func TestCycleReservationHTTP(t *testing.T) {
	app := buildApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/stock/reservations/", dto.ReserverStockRequest{
		ProduitID:    produitID,
		Quantite:     decimal.NewFromInt(40),
		DocumentRef:  "BT-2026-0200",
		TypeDocument: "BON_TRAVAIL",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	creation := decode[map[string]string](t, resp)
	id := creation["id"]
	require.NotEmpty(t, id)

	// Le stock libre est maintenant 60: réserver 61 échoue.
	resp = doJSON(t, app, fiber.MethodPost, "/api/stock/reservations/", dto.ReserverStockRequest{
		ProduitID:    produitID,
		Quantite:     decimal.NewFromInt(61),
		DocumentRef:  "BT-2026-0201",
		TypeDocument: "BON_TRAVAIL",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/stock/stock-libre/"+produitID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	libre := decode[dto.StockLibreResponse](t, resp)
	assert.True(t, libre.StockLibre.Equal(decimal.NewFromInt(60)))

	// Consommation: 204 puis état terminal -> 409 à la deuxième tentative.
	resp = doJSON(t, app, fiber.MethodPost, "/api/stock/reservations/"+id+"/consommer", nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/api/stock/reservations/"+id+"/consommer", nil)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	erreur := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "ETAT_INVALIDE", erreur.Code)
}

// ── routes d'analyse ──────────────────────────────────────────────────────────

// TestStockBasHTTP_EntreeSortDesAlertes une sortie fait passer le produit sous
// son seuil et l'entrée suivante le fait quitter la liste d'alertes.
func TestStockBasHTTP_EntreeSortDesAlertes(t *testing.T) {
	app := buildApp(t)

	// Stock 100 pour un seuil de 20: aucune alerte au départ.
	resp := doJSON(t, app, fiber.MethodGet, "/api/stock/stock-bas", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]dto.ProduitStockBasDTO](t, resp))

	resp = doJSON(t, app, fiber.MethodPost, "/api/stock/mouvements", dto.EnregistrerMouvementRequest{
		ProduitID: produitID,
		Type:      entity.MouvementSortie,
		Quantite:  decimal.NewFromInt(90),
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/stock/stock-bas", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	alertes := decode[[]dto.ProduitStockBasDTO](t, resp)
	require.Len(t, alertes, 1, "stock 10 <= seuil 20: le produit est en alerte")
	assert.Equal(t, "INOX-TOLE-2MM", alertes[0].Code)

	resp = doJSON(t, app, fiber.MethodPost, "/api/stock/mouvements", dto.EnregistrerMouvementRequest{
		ProduitID: produitID,
		Type:      entity.MouvementEntree,
		Quantite:  decimal.NewFromInt(80),
		Reference: "BC-2026-0101",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/stock/stock-bas", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]dto.ProduitStockBasDTO](t, resp),
		"après réception le produit repasse au-dessus du seuil")
}

func TestLibererParDocumentHTTP(t *testing.T) {
	app := buildApp(t)

	for _, doc := range []string{"DEVIS-2026-0300", "DEVIS-2026-0300", "DEVIS-2026-0301"} {
		resp := doJSON(t, app, fiber.MethodPost, "/api/stock/reservations/", dto.ReserverStockRequest{
			ProduitID:    produitID,
			Quantite:     decimal.NewFromInt(10),
			DocumentRef:  doc,
			TypeDocument: "DEVIS",
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp := doJSON(t, app, fiber.MethodPost, "/api/stock/reservations/liberer-par-document",
		dto.LibererParDocumentRequest{TypeDocument: "DEVIS", DocumentRef: "DEVIS-2026-0300"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	compte := decode[map[string]int](t, resp)
	assert.Equal(t, 2, compte["liberees"])
}
