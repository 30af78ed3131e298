package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Estimation79/gestion-projets-dg-sub003/internal/application/dto"
	appstock "github.com/Estimation79/gestion-projets-dg-sub003/internal/application/stock"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain/entity"
)

// AnalyseHandler expose les vues dérivées de l'inventaire, en lecture seule.
type AnalyseHandler struct {
	uc *appstock.AnalyseUseCase
}

// NewAnalyseHandler construit le handler.
func NewAnalyseHandler(uc *appstock.AnalyseUseCase) *AnalyseHandler {
	return &AnalyseHandler{uc: uc}
}

// StockLibre godoc
// @Summary      Stock libre d'un produit
// @Description  Stock disponible moins la somme des réservations ACTIVE.
// @Tags         stock
// @Produce      json
// @Param        produit_id  path  string  true  "ID du produit"
// @Success      200  {object}  dto.StockLibreResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/stock-libre/{produit_id} [get]
func (h *AnalyseHandler) StockLibre(c *fiber.Ctx) error {
	out, err := h.uc.StockLibre(c.Context(), c.Params("produit_id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "produit introuvable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Historique godoc
// @Summary      Historique des mouvements d'un produit
// @Description  Mouvements du plus récent au plus ancien, lus au fil de l'eau côté serveur.
// @Tags         stock
// @Produce      json
// @Param        produit_id  path   string  true   "ID du produit"
// @Param        limit       query  int     false  "Nombre maximum de lignes (défaut 100)"
// @Success      200  {array}   dto.MouvementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/mouvements/{produit_id} [get]
func (h *AnalyseHandler) Historique(c *fiber.Ctx) error {
	it, err := h.uc.Historique(c.Context(), c.Params("produit_id"), c.QueryInt("limit"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "produit introuvable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	defer it.Close()

	out := make([]dto.MouvementResponse, 0)
	for it.Next() {
		out = append(out, toMouvementResponse(it.Mouvement()))
	}
	if err := it.Err(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Reservations godoc
// @Summary      Réservations d'un produit
// @Tags         reservations
// @Produce      json
// @Param        produit_id  path   string  true   "ID du produit"
// @Param        limit       query  int     false  "Taille de page (défaut 20, max 100)"
// @Param        offset      query  int     false  "Décalage"
// @Success      200  {array}   dto.ReservationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/reservations/produit/{produit_id} [get]
func (h *AnalyseHandler) Reservations(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paramètres invalides"})
	}
	out, err := h.uc.Reservations(c.Context(), c.Params("produit_id"), page)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "produit introuvable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// StockBas godoc
// @Summary      Produits sous leur seuil minimum
// @Tags         stock
// @Produce      json
// @Success      200  {array}  dto.ProduitStockBasDTO
// @Router       /api/stock/stock-bas [get]
func (h *AnalyseHandler) StockBas(c *fiber.Ctx) error {
	out, err := h.uc.ProduitsStockBas(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Valorisation godoc
// @Summary      Valorisation de l'inventaire
// @Description  Somme de stock × prix unitaire des produits actifs, ventilée par catégorie.
// @Tags         stock
// @Produce      json
// @Success      200  {object}  dto.ValorisationResponse
// @Router       /api/stock/valorisation [get]
func (h *AnalyseHandler) Valorisation(c *fiber.Ctx) error {
	out, err := h.uc.Valorisation(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Reconciliation godoc
// @Summary      Écarts entre cache de stock et grand livre
// @Description  Liste vide si chaque cache égale la somme signée des mouvements du produit.
// @Tags         stock
// @Produce      json
// @Success      200  {array}  dto.EcartReconciliationDTO
// @Router       /api/stock/reconciliation [get]
func (h *AnalyseHandler) Reconciliation(c *fiber.Ctx) error {
	ecarts, err := h.uc.EcartsReconciliation(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.EcartReconciliationDTO, 0, len(ecarts))
	for _, e := range ecarts {
		out = append(out, dto.EcartReconciliationDTO{
			ProduitID:       e.ProduitID,
			Code:            e.Code,
			StockDisponible: e.StockDisponible,
			SommeMouvements: e.SommeMouvements,
			Ecart:           e.Ecart,
		})
	}
	return c.JSON(out)
}

// Statistiques godoc
// @Summary      Statistiques globales de l'inventaire
// @Tags         stock
// @Produce      json
// @Success      200  {object}  dto.StatistiquesResponse
// @Router       /api/stock/statistiques [get]
func (h *AnalyseHandler) Statistiques(c *fiber.Ctx) error {
	stats, err := h.uc.Statistiques(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.StatistiquesResponse{
		TotalProduits:    stats.TotalProduits,
		ProduitsActifs:   stats.ProduitsActifs,
		ProduitsStockBas: stats.ProduitsStockBas,
		ValeurTotale:     stats.ValeurTotale,
		ParCategorie:     stats.ParCategorie,
	})
}

func toMouvementResponse(m *entity.MouvementStock) dto.MouvementResponse {
	return dto.MouvementResponse{
		ID:           m.ID,
		ProduitID:    m.ProduitID,
		Type:         m.Type,
		Quantite:     m.Quantite,
		CoutUnitaire: m.CoutUnitaire,
		Reference:    m.Reference,
		Motif:        m.Motif,
		EmployeID:    m.EmployeID,
		StockAvant:   m.StockAvant,
		StockApres:   m.StockApres,
		CreatedAt:    m.CreatedAt,
	}
}
