package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Estimation79/gestion-projets-dg-sub003/internal/application/dto"
	appstock "github.com/Estimation79/gestion-projets-dg-sub003/internal/application/stock"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain"
)

// MouvementHandler gère l'écriture du grand livre des mouvements.
type MouvementHandler struct {
	uc *appstock.MouvementUseCase
}

// NewMouvementHandler construit le handler.
func NewMouvementHandler(uc *appstock.MouvementUseCase) *MouvementHandler {
	return &MouvementHandler{uc: uc}
}

// Enregistrer godoc
// @Summary      Enregistrer un mouvement de stock
// @Description  ENTREE, SORTIE ou AJUSTEMENT. Une SORTIE qui entamerait le stock réservé est refusée.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EnregistrerMouvementRequest  true  "Mouvement"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/mouvements [post]
func (h *MouvementHandler) Enregistrer(c *fiber.Ctx) error {
	var in dto.EnregistrerMouvementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	id, err := h.uc.Enregistrer(c.Context(), appstock.MouvementInput{
		ProduitID:    in.ProduitID,
		Type:         in.Type,
		Quantite:     in.Quantite,
		CoutUnitaire: in.CoutUnitaire,
		Reference:    in.Reference,
		Motif:        in.Motif,
		EmployeID:    in.EmployeID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type ou quantité de mouvement invalide"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "produit introuvable"})
		case errors.Is(err, domain.ErrStockInsuffisant):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STOCK_INSUFFISANT", Message: "stock libre insuffisant"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}
