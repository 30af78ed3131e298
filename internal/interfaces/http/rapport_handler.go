package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/Estimation79/gestion-projets-dg-sub003/internal/application/dto"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/application/rapport"
)

// RapportHandler sert les rapports PDF de l'inventaire.
type RapportHandler struct {
	uc *rapport.PDFUseCase
}

// NewRapportHandler construit le handler.
func NewRapportHandler(uc *rapport.PDFUseCase) *RapportHandler {
	return &RapportHandler{uc: uc}
}

// Inventaire godoc
// @Summary      Rapport d'inventaire PDF
// @Description  Valorisation par catégorie et alertes de stock bas, daté du jour.
// @Tags         rapports
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/rapports/inventaire.pdf [get]
func (h *RapportHandler) Inventaire(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.RapportInventaire(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdf)
}
