package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Estimation79/gestion-projets-dg-sub003/internal/application/dto"
	appstock "github.com/Estimation79/gestion-projets-dg-sub003/internal/application/stock"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain"
)

// ReservationHandler gère le cycle de vie des réservations de stock.
type ReservationHandler struct {
	uc *appstock.ReservationUseCase
}

// NewReservationHandler construit le handler.
func NewReservationHandler(uc *appstock.ReservationUseCase) *ReservationHandler {
	return &ReservationHandler{uc: uc}
}

// Reserver godoc
// @Summary      Réserver du stock pour un document
// @Description  Refusée avec 409 si la quantité dépasse le stock libre du produit.
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReserverStockRequest  true  "Réservation"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/reservations [post]
func (h *ReservationHandler) Reserver(c *fiber.Ctx) error {
	var in dto.ReserverStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	id, err := h.uc.Reserver(c.Context(), appstock.ReservationInput{
		ProduitID:    in.ProduitID,
		Quantite:     in.Quantite,
		DocumentRef:  in.DocumentRef,
		TypeDocument: in.TypeDocument,
		Notes:        in.Notes,
		EmployeID:    in.EmployeID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "produit, document et quantité positive sont requis"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "produit introuvable"})
		case errors.Is(err, domain.ErrStockInsuffisant):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STOCK_INSUFFISANT", Message: "stock libre insuffisant pour réserver"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// Liberer godoc
// @Summary      Libérer une réservation
// @Description  Idempotente: libérer une réservation déjà terminée ne fait rien.
// @Tags         reservations
// @Produce      json
// @Param        id  path  string  true  "ID de la réservation"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/reservations/{id}/liberer [post]
func (h *ReservationHandler) Liberer(c *fiber.Ctx) error {
	if err := h.uc.Liberer(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "réservation introuvable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Consommer godoc
// @Summary      Consommer une réservation
// @Description  Passe la réservation à CONSOMMEE et enregistre la SORTIE appariée, atomiquement.
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true   "ID de la réservation"
// @Param        body  body  dto.ConsommerReservationRequest  false  "Employé à l'origine de la consommation"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/reservations/{id}/consommer [post]
func (h *ReservationHandler) Consommer(c *fiber.Ctx) error {
	var in dto.ConsommerReservationRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
		}
	}
	if err := h.uc.Consommer(c.Context(), c.Params("id"), in.EmployeID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "réservation introuvable"})
		case errors.Is(err, domain.ErrEtatInvalide):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ETAT_INVALIDE", Message: "seule une réservation ACTIVE peut être consommée"})
		case errors.Is(err, domain.ErrStockInsuffisant):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STOCK_INSUFFISANT", Message: "stock insuffisant pour consommer la réservation"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LibererParDocument godoc
// @Summary      Libérer toutes les réservations actives d'un document
// @Description  Libération en cascade lors de l'annulation d'un devis ou bon de travail.
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LibererParDocumentRequest  true  "Document annulé"
// @Success      200   {object}  map[string]int
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/reservations/liberer-par-document [post]
func (h *ReservationHandler) LibererParDocument(c *fiber.Ctx) error {
	var in dto.LibererParDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	n, err := h.uc.LibererParDocument(c.Context(), in.TypeDocument, in.DocumentRef)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type_document et document_ref sont requis"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"liberees": n})
}
