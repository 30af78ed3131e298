package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Estimation79/gestion-projets-dg-sub003/internal/application/catalogue"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/application/dto"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain"
)

// ProduitHandler gère les requêtes HTTP du catalogue produits.
type ProduitHandler struct {
	uc *catalogue.ProduitUseCase
}

// NewProduitHandler construit le handler.
func NewProduitHandler(uc *catalogue.ProduitUseCase) *ProduitHandler {
	return &ProduitHandler{uc: uc}
}

// Create godoc
// @Summary      Créer un produit
// @Tags         produits
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProduitRequest  true  "Données du produit"
// @Success      201   {object}  dto.ProduitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/produits [post]
func (h *ProduitHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProduitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code, nom et categorie sont requis"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ce code produit existe déjà"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtenir un produit par ID
// @Tags         produits
// @Produce      json
// @Param        id  path  string  true  "ID du produit"
// @Success      200  {object}  dto.ProduitResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/produits/{id} [get]
func (h *ProduitHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "produit introuvable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Modifier les métadonnées d'un produit
// @Description  Le stock disponible n'est pas modifiable ici: il passe par les mouvements.
// @Tags         produits
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID du produit"
// @Param        body  body  dto.UpdateProduitRequest  true  "Champs à modifier"
// @Success      200   {object}  dto.ProduitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/produits/{id} [put]
func (h *ProduitHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProduitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "produit introuvable"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "données invalides"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Lister les produits
// @Tags         produits
// @Produce      json
// @Param        limit   query  int   false  "Taille de page (défaut 20, max 100)"
// @Param        offset  query  int   false  "Décalage"
// @Param        tous    query  bool  false  "Inclure les produits désactivés"
// @Success      200  {object}  dto.ProduitListResponse
// @Router       /api/produits [get]
func (h *ProduitHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paramètres invalides"})
	}
	actifSeulement := !c.QueryBool("tous")
	out, err := h.uc.List(actifSeulement, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Rechercher des produits
// @Description  Recherche sur code, nom, description et matériau des produits actifs.
// @Tags         produits
// @Produce      json
// @Param        q  query  string  true  "Terme de recherche"
// @Success      200  {array}   dto.ProduitResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/produits/search [get]
func (h *ProduitHandler) Search(c *fiber.Ctx) error {
	terme := c.Query("q")
	out, err := h.uc.Search(terme)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "le paramètre q est requis"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Désactiver ou supprimer un produit
// @Description  Par défaut soft delete (actif=false). Avec hard=true, suppression physique.
// @Tags         produits
// @Produce      json
// @Param        id    path   string  true   "ID du produit"
// @Param        hard  query  bool    false  "Suppression physique"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/produits/{id} [delete]
func (h *ProduitHandler) Delete(c *fiber.Ctx) error {
	hard := c.QueryBool("hard")
	if err := h.uc.Delete(c.Params("id"), hard); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "produit introuvable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
