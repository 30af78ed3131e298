package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Estimation79/gestion-projets-dg-sub003/internal/application/catalogue"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/application/rapport"
	appstock "github.com/Estimation79/gestion-projets-dg-sub003/internal/application/stock"
)

// RouterDeps dépendances du routeur.
type RouterDeps struct {
	ProduitUC     *catalogue.ProduitUseCase
	MouvementUC   *appstock.MouvementUseCase
	ReservationUC *appstock.ReservationUseCase
	AnalyseUC     *appstock.AnalyseUseCase
	RapportUC     *rapport.PDFUseCase
}

// Router enregistre les routes de l'API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catalogue produits
	produits := api.Group("/produits")
	produitHandler := NewProduitHandler(deps.ProduitUC)
	produits.Post("/", produitHandler.Create)
	produits.Get("/", produitHandler.List)
	produits.Get("/search", produitHandler.Search)
	produits.Get("/:id", produitHandler.GetByID)
	produits.Put("/:id", produitHandler.Update)
	produits.Delete("/:id", produitHandler.Delete)

	stock := api.Group("/stock")

	// Grand livre des mouvements
	mouvementHandler := NewMouvementHandler(deps.MouvementUC)
	analyseHandler := NewAnalyseHandler(deps.AnalyseUC)
	stock.Post("/mouvements", mouvementHandler.Enregistrer)
	stock.Get("/mouvements/:produit_id", analyseHandler.Historique)

	// Réservations
	reservations := stock.Group("/reservations")
	reservationHandler := NewReservationHandler(deps.ReservationUC)
	reservations.Post("/", reservationHandler.Reserver)
	reservations.Post("/liberer-par-document", reservationHandler.LibererParDocument)
	reservations.Get("/produit/:produit_id", analyseHandler.Reservations)
	reservations.Post("/:id/liberer", reservationHandler.Liberer)
	reservations.Post("/:id/consommer", reservationHandler.Consommer)

	// Vues dérivées
	stock.Get("/stock-libre/:produit_id", analyseHandler.StockLibre)
	stock.Get("/stock-bas", analyseHandler.StockBas)
	stock.Get("/valorisation", analyseHandler.Valorisation)
	stock.Get("/reconciliation", analyseHandler.Reconciliation)
	stock.Get("/statistiques", analyseHandler.Statistiques)

	// Rapports
	rapports := api.Group("/rapports")
	rapportHandler := NewRapportHandler(deps.RapportUC)
	rapports.Get("/inventaire.pdf", rapportHandler.Inventaire)
}
