package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Estimation79/gestion-projets-dg-sub003/internal/application/catalogue"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/application/rapport"
	appstock "github.com/Estimation79/gestion-projets-dg-sub003/internal/application/stock"
	infrapdf "github.com/Estimation79/gestion-projets-dg-sub003/internal/infrastructure/pdf"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/infrastructure/postgres"
	httpRouter "github.com/Estimation79/gestion-projets-dg-sub003/internal/interfaces/http"
	"github.com/Estimation79/gestion-projets-dg-sub003/pkg/config"
	"github.com/Estimation79/gestion-projets-dg-sub003/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("chargement de la configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("démarrage de l'application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connexion à PostgreSQL")
	}
	defer pool.Close()

	// Schéma versionné: tout échec de migration est fatal, on ne démarre
	// jamais sur un schéma partiel.
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migration du schéma")
	}

	produitRepo := postgres.NewProduitRepository(pool)
	mouvementRepo := postgres.NewMouvementRepository(pool)
	reservationRepo := postgres.NewReservationRepository(pool)
	analyseRepo := postgres.NewAnalyseRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	produitUC := catalogue.NewProduitUseCase(produitRepo)
	mouvementUC := appstock.NewMouvementUseCase(txRunner)
	reservationUC := appstock.NewReservationUseCase(txRunner)
	analyseUC := appstock.NewAnalyseUseCase(produitRepo, mouvementRepo, reservationRepo, analyseRepo)

	pdfGenerator := infrapdf.NewMarotoRapportGenerator()
	rapportUC := rapport.NewPDFUseCase(analyseRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProduitUC:     produitUC,
		MouvementUC:   mouvementUC,
		ReservationUC: reservationUC,
		AnalyseUC:     analyseUC,
		RapportUC:     rapportUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("serveur HTTP terminé")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("signal d'arrêt reçu, fermeture du serveur...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arrêt du serveur")
	}

	log.Info().Msg("application arrêtée")
}
