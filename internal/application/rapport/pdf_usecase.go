package rapport

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain/repository"
)

// DonneesRapport tout ce que le générateur met en page: valorisation par
// catégorie, valeur totale et alertes stock bas à la date d'édition.
type DonneesRapport struct {
	EditeLe      time.Time
	ValeurTotale decimal.Decimal
	Valorisation []repository.LigneValorisation
	StockBas     []repository.ProduitStockBas
}

// RapportPDFGenerator port de génération du PDF (implémenté par Maroto côté
// infrastructure).
type RapportPDFGenerator interface {
	GenerateRapportInventaire(ctx context.Context, donnees *DonneesRapport) ([]byte, error)
}

// PDFUseCase génère le rapport d'inventaire PDF: valorisation du stock par
// catégorie et liste des produits sous leur seuil minimum.
type PDFUseCase struct {
	analyseRepo repository.AnalyseRepository
	generator   RapportPDFGenerator
}

// NewPDFUseCase construit le cas d'usage.
func NewPDFUseCase(analyseRepo repository.AnalyseRepository, generator RapportPDFGenerator) *PDFUseCase {
	return &PDFUseCase{analyseRepo: analyseRepo, generator: generator}
}

// RapportInventaire assemble les données d'analyse puis délègue la mise en
// page. Renvoie les octets du PDF et un nom de fichier daté.
func (uc *PDFUseCase) RapportInventaire(ctx context.Context) (pdfBytes []byte, filename string, err error) {
	lignes, total, err := uc.analyseRepo.Valorisation(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("rapport: valorisation: %w", err)
	}
	stockBas, err := uc.analyseRepo.ProduitsStockBas(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("rapport: stock bas: %w", err)
	}
	now := time.Now()
	donnees := &DonneesRapport{
		EditeLe:      now,
		ValeurTotale: total,
		Valorisation: lignes,
		StockBas:     stockBas,
	}
	pdfBytes, err = uc.generator.GenerateRapportInventaire(ctx, donnees)
	if err != nil {
		return nil, "", fmt.Errorf("rapport: génération PDF: %w", err)
	}
	filename = fmt.Sprintf("rapport-inventaire-%s.pdf", now.Format("2006-01-02"))
	return pdfBytes, filename, nil
}
