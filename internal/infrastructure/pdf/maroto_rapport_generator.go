// Package pdf met en page le rapport d'inventaire avec Maroto v2.
//
// Page A4:
//
//	┌──────────────────────────────────────────────────────────┐
//	│  HEADER: Rapport d'inventaire + date d'édition            │
//	│  ──────────────────────────────────────────────────────  │
//	│  VALORISATION: Catégorie | Produits | Quantité | Valeur   │
//	│  TOTAL GÉNÉRAL                                            │
//	│  ──────────────────────────────────────────────────────  │
//	│  ALERTES STOCK BAS: Code | Nom | Stock | Seuil | Ratio    │
//	└──────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/Estimation79/gestion-projets-dg-sub003/internal/application/rapport"
	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain/repository"
)

var (
	colorPrimary = &props.Color{Red: 31, Green: 58, Blue: 96}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 40, Blue: 40}
)

// MarotoRapportGenerator implémente rapport.RapportPDFGenerator avec Maroto v2.
type MarotoRapportGenerator struct{}

// NewMarotoRapportGenerator construit le générateur.
func NewMarotoRapportGenerator() *MarotoRapportGenerator { return &MarotoRapportGenerator{} }

// GenerateRapportInventaire génère le PDF et renvoie ses octets.
func (g *MarotoRapportGenerator) GenerateRapportInventaire(
	_ context.Context,
	donnees *rapport.DonneesRapport,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Rapport d'inventaire", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(donnees))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionRow("VALORISATION DU STOCK PAR CATÉGORIE"))
	m.AddRows(valorisationHeaderRow())
	for _, r := range valorisationRows(donnees.Valorisation) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(donnees))

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionRow("ALERTES STOCK BAS"))
	if len(donnees.StockBas) == 0 {
		m.AddRows(row.New(7).Add(col.New(12).Add(
			text.New("Aucun produit sous son seuil minimum.", props.Text{
				Size: 8, Color: colorGray, Top: 1,
			}),
		)))
	} else {
		m.AddRows(stockBasHeaderRow())
		for _, r := range stockBasRows(donnees.StockBas) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: générer document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: titre + date d'édition.
func headerRow(donnees *rapport.DonneesRapport) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("RAPPORT D'INVENTAIRE", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Édité le "+donnees.EditeLe.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

func sectionRow(titre string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(titre, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}),
	))
}

func valorisationHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
		}))
	}
	return row.New(7).Add(
		h("Catégorie", 5, align.Left),
		h("Produits", 2, align.Center),
		h("Quantité", 2, align.Right),
		h("Valeur", 3, align.Right),
	)
}

func valorisationRows(lignes []repository.LigneValorisation) []core.Row {
	result := make([]core.Row, 0, len(lignes))
	for _, l := range lignes {
		result = append(result, row.New(6).Add(
			col.New(5).Add(text.New(l.Categorie, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", l.NbProduits),
				props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(l.Quantite.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(l.Valeur.StringFixed(2)+" $",
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalRow(donnees *rapport.DonneesRapport) core.Row {
	return row.New(8).Add(
		col.New(9).Add(text.New("VALEUR TOTALE DU STOCK:", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New(donnees.ValeurTotale.StringFixed(2)+" $", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

func stockBasHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
		}))
	}
	return row.New(7).Add(
		h("Code", 2, align.Left),
		h("Produit", 5, align.Left),
		h("Stock", 2, align.Right),
		h("Seuil", 2, align.Right),
		h("Ratio", 1, align.Right),
	)
}

func stockBasRows(items []repository.ProduitStockBas) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, p := range items {
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(p.Code, props.Text{Size: 8, Top: 1})),
			col.New(5).Add(text.New(p.Nom, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(p.StockDisponible.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Color: colorAlert})),
			col.New(2).Add(text.New(p.StockMinimum.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(1).Add(text.New(p.Ratio.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return result
}
