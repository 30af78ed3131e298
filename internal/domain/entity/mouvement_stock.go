package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Types de mouvement de stock.
const (
	MouvementEntree     = "ENTREE"     // réception en stock
	MouvementSortie     = "SORTIE"     // sortie physique
	MouvementAjustement = "AJUSTEMENT" // correction d'inventaire
)

// MouvementStock est une écriture immuable du grand livre de stock.
// Quantite est signée: positive pour une entrée, négative pour une sortie;
// un ajustement enregistre le delta vers la nouvelle quantité absolue.
// Une fois écrite, une ligne n'est jamais modifiée ni supprimée.
type MouvementStock struct {
	ID           string
	ProduitID    string
	Type         string
	Quantite     decimal.Decimal  // delta signé appliqué au stock disponible
	CoutUnitaire *decimal.Decimal // optionnel, renseigné surtout sur les entrées
	Reference    string           // document source (commande, bon de travail...)
	Motif        string           // raison en texte libre
	EmployeID    string           // acteur, enregistré tel quel sans validation
	StockAvant   decimal.Decimal
	StockApres   decimal.Decimal
	CreatedAt    time.Time
}
