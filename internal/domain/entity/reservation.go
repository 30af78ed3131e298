package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statuts de réservation. ACTIVE est le seul état non terminal:
// ACTIVE -> LIBEREE (annulation) ou ACTIVE -> CONSOMMEE (sortie appariée).
const (
	ReservationActive    = "ACTIVE"
	ReservationLiberee   = "LIBEREE"
	ReservationConsommee = "CONSOMMEE"
)

// Reservation bloque une quantité pour un document aval (commande, bon de
// travail) sans la retirer du stock disponible. Seules les réservations
// ACTIVE comptent dans le calcul du stock libre.
type Reservation struct {
	ID            string
	ProduitID     string
	Quantite      decimal.Decimal
	DocumentRef   string // identifiant du document aval, opaque pour le ledger
	TypeDocument  string // COMMANDE, BON_TRAVAIL... opaque également
	Statut        string
	Notes         string
	EmployeID     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Terminale indique si la réservation a atteint un état final.
func (r *Reservation) Terminale() bool {
	return r.Statut == ReservationLiberee || r.Statut == ReservationConsommee
}
