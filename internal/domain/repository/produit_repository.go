package repository

import (
	"github.com/shopspring/decimal"

	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain/entity"
)

// ProduitRepository définit le port de persistance pour Produit (DIP).
// Le ledger ne possède pas la création du catalogue, seulement le champ
// StockDisponible, mis à jour exclusivement via UpdateStock dans une transaction.
type ProduitRepository interface {
	Create(produit *entity.Produit) error
	GetByID(id string) (*entity.Produit, error)
	GetByCode(code string) (*entity.Produit, error)
	// GetForUpdate verrouille la ligne produit (SELECT FOR UPDATE) pour
	// sérialiser les écritures du cache de stock et le contrôle de stock libre.
	GetForUpdate(id string) (*entity.Produit, error)
	Update(produit *entity.Produit) error
	UpdateStock(produitID string, quantite decimal.Decimal) error
	List(actifSeulement bool, limit, offset int) ([]*entity.Produit, error)
	Search(terme string) ([]*entity.Produit, error)
	// SoftDelete désactive le produit (actif = false); HardDelete le supprime
	// physiquement, uniquement sur demande explicite.
	SoftDelete(id string) error
	HardDelete(id string) error
}
