package stock

import "github.com/shopspring/decimal"

// StockLibre calcule le stock disponible à promettre (service de domaine).
// StockLibre = StockDisponible - Somme(réservations ACTIVE)
func StockLibre(disponible, reserve decimal.Decimal) decimal.Decimal {
	return disponible.Sub(reserve)
}

// Suffisant vérifie qu'une quantité demandée peut être servie par le stock libre.
func Suffisant(disponible, reserve, demande decimal.Decimal) bool {
	return demande.LessThanOrEqual(StockLibre(disponible, reserve))
}

// RatioCriticite mesure l'urgence d'un stock bas: StockDisponible / StockMinimum.
// Plus le ratio est bas, plus la situation est critique. Un seuil nul ou
// négatif renvoie zéro (produit toujours en tête de liste s'il est listé).
func RatioCriticite(disponible, minimum decimal.Decimal) decimal.Decimal {
	if minimum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return disponible.Div(minimum)
}

// Valorisation calcule la valeur d'une ligne d'inventaire: quantité × prix unitaire.
func Valorisation(quantite, prixUnitaire decimal.Decimal) decimal.Decimal {
	return quantite.Mul(prixUnitaire)
}
