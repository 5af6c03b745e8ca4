package spplus

// Payment state codes (etat)
const (
	EtatAccepted = "1"
	EtatRefused  = "2"
)

// ResponseCodes maps etat values to their label
var ResponseCodes = map[string]string{
	"1":  "Autorisation de paiement acceptée",
	"2":  "Autorisation de paiement refusée",
	"4":  "Echéance du paiement acceptée et en attente de remise",
	"5":  "Echéance du paiement refusée",
	"6":  "Paiement par chèque accepté",
	"8":  "Chèque encaissé",
	"10": "Paiement terminé",
	"11": "Echéance du paiement annulée par le commerçant",
	"12": "Abandon de l'internaute",
	"15": "Remboursement enregistré",
	"16": "Remboursement annulé",
	"17": "Remboursement accepté",
	"20": "Echéance du paiement avec un impayé",
	"21": "Echéance du paiement avec un impayé et en attente de validation des services SP PLUS",
	"30": "Echéance du paiement remisée",
	"99": "Paiement de test en production",
}
