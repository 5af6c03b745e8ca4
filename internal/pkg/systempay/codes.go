package systempay

import "github.com/mwork/eopayment/internal/pkg/cb"

// Result codes (result / vads_result)
const (
	ResultSuccess     = "00"
	ResultContactBank = "02"
	ResultRefused     = "05"
	ResultCancelled   = "17"
	ResultFormatError = "30"
	ResultTechnical   = "96"
)

// AuthResultCodes are the card network authorization codes
var AuthResultCodes = cb.ResponseCodes

var ResultCodes = map[string]string{
	ResultSuccess:     "paiement réalisé avec succès",
	ResultContactBank: "le commerçant doit contacter la banque du porteur",
	ResultRefused:     "paiement refusé",
	ResultCancelled:   "annulation client",
	ResultFormatError: "erreur de format",
	ResultTechnical:   "erreur technique lors du paiement",
}

// ExtraResultCodes describe the merchant side risk checks
var ExtraResultCodes = map[string]string{
	"":   "Pas de contrôle effectué",
	"00": "Tous les contrôles se sont déroulés avec succès",
	"02": "La carte a dépassé l'encours autorisé",
	"03": "La carte appartient à la liste grise du commerçant",
	"04": "Le pays d'émission de la carte appartient à la liste grise du commerçant ou le pays d'émission de la carte n'appartient pas à la liste blanche du commerçant",
	"05": "L'adresse IP appartient à la liste grise du commerçant",
	"99": "Problème technique rencontré par le serveur lors du traitement d'un des contrôles locaux",
}
