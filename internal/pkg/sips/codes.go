package sips

import "github.com/mwork/eopayment/internal/pkg/cb"

// Response code constants
const (
	RCAuthorised       = "00"
	RCCallIssuer       = "02"
	RCInvalidMerchant  = "03"
	RCRefused          = "05"
	RCInvalidRequest   = "12"
	RCCancelled        = "17"
	RCFormatError      = "30"
	RCFraudSuspected   = "34"
	RCTooManyAttempts  = "75"
	RCUnavailable      = "90"
	RCDuplicate        = "94"
	RCTemporaryFailure = "99"
)

// ResponseCodes describe the response_code field
var ResponseCodes = map[string]string{
	RCAuthorised:       "Autorisation acceptée",
	RCCallIssuer:       "Demande d'autorisation par téléphone à la banque à cause d'un dépassement de plafond",
	RCInvalidMerchant:  "Champ merchant_id invalide ou contrat de vente à distance inexistant",
	RCRefused:          "Autorisation refusée",
	RCInvalidRequest:   "Transaction invalide, vérifier les paramètres transférés dans la requête",
	RCCancelled:        "Annulation de l'internaute",
	RCFormatError:      "Erreur de format",
	RCFraudSuspected:   "Suspicion de fraude",
	RCTooManyAttempts:  "Nombre de tentatives de saisie du numéro de carte dépassé",
	RCUnavailable:      "Service temporairement indisponible",
	RCDuplicate:        "Transaction déjà enregistrée",
	RCTemporaryFailure: "Problème temporaire au niveau du serveur",
}

// AmexBankResponseCodes describe bank_response_code for American Express
var AmexBankResponseCodes = map[string]string{
	"00": "Transaction approuvée ou traitée avec succès",
	"02": "Dépassement de plafond",
	"04": "Conserver la carte",
	"05": "Ne pas honorer",
	"97": "Échéance de la temporisation de surveillance globale",
}

// FinarefBankResponseCodes describe bank_response_code for Finaref cards
var FinarefBankResponseCodes = map[string]string{
	"00": "Transaction approuvée",
	"03": "Commerçant inconnu - Identifiant de commerçant incorrect",
	"05": "Compte / Porteur avec statut bloqué ou invalide",
	"11": "Compte / porteur inconnu",
	"16": "Provision insuffisante",
	"20": "Commerçant invalide - Code monnaie incorrect - Opération commerciale inconnue - Opération commerciale invalide",
	"80": "Transaction approuvée avec dépassement",
	"81": "Transaction approuvée avec augmentation capital",
	"82": "Transaction approuvée NPAI",
	"83": "Compte / porteur invalide",
}

// BankResponseCodes picks the bank_response_code table for payment_means.
// Card schemes routed through the CB network use the CB table.
func BankResponseCodes(paymentMeans string) map[string]string {
	switch paymentMeans {
	case "AMEX":
		return AmexBankResponseCodes
	case "FINAREF":
		return FinarefBankResponseCodes
	default:
		return cb.ResponseCodes
	}
}

// refusalKind classifies bank_response_code when it comes from the CB table
func refusalKind(bankCode, paymentMeans string) string {
	switch paymentMeans {
	case "AMEX", "FINAREF":
		return ""
	default:
		return cb.RefusalKind(bankCode)
	}
}
