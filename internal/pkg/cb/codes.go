// Package cb holds the authorization response codes of the French
// interbank card network (Carte Bancaire), reported by every bank backend.
package cb

// Response code constants
const (
	RCApproved           = "00"
	RCContactIssuer      = "02"
	RCInvalidMerchant    = "03"
	RCPickUpCard         = "04"
	RCDoNotHonor         = "05"
	RCPickUpSpecial      = "07"
	RCApproveAfterID     = "08"
	RCInvalidTransaction = "12"
	RCInvalidAmount      = "13"
	RCInvalidCardNumber  = "14"
	RCFormatError        = "30"
	RCUnknownAcquirer    = "31"
	RCExpiredCard        = "33"
	RCSuspectedFraud     = "34"
	RCLostCard           = "41"
	RCStolenCard         = "43"
	RCInsufficientFunds  = "51"
	RCCardExpired        = "54"
	RCCardNotOnFile      = "56"
	RCNotPermittedHolder = "57"
	RCNotPermittedTerm   = "58"
	RCSuspectedFraud2    = "59"
	RCContactAcquirer    = "60"
	RCWithdrawalLimit    = "61"
	RCSecurityViolation  = "63"
	RCLateResponse       = "68"
	RCSystemHalt         = "90"
	RCIssuerUnavailable  = "91"
	RCDuplicate          = "94"
	RCSystemMalfunction  = "96"
	RCGlobalTimeout      = "97"
	RCServerUnavailable  = "98"
	RCInitiatorIncident  = "99"
)

// ResponseCodes maps each code to its French label
var ResponseCodes = map[string]string{
	RCApproved:           "transaction approuvée ou traitée avec succès",
	RCContactIssuer:      "contacter l'émetteur de la carte",
	RCInvalidMerchant:    "accepteur invalide",
	RCPickUpCard:         "conserver la carte",
	RCDoNotHonor:         "ne pas honorer",
	RCPickUpSpecial:      "conserver la carte, conditions spéciales",
	RCApproveAfterID:     "approuver après identification",
	RCInvalidTransaction: "transaction invalide",
	RCInvalidAmount:      "montant invalide",
	RCInvalidCardNumber:  "numéro de porteur invalide",
	RCFormatError:        "erreur de format",
	RCUnknownAcquirer:    "identifiant de l'organisme acquéreur inconnu",
	RCExpiredCard:        "date de validité de la carte dépassée",
	RCSuspectedFraud:     "suspicion de fraude",
	RCLostCard:           "carte perdue",
	RCStolenCard:         "carte volée",
	RCInsufficientFunds:  "provision insuffisante",
	RCCardExpired:        "date de validité de la carte dépassée",
	RCCardNotOnFile:      "carte absente du fichier",
	RCNotPermittedHolder: "transaction non permise à ce porteur",
	RCNotPermittedTerm:   "transaction interdite au terminal",
	RCSuspectedFraud2:    "suspicion de fraude",
	RCContactAcquirer:    "l'accepteur de carte doit contacter l'acquéreur",
	RCWithdrawalLimit:    "montant de retrait hors limite",
	RCSecurityViolation:  "règles de sécurité non respectées",
	RCLateResponse:       "réponse non parvenue ou reçue trop tard",
	RCSystemHalt:         "arrêt momentané du système",
	RCIssuerUnavailable:  "émetteur de carte inaccessible",
	RCDuplicate:          "transaction dupliquée",
	RCSystemMalfunction:  "mauvais fonctionnement du système",
	RCGlobalTimeout:      "échéance de la temporisation de surveillance globale",
	RCServerUnavailable:  "serveur indisponible routage réseau demandé à nouveau",
	RCInitiatorIncident:  "incident domaine initiateur",
}

// fraudCodes are codes after which the card must not be presented again
var fraudCodes = map[string]bool{
	RCPickUpCard:      true,
	RCPickUpSpecial:   true,
	RCSuspectedFraud:  true,
	RCLostCard:        true,
	RCStolenCard:      true,
	RCSuspectedFraud2: true,
}

// technicalCodes indicate a network side failure rather than a refusal
var technicalCodes = map[string]bool{
	RCLateResponse:      true,
	RCSystemHalt:        true,
	RCIssuerUnavailable: true,
	RCSystemMalfunction: true,
	RCGlobalTimeout:     true,
	RCServerUnavailable: true,
	RCInitiatorIncident: true,
}

// IsApproved returns true if the authorization was granted
func IsApproved(rc string) bool {
	return rc == RCApproved
}

// IsFraud returns true if the refusal flags a compromised card
func IsFraud(rc string) bool {
	return fraudCodes[rc]
}

// IsTechnical returns true if the refusal comes from the network, not the issuer
func IsTechnical(rc string) bool {
	return technicalCodes[rc]
}

// Refusal kinds reported to operators
const (
	RefusalFraud     = "fraud"
	RefusalTechnical = "technical"
)

// RefusalKind classifies a refusal: RefusalFraud, RefusalTechnical or ""
func RefusalKind(rc string) string {
	switch {
	case IsFraud(rc):
		return RefusalFraud
	case IsTechnical(rc):
		return RefusalTechnical
	default:
		return ""
	}
}
