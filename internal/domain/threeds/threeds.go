// Package threeds carries the outcome of a 3-D Secure authentication flow.
package threeds

type Status string

const (
	StatusSuccessful       Status = "Y"
	StatusNotAvailable     Status = "A"
	StatusNotAuthenticated Status = "N"
	StatusNotPerformed     Status = "U"
	StatusChallengeRequired Status = "C"
	StatusRejected          Status = "R"
)

// ECI is the electronic commerce indicator returned by the card network.
type ECI int

const (
	ECIMastercardFailed     ECI = 0
	ECIMastercardAttempted  ECI = 1
	ECIMastercardSuccessful ECI = 2
	ECIVisaSuccessful       ECI = 5
	ECIVisaAttempted        ECI = 6
	ECIVisaFailed           ECI = 7
)

type Version string

const VersionV220 Version = "2.2.0"

// Result is the authentication evidence attached to an authorization.
type Result struct {
	Status              Status  `json:"status"`
	AuthenticationValue string  `json:"authentication_value"`
	ECI                 ECI     `json:"eci"`
	DSTransactionID     string  `json:"ds_transaction_id"`
	ACSTransactionID    string  `json:"acs_transaction_id"`
	CardToken           *string `json:"card_token,omitempty"`
	Version             Version `json:"version"`
}
