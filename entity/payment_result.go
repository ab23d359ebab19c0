package entity

import "time"

// Status is the verdict of a classified gateway callback.
type Status string

const (
	StatusSuccess            Status = "SUCCESS"
	StatusCancelled          Status = "CANCELLED"
	StatusFailure            Status = "FAILURE"
	StatusInvalidFingerprint Status = "INVALID_FINGERPRINT"
	StatusUnrecognized       Status = "UNRECOGNIZED"
)

// PaymentResult is the outcome of a callback classification.
// Data is the inbound field map as received.
type PaymentResult struct {
	Status           Status                 `json:"status" bson:"status"`
	Message          string                 `json:"message" bson:"message"`
	Flow             string                 `json:"flow" bson:"flow"`
	MerchantRef      string                 `json:"merchant_ref,omitempty" bson:"merchant_ref"`
	MessageType      string                 `json:"message_type,omitempty" bson:"message_type"`
	ErrorDescription string                 `json:"error_description,omitempty" bson:"error_description"`
	ErrorDetail      string                 `json:"error_detail,omitempty" bson:"error_detail"`
	Data             map[string]string      `json:"data" bson:"data"`
	DCC              map[string]interface{} `json:"dcc,omitempty" bson:"dcc"`
	Debug            *FingerprintDebug      `json:"debug,omitempty" bson:"debug"`
	Time             time.Time              `json:"time" bson:"time"`
	// Err holds the reason a success-coded callback could not be verified.
	Err error `json:"-" bson:"-"`
}

// FingerprintDebug keeps both values of a failed fingerprint comparison for audit.
type FingerprintDebug struct {
	Received   string `json:"received" bson:"received"`
	Calculated string `json:"calculated" bson:"calculated"`
}

// Succeeded is true only for an approved and authenticated callback.
func (r *PaymentResult) Succeeded() bool {
	return r.Status == StatusSuccess
}

// IsValid reports whether the gateway reached a decision the merchant must honour:
// success, user cancellation, or an approval whose fingerprint did not match.
func (r *PaymentResult) IsValid() bool {
	switch r.Status {
	case StatusSuccess, StatusCancelled, StatusInvalidFingerprint:
		return true
	}
	return false
}

// RequiresReconciliation is true when the gateway may have approved the
// transaction but the callback could not be authenticated.
func (r *PaymentResult) RequiresReconciliation() bool {
	return r.Status == StatusInvalidFingerprint
}

// DataType names the collection entry when a result is persisted.
func (r *PaymentResult) DataType() string {
	return "payment_result"
}
