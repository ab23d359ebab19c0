package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction codes of the gateway.
const (
	CodePurchase       = "1"
	CodeServicePayment = "2"
	CodeRecharge       = "3"
	CodeReversal       = "4"
)

// TransactionKind is the closed set of operations the gateway accepts.
// Implementations: Purchase, ServicePayment, Recharge, Reversal.
type TransactionKind interface {
	Code() string
	kind()
}

// Purchase is a card purchase. Billing is optional; without it the request goes
// out with no 3-D Secure purchase sub-document.
type Purchase struct {
	Billing *Billing
}

// ServicePayment pays a utility or service bill identified by entity and reference.
type ServicePayment struct {
	EntityCode      string
	ReferenceNumber string
}

// Recharge tops up a prepaid account, usually a phone number at an operator entity.
type Recharge struct {
	EntityCode      string
	ReferenceNumber string
}

// Reversal refunds a previously completed transaction. ClearingPeriod and TransactionID
// come from the original callback (merchantRespCP, merchantRespTid).
type Reversal struct {
	ClearingPeriod string
	TransactionID  string
}

func (Purchase) Code() string       { return CodePurchase }
func (ServicePayment) Code() string { return CodeServicePayment }
func (Recharge) Code() string       { return CodeRecharge }
func (Reversal) Code() string       { return CodeReversal }

func (Purchase) kind()       {}
func (ServicePayment) kind() {}
func (Recharge) kind()       {}
func (Reversal) kind()       {}

// TransactionRequest carries everything needed to build one outbound form.
// Empty MerchantRef, MerchantSession, Language, Currency and a zero Timestamp are
// filled with defaults when the form is built.
type TransactionRequest struct {
	Amount          decimal.Decimal
	ResponseUrl     string
	Kind            TransactionKind
	MerchantRef     string
	MerchantSession string
	Language        string
	Currency        string
	Timestamp       time.Time
}

// KindByName maps the names used by the HTTP API to a zero kind value.
func KindByName(name string) (TransactionKind, bool) {
	switch name {
	case "purchase":
		return Purchase{}, true
	case "service":
		return ServicePayment{}, true
	case "recharge":
		return Recharge{}, true
	case "reversal":
		return Reversal{}, true
	}
	return nil, false
}
