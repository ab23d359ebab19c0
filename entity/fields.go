// Package entity defines the wire models exchanged with the Vinti4Net gateway.
// Field names are fixed by the gateway and must not be renamed.
package entity

// Outbound form fields.
const (
	FieldTransactionCode     = "transactionCode"
	FieldPosID               = "posID"
	FieldMerchantRef         = "merchantRef"
	FieldMerchantSession     = "merchantSession"
	FieldAmount              = "amount"
	FieldCurrency            = "currency"
	FieldIs3DSec             = "is3DSec"
	FieldResponseUrl         = "urlMerchantResponse"
	FieldLanguage            = "languageMessages"
	FieldTimeStamp           = "timeStamp"
	FieldFingerprintVersion  = "fingerprintversion"
	FieldEntityCode          = "entityCode"
	FieldReferenceNumber     = "referenceNumber"
	FieldPurchaseRequest     = "purchaseRequest"
	FieldFingerprint         = "fingerprint"
	FieldClearingPeriod      = "clearingPeriod"
	FieldTransactionID       = "transactionID"
	FieldReversal            = "reversal"
	FieldReversalFpVersion   = "fingerPrintVersion"
	FieldReversalFingerprint = "fingerPrint6"
)

// Query parameters of the submission URL.
const (
	QueryFingerprint        = "FingerPrint"
	QueryTimeStamp          = "TimeStamp"
	QueryFingerprintVersion = "FingerPrintVersion"
)

// Callback fields posted back by the gateway.
const (
	RespUserCancelled          = "UserCancelled"
	RespMessageType            = "messageType"
	RespFingerprint            = "resultFingerPrint"
	RespReversalFingerprint    = "resultFingerPrint7"
	RespFingerprintVersion     = "resultFingerPrintVersion"
	RespClearingPeriod         = "merchantRespCP"
	RespTransactionID          = "merchantRespTid"
	RespMerchantRef            = "merchantRespMerchantRef"
	RespMerchantSession        = "merchantRespMerchantSession"
	RespPurchaseAmount         = "merchantRespPurchaseAmount"
	RespPurchaseCurrency       = "merchantRespPurchaseCurrency"
	RespMessageID              = "merchantRespMessageID"
	RespPan                    = "merchantRespPan"
	RespStatus                 = "merchantResp"
	RespTimeStamp              = "merchantRespTimeStamp"
	RespReferenceNumber        = "merchantRespReferenceNumber"
	RespEntityCode             = "merchantRespEntityCode"
	RespClientReceipt          = "merchantRespClientReceipt"
	RespAdditionalErrorMessage = "merchantRespAdditionalErrorMessage"
	RespReloadCode             = "merchantRespReloadCode"
	RespErrorCode              = "merchantRespErrorCode"
	RespErrorDescription       = "merchantRespErrorDescription"
	RespErrorDetail            = "merchantRespErrorDetail"
	RespDCCData                = "merchantRespDCCData"
	RespLanguage               = "languageMessages"
)

// Billing document keys used in the 3-D Secure purchase request.
const (
	BillAddrCountry  = "billAddrCountry"
	BillAddrCity     = "billAddrCity"
	BillAddrLine1    = "billAddrLine1"
	BillAddrLine2    = "billAddrLine2"
	BillAddrLine3    = "billAddrLine3"
	BillAddrPostCode = "billAddrPostCode"
	BillAddrState    = "billAddrState"
	BillEmail        = "email"
	AddrMatch        = "addrMatch"
	AcctInfo         = "acctInfo"
)

const (
	DefaultEndpoint    = "https://mc.vinti4net.cv/BizMPIOnUs/CardPayment"
	CurrencyCVE        = "132"
	DefaultLanguage    = "pt"
	FingerprintVersion = "1"
	TimeStampLayout    = "2006-01-02 15:04:05"
)

// SuccessMessageTypes are the message types the gateway uses for an approved operation:
// immediate approval, batch approval and two partner-specific approvals.
var SuccessMessageTypes = []string{"8", "10", "P", "M"}

// IsSuccessMessageType reports whether messageType is one of SuccessMessageTypes.
func IsSuccessMessageType(messageType string) bool {
	for _, t := range SuccessMessageTypes {
		if t == messageType {
			return true
		}
	}
	return false
}
