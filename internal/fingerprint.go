package internal

import (
	"crypto/subtle"
	"strings"
	"vinti4/entity"

	"gitee.com/golang-module/dongle"
)

// HashField is one position of a fingerprint ordering. A field that is not
// Present contributes an empty string when Optional, and fails the computation otherwise.
type HashField struct {
	Name     string
	Value    string
	Present  bool
	Optional bool
}

func required(name, value string) HashField {
	return HashField{Name: name, Value: value, Present: value != ""}
}

func optional(name, value string) HashField {
	return HashField{Name: name, Value: value, Present: value != "", Optional: true}
}

// Fingerprint computes base64(sha512(base64(sha512(secret)) + fields...)).
// The same two-stage scheme serves every message family, only the ordering differs.
func Fingerprint(secret string, fields []HashField) (string, error) {
	var sb strings.Builder
	sb.WriteString(secretHash(secret))
	for _, f := range fields {
		if !f.Present && !f.Optional {
			return "", &MissingFieldError{Field: f.Name}
		}
		sb.WriteString(f.Value)
	}
	return sha512Base64(sb.String()), nil
}

// VerifyFingerprint compares two fingerprints in constant time.
func VerifyFingerprint(received, calculated string) bool {
	if received == "" || calculated == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(received), []byte(calculated)) == 1
}

func secretHash(secret string) string {
	return sha512Base64(secret)
}

func sha512Base64(s string) string {
	return dongle.Encrypt.FromString(s).BySha512().ToBase64String()
}

// requestFields is the ordering of a purchase, service payment or recharge request.
func requestFields(f map[string]string, amountMinor string) []HashField {
	return []HashField{
		required(entity.FieldTimeStamp, f[entity.FieldTimeStamp]),
		required(entity.FieldAmount, amountMinor),
		required(entity.FieldMerchantRef, f[entity.FieldMerchantRef]),
		required(entity.FieldMerchantSession, f[entity.FieldMerchantSession]),
		required(entity.FieldPosID, f[entity.FieldPosID]),
		required(entity.FieldCurrency, f[entity.FieldCurrency]),
		required(entity.FieldTransactionCode, f[entity.FieldTransactionCode]),
		optional(entity.FieldEntityCode, canonicalInteger(f[entity.FieldEntityCode])),
		optional(entity.FieldReferenceNumber, canonicalInteger(f[entity.FieldReferenceNumber])),
	}
}

// successResponseFields is the ordering of an approved payment callback.
func successResponseFields(r map[string]string, amountMinor string) []HashField {
	return []HashField{
		required(entity.RespMessageType, r[entity.RespMessageType]),
		required(entity.RespClearingPeriod, r[entity.RespClearingPeriod]),
		required(entity.RespTransactionID, r[entity.RespTransactionID]),
		required(entity.RespMerchantRef, r[entity.RespMerchantRef]),
		required(entity.RespMerchantSession, r[entity.RespMerchantSession]),
		required(entity.RespPurchaseAmount, amountMinor),
		required(entity.RespMessageID, r[entity.RespMessageID]),
		required(entity.RespPan, r[entity.RespPan]),
		required(entity.RespStatus, r[entity.RespStatus]),
		required(entity.RespTimeStamp, r[entity.RespTimeStamp]),
		optional(entity.RespReferenceNumber, canonicalInteger(r[entity.RespReferenceNumber])),
		optional(entity.RespEntityCode, canonicalInteger(r[entity.RespEntityCode])),
		optional(entity.RespClientReceipt, r[entity.RespClientReceipt]),
		optional(entity.RespAdditionalErrorMessage, strings.TrimSpace(r[entity.RespAdditionalErrorMessage])),
		optional(entity.RespReloadCode, r[entity.RespReloadCode]),
	}
}

// reversalRequestFields is the ordering of a reversal request.
func reversalRequestFields(f map[string]string) []HashField {
	return []HashField{
		required(entity.FieldTransactionCode, f[entity.FieldTransactionCode]),
		required(entity.FieldPosID, f[entity.FieldPosID]),
		required(entity.FieldMerchantRef, f[entity.FieldMerchantRef]),
		required(entity.FieldMerchantSession, f[entity.FieldMerchantSession]),
		required(entity.FieldAmount, f[entity.FieldAmount]),
		required(entity.FieldCurrency, f[entity.FieldCurrency]),
		required(entity.FieldClearingPeriod, f[entity.FieldClearingPeriod]),
		required(entity.FieldTransactionID, f[entity.FieldTransactionID]),
		required(entity.FieldReversal, f[entity.FieldReversal]),
		required(entity.FieldResponseUrl, f[entity.FieldResponseUrl]),
		required(entity.FieldLanguage, f[entity.FieldLanguage]),
		required(entity.FieldReversalFpVersion, f[entity.FieldReversalFpVersion]),
		required(entity.FieldTimeStamp, f[entity.FieldTimeStamp]),
	}
}

// reversalResponseFields is the ordering of an approved reversal callback.
func reversalResponseFields(r map[string]string) []HashField {
	return []HashField{
		required(entity.RespMerchantRef, r[entity.RespMerchantRef]),
		required(entity.RespMerchantSession, r[entity.RespMerchantSession]),
		optional(entity.RespErrorCode, r[entity.RespErrorCode]),
		optional(entity.RespErrorDescription, r[entity.RespErrorDescription]),
		optional(entity.RespErrorDetail, r[entity.RespErrorDetail]),
		optional(entity.RespAdditionalErrorMessage, r[entity.RespAdditionalErrorMessage]),
		optional(entity.RespClearingPeriod, r[entity.RespClearingPeriod]),
		optional(entity.RespTransactionID, r[entity.RespTransactionID]),
		optional(entity.RespMessageID, r[entity.RespMessageID]),
		optional(entity.RespLanguage, r[entity.RespLanguage]),
		optional(entity.RespMessageType, r[entity.RespMessageType]),
		optional(entity.RespTimeStamp, r[entity.RespTimeStamp]),
		optional(entity.RespFingerprintVersion, r[entity.RespFingerprintVersion]),
	}
}
