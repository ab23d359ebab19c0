package internal

import (
	"strings"
	"time"
	"vinti4/entity"
)

const referenceLayout = "20060102150405"

// Build assembles the signed form for a transaction request. The fingerprint is
// computed over the finished field set and is the last field written; nothing
// is signed when validation or encoding fails.
func (c *Client) Build(req *entity.TransactionRequest) (*entity.PaymentForm, error) {
	if err := c.validate(req); err != nil {
		return nil, err
	}
	if reversal, ok := req.Kind.(entity.Reversal); ok {
		return c.buildReversal(req, reversal)
	}
	return c.buildPayment(req)
}

func (c *Client) validate(req *entity.TransactionRequest) error {
	if req == nil {
		return &ValidationError{Reason: "empty request"}
	}
	var missing []string
	if req.Kind == nil {
		missing = append(missing, entity.FieldTransactionCode)
	}
	if !req.Amount.IsPositive() {
		missing = append(missing, entity.FieldAmount)
	}
	if strings.TrimSpace(req.ResponseUrl) == "" {
		missing = append(missing, entity.FieldResponseUrl)
	}
	switch kind := req.Kind.(type) {
	case entity.Reversal:
		if !req.Amount.Equal(req.Amount.Truncate(0)) {
			missing = append(missing, entity.FieldAmount)
		}
	case entity.ServicePayment:
		missing = append(missing, invalidReference(kind.EntityCode, kind.ReferenceNumber)...)
	case entity.Recharge:
		missing = append(missing, invalidReference(kind.EntityCode, kind.ReferenceNumber)...)
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing, Reason: "request fields missing or invalid"}
	}
	return nil
}

// invalidReference requires numeric entity code and reference number.
func invalidReference(entityCode, referenceNumber string) []string {
	var invalid []string
	if !isDigits(entityCode) {
		invalid = append(invalid, entity.FieldEntityCode)
	}
	if !isDigits(referenceNumber) {
		invalid = append(invalid, entity.FieldReferenceNumber)
	}
	return invalid
}

func (c *Client) timestamp(req *entity.TransactionRequest) time.Time {
	if req.Timestamp.IsZero() {
		return c.now()
	}
	return req.Timestamp
}

func (c *Client) currencyOf(req *entity.TransactionRequest) string {
	if req.Currency != "" {
		return req.Currency
	}
	return c.currency
}

func (c *Client) languageOf(req *entity.TransactionRequest) string {
	if req.Language != "" {
		return req.Language
	}
	return c.language
}

func defaultString(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func (c *Client) buildPayment(req *entity.TransactionRequest) (*entity.PaymentForm, error) {
	ts := c.timestamp(req)
	timeStamp := ts.Format(entity.TimeStampLayout)

	var entityCode, referenceNumber string
	var billing *entity.Billing
	switch kind := req.Kind.(type) {
	case entity.Purchase:
		billing = kind.Billing
	case entity.ServicePayment:
		entityCode, referenceNumber = kind.EntityCode, kind.ReferenceNumber
	case entity.Recharge:
		entityCode, referenceNumber = kind.EntityCode, kind.ReferenceNumber
	}

	b := newFormBuilder()
	b.set(entity.FieldTransactionCode, req.Kind.Code())
	b.set(entity.FieldPosID, c.posID)
	b.set(entity.FieldMerchantRef, defaultString(req.MerchantRef, "R"+ts.Format(referenceLayout)))
	b.set(entity.FieldMerchantSession, defaultString(req.MerchantSession, "S"+ts.Format(referenceLayout)))
	b.set(entity.FieldAmount, req.Amount.String())
	b.set(entity.FieldCurrency, c.currencyOf(req))
	b.set(entity.FieldIs3DSec, "1")
	b.set(entity.FieldResponseUrl, req.ResponseUrl)
	b.set(entity.FieldLanguage, c.languageOf(req))
	b.set(entity.FieldTimeStamp, timeStamp)
	b.set(entity.FieldFingerprintVersion, entity.FingerprintVersion)
	b.set(entity.FieldEntityCode, entityCode)
	b.set(entity.FieldReferenceNumber, referenceNumber)

	if billing != nil {
		purchaseRequest, err := BuildPurchaseRequest(billing)
		if err != nil {
			return nil, err
		}
		b.set(entity.FieldPurchaseRequest, purchaseRequest)
	}

	fingerprint, err := Fingerprint(c.authCode, requestFields(b.form.Fields, MinorUnits(req.Amount)))
	if err != nil {
		return nil, err
	}
	b.set(entity.FieldFingerprint, fingerprint)
	b.form.PostUrl = c.submissionUrl(fingerprint, timeStamp, entity.FingerprintVersion)
	return b.form, nil
}

// buildReversal signs a refund of an earlier transaction. The merchant reference
// and session identify the original payment and are never defaulted.
// The gateway takes reversal amounts in whole units.
func (c *Client) buildReversal(req *entity.TransactionRequest, kind entity.Reversal) (*entity.PaymentForm, error) {
	timeStamp := c.timestamp(req).Format(entity.TimeStampLayout)

	b := newFormBuilder()
	b.set(entity.FieldTransactionCode, entity.CodeReversal)
	b.set(entity.FieldPosID, c.posID)
	b.set(entity.FieldMerchantRef, req.MerchantRef)
	b.set(entity.FieldMerchantSession, req.MerchantSession)
	b.set(entity.FieldAmount, req.Amount.String())
	b.set(entity.FieldCurrency, c.currencyOf(req))
	b.set(entity.FieldClearingPeriod, kind.ClearingPeriod)
	b.set(entity.FieldTransactionID, kind.TransactionID)
	b.set(entity.FieldReversal, "R")
	b.set(entity.FieldResponseUrl, req.ResponseUrl)
	b.set(entity.FieldLanguage, c.languageOf(req))
	b.set(entity.FieldReversalFpVersion, entity.FingerprintVersion)
	b.set(entity.FieldTimeStamp, timeStamp)

	fingerprint, err := Fingerprint(c.authCode, reversalRequestFields(b.form.Fields))
	if err != nil {
		return nil, err
	}
	b.set(entity.FieldReversalFingerprint, fingerprint)
	b.form.PostUrl = c.submissionUrl(fingerprint, timeStamp, entity.FingerprintVersion)
	return b.form, nil
}
