package internal

import (
	"encoding/json"
	"fmt"
	"vinti4/entity"
)

const (
	FlowPayment  = "payment"
	FlowReversal = "reversal"
)

// ClassifyPayment interprets the callback of a purchase, service payment or recharge.
func (c *Client) ClassifyPayment(fields map[string]string) *entity.PaymentResult {
	return c.classify(FlowPayment, fields)
}

// ClassifyReversal interprets the callback of a reversal request.
func (c *Client) ClassifyReversal(fields map[string]string) *entity.PaymentResult {
	return c.classify(FlowReversal, fields)
}

// classify evaluates the rules in order and stops at the first match:
// cancellation, missing message type, approval (fingerprint verified), failure.
// A message type alone never yields success.
func (c *Client) classify(flow string, fields map[string]string) *entity.PaymentResult {
	if fields == nil {
		fields = map[string]string{}
	}
	result := &entity.PaymentResult{
		Flow:        flow,
		Data:        fields,
		MerchantRef: fields[entity.RespMerchantRef],
		MessageType: fields[entity.RespMessageType],
		Time:        c.now(),
	}

	if fields[entity.RespUserCancelled] == "true" {
		result.Status = entity.StatusCancelled
		result.Message = "user cancelled the operation at the gateway"
		return result
	}

	result.DCC = decodeDCC(fields[entity.RespDCCData])

	messageType := fields[entity.RespMessageType]
	if messageType == "" {
		result.Status = entity.StatusUnrecognized
		result.Message = "no response from gateway"
		return result
	}

	if entity.IsSuccessMessageType(messageType) {
		received := receivedFingerprint(flow, fields)
		calculated, err := c.responseFingerprint(flow, fields)
		if err != nil {
			result.Status = entity.StatusFailure
			result.Message = fmt.Sprintf("approval could not be verified: %v", err)
			result.Err = err
			return result
		}
		if VerifyFingerprint(received, calculated) {
			result.Status = entity.StatusSuccess
			result.Message = "operation approved, fingerprint verified"
			return result
		}
		result.Status = entity.StatusInvalidFingerprint
		result.Message = "operation approved but fingerprint is invalid"
		result.Debug = &entity.FingerprintDebug{Received: received, Calculated: calculated}
		return result
	}

	result.Status = entity.StatusFailure
	result.ErrorDescription = fields[entity.RespErrorDescription]
	result.ErrorDetail = fields[entity.RespErrorDetail]
	result.Message = result.ErrorDescription
	if result.Message == "" {
		result.Message = "operation declined"
	}
	return result
}

func (c *Client) responseFingerprint(flow string, fields map[string]string) (string, error) {
	if flow == FlowReversal {
		return Fingerprint(c.authCode, reversalResponseFields(fields))
	}
	amount, err := canonicalAmount(fields[entity.RespPurchaseAmount])
	if err != nil {
		return "", &MissingFieldError{Field: entity.RespPurchaseAmount}
	}
	return Fingerprint(c.authCode, successResponseFields(fields, amount))
}

// receivedFingerprint reads resultFingerPrint7 for reversals, falling back to resultFingerPrint.
func receivedFingerprint(flow string, fields map[string]string) string {
	if flow == FlowReversal {
		if fp := fields[entity.RespReversalFingerprint]; fp != "" {
			return fp
		}
	}
	return fields[entity.RespFingerprint]
}

// decodeDCC parses the dynamic currency conversion document; malformed data is dropped.
func decodeDCC(raw string) map[string]interface{} {
	if raw == "" {
		return nil
	}
	var dcc map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &dcc); err != nil {
		return nil
	}
	return dcc
}
