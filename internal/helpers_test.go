package internal

import (
	"context"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
	"vinti4/entity"
	"vinti4/services"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testPosID    = "90000443"
	testAuthCode = "SECRET123"
)

var testTime = time.Date(2025, time.October, 28, 12, 0, 0, 0, time.UTC)

// manualFingerprint is an independent rendition of the two-stage hash.
func manualFingerprint(secret string, values ...string) string {
	inner := sha512.Sum512([]byte(secret))
	payload := base64.StdEncoding.EncodeToString(inner[:]) + strings.Join(values, "")
	outer := sha512.Sum512([]byte(payload))
	return base64.StdEncoding.EncodeToString(outer[:])
}

func newTestClient(t *testing.T, authCode string) *Client {
	t.Helper()
	client, err := NewClient(ClientConfig{
		PosID:    testPosID,
		AuthCode: authCode,
		Now:      func() time.Time { return testTime },
	})
	require.NoError(t, err)
	return client
}

func testLogger() *Logger {
	return &Logger{category: "test", log: zap.NewNop()}
}

// signedPaymentCallback returns an approved callback signed with secret.
func signedPaymentCallback(secret, messageType string) map[string]string {
	fields := map[string]string{
		"messageType":                        messageType,
		"merchantRespCP":                     "20251028",
		"merchantRespTid":                    "TST123",
		"merchantRespMerchantRef":            "R12345",
		"merchantRespMerchantSession":        "S67890",
		"merchantRespPurchaseAmount":         "100.00",
		"merchantRespMessageID":              "MSG01",
		"merchantRespPan":                    "411111******1111",
		"merchantResp":                       "C",
		"merchantRespTimeStamp":              "2025-10-28 12:05:00",
		"merchantRespReferenceNumber":        "0456",
		"merchantRespEntityCode":             "123",
		"merchantRespClientReceipt":          "OK",
		"merchantRespAdditionalErrorMessage": " ",
		"merchantRespReloadCode":             "",
	}
	fields["resultFingerPrint"] = manualFingerprint(secret,
		messageType, "20251028", "TST123", "R12345", "S67890", "100000",
		"MSG01", "411111******1111", "C", "2025-10-28 12:05:00",
		"456", "123", "OK", "", "")
	return fields
}

// signedReversalCallback returns an approved reversal callback signed with secret.
func signedReversalCallback(secret string) map[string]string {
	fields := map[string]string{
		"merchantRespMerchantRef":     "R12345",
		"merchantRespMerchantSession": "S67890",
		"merchantRespCP":              "20251028",
		"merchantRespTid":             "TST123",
		"merchantRespMessageID":       "MSG02",
		"languageMessages":            "en",
		"messageType":                 "10",
		"merchantRespTimeStamp":       "2025-10-29 09:00:00",
		"resultFingerPrintVersion":    "1",
	}
	fields["resultFingerPrint7"] = manualFingerprint(secret,
		"R12345", "S67890", "", "", "", "", "20251028", "TST123", "MSG02",
		"en", "10", "2025-10-29 09:00:00", "1")
	return fields
}

type stubDatabase struct {
	mutex   sync.Mutex
	logs    []services.Data
	forms   map[string]*entity.PaymentForm
	results []*entity.PaymentResult
}

func newStubDatabase() *stubDatabase {
	return &stubDatabase{forms: make(map[string]*entity.PaymentForm)}
}

func (s *stubDatabase) WriteLogMessage(data services.Data) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.logs = append(s.logs, data)
	return nil
}

func (s *stubDatabase) SavePaymentForm(_ context.Context, merchantRef string, form *entity.PaymentForm) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.forms[merchantRef] = form
	return nil
}

func (s *stubDatabase) SavePaymentResult(_ context.Context, result *entity.PaymentResult) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.results = append(s.results, result)
	return nil
}

func (s *stubDatabase) GetPaymentResult(_ context.Context, merchantRef string) (*entity.PaymentResult, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for i := len(s.results) - 1; i >= 0; i-- {
		if s.results[i].MerchantRef == merchantRef {
			return s.results[i], nil
		}
	}
	return nil, fmt.Errorf("no result for %s", merchantRef)
}
