package internal

import (
	"context"
	"errors"
	"testing"
	"vinti4/config"
	"vinti4/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	conf := &config.Config{}
	conf.Merchant.PosID = testPosID
	conf.Merchant.AuthCode = testAuthCode
	conf.Merchant.ResponseUrl = "https://shop.cv/callback"
	return conf
}

func newTestPayments(t *testing.T) (*Payments, *stubDatabase) {
	t.Helper()
	payments, err := NewPayments(testConfig())
	require.NoError(t, err)
	payments.client = newTestClient(t, testAuthCode)
	payments.logger = testLogger()
	database := newStubDatabase()
	payments.SetDatabase(database)
	return payments, database
}

func TestNewPayments_RequiresMerchant(t *testing.T) {
	_, err := NewPayments(&config.Config{})
	assert.Error(t, err)
}

func TestPayments_PrepareUsesConfiguredResponseUrl(t *testing.T) {
	payments, database := newTestPayments(t)

	request := &entity.TransactionRequest{
		Amount: decimal.NewFromInt(250),
		Kind:   entity.Recharge{EntityCode: "10021", ReferenceNumber: "9911111"},
	}
	form, err := payments.Prepare(WithRequestID(context.Background()), request)
	require.NoError(t, err)

	assert.Equal(t, "https://shop.cv/callback", form.Get(entity.FieldResponseUrl))
	assert.Empty(t, request.ResponseUrl)
	assert.Same(t, form, database.forms["R20251028120000"])
}

func TestPayments_PrepareRejectsInvalidRequest(t *testing.T) {
	payments, database := newTestPayments(t)

	_, err := payments.Prepare(context.Background(), &entity.TransactionRequest{Kind: entity.Purchase{}})
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Empty(t, database.forms)
}

func TestPayments_NotifyStoresResult(t *testing.T) {
	payments, database := newTestPayments(t)

	result := payments.Notify(context.Background(), signedPaymentCallback(testAuthCode, "8"))
	assert.Equal(t, entity.StatusSuccess, result.Status)
	require.Len(t, database.results, 1)

	stored, err := payments.GetResult(context.Background(), "R12345")
	require.NoError(t, err)
	assert.Same(t, result, stored)
}

func TestPayments_NotifyReversal(t *testing.T) {
	payments, database := newTestPayments(t)

	result := payments.NotifyReversal(context.Background(), signedReversalCallback(testAuthCode))
	assert.Equal(t, entity.StatusSuccess, result.Status)
	assert.Equal(t, FlowReversal, result.Flow)
	require.Len(t, database.results, 1)
}

func TestPayments_GetResultWithoutDatabase(t *testing.T) {
	payments, err := NewPayments(testConfig())
	require.NoError(t, err)
	payments.logger = testLogger()

	_, err = payments.GetResult(context.Background(), "R1")
	assert.Error(t, err)
}

func TestSecret(t *testing.T) {
	assert.Equal(t, "?", secret(""))
	assert.Equal(t, "***", secret("1234"))
	assert.Equal(t, "41111***", secret("411111******1111"))
}
