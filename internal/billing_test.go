package internal

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"vinti4/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeBilling() *entity.Billing {
	return &entity.Billing{
		Country:    "132",
		City:       "Praia",
		Line1:      "Av. Cidade de Lisboa",
		PostalCode: "7600",
		Email:      "cliente@exemplo.cv",
	}
}

func decodeBilling(t *testing.T, encoded string) map[string]interface{} {
	t.Helper()
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(decodeDocument(t, encoded)), &doc))
	return doc
}

func TestBuildPurchaseRequest_ListsMissingFieldsInOrder(t *testing.T) {
	_, err := BuildPurchaseRequest(&entity.Billing{Email: "a@b.cv", City: "  "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var validation *ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, []string{
		entity.BillAddrCountry,
		entity.BillAddrCity,
		entity.BillAddrLine1,
		entity.BillAddrPostCode,
	}, validation.Fields)
}

func TestBuildPurchaseRequest_Nil(t *testing.T) {
	_, err := BuildPurchaseRequest(nil)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestBuildPurchaseRequest_Document(t *testing.T) {
	b := completeBilling()
	b.Set(entity.BillAddrLine2, "2º andar").
		Set("mobilePhone", map[string]interface{}{"cc": "238", "subscriber": "9911111"}).
		Set(entity.AcctInfo, map[string]interface{}{}).
		Set("workPhone", "")

	encoded, err := BuildPurchaseRequest(b)
	require.NoError(t, err)

	raw := decodeDocument(t, encoded)
	assert.Contains(t, raw, `"billAddrCountry":"132","billAddrCity":"Praia"`)
	assert.Contains(t, raw, "2º andar")
	assert.NotContains(t, raw, `\u`)
	assert.NotContains(t, raw, "acctInfo")
	assert.NotContains(t, raw, "workPhone")

	doc := decodeBilling(t, encoded)
	assert.Equal(t, "cliente@exemplo.cv", doc[entity.BillEmail])
	assert.Equal(t, map[string]interface{}{"cc": "238", "subscriber": "9911111"}, doc["mobilePhone"])
	assert.NotContains(t, doc, "shipAddrCity")
}

func TestBuildPurchaseRequest_AddrMatchDerivesShipping(t *testing.T) {
	b := completeBilling()
	b.Set(entity.AddrMatch, "Y").
		Set(entity.BillAddrLine2, "Bloco B").
		Set("shipAddrCity", "Mindelo")

	encoded, err := BuildPurchaseRequest(b)
	require.NoError(t, err)

	doc := decodeBilling(t, encoded)
	assert.Equal(t, "132", doc["shipAddrCountry"])
	assert.Equal(t, "Praia", doc["shipAddrCity"])
	assert.Equal(t, "Av. Cidade de Lisboa", doc["shipAddrLine1"])
	assert.Equal(t, "Bloco B", doc["shipAddrLine2"])
	assert.NotContains(t, doc, "shipAddrState")
	assert.Equal(t, "7600", doc["shipAddrPostCode"])
}

func TestBuildPurchaseRequest_ExtrasDoNotOverrideRequired(t *testing.T) {
	b := completeBilling()
	b.Set(entity.BillAddrCity, "Mindelo")

	encoded, err := BuildPurchaseRequest(b)
	require.NoError(t, err)
	assert.Equal(t, "Praia", decodeBilling(t, encoded)[entity.BillAddrCity])
}

func TestBuildPurchaseRequest_EncodingError(t *testing.T) {
	b := completeBilling()
	b.Set("score", math.NaN())

	_, err := BuildPurchaseRequest(b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEncoding))

	var encoding *EncodingError
	require.True(t, errors.As(err, &encoding))
	assert.Equal(t, "purchaseRequest", encoding.Document)
}
