package internal

import (
	"strings"
	"vinti4/entity"
)

// shipping fields copied from billing when addrMatch is "Y", besides country, city and line 1
var optionalAddressParts = []string{"Line2", "Line3", "PostCode", "State"}

// BuildPurchaseRequest validates the billing document and returns the Base64
// encoded JSON sent as purchaseRequest.
func BuildPurchaseRequest(b *entity.Billing) (string, error) {
	if b == nil {
		return "", &ValidationError{Reason: "billing document is absent"}
	}

	var missing []string
	for _, f := range []struct{ name, value string }{
		{entity.BillAddrCountry, b.Country},
		{entity.BillAddrCity, b.City},
		{entity.BillAddrLine1, b.Line1},
		{entity.BillAddrPostCode, b.PostalCode},
		{entity.BillEmail, b.Email},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return "", &ValidationError{Fields: missing, Reason: "billing fields missing or empty"}
	}

	return encodeDocument("purchaseRequest", billingEntries(b))
}

// billingEntries lays out the document: required fields, optional fields in
// insertion order, then shipping fields derived from the billing address.
func billingEntries(b *entity.Billing) []docEntry {
	entries := []docEntry{
		{entity.BillAddrCountry, b.Country},
		{entity.BillAddrCity, b.City},
		{entity.BillAddrLine1, b.Line1},
		{entity.BillAddrPostCode, b.PostalCode},
		{entity.BillEmail, b.Email},
	}
	index := make(map[string]int, len(entries))
	for i, e := range entries {
		index[e.key] = i
	}
	requiredCount := len(entries)
	put := func(key string, value interface{}) {
		if i, ok := index[key]; ok {
			entries[i].value = value
			return
		}
		index[key] = len(entries)
		entries = append(entries, docEntry{key, value})
	}

	for _, key := range b.ExtraKeys() {
		if i, ok := index[key]; ok && i < requiredCount {
			continue
		}
		value, _ := b.Get(key)
		put(key, value)
	}

	if match, _ := b.Get(entity.AddrMatch); match == "Y" {
		put("shipAddrCountry", b.Country)
		put("shipAddrCity", b.City)
		put("shipAddrLine1", b.Line1)
		for _, part := range optionalAddressParts {
			if i, ok := index["billAddr"+part]; ok {
				put("shipAddr"+part, entries[i].value)
			}
		}
	}
	return entries
}
