package entity

// Billing is the cardholder document sent as purchaseRequest for 3-D Secure purchases.
// Extra holds the optional authentication context (acctInfo, mobilePhone, shipAddr*,
// billAddrLine2, addrMatch, ...) keyed by gateway name; keys keep their insertion order.
type Billing struct {
	Country    string `json:"billAddrCountry"`
	City       string `json:"billAddrCity"`
	Line1      string `json:"billAddrLine1"`
	PostalCode string `json:"billAddrPostCode"`
	Email      string `json:"email"`

	extraKeys []string
	extra     map[string]interface{}
}

// Set adds or replaces an optional field.
func (b *Billing) Set(key string, value interface{}) *Billing {
	if b.extra == nil {
		b.extra = make(map[string]interface{})
	}
	if _, ok := b.extra[key]; !ok {
		b.extraKeys = append(b.extraKeys, key)
	}
	b.extra[key] = value
	return b
}

// Get returns an optional field.
func (b *Billing) Get(key string) (interface{}, bool) {
	v, ok := b.extra[key]
	return v, ok
}

// ExtraKeys lists optional field names in insertion order.
func (b *Billing) ExtraKeys() []string {
	keys := make([]string, len(b.extraKeys))
	copy(keys, b.extraKeys)
	return keys
}
