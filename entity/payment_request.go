package entity

// PaymentForm is the outbound field set: the browser POSTs Fields to PostUrl.
// Values are raw, HTML escaping belongs to whoever renders the form.
type PaymentForm struct {
	PostUrl string            `json:"postUrl" bson:"post_url"`
	Fields  map[string]string `json:"fields" bson:"fields"`
	// Order lists Fields keys in the order they were set; the fingerprint is last.
	Order []string `json:"-" bson:"-"`
}

// Get returns a field value or an empty string.
func (f *PaymentForm) Get(name string) string {
	return f.Fields[name]
}

// DataType names the collection entry when a form is persisted.
func (f *PaymentForm) DataType() string {
	return "payment_form"
}
