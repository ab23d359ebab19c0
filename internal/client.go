package internal

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"vinti4/entity"
)

// ClientConfig holds the merchant credentials and request defaults.
type ClientConfig struct {
	PosID    string
	AuthCode string
	Endpoint string
	Currency string
	Language string
	// Now is the clock used for timestamps and default references; time.Now when nil.
	Now func() time.Time
}

// Client signs outbound forms and verifies gateway callbacks for one point of sale.
// It keeps no state between calls and is safe for concurrent use.
type Client struct {
	posID    string
	authCode string
	endpoint string
	currency string
	language string
	now      func() time.Time
}

func NewClient(conf ClientConfig) (*Client, error) {
	if conf.PosID == "" || conf.AuthCode == "" {
		return nil, fmt.Errorf("merchant not configured")
	}
	c := &Client{
		posID:    conf.PosID,
		authCode: conf.AuthCode,
		endpoint: conf.Endpoint,
		currency: conf.Currency,
		language: conf.Language,
		now:      conf.Now,
	}
	if c.endpoint == "" {
		c.endpoint = entity.DefaultEndpoint
	}
	if c.currency == "" {
		c.currency = entity.CurrencyCVE
	}
	if c.language == "" {
		c.language = entity.DefaultLanguage
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c, nil
}

// PosID returns the point of sale identifier.
func (c *Client) PosID() string {
	return c.posID
}

// submissionUrl appends the fingerprint, timestamp and fingerprint version to the endpoint.
func (c *Client) submissionUrl(fingerprint, timeStamp, version string) string {
	sep := "?"
	if strings.Contains(c.endpoint, "?") {
		sep = "&"
	}
	return c.endpoint + sep +
		entity.QueryFingerprint + "=" + url.QueryEscape(fingerprint) +
		"&" + entity.QueryTimeStamp + "=" + url.QueryEscape(timeStamp) +
		"&" + entity.QueryFingerprintVersion + "=" + url.QueryEscape(version)
}

// formBuilder records fields in the order they are set.
type formBuilder struct {
	form *entity.PaymentForm
}

func newFormBuilder() *formBuilder {
	return &formBuilder{form: &entity.PaymentForm{Fields: make(map[string]string)}}
}

func (b *formBuilder) set(name, value string) {
	if _, ok := b.form.Fields[name]; !ok {
		b.form.Order = append(b.form.Order, name)
	}
	b.form.Fields[name] = value
}
