package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
is_debug: true
listen:
  port: "8080"
merchant:
  pos_id: "90000443"
  auth_code: "SECRET123"
  response_url: "https://shop.cv/callback"
`), 0o600))

	conf, err := GetConfig(path)
	require.NoError(t, err)
	assert.True(t, conf.IsDebug)
	assert.Equal(t, "8080", conf.Listen.Port)
	assert.Equal(t, "0.0.0.0", conf.Listen.BindIP)
	assert.Equal(t, "90000443", conf.Merchant.PosID)
	assert.Equal(t, "https://mc.vinti4net.cv/BizMPIOnUs/CardPayment", conf.Merchant.Endpoint)
	assert.Equal(t, "132", conf.Merchant.Currency)
	assert.Equal(t, "pt", conf.Merchant.Language)
	assert.False(t, conf.Mongo.Enabled)

	again, err := GetConfig("missing.yml")
	require.NoError(t, err)
	assert.Same(t, conf, again)
}

func TestValidate(t *testing.T) {
	conf := &Config{}
	assert.Error(t, conf.Validate())

	conf.Merchant.PosID = "90000443"
	assert.Error(t, conf.Validate())

	conf.Merchant.AuthCode = "SECRET123"
	assert.NoError(t, conf.Validate())
}
