package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnvOverride(t *testing.T) {
	t.Setenv("PACK_PRICE", "250")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, 25, cfg.BulkInitialQty)
	assert.Equal(t, "250", cfg.PackPriceDecimal().String())
	assert.Equal(t, "0.02", cfg.TaxRateDecimal().String())
	assert.Equal(t, 10*time.Second, cfg.OrdersAPITimeout())
	assert.Equal(t, 24*time.Hour, cfg.LedgerTTL())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLocation_Unknown(t *testing.T) {
	cfg := &Config{Timezone: "Mars/Olympus"}
	_, err := cfg.Location()
	assert.Error(t, err)
}
