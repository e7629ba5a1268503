package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"convenience-store/internal/models"
)

func TestDemoAccountsVerifyWithLoginHashing(t *testing.T) {
	now := time.Now()
	customer, admin, err := demoAccounts(now)
	require.NoError(t, err)

	assert.True(t, models.PasswordMatches(customer.PasswordHash, "password123"))
	assert.True(t, models.PasswordMatches(admin.PasswordHash, "admin123"))
	assert.False(t, models.PasswordMatches(admin.PasswordHash, "password123"))
	assert.Equal(t, "123 Main St", customer.Account.ShippingAddress)
}
