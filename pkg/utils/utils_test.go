package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "premium-engine-oil", Slugify("Premium Engine Oil"))
	assert.Equal(t, "95-octane", Slugify("  95% Octane!! "))
	assert.Equal(t, "diesel", Slugify("Diesel"))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestNewSubscriptionCodeFormat(t *testing.T) {
	storeID := uuid.New()
	at := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	code, err := NewSubscriptionCode(storeID, at)
	require.NoError(t, err)

	pattern := regexp.MustCompile(`^SUB-20260901-[0-9a-f]{8}-[0-9A-Z]{6}$`)
	assert.Regexp(t, pattern, code)

	// Codes are unique even for the same store and day.
	again, err := NewSubscriptionCode(storeID, at)
	require.NoError(t, err)
	assert.NotEqual(t, code, again)
}

func TestTokenMakerRoundTrip(t *testing.T) {
	maker := NewTokenMaker("test-secret", time.Hour)
	userID := uuid.New()

	token, err := maker.CreateToken(userID, "seller")
	require.NoError(t, err)

	claims, err := maker.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "seller", claims.Role)

	_, err = maker.ValidateToken(token + "tampered")
	assert.Error(t, err)
}

func TestTokenMakerExpiry(t *testing.T) {
	maker := NewTokenMaker("test-secret", -time.Minute)
	token, err := maker.CreateToken(uuid.New(), "seller")
	require.NoError(t, err)

	_, err = maker.ValidateToken(token)
	assert.Error(t, err)
}

func TestSlotLimitErrorWrapping(t *testing.T) {
	err := &SlotLimitError{PromotionType: "featured", MaxSlots: 2}
	assert.ErrorIs(t, err, ErrSlotLimitReached)
	assert.Contains(t, err.Error(), "featured")
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NoError(t, ComparePasswords(hash, "s3cret-pass"))
	assert.Error(t, ComparePasswords(hash, "wrong-pass"))
}
