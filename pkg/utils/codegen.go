package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
)

const subscriptionCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewSubscriptionCode builds the stable identifier for a subscription
// period: SUB-<yyyymmdd>-<store prefix>-<random>. The code is the join key
// for promotion slot accounting, so it must be unique per period.
func NewSubscriptionCode(storeID uuid.UUID, now time.Time) (string, error) {
	gen, err := nanoid.CustomASCII(subscriptionCodeAlphabet, 6)
	if err != nil {
		return "", err
	}
	storePrefix := strings.ReplaceAll(storeID.String(), "-", "")[:8]
	return fmt.Sprintf("SUB-%s-%s-%s", now.UTC().Format("20060102"), storePrefix, gen()), nil
}
