package order

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"meatdelivery/internal/pkg/errs"
)

const numberPrefix = "ORD"

// NewNumber builds a human-readable order number: "ORD" + unix millis + a random
// suffix in [0, 1000). Numbers are not collision-free; storage enforces uniqueness.
func NewNumber(at time.Time) string {
	return numberPrefix + strconv.FormatInt(at.UnixMilli(), 10) + strconv.Itoa(rand.IntN(1000)) //nolint:gosec // not a secret
}

func validateNumber(number string) error {
	if !strings.HasPrefix(number, numberPrefix) || len(number) == len(numberPrefix) {
		return errs.NewValueIsInvalidError("number")
	}
	return nil
}
