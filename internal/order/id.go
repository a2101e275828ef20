package order

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/gofrs/uuid"
)

const idLength = 9

// NewID returns a short upper-case base36 token that customers can read
// out over the phone.
func NewID() (string, error) {
	u, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("failed to generate order id: %w", err)
	}

	s := strings.ToUpper(new(big.Int).SetBytes(u.Bytes()).Text(36))
	if len(s) < idLength {
		s = strings.Repeat("0", idLength-len(s)) + s
	}

	// low digits come from the random tail of the uuid
	return s[len(s)-idLength:], nil
}
