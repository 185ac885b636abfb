package identity

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/identity"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/translit"
)

const (
	tempPrefix   = "Temp"
	tempSuffix   = "!"
	tempRandom   = 4
	tempAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz23456789"

	namePad = 'X'
)

type IssuerImpl struct {
	counter identity.JoinCounter
	clock   *clock.Clock
}

func NewIssuer(counter identity.JoinCounter, clk *clock.Clock) identity.Issuer {
	return &IssuerImpl{
		counter: counter,
		clock:   clk,
	}
}

// IssueIdentifier implements identity.Issuer.
func (s *IssuerImpl) IssueIdentifier(ctx context.Context, firstName, lastName string, joiningYear int) (string, error) {
	first, err := namePart(firstName)
	if err != nil {
		return "", fmt.Errorf("first name: %w", err)
	}
	last, err := namePart(lastName)
	if err != nil {
		return "", fmt.Errorf("last name: %w", err)
	}

	year := joiningYear
	if year == 0 {
		year = s.clock.Now().Year()
	}
	if year < 1000 || year > 9999 {
		return "", identity.ErrInvalidYear
	}

	count, err := s.counter.CountJoinedInYear(ctx, year)
	if err != nil {
		return "", fmt.Errorf("count accounts joined in %d: %w", year, err)
	}
	// moved joining dates can leave the count below serials already in use
	maxSerial, err := s.counter.MaxSerialInYear(ctx, year)
	if err != nil {
		return "", fmt.Errorf("max serial for %d: %w", year, err)
	}
	serial := max(count, maxSerial) + 1
	if serial > identity.MaxSerial {
		return "", identity.ErrSerialExhausted
	}

	return fmt.Sprintf("%s%s%s%04d%04d", identity.Prefix, first, last, year, serial), nil
}

// IssueTemporaryPassword implements identity.Issuer.
func (s *IssuerImpl) IssueTemporaryPassword() (string, error) {
	var b strings.Builder
	b.Grow(len(tempPrefix) + tempRandom + len(tempSuffix))
	b.WriteString(tempPrefix)

	size := big.NewInt(int64(len(tempAlphabet)))
	for i := 0; i < tempRandom; i++ {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", fmt.Errorf("generate temporary password: %w", err)
		}
		b.WriteByte(tempAlphabet[n.Int64()])
	}

	b.WriteString(tempSuffix)
	return b.String(), nil
}

// namePart returns the first two transliterated letters of name, padded with
// X when the name has only one.
func namePart(name string) (string, error) {
	letters := translit.Letters(name)
	switch len(letters) {
	case 0:
		return "", identity.ErrUnusableName
	case 1:
		return letters + string(namePad), nil
	default:
		return letters[:2], nil
	}
}
