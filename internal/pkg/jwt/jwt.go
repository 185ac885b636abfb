package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var (
	ErrTokenInvalid = errors.New("session token is invalid")
	ErrTokenExpired = errors.New("session token has expired")
)

const (
	claimAccountID          = "accountId"
	claimEmployeeIdentifier = "employeeIdentifier"
	claimRole               = "role"
)

// Claims is the signed content of a session token.
type Claims struct {
	AccountID          string
	EmployeeIdentifier string
	Role               string
	IssuedAt           time.Time
	ExpiresAt          time.Time
}

type Service interface {
	GenerateSessionToken(accountID, employeeIdentifier, role string) (token string, claims Claims, err error)
	ParseSessionToken(token string) (Claims, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	ttl       time.Duration
	now       func() time.Time
	tokenAuth *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// NewJWTService signs HS256 tokens valid for ttl. now may be nil.
func NewJWTService(secretKey string, ttl, skew time.Duration, now func() time.Time) *JWTService {
	if now == nil {
		now = time.Now
	}
	j := &JWTService{ttl: ttl, now: now}
	j.tokenAuth = jwtauth.New("HS256", []byte(secretKey), nil,
		jwt.WithAcceptableSkew(skew),
		jwt.WithClock(jwt.ClockFunc(func() time.Time { return j.now() })),
	)
	return j
}

func (j *JWTService) GenerateSessionToken(accountID, employeeIdentifier, role string) (string, Claims, error) {
	issuedAt := j.now().Truncate(time.Second)
	claims := Claims{
		AccountID:          accountID,
		EmployeeIdentifier: employeeIdentifier,
		Role:               role,
		IssuedAt:           issuedAt,
		ExpiresAt:          issuedAt.Add(j.ttl),
	}

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		claimAccountID:          claims.AccountID,
		claimEmployeeIdentifier: claims.EmployeeIdentifier,
		claimRole:               claims.Role,
		"iat":                   claims.IssuedAt.Unix(),
		"exp":                   claims.ExpiresAt.Unix(),
	})
	if err != nil {
		return "", Claims{}, fmt.Errorf("sign session token: %w", err)
	}
	return tokenString, claims, nil
}

func (j *JWTService) ParseSessionToken(tokenString string) (Claims, error) {
	if tokenString == "" {
		return Claims{}, ErrTokenInvalid
	}

	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		if errors.Is(err, jwtauth.ErrExpired) || errors.Is(err, jwt.ErrTokenExpired()) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}

	claims := Claims{
		IssuedAt:  token.IssuedAt(),
		ExpiresAt: token.Expiration(),
	}
	var ok bool
	if claims.AccountID, ok = stringClaim(token, claimAccountID); !ok {
		return Claims{}, ErrTokenInvalid
	}
	if claims.EmployeeIdentifier, ok = stringClaim(token, claimEmployeeIdentifier); !ok {
		return Claims{}, ErrTokenInvalid
	}
	if claims.Role, ok = stringClaim(token, claimRole); !ok {
		return Claims{}, ErrTokenInvalid
	}
	return claims, nil
}

func stringClaim(token jwt.Token, name string) (string, bool) {
	v, ok := token.Get(name)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}
