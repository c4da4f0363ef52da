package api

import (
	"fmt"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "nativeswap-api"

// AuthService issues and validates bearer tokens. A token binds its bearer
// to one account address; role checks happen in the engine.
type AuthService struct {
	jwtSecret []byte
	ttl       time.Duration
}

// NewAuthService creates a new authentication service
func NewAuthService(jwtSecret []byte, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{jwtSecret: jwtSecret, ttl: ttl}
}

// Claims represents JWT claims
type Claims struct {
	Address string `json:"address"`
	jwt.RegisteredClaims
}

// GenerateToken generates a JWT token for addr
func (as *AuthService) GenerateToken(addr sdk.AccAddress) (string, error) {
	now := time.Now()
	claims := &Claims{
		Address: addr.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   addr.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(as.jwtSecret)
}

// ValidateToken validates a JWT token and returns the caller address
func (as *AuthService) ValidateToken(tokenString string) (sdk.AccAddress, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return as.jwtSecret, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	addr, err := sdk.AccAddressFromBech32(claims.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid address claim: %w", err)
	}
	return addr, nil
}
