package commands

import (
	"os"
	"time"

	"workforce/backend/internal/auth"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

const (
	accessTokenTTL  = 8 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

// TokenClaims is the identity signed into both tokens.
type TokenClaims struct {
	ID   int
	Role string
}

// GenToken issues an access/refresh token pair signed with the RSA private
// key stored at privateKeyPath.
func GenToken(claims TokenClaims, privateKeyPath string) (string, string, error) {
	keyData, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return "", "", errors.Wrap(err, "reading private key file")
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(keyData)
	if err != nil {
		return "", "", errors.Wrap(err, "parsing private key")
	}

	now := time.Now()

	accessClaims := auth.Claims{
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(accessTokenTTL).Unix(),
		},
		UserId: claims.ID,
		Role:   claims.Role,
		Type:   "access",
	}

	refreshClaims := auth.Claims{
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(refreshTokenTTL).Unix(),
		},
		UserId: claims.ID,
		Role:   claims.Role,
		Type:   "refresh",
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodRS256, accessClaims).SignedString(privateKey)
	if err != nil {
		return "", "", errors.Wrap(err, "signing access token")
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodRS256, refreshClaims).SignedString(privateKey)
	if err != nil {
		return "", "", errors.Wrap(err, "signing refresh token")
	}

	return accessToken, refreshToken, nil
}

// VerifyTokens checks a token pair against the service key. The access token
// may be expired, the refresh token may not.
func VerifyTokens(accessToken, refreshToken, privateKeyPath string) (*auth.Claims, *auth.Claims, error) {
	keyData, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading private key file")
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(keyData)
	if err != nil {
		return nil, nil, errors.Wrap(err, "parsing private key")
	}

	keyFunc := func(t *jwt.Token) (interface{}, error) {
		return &privateKey.PublicKey, nil
	}

	// Expired access tokens are fine here, the signature still has to match.
	var accessClaims auth.Claims
	if _, err = new(jwt.Parser).ParseWithClaims(accessToken, &accessClaims, keyFunc); err != nil {
		var validationErr *jwt.ValidationError
		if !errors.As(err, &validationErr) || validationErr.Errors != jwt.ValidationErrorExpired {
			return nil, nil, errors.Wrap(err, "parsing access token")
		}
	}
	if accessClaims.Type != "access" {
		return nil, nil, errors.New("token is not an access token")
	}

	var refreshClaims auth.Claims
	token, err := new(jwt.Parser).ParseWithClaims(refreshToken, &refreshClaims, keyFunc)
	if err != nil {
		return nil, nil, errors.Wrap(err, "parsing refresh token")
	}
	if !token.Valid {
		return nil, nil, errors.New("invalid refresh token")
	}
	if refreshClaims.Type != "refresh" {
		return nil, nil, errors.New("token is not a refresh token")
	}

	if accessClaims.UserId != refreshClaims.UserId {
		return nil, nil, errors.New("token pair does not match")
	}

	return &accessClaims, &refreshClaims, nil
}
