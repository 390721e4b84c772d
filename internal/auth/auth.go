package auth

import (
	"crypto/rsa"
	"os"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

// These are the expected values for Claims.Role.
const (
	RoleAdmin     = "ADMIN"
	RoleEmployee  = "EMPLOYEE"
	RoleDashboard = "DASHBOARD"
)

// ctxKey represents the type of value for the context key.
type ctxKey int

// Key is used to store/retrieve a Claims value from a context.Context.
const Key ctxKey = 1

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	UserId int    `json:"user_id"`
	Role   string `json:"role"`
	Type   string `json:"type"`
}

// Authorized returns true if the claims has at least one of the provided roles.
func (c Claims) Authorized(roles ...string) bool {
	for _, role := range roles {
		if c.Role == role {
			return true
		}
	}
	return false
}

// Auth is used to authenticate clients. It can parse and validate a JWT
// issued with the service key pair.
type Auth struct {
	privateKey *rsa.PrivateKey
	method     jwt.SigningMethod
	parser     *jwt.Parser
}

// New reads the RSA private key used for signing tokens and constructs an
// Auth for validating them.
func New(privateKeyFile string) (*Auth, error) {
	keyData, err := os.ReadFile(privateKeyFile)
	if err != nil {
		return nil, errors.Wrap(err, "reading private key file")
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(keyData)
	if err != nil {
		return nil, errors.Wrap(err, "parsing private key")
	}

	a := Auth{
		privateKey: privateKey,
		method:     jwt.GetSigningMethod("RS256"),
		parser: &jwt.Parser{
			ValidMethods: []string{"RS256"},
		},
	}

	return &a, nil
}

// GenerateToken signs the claims into a token string.
func (a *Auth) GenerateToken(claims Claims) (string, error) {
	token := jwt.NewWithClaims(a.method, claims)

	str, err := token.SignedString(a.privateKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}

	return str, nil
}

// ValidateToken recreates the Claims that were used to generate a token. It
// verifies that the token was signed using our key.
func (a *Auth) ValidateToken(tokenStr string) (Claims, error) {
	keyFunc := func(t *jwt.Token) (interface{}, error) {
		return &a.privateKey.PublicKey, nil
	}

	var claims Claims
	token, err := a.parser.ParseWithClaims(tokenStr, &claims, keyFunc)
	if err != nil {
		return Claims{}, errors.Wrap(err, "parsing token")
	}

	if !token.Valid {
		return Claims{}, errors.New("invalid token")
	}

	return claims, nil
}
