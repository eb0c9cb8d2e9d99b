package jwt

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tsel-ticketmaster/tm-scan/pkg/errors"
	"github.com/tsel-ticketmaster/tm-scan/pkg/status"
)

type JSONWebToken struct {
	privateKey []byte
	publicKey  []byte
}

func NewJSONWebToken(privateKey, publicKey []byte) *JSONWebToken {
	return &JSONWebToken{
		privateKey: privateKey,
		publicKey:  publicKey,
	}
}

func (j *JSONWebToken) Sign(ctx context.Context, claims jwt.Claims) (string, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM(j.privateKey)
	if err != nil {
		return "", errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while parsing the signing key")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)

	signed, err := token.SignedString(key)
	if err != nil {
		return "", errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while signing the token")
	}

	return signed, nil
}

func (j *JSONWebToken) Parse(ctx context.Context, tokenString string, claims jwt.Claims) error {
	key, err := jwt.ParseRSAPublicKeyFromPEM(j.publicKey)
	if err != nil {
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while parsing the verification key")
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	if err != nil || !token.Valid {
		return errors.New(http.StatusUnauthorized, status.UNAUTHORIZED, "invalid token")
	}

	return nil
}
