package jwttoken

import (
	"memoria/internal/platform/middleware"
	id "memoria/pkg/domain"
	dErrors "memoria/pkg/domain-errors"
)

// JWTServiceAdapter exposes the JWT service through the middleware's
// validator interface, converting string claims back into typed ids.
type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*middleware.JWTClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	userID, err := id.ParseUserID(claims.UserID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	sessionID, err := id.ParseSessionID(claims.SessionID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}

	return &middleware.JWTClaims{
		UserID:    userID,
		SessionID: sessionID,
		Admin:     claims.Admin,
	}, nil
}
