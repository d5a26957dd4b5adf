// Copyright 2026 The OpenWorkshop Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrIncompleteClaims = errors.New("token claims are incomplete")
	ErrEmptySigningKey  = errors.New("signing key cannot be empty")
)

// TokenLifetime is the fixed validity window for issued tokens.
const TokenLifetime = 7 * 24 * time.Hour

// Claims is the identity snapshot carried by a signed token.
// CompanyID is empty for SUPER_ADMIN principals, which operate
// without a fixed company scope.
type Claims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	CompanyID string `json:"company_id,omitempty"`
	jwt.RegisteredClaims
}

// Service issues and verifies signed identity tokens.
type Service struct {
	signingKey []byte
}

// NewService creates a token service with the given HMAC signing key.
func NewService(signingKey string) (*Service, error) {
	if signingKey == "" {
		return nil, ErrEmptySigningKey
	}
	return &Service{signingKey: []byte(signingKey)}, nil
}

// Issue signs a token for the given principal claims.
func (s *Service) Issue(userID, role, companyID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    userID,
		Role:      role,
		CompanyID: companyID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.signingKey)
}

// Verify parses and validates a token, returning its claims.
// A token that parses but lacks a user ID or role is rejected:
// downstream authorization must never run on a partial principal.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.signingKey, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" || claims.Role == "" {
		return nil, ErrIncompleteClaims
	}

	return claims, nil
}
