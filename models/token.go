// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Limitclean Authors

package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims is the claim set embedded in every issued session token.
// It extends the standard registered claims (sub, exp, iat, iss) with the
// account role so that authorization checks do not require a user lookup.
type TokenClaims struct {
	jwt.RegisteredClaims

	// Role is the account role of the token subject.
	Role Role `json:"role"`
}

// Token wraps an issued or verified session token with convenience accessors.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be mirrored to local storage.
type Token struct {
	// Token is the underlying parsed token used for claim inspection.
	// Excluded from JSON serialization because only the compact string
	// form is meaningful outside the process.
	*jwt.Token `json:"-"`

	// Claims is the decoded claim set of the token.
	Claims TokenClaims `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the subject identifier extracted from the "sub" claim.
	UserID string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
