// Package common contains shared constants and sentinel errors used across
// kcaldiary components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer access token.
const AuthorizationHeaderName = "Authorization"

// BearerSchemePrefix is the expected prefix of the Authorization header value.
const BearerSchemePrefix = "Bearer "
