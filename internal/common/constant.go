// Package common contains shared constants and sentinel errors used across
// ParishPortal components.
package common

const (
	// AuthTokenKey is the key under which the bearer token is persisted
	// in the local state store.
	AuthTokenKey = "authToken"

	// AuthUserKey holds the JSON profile cached alongside the token.
	// Written and deleted together with AuthTokenKey.
	AuthUserKey = "authUser"

	// AuthHeaderName is the HTTP header carrying the bearer credential.
	AuthHeaderName = "Authorization"

	// BearerPrefix prefixes the token value in the Authorization header.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName carries a per-request correlation id.
	RequestIDHeaderName = "X-Request-Id"
)
