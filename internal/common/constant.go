// Package common contains shared constants and sentinel errors used across
// todokeeper components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token.
const AuthorizationHeaderName = "Authorization"

// DenyPrincipalID is the principal reported by the authorizer when a request
// is rejected.
const DenyPrincipalID = "user"
