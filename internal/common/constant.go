// Package common contains shared constants and sentinel errors used across
// gophcms components.
package common

// AuthorizationHeaderName is the request header carrying the raw token.
// The value is the token itself, without a "Bearer " scheme.
const AuthorizationHeaderName = "Authorization"

// DefaultUploadPath is where uploaded images land when no path is configured.
const DefaultUploadPath = ".uploads/images"
