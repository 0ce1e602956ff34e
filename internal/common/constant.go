// Package common contains shared constants and sentinel errors used across
// linkify components.
package common

// AccessTokenHeaderName is the gRPC/HTTP metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// LamportsPerUnit is the number of base units in one display unit.
const LamportsPerUnit = 1_000_000_000
