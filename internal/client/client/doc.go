// Package client talks to the linkify gRPC server on behalf of the CLI.
//
// GRPCClient wraps every RPC in a typed method, carries the access token in
// outgoing metadata, refreshes it once when the server reports it expired,
// and maps gRPC statuses back to the sentinel errors in internal/common so
// callers can match them with errors.Is.
package client
