package config

import (
	"flag"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/linkify/internal/flagx"
)

var serverFlags = []string{
	"-a", "-h", "-d", "-s", "-t", "-r", "-program", "-tx-age", "-faucet", "-admins", "-cors", "-l",
	"-u", "-p", "-b", "-g", "-e",
}

// parseFlags overlays command-line flags onto config:
//
//	-a        gRPC bind address
//	-h        HTTP explorer bind address
//	-d        database DSN, or memory:// for the in-process ledger
//	-s        JWT HMAC secret
//	-t, -r    access / refresh token validity, minutes
//	-program  program id, base58
//	-tx-age   transaction max age, seconds
//	-faucet   faucet limit in units, 0 disables
//	-admins   comma-separated base58 identities
//	-cors     comma-separated allowed origins
//	-l        log level
//	-u -p -b -g -e  S3 user, password, bucket, region, endpoint
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("linkify-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "gRPC address")
	fs.StringVar(&config.EndpointAddrHTTP, "h", config.EndpointAddrHTTP, "HTTP explorer address")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	access := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (minutes)")
	refresh := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh token validity (minutes)")

	fs.StringVar(&config.ProgramID, "program", config.ProgramID, "program id")
	txAge := fs.Int("tx-age", int(config.TxMaxAge.Seconds()), "transaction max age (seconds)")
	fs.StringVar(&config.FaucetLimit, "faucet", config.FaucetLimit, "faucet limit in units")
	admins := fs.String("admins", strings.Join(config.Admins, ","), "admin identities")
	cors := fs.String("cors", strings.Join(config.CORSOrigins, ","), "allowed CORS origins")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(flagx.FilterArgs(args, serverFlags)); err != nil {
		return err
	}

	config.AccessTokenValidityDuration = time.Duration(*access) * time.Minute
	config.RefreshTokenValidityDuration = time.Duration(*refresh) * time.Minute
	config.TxMaxAge = time.Duration(*txAge) * time.Second
	config.Admins = splitList(*admins)
	config.CORSOrigins = splitList(*cors)
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
