package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/linkify/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errorCodes = []struct {
	err  error
	code codes.Code
}{
	{common.ErrInvalidSignature, codes.Unauthenticated},
	{common.ErrInvalidToken, codes.Unauthenticated},
	{common.ErrTokenExpired, codes.Unauthenticated},
	{common.ErrRefreshTokenExpired, codes.Unauthenticated},
	{common.ErrorUnauthorized, codes.Unauthenticated},
	{common.ErrUnauthorized, codes.PermissionDenied},
	{common.ErrAccountNotFound, codes.NotFound},
	{common.ErrorNotFound, codes.NotFound},
	{common.ErrAccountAlreadyExists, codes.AlreadyExists},
	{common.ErrDuplicateTransaction, codes.AlreadyExists},
	{common.ErrInvalidInput, codes.InvalidArgument},
	{common.ErrTransactionExpired, codes.InvalidArgument},
	{common.ErrDeserialization, codes.DataLoss},
	{common.ErrIdentityMismatch, codes.FailedPrecondition},
	{common.ErrInvalidState, codes.FailedPrecondition},
	{common.ErrInsufficientFunds, codes.FailedPrecondition},
	{common.ErrFaucetDisabled, codes.FailedPrecondition},
	{common.ErrConflict, codes.Aborted},
}

// toStatus maps service errors to gRPC statuses. Known errors keep their
// text so clients can recover the sentinel; anything else is reported as
// internal.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			return status.Error(e.code, err.Error())
		}
	}
	if errors.Is(err, context.Canceled) {
		return status.Error(codes.Canceled, err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	if !errors.Is(err, common.ErrorInternal) {
		s.logger.Error(ctx, "unexpected error", "error", err)
	}
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}
