package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/linkify/internal/common"
	"github.com/dmitrijs2005/linkify/internal/dbx"
	"github.com/dmitrijs2005/linkify/internal/linkify"
	"github.com/dmitrijs2005/linkify/internal/logging"
	"github.com/dmitrijs2005/linkify/internal/server/config"
	"github.com/dmitrijs2005/linkify/internal/server/models"
	"github.com/dmitrijs2005/linkify/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/linkify/internal/transaction"
	"github.com/google/uuid"
)

// programErrors are the failures an instruction can end with. They are
// recorded in a failed receipt and returned to the submitter as they are.
var programErrors = []error{
	common.ErrAccountAlreadyExists,
	common.ErrAccountNotFound,
	common.ErrDeserialization,
	common.ErrUnauthorized,
	common.ErrIdentityMismatch,
	common.ErrInvalidState,
	common.ErrInsufficientFunds,
	common.ErrInvalidInput,
}

func isProgramError(err error) bool {
	for _, e := range programErrors {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// TransactionService applies signed transactions to the ledger, each at
// most once.
type TransactionService struct {
	repomanager repomanager.RepositoryManager
	program     *linkify.Program
	maxAge      time.Duration
	log         logging.Logger
	now         func() time.Time
}

func NewTransactionService(m repomanager.RepositoryManager, program *linkify.Program, cfg *config.Config, log logging.Logger) *TransactionService {
	return &TransactionService{
		repomanager: m,
		program:     program,
		maxAge:      cfg.TxMaxAge,
		log:         log.With("module", "transactions"),
		now:         time.Now,
	}
}

func newReceipt(tx *transaction.Transaction) *models.Receipt {
	return &models.Receipt{
		ID:        uuid.NewString(),
		Signature: tx.ID(),
		Signer:    tx.Signer.String(),
		Kind:      tx.Instruction.Kind.String(),
		Raw:       tx.Encode(),
	}
}

// Submit verifies tx and applies its instruction in one serializable unit
// together with its receipt. A rejected instruction leaves the ledger
// untouched and is recorded as a failed receipt, so its signature cannot be
// replayed either.
func (s *TransactionService) Submit(ctx context.Context, tx *transaction.Transaction) (*models.Receipt, error) {
	if err := tx.Verify(); err != nil {
		return nil, err
	}
	if err := checkWindow(tx.Time(), s.now(), s.maxAge); err != nil {
		return nil, err
	}

	receipt := newReceipt(tx)
	err := s.repomanager.WithTx(ctx, dbx.Serializable, func(ctx context.Context, repos repomanager.Repositories) error {
		if _, err := repos.Transactions().Get(ctx, receipt.Signature); err == nil {
			return common.ErrDuplicateTransaction
		} else if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		res, err := s.program.Execute(ctx, repos.Accounts(), tx.Signer, tx.Instruction)
		if err != nil {
			return err
		}
		receipt.Account = res.Account.String()
		receipt.Status = models.ReceiptStatusOK
		return repos.Transactions().Create(ctx, receipt)
	})
	if err == nil {
		s.log.Info(ctx, "transaction applied", "signature", receipt.Signature, "kind", receipt.Kind, "account", receipt.Account)
		return receipt, nil
	}

	switch {
	case errors.Is(err, common.ErrDuplicateTransaction):
		return nil, err
	case dbx.IsRetryable(err):
		s.log.Debug(ctx, "serialization conflict", "signature", receipt.Signature, "error", err)
		return nil, common.ErrConflict
	case isProgramError(err):
		if tx.Instruction.Kind == transaction.KindRequestConnection && errors.Is(err, common.ErrAccountAlreadyExists) {
			// The tracker address is derived from a counter that only grows.
			s.log.Error(ctx, "connection address already occupied", "signature", receipt.Signature, "error", err)
		}
		s.recordFailure(ctx, receipt, err)
		return nil, err
	default:
		s.log.Error(ctx, "transaction failed", "signature", receipt.Signature, "error", err)
		return nil, common.ErrorInternal
	}
}

func (s *TransactionService) recordFailure(ctx context.Context, receipt *models.Receipt, cause error) {
	receipt.ID = uuid.NewString()
	receipt.Account = ""
	receipt.Status = models.ReceiptStatusFailed
	receipt.Error = cause.Error()
	err := s.repomanager.WithTx(ctx, nil, func(ctx context.Context, repos repomanager.Repositories) error {
		return repos.Transactions().Create(ctx, receipt)
	})
	if err != nil && !errors.Is(err, common.ErrDuplicateTransaction) {
		s.log.Warn(ctx, "failed receipt not stored", "signature", receipt.Signature, "error", err)
		return
	}
	s.log.Info(ctx, "transaction rejected", "signature", receipt.Signature, "kind", receipt.Kind, "error", cause)
}

// GetReceipt returns the receipt stored for signature or common.ErrorNotFound.
func (s *TransactionService) GetReceipt(ctx context.Context, signature string) (*models.Receipt, error) {
	var receipt *models.Receipt
	err := s.repomanager.WithTx(ctx, nil, func(ctx context.Context, repos repomanager.Repositories) error {
		var err error
		receipt, err = repos.Transactions().Get(ctx, signature)
		return err
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}
