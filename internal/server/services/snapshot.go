package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/binx"
	"github.com/dmitrijs2005/linkify/internal/common"
	"github.com/dmitrijs2005/linkify/internal/ledger"
	"github.com/dmitrijs2005/linkify/internal/logging"
	"github.com/dmitrijs2005/linkify/internal/server/config"
	"github.com/dmitrijs2005/linkify/internal/server/models"
	"github.com/dmitrijs2005/linkify/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/linkify/internal/server/storage"
	"github.com/google/uuid"
)

const snapshotURLValidity = 15 * time.Minute

// SnapshotService exports the whole ledger to object storage.
type SnapshotService struct {
	repomanager repomanager.RepositoryManager
	store       storage.ObjectStore
	admins      map[address.Pubkey]bool
	log         logging.Logger
	now         func() time.Time
}

func NewSnapshotService(m repomanager.RepositoryManager, store storage.ObjectStore, cfg *config.Config, log logging.Logger) (*SnapshotService, error) {
	admins := make(map[address.Pubkey]bool, len(cfg.Admins))
	for _, a := range cfg.Admins {
		id, err := address.Parse(a)
		if err != nil {
			return nil, fmt.Errorf("admin identity %q: %w", a, err)
		}
		admins[id] = true
	}
	return &SnapshotService{
		repomanager: m,
		store:       store,
		admins:      admins,
		log:         log.With("module", "snapshot"),
		now:         time.Now,
	}, nil
}

// EncodeSnapshot lays accounts out as
// count u64 || (address[32] lamports u64 len u32 data)*.
func EncodeSnapshot(accounts []*ledger.Account) []byte {
	data := make([]byte, 0, 8+len(accounts)*(address.Size+12))
	binx.PutUint64(uint64(len(accounts)), &data)
	for _, acc := range accounts {
		binx.PutPubkey(acc.Address, &data)
		binx.PutUint64(acc.Lamports, &data)
		binx.PutBytes(acc.Data, &data)
	}
	return data
}

// DecodeSnapshot parses the output of EncodeSnapshot.
func DecodeSnapshot(data []byte) ([]*ledger.Account, error) {
	count, position := binx.ParseUint64(data, 0)
	if position > len(data) || count > uint64(len(data))/(address.Size+12) {
		return nil, fmt.Errorf("%w: malformed snapshot header", common.ErrInvalidInput)
	}
	accounts := make([]*ledger.Account, 0, count)
	for i := uint64(0); i < count; i++ {
		acc := &ledger.Account{}
		acc.Address, position = binx.ParsePubkey(data, position)
		acc.Lamports, position = binx.ParseUint64(data, position)
		acc.Data, position = binx.ParseBytes(data, position)
		if position > len(data) {
			return nil, fmt.Errorf("%w: truncated snapshot at account %d", common.ErrInvalidInput, i)
		}
		if len(acc.Data) == 0 {
			acc.Data = nil
		}
		accounts = append(accounts, acc)
	}
	if !binx.Complete(data, position) {
		return nil, fmt.Errorf("%w: trailing snapshot bytes", common.ErrInvalidInput)
	}
	return accounts, nil
}

// Export reads every account in one unit of work, uploads the image and
// returns its description with a presigned download URL. Only admins may
// call it.
func (s *SnapshotService) Export(ctx context.Context, caller address.Pubkey) (*models.Snapshot, error) {
	if !s.admins[caller] {
		return nil, common.ErrorUnauthorized
	}

	var accounts []*ledger.Account
	err := s.repomanager.WithTx(ctx, nil, func(ctx context.Context, repos repomanager.Repositories) error {
		var err error
		accounts, err = repos.Accounts().List(ctx)
		return err
	})
	if err != nil {
		s.log.Error(ctx, "snapshot read failed", "error", err)
		return nil, common.ErrorInternal
	}

	var total uint64
	for _, acc := range accounts {
		total += acc.Lamports
	}
	body := EncodeSnapshot(accounts)
	sum := sha256.Sum256(body)

	now := s.now().UTC()
	snap := &models.Snapshot{
		Key:           fmt.Sprintf("snapshots/%04d/%02d/%02d/%s.bin", now.Year(), now.Month(), now.Day(), uuid.NewString()),
		Checksum:      hex.EncodeToString(sum[:]),
		Accounts:      len(accounts),
		TotalLamports: total,
		CreatedAt:     now,
	}
	metadata := map[string]string{
		"sha256":         snap.Checksum,
		"accounts":       strconv.Itoa(snap.Accounts),
		"total-lamports": strconv.FormatUint(total, 10),
	}
	if err := s.store.Put(ctx, snap.Key, body, metadata); err != nil {
		s.log.Error(ctx, "snapshot upload failed", "key", snap.Key, "error", err)
		return nil, common.ErrorInternal
	}
	url, err := s.store.PresignGet(ctx, snap.Key, snapshotURLValidity)
	if err != nil {
		s.log.Error(ctx, "snapshot presign failed", "key", snap.Key, "error", err)
		return nil, common.ErrorInternal
	}
	snap.URL = url
	snap.URLExpires = now.Add(snapshotURLValidity)

	s.log.Info(ctx, "snapshot exported", "key", snap.Key, "accounts", snap.Accounts, "caller", caller.String())
	return snap, nil
}
