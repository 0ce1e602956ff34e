package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/common"
	"github.com/dmitrijs2005/linkify/internal/logging"
	"github.com/dmitrijs2005/linkify/internal/server/auth"
	"github.com/dmitrijs2005/linkify/internal/server/config"
	"github.com/dmitrijs2005/linkify/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/linkify/internal/transaction"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService issues tokens to whoever proves possession of an identity's
// private key:
// - Login: verify a signed login challenge and mint tokens
// - RefreshToken: rotate refresh tokens and mint new access tokens
type AuthService struct {
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	maxAge                       time.Duration
	log                          logging.Logger
	now                          func() time.Time
}

func NewAuthService(m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *AuthService {
	return &AuthService{
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		maxAge:                       cfg.TxMaxAge,
		log:                          log.With("module", "auth"),
		now:                          time.Now,
	}
}

// Login checks sig over transaction.LoginMessage(identity, timestamp) and
// returns a new TokenPair. timestamp is unix milliseconds.
func (s *AuthService) Login(ctx context.Context, identity address.Pubkey, timestamp int64, sig []byte) (*TokenPair, error) {
	if err := transaction.VerifyLogin(identity, timestamp, sig); err != nil {
		return nil, err
	}
	if err := checkWindow(time.UnixMilli(timestamp), s.now(), s.maxAge); err != nil {
		return nil, err
	}

	var pair *TokenPair
	err := s.repomanager.WithTx(ctx, nil, func(ctx context.Context, repos repomanager.Repositories) error {
		var err error
		pair, err = s.generateTokenPair(ctx, identity.String(), repos)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "login", "identity", identity.String())
	return pair, nil
}

// RefreshToken validates a refresh token, rotates it transactionally and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	var pair *TokenPair
	err := s.repomanager.WithTx(ctx, nil, func(ctx context.Context, repos repomanager.Repositories) error {
		repo := repos.RefreshTokens()
		token, err := repo.Find(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidToken
			}
			return fmt.Errorf("error searching refresh token: %w", err)
		}
		if token.Expires.Before(s.now()) {
			return common.ErrRefreshTokenExpired
		}
		// a concurrent rotation may have consumed the token since Find
		if err := repo.Delete(ctx, refreshToken); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidToken
			}
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		pair, err = s.generateTokenPair(ctx, token.Identity, repos)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// Identity returns the identity an access token was issued to.
func (s *AuthService) Identity(accessToken string) (address.Pubkey, error) {
	subject, err := auth.GetIdentityFromToken(accessToken, s.jwtSecret)
	if err != nil {
		return address.Pubkey{}, err
	}
	id, err := address.Parse(subject)
	if err != nil {
		return address.Pubkey{}, common.ErrInvalidToken
	}
	return id, nil
}

// PurgeExpired drops refresh tokens that can no longer be used.
func (s *AuthService) PurgeExpired(ctx context.Context) (int64, error) {
	var n int64
	err := s.repomanager.WithTx(ctx, nil, func(ctx context.Context, repos repomanager.Repositories) error {
		var err error
		n, err = repos.RefreshTokens().DeleteExpired(ctx, s.now())
		return err
	})
	return n, err
}

func (s *AuthService) generateTokenPair(ctx context.Context, identity string, repos repomanager.Repositories) (*TokenPair, error) {
	access, err := auth.GenerateToken(identity, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := repos.RefreshTokens().Create(ctx, identity, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
