package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/qrcontact/internal/common"
	"github.com/dmitrijs2005/qrcontact/internal/logging"
	"github.com/dmitrijs2005/qrcontact/internal/server/delivery"
	"github.com/dmitrijs2005/qrcontact/internal/server/directory"
	"github.com/dmitrijs2005/qrcontact/internal/server/models"
)

// Admitter is the rate-limiter contract the exchange depends on.
type Admitter interface {
	Admit(key string) bool
}

// ExchangeService resolves a scan: rate check, credential check, scan
// accounting, then delivery. It owns no state of its own.
type ExchangeService struct {
	store           directory.Store
	limiter         Admitter
	deliverer       delivery.Deliverer
	deliveryTimeout time.Duration
	logger          logging.Logger
}

func NewExchangeService(store directory.Store, limiter Admitter, d delivery.Deliverer, deliveryTimeout time.Duration, l logging.Logger) *ExchangeService {
	return &ExchangeService{
		store:           store,
		limiter:         limiter,
		deliverer:       d,
		deliveryTimeout: deliveryTimeout,
		logger:          l.With("module", "exchange"),
	}
}

// Resolve runs the lookup state machine:
//
//	START -> RATE_CHECK -> LOOKUP -> TOKEN_CHECK -> DISCLOSED
//
// with terminal failures ErrorRateLimited, ErrorUnknownProfile and
// ErrorInvalidToken. The rate check always runs first so a denied requester
// never touches the store. A delivery failure does not undo the recorded
// scan; the returned Disclosure carries Delivered=false instead.
func (s *ExchangeService) Resolve(ctx context.Context, requesterKey, profileID, token, recipient string) (*models.Disclosure, error) {

	if !s.limiter.Admit(requesterKey) {
		return nil, common.ErrorRateLimited
	}

	profile, err := s.store.Get(ctx, profileID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnknownProfile
		}
		return nil, fmt.Errorf("store error: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(token), []byte(profile.Token)) != 1 {
		return nil, common.ErrorInvalidToken
	}

	// Credentials are valid: the scan attempt is real regardless of what
	// happens to delivery below.
	if err := s.store.IncrementScan(ctx, profileID); err != nil {
		return nil, fmt.Errorf("error recording scan: %w", err)
	}

	disc := profile.Disclosed()

	dctx, cancel := context.WithTimeout(ctx, s.deliveryTimeout)
	defer cancel()

	if err := s.deliverer.Deliver(dctx, recipient, disc); err != nil {
		s.logger.Warn(ctx, "delivery failed", "profile_id", profileID, "error", err.Error())
		return disc, nil
	}

	if err := s.store.IncrementDisclosuresSent(ctx); err != nil {
		// The disclosure went out; a failed counter bump is not worth
		// failing the request over.
		s.logger.Error(ctx, "error bumping disclosure counter", "error", err.Error())
	}

	disc.Delivered = true
	return disc, nil
}
