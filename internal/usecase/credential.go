package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/arklim/credcheck/internal/core/domain"
	"github.com/arklim/credcheck/internal/core/port"
	"github.com/arklim/credcheck/internal/infra/logger"
	"github.com/arklim/credcheck/internal/infra/security"
	"github.com/arklim/credcheck/internal/repository"
)

// DefaultHistoryTimeout bounds the history store round trip.
const DefaultHistoryTimeout = 5 * time.Second

// CredentialParams configures a CredentialService.
type CredentialParams struct {
	// Locator names the history resource the reuse check reads.
	Locator string
	// MinLength overrides the password length floor when positive.
	MinLength int
	// HistoryTimeout overrides DefaultHistoryTimeout when positive.
	HistoryTimeout time.Duration
}

// CredentialService validates candidate credentials. Checks run in a fixed
// order and the first failure is reported; only the final reuse check
// touches the history store.
type CredentialService struct {
	history       port.HistoryStore
	fingerprinter port.Fingerprinter
	params        CredentialParams
}

// NewCredentialService constructs a credential service.
func NewCredentialService(history port.HistoryStore, fingerprinter port.Fingerprinter, params CredentialParams) *CredentialService {
	if params.MinLength <= 0 {
		params.MinLength = security.DefaultMinPasswordLength
	}
	if params.HistoryTimeout <= 0 {
		params.HistoryTimeout = DefaultHistoryTimeout
	}
	return &CredentialService{history: history, fingerprinter: fingerprinter, params: params}
}

// Create validates the (username, password, salt) triple and returns the
// Credential only once every check has passed. Structural rejections come
// back as *domain.ValidationError; history store failures come back as
// *domain.HistoryUnavailableError. Nothing here panics on input or I/O.
// The username is an opaque identifier and is not validated on its own:
// an empty password is reported as empty even when the username is also
// empty, because the emptiness check runs before the identity comparison.
func (s *CredentialService) Create(ctx context.Context, username, password string, salt uint64) (domain.Credential, error) {
	var zero domain.Credential
	if s == nil || s.history == nil || s.fingerprinter == nil {
		return zero, fmt.Errorf("credential service not configured")
	}

	ctx = logger.NewValidationContext(ctx)
	log := logger.WithContext(ctx)

	validator := security.NewPasswordValidator(security.StructuralRules(username, s.params.MinLength)...)
	if err := validator.Validate(password); err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			log.Debug("password rejected",
				zap.String("username", logger.MaskUsername(username)),
				zap.String("code", string(vErr.Code)),
			)
		}
		return zero, err
	}

	cred := domain.NewCredential(username, password, salt)

	fp, err := s.fingerprinter.Fingerprint(cred)
	if err != nil {
		return zero, fmt.Errorf("compute fingerprint: %w", err)
	}

	if err := s.checkHistory(ctx, fp); err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			log.Debug("password rejected",
				zap.String("username", logger.MaskUsername(username)),
				zap.String("code", string(vErr.Code)),
			)
		}
		return zero, err
	}

	log.Debug("credential validated",
		zap.String("username", logger.MaskUsername(username)),
		zap.String("scheme", s.fingerprinter.Scheme()),
	)
	return cred, nil
}

// EstimateStrength scores the candidate with zxcvbn (0 weakest, 4
// strongest), treating the username as a known user input. Advisory only;
// it never rejects.
func (s *CredentialService) EstimateStrength(username, password string) int {
	return security.StrengthScore(password, username)
}

// checkHistory scans the history store for the fingerprint. The iterator is
// released on every exit path, including parse failures and timeouts.
func (s *CredentialService) checkHistory(ctx context.Context, fp domain.Fingerprint) error {
	ctx, cancel := context.WithTimeout(ctx, s.params.HistoryTimeout)
	defer cancel()

	it, err := s.history.Open(ctx, s.params.Locator)
	if err != nil {
		return historyUnavailable(err)
	}
	defer it.Close()

	for {
		candidate, ok, err := it.Next(ctx)
		if err != nil {
			return historyUnavailable(err)
		}
		if !ok {
			return nil
		}
		if fp.Equal(candidate) {
			return &domain.ValidationError{
				Code:    domain.CodePreviouslyUsed,
				Message: "password matches a previously used credential",
			}
		}
	}
}

// historyUnavailable classifies a store failure. Missing or unreadable
// history never aborts the process and never silently accepts a credential.
func historyUnavailable(err error) error {
	cause := domain.HistoryCauseIO

	var parseErr *repository.ParseError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		cause = domain.HistoryCauseNotFound
	case errors.Is(err, repository.ErrPermissionDenied):
		cause = domain.HistoryCausePermissionDenied
	case errors.As(err, &parseErr):
		cause = domain.HistoryCauseParse
	case errors.Is(err, context.DeadlineExceeded):
		cause = domain.HistoryCauseTimeout
	}

	return &domain.HistoryUnavailableError{Cause: cause, Err: err}
}
