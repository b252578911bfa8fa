package funding

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"

	"github.com/davidokon/secretshop/internal/domain/entity"
	errs "github.com/davidokon/secretshop/internal/domain/error"
)

// EventChargeSuccess is the only provider event the wallet reacts to.
const EventChargeSuccess = "charge.success"

// providerEvent is the webhook payload shape we care about. Unknown fields
// are ignored; the raw body is what gets stored as transaction metadata.
type providerEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"`
		Customer  struct {
			Email string `json:"email"`
		} `json:"customer"`
	} `json:"data"`
}

// VerifySignature checks the provider's HMAC-SHA512 hex signature over the
// raw request body. It must pass before the body is parsed or any state is
// touched.
func VerifySignature(secret string, body []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// HandleProviderEvent processes a verified webhook body. Only charge.success
// events credit wallets; everything else is acknowledged and dropped. A
// reference never seen before (payment made outside the initiate flow, or
// the webhook raced our insert) gets a transaction created on the fly so the
// gated settle still applies.
func (s *Service) HandleProviderEvent(ctx context.Context, body []byte) error {
	var evt providerEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		return errs.ErrInvalidReference
	}

	if evt.Event != EventChargeSuccess {
		s.logger.Debug("Ignoring provider event", map[string]any{
			"event": evt.Event,
		})
		return nil
	}
	if evt.Data.Reference == "" {
		return errs.ErrInvalidReference
	}

	txn, err := s.txRepo.GetByReference(ctx, evt.Data.Reference)
	if err != nil {
		if !errors.Is(err, errs.ErrTransactionNotFound) {
			return err
		}
		txn, err = s.recordExternalTransaction(ctx, &evt)
		if err != nil {
			return err
		}
	}

	return s.settleTransaction(ctx, evt.Data.Reference, txn.UserID, evt.Data.Customer.Email, evt.Data.Amount, string(body))
}

// recordExternalTransaction inserts an initialized transaction for a
// reference the provider knows but we do not. A concurrent insert losing to
// the unique reference index just re-reads the winner's row.
func (s *Service) recordExternalTransaction(ctx context.Context, evt *providerEvent) (*entity.Transaction, error) {
	now := s.timeProvider.Now()
	txn := &entity.Transaction{
		Reference:     evt.Data.Reference,
		AmountInCents: entity.MinorUnitToCents(evt.Data.Amount),
		Status:        entity.StatusInitialized,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := s.txRepo.Create(ctx, txn)
	if err == nil {
		s.logger.Info("Recorded externally initiated transaction", map[string]any{
			"reference": txn.Reference,
		})
		return txn, nil
	}
	if errors.Is(err, errs.ErrDuplicateReference) {
		return s.txRepo.GetByReference(ctx, evt.Data.Reference)
	}
	return nil, err
}
