package wallet

import (
	"context"

	"redbank/core"

	"github.com/fox-one/pkg/logger"
	"github.com/gofrs/uuid"
)

type service struct{}

// New wallet service. Token custody lives with the host; this
// implementation settles queued transfers by logging them, which is
// what the standalone deployment and the tests need.
func New() core.IWalletService {
	return &service{}
}

func (s *service) Transfer(ctx context.Context, transfer *core.Transfer) error {
	// payment requests against the host are idempotent on the request id,
	// derived from the transfer trace so a retry reuses the same id
	requestID := uuid.NewV5(uuid.NamespaceOID, transfer.TraceID).String()

	logger.FromContext(ctx).
		WithField("service", "wallet").
		WithField("request_id", requestID).
		Infof("transfer %s %s to %s (%s)", transfer.Amount, transfer.Denom, transfer.Opponent, transfer.Source)

	return nil
}
