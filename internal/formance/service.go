package formance

import (
	"context"
	"errors"
	"fmt"

	"stellar-pets-go/internal/models"
	"stellar-pets-go/internal/store"

	v3 "github.com/formancehq/formance-sdk-go/v3"
	"github.com/formancehq/formance-sdk-go/v3/pkg/models/operations"
	"github.com/formancehq/formance-sdk-go/v3/pkg/models/sdkerrors"
	"github.com/formancehq/formance-sdk-go/v3/pkg/models/shared"
	"go.uber.org/zap"
)

var _ store.HistoryMirror = (*Service)(nil)

const (
	defaultLedgerName = "stellar-pets-savings"
	defaultAsset      = "USD"
)

// assetPrecision maps savings assets to their decimal precision.
var assetPrecision = map[string]int{
	"USD":  2,
	"USDC": 6,
	"XLM":  7,
}

// Service mirrors the deposit history into a Formance Stack ledger.
type Service struct {
	client *v3.Formance
	ledger string
	asset  string
}

// NewService connects to the stack and makes sure the savings ledger exists.
func NewService(ctx context.Context, cfg models.FormanceConfig) (*Service, error) {
	if cfg.StackURL == "" || cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("formance mirror needs a stack url, client id and client secret")
	}
	cfg = withDefaults(cfg)

	zap.L().Info("Connecting history mirror",
		zap.String("stack_url", cfg.StackURL),
		zap.String("ledger", cfg.LedgerName),
		zap.String("asset", cfg.Asset))

	svc := &Service{client: newClient(cfg), ledger: cfg.LedgerName, asset: cfg.Asset}
	if err := svc.ensureLedger(ctx); err != nil {
		return nil, fmt.Errorf("unable to prepare ledger %s: %w", cfg.LedgerName, err)
	}
	return svc, nil
}

func withDefaults(cfg models.FormanceConfig) models.FormanceConfig {
	if cfg.LedgerName == "" {
		cfg.LedgerName = defaultLedgerName
	}
	if cfg.Asset == "" {
		cfg.Asset = defaultAsset
	}
	return cfg
}

func newClient(cfg models.FormanceConfig) *v3.Formance {
	return v3.New(
		v3.WithServerURL(cfg.StackURL),
		v3.WithSecurity(shared.Security{
			ClientID:     v3.Pointer(cfg.ClientID),
			ClientSecret: v3.Pointer(cfg.ClientSecret),
		}),
	)
}

func (s *Service) ensureLedger(ctx context.Context) error {
	_, err := s.client.Ledger.V2.CreateLedger(ctx, operations.V2CreateLedgerRequest{
		Ledger: s.ledger,
		V2CreateLedgerRequest: shared.V2CreateLedgerRequest{
			Metadata: map[string]string{
				"application": "stellar-pets",
				"asset":       formanceAsset(s.asset),
			},
		},
	})
	var apiErr *sdkerrors.V2ErrorResponse
	switch {
	case err == nil:
		zap.L().Info("Savings ledger created", zap.String("ledger", s.ledger))
	case errors.As(err, &apiErr) && apiErr.ErrorCode == shared.V2ErrorsEnumLedgerAlreadyExists:
		zap.L().Debug("Savings ledger present", zap.String("ledger", s.ledger))
	default:
		return err
	}
	return nil
}

func (s *Service) Name() string { return models.HistoryBackendFormance }

func (s *Service) Close() {}

// formanceAsset returns the Formance UMN notation, e.g. "USD/2".
func formanceAsset(symbol string) string {
	return fmt.Sprintf("%s/%d", symbol, precisionFor(symbol))
}

func precisionFor(symbol string) int {
	if p, ok := assetPrecision[symbol]; ok {
		return p
	}
	return 2
}

// saverAccount is the ledger address holding a user's savings.
func saverAccount(userId string) string {
	return "savers:" + userId
}

// isConflictError reports a duplicate-reference rejection.
func isConflictError(err error) bool {
	var apiErr *sdkerrors.V2ErrorResponse
	return errors.As(err, &apiErr) && apiErr.ErrorCode == shared.V2ErrorsEnumConflict
}

func strPtr(s string) *string { return &s }
