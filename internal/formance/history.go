package formance

import (
	"context"
	"fmt"
	"math/big"
	"strconv"

	"stellar-pets-go/internal/models"

	v3 "github.com/formancehq/formance-sdk-go/v3"
	"github.com/formancehq/formance-sdk-go/v3/pkg/models/operations"
	"github.com/formancehq/formance-sdk-go/v3/pkg/models/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Numscript templates. Metadata is set inside the script so each Formance
// transaction is self-describing.

const numscriptSavingsDeposit = `vars {
  asset $asset
  number $amount
  account $user_id
  string $record_id
  string $on_schedule
  string $amount_human
}

send [$asset $amount] (
  source = @world
  destination = @savers:$user_id
)

set_tx_meta("event_type", "deposit")
set_tx_meta("record_id", $record_id)
set_tx_meta("on_schedule", $on_schedule)
set_tx_meta("amount_human", $amount_human)
`

// Withdrawals may exceed the mirrored balance when earlier mirror writes
// failed, so the saver account is allowed to overdraft.
const numscriptSavingsWithdrawal = `vars {
  asset $asset
  number $amount
  account $user_id
  string $record_id
  string $amount_human
}

send [$asset $amount] (
  source = @savers:$user_id allowing unbounded overdraft
  destination = @world
)

set_tx_meta("event_type", "withdrawal")
set_tx_meta("record_id", $record_id)
set_tx_meta("amount_human", $amount_human)
`

// MirrorDeposit posts one history entry to the ledger. The record id is the
// transaction reference, so a repeated mirror of the same record is a no-op.
func (s *Service) MirrorDeposit(ctx context.Context, user *models.User, record models.DepositRecord) error {
	postTx, err := s.buildPosting(user, record)
	if err != nil {
		return err
	}

	_, err = s.client.Ledger.V2.CreateTransaction(ctx, operations.V2CreateTransactionRequest{
		Ledger:            s.ledger,
		V2PostTransaction: postTx,
	})
	if err != nil {
		if isConflictError(err) {
			zap.L().Debug("History record already mirrored", zap.String("record_id", record.Id))
			return nil
		}
		return fmt.Errorf("error mirroring %s: %w", record.TransactionType, err)
	}

	zap.L().Info("History record mirrored to Formance",
		zap.String("user_id", user.Id),
		zap.String("record_id", record.Id),
		zap.String("type", string(record.TransactionType)),
		zap.String("amount", record.Amount.String()))
	return nil
}

func (s *Service) buildPosting(user *models.User, record models.DepositRecord) (shared.V2PostTransaction, error) {
	smallAmt := record.Amount.Shift(int32(precisionFor(s.asset))).BigInt().String()
	vars := map[string]string{
		"asset":        formanceAsset(s.asset),
		"amount":       smallAmt,
		"user_id":      user.Id,
		"record_id":    record.Id,
		"amount_human": record.Amount.String(),
	}

	var script string
	switch record.TransactionType {
	case models.TransactionDeposit:
		script = numscriptSavingsDeposit
		vars["on_schedule"] = strconv.FormatBool(record.OnSchedule)
	case models.TransactionWithdrawal:
		script = numscriptSavingsWithdrawal
	default:
		return shared.V2PostTransaction{}, fmt.Errorf("unsupported transaction type: %s", record.TransactionType)
	}

	postTx := shared.V2PostTransaction{
		Reference: strPtr(record.Id),
		Script: &shared.V2PostTransactionScript{
			Plain: script,
			Vars:  vars,
		},
		Metadata: map[string]string{
			"wallet_address": user.WalletAddress,
		},
	}
	if !record.CreatedAt.IsZero() {
		ts := record.CreatedAt
		postTx.Timestamp = &ts
	}
	return postTx, nil
}

// SavedBalance returns the mirrored savings balance for a user.
func (s *Service) SavedBalance(ctx context.Context, userId string) (decimal.Decimal, error) {
	resp, err := s.client.Ledger.V2.GetAccount(ctx, operations.V2GetAccountRequest{
		Ledger:  s.ledger,
		Address: saverAccount(userId),
		Expand:  v3.Pointer("volumes"),
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get saver account: %w", err)
	}

	bal := volumeBalance(resp.V2AccountResponse.Data.Volumes, formanceAsset(s.asset))
	return bigIntToDecimal(bal, s.asset), nil
}

// volumeBalance extracts the balance for an asset from a volumes map,
// falling back to input - output when the balance field is absent.
func volumeBalance(vols map[string]shared.V2Volume, fAsset string) *big.Int {
	vol, ok := vols[fAsset]
	if !ok {
		return nil
	}
	if vol.Balance != nil {
		return vol.Balance
	}
	if vol.Input == nil {
		return nil
	}
	result := new(big.Int).Set(vol.Input)
	if vol.Output != nil {
		result.Sub(result, vol.Output)
	}
	return result
}

func bigIntToDecimal(raw *big.Int, symbol string) decimal.Decimal {
	if raw == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(raw, -int32(precisionFor(symbol)))
}
