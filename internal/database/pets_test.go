package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"stellar-pets-go/internal/models"
	"stellar-pets-go/internal/store"

	"github.com/shopspring/decimal"
)

func feed(amount int64) store.PetTransition {
	return func(current models.PetState, goal *models.Goal) (models.PetState, error) {
		next := current
		next.Health = min(100, current.Health+5)
		next.StreakDays++
		next.TotalSaved = current.TotalSaved.Add(decimal.NewFromInt(amount))
		return next, nil
	}
}

func TestProcessPetEvent_Deposit(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	created := createTestGoal(t, service, "GABC", testNow)
	when := testNow.Add(3 * 24 * time.Hour)

	outcome, err := service.ProcessPetEvent(ctx, store.PetEventParams{
		WalletAddress:   "GABC",
		TransactionType: models.TransactionDeposit,
		Amount:          decimal.NewFromInt(50),
		OnSchedule:      true,
		AdvanceSchedule: true,
		Now:             when,
		Transition:      feed(50),
	})
	if err != nil {
		t.Fatalf("ProcessPetEvent failed: %v", err)
	}

	if outcome.Previous.Health != 50 || outcome.PetState.Health != 55 {
		t.Errorf("Expected health 50 -> 55, got %d -> %d", outcome.Previous.Health, outcome.PetState.Health)
	}
	if outcome.PetState.Version != created.PetState.Version+1 {
		t.Errorf("Expected version bump, got %d", outcome.PetState.Version)
	}

	pet, err := service.GetPetState(ctx, created.User.Id)
	if err != nil {
		t.Fatalf("GetPetState failed: %v", err)
	}
	if !pet.TotalSaved.Equal(decimal.NewFromInt(50)) || pet.StreakDays != 1 {
		t.Errorf("Unexpected stored pet %+v", pet)
	}

	goal, err := service.GetCurrentGoal(ctx, created.User.Id)
	if err != nil {
		t.Fatalf("GetCurrentGoal failed: %v", err)
	}
	if !goal.LastDepositDate.Equal(when) {
		t.Errorf("Expected schedule advanced to %v, got %v", when, goal.LastDepositDate)
	}

	history, err := service.GetDepositHistory(ctx, created.User.Id, 10, 0)
	if err != nil {
		t.Fatalf("GetDepositHistory failed: %v", err)
	}
	if len(history) != 1 || history[0].TransactionType != models.TransactionDeposit || !history[0].OnSchedule {
		t.Errorf("Unexpected history %+v", history)
	}
}

func TestProcessPetEvent_WithdrawalLeavesGoal(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	created := createTestGoal(t, service, "GABC", testNow)

	_, err := service.ProcessPetEvent(ctx, store.PetEventParams{
		WalletAddress:   "GABC",
		TransactionType: models.TransactionWithdrawal,
		Amount:          decimal.NewFromInt(20),
		Now:             testNow.Add(time.Hour),
		Transition: func(current models.PetState, goal *models.Goal) (models.PetState, error) {
			next := current
			next.Health -= 30
			next.StreakDays = 0
			return next, nil
		},
	})
	if err != nil {
		t.Fatalf("ProcessPetEvent failed: %v", err)
	}

	goal, err := service.GetCurrentGoal(ctx, created.User.Id)
	if err != nil {
		t.Fatalf("GetCurrentGoal failed: %v", err)
	}
	if !goal.LastDepositDate.Equal(testNow) {
		t.Errorf("Expected withdrawal to leave schedule alone, got %v", goal.LastDepositDate)
	}
}

func TestProcessPetEvent_UnknownWallet(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := service.ProcessPetEvent(context.Background(), store.PetEventParams{
		WalletAddress:   "GUNKNOWN",
		TransactionType: models.TransactionDeposit,
		Amount:          decimal.NewFromInt(10),
		Now:             testNow,
		Transition:      feed(10),
	})
	if !errors.Is(err, store.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestProcessPetEvent_TransitionErrorRollsBack(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	created := createTestGoal(t, service, "GABC", testNow)
	boom := errors.New("boom")

	_, err := service.ProcessPetEvent(ctx, store.PetEventParams{
		WalletAddress:   "GABC",
		TransactionType: models.TransactionDeposit,
		Amount:          decimal.NewFromInt(10),
		AdvanceSchedule: true,
		Now:             testNow.Add(time.Hour),
		Transition: func(models.PetState, *models.Goal) (models.PetState, error) {
			return models.PetState{}, boom
		},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected transition error, got %v", err)
	}

	history, err := service.GetDepositHistory(ctx, created.User.Id, 10, 0)
	if err != nil {
		t.Fatalf("GetDepositHistory failed: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("Expected no history after rollback, got %d entries", len(history))
	}
}

func TestProcessPetEvent_MissingTransition(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := service.ProcessPetEvent(context.Background(), store.PetEventParams{WalletAddress: "GABC"})
	if err == nil {
		t.Error("Expected error without a transition")
	}
}

func TestGetPetState_NotFound(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := service.GetPetState(context.Background(), "missing")
	if !errors.Is(err, store.ErrPetNotFound) {
		t.Errorf("Expected ErrPetNotFound, got %v", err)
	}
}

func TestGetLeaderboard_Ordering(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	deposits := map[string]int64{"GA": 100, "GB": 1500, "GC": 20}
	for wallet, amount := range deposits {
		createTestGoal(t, service, wallet, testNow)
		_, err := service.ProcessPetEvent(ctx, store.PetEventParams{
			WalletAddress:   wallet,
			TransactionType: models.TransactionDeposit,
			Amount:          decimal.NewFromInt(amount),
			Now:             testNow,
			Transition:      feed(amount),
		})
		if err != nil {
			t.Fatalf("ProcessPetEvent failed: %v", err)
		}
	}

	board, err := service.GetLeaderboard(ctx, 2)
	if err != nil {
		t.Fatalf("GetLeaderboard failed: %v", err)
	}
	if len(board) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(board))
	}
	if board[0].WalletAddress != "GB" || board[1].WalletAddress != "GA" {
		t.Errorf("Unexpected order %s, %s", board[0].WalletAddress, board[1].WalletAddress)
	}
	if !board[0].TotalSaved.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("Expected top total 1500, got %s", board[0].TotalSaved)
	}
}
