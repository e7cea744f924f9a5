package database

import (
	"context"
	"testing"
	"time"

	"stellar-pets-go/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestGetDepositHistory_Paging(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	created := createTestGoal(t, service, "GABC", testNow)

	amounts := []string{"10", "20.5", "0.1"}
	for i, amount := range amounts {
		err := service.RecordDeposit(ctx, models.DepositRecord{
			Id:              uuid.New().String(),
			UserId:          created.User.Id,
			Amount:          decimal.RequireFromString(amount),
			TransactionType: models.TransactionDeposit,
			OnSchedule:      i%2 == 0,
			CreatedAt:       testNow.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("RecordDeposit failed: %v", err)
		}
	}

	page, err := service.GetDepositHistory(ctx, created.User.Id, 2, 0)
	if err != nil {
		t.Fatalf("GetDepositHistory failed: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(page))
	}
	if page[0].Amount.String() != "0.1" || page[1].Amount.String() != "20.5" {
		t.Errorf("Expected newest first, got %s, %s", page[0].Amount, page[1].Amount)
	}
	if !page[0].OnSchedule || page[1].OnSchedule {
		t.Errorf("Unexpected on-schedule flags %v, %v", page[0].OnSchedule, page[1].OnSchedule)
	}

	rest, err := service.GetDepositHistory(ctx, created.User.Id, 2, 2)
	if err != nil {
		t.Fatalf("GetDepositHistory failed: %v", err)
	}
	if len(rest) != 1 || rest[0].Amount.String() != "10" {
		t.Errorf("Unexpected second page %+v", rest)
	}
}

func TestGetDepositHistory_Empty(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	history, err := service.GetDepositHistory(context.Background(), "nobody", 20, 0)
	if err != nil {
		t.Fatalf("GetDepositHistory failed: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("Expected no entries, got %d", len(history))
	}
}
