package api

import (
	"context"
	"sync"
	"testing"
	"time"

	"stellar-pets-go/internal/models"
	"stellar-pets-go/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDeposit_Scenarios(t *testing.T) {
	cases := []struct {
		name    string
		start   [3]int // health, happiness, streak
		saved   string
		req     models.DepositRequest
		want    models.PetSnapshot
		changes models.StatChanges
		wantMsg string
	}{
		{
			name:    "on time and sufficient",
			start:   [3]int{90, 90, 3},
			saved:   "200",
			req:     models.DepositRequest{DepositAmount: dec("50"), ScheduledAmount: dec("50"), OnTime: true},
			want:    models.PetSnapshot{Health: 95, Happiness: 100, StreakDays: 4, TotalSaved: 250, GrowthLevel: 1},
			changes: models.StatChanges{HealthChange: 5, HappinessChange: 10},
			wantMsg: "Pet is happy!",
		},
		{
			name:    "late clamps at zero",
			start:   [3]int{8, 10, 5},
			saved:   "300",
			req:     models.DepositRequest{DepositAmount: dec("20"), ScheduledAmount: dec("50"), OnTime: false},
			want:    models.PetSnapshot{Health: 0, Happiness: 0, StreakDays: 0, TotalSaved: 320, GrowthLevel: 1},
			changes: models.StatChanges{HealthChange: -10, HappinessChange: -15},
			wantMsg: "Pet is sad!",
		},
		{
			name:    "on time but short",
			start:   [3]int{50, 50, 2},
			saved:   "10",
			req:     models.DepositRequest{DepositAmount: dec("20"), ScheduledAmount: dec("50"), OnTime: true},
			want:    models.PetSnapshot{Health: 52, Happiness: 55, StreakDays: 2, TotalSaved: 30, GrowthLevel: 0},
			changes: models.StatChanges{HealthChange: 2, HappinessChange: 5},
			wantMsg: "Pet is happy!",
		},
		{
			name:    "health capped at 100",
			start:   [3]int{98, 50, 0},
			saved:   "0",
			req:     models.DepositRequest{DepositAmount: dec("50"), ScheduledAmount: dec("50"), OnTime: true},
			want:    models.PetSnapshot{Health: 100, Happiness: 60, StreakDays: 1, TotalSaved: 50, GrowthLevel: 0},
			changes: models.StatChanges{HealthChange: 5, HappinessChange: 10},
			wantMsg: "Pet is happy!",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.createGoal(t, "GABC")
			env.setPet(t, "GABC", tc.start[0], tc.start[1], tc.start[2], tc.saved)

			tc.req.WalletAddress = "GABC"
			result, err := env.svc.ApplyDeposit(context.Background(), tc.req)
			require.NoError(t, err)

			assert.True(t, result.Success)
			assert.Equal(t, tc.want, result.NewState)
			assert.Equal(t, tc.changes, result.Changes)
			assert.Equal(t, tc.wantMsg, result.Message)
		})
	}
}

func TestApplyDeposit_DefaultsScheduledAmountToGoal(t *testing.T) {
	env := newTestEnv(t)
	env.createGoal(t, "GABC")
	ctx := context.Background()

	// goal expects 50 per week
	result, err := env.svc.ApplyDeposit(ctx, models.DepositRequest{WalletAddress: "GABC", DepositAmount: dec("50"), OnTime: true})
	require.NoError(t, err)
	assert.Equal(t, 1, result.NewState.StreakDays)

	result, err = env.svc.ApplyDeposit(ctx, models.DepositRequest{WalletAddress: "GABC", DepositAmount: dec("49.99"), OnTime: true})
	require.NoError(t, err)
	assert.Equal(t, 1, result.NewState.StreakDays)
	assert.Equal(t, models.StatChanges{HealthChange: 2, HappinessChange: 5}, result.Changes)
}

func TestApplyDeposit_AdvancesScheduleFromNow(t *testing.T) {
	env := newTestEnv(t)
	created := env.createGoal(t, "GABC")
	ctx := context.Background()

	// ten days past due
	env.clock = testNow.Add(17 * 24 * time.Hour)
	_, err := env.svc.ApplyDeposit(ctx, models.DepositRequest{WalletAddress: "GABC", DepositAmount: dec("50"), OnTime: false})
	require.NoError(t, err)

	goal, err := env.svc.store.GetCurrentGoal(ctx, created.UserId)
	require.NoError(t, err)
	assert.True(t, goal.LastDepositDate.Equal(env.clock))
	assert.True(t, goal.NextDepositDue.Equal(env.clock.Add(7*24*time.Hour)))
}

func TestApplyDeposit_ReplayCountsTwice(t *testing.T) {
	env := newTestEnv(t)
	env.createGoal(t, "GABC")
	ctx := context.Background()
	req := models.DepositRequest{WalletAddress: "GABC", DepositAmount: dec("50"), ScheduledAmount: dec("50"), OnTime: true}

	_, err := env.svc.ApplyDeposit(ctx, req)
	require.NoError(t, err)
	result, err := env.svc.ApplyDeposit(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, 2, result.NewState.StreakDays)
	assert.Equal(t, 100.0, result.NewState.TotalSaved)

	history, err := env.svc.GetDepositHistory(ctx, "GABC", 0, 0)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestApplyDeposit_Evolution(t *testing.T) {
	env := newTestEnv(t)
	env.createGoal(t, "GABC")
	ctx := context.Background()

	result, err := env.svc.ApplyDeposit(ctx, models.DepositRequest{WalletAddress: "GABC", DepositAmount: dec("600"), OnTime: true})
	require.NoError(t, err)
	assert.Equal(t, 2, result.NewState.GrowthLevel)

	// withdrawing below the threshold keeps the stage
	withdrawal, err := env.svc.ApplyWithdrawal(ctx, models.WithdrawalRequest{WalletAddress: "GABC", Amount: dec("550")})
	require.NoError(t, err)
	assert.Equal(t, 2, withdrawal.NewState.GrowthLevel)
	assert.Equal(t, 50.0, withdrawal.NewState.TotalSaved)
}

func TestApplyDeposit_Validation(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name string
		req  models.DepositRequest
		want error
	}{
		{"missing wallet", models.DepositRequest{DepositAmount: dec("1")}, ErrMissingField},
		{"missing amount", models.DepositRequest{WalletAddress: "GABC"}, ErrMissingField},
		{"negative amount", models.DepositRequest{WalletAddress: "GABC", DepositAmount: dec("-1")}, ErrInvalidInput},
		{"negative schedule", models.DepositRequest{WalletAddress: "GABC", DepositAmount: dec("1"), ScheduledAmount: dec("-1")}, ErrInvalidInput},
		{"unknown wallet", models.DepositRequest{WalletAddress: "GNOPE", DepositAmount: dec("1")}, store.ErrUserNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.svc.ApplyDeposit(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestApplyDeposit_ZeroAmountAllowed(t *testing.T) {
	env := newTestEnv(t)
	env.createGoal(t, "GABC")

	result, err := env.svc.ApplyDeposit(context.Background(), models.DepositRequest{
		WalletAddress: "GABC",
		DepositAmount: dec("0"),
		OnTime:        true,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatChanges{HealthChange: 2, HappinessChange: 5}, result.Changes)
}

func TestApplyWithdrawal(t *testing.T) {
	env := newTestEnv(t)
	created := env.createGoal(t, "GABC")
	env.setPet(t, "GABC", 5, 60, 7, "80")
	ctx := context.Background()

	env.clock = testNow.Add(48 * time.Hour)
	result, err := env.svc.ApplyWithdrawal(ctx, models.WithdrawalRequest{WalletAddress: "GABC", Amount: dec("100")})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "Withdrawal successful, but pet is very sad!", result.Message)
	assert.Equal(t, models.StatChanges{HealthChange: -30, HappinessChange: -40}, result.Penalty)
	assert.Equal(t, models.PetSnapshot{Health: 0, Happiness: 20, StreakDays: 0, TotalSaved: 0}, result.NewState)
	assert.Equal(t, "100", result.WithdrawnAmount.String())

	goal, err := env.svc.store.GetCurrentGoal(ctx, created.UserId)
	require.NoError(t, err)
	assert.True(t, goal.LastDepositDate.Equal(testNow), "withdrawal must not move the schedule")

	history, err := env.svc.GetDepositHistory(ctx, "GABC", 10, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.TransactionWithdrawal, history[0].Type)
	assert.False(t, history[0].OnSchedule)
}

func TestApplyWithdrawal_Validation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.ApplyWithdrawal(context.Background(), models.WithdrawalRequest{Amount: dec("1")})
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = env.svc.ApplyWithdrawal(context.Background(), models.WithdrawalRequest{WalletAddress: "GABC"})
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = env.svc.ApplyWithdrawal(context.Background(), models.WithdrawalRequest{WalletAddress: "GABC", Amount: dec("0")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestConcurrentDeposits_NoLostUpdates(t *testing.T) {
	env := newTestEnv(t)
	env.createGoal(t, "GABC")
	ctx := context.Background()

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.svc.ApplyDeposit(ctx, models.DepositRequest{
				WalletAddress:   "GABC",
				DepositAmount:   dec("1"),
				ScheduledAmount: dec("1"),
				OnTime:          true,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	view, err := env.svc.GetPetState(ctx, "GABC")
	require.NoError(t, err)
	assert.Equal(t, workers, view.StreakDays)
	assert.Equal(t, float64(workers), view.TotalSaved)
	assert.Equal(t, 100, view.Health)
}
