package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"lawdesk-erp/internal/adapters/persistence/models"
)

func newTestRewardService() (*RewardService, *fakeRewardRepo) {
	repo := newFakeRewardRepo()
	return NewRewardService(repo), repo
}

func openFund(t *testing.T, svc *RewardService, amount float64) *models.Reward {
	t.Helper()
	reward, err := svc.Create(context.Background(), CreateFundInput{
		Name:          "Q3 Bonus Pool",
		InitialAmount: amount,
		StartDate:     time.Now(),
	}, 1)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return reward
}

func TestCreateFundValidation(t *testing.T) {
	svc, _ := newTestRewardService()
	ctx := context.Background()
	start := time.Now()
	badEnd := start.AddDate(0, 0, -3)

	tests := []struct {
		name    string
		input   CreateFundInput
		wantErr error
	}{
		{
			name:    "missing name",
			input:   CreateFundInput{InitialAmount: 100, StartDate: start},
			wantErr: ErrFundNameRequired,
		},
		{
			name:    "zero amount",
			input:   CreateFundInput{Name: "Pool", InitialAmount: 0, StartDate: start},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			input:   CreateFundInput{Name: "Pool", InitialAmount: -50, StartDate: start},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "end before start",
			input:   CreateFundInput{Name: "Pool", InitialAmount: 100, StartDate: start, EndDate: &badEnd},
			wantErr: ErrInvalidDateRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tt.input, 1); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateFundLogsOpeningDeposit(t *testing.T) {
	svc, repo := newTestRewardService()
	reward := openFund(t, svc, 500)

	entries, err := repo.ListTransactions(context.Background(), reward.ID)
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("ledger entries = %d, want 1", len(entries))
	}
	if entries[0].TxType != models.RewardTxDeposit || entries[0].Amount != 500 {
		t.Fatalf("opening entry = %+v, want DEPOSIT of 500", entries[0])
	}
}

func TestDeduct(t *testing.T) {
	svc, repo := newTestRewardService()
	ctx := context.Background()
	reward := openFund(t, svc, 100)

	updated, err := svc.Deduct(ctx, reward.ID, 60, "team dinner", 1)
	if err != nil {
		t.Fatalf("Deduct() error = %v", err)
	}
	if updated.CurrentAmount != 40 {
		t.Fatalf("balance after deduct = %.2f, want 40", updated.CurrentAmount)
	}

	// Balance can never go negative: the second 60 is refused and the
	// balance stays at 40.
	if _, err := svc.Deduct(ctx, reward.ID, 60, "second dinner", 1); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("Deduct() over balance error = %v, want ErrInsufficientBalance", err)
	}

	current, err := svc.Get(ctx, reward.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if current.CurrentAmount != 40 {
		t.Fatalf("balance after refused deduct = %.2f, want 40", current.CurrentAmount)
	}

	entries, _ := repo.ListTransactions(ctx, reward.ID)
	if len(entries) != 2 { // opening deposit + one deduction
		t.Fatalf("ledger entries = %d, want 2", len(entries))
	}
}

func TestDeductValidation(t *testing.T) {
	svc, _ := newTestRewardService()
	ctx := context.Background()
	reward := openFund(t, svc, 100)

	if _, err := svc.Deduct(ctx, reward.ID, 0, "", 1); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("Deduct(0) error = %v, want ErrInvalidAmount", err)
	}
	if _, err := svc.Deduct(ctx, reward.ID, -5, "", 1); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("Deduct(-5) error = %v, want ErrInvalidAmount", err)
	}
	if _, err := svc.Deduct(ctx, 404, 10, "", 1); !errors.Is(err, ErrFundNotFound) {
		t.Fatalf("Deduct() on unknown fund error = %v, want ErrFundNotFound", err)
	}
}

func TestDeductFromClosedFund(t *testing.T) {
	svc, _ := newTestRewardService()
	ctx := context.Background()
	reward := openFund(t, svc, 100)

	if _, err := svc.CloseOut(ctx, reward.ID); err != nil {
		t.Fatalf("CloseOut() error = %v", err)
	}

	if _, err := svc.Deduct(ctx, reward.ID, 10, "", 1); !errors.Is(err, ErrFundNotActive) {
		t.Fatalf("Deduct() on closed fund error = %v, want ErrFundNotActive", err)
	}
}

func TestCloseOutIsTerminal(t *testing.T) {
	svc, _ := newTestRewardService()
	ctx := context.Background()
	reward := openFund(t, svc, 100)

	closed, err := svc.CloseOut(ctx, reward.ID)
	if err != nil {
		t.Fatalf("CloseOut() error = %v", err)
	}
	if closed.Status != models.RewardClosed {
		t.Fatalf("CloseOut() status = %s, want CLOSED", closed.Status)
	}
	if closed.CashedOutAt == nil {
		t.Fatal("CloseOut() left CashedOutAt unset")
	}

	if _, err := svc.CloseOut(ctx, reward.ID); !errors.Is(err, ErrFundNotActive) {
		t.Fatalf("second CloseOut() error = %v, want ErrFundNotActive", err)
	}
}

func TestUpdateClosedFundRejected(t *testing.T) {
	svc, _ := newTestRewardService()
	ctx := context.Background()
	reward := openFund(t, svc, 100)

	if _, err := svc.CloseOut(ctx, reward.ID); err != nil {
		t.Fatalf("CloseOut() error = %v", err)
	}

	name := "Renamed Pool"
	if _, err := svc.Update(ctx, reward.ID, UpdateFundInput{Name: &name}); !errors.Is(err, ErrFundNotActive) {
		t.Fatalf("Update() on closed fund error = %v, want ErrFundNotActive", err)
	}
}

func TestStats(t *testing.T) {
	svc, _ := newTestRewardService()
	ctx := context.Background()

	openFund(t, svc, 100)
	second := openFund(t, svc, 250)
	closedOut := openFund(t, svc, 75)
	if _, err := svc.CloseOut(ctx, closedOut.ID); err != nil {
		t.Fatalf("CloseOut() error = %v", err)
	}
	if _, err := svc.Deduct(ctx, second.ID, 50, "", 1); err != nil {
		t.Fatalf("Deduct() error = %v", err)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.ActiveFunds != 2 {
		t.Fatalf("ActiveFunds = %d, want 2", stats.ActiveFunds)
	}
	if stats.TotalAvailable != 300 {
		t.Fatalf("TotalAvailable = %.2f, want 300", stats.TotalAvailable)
	}
}
