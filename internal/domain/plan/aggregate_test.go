package plan

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/payment-es/internal/domain/interval"
	"github.com/example/payment-es/internal/domain/money"
)

func usd(amount int64) money.Money { return money.New(amount, "USD") }

func monthlyPlan(t *testing.T) *Plan {
	t.Helper()
	p, err := Create(CreateCommand{
		ID:          "plan-1",
		Name:        "Pro",
		Money:       usd(2900),
		Interval:    interval.MustParse("P1M"),
		Description: "Monthly pro tier",
	})
	require.NoError(t, err)
	return p
}

// ============================================
// Create Tests
// ============================================

func TestCreate_Valid(t *testing.T) {
	p := monthlyPlan(t)

	assert.Equal(t, "Pro", p.Name)
	assert.Equal(t, usd(2900), p.Money)
	assert.Equal(t, "P1M", p.Interval.String())
	assert.False(t, p.Deleted)
	assert.Equal(t, 1, p.Version)
}

func TestCreate_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		cmd     CreateCommand
		wantErr error
	}{
		{
			"missing name",
			CreateCommand{ID: "plan-1", Money: usd(2900), Interval: interval.MustParse("P1M")},
			ErrInvalidPlan,
		},
		{
			"zero amount",
			CreateCommand{ID: "plan-1", Name: "Pro", Money: usd(0), Interval: interval.MustParse("P1M")},
			money.ErrInvalidAmount,
		},
		{
			"missing interval",
			CreateCommand{ID: "plan-1", Name: "Pro", Money: usd(2900)},
			ErrInvalidPlan,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Create(tt.cmd)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, p)
		})
	}
}

// ============================================
// Update Tests
// ============================================

func TestUpdate_CoalescesPatch(t *testing.T) {
	p := monthlyPlan(t)
	newMoney := usd(3900)
	yearly := interval.MustParse("P1Y")

	err := p.Update(Patch{Money: &newMoney, Interval: &yearly})

	require.NoError(t, err)
	assert.Equal(t, usd(3900), p.Money)
	assert.Equal(t, "P1Y", p.Interval.String())
	// Untouched fields keep their stored value
	assert.Equal(t, "Pro", p.Name)
	assert.Equal(t, "Monthly pro tier", p.Description)
}

func TestUpdate_InvalidPatchValues(t *testing.T) {
	p := monthlyPlan(t)
	zero := usd(0)

	assert.ErrorIs(t, p.Update(Patch{Money: &zero}), money.ErrInvalidAmount)
	assert.ErrorIs(t, p.Update(Patch{Name: lo.ToPtr("")}), ErrInvalidPlan)
	assert.Equal(t, usd(2900), p.Money)
	assert.Equal(t, "Pro", p.Name)
}

func TestUpdate_AfterDelete(t *testing.T) {
	p := monthlyPlan(t)
	require.NoError(t, p.Delete())

	assert.ErrorIs(t, p.Update(Patch{Name: lo.ToPtr("Plus")}), ErrDeleted)
}

// ============================================
// Delete Tests
// ============================================

func TestDelete(t *testing.T) {
	p := monthlyPlan(t)

	require.NoError(t, p.Delete())

	assert.True(t, p.Deleted)
	assert.ErrorIs(t, p.Delete(), ErrDeleted)
}
