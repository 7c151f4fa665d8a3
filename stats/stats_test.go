package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "github.com/greenroots/donation-tracker-go/models"
)

func donation(id string, qty, amount int, status string, created time.Time) models.Donation {
	return models.Donation{
		ID:           id,
		TreeQuantity: qty,
		Amount:       amount,
		Status:       status,
		CreatedAt:    created,
	}
}

func TestCompute(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		donations []models.Donation
		goal      int
		want      models.Stats
	}{
		{
			name: "empty list",
			goal: 1000,
			want: models.Stats{GoalTrees: 1000},
		},
		{
			name: "approved only drive totals",
			donations: []models.Donation{
				donation("DON-1", 5, 50, models.StatusApproved, base),
				donation("DON-2", 3, 30, models.StatusApproved, base),
			},
			goal: 100,
			want: models.Stats{TotalTrees: 8, TotalAmount: 80, GoalTrees: 100},
		},
		{
			name: "pending and rejected excluded from totals",
			donations: []models.Donation{
				donation("DON-1", 5, 50, models.StatusApproved, base),
				donation("DON-2", 7, 70, models.StatusPending, base),
				donation("DON-3", 9, 90, models.StatusRejected, base),
			},
			goal: 100,
			want: models.Stats{TotalTrees: 5, TotalAmount: 50, PendingTrees: 7, GoalTrees: 100},
		},
		{
			name: "amount is the frozen amount not qty times current price",
			donations: []models.Donation{
				// recorded when tree_price was 10; current price is irrelevant here
				donation("DON-1", 5, 50, models.StatusApproved, base),
			},
			goal: 100,
			want: models.Stats{TotalTrees: 5, TotalAmount: 50, GoalTrees: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.donations, tt.goal)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeOrderIndependent(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a := donation("DON-1", 5, 50, models.StatusApproved, base)
	b := donation("DON-2", 3, 30, models.StatusApproved, base)
	c := donation("DON-3", 7, 70, models.StatusPending, base)

	forward := Compute([]models.Donation{a, b, c}, 100)
	backward := Compute([]models.Donation{c, b, a}, 100)
	assert.Equal(t, forward, backward)
}

func TestRecentDonors(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	donations := []models.Donation{
		donation("DON-old", 1, 10, models.StatusApproved, base.Add(-3*time.Hour)),
		donation("DON-pending", 2, 20, models.StatusPending, base.Add(time.Hour)),
		donation("DON-new", 3, 30, models.StatusApproved, base.Add(2*time.Hour)),
		donation("DON-rejected", 4, 40, models.StatusRejected, base.Add(3*time.Hour)),
		donation("DON-mid", 5, 50, models.StatusApproved, base),
	}

	got := RecentDonors(donations, 5)
	require.Len(t, got, 3)
	assert.Equal(t, "DON-new", got[0].ID)
	assert.Equal(t, "DON-mid", got[1].ID)
	assert.Equal(t, "DON-old", got[2].ID)
	for _, d := range got {
		assert.Equal(t, models.StatusApproved, d.Status)
	}
}

func TestRecentDonorsLimit(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var donations []models.Donation
	for i := 0; i < 8; i++ {
		donations = append(donations, donation("DON-"+string(rune('A'+i)), 1, 10, models.StatusApproved, base.Add(time.Duration(i)*time.Minute)))
	}

	got := RecentDonors(donations, 5)
	require.Len(t, got, 5)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].CreatedAt.After(got[i-1].CreatedAt), "must be non-increasing by created_at")
	}
}

func TestRecentDonorsStableTieBreak(t *testing.T) {
	same := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	donations := []models.Donation{
		donation("DON-first", 1, 10, models.StatusApproved, same),
		donation("DON-second", 2, 20, models.StatusApproved, same),
		donation("DON-third", 3, 30, models.StatusApproved, same),
	}

	got := RecentDonors(donations, 5)
	require.Len(t, got, 3)
	assert.Equal(t, "DON-first", got[0].ID)
	assert.Equal(t, "DON-second", got[1].ID)
	assert.Equal(t, "DON-third", got[2].ID)
}

func TestRecentDonorsNegativeLimit(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	donations := []models.Donation{
		donation("DON-1", 1, 10, models.StatusApproved, base),
		donation("DON-2", 2, 20, models.StatusApproved, base.Add(time.Hour)),
	}

	var got []models.Donation
	require.NotPanics(t, func() { got = RecentDonors(donations, -1) })
	assert.Len(t, got, 2, "negative limit means no truncation")
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 0.0, Progress(50, 0))
	assert.Equal(t, 0.0, Progress(50, -10))
	assert.Equal(t, 0.5, Progress(50, 100))
	assert.Equal(t, 1.0, Progress(150, 100))
}
