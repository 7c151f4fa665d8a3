package stats

import (
	"sort"

	models "github.com/greenroots/donation-tracker-go/models"
)

// DefaultRecentLimit is how many recent donors the landing page shows.
const DefaultRecentLimit = 5

// Compute folds the full donation list into display stats. Approved
// donations drive the totals; pending quantity is reported separately so
// the progress bar can show "in verification" trees. Rejected donations
// count toward nothing.
func Compute(donations []models.Donation, goalTrees int) models.Stats {
	s := models.Stats{GoalTrees: goalTrees}
	for _, d := range donations {
		switch d.Status {
		case models.StatusApproved:
			s.TotalTrees += d.TreeQuantity
			s.TotalAmount += d.Amount
		case models.StatusPending:
			s.PendingTrees += d.TreeQuantity
		}
	}
	return s
}

// RecentDonors returns at most limit approved donations, newest first.
// A negative limit means no truncation. The sort is stable so equal
// timestamps keep their input order.
func RecentDonors(donations []models.Donation, limit int) []models.Donation {
	capHint := limit
	if capHint < 0 {
		capHint = 0
	}
	recent := make([]models.Donation, 0, capHint)
	for _, d := range donations {
		if d.Status == models.StatusApproved {
			recent = append(recent, d)
		}
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if limit >= 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}

// Progress returns approved trees as a fraction of the goal, clamped to
// [0, 1]. A non-positive goal reads as zero progress.
func Progress(totalTrees, goalTrees int) float64 {
	if goalTrees <= 0 {
		return 0
	}
	p := float64(totalTrees) / float64(goalTrees)
	if p > 1 {
		return 1
	}
	return p
}
