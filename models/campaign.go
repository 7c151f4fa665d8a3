package models

// CampaignSettingsID is the fixed id of the singleton settings row.
// Everything reads and upserts this one document.
const CampaignSettingsID = 1

type Campaign struct {
	ID            int    `bson:"_id" json:"id"`
	Title         string `bson:"title" json:"title"`
	Description   string `bson:"description,omitempty" json:"description,omitempty"`
	TreePrice     int    `bson:"tree_price" json:"tree_price"`
	GoalTrees     int    `bson:"goal_trees" json:"goal_trees"`
	TreesApproved int    `bson:"trees_approved,omitempty" json:"trees_approved,omitempty"` // local backend only; hosted derives it
	QRImageURL    string `bson:"qr_image_url,omitempty" json:"qr_image_url,omitempty"`
}

// CampaignPatch carries a partial settings update. Nil fields leave the
// stored value unchanged.
type CampaignPatch struct {
	Title       *string
	Description *string
	TreePrice   *int
	GoalTrees   *int
	QRImageURL  *string
}

// Defaults used until the first settings write creates the singleton row.
const (
	DefaultTreePrice = 10
	DefaultGoalTrees = 1000
)

// DefaultCampaign is what reads see before an admin has saved settings.
func DefaultCampaign() Campaign {
	return Campaign{
		ID:        CampaignSettingsID,
		Title:     "Sponsor a Tree",
		TreePrice: DefaultTreePrice,
		GoalTrees: DefaultGoalTrees,
	}
}

// Stats is derived from the donation list on every read, never persisted.
type Stats struct {
	TotalTrees   int `json:"totalTrees"`
	TotalAmount  int `json:"totalAmount"`
	PendingTrees int `json:"pendingTrees"`
	GoalTrees    int `json:"goalTrees"`
}

// CampaignData is the landing-page payload: settings, derived stats and
// the donor wall.
type CampaignData struct {
	Campaign     Campaign   `json:"campaign"`
	Stats        Stats      `json:"stats"`
	RecentDonors []Donation `json:"recentDonors"`
}
