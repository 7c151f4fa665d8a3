// Package store holds the persistence ports for donations, campaign
// settings and uploaded assets, with a Mongo-backed implementation for
// the hosted deployment and an in-memory one for local runs and tests.
package store

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"

	models "github.com/greenroots/donation-tracker-go/models"
)

// ErrNotFound is returned when an update targets an id with no record.
var ErrNotFound = errors.New("record not found")

// DonationStore is the donation table.
type DonationStore interface {
	Insert(ctx context.Context, d models.Donation) error
	List(ctx context.Context) ([]models.Donation, error)
	// SetStatus moves a donation to APPROVED or REJECTED. Returns
	// ErrNotFound when no donation has the given id.
	SetStatus(ctx context.Context, id, status string) error
}

// CampaignStore holds the singleton campaign settings row.
type CampaignStore interface {
	Get(ctx context.Context) (models.Campaign, error)
	// Upsert merges the patch into the stored settings, creating the row
	// on first write. Nil patch fields leave stored values untouched.
	Upsert(ctx context.Context, patch models.CampaignPatch) error
}

// FileStore stores uploaded binaries and hands back a public URL.
type FileStore interface {
	// Upload stores content under folder/name. When overwrite is set an
	// existing object with the same name is replaced and its URL reused.
	Upload(ctx context.Context, folder, name string, content io.Reader, contentType string, overwrite bool) (string, error)
	Delete(ctx context.Context, publicURL string) error
}

// NewDonationID mints ids like DON-9F2C41A7, the format donors see on
// their receipts.
func NewDonationID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "DON-" + strings.ToUpper(raw[:8])
}
