package store

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	models "github.com/greenroots/donation-tracker-go/models"
)

// swapped out in tests for deterministic updated_at values
var nowFn = time.Now

// LocalStore is the in-memory fallback backend. It mirrors the hosted
// layout closely enough for local runs and tests, with one deliberate
// difference: it maintains the campaign's trees_approved counter by hand
// instead of deriving it, the way the pre-hosted prototype did.
type LocalStore struct {
	mu        sync.RWMutex
	order     []string // insertion order of donation ids
	donations map[string]models.Donation
	campaign  models.Campaign
	hasRow    bool
	files     map[string]string // folder/name -> data URI
}

func NewLocalStore() *LocalStore {
	return &LocalStore{
		donations: make(map[string]models.Donation),
		files:     make(map[string]string),
	}
}

// --- DonationStore ---

func (s *LocalStore) Insert(ctx context.Context, d models.Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.donations[d.ID]; exists {
		return fmt.Errorf("donation %s already exists", d.ID)
	}
	s.donations[d.ID] = d
	s.order = append(s.order, d.ID)
	return nil
}

func (s *LocalStore) List(ctx context.Context) ([]models.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Donation, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.donations[id])
	}
	// newest first, matching the hosted query's sort
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *LocalStore) SetStatus(ctx context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.donations[id]
	if !ok {
		return ErrNotFound
	}

	// Counter maintenance: increment once on entering APPROVED, decrement
	// on leaving it. Re-asserting the same status must not move it again.
	if d.Status != models.StatusApproved && status == models.StatusApproved {
		s.campaign.TreesApproved += d.TreeQuantity
	} else if d.Status == models.StatusApproved && status != models.StatusApproved {
		s.campaign.TreesApproved -= d.TreeQuantity
		if s.campaign.TreesApproved < 0 {
			s.campaign.TreesApproved = 0
		}
	}

	d.Status = status
	d.UpdatedAt = nowFn()
	s.donations[id] = d
	return nil
}

// RecomputeApproved re-derives the counter from the donation list. The
// counter is a cache of this value; a mismatch means it has drifted.
func (s *LocalStore) RecomputeApproved() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, d := range s.donations {
		if d.Status == models.StatusApproved {
			total += d.TreeQuantity
		}
	}
	return total
}

// --- CampaignStore ---

func (s *LocalStore) Get(ctx context.Context) (models.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasRow {
		return models.Campaign{}, ErrNotFound
	}
	return s.campaign, nil
}

func (s *LocalStore) Upsert(ctx context.Context, patch models.CampaignPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.campaign.ID = models.CampaignSettingsID
	s.hasRow = true
	if patch.Title != nil {
		s.campaign.Title = *patch.Title
	}
	if patch.Description != nil {
		s.campaign.Description = *patch.Description
	}
	if patch.TreePrice != nil {
		s.campaign.TreePrice = *patch.TreePrice
	}
	if patch.GoalTrees != nil {
		s.campaign.GoalTrees = *patch.GoalTrees
	}
	if patch.QRImageURL != nil {
		s.campaign.QRImageURL = *patch.QRImageURL
	}
	return nil
}

// --- FileStore ---

// Upload keeps the blob as a data URI, which is what the prototype
// stored in place of public storage URLs.
func (s *LocalStore) Upload(ctx context.Context, folder, name string, content io.Reader, contentType string, overwrite bool) (string, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	key := folder + "/" + name
	uri := "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.files[key]; exists && !overwrite {
		return "", fmt.Errorf("object %s already exists", key)
	}
	s.files[key] = uri
	return uri, nil
}

func (s *LocalStore) Delete(ctx context.Context, publicURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, uri := range s.files {
		if uri == publicURL {
			delete(s.files, key)
			return nil
		}
	}
	return ErrNotFound
}
