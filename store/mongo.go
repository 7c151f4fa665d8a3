package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	models "github.com/greenroots/donation-tracker-go/models"
)

// MongoStore backs the hosted deployment. Donations live in the
// "donations" collection, the settings singleton in "campaign_settings".
type MongoStore struct {
	client *mongo.Client
	dbName string
}

func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	return &MongoStore{client: client, dbName: dbName}
}

func (s *MongoStore) donations() *mongo.Collection {
	return s.client.Database(s.dbName).Collection("donations")
}

func (s *MongoStore) settings() *mongo.Collection {
	return s.client.Database(s.dbName).Collection("campaign_settings")
}

// --- DonationStore ---

func (s *MongoStore) Insert(ctx context.Context, d models.Donation) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := s.donations().InsertOne(ctx, d); err != nil {
		return fmt.Errorf("insert donation: %w", err)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]models.Donation, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.donations().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("fetch donations: %w", err)
	}

	var donations []models.Donation
	if err := cursor.All(ctx, &donations); err != nil {
		return nil, fmt.Errorf("decode donations: %w", err)
	}
	return donations, nil
}

func (s *MongoStore) SetStatus(ctx context.Context, id, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	res, err := s.donations().UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update donation status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// --- CampaignStore ---

func (s *MongoStore) Get(ctx context.Context) (models.Campaign, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var campaign models.Campaign
	err := s.settings().FindOne(ctx, bson.M{"_id": models.CampaignSettingsID}).Decode(&campaign)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Campaign{}, ErrNotFound
	}
	if err != nil {
		return models.Campaign{}, fmt.Errorf("fetch campaign settings: %w", err)
	}
	return campaign, nil
}

func (s *MongoStore) Upsert(ctx context.Context, patch models.CampaignPatch) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.TreePrice != nil {
		set["tree_price"] = *patch.TreePrice
	}
	if patch.GoalTrees != nil {
		set["goal_trees"] = *patch.GoalTrees
	}
	if patch.QRImageURL != nil {
		set["qr_image_url"] = *patch.QRImageURL
	}
	if len(set) == 0 {
		return nil
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": models.CampaignSettingsID}
	if _, err := s.settings().UpdateOne(ctx, filter, bson.M{"$set": set}, opts); err != nil {
		return fmt.Errorf("upsert campaign settings: %w", err)
	}
	return nil
}
