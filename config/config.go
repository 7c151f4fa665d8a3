package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	cache "github.com/greenroots/donation-tracker-go/cache"
	models "github.com/greenroots/donation-tracker-go/models"
	store "github.com/greenroots/donation-tracker-go/store"
	utils "github.com/greenroots/donation-tracker-go/utils"
)

// Config carries everything the controllers need: the persistence ports,
// the campaign-data cache and the admin credentials.
type Config struct {
	MongoClient *mongo.Client // nil when running on the local backend
	DBName      string

	Donations store.DonationStore
	Campaign  store.CampaignStore
	Files     store.FileStore

	CampaignCache *cache.Snapshot[models.CampaignData]

	JWTSecret     []byte
	AdminEmail    string
	AdminPassword string

	Port string
}

// Load builds the configuration from the environment. STORE_BACKEND
// selects "mongo" (default) or "local"; local runs entirely in memory
// with data-URI uploads, which is what tests and offline demos use.
func Load(ctx context.Context) (*Config, error) {
	cfg := &Config{
		DBName:        getenv("DB_NAME", "greenroots"),
		JWTSecret:     []byte(os.Getenv("JWT_SECRET")),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		Port:          getenv("PORT", "8080"),
		CampaignCache: cache.NewSnapshot[models.CampaignData](cache.DefaultTTL),
	}

	if len(cfg.JWTSecret) == 0 {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	switch backend := getenv("STORE_BACKEND", "mongo"); backend {
	case "local":
		local := store.NewLocalStore()
		cfg.Donations = local
		cfg.Campaign = local
		cfg.Files = local
		log.Println("Using local in-memory store")
	case "mongo":
		uri := os.Getenv("MONGO_URI")
		if uri == "" {
			return nil, fmt.Errorf("MONGO_URI is required")
		}

		client, err := connectMongo(ctx, uri)
		if err != nil {
			return nil, err
		}
		cfg.MongoClient = client

		mongoStore := store.NewMongoStore(client, cfg.DBName)
		cfg.Donations = mongoStore
		cfg.Campaign = mongoStore
		cfg.Files = utils.NewCloudinaryStore()
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", backend)
	}

	return cfg, nil
}

// connectMongo retries the initial connection with exponential backoff.
// This is the only retried operation in the service; request paths fail
// straight through to the caller.
func connectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	operation := func() (*mongo.Client, error) {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
		if err != nil {
			return nil, err
		}
		if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
			return nil, err
		}
		return client, nil
	}

	client, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(5),
	)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	return client, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
