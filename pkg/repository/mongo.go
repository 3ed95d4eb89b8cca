package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/example/storefront/pkg/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository stores the audit trail in a single collection.
type MongoRepository struct {
	client *mongo.Client
	audit  *mongo.Collection
}

// NewMongoRepository connects and pings the server. mongo.Connect alone does
// not contact the server, so an unreachable deployment fails here rather than
// on the first write.
func NewMongoRepository(ctx context.Context, cfg *config.MongoDBConfig) (*MongoRepository, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return newMongoRepository(client, client.Database(cfg.Database), cfg.Collection), nil
}

func newMongoRepository(client *mongo.Client, db *mongo.Database, collection string) *MongoRepository {
	return &MongoRepository{client: client, audit: db.Collection(collection)}
}

func (m *MongoRepository) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// AuditLog is one entry of the storefront audit trail, e.g. a placed order
// or a new customer registration.
type AuditLog struct {
	ID        string    `bson:"_id,omitempty"`
	Service   string    `bson:"service"`
	Action    string    `bson:"action"`
	EntityID  string    `bson:"entity_id"`
	Data      bson.M    `bson:"data"`
	CreatedAt time.Time `bson:"created_at"`
}

// CreateAuditLog inserts entry, stamping CreatedAt with the current UTC time
// when the caller left it unset.
func (m *MongoRepository) CreateAuditLog(ctx context.Context, entry *AuditLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if _, err := m.audit.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert audit log %s/%s: %w", entry.Action, entry.EntityID, err)
	}
	return nil
}
