package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/lexiglow/lexistore/internal/store"
)

// Connect opens a client for the given URI and verifies the server is
// reachable with a ping. Connection failures surface as
// store.ErrUnavailable so callers see the same taxonomy as for any
// other engine outage.
func Connect(ctx context.Context, uri, database string) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: connecting to mongodb: %v", store.ErrUnavailable, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: pinging mongodb: %v", store.ErrUnavailable, err)
	}
	return client.Database(database), nil
}

// Disconnect closes the database's underlying client.
func Disconnect(ctx context.Context, db *mongo.Database) error {
	return db.Client().Disconnect(ctx)
}
