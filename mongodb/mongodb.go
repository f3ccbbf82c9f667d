package mongodb

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type MongoDBConn struct {
	Client *mongo.Client

	opts         *options.ClientOptions
	databaseName string
}

func (db *MongoDBConn) Connect(ctx context.Context) error {

	client, err := mongo.Connect(ctx, db.opts)
	if err != nil {
		return err
	}

	db.Client = client

	return nil
}

func (db *MongoDBConn) Disconnect(ctx context.Context) error {

	if db.Client == nil {
		return nil
	}

	return db.Client.Disconnect(ctx)
}

// Ping checks the primary is reachable
func (db *MongoDBConn) Ping(ctx context.Context) error {
	return db.Client.Ping(ctx, readpref.Primary())
}

func (db *MongoDBConn) GetDatabase() *mongo.Database {
	return db.Client.Database(db.databaseName)
}

func (db *MongoDBConn) GetCollection(collectionName string) *mongo.Collection {
	return db.GetDatabase().Collection(collectionName)
}

func New(uri string, databaseName string) MongoDBConn {

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	return MongoDBConn{
		opts:         opts,
		databaseName: databaseName,
	}
}

// InitConnection connects and pings, so a bad URI fails at startup instead of on the first request
func InitConnection(ctx context.Context, uri string, databaseName string) (*MongoDBConn, error) {

	mongodbConn := New(uri, databaseName)
	if err := mongodbConn.Connect(ctx); err != nil {
		return nil, err
	}

	if err := mongodbConn.Ping(ctx); err != nil {
		mongodbConn.Disconnect(context.Background())
		return nil, err
	}

	return &mongodbConn, nil
}

// RedactURI hides the credentials of a connection string before it is logged.
// Only the authority, up to the first "/" or "?" after the scheme, can hold credentials.
func RedactURI(uri string) string {

	const marker = "://"
	start := strings.Index(uri, marker)
	if start < 0 {
		return uri
	}

	start += len(marker)

	authority := uri[start:]
	if end := strings.IndexAny(authority, "/?"); end >= 0 {
		authority = authority[:end]
	}

	end := strings.LastIndex(authority, "@")
	if end < 0 {
		return uri
	}

	return uri[:start] + "***" + uri[start+end:]
}
