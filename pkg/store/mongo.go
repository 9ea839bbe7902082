package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DefaultMongoDatabase is the database used when none is configured.
const DefaultMongoDatabase = "rbcheck"

const canvasCollection = "canvases"

// MongoStore keeps documents in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// mongoDoc is the stored form; the snapshot is kept as a JSON string so it
// stays readable in the shell.
type mongoDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Snapshot  string    `bson:"snapshot"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoStore connects to uri and pings the primary.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if database == "" {
		database = DefaultMongoDatabase
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(canvasCollection),
	}, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Document, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var md mongoDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&md)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find document: %w", err)
	}
	return fromMongo(md), nil
}

func (s *MongoStore) Put(ctx context.Context, doc *Document) error {
	if err := checkID(doc.ID); err != nil {
		return err
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, toMongo(doc), opts); err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]*Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	var mds []mongoDoc
	if err := cur.All(ctx, &mds); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	out := make([]*Document, len(mds))
	for i, md := range mds {
		out[i] = fromMongo(md)
	}
	return out, nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func toMongo(d *Document) mongoDoc {
	return mongoDoc{
		ID:        d.ID,
		Name:      d.Name,
		Snapshot:  string(d.Snapshot),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func fromMongo(md mongoDoc) *Document {
	return &Document{
		ID:        md.ID,
		Name:      md.Name,
		Snapshot:  []byte(md.Snapshot),
		CreatedAt: md.CreatedAt,
		UpdatedAt: md.UpdatedAt,
	}
}

var _ Store = (*MongoStore)(nil)
