package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"todo-api/internal/model"
)

type todoDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Timestamp time.Time          `bson:"timestamp"`
	Color     string             `bson:"color"`
	Completed bool               `bson:"completed"`
	Priority  string             `bson:"priority"`
}

func fromModel(t model.Todo) todoDocument {
	return todoDocument{
		Title:     t.Title,
		Timestamp: t.Timestamp.UTC(),
		Color:     t.Color,
		Completed: t.Completed,
		Priority:  t.Priority,
	}
}

func (d todoDocument) toModel() model.Todo {
	return model.Todo{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Timestamp: d.Timestamp.UTC(),
		Color:     d.Color,
		Completed: d.Completed,
		Priority:  d.Priority,
	}
}

// TodoStore keeps todos in a MongoDB collection keyed by ObjectID.
type TodoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Connect dials uri and returns a store over database.collection. The caller
// owns the store and must Close it.
func Connect(ctx context.Context, uri, database, collection string) (*TodoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	return New(client, database, collection), nil
}

func New(client *mongo.Client, database, collection string) *TodoStore {
	return &TodoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}
}

func (s *TodoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *TodoStore) Create(ctx context.Context, t model.Todo) (model.Todo, error) {
	doc := fromModel(t)
	doc.ID = primitive.NewObjectID()
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return model.Todo{}, fmt.Errorf("insert todo: %w", err)
	}
	return doc.toModel(), nil
}

func (s *TodoStore) List(ctx context.Context) ([]model.Todo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find todos: %w", err)
	}
	var docs []todoDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode todos: %w", err)
	}

	out := make([]model.Todo, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

func (s *TodoStore) Update(ctx context.Context, id string, t model.Todo) (model.Todo, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.Todo{}, model.ErrNotFound
	}

	doc := fromModel(t)
	res, err := s.coll.UpdateByID(ctx, oid, bson.M{"$set": doc})
	if err != nil {
		return model.Todo{}, fmt.Errorf("update todo: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.Todo{}, model.ErrNotFound
	}
	doc.ID = oid
	return doc.toModel(), nil
}

func (s *TodoStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.ErrNotFound
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if res.DeletedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *TodoStore) PingContext(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping mongo: %w", err)
	}
	return nil
}
