package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jalexanderII/zero-todo/database"
	"github.com/jalexanderII/zero-todo/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const countersCollection = "counters"

// MongoStore keeps todos as documents. Integer ids come from a per-collection
// sequence document in the counters collection.
type MongoStore struct {
	Db       *mongo.Collection
	Counters *mongo.Collection
	L        *logrus.Logger
	clock    Clock
}

func NewMongoStore(db *mongo.Database, collectionName string, l *logrus.Logger) *MongoStore {
	return &MongoStore{
		Db:       db.Collection(collectionName),
		Counters: db.Collection(countersCollection),
		L:        l,
		clock:    systemClock,
	}
}

func (s *MongoStore) WithClock(c Clock) *MongoStore {
	s.clock = c
	return s
}

func (s *MongoStore) now() time.Time {
	// BSON dates hold milliseconds
	return s.clock().UTC().Truncate(time.Millisecond)
}

type counter struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

func (s *MongoStore) nextID(ctx context.Context) (int64, error) {
	var c counter
	filter := bson.M{"_id": s.Db.Name()}
	update := bson.M{"$inc": bson.M{"seq": int64(1)}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	if err := s.Counters.FindOneAndUpdate(ctx, filter, update, opts).Decode(&c); err != nil {
		return 0, fmt.Errorf("store/mongo: next id: %w", err)
	}
	return c.Seq, nil
}

func (s *MongoStore) List(ctx context.Context) ([]models.Todo, error) {
	todos := make([]models.Todo, 0)
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.Db.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("store/mongo: list todos: %w", err)
	}
	if err = cursor.All(ctx, &todos); err != nil {
		return nil, fmt.Errorf("store/mongo: decode todos: %w", err)
	}
	return todos, nil
}

func (s *MongoStore) Get(ctx context.Context, id int64) (*models.Todo, error) {
	var todo models.Todo
	err := s.Db.FindOne(ctx, bson.M{"_id": id}).Decode(&todo)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store/mongo: get todo %d: %w", id, err)
	}
	return &todo, nil
}

func (s *MongoStore) Create(ctx context.Context, text string) (*models.Todo, error) {
	id, err := s.nextID(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	todo := &models.Todo{
		ID:        id,
		Text:      text,
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err = s.Db.InsertOne(ctx, todo); err != nil {
		return nil, fmt.Errorf("store/mongo: insert todo: %w", err)
	}
	s.L.WithField("id", id).Debug("todo inserted")
	return todo, nil
}

// Update sets updated_at with $max so it never moves backwards.
func (s *MongoStore) Update(ctx context.Context, id int64, req models.UpdateTodoRequest) (*models.Todo, error) {
	set := bson.M{}
	if req.Text != nil {
		set["text"] = *req.Text
	}
	if req.Completed != nil {
		set["completed"] = *req.Completed
	}
	update := bson.M{"$max": bson.M{"updated_at": s.now()}}
	if len(set) > 0 {
		update["$set"] = set
	}

	var todo models.Todo
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.Db.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&todo)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store/mongo: update todo %d: %w", id, err)
	}
	return &todo, nil
}

func (s *MongoStore) Delete(ctx context.Context, id int64) error {
	res, err := s.Db.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("store/mongo: delete todo %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close disconnects the client the store was built on.
func (s *MongoStore) Close() error {
	return database.CloseMongoDB(s.Db.Database().Client())
}

var _ TodoStore = (*MongoStore)(nil)
