package store_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/jalexanderII/zero-todo/models"
	"github.com/jalexanderII/zero-todo/store"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMongoStore(mt *mtest.T) *store.MongoStore {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return store.NewMongoStore(mt.DB, mt.Coll.Name(), l).
		WithClock(func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) })
}

func todoDoc(id int64, text string, completed bool, at time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "text", Value: text},
		{Key: "completed", Value: completed},
		{Key: "created_at", Value: at},
		{Key: "updated_at", Value: at},
	}
}

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ctx := context.Background()

	mt.Run("create assigns the next sequence id", func(mt *mtest.T) {
		s := newMongoStore(mt)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: mt.Coll.Name()},
				{Key: "seq", Value: int64(7)},
			}}),
			mtest.CreateSuccessResponse(),
		)

		todo, err := s.Create(ctx, "buy milk")
		require.NoError(mt, err)
		assert.Equal(mt, int64(7), todo.ID)
		assert.Equal(mt, "buy milk", todo.Text)
		assert.False(mt, todo.Completed)
		assert.Equal(mt, todo.CreatedAt, todo.UpdatedAt)
	})

	mt.Run("list", func(mt *mtest.T) {
		s := newMongoStore(mt)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, todoDoc(1, "one", false, at), todoDoc(2, "two", true, at)),
			mtest.CreateCursorResponse(0, ns, mtest.NextBatch),
		)

		todos, err := s.List(ctx)
		require.NoError(mt, err)
		require.Len(mt, todos, 2)
		assert.Equal(mt, "one", todos[0].Text)
		assert.True(mt, todos[1].Completed)
	})

	mt.Run("get missing", func(mt *mtest.T) {
		s := newMongoStore(mt)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := s.Get(ctx, 42)
		assert.ErrorIs(mt, err, store.ErrNotFound)
	})

	mt.Run("update returns the new document", func(mt *mtest.T) {
		s := newMongoStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: todoDoc(3, "read", true, at)}))

		done := true
		todo, err := s.Update(ctx, 3, models.UpdateTodoRequest{Completed: &done})
		require.NoError(mt, err)
		assert.True(mt, todo.Completed)
		assert.Equal(mt, int64(3), todo.ID)
	})

	mt.Run("update unknown id", func(mt *mtest.T) {
		s := newMongoStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		done := true
		_, err := s.Update(ctx, 99, models.UpdateTodoRequest{Completed: &done})
		assert.ErrorIs(mt, err, store.ErrNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		s := newMongoStore(mt)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		require.NoError(mt, s.Delete(ctx, 1))
		assert.ErrorIs(mt, s.Delete(ctx, 1), store.ErrNotFound)
	})
}
