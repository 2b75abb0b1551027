package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"movie-reviews/internal/data/repository/repotest"
	"movie-reviews/internal/dto/request"
	"movie-reviews/internal/usecase"
	"movie-reviews/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type reviewFixture struct {
	svc   *usecase.Service
	store *repotest.Store
	alice int64
	bob   int64
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	store := repotest.New()
	svc := usecase.NewService(store.Repository(), utils.NewBcryptHasher(bcrypt.MinCost), zap.NewNop())

	return &reviewFixture{
		svc:   svc,
		store: store,
		alice: register(t, svc.User, "alice", "alice@x.com", "pw1"),
		bob:   register(t, svc.User, "bob", "bob@x.com", "pw2"),
	}
}

func rating(v float64) *float64 { return &v }

func text(s string) *string { return &s }

func (f *reviewFixture) create(t *testing.T, userID, movieID int64, r float64, comment *string) int64 {
	t.Helper()
	created, err := f.svc.Review.Create(context.Background(), &request.CreateReviewRequest{
		UserID:  userID,
		MovieID: movieID,
		Rating:  rating(r),
		Comment: comment,
	})
	require.NoError(t, err)
	return created.ID
}

func TestReviewService_Create(t *testing.T) {
	f := newReviewFixture(t)

	id := f.create(t, f.alice, 42, 8, text("great"))

	stored := f.store.Review(id)
	require.NotNil(t, stored)
	assert.Equal(t, 8, stored.Rating)
	assert.Equal(t, int64(42), stored.MovieID)
	require.NotNil(t, stored.Comment)
	assert.Equal(t, "great", *stored.Comment)
}

func TestReviewService_CreateWithoutComment(t *testing.T) {
	f := newReviewFixture(t)

	id := f.create(t, f.alice, 42, 1, nil)

	assert.Nil(t, f.store.Review(id).Comment)
}

func TestReviewService_CreateValidation(t *testing.T) {
	f := newReviewFixture(t)

	tests := []struct {
		name  string
		req   request.CreateReviewRequest
		field string
	}{
		{"missing user", request.CreateReviewRequest{MovieID: 1, Rating: rating(5)}, "user_id"},
		{"missing movie", request.CreateReviewRequest{UserID: f.alice, Rating: rating(5)}, "movie_id"},
		{"missing rating", request.CreateReviewRequest{UserID: f.alice, MovieID: 1}, "rating"},
		{"rating zero", request.CreateReviewRequest{UserID: f.alice, MovieID: 1, Rating: rating(0)}, "rating"},
		{"rating eleven", request.CreateReviewRequest{UserID: f.alice, MovieID: 1, Rating: rating(11)}, "rating"},
		{"fractional rating", request.CreateReviewRequest{UserID: f.alice, MovieID: 1, Rating: rating(7.5)}, "rating"},
		{"comment too long", request.CreateReviewRequest{UserID: f.alice, MovieID: 1, Rating: rating(5), Comment: text(strings.Repeat("x", 201))}, "comment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Review.Create(context.Background(), &tt.req)

			appErr := utils.AsAppError(err)
			assert.Equal(t, utils.KindValidation, appErr.Kind)
			assert.Contains(t, appErr.Fields, tt.field)
		})
	}

	all, err := f.svc.Review.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestReviewService_CreateDuplicate(t *testing.T) {
	f := newReviewFixture(t)
	f.create(t, f.alice, 42, 8, nil)

	_, err := f.svc.Review.Create(context.Background(), &request.CreateReviewRequest{
		UserID: f.alice, MovieID: 42, Rating: rating(3),
	})
	assert.Equal(t, utils.KindConflict, utils.KindOf(err))

	// another user may still review the same movie
	f.create(t, f.bob, 42, 3, nil)
}

func TestReviewService_CreateUnknownUser(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.svc.Review.Create(context.Background(), &request.CreateReviewRequest{
		UserID: 9999, MovieID: 1, Rating: rating(5),
	})

	appErr := utils.AsAppError(err)
	assert.Equal(t, utils.KindValidation, appErr.Kind)
	assert.Equal(t, "User does not exist", appErr.Fields["user_id"])
}

func TestReviewService_ListOrdering(t *testing.T) {
	f := newReviewFixture(t)
	first := f.create(t, f.alice, 42, 8, nil)
	second := f.create(t, f.bob, 42, 6, text("meh"))
	third := f.create(t, f.alice, 7, 10, nil)

	byMovie, err := f.svc.Review.ListByMovie(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, byMovie, 2)
	assert.Equal(t, second, byMovie[0].ID)
	assert.Equal(t, "bob", byMovie[0].Username)
	assert.Equal(t, first, byMovie[1].ID)

	byUser, err := f.svc.Review.ListByUser(context.Background(), f.alice)
	require.NoError(t, err)
	require.Len(t, byUser, 2)
	assert.Equal(t, third, byUser[0].ID)
	assert.Equal(t, first, byUser[1].ID)

	all, err := f.svc.Review.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := f.svc.Review.ListByMovie(context.Background(), 1000)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestReviewService_Update(t *testing.T) {
	f := newReviewFixture(t)
	id := f.create(t, f.alice, 42, 8, text("great"))

	err := f.svc.Review.Update(context.Background(), id, &request.UpdateReviewRequest{
		UserID: f.alice, Rating: rating(9), Comment: text("revised"),
	})
	require.NoError(t, err)

	stored := f.store.Review(id)
	assert.Equal(t, 9, stored.Rating)
	assert.Equal(t, "revised", *stored.Comment)

	err = f.svc.Review.Update(context.Background(), id, &request.UpdateReviewRequest{
		UserID: f.alice, Rating: rating(4),
	})
	require.NoError(t, err)
	assert.Nil(t, f.store.Review(id).Comment)
}

func TestReviewService_UpdateNotOwned(t *testing.T) {
	f := newReviewFixture(t)
	id := f.create(t, f.alice, 42, 8, nil)

	err := f.svc.Review.Update(context.Background(), id, &request.UpdateReviewRequest{
		UserID: f.bob, Rating: rating(1),
	})
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
	assert.Equal(t, 8, f.store.Review(id).Rating)

	err = f.svc.Review.Update(context.Background(), 999, &request.UpdateReviewRequest{
		UserID: f.alice, Rating: rating(1),
	})
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestReviewService_UpdateValidation(t *testing.T) {
	f := newReviewFixture(t)
	id := f.create(t, f.alice, 42, 8, nil)

	err := f.svc.Review.Update(context.Background(), id, &request.UpdateReviewRequest{
		UserID: f.alice, Rating: rating(11),
	})
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
	assert.Equal(t, 8, f.store.Review(id).Rating)
}

func TestReviewService_Delete(t *testing.T) {
	f := newReviewFixture(t)
	id := f.create(t, f.alice, 42, 8, nil)

	err := f.svc.Review.Delete(context.Background(), id, &request.DeleteReviewRequest{UserID: f.bob})
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
	assert.NotNil(t, f.store.Review(id))

	require.NoError(t, f.svc.Review.Delete(context.Background(), id, &request.DeleteReviewRequest{UserID: f.alice}))
	assert.Nil(t, f.store.Review(id))

	err = f.svc.Review.Delete(context.Background(), id, &request.DeleteReviewRequest{UserID: f.alice})
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	// the pair is free again
	f.create(t, f.alice, 42, 5, nil)
}

func TestReviewService_GetMovieStats(t *testing.T) {
	f := newReviewFixture(t)
	f.create(t, f.alice, 42, 8, nil)
	f.create(t, f.bob, 42, 5, nil)

	stats, err := f.svc.Review.GetMovieStats(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.ReviewCount)
	assert.InDelta(t, 6.5, stats.AverageRating, 0.0001)

	empty, err := f.svc.Review.GetMovieStats(context.Background(), 7)
	require.NoError(t, err)
	assert.Zero(t, empty.ReviewCount)
	assert.Zero(t, empty.AverageRating)
}

func TestReviewService_StoreFailureIsInternal(t *testing.T) {
	f := newReviewFixture(t)
	f.store.FailWith(errors.New("connection reset"))

	_, err := f.svc.Review.ListAll(context.Background())
	assert.Equal(t, utils.KindInternal, utils.KindOf(err))

	err = f.svc.Review.Delete(context.Background(), 1, &request.DeleteReviewRequest{UserID: f.alice})
	assert.Equal(t, utils.KindInternal, utils.KindOf(err))
}
