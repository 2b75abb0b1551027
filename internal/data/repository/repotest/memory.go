// Package repotest provides an in-memory Repository that enforces the same
// unique and foreign-key constraints as the postgres schema. It is meant for
// service and router tests.
package repotest

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"movie-reviews/internal/data/entity"
	"movie-reviews/internal/data/repository"
	"movie-reviews/pkg/database"
)

// Store holds users and reviews in memory. The zero value is not usable; use New.
type Store struct {
	mu      sync.Mutex
	now     func() time.Time
	failErr error

	nextUserID   int64
	nextReviewID int64
	users        map[int64]*entity.User
	reviews      map[int64]*entity.Review
}

func New() *Store {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	return &Store{
		// strictly increasing timestamps keep newest-first ordering deterministic
		now: func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Second)
		},
		users:   make(map[int64]*entity.User),
		reviews: make(map[int64]*entity.Review),
	}
}

// Repository returns a repository.Repository backed by this store.
func (s *Store) Repository() *repository.Repository {
	return &repository.Repository{
		User:   &userRepo{s: s},
		Review: &reviewRepo{s: s},
	}
}

// FailWith makes every subsequent call return err until it is called with nil.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}

// Review returns a copy of the stored review, or nil.
func (s *Store) Review(id int64) *entity.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reviews[id]
	if !ok {
		return nil
	}
	cp := *r
	return &cp
}

// User returns a copy of the stored user, or nil.
func (s *Store) User(id int64) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	cp := *u
	return &cp
}

func violation(kind error, constraint string) error {
	return &database.DBError{Kind: kind, Constraint: constraint, Cause: errors.New(constraint)}
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, user *entity.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}

	for _, u := range s.users {
		if u.Username == user.Username {
			return violation(database.ErrUniqueViolation, "users_username_key")
		}
		if u.Email == user.Email {
			return violation(database.ErrUniqueViolation, "users_email_key")
		}
	}

	s.nextUserID++
	now := s.now()
	user.ID = s.nextUserID
	user.CreatedAt = now
	user.UpdatedAt = now

	cp := *user
	s.users[cp.ID] = &cp
	return nil
}

func (r *userRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return nil, s.failErr
	}

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return nil, s.failErr
	}

	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type reviewRepo struct{ s *Store }

func (r *reviewRepo) Create(_ context.Context, review *entity.Review) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}

	if _, ok := s.users[review.UserID]; !ok {
		return violation(database.ErrForeignKeyViolation, "reviews_user_id_fkey")
	}
	for _, existing := range s.reviews {
		if existing.UserID == review.UserID && existing.MovieID == review.MovieID {
			return violation(database.ErrUniqueViolation, "reviews_user_movie_key")
		}
	}

	s.nextReviewID++
	review.ID = s.nextReviewID
	review.CreatedAt = s.now()

	cp := *review
	s.reviews[cp.ID] = &cp
	return nil
}

func (r *reviewRepo) list(match func(*entity.Review) bool) ([]*entity.ReviewDetail, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return nil, s.failErr
	}

	out := make([]*entity.ReviewDetail, 0)
	for _, review := range s.reviews {
		if !match(review) {
			continue
		}
		detail := &entity.ReviewDetail{Review: *review}
		if u, ok := s.users[review.UserID]; ok {
			detail.Username = u.Username
		}
		out = append(out, detail)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *reviewRepo) FindAll(_ context.Context) ([]*entity.ReviewDetail, error) {
	return r.list(func(*entity.Review) bool { return true })
}

func (r *reviewRepo) FindByMovieID(_ context.Context, movieID int64) ([]*entity.ReviewDetail, error) {
	return r.list(func(review *entity.Review) bool { return review.MovieID == movieID })
}

func (r *reviewRepo) FindByUserID(_ context.Context, userID int64) ([]*entity.ReviewDetail, error) {
	return r.list(func(review *entity.Review) bool { return review.UserID == userID })
}

func (r *reviewRepo) UpdateOwned(_ context.Context, review *entity.Review) (bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return false, s.failErr
	}

	existing, ok := s.reviews[review.ID]
	if !ok || existing.UserID != review.UserID {
		return false, nil
	}

	existing.Rating = review.Rating
	existing.Comment = review.Comment
	return true, nil
}

func (r *reviewRepo) DeleteOwned(_ context.Context, id, userID int64) (bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return false, s.failErr
	}

	existing, ok := s.reviews[id]
	if !ok || existing.UserID != userID {
		return false, nil
	}

	delete(s.reviews, id)
	return true, nil
}

func (r *reviewRepo) GetMovieReviewStats(_ context.Context, movieID int64) (*entity.MovieReviewStats, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return nil, s.failErr
	}

	stats := &entity.MovieReviewStats{MovieID: movieID}
	var sum int
	for _, review := range s.reviews {
		if review.MovieID == movieID {
			sum += review.Rating
			stats.ReviewCount++
		}
	}
	if stats.ReviewCount > 0 {
		stats.AverageRating = float64(sum) / float64(stats.ReviewCount)
	}
	return stats, nil
}
