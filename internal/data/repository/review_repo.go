package repository

import (
	"context"
	"fmt"

	"movie-reviews/internal/data/entity"
	"movie-reviews/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindAll(ctx context.Context) ([]*entity.ReviewDetail, error)
	FindByMovieID(ctx context.Context, movieID int64) ([]*entity.ReviewDetail, error)
	FindByUserID(ctx context.Context, userID int64) ([]*entity.ReviewDetail, error)

	// UpdateOwned and DeleteOwned filter on both id and user_id in one
	// statement and report whether a row matched.
	UpdateOwned(ctx context.Context, review *entity.Review) (bool, error)
	DeleteOwned(ctx context.Context, id, userID int64) (bool, error)

	// Business queries
	GetMovieReviewStats(ctx context.Context, movieID int64) (*entity.MovieReviewStats, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

const selectReviewDetail = `
	SELECT r.id, r.user_id, u.username, r.movie_id, r.rating, r.comment, r.created_at
	FROM reviews r
	JOIN users u ON u.id = r.user_id
`

// newest first; id breaks ties between rows created in the same instant
const orderNewestFirst = `
	ORDER BY r.created_at DESC, r.id DESC
`

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (user_id, movie_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		review.UserID,
		review.MovieID,
		review.Rating,
		review.Comment,
	).Scan(
		&review.ID,
		&review.CreatedAt,
	)

	if err != nil {
		err = database.Classify(err)
		fields := []zap.Field{
			zap.Error(err),
			zap.Int64("user_id", review.UserID),
			zap.Int64("movie_id", review.MovieID),
		}
		if database.IsUniqueViolation(err) || database.IsForeignKeyViolation(err) {
			r.log.Warn("Review rejected by constraint", fields...)
		} else {
			r.log.Error("Failed to create review", fields...)
		}
		return fmt.Errorf("create review for movie %d by user %d: %w",
			review.MovieID, review.UserID, err)
	}

	return nil
}

func (r *reviewRepository) FindAll(ctx context.Context) ([]*entity.ReviewDetail, error) {
	rows, err := r.db.Query(ctx, selectReviewDetail+orderNewestFirst)
	if err != nil {
		r.log.Error("Failed to find all reviews", zap.Error(err))
		return nil, fmt.Errorf("find all reviews: %w", database.Classify(err))
	}

	return r.scanDetails(rows)
}

func (r *reviewRepository) FindByMovieID(ctx context.Context, movieID int64) ([]*entity.ReviewDetail, error) {
	query := selectReviewDetail + `WHERE r.movie_id = $1` + orderNewestFirst

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find reviews by movie ID",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("find reviews by movie ID %d: %w", movieID, database.Classify(err))
	}

	return r.scanDetails(rows)
}

func (r *reviewRepository) FindByUserID(ctx context.Context, userID int64) ([]*entity.ReviewDetail, error) {
	query := selectReviewDetail + `WHERE r.user_id = $1` + orderNewestFirst

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find reviews by user ID",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("find reviews by user ID %d: %w", userID, database.Classify(err))
	}

	return r.scanDetails(rows)
}

func (r *reviewRepository) scanDetails(rows pgx.Rows) ([]*entity.ReviewDetail, error) {
	defer rows.Close()

	reviews := make([]*entity.ReviewDetail, 0)
	for rows.Next() {
		var review entity.ReviewDetail
		err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.Username,
			&review.MovieID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate review rows: %w", database.Classify(err))
	}

	return reviews, nil
}

func (r *reviewRepository) UpdateOwned(ctx context.Context, review *entity.Review) (bool, error) {
	query := `
		UPDATE reviews
		SET rating = $3, comment = $4
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.Exec(ctx, query,
		review.ID,
		review.UserID,
		review.Rating,
		review.Comment,
	)

	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.Int64("review_id", review.ID),
			zap.Int64("user_id", review.UserID),
		)
		return false, fmt.Errorf("update review %d: %w", review.ID, database.Classify(err))
	}

	return result.RowsAffected() > 0, nil
}

func (r *reviewRepository) DeleteOwned(ctx context.Context, id, userID int64) (bool, error) {
	query := `DELETE FROM reviews WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.Int64("review_id", id),
			zap.Int64("user_id", userID),
		)
		return false, fmt.Errorf("delete review %d: %w", id, database.Classify(err))
	}

	if result.RowsAffected() == 0 {
		return false, nil
	}

	r.log.Info("Review deleted", zap.Int64("review_id", id))
	return true, nil
}

func (r *reviewRepository) GetMovieReviewStats(ctx context.Context, movieID int64) (*entity.MovieReviewStats, error) {
	query := `
		SELECT
			COALESCE(AVG(rating), 0)::float8 AS avg_rating,
			COUNT(*) AS review_count
		FROM reviews
		WHERE movie_id = $1
	`

	stats := entity.MovieReviewStats{MovieID: movieID}
	err := r.db.QueryRow(ctx, query, movieID).Scan(&stats.AverageRating, &stats.ReviewCount)
	if err != nil {
		r.log.Error("Failed to get movie review stats",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("get movie review stats for %d: %w", movieID, database.Classify(err))
	}

	return &stats, nil
}
