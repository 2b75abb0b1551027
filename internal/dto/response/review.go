package response

import (
	"time"

	"movie-reviews/internal/data/entity"
)

type ReviewResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	MovieID   int64     `json:"movie_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type CreatedResponse struct {
	ID int64 `json:"id"`
}

type MovieReviewStats struct {
	MovieID       int64   `json:"movie_id"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

// Helper converter
func ReviewToResponse(review *entity.ReviewDetail) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID,
		UserID:    review.UserID,
		Username:  review.Username,
		MovieID:   review.MovieID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}

func ReviewsToResponse(reviews []*entity.ReviewDetail) []ReviewResponse {
	out := make([]ReviewResponse, len(reviews))
	for i, review := range reviews {
		out[i] = ReviewToResponse(review)
	}
	return out
}

func StatsToResponse(stats *entity.MovieReviewStats) MovieReviewStats {
	return MovieReviewStats{
		MovieID:       stats.MovieID,
		AverageRating: stats.AverageRating,
		ReviewCount:   stats.ReviewCount,
	}
}
