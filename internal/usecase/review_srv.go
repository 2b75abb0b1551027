package usecase

import (
	"context"

	"movie-reviews/internal/data/entity"
	"movie-reviews/internal/data/repository"
	"movie-reviews/internal/dto/request"
	"movie-reviews/internal/dto/response"
	"movie-reviews/pkg/database"
	"movie-reviews/pkg/utils"

	"go.uber.org/zap"
)

type ReviewService interface {
	ListAll(ctx context.Context) ([]response.ReviewResponse, error)
	ListByMovie(ctx context.Context, movieID int64) ([]response.ReviewResponse, error)
	ListByUser(ctx context.Context, userID int64) ([]response.ReviewResponse, error)
	Create(ctx context.Context, req *request.CreateReviewRequest) (*response.CreatedResponse, error)
	Update(ctx context.Context, reviewID int64, req *request.UpdateReviewRequest) error
	Delete(ctx context.Context, reviewID int64, req *request.DeleteReviewRequest) error

	// Stats
	GetMovieStats(ctx context.Context, movieID int64) (*response.MovieReviewStats, error)
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) ListAll(ctx context.Context) ([]response.ReviewResponse, error) {
	reviews, err := s.repo.Review.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list reviews", zap.Error(err))
		return nil, utils.NewInternalError("failed to fetch reviews", err)
	}

	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) ListByMovie(ctx context.Context, movieID int64) ([]response.ReviewResponse, error) {
	reviews, err := s.repo.Review.FindByMovieID(ctx, movieID)
	if err != nil {
		s.log.Error("Failed to list movie reviews", zap.Error(err), zap.Int64("movie_id", movieID))
		return nil, utils.NewInternalError("failed to fetch reviews for the movie", err)
	}

	s.log.Debug("Movie reviews retrieved",
		zap.Int64("movie_id", movieID),
		zap.Int("count", len(reviews)),
	)

	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) ListByUser(ctx context.Context, userID int64) ([]response.ReviewResponse, error) {
	reviews, err := s.repo.Review.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list user reviews", zap.Error(err), zap.Int64("user_id", userID))
		return nil, utils.NewInternalError("failed to fetch reviews for the user", err)
	}

	s.log.Debug("User reviews retrieved",
		zap.Int64("user_id", userID),
		zap.Int("count", len(reviews)),
	)

	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) Create(ctx context.Context, req *request.CreateReviewRequest) (*response.CreatedResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed",
			zap.Any("errors", errs),
			zap.Int64("user_id", req.UserID),
			zap.Int64("movie_id", req.MovieID),
		)
		return nil, utils.NewValidationError("Validation failed", errs)
	}

	review := &entity.Review{
		UserID:  req.UserID,
		MovieID: req.MovieID,
		Rating:  int(*req.Rating),
		Comment: req.Comment,
	}

	// Uniqueness and user existence are enforced by the schema
	if err := s.repo.Review.Create(ctx, review); err != nil {
		switch {
		case database.IsUniqueViolation(err):
			s.log.Warn("Create review rejected - already reviewed",
				zap.Int64("user_id", req.UserID),
				zap.Int64("movie_id", req.MovieID))
			return nil, utils.NewConflictError("You have already reviewed this movie", err)

		case database.IsForeignKeyViolation(err):
			s.log.Warn("Create review rejected - unknown user",
				zap.Int64("user_id", req.UserID),
				zap.Int64("movie_id", req.MovieID))
			return nil, utils.NewValidationError("Invalid user_id",
				map[string]string{"user_id": "User does not exist"})

		default:
			s.log.Error("Failed to create review",
				zap.Error(err),
				zap.Int64("user_id", req.UserID),
				zap.Int64("movie_id", req.MovieID))
			return nil, utils.NewInternalError("failed to create review", err)
		}
	}

	s.log.Info("Review created",
		zap.Int64("review_id", review.ID),
		zap.Int64("user_id", review.UserID),
		zap.Int64("movie_id", review.MovieID),
		zap.Int("rating", review.Rating),
	)

	return &response.CreatedResponse{ID: review.ID}, nil
}

// Update rewrites rating and comment. A review that does not exist and one
// owned by someone else both report NotFound.
func (s *reviewService) Update(ctx context.Context, reviewID int64, req *request.UpdateReviewRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update review validation failed",
			zap.Any("errors", errs),
			zap.Int64("review_id", reviewID),
		)
		return utils.NewValidationError("Validation failed", errs)
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{ID: reviewID},
		UserID:     req.UserID,
		Rating:     int(*req.Rating),
		Comment:    req.Comment,
	}

	updated, err := s.repo.Review.UpdateOwned(ctx, review)
	if err != nil {
		s.log.Error("Failed to update review",
			zap.Error(err),
			zap.Int64("review_id", reviewID),
			zap.Int64("user_id", req.UserID))
		return utils.NewInternalError("failed to update review", err)
	}

	if !updated {
		s.log.Warn("Update review - not found or not owned",
			zap.Int64("review_id", reviewID),
			zap.Int64("user_id", req.UserID))
		return utils.NewNotFoundError("Review not found")
	}

	s.log.Info("Review updated",
		zap.Int64("review_id", reviewID),
		zap.Int64("user_id", req.UserID),
		zap.Int("rating", review.Rating),
	)

	return nil
}

func (s *reviewService) Delete(ctx context.Context, reviewID int64, req *request.DeleteReviewRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Delete review validation failed",
			zap.Any("errors", errs),
			zap.Int64("review_id", reviewID),
		)
		return utils.NewValidationError("Validation failed", errs)
	}

	deleted, err := s.repo.Review.DeleteOwned(ctx, reviewID, req.UserID)
	if err != nil {
		s.log.Error("Failed to delete review",
			zap.Error(err),
			zap.Int64("review_id", reviewID),
			zap.Int64("user_id", req.UserID))
		return utils.NewInternalError("failed to delete review", err)
	}

	if !deleted {
		s.log.Warn("Delete review - not found or not owned",
			zap.Int64("review_id", reviewID),
			zap.Int64("user_id", req.UserID))
		return utils.NewNotFoundError("Review not found")
	}

	s.log.Info("Review deleted",
		zap.Int64("review_id", reviewID),
		zap.Int64("user_id", req.UserID),
	)

	return nil
}

func (s *reviewService) GetMovieStats(ctx context.Context, movieID int64) (*response.MovieReviewStats, error) {
	stats, err := s.repo.Review.GetMovieReviewStats(ctx, movieID)
	if err != nil {
		s.log.Error("Failed to get movie review stats",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return nil, utils.NewInternalError("failed to fetch review stats", err)
	}

	resp := response.StatsToResponse(stats)
	return &resp, nil
}
