package usecase

import (
	"movie-reviews/internal/data/repository"
	"movie-reviews/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	User   UserService
	Review ReviewService
}

func NewService(repo *repository.Repository, hasher utils.PasswordHasher, log *zap.Logger) *Service {
	return &Service{
		User:   NewUserService(repo.User, hasher, log),
		Review: NewReviewService(repo, log),
	}
}
