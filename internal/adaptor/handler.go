package adaptor

import (
	"encoding/json"
	"net/http"

	"movie-reviews/internal/usecase"
	"movie-reviews/pkg/utils"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	User   *UserHandler
	Review *ReviewHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		User:   NewUserHandler(service.User, log),
		Review: NewReviewHandler(service.Review, log),
	}
}

// decodeJSON reads a bounded JSON body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

// handleServiceError logs by kind and writes the matching status. The
// wrapped cause is logged but never sent to the client.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	appErr := utils.AsAppError(err)

	switch appErr.Kind {
	case utils.KindValidation, utils.KindAuth, utils.KindNotFound, utils.KindConflict:
		log.Warn(operation+" failed",
			zap.String("operation", operation),
			zap.Stringer("kind", appErr.Kind),
			zap.String("message", appErr.Message))
	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
	}

	utils.ResponseError(w, appErr)
}
