package wire

import (
	"movie-reviews/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireReview configures review routes. The acting user for update and
// delete is the user_id in the request body.
func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler) {
	r.Route("/api/reviews", func(r chi.Router) {
		r.Get("/", reviewHandler.GetAllReviews) // GET /api/reviews
		r.Post("/", reviewHandler.CreateReview) // POST /api/reviews

		// static segment wins over {id}
		r.Get("/user/{id}", reviewHandler.GetUserReviews) // GET /api/reviews/user/{id}

		// {id} is a movie id on GET and a review id on PUT/DELETE
		r.Get("/{id}", reviewHandler.GetMovieReviews)           // GET /api/reviews/{movieId}
		r.Get("/{id}/stats", reviewHandler.GetMovieReviewStats) // GET /api/reviews/{movieId}/stats

		r.Put("/{id}", reviewHandler.UpdateReview)    // PUT /api/reviews/{id} (owner only)
		r.Delete("/{id}", reviewHandler.DeleteReview) // DELETE /api/reviews/{id} (owner only)
	})
}
