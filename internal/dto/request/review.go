package request

// Rating is decoded as a float so non-integer input can be reported as a
// validation failure instead of a malformed body.
type CreateReviewRequest struct {
	UserID  int64    `json:"user_id" validate:"required,gt=0"`
	MovieID int64    `json:"movie_id" validate:"required,gt=0"`
	Rating  *float64 `json:"rating" validate:"required,rating"`
	Comment *string  `json:"comment,omitempty" validate:"omitempty,max=200"`
}

type UpdateReviewRequest struct {
	UserID  int64    `json:"user_id" validate:"required,gt=0"`
	Rating  *float64 `json:"rating" validate:"required,rating"`
	Comment *string  `json:"comment,omitempty" validate:"omitempty,max=200"`
}

type DeleteReviewRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
}
