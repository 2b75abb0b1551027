package entity

type Review struct {
	BaseSimple
	UserID  int64   `db:"user_id"`
	MovieID int64   `db:"movie_id"`
	Rating  int     `db:"rating"` // 1-10
	Comment *string `db:"comment"`
}

// ReviewDetail is a review joined with its author's username.
type ReviewDetail struct {
	Review
	Username string `db:"username"`
}

type MovieReviewStats struct {
	MovieID       int64   `db:"movie_id"`
	AverageRating float64 `db:"avg_rating"`
	ReviewCount   int64   `db:"review_count"`
}
