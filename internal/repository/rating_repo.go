package repository

import (
	"context"
	"database/sql"

	"learnhub/internal/model"
)

type RatingRepository interface {
	ListRatingsByCourse(ctx context.Context, courseID string) ([]model.RatingAndReview, error)
}

type ratingRepo struct {
	db *sql.DB
}

func NewRatingRepo(db *sql.DB) RatingRepository {
	return &ratingRepo{db: db}
}

func (r *ratingRepo) ListRatingsByCourse(ctx context.Context, courseID string) ([]model.RatingAndReview, error) {
	query := `
		SELECT id, user_id, course_id, rating, review
		FROM rating_and_reviews
		WHERE course_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := []model.RatingAndReview{}
	for rows.Next() {
		var rr model.RatingAndReview
		if err := rows.Scan(&rr.ID, &rr.UserID, &rr.CourseID, &rr.Rating, &rr.Review); err != nil {
			return nil, err
		}
		ratings = append(ratings, rr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ratings, nil
}
