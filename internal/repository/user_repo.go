package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"learnhub/internal/model"
)

type UserRepository interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	// AddCourse appends courseID to the user's course list. Adding an ID that is
	// already present is a no-op.
	AddCourse(ctx context.Context, userID, courseID string) error
	RemoveCourse(ctx context.Context, userID, courseID string) error
}

type userRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if !validID(id) {
		return nil, nil
	}
	var u model.User
	query := `SELECT id, first_name, last_name, email, account_type, image FROM users WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.AccountType, &u.Image); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	courses, err := queryIDs(ctx, r.db,
		`SELECT course_id FROM user_courses WHERE user_id = $1 ORDER BY added_at ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user courses: %w", err)
	}
	u.Courses = courses
	return &u, nil
}

func (r *userRepo) AddCourse(ctx context.Context, userID, courseID string) error {
	query := `INSERT INTO user_courses (user_id, course_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, userID, courseID)
	return err
}

func (r *userRepo) RemoveCourse(ctx context.Context, userID, courseID string) error {
	query := `DELETE FROM user_courses WHERE user_id = $1 AND course_id = $2`
	_, err := r.db.ExecContext(ctx, query, userID, courseID)
	return err
}
