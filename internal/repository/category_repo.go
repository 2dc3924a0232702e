package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"learnhub/internal/model"
)

type CategoryRepository interface {
	GetCategoryByID(ctx context.Context, id string) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	AddCourse(ctx context.Context, categoryID, courseID string) error
	RemoveCourse(ctx context.Context, categoryID, courseID string) error
}

type categoryRepo struct {
	db *sql.DB
}

func NewCategoryRepo(db *sql.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) GetCategoryByID(ctx context.Context, id string) (*model.Category, error) {
	if !validID(id) {
		return nil, nil
	}
	var c model.Category
	query := `SELECT id, name, description FROM categories WHERE id = $1`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	courses, err := queryIDs(ctx, r.db,
		`SELECT course_id FROM category_courses WHERE category_id = $1 ORDER BY added_at ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load category courses: %w", err)
	}
	c.Courses = courses
	return &c, nil
}

// ListCategories returns every category without its course list
func (r *categoryRepo) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepo) AddCourse(ctx context.Context, categoryID, courseID string) error {
	query := `INSERT INTO category_courses (category_id, course_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, categoryID, courseID)
	return err
}

func (r *categoryRepo) RemoveCourse(ctx context.Context, categoryID, courseID string) error {
	query := `DELETE FROM category_courses WHERE category_id = $1 AND course_id = $2`
	_, err := r.db.ExecContext(ctx, query, categoryID, courseID)
	return err
}
