package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"learnhub/internal/model"

	"github.com/rs/zerolog"
)

// CourseRepository defines the interface for interacting with course data
type CourseRepository interface {
	CreateCourse(ctx context.Context, c *model.Course) error
	// GetCourseByID retrieves a course and its reference lists. It returns nil when
	// the course does not exist.
	GetCourseByID(ctx context.Context, courseID string) (*model.Course, error)
	UpdateCourse(ctx context.Context, c *model.Course) error
	DeleteCourse(ctx context.Context, courseID string) error
	ListCourses(ctx context.Context) ([]model.Course, error)
	ListCoursesByInstructor(ctx context.Context, instructorID string) ([]model.Course, error)
	ListCoursesByCategory(ctx context.Context, categoryID, status string) ([]model.Course, error)
	// ListMostSelling returns published courses ordered by enrollment count.
	ListMostSelling(ctx context.Context, limit int) ([]model.Course, error)
}

type courseRepo struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewCourseRepo creates a new CourseRepository
func NewCourseRepo(db *sql.DB, logger zerolog.Logger) CourseRepository {
	return &courseRepo{
		db:     db,
		logger: logger.With().Str("repository", "CourseRepository").Logger(),
	}
}

const courseColumns = `c.id, c.course_name, c.course_description, c.what_you_will_learn, c.price,
		c.status, c.tag, c.instructions, c.thumbnail, c.instructor_id, c.category_id, c.created_at`

// CreateCourse inserts a new course and fills in its generated ID and timestamp
func (r *courseRepo) CreateCourse(ctx context.Context, c *model.Course) error {
	tag, instructions, err := marshalLists(c)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO courses (course_name, course_description, what_you_will_learn, price, status,
			tag, instructions, thumbnail, instructor_id, category_id)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7::jsonb, $8, $9, $10)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		c.CourseName, c.CourseDescription, c.WhatYouWillLearn, c.Price, c.Status,
		tag, instructions, c.Thumbnail, c.InstructorID, c.CategoryID,
	).Scan(&c.ID, &c.CreatedAt)
}

// GetCourseByID retrieves a course by its ID along with its section, student and rating IDs
func (r *courseRepo) GetCourseByID(ctx context.Context, courseID string) (*model.Course, error) {
	if !validID(courseID) {
		return nil, nil
	}
	query := `SELECT ` + courseColumns + ` FROM courses c WHERE c.id = $1`
	c, err := scanCourse(r.db.QueryRowContext(ctx, query, courseID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if c.CourseContent, err = queryIDs(ctx, r.db,
		`SELECT id FROM sections WHERE course_id = $1 ORDER BY position ASC`, courseID); err != nil {
		return nil, fmt.Errorf("failed to load course content: %w", err)
	}
	if c.StudentsEnrolled, err = queryIDs(ctx, r.db,
		`SELECT user_id FROM course_students WHERE course_id = $1 ORDER BY enrolled_at ASC`, courseID); err != nil {
		return nil, fmt.Errorf("failed to load enrolled students: %w", err)
	}
	if c.RatingAndReviews, err = queryIDs(ctx, r.db,
		`SELECT id FROM rating_and_reviews WHERE course_id = $1`, courseID); err != nil {
		return nil, fmt.Errorf("failed to load ratings: %w", err)
	}
	return c, nil
}

// UpdateCourse overwrites the scalar fields of an existing course
func (r *courseRepo) UpdateCourse(ctx context.Context, c *model.Course) error {
	tag, instructions, err := marshalLists(c)
	if err != nil {
		return err
	}
	query := `
		UPDATE courses
		SET course_name = $1, course_description = $2, what_you_will_learn = $3, price = $4,
			status = $5, tag = $6::jsonb, instructions = $7::jsonb, thumbnail = $8, category_id = $9
		WHERE id = $10
	`
	res, err := r.db.ExecContext(ctx, query,
		c.CourseName, c.CourseDescription, c.WhatYouWillLearn, c.Price, c.Status,
		tag, instructions, c.Thumbnail, c.CategoryID, c.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteCourse removes the course row. Owned sections must already be gone.
func (r *courseRepo) DeleteCourse(ctx context.Context, courseID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, courseID)
	return err
}

func (r *courseRepo) ListCourses(ctx context.Context) ([]model.Course, error) {
	return r.list(ctx, `SELECT `+courseColumns+` FROM courses c`)
}

func (r *courseRepo) ListCoursesByInstructor(ctx context.Context, instructorID string) ([]model.Course, error) {
	if !validID(instructorID) {
		return []model.Course{}, nil
	}
	return r.list(ctx, `SELECT `+courseColumns+` FROM courses c WHERE c.instructor_id = $1`, instructorID)
}

func (r *courseRepo) ListCoursesByCategory(ctx context.Context, categoryID, status string) ([]model.Course, error) {
	if !validID(categoryID) {
		return []model.Course{}, nil
	}
	return r.list(ctx, `
		SELECT `+courseColumns+`
		FROM courses c
		WHERE c.category_id = $1 AND c.status = $2
		ORDER BY c.created_at DESC
	`, categoryID, status)
}

func (r *courseRepo) ListMostSelling(ctx context.Context, limit int) ([]model.Course, error) {
	return r.list(ctx, `
		SELECT `+courseColumns+`
		FROM courses c
		LEFT JOIN course_students cs ON cs.course_id = c.id
		WHERE c.status = $1
		GROUP BY c.id
		ORDER BY COUNT(cs.user_id) DESC, c.created_at DESC
		LIMIT $2
	`, model.CourseStatusPublished, limit)
}

func (r *courseRepo) list(ctx context.Context, query string, args ...any) ([]model.Course, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("Failed to scan course row")
			return nil, err
		}
		courses = append(courses, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return courses, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (*model.Course, error) {
	var (
		c                 model.Course
		tag, instructions []byte
	)
	if err := row.Scan(
		&c.ID,
		&c.CourseName,
		&c.CourseDescription,
		&c.WhatYouWillLearn,
		&c.Price,
		&c.Status,
		&tag,
		&instructions,
		&c.Thumbnail,
		&c.InstructorID,
		&c.CategoryID,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tag, &c.Tag); err != nil {
		return nil, fmt.Errorf("invalid tag column for course %s: %w", c.ID, err)
	}
	if err := json.Unmarshal(instructions, &c.Instructions); err != nil {
		return nil, fmt.Errorf("invalid instructions column for course %s: %w", c.ID, err)
	}
	return &c, nil
}

func marshalLists(c *model.Course) (string, string, error) {
	tag, err := json.Marshal(nonNil(c.Tag))
	if err != nil {
		return "", "", fmt.Errorf("failed to encode tag: %w", err)
	}
	instructions, err := json.Marshal(nonNil(c.Instructions))
	if err != nil {
		return "", "", fmt.Errorf("failed to encode instructions: %w", err)
	}
	return string(tag), string(instructions), nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
