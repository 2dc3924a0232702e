package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"learnhub/internal/model"
)

// SectionRepository covers sections and the sub-sections they own
type SectionRepository interface {
	GetSectionByID(ctx context.Context, id string) (*model.Section, error)
	DeleteSection(ctx context.Context, id string) error
	GetSubSectionByID(ctx context.Context, id string) (*model.SubSection, error)
	DeleteSubSection(ctx context.Context, id string) error
}

type sectionRepo struct {
	db *sql.DB
}

func NewSectionRepo(db *sql.DB) SectionRepository {
	return &sectionRepo{db: db}
}

func (r *sectionRepo) GetSectionByID(ctx context.Context, id string) (*model.Section, error) {
	if !validID(id) {
		return nil, nil
	}
	var s model.Section
	query := `SELECT id, course_id, section_name FROM sections WHERE id = $1`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.CourseID, &s.SectionName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	subs, err := queryIDs(ctx, r.db,
		`SELECT id FROM sub_sections WHERE section_id = $1 ORDER BY position ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load sub-sections: %w", err)
	}
	s.SubSection = subs
	return &s, nil
}

func (r *sectionRepo) DeleteSection(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sections WHERE id = $1`, id)
	return err
}

func (r *sectionRepo) GetSubSectionByID(ctx context.Context, id string) (*model.SubSection, error) {
	if !validID(id) {
		return nil, nil
	}
	var s model.SubSection
	query := `SELECT id, section_id, title, time_duration, description, video_url FROM sub_sections WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.SectionID, &s.Title, &s.TimeDuration, &s.Description, &s.VideoURL,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *sectionRepo) DeleteSubSection(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sub_sections WHERE id = $1`, id)
	return err
}
