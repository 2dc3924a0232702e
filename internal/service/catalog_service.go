package service

import (
	"context"
	"fmt"

	"learnhub/internal/model"
	"learnhub/internal/repository"

	"github.com/rs/zerolog"
)

const mostSellingLimit = 10

type CatalogService interface {
	CategoryPageDetails(ctx context.Context, categoryID string) (*model.CatalogPageData, error)
	ShowAllCategories(ctx context.Context) ([]model.Category, error)
}

type catalogService struct {
	courses    repository.CourseRepository
	categories repository.CategoryRepository
	users      repository.UserRepository
	logger     zerolog.Logger
}

func NewCatalogService(
	courses repository.CourseRepository,
	categories repository.CategoryRepository,
	users repository.UserRepository,
	logger zerolog.Logger,
) CatalogService {
	return &catalogService{
		courses:    courses,
		categories: categories,
		users:      users,
		logger:     logger.With().Str("service", "CatalogService").Logger(),
	}
}

func (s *catalogService) ShowAllCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CategoryPageDetails builds the catalog page for a category. Only published
// courses are shown.
func (s *catalogService) CategoryPageDetails(ctx context.Context, categoryID string) (*model.CatalogPageData, error) {
	selected, err := s.categories.GetCategoryByID(ctx, categoryID)
	if err != nil {
		s.logger.Error().Err(err).Str("category_id", categoryID).Msg("Failed to load category")
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	if selected == nil {
		return nil, &NotFoundError{Message: "Category not found"}
	}

	page := &model.CatalogPageData{}
	if page.SelectedCategory, err = s.withCourses(ctx, *selected); err != nil {
		return nil, err
	}

	all, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	for _, c := range all {
		if c.ID == selected.ID {
			continue
		}
		other, err := s.withCourses(ctx, c)
		if err != nil {
			return nil, err
		}
		if len(other.Courses) > 0 {
			page.DifferentCategory = &other
			break
		}
	}

	top, err := s.courses.ListMostSelling(ctx, mostSellingLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list most selling courses: %w", err)
	}
	if page.MostSellingCourses, err = s.withInstructors(ctx, top); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *catalogService) withCourses(ctx context.Context, c model.Category) (model.CategoryWithCourses, error) {
	out := model.CategoryWithCourses{ID: c.ID, Name: c.Name, Description: c.Description}
	courses, err := s.courses.ListCoursesByCategory(ctx, c.ID, model.CourseStatusPublished)
	if err != nil {
		return out, fmt.Errorf("failed to list courses for category %s: %w", c.ID, err)
	}
	out.Courses, err = s.withInstructors(ctx, courses)
	return out, err
}

func (s *catalogService) withInstructors(ctx context.Context, courses []model.Course) ([]model.CourseSummary, error) {
	out := make([]model.CourseSummary, 0, len(courses))
	for _, c := range courses {
		u, err := s.users.GetUserByID(ctx, c.InstructorID)
		if err != nil {
			return nil, fmt.Errorf("failed to load instructor: %w", err)
		}
		out = append(out, model.CourseSummary{Course: c, Instructor: u})
	}
	return out, nil
}
