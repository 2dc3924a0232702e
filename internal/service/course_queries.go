package service

import (
	"context"
	"fmt"

	"learnhub/internal/model"
)

// GetAllCourses lists every course with its instructor and category.
func (s *courseService) GetAllCourses(ctx context.Context) ([]model.CourseSummary, error) {
	courses, err := s.Courses.ListCourses(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list courses")
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return s.summarize(ctx, courses, true)
}

// GetInstructorCourses lists the courses taught by userID with their category.
func (s *courseService) GetInstructorCourses(ctx context.Context, userID string) ([]model.CourseSummary, error) {
	courses, err := s.Courses.ListCoursesByInstructor(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list instructor courses")
		return nil, fmt.Errorf("failed to list instructor courses: %w", err)
	}
	return s.summarize(ctx, courses, false)
}

func (s *courseService) GetCourseDetails(ctx context.Context, courseID string) (*model.CourseDetails, error) {
	return s.loadDetails(ctx, courseID, false)
}

// GetFullCourseDetails is GetCourseDetails plus ratings and reviews.
func (s *courseService) GetFullCourseDetails(ctx context.Context, courseID string) (*model.CourseDetails, error) {
	return s.loadDetails(ctx, courseID, true)
}

func (s *courseService) loadDetails(ctx context.Context, courseID string, withRatings bool) (*model.CourseDetails, error) {
	course, err := s.Courses.GetCourseByID(ctx, courseID)
	if err != nil {
		s.logger.Error().Err(err).Str("course_id", courseID).Msg("Failed to load course")
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	if course == nil {
		return nil, &NotFoundError{Message: "Course not found"}
	}

	details := &model.CourseDetails{Course: *course, CourseContent: []model.SectionDetails{}}
	if details.Instructor, err = s.Users.GetUserByID(ctx, course.InstructorID); err != nil {
		return nil, fmt.Errorf("failed to load instructor: %w", err)
	}
	if details.Category, err = s.Categories.GetCategoryByID(ctx, course.CategoryID); err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	for _, sectionID := range course.CourseContent {
		section, err := s.Sections.GetSectionByID(ctx, sectionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load section %s: %w", sectionID, err)
		}
		if section == nil {
			continue
		}
		sd := model.SectionDetails{ID: section.ID, SectionName: section.SectionName, SubSection: []model.SubSection{}}
		for _, subSectionID := range section.SubSection {
			sub, err := s.Sections.GetSubSectionByID(ctx, subSectionID)
			if err != nil {
				return nil, fmt.Errorf("failed to load sub-section %s: %w", subSectionID, err)
			}
			if sub != nil {
				sd.SubSection = append(sd.SubSection, *sub)
			}
		}
		details.CourseContent = append(details.CourseContent, sd)
	}

	if withRatings {
		if details.RatingAndReviews, err = s.Ratings.ListRatingsByCourse(ctx, courseID); err != nil {
			return nil, fmt.Errorf("failed to load ratings: %w", err)
		}
	}
	return details, nil
}

// summarize populates category, and instructor when requested, for each course.
// Lookups are cached per call since listings share instructors and categories.
func (s *courseService) summarize(ctx context.Context, courses []model.Course, withInstructor bool) ([]model.CourseSummary, error) {
	users := map[string]*model.User{}
	categories := map[string]*model.Category{}

	out := make([]model.CourseSummary, 0, len(courses))
	for _, c := range courses {
		summary := model.CourseSummary{Course: c}

		if withInstructor {
			u, ok := users[c.InstructorID]
			if !ok {
				var err error
				if u, err = s.Users.GetUserByID(ctx, c.InstructorID); err != nil {
					return nil, fmt.Errorf("failed to load instructor: %w", err)
				}
				users[c.InstructorID] = u
			}
			summary.Instructor = u
		}

		cat, ok := categories[c.CategoryID]
		if !ok {
			var err error
			if cat, err = s.Categories.GetCategoryByID(ctx, c.CategoryID); err != nil {
				return nil, fmt.Errorf("failed to load category: %w", err)
			}
			categories[c.CategoryID] = cat
		}
		summary.Category = cat

		out = append(out, summary)
	}
	return out, nil
}
