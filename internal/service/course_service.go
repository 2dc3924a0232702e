package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"learnhub/internal/model"
	"learnhub/internal/pubsub"
	"learnhub/internal/repository"
	"learnhub/internal/storage"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"
)

// CourseService manages the course aggregate and the read views built on it.
type CourseService interface {
	CreateCourse(ctx context.Context, userID string, in CreateCourseInput, thumbnail *storage.File) (*model.Course, error)
	EditCourse(ctx context.Context, userID, courseID string, in EditCourseInput, thumbnail *storage.File) (*model.CourseDetails, error)
	DeleteCourse(ctx context.Context, userID, courseID string) error

	GetAllCourses(ctx context.Context) ([]model.CourseSummary, error)
	GetCourseDetails(ctx context.Context, courseID string) (*model.CourseDetails, error)
	GetFullCourseDetails(ctx context.Context, courseID string) (*model.CourseDetails, error)
	GetInstructorCourses(ctx context.Context, userID string) ([]model.CourseSummary, error)
}

// CreateCourseInput holds the raw create form. Tag and Instructions are JSON
// encoded string arrays.
type CreateCourseInput struct {
	CourseName        string
	CourseDescription string
	WhatYouWillLearn  string
	Price             *float64
	Tag               string
	Instructions      string
	CategoryID        string
	Status            string
}

// EditCourseInput is a course patch whose list fields may still be JSON encoded.
// TagJSON and InstructionsJSON are decoded once the course is known to exist and
// take precedence over Tag and Instructions.
type EditCourseInput struct {
	model.CoursePatch
	TagJSON          *string
	InstructionsJSON *string
}

// CourseDeps wires the collaborators of the course service. Publisher and
// Repairs are optional.
type CourseDeps struct {
	Courses    repository.CourseRepository
	Users      repository.UserRepository
	Categories repository.CategoryRepository
	Sections   repository.SectionRepository
	Ratings    repository.RatingRepository
	Images     storage.ImageUploader
	Folder     string
	Publisher  pubsub.Publisher
	EventTopic string
	Repairs    RepairScheduler
}

type courseService struct {
	CourseDeps
	logger zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(deps CourseDeps, logger zerolog.Logger) CourseService {
	return &courseService{
		CourseDeps: deps,
		logger:     logger.With().Str("service", "CourseService").Logger(),
	}
}

// ParseList decodes a JSON encoded array of strings as sent by multipart forms.
func ParseList(raw string) ([]string, error) {
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateCourse validates the input, uploads the thumbnail, stores the course and
// links it to its instructor and category.
func (s *courseService) CreateCourse(ctx context.Context, userID string, in CreateCourseInput, thumbnail *storage.File) (*model.Course, error) {
	tag, err := ParseList(in.Tag)
	if err != nil {
		return nil, &ValidationError{Message: "Invalid tag list", Err: err}
	}
	instructions, err := ParseList(in.Instructions)
	if err != nil {
		return nil, &ValidationError{Message: "Invalid instructions list", Err: err}
	}

	course := &model.Course{
		CourseName:        in.CourseName,
		CourseDescription: in.CourseDescription,
		WhatYouWillLearn:  in.WhatYouWillLearn,
		Status:            in.Status,
		Tag:               tag,
		Instructions:      instructions,
		CategoryID:        in.CategoryID,
	}
	err = validation.ValidateStruct(course,
		validation.Field(&course.CourseName, validation.Required),
		validation.Field(&course.CourseDescription, validation.Required),
		validation.Field(&course.WhatYouWillLearn, validation.Required),
		validation.Field(&course.Tag, validation.Required),
		validation.Field(&course.Instructions, validation.Required),
		validation.Field(&course.CategoryID, validation.Required),
	)
	if err == nil && in.Price == nil {
		err = errors.New("price: cannot be blank")
	}
	if err == nil && thumbnail == nil {
		err = errors.New("thumbnail: cannot be blank")
	}
	if err != nil {
		return nil, &ValidationError{Message: "All Fields are Mandatory", Err: err}
	}
	if err := validation.Validate(*in.Price, validation.Min(0.0)); err != nil {
		return nil, &ValidationError{Message: "Invalid course price", Err: fmt.Errorf("price: %w", err)}
	}
	course.Price = *in.Price

	if course.Status == "" {
		course.Status = model.CourseStatusDraft
	}
	if err := validateStatus(course.Status); err != nil {
		return nil, err
	}

	instructor, err := s.Users.GetUserByID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load instructor")
		return nil, fmt.Errorf("failed to load instructor: %w", err)
	}
	if instructor == nil || !instructor.IsInstructor() {
		return nil, &NotFoundError{Message: "Instructor Details Not Found"}
	}

	category, err := s.Categories.GetCategoryByID(ctx, in.CategoryID)
	if err != nil {
		s.logger.Error().Err(err).Str("category_id", in.CategoryID).Msg("Failed to load category")
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	if category == nil {
		return nil, &NotFoundError{Message: "Category Details Not Found"}
	}

	image, err := s.Images.UploadImage(ctx, thumbnail, s.Folder)
	if err != nil {
		return nil, fmt.Errorf("failed to upload thumbnail: %w", err)
	}

	course.InstructorID = instructor.ID
	course.CategoryID = category.ID
	course.Thumbnail = image.SecureURL
	if err := s.Courses.CreateCourse(ctx, course); err != nil {
		s.logger.Error().Err(err).Str("thumbnail", image.Key).Msg("Failed to create course record")
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	if err := s.Users.AddCourse(ctx, instructor.ID, course.ID); err != nil {
		s.logger.Error().Err(err).Str("course_id", course.ID).Msg("Failed to link course to instructor")
		s.rollbackCreate(ctx, course, false, err)
		return nil, fmt.Errorf("failed to link course to instructor: %w", err)
	}
	if err := s.Categories.AddCourse(ctx, category.ID, course.ID); err != nil {
		s.logger.Error().Err(err).Str("course_id", course.ID).Msg("Failed to link course to category")
		s.rollbackCreate(ctx, course, true, err)
		return nil, fmt.Errorf("failed to link course to category: %w", err)
	}

	course.CourseContent = []string{}
	course.StudentsEnrolled = []string{}
	course.RatingAndReviews = []string{}

	s.publishEvent(ctx, model.CourseEventCreated, course)
	return course, nil
}

// rollbackCreate undoes a partially linked course. Compensation keeps running
// after the request is cancelled; if it still fails a repair job is scheduled.
func (s *courseService) rollbackCreate(ctx context.Context, course *model.Course, instructorLinked bool, cause error) {
	ctx = context.WithoutCancel(ctx)
	log := s.logger.With().Str("course_id", course.ID).Logger()

	var failed error
	if instructorLinked {
		if err := s.Users.RemoveCourse(ctx, course.InstructorID, course.ID); err != nil {
			log.Error().Err(err).Msg("Compensation failed: unlink course from instructor")
			failed = err
		}
	}
	if failed == nil {
		if err := s.Courses.DeleteCourse(ctx, course.ID); err != nil {
			log.Error().Err(err).Msg("Compensation failed: delete course")
			failed = err
		}
	}
	if failed == nil {
		log.Warn().Err(cause).Msg("Rolled back partially created course")
		return
	}

	s.scheduleRepair(ctx, model.CourseRepairJob{
		Action:       model.RepairActionRollbackCreate,
		CourseID:     course.ID,
		InstructorID: course.InstructorID,
		CategoryID:   course.CategoryID,
		Reason:       cause.Error(),
	})
}

// scheduleRepair queues a job for the repair orchestrator. It never fails the
// caller; a job that cannot be queued is logged for manual repair.
func (s *courseService) scheduleRepair(ctx context.Context, job model.CourseRepairJob) {
	log := s.logger.With().Str("course_id", job.CourseID).Str("action", job.Action).Logger()
	job.CreatedAt = time.Now().UTC()
	if s.Repairs == nil {
		log.Error().Interface("job", job).Msg("No repair scheduler configured; manual repair required")
		return
	}
	if err := s.Repairs.Schedule(context.WithoutCancel(ctx), job); err != nil {
		log.Error().Err(err).Interface("job", job).Msg("Failed to schedule course repair; manual repair required")
		return
	}
	log.Warn().Msg("Scheduled course repair")
}

// EditCourse applies a patch to a course owned by the acting user and returns
// the fully populated course.
func (s *courseService) EditCourse(ctx context.Context, userID, courseID string, in EditCourseInput, thumbnail *storage.File) (*model.CourseDetails, error) {
	course, err := s.Courses.GetCourseByID(ctx, courseID)
	if err != nil {
		s.logger.Error().Err(err).Str("course_id", courseID).Msg("Failed to load course for edit")
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	if course == nil {
		return nil, &NotFoundError{Message: "Course not found"}
	}
	if err := s.authorize(ctx, userID, course); err != nil {
		return nil, err
	}
	patch, err := in.decode()
	if err != nil {
		s.logger.Error().Err(err).Str("course_id", courseID).Msg("Failed to decode course update")
		return nil, err
	}
	if err := validatePatch(&patch); err != nil {
		return nil, err
	}

	previousCategory := course.CategoryID
	if patch.CategoryID != nil && *patch.CategoryID != previousCategory {
		category, err := s.Categories.GetCategoryByID(ctx, *patch.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to load category: %w", err)
		}
		if category == nil {
			return nil, &NotFoundError{Message: "Category Details Not Found"}
		}
	}

	if thumbnail != nil {
		// The previous image is left in the bucket.
		image, err := s.Images.UploadImage(ctx, thumbnail, s.Folder)
		if err != nil {
			return nil, fmt.Errorf("failed to upload thumbnail: %w", err)
		}
		course.Thumbnail = image.SecureURL
	}

	patch.Apply(course)
	if err := s.Courses.UpdateCourse(ctx, course); err != nil {
		s.logger.Error().Err(err).Str("course_id", courseID).Msg("Failed to update course")
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	if course.CategoryID != previousCategory {
		if err := s.relinkCategory(ctx, course, previousCategory); err != nil {
			return nil, err
		}
	}

	s.publishEvent(ctx, model.CourseEventUpdated, course)
	return s.loadDetails(ctx, courseID, true)
}

// relinkCategory moves the course between category lists after the course row
// has been updated. A failed step leaves the lists out of sync with the row, so
// the move is handed to the repair orchestrator.
func (s *courseService) relinkCategory(ctx context.Context, course *model.Course, previousCategory string) error {
	err := s.Categories.RemoveCourse(ctx, previousCategory, course.ID)
	if err != nil {
		err = fmt.Errorf("failed to unlink course from previous category: %w", err)
	} else if err = s.Categories.AddCourse(ctx, course.CategoryID, course.ID); err != nil {
		err = fmt.Errorf("failed to link course to category: %w", err)
	}
	if err == nil {
		return nil
	}
	s.logger.Error().Err(err).Str("course_id", course.ID).Msg("Category move left course lists inconsistent")
	s.scheduleRepair(ctx, model.CourseRepairJob{
		Action:             model.RepairActionRelinkCategory,
		CourseID:           course.ID,
		CategoryID:         course.CategoryID,
		PreviousCategoryID: previousCategory,
		Reason:             err.Error(),
	})
	return err
}

// DeleteCourse removes a course, detaches it from enrolled students and deletes
// its section tree.
func (s *courseService) DeleteCourse(ctx context.Context, userID, courseID string) error {
	course, err := s.Courses.GetCourseByID(ctx, courseID)
	if err != nil {
		s.logger.Error().Err(err).Str("course_id", courseID).Msg("Failed to load course for delete")
		return fmt.Errorf("failed to load course: %w", err)
	}
	if course == nil {
		return &NotFoundError{Message: "Course not found"}
	}
	if err := s.authorize(ctx, userID, course); err != nil {
		return err
	}

	for _, studentID := range course.StudentsEnrolled {
		if err := s.Users.RemoveCourse(ctx, studentID, courseID); err != nil {
			return fmt.Errorf("failed to unenroll student %s: %w", studentID, err)
		}
	}

	for _, sectionID := range course.CourseContent {
		section, err := s.Sections.GetSectionByID(ctx, sectionID)
		if err != nil {
			return fmt.Errorf("failed to load section %s: %w", sectionID, err)
		}
		if section != nil {
			for _, subSectionID := range section.SubSection {
				if err := s.Sections.DeleteSubSection(ctx, subSectionID); err != nil {
					return fmt.Errorf("failed to delete sub-section %s: %w", subSectionID, err)
				}
			}
		}
		if err := s.Sections.DeleteSection(ctx, sectionID); err != nil {
			return fmt.Errorf("failed to delete section %s: %w", sectionID, err)
		}
	}

	if err := s.Users.RemoveCourse(ctx, course.InstructorID, courseID); err != nil {
		return fmt.Errorf("failed to unlink course from instructor: %w", err)
	}
	if err := s.Categories.RemoveCourse(ctx, course.CategoryID, courseID); err != nil {
		return fmt.Errorf("failed to unlink course from category: %w", err)
	}

	if err := s.Courses.DeleteCourse(ctx, courseID); err != nil {
		s.logger.Error().Err(err).Str("course_id", courseID).Msg("Failed to delete course")
		return fmt.Errorf("failed to delete course: %w", err)
	}

	s.publishEvent(ctx, model.CourseEventDeleted, course)
	return nil
}

// authorize allows the course instructor and admins to change a course.
func (s *courseService) authorize(ctx context.Context, userID string, course *model.Course) error {
	if userID != "" && userID == course.InstructorID {
		return nil
	}
	user, err := s.Users.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load acting user: %w", err)
	}
	if user != nil && user.IsAdmin() {
		return nil
	}
	return &ForbiddenError{Message: "You are not allowed to modify this course"}
}

// decode returns the patch with the JSON encoded lists applied. Malformed lists
// are server errors, matching how edits have always reported them.
func (in EditCourseInput) decode() (model.CoursePatch, error) {
	patch := in.CoursePatch
	if in.TagJSON != nil {
		tag, err := ParseList(*in.TagJSON)
		if err != nil {
			return patch, fmt.Errorf("failed to parse tag: %w", err)
		}
		patch.Tag = &tag
	}
	if in.InstructionsJSON != nil {
		instructions, err := ParseList(*in.InstructionsJSON)
		if err != nil {
			return patch, fmt.Errorf("failed to parse instructions: %w", err)
		}
		patch.Instructions = &instructions
	}
	return patch, nil
}

func validateStatus(status string) error {
	err := validation.Validate(status, validation.In(model.CourseStatusDraft, model.CourseStatusPublished))
	if err != nil {
		return &ValidationError{Message: "Invalid course status", Err: err}
	}
	return nil
}

func validatePatch(p *model.CoursePatch) error {
	err := validation.ValidateStruct(p,
		validation.Field(&p.CourseName, validation.NilOrNotEmpty),
		validation.Field(&p.CourseDescription, validation.NilOrNotEmpty),
		validation.Field(&p.WhatYouWillLearn, validation.NilOrNotEmpty),
		validation.Field(&p.Price, validation.Min(0.0)),
		validation.Field(&p.Status, validation.In(model.CourseStatusDraft, model.CourseStatusPublished)),
		validation.Field(&p.CategoryID, validation.NilOrNotEmpty),
		validation.Field(&p.Tag, validation.NilOrNotEmpty),
		validation.Field(&p.Instructions, validation.NilOrNotEmpty),
	)
	if err != nil {
		return &ValidationError{Message: "Invalid course update", Err: err}
	}
	return nil
}

func (s *courseService) publishEvent(ctx context.Context, eventType string, course *model.Course) {
	if s.Publisher == nil || s.EventTopic == "" {
		return
	}
	data, err := json.Marshal(model.CourseEvent{
		Type:         eventType,
		CourseID:     course.ID,
		InstructorID: course.InstructorID,
		CategoryID:   course.CategoryID,
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("course_id", course.ID).Msg("Failed to marshal course event")
		return
	}
	if _, err := s.Publisher.Publish(ctx, s.EventTopic, data, map[string]string{"type": eventType}); err != nil {
		// The course change is already committed.
		s.logger.Error().Err(err).Str("topic", s.EventTopic).Str("type", eventType).Msg("Failed to publish course event")
	}
}
