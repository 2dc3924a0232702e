package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"learnhub/internal/api/v1/dto"
	"learnhub/internal/middleware"
	"learnhub/internal/model"
	"learnhub/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// CourseHandler handles course-related endpoints
type CourseHandler struct {
	courseService service.CourseService
	validate      *validator.Validate
	logger        zerolog.Logger
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(courseService service.CourseService, validate *validator.Validate, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		validate:      validate,
		logger:        logger.With().Str("handler", "CourseHandler").Logger(),
	}
}

// RegisterRoutes mounts course routes
func (h *CourseHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("POST /courses", authMw(http.HandlerFunc(h.createCourse)))
	mux.Handle("POST /courses/edit", authMw(http.HandlerFunc(h.editCourse)))
	mux.Handle("DELETE /courses", authMw(http.HandlerFunc(h.deleteCourse)))
	mux.HandleFunc("GET /courses", h.getAllCourses)
	mux.HandleFunc("GET /courses/{courseId}", h.getCourseDetails)
	mux.Handle("GET /courses/{courseId}/full", authMw(http.HandlerFunc(h.getFullCourseDetails)))
	mux.Handle("GET /instructor/courses", authMw(http.HandlerFunc(h.getInstructorCourses)))
}

// createCourse godoc
// @Summary Create a course
// @Description Creates a course taught by the authenticated instructor and links it to its category.
// @Tags courses
// @Accept multipart/form-data
// @Produce json
// @Param courseName formData string true "Course name"
// @Param courseDescription formData string true "Course description"
// @Param whatYouWillLearn formData string true "Learning outcomes"
// @Param price formData number true "Price"
// @Param tag formData string true "JSON encoded list of tags"
// @Param instructions formData string true "JSON encoded list of instructions"
// @Param category formData string true "Category ID"
// @Param status formData string false "Draft or Published"
// @Param thumbnailImage formData file true "Thumbnail image"
// @Success 200 {object} dto.CourseEnvelope
// @Failure 400 {object} dto.Envelope "Missing or malformed fields"
// @Failure 401 {object} dto.Envelope "Missing or invalid token"
// @Failure 404 {object} dto.Envelope "Instructor or category not found"
// @Failure 500 {object} dto.Envelope "Failed to create course"
// @Router /courses [post]
func (h *CourseHandler) createCourse(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeFail(w, http.StatusUnauthorized, "Unauthorized: User ID not found in context", "")
		return
	}
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid form data", err.Error())
		return
	}

	price, ok := h.parsePrice(w, r)
	if !ok {
		return
	}
	thumbnail, closeFile, err := formFile(r, dto.FieldThumbnail)
	if err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid thumbnail", err.Error())
		return
	}
	defer closeFile()

	in := service.CreateCourseInput{
		CourseName:        r.FormValue(dto.FieldCourseName),
		CourseDescription: r.FormValue(dto.FieldCourseDescription),
		WhatYouWillLearn:  r.FormValue(dto.FieldWhatYouWillLearn),
		Tag:               r.FormValue(dto.FieldTag),
		Instructions:      r.FormValue(dto.FieldInstructions),
		CategoryID:        r.FormValue(dto.FieldCategory),
		Status:            r.FormValue(dto.FieldStatus),
		Price:             price,
	}

	course, err := h.courseService.CreateCourse(r.Context(), userID, in, thumbnail)
	if err != nil {
		writeError(w, h.logger, err, "Failed to create course")
		return
	}
	writeData(w, course, "Course Created Successfully")
}

// editCourse godoc
// @Summary Edit a course
// @Description Updates the supplied fields of a course owned by the caller and returns it fully populated.
// @Tags courses
// @Accept multipart/form-data
// @Produce json
// @Param courseId formData string true "Course ID"
// @Param courseName formData string false "Course name"
// @Param courseDescription formData string false "Course description"
// @Param whatYouWillLearn formData string false "Learning outcomes"
// @Param price formData number false "Price"
// @Param tag formData string false "JSON encoded list of tags"
// @Param instructions formData string false "JSON encoded list of instructions"
// @Param category formData string false "Category ID"
// @Param status formData string false "Draft or Published"
// @Param thumbnailImage formData file false "New thumbnail image"
// @Success 200 {object} dto.CourseDetailsEnvelope
// @Failure 400 {object} dto.Envelope "Invalid field values"
// @Failure 401 {object} dto.Envelope "Missing or invalid token"
// @Failure 403 {object} dto.Envelope "Caller does not own the course"
// @Failure 404 {object} dto.Envelope "Course not found"
// @Failure 500 {object} dto.Envelope "Internal server error"
// @Router /courses/edit [post]
func (h *CourseHandler) editCourse(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeFail(w, http.StatusUnauthorized, "Unauthorized: User ID not found in context", "")
		return
	}
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid form data", err.Error())
		return
	}

	price, ok := h.parsePrice(w, r)
	if !ok {
		return
	}
	in := service.EditCourseInput{CoursePatch: model.CoursePatch{Price: price}}
	for field, dst := range map[string]**string{
		dto.FieldCourseName:        &in.CourseName,
		dto.FieldCourseDescription: &in.CourseDescription,
		dto.FieldWhatYouWillLearn:  &in.WhatYouWillLearn,
		dto.FieldCategory:          &in.CategoryID,
		dto.FieldStatus:            &in.Status,
		dto.FieldTag:               &in.TagJSON,
		dto.FieldInstructions:      &in.InstructionsJSON,
	} {
		if v, ok := formValue(r, field); ok {
			*dst = &v
		}
	}

	thumbnail, closeFile, err := formFile(r, dto.FieldThumbnail)
	if err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid thumbnail", err.Error())
		return
	}
	defer closeFile()

	courseID, _ := formValue(r, dto.FieldCourseID)
	details, err := h.courseService.EditCourse(r.Context(), userID, courseID, in, thumbnail)
	if err != nil {
		writeError(w, h.logger, err, "Internal server error")
		return
	}
	writeData(w, details, "Course updated successfully")
}

// deleteCourse godoc
// @Summary Delete a course
// @Description Deletes a course with its sections and unenrolls its students.
// @Tags courses
// @Accept json
// @Produce json
// @Param body body dto.DeleteCourseDTO true "Course to delete"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.Envelope "Invalid JSON payload"
// @Failure 401 {object} dto.Envelope "Missing or invalid token"
// @Failure 403 {object} dto.Envelope "Caller does not own the course"
// @Failure 404 {object} dto.Envelope "Course not found"
// @Failure 500 {object} dto.Envelope "Server error"
// @Router /courses [delete]
func (h *CourseHandler) deleteCourse(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeFail(w, http.StatusUnauthorized, "Unauthorized: User ID not found in context", "")
		return
	}
	var req dto.DeleteCourseDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid JSON payload", err.Error())
		return
	}
	if err := h.courseService.DeleteCourse(r.Context(), userID, req.CourseID); err != nil {
		writeError(w, h.logger, err, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, dto.Envelope{Success: true, Message: "Course deleted successfully"})
}

// getAllCourses godoc
// @Summary List courses
// @Description Lists every course with its instructor and category.
// @Tags courses
// @Produce json
// @Success 200 {object} dto.CourseListEnvelope
// @Failure 500 {object} dto.Envelope "Failed to fetch courses"
// @Router /courses [get]
func (h *CourseHandler) getAllCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseService.GetAllCourses(r.Context())
	if err != nil {
		writeError(w, h.logger, err, "Failed to fetch courses")
		return
	}
	writeData(w, courses, "All courses fetched successfully")
}

// getCourseDetails godoc
// @Summary Get course details
// @Description Returns a course with its instructor, category and section tree.
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.CourseDetailsEnvelope
// @Failure 404 {object} dto.Envelope "Course not found"
// @Failure 500 {object} dto.Envelope "Failed to fetch course details"
// @Router /courses/{courseId} [get]
func (h *CourseHandler) getCourseDetails(w http.ResponseWriter, r *http.Request) {
	details, err := h.courseService.GetCourseDetails(r.Context(), r.PathValue("courseId"))
	if err != nil {
		writeError(w, h.logger, err, "Failed to fetch course details")
		return
	}
	writeData(w, details, "Course details fetched successfully")
}

// getFullCourseDetails godoc
// @Summary Get full course details
// @Description Returns a course with every reference populated, including ratings and reviews.
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.CourseDetailsEnvelope
// @Failure 401 {object} dto.Envelope "Missing or invalid token"
// @Failure 404 {object} dto.Envelope "Course not found"
// @Failure 500 {object} dto.Envelope "Failed to fetch full course details"
// @Router /courses/{courseId}/full [get]
func (h *CourseHandler) getFullCourseDetails(w http.ResponseWriter, r *http.Request) {
	details, err := h.courseService.GetFullCourseDetails(r.Context(), r.PathValue("courseId"))
	if err != nil {
		writeError(w, h.logger, err, "Failed to fetch full course details")
		return
	}
	writeData(w, details, "Full course details fetched successfully")
}

// getInstructorCourses godoc
// @Summary List the caller's courses
// @Description Lists the courses taught by the authenticated instructor.
// @Tags courses
// @Produce json
// @Success 200 {object} dto.CourseListEnvelope
// @Failure 401 {object} dto.Envelope "Missing or invalid token"
// @Failure 500 {object} dto.Envelope "Failed to fetch instructor courses"
// @Router /instructor/courses [get]
func (h *CourseHandler) getInstructorCourses(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeFail(w, http.StatusUnauthorized, "Unauthorized: User ID not found in context", "")
		return
	}
	courses, err := h.courseService.GetInstructorCourses(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to fetch instructor courses")
		return
	}
	writeData(w, courses, "Instructor courses fetched successfully")
}

// parsePrice reads the optional price field. It writes a 400 response and
// returns false when the value is not a number.
func (h *CourseHandler) parsePrice(w http.ResponseWriter, r *http.Request) (*float64, bool) {
	raw, sent := formValue(r, dto.FieldPrice)
	if err := h.validate.Struct(dto.CoursePriceDTO{Price: raw}); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid price", err.Error())
		return nil, false
	}
	if !sent || raw == "" {
		return nil, true
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid price", err.Error())
		return nil, false
	}
	return &price, true
}
