package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"learnhub/internal/model"
	"learnhub/internal/storage"
)

func validInput() CreateCourseInput {
	return CreateCourseInput{
		CourseName:        "Go in Practice",
		CourseDescription: "Write services in Go",
		WhatYouWillLearn:  "Interfaces, errors, concurrency",
		Price:             price(499),
		Tag:               `["go","backend"]`,
		Instructions:      `["Bring a laptop"]`,
		CategoryID:        "cat-dev",
	}
}

func price(v float64) *float64 { return &v }

func seedCreate(f *fixture) {
	f.store.addUser("inst-1", model.AccountTypeInstructor)
	f.store.addUser("stud-1", model.AccountTypeStudent)
	f.store.addCategory("cat-dev", "Development")
}

func TestCreateCourseMissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateCourseInput)
		noFile bool
	}{
		{name: "course name", mutate: func(in *CreateCourseInput) { in.CourseName = "" }},
		{name: "description", mutate: func(in *CreateCourseInput) { in.CourseDescription = "" }},
		{name: "what you will learn", mutate: func(in *CreateCourseInput) { in.WhatYouWillLearn = "" }},
		{name: "price absent", mutate: func(in *CreateCourseInput) { in.Price = nil }},
		{name: "empty tag", mutate: func(in *CreateCourseInput) { in.Tag = "[]" }},
		{name: "empty instructions", mutate: func(in *CreateCourseInput) { in.Instructions = "[]" }},
		{name: "category", mutate: func(in *CreateCourseInput) { in.CategoryID = "" }},
		{name: "thumbnail", mutate: func(*CreateCourseInput) {}, noFile: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			seedCreate(f)
			in := validInput()
			tt.mutate(&in)
			var file *storage.File
			if !tt.noFile {
				file = thumbnail()
			}

			_, err := f.svc.CreateCourse(context.Background(), "inst-1", in, file)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Message != "All Fields are Mandatory" {
				t.Errorf("unexpected message %q", ve.Message)
			}
			if f.uploader.calls != 0 {
				t.Errorf("expected no upload, got %d", f.uploader.calls)
			}
			if m := f.store.mutations(); len(m) != 0 {
				t.Errorf("expected no writes, got %v", m)
			}
		})
	}
}

func TestCreateCoursePrice(t *testing.T) {
	f := newFixture()
	seedCreate(f)

	in := validInput()
	in.Price = price(0)
	course, err := f.svc.CreateCourse(context.Background(), "inst-1", in, thumbnail())
	if err != nil {
		t.Fatalf("free course rejected: %v", err)
	}
	if course.Price != 0 {
		t.Errorf("unexpected price %v", course.Price)
	}

	f = newFixture()
	seedCreate(f)
	in.Price = price(-50)
	_, err = f.svc.CreateCourse(context.Background(), "inst-1", in, thumbnail())
	if StatusCode(err) != http.StatusBadRequest || PublicMessage(err, "") != "Invalid course price" {
		t.Fatalf("expected 400 for negative price, got %v", err)
	}
	if f.uploader.calls != 0 {
		t.Errorf("expected no upload, got %d", f.uploader.calls)
	}
	if m := f.store.mutations(); len(m) != 0 {
		t.Errorf("expected no writes, got %v", m)
	}
}

func TestCreateCourseMalformedLists(t *testing.T) {
	f := newFixture()
	seedCreate(f)

	in := validInput()
	in.Tag = "go,backend"
	_, err := f.svc.CreateCourse(context.Background(), "inst-1", in, thumbnail())
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if PublicMessage(err, "") != "Invalid tag list" {
		t.Errorf("unexpected message %q", PublicMessage(err, ""))
	}

	in = validInput()
	in.Instructions = `{"a":1}`
	_, err = f.svc.CreateCourse(context.Background(), "inst-1", in, thumbnail())
	if PublicMessage(err, "") != "Invalid instructions list" {
		t.Errorf("unexpected message %q", PublicMessage(err, ""))
	}
	if f.uploader.calls != 0 {
		t.Errorf("expected no upload, got %d", f.uploader.calls)
	}
}

func TestCreateCourseInvalidStatus(t *testing.T) {
	f := newFixture()
	seedCreate(f)
	in := validInput()
	in.Status = "Archived"

	_, err := f.svc.CreateCourse(context.Background(), "inst-1", in, thumbnail())
	if StatusCode(err) != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%v)", StatusCode(err), err)
	}
}

func TestCreateCourseRequiresInstructor(t *testing.T) {
	for _, userID := range []string{"stud-1", "ghost"} {
		t.Run(userID, func(t *testing.T) {
			f := newFixture()
			seedCreate(f)

			_, err := f.svc.CreateCourse(context.Background(), userID, validInput(), thumbnail())
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected not found, got %v", err)
			}
			if PublicMessage(err, "") != "Instructor Details Not Found" {
				t.Errorf("unexpected message %q", PublicMessage(err, ""))
			}
			if f.uploader.calls != 0 {
				t.Errorf("upload happened before instructor check")
			}
		})
	}
}

func TestCreateCourseUnknownCategory(t *testing.T) {
	f := newFixture()
	seedCreate(f)
	in := validInput()
	in.CategoryID = "cat-missing"

	_, err := f.svc.CreateCourse(context.Background(), "inst-1", in, thumbnail())
	if PublicMessage(err, "") != "Category Details Not Found" {
		t.Fatalf("unexpected error %v", err)
	}
	if f.uploader.calls != 0 {
		t.Errorf("upload happened before category check")
	}
	if m := f.store.mutations(); len(m) != 0 {
		t.Errorf("expected no writes, got %v", m)
	}
}

func TestCreateCourseLinksBackReferences(t *testing.T) {
	f := newFixture()
	seedCreate(f)

	course, err := f.svc.CreateCourse(context.Background(), "inst-1", validInput(), thumbnail())
	if err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}

	if course.Status != model.CourseStatusDraft {
		t.Errorf("expected default status Draft, got %q", course.Status)
	}
	if course.InstructorID != "inst-1" || course.CategoryID != "cat-dev" {
		t.Errorf("unexpected references: %+v", course)
	}
	if !strings.HasPrefix(course.Thumbnail, "https://cdn.test/thumbnails/") {
		t.Errorf("unexpected thumbnail %q", course.Thumbnail)
	}
	if len(course.Tag) != 2 || course.Tag[0] != "go" || course.Tag[1] != "backend" {
		t.Errorf("unexpected tag %v", course.Tag)
	}
	if course.CourseContent == nil || len(course.CourseContent) != 0 {
		t.Errorf("expected empty course content, got %v", course.CourseContent)
	}
	if f.uploader.folders[0] != "thumbnails" {
		t.Errorf("uploaded to %q", f.uploader.folders[0])
	}

	if n := countID(f.store.users["inst-1"].Courses, course.ID); n != 1 {
		t.Errorf("instructor lists course %d times", n)
	}
	if n := countID(f.store.categories["cat-dev"].Courses, course.ID); n != 1 {
		t.Errorf("category lists course %d times", n)
	}

	if len(f.publisher.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(f.publisher.events))
	}
	var ev model.CourseEvent
	if err := json.Unmarshal([]byte(f.publisher.events[0].payload), &ev); err != nil {
		t.Fatalf("event payload: %v", err)
	}
	if ev.Type != model.CourseEventCreated || ev.CourseID != course.ID {
		t.Errorf("unexpected event %+v", ev)
	}
	if f.publisher.events[0].topic != "course-events" {
		t.Errorf("unexpected topic %q", f.publisher.events[0].topic)
	}
}

func TestCreateCourseSurvivesPublishFailure(t *testing.T) {
	f := newFixture()
	seedCreate(f)
	f.publisher.err = errors.New("pubsub down")

	if _, err := f.svc.CreateCourse(context.Background(), "inst-1", validInput(), thumbnail()); err != nil {
		t.Fatalf("publish failure should not fail create: %v", err)
	}
}

func TestCreateCourseRollsBackWhenCategoryLinkFails(t *testing.T) {
	f := newFixture()
	seedCreate(f)
	f.store.failOn["CategoryAddCourse"] = errors.New("connection reset")

	_, err := f.svc.CreateCourse(context.Background(), "inst-1", validInput(), thumbnail())
	if StatusCode(err) != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d (%v)", StatusCode(err), err)
	}
	if len(f.store.courses) != 0 {
		t.Errorf("course record left behind: %v", f.store.courses)
	}
	if len(f.store.users["inst-1"].Courses) != 0 {
		t.Errorf("instructor still lists %v", f.store.users["inst-1"].Courses)
	}
	if len(f.repairs.jobs) != 0 {
		t.Errorf("unexpected repair jobs %v", f.repairs.jobs)
	}
	if len(f.publisher.events) != 0 {
		t.Errorf("unexpected events on failed create")
	}
}

func TestCreateCourseSchedulesRepairWhenCompensationFails(t *testing.T) {
	f := newFixture()
	seedCreate(f)
	f.store.failOn["CategoryAddCourse"] = errors.New("connection reset")
	f.store.failOn["UserRemoveCourse"] = errors.New("connection reset")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if _, err := f.svc.CreateCourse(ctx, "inst-1", validInput(), thumbnail()); err == nil {
		t.Fatal("expected error")
	}

	if len(f.repairs.jobs) != 1 {
		t.Fatalf("expected 1 repair job, got %d", len(f.repairs.jobs))
	}
	job := f.repairs.jobs[0]
	if job.Action != model.RepairActionRollbackCreate {
		t.Errorf("unexpected action %q", job.Action)
	}
	if job.InstructorID != "inst-1" || job.CategoryID != "cat-dev" || job.CourseID == "" {
		t.Errorf("unexpected job %+v", job)
	}
	if !strings.Contains(job.Reason, "connection reset") {
		t.Errorf("reason should carry the cause, got %q", job.Reason)
	}
}

func seedCourse(f *fixture, students ...string) *model.Course {
	f.store.addUser("inst-1", model.AccountTypeInstructor)
	f.store.addUser("inst-2", model.AccountTypeInstructor)
	f.store.addUser("admin-1", model.AccountTypeAdmin)
	f.store.addCategory("cat-dev", "Development")
	f.store.addCategory("cat-design", "Design")
	for _, s := range students {
		f.store.addUser(s, model.AccountTypeStudent)
	}
	return f.store.addCourse(&model.Course{
		ID:               "course-go",
		CourseName:       "Go",
		Status:           model.CourseStatusPublished,
		Tag:              []string{"go"},
		Instructions:     []string{"none"},
		InstructorID:     "inst-1",
		CategoryID:       "cat-dev",
		StudentsEnrolled: students,
	})
}

func TestDeleteCourseCascades(t *testing.T) {
	f := newFixture()
	seedCourse(f, "stud-1", "stud-2")
	f.store.addSectionTree("course-go", 3, 2)
	f.store.calls = nil

	if err := f.svc.DeleteCourse(context.Background(), "inst-1", "course-go"); err != nil {
		t.Fatalf("DeleteCourse: %v", err)
	}

	if len(f.store.sections) != 0 || len(f.store.subSections) != 0 {
		t.Errorf("section tree left behind: %d sections, %d sub-sections", len(f.store.sections), len(f.store.subSections))
	}
	for _, s := range []string{"stud-1", "stud-2", "inst-1"} {
		if containsID(f.store.users[s].Courses, "course-go") {
			t.Errorf("%s still lists the course", s)
		}
	}
	if containsID(f.store.categories["cat-dev"].Courses, "course-go") {
		t.Error("category still lists the course")
	}
	if _, ok := f.store.courses["course-go"]; ok {
		t.Error("course record not deleted")
	}

	var subs, secs int
	muts := f.store.mutations()
	for i, c := range muts {
		switch {
		case strings.HasPrefix(c, "DeleteSubSection:"):
			subs++
		case strings.HasPrefix(c, "DeleteSection:"):
			secs++
			// every sub-section of this section is already gone
			prefix := strings.TrimPrefix(c, "DeleteSection:") + "-sub-"
			for _, later := range muts[i+1:] {
				if strings.HasPrefix(later, "DeleteSubSection:"+prefix) {
					t.Errorf("%s deleted after its section", later)
				}
			}
		}
	}
	if subs != 6 || secs != 3 {
		t.Errorf("expected 6 sub-section and 3 section deletes, got %d and %d", subs, secs)
	}
	if muts[0] != "UserRemoveCourse:stud-1" || muts[1] != "UserRemoveCourse:stud-2" {
		t.Errorf("students should be unenrolled first, got %v", muts[:2])
	}
	if last := muts[len(muts)-1]; last != "DeleteCourse:course-go" {
		t.Errorf("course record should be deleted last, got %q", last)
	}

	if len(f.publisher.events) != 1 || f.publisher.events[0].attrs["type"] != model.CourseEventDeleted {
		t.Errorf("expected a delete event, got %+v", f.publisher.events)
	}
}

func TestDeleteCourseUnknown(t *testing.T) {
	f := newFixture()
	seedCourse(f)
	f.store.calls = nil

	err := f.svc.DeleteCourse(context.Background(), "inst-1", "course-nope")
	if !errors.Is(err, ErrNotFound) || PublicMessage(err, "") != "Course not found" {
		t.Fatalf("expected Course not found, got %v", err)
	}
	if m := f.store.mutations(); len(m) != 0 {
		t.Errorf("expected no writes, got %v", m)
	}
}

func TestDeleteCourseTwice(t *testing.T) {
	f := newFixture()
	seedCourse(f)

	if err := f.svc.DeleteCourse(context.Background(), "inst-1", "course-go"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := f.svc.DeleteCourse(context.Background(), "inst-1", "course-go"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected not found, got %v", err)
	}
}

func TestDeleteCourseAuthorization(t *testing.T) {
	f := newFixture()
	seedCourse(f, "stud-1")
	f.store.calls = nil

	for _, userID := range []string{"inst-2", "stud-1", ""} {
		err := f.svc.DeleteCourse(context.Background(), userID, "course-go")
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("%q: expected forbidden, got %v", userID, err)
		}
	}
	if m := f.store.mutations(); len(m) != 0 {
		t.Fatalf("forbidden delete wrote %v", m)
	}

	if err := f.svc.DeleteCourse(context.Background(), "admin-1", "course-go"); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}

func TestEditCoursePatchesFields(t *testing.T) {
	f := newFixture()
	seedCourse(f)
	f.store.addSectionTree("course-go", 1, 2)
	f.store.ratings["course-go"] = []model.RatingAndReview{{ID: "r1", UserID: "stud-1", CourseID: "course-go", Rating: 5}}

	tag := []string{"a", "b"}
	name := "Advanced Go"
	details, err := f.svc.EditCourse(context.Background(), "inst-1", "course-go", EditCourseInput{CoursePatch: model.CoursePatch{
		CourseName: &name,
		Tag:        &tag,
	}}, nil)
	if err != nil {
		t.Fatalf("EditCourse: %v", err)
	}

	stored := f.store.courses["course-go"]
	if stored.CourseName != "Advanced Go" || len(stored.Tag) != 2 || stored.Tag[1] != "b" {
		t.Errorf("patch not stored: %+v", stored)
	}
	if stored.Instructions[0] != "none" {
		t.Errorf("unpatched field changed: %v", stored.Instructions)
	}
	if details.CourseName != "Advanced Go" {
		t.Errorf("details not refreshed: %q", details.CourseName)
	}
	if details.Instructor == nil || details.Instructor.ID != "inst-1" {
		t.Errorf("instructor not populated: %+v", details.Instructor)
	}
	if details.Category == nil || details.Category.ID != "cat-dev" {
		t.Errorf("category not populated: %+v", details.Category)
	}
	if len(details.CourseContent) != 1 || len(details.CourseContent[0].SubSection) != 2 {
		t.Errorf("section tree not populated: %+v", details.CourseContent)
	}
	if len(details.RatingAndReviews) != 1 {
		t.Errorf("ratings not populated: %+v", details.RatingAndReviews)
	}
	if f.uploader.calls != 0 {
		t.Errorf("unexpected upload")
	}
}

func TestEditCourseReplacesThumbnail(t *testing.T) {
	f := newFixture()
	seedCourse(f)

	details, err := f.svc.EditCourse(context.Background(), "admin-1", "course-go", EditCourseInput{}, thumbnail())
	if err != nil {
		t.Fatalf("EditCourse: %v", err)
	}
	if f.uploader.calls != 1 {
		t.Fatalf("expected 1 upload, got %d", f.uploader.calls)
	}
	if !strings.HasPrefix(details.Thumbnail, "https://cdn.test/") {
		t.Errorf("thumbnail not replaced: %q", details.Thumbnail)
	}
}

func TestEditCourseMovesCategory(t *testing.T) {
	f := newFixture()
	seedCourse(f)
	design := "cat-design"

	if _, err := f.svc.EditCourse(context.Background(), "inst-1", "course-go", EditCourseInput{CoursePatch: model.CoursePatch{CategoryID: &design}}, nil); err != nil {
		t.Fatalf("EditCourse: %v", err)
	}
	if containsID(f.store.categories["cat-dev"].Courses, "course-go") {
		t.Error("old category still lists the course")
	}
	if n := countID(f.store.categories["cat-design"].Courses, "course-go"); n != 1 {
		t.Errorf("new category lists the course %d times", n)
	}

	missing := "cat-missing"
	_, err := f.svc.EditCourse(context.Background(), "inst-1", "course-go", EditCourseInput{CoursePatch: model.CoursePatch{CategoryID: &missing}}, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected not found for unknown category, got %v", err)
	}
}

func TestEditCourseDecodesLists(t *testing.T) {
	f := newFixture()
	seedCourse(f)
	tag := `["x","y"]`
	instructions := `["read first"]`

	_, err := f.svc.EditCourse(context.Background(), "inst-1", "course-go", EditCourseInput{
		TagJSON:          &tag,
		InstructionsJSON: &instructions,
	}, nil)
	if err != nil {
		t.Fatalf("EditCourse: %v", err)
	}
	stored := f.store.courses["course-go"]
	if len(stored.Tag) != 2 || stored.Tag[0] != "x" || stored.Instructions[0] != "read first" {
		t.Errorf("lists not decoded: %+v", stored)
	}
}

func TestEditCourseSchedulesRepairWhenCategoryMoveFails(t *testing.T) {
	for _, call := range []string{"CategoryRemoveCourse", "CategoryAddCourse"} {
		t.Run(call, func(t *testing.T) {
			f := newFixture()
			seedCourse(f)
			f.store.failOn[call] = errors.New("connection reset")
			design := "cat-design"

			_, err := f.svc.EditCourse(context.Background(), "inst-1", "course-go",
				EditCourseInput{CoursePatch: model.CoursePatch{CategoryID: &design}}, nil)
			if StatusCode(err) != http.StatusInternalServerError {
				t.Fatalf("expected 500, got %v", err)
			}
			if len(f.repairs.jobs) != 1 {
				t.Fatalf("expected 1 repair job, got %d", len(f.repairs.jobs))
			}
			job := f.repairs.jobs[0]
			if job.Action != model.RepairActionRelinkCategory {
				t.Errorf("unexpected action %q", job.Action)
			}
			if job.CourseID != "course-go" || job.CategoryID != "cat-design" || job.PreviousCategoryID != "cat-dev" {
				t.Errorf("unexpected job %+v", job)
			}
			if !strings.Contains(job.Reason, "connection reset") {
				t.Errorf("reason should carry the cause, got %q", job.Reason)
			}
		})
	}
}

func TestEditCourseErrors(t *testing.T) {
	f := newFixture()
	seedCourse(f)
	empty := ""
	bad := "Archived"
	negative := -1.0
	malformed := "a,b"

	tests := []struct {
		name     string
		userID   string
		courseID string
		in       EditCourseInput
		status   int
	}{
		{name: "unknown course", userID: "inst-1", courseID: "course-nope", status: http.StatusNotFound},
		{name: "other instructor", userID: "inst-2", courseID: "course-go", status: http.StatusForbidden},
		{name: "blank name", userID: "inst-1", courseID: "course-go", in: EditCourseInput{CoursePatch: model.CoursePatch{CourseName: &empty}}, status: http.StatusBadRequest},
		{name: "bad status", userID: "inst-1", courseID: "course-go", in: EditCourseInput{CoursePatch: model.CoursePatch{Status: &bad}}, status: http.StatusBadRequest},
		{name: "unknown course with malformed tag", userID: "inst-1", courseID: "course-nope", in: EditCourseInput{TagJSON: &malformed}, status: http.StatusNotFound},
		{name: "malformed tag", userID: "inst-1", courseID: "course-go", in: EditCourseInput{TagJSON: &malformed}, status: http.StatusInternalServerError},
		{name: "malformed instructions", userID: "inst-1", courseID: "course-go", in: EditCourseInput{InstructionsJSON: &malformed}, status: http.StatusInternalServerError},
		{name: "negative price", userID: "inst-1", courseID: "course-go", in: EditCourseInput{CoursePatch: model.CoursePatch{Price: &negative}}, status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.store.calls = nil
			_, err := f.svc.EditCourse(context.Background(), tt.userID, tt.courseID, tt.in, thumbnail())
			if got := StatusCode(err); got != tt.status {
				t.Fatalf("expected %d, got %d (%v)", tt.status, got, err)
			}
			if m := f.store.mutations(); len(m) != 0 {
				t.Errorf("expected no writes, got %v", m)
			}
		})
	}
	if f.uploader.calls != 0 {
		t.Errorf("rejected edits uploaded %d images", f.uploader.calls)
	}
}

func TestParseList(t *testing.T) {
	list, err := ParseList(`["a","b"]`)
	if err != nil || len(list) != 2 {
		t.Fatalf("ParseList: %v %v", list, err)
	}
	for _, raw := range []string{"", "a,b", `"a"`, `[1,2]`} {
		if _, err := ParseList(raw); err == nil {
			t.Errorf("ParseList(%q) should fail", raw)
		}
	}
}
