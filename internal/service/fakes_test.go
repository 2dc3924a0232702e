package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"learnhub/internal/model"
	"learnhub/internal/storage"

	"github.com/rs/zerolog"
)

// memStore is an in-memory stand-in for the Postgres repositories. Every
// mutation is appended to calls so tests can assert ordering.
type memStore struct {
	users       map[string]*model.User
	categories  map[string]*model.Category
	courses     map[string]*model.Course
	courseOrder []string
	sections    map[string]*model.Section
	subSections map[string]*model.SubSection
	ratings     map[string][]model.RatingAndReview

	calls  []string
	failOn map[string]error
	nextID int
}

func newMemStore() *memStore {
	return &memStore{
		users:       map[string]*model.User{},
		categories:  map[string]*model.Category{},
		courses:     map[string]*model.Course{},
		sections:    map[string]*model.Section{},
		subSections: map[string]*model.SubSection{},
		ratings:     map[string][]model.RatingAndReview{},
		failOn:      map[string]error{},
	}
}

func (m *memStore) record(call string) error {
	m.calls = append(m.calls, call)
	name := call
	if i := strings.Index(call, ":"); i >= 0 {
		name = call[:i]
	}
	return m.failOn[name]
}

func (m *memStore) mutations() []string {
	var out []string
	for _, c := range m.calls {
		if !strings.HasPrefix(c, "Get") && !strings.HasPrefix(c, "List") {
			out = append(out, c)
		}
	}
	return out
}

func (m *memStore) addUser(id, accountType string) *model.User {
	u := &model.User{ID: id, FirstName: id, AccountType: accountType, Courses: []string{}}
	m.users[id] = u
	return u
}

func (m *memStore) addCategory(id, name string) *model.Category {
	c := &model.Category{ID: id, Name: name, Courses: []string{}}
	m.categories[id] = c
	return c
}

func (m *memStore) addCourse(c *model.Course) *model.Course {
	if c.CourseContent == nil {
		c.CourseContent = []string{}
	}
	if c.StudentsEnrolled == nil {
		c.StudentsEnrolled = []string{}
	}
	m.courses[c.ID] = c
	m.courseOrder = append(m.courseOrder, c.ID)
	if u, ok := m.users[c.InstructorID]; ok {
		u.Courses = append(u.Courses, c.ID)
	}
	if cat, ok := m.categories[c.CategoryID]; ok {
		cat.Courses = append(cat.Courses, c.ID)
	}
	for _, sid := range c.StudentsEnrolled {
		if u, ok := m.users[sid]; ok {
			u.Courses = append(u.Courses, c.ID)
		}
	}
	return c
}

// addSectionTree gives the course n sections with k sub-sections each.
func (m *memStore) addSectionTree(courseID string, n, k int) {
	c := m.courses[courseID]
	for i := 0; i < n; i++ {
		sec := &model.Section{ID: fmt.Sprintf("%s-sec-%d", courseID, i), CourseID: courseID, SectionName: fmt.Sprintf("Section %d", i)}
		for j := 0; j < k; j++ {
			sub := &model.SubSection{ID: fmt.Sprintf("%s-sub-%d", sec.ID, j), SectionID: sec.ID, Title: fmt.Sprintf("Lesson %d.%d", i, j)}
			m.subSections[sub.ID] = sub
			sec.SubSection = append(sec.SubSection, sub.ID)
		}
		m.sections[sec.ID] = sec
		c.CourseContent = append(c.CourseContent, sec.ID)
	}
}

func copyCourse(c *model.Course) *model.Course {
	cp := *c
	cp.Tag = append([]string(nil), c.Tag...)
	cp.Instructions = append([]string(nil), c.Instructions...)
	cp.CourseContent = append([]string{}, c.CourseContent...)
	cp.StudentsEnrolled = append([]string{}, c.StudentsEnrolled...)
	return &cp
}

func removeID(list []string, id string) []string {
	out := list[:0]
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func containsID(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

func countID(list []string, id string) int {
	n := 0
	for _, v := range list {
		if v == id {
			n++
		}
	}
	return n
}

type memCourseRepo struct{ *memStore }

func (r memCourseRepo) CreateCourse(ctx context.Context, c *model.Course) error {
	if err := r.record("CreateCourse"); err != nil {
		return err
	}
	r.nextID++
	c.ID = fmt.Sprintf("course-%d", r.nextID)
	r.courses[c.ID] = copyCourse(c)
	r.courseOrder = append(r.courseOrder, c.ID)
	return nil
}

func (r memCourseRepo) GetCourseByID(ctx context.Context, id string) (*model.Course, error) {
	if err := r.record("GetCourseByID:" + id); err != nil {
		return nil, err
	}
	c, ok := r.courses[id]
	if !ok {
		return nil, nil
	}
	return copyCourse(c), nil
}

func (r memCourseRepo) UpdateCourse(ctx context.Context, c *model.Course) error {
	if err := r.record("UpdateCourse:" + c.ID); err != nil {
		return err
	}
	existing, ok := r.courses[c.ID]
	if !ok {
		return fmt.Errorf("no course %s", c.ID)
	}
	updated := copyCourse(c)
	updated.CourseContent = existing.CourseContent
	updated.StudentsEnrolled = existing.StudentsEnrolled
	r.courses[c.ID] = updated
	return nil
}

func (r memCourseRepo) DeleteCourse(ctx context.Context, id string) error {
	if err := r.record("DeleteCourse:" + id); err != nil {
		return err
	}
	delete(r.courses, id)
	r.courseOrder = removeID(r.courseOrder, id)
	return nil
}

func (r memCourseRepo) ListCourses(ctx context.Context) ([]model.Course, error) {
	if err := r.record("ListCourses"); err != nil {
		return nil, err
	}
	out := []model.Course{}
	for _, id := range r.courseOrder {
		out = append(out, *copyCourse(r.courses[id]))
	}
	return out, nil
}

func (r memCourseRepo) ListCoursesByInstructor(ctx context.Context, instructorID string) ([]model.Course, error) {
	if err := r.record("ListCoursesByInstructor:" + instructorID); err != nil {
		return nil, err
	}
	out := []model.Course{}
	for _, id := range r.courseOrder {
		if c := r.courses[id]; c.InstructorID == instructorID {
			out = append(out, *copyCourse(c))
		}
	}
	return out, nil
}

func (r memCourseRepo) ListCoursesByCategory(ctx context.Context, categoryID, status string) ([]model.Course, error) {
	if err := r.record("ListCoursesByCategory:" + categoryID); err != nil {
		return nil, err
	}
	out := []model.Course{}
	for _, id := range r.courseOrder {
		if c := r.courses[id]; c.CategoryID == categoryID && c.Status == status {
			out = append(out, *copyCourse(c))
		}
	}
	return out, nil
}

func (r memCourseRepo) ListMostSelling(ctx context.Context, limit int) ([]model.Course, error) {
	if err := r.record("ListMostSelling"); err != nil {
		return nil, err
	}
	out := []model.Course{}
	for _, id := range r.courseOrder {
		if c := r.courses[id]; c.Status == model.CourseStatusPublished {
			out = append(out, *copyCourse(c))
		}
	}
	// Stable insertion sort by enrollment count, descending.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && len(out[j].StudentsEnrolled) > len(out[j-1].StudentsEnrolled); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memUserRepo struct{ *memStore }

func (r memUserRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if err := r.record("GetUserByID:" + id); err != nil {
		return nil, err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	cp.Courses = append([]string{}, u.Courses...)
	return &cp, nil
}

func (r memUserRepo) AddCourse(ctx context.Context, userID, courseID string) error {
	if err := r.record("UserAddCourse:" + userID); err != nil {
		return err
	}
	if u, ok := r.users[userID]; ok && !containsID(u.Courses, courseID) {
		u.Courses = append(u.Courses, courseID)
	}
	return nil
}

func (r memUserRepo) RemoveCourse(ctx context.Context, userID, courseID string) error {
	if err := r.record("UserRemoveCourse:" + userID); err != nil {
		return err
	}
	if u, ok := r.users[userID]; ok {
		u.Courses = removeID(u.Courses, courseID)
	}
	return nil
}

type memCategoryRepo struct{ *memStore }

func (r memCategoryRepo) GetCategoryByID(ctx context.Context, id string) (*model.Category, error) {
	if err := r.record("GetCategoryByID:" + id); err != nil {
		return nil, err
	}
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.Courses = append([]string{}, c.Courses...)
	return &cp, nil
}

func (r memCategoryRepo) ListCategories(ctx context.Context) ([]model.Category, error) {
	if err := r.record("ListCategories"); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(r.categories))
	for id := range r.categories {
		names = append(names, id)
	}
	// Sort by name to mirror ORDER BY name.
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && r.categories[names[j]].Name < r.categories[names[j-1]].Name; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
	out := []model.Category{}
	for _, id := range names {
		c := *r.categories[id]
		c.Courses = nil
		out = append(out, c)
	}
	return out, nil
}

func (r memCategoryRepo) AddCourse(ctx context.Context, categoryID, courseID string) error {
	if err := r.record("CategoryAddCourse:" + categoryID); err != nil {
		return err
	}
	if c, ok := r.categories[categoryID]; ok && !containsID(c.Courses, courseID) {
		c.Courses = append(c.Courses, courseID)
	}
	return nil
}

func (r memCategoryRepo) RemoveCourse(ctx context.Context, categoryID, courseID string) error {
	if err := r.record("CategoryRemoveCourse:" + categoryID); err != nil {
		return err
	}
	if c, ok := r.categories[categoryID]; ok {
		c.Courses = removeID(c.Courses, courseID)
	}
	return nil
}

type memSectionRepo struct{ *memStore }

func (r memSectionRepo) GetSectionByID(ctx context.Context, id string) (*model.Section, error) {
	if err := r.record("GetSectionByID:" + id); err != nil {
		return nil, err
	}
	s, ok := r.sections[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	cp.SubSection = append([]string{}, s.SubSection...)
	return &cp, nil
}

func (r memSectionRepo) DeleteSection(ctx context.Context, id string) error {
	if err := r.record("DeleteSection:" + id); err != nil {
		return err
	}
	delete(r.sections, id)
	return nil
}

func (r memSectionRepo) GetSubSectionByID(ctx context.Context, id string) (*model.SubSection, error) {
	if err := r.record("GetSubSectionByID:" + id); err != nil {
		return nil, err
	}
	s, ok := r.subSections[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r memSectionRepo) DeleteSubSection(ctx context.Context, id string) error {
	if err := r.record("DeleteSubSection:" + id); err != nil {
		return err
	}
	delete(r.subSections, id)
	return nil
}

type memRatingRepo struct{ *memStore }

func (r memRatingRepo) ListRatingsByCourse(ctx context.Context, courseID string) ([]model.RatingAndReview, error) {
	if err := r.record("ListRatingsByCourse:" + courseID); err != nil {
		return nil, err
	}
	return append([]model.RatingAndReview{}, r.ratings[courseID]...), nil
}

type fakeUploader struct {
	calls   int
	folders []string
	err     error
}

func (u *fakeUploader) UploadImage(ctx context.Context, file *storage.File, folder string) (*storage.UploadResult, error) {
	u.calls++
	u.folders = append(u.folders, folder)
	if u.err != nil {
		return nil, u.err
	}
	if file.Body != nil {
		io.Copy(io.Discard, file.Body)
	}
	key := fmt.Sprintf("%s/img-%d.png", folder, u.calls)
	return &storage.UploadResult{Key: key, SecureURL: "https://cdn.test/" + key}, nil
}

type publishedEvent struct {
	topic   string
	payload string
	attrs   map[string]string
}

type fakePublisher struct {
	events []publishedEvent
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, topic string, payload []byte, attrs map[string]string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.events = append(p.events, publishedEvent{topic: topic, payload: string(payload), attrs: attrs})
	return fmt.Sprintf("msg-%d", len(p.events)), nil
}

type fakeScheduler struct {
	jobs []model.CourseRepairJob
	err  error
}

func (s *fakeScheduler) Schedule(ctx context.Context, job model.CourseRepairJob) error {
	if s.err != nil {
		return s.err
	}
	s.jobs = append(s.jobs, job)
	return nil
}

type fixture struct {
	store     *memStore
	uploader  *fakeUploader
	publisher *fakePublisher
	repairs   *fakeScheduler
	svc       CourseService
}

func newFixture() *fixture {
	store := newMemStore()
	f := &fixture{
		store:     store,
		uploader:  &fakeUploader{},
		publisher: &fakePublisher{},
		repairs:   &fakeScheduler{},
	}
	f.svc = NewCourseService(CourseDeps{
		Courses:    memCourseRepo{store},
		Users:      memUserRepo{store},
		Categories: memCategoryRepo{store},
		Sections:   memSectionRepo{store},
		Ratings:    memRatingRepo{store},
		Images:     f.uploader,
		Folder:     "thumbnails",
		Publisher:  f.publisher,
		EventTopic: "course-events",
		Repairs:    f.repairs,
	}, zerolog.Nop())
	return f
}

func thumbnail() *storage.File {
	return &storage.File{Name: "cover.png", ContentType: "image/png", Size: 3, Body: strings.NewReader("png")}
}
