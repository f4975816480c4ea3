package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tictac1213/JobNotification/config"
	"github.com/tictac1213/JobNotification/internal/model"
	"github.com/tictac1213/JobNotification/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.ScholarNo
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByScholarNo(_ context.Context, scholarNo string) (*model.User, error) {
	for _, u := range m.users {
		if u.ScholarNo == scholarNo {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) ListStudents(_ context.Context, filters *repository.StudentListFilters) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role != model.RoleStudent {
			continue
		}
		if filters != nil {
			if filters.Status != "" && u.Status != filters.Status {
				continue
			}
			if filters.Branch != "" && u.Branch != filters.Branch {
				continue
			}
			if filters.Year != 0 && u.Year != filters.Year {
				continue
			}
			if filters.CourseID != "" && u.CourseID != filters.CourseID {
				continue
			}
		}
		result = append(result, *u)
	}
	return result, nil
}

func (m *mockUserRepo) CountStudents(_ context.Context, status string) (int64, error) {
	var total int64
	for _, u := range m.users {
		if u.Role != model.RoleStudent {
			continue
		}
		if status != "" && u.Status != status {
			continue
		}
		total++
	}
	return total, nil
}

func (m *mockUserRepo) FindEligible(_ context.Context, elig model.Eligibility) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Status != model.UserStatusActive {
			continue
		}
		if u.Role != model.RoleStudent && u.Role != model.RoleAdmin {
			continue
		}
		if len(elig.Branches) > 0 && !elig.Branches.Contains(u.Branch) {
			continue
		}
		if len(elig.Years) > 0 && !elig.Years.Contains(u.Year) {
			continue
		}
		if elig.MinCGPA != nil && u.CGPA < *elig.MinCGPA {
			continue
		}
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[string]*model.Course
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.Course)}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if course.CourseID == "" {
		course.CourseID = "course-" + course.Name
	}
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) List(_ context.Context) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock CompanyRepository ──

type mockCompanyRepo struct {
	companies map[string]*model.Company
	nextID    int
}

func newMockCompanyRepo() *mockCompanyRepo {
	return &mockCompanyRepo{companies: make(map[string]*model.Company)}
}

func (m *mockCompanyRepo) Create(_ context.Context, company *model.Company) error {
	if company.CompanyID == "" {
		m.nextID++
		company.CompanyID = "company-" + strings.ReplaceAll(company.Name, " ", "-")
	}
	m.companies[company.CompanyID] = company
	return nil
}

func (m *mockCompanyRepo) GetByID(_ context.Context, id string) (*model.Company, error) {
	if c, ok := m.companies[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCompanyRepo) Update(_ context.Context, company *model.Company) error {
	m.companies[company.CompanyID] = company
	return nil
}

func (m *mockCompanyRepo) Delete(_ context.Context, id string) error {
	delete(m.companies, id)
	return nil
}

func (m *mockCompanyRepo) List(_ context.Context, filters *repository.CompanyListFilters) ([]model.Company, error) {
	var result []model.Company
	for _, c := range m.companies {
		if filters != nil {
			if filters.Status != "" && c.Status != filters.Status {
				continue
			}
			if filters.Branch != "" && !c.Eligibility.Branches.Contains(filters.Branch) {
				continue
			}
			if filters.Year != 0 && !c.Eligibility.Years.Contains(filters.Year) {
				continue
			}
		}
		result = append(result, *c)
	}
	return result, nil
}

// ── Mock TaskRepository ──

type mockTaskRepo struct {
	tasks  map[string]*model.Task
	nextID int
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[string]*model.Task)}
}

func (m *mockTaskRepo) Create(_ context.Context, task *model.Task) error {
	if task.TaskID == "" {
		m.nextID++
		task.TaskID = "task-" + strings.ReplaceAll(task.Title, " ", "-")
	}
	m.tasks[task.TaskID] = task
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id string) (*model.Task, error) {
	if t, ok := m.tasks[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTaskRepo) Update(_ context.Context, task *model.Task) error {
	m.tasks[task.TaskID] = task
	return nil
}

func (m *mockTaskRepo) Delete(_ context.Context, id string) error {
	delete(m.tasks, id)
	return nil
}

func (m *mockTaskRepo) ListByCompany(_ context.Context, companyID string) ([]model.Task, error) {
	var result []model.Task
	for _, t := range m.tasks {
		if t.CompanyID == companyID {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Deadline.Before(result[j].Deadline) })
	return result, nil
}

func (m *mockTaskRepo) ListActiveWithCompany(_ context.Context, from time.Time) ([]model.Task, error) {
	var result []model.Task
	for _, t := range m.tasks {
		if t.Status == model.TaskStatusActive && !t.Deadline.Before(from) {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Deadline.Before(result[j].Deadline) })
	return result, nil
}

func (m *mockTaskRepo) FindByDeadlineWindow(_ context.Context, start, end time.Time, threshold string) ([]model.Task, error) {
	var result []model.Task
	for _, t := range m.tasks {
		if t.Deadline.Before(start) || t.Deadline.After(end) {
			continue
		}
		if t.ReminderSent(threshold) {
			continue
		}
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Deadline.Before(result[j].Deadline) })
	return result, nil
}

func (m *mockTaskRepo) MarkReminderSent(_ context.Context, taskID, threshold string) (bool, error) {
	t, ok := m.tasks[taskID]
	if !ok {
		return false, nil
	}
	switch threshold {
	case model.ReminderOneDay:
		if t.OneDayReminderSent {
			return false, nil
		}
		t.OneDayReminderSent = true
	case model.ReminderSixHour:
		if t.SixHourReminderSent {
			return false, nil
		}
		t.SixHourReminderSent = true
	default:
		return false, errors.New("unknown threshold " + threshold)
	}
	return true, nil
}

// ── Mock AnnouncementRepository ──

type mockAnnouncementRepo struct {
	announcements map[string]*model.Announcement
}

func newMockAnnouncementRepo() *mockAnnouncementRepo {
	return &mockAnnouncementRepo{announcements: make(map[string]*model.Announcement)}
}

func (m *mockAnnouncementRepo) Create(_ context.Context, a *model.Announcement) error {
	if a.AnnouncementID == "" {
		a.AnnouncementID = "ann-" + strings.ReplaceAll(a.Title, " ", "-")
	}
	m.announcements[a.AnnouncementID] = a
	return nil
}

func (m *mockAnnouncementRepo) GetByID(_ context.Context, id string) (*model.Announcement, error) {
	if a, ok := m.announcements[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAnnouncementRepo) Update(_ context.Context, a *model.Announcement) error {
	m.announcements[a.AnnouncementID] = a
	return nil
}

func (m *mockAnnouncementRepo) Delete(_ context.Context, id string) error {
	delete(m.announcements, id)
	return nil
}

func (m *mockAnnouncementRepo) List(_ context.Context, filters *repository.AnnouncementListFilters) ([]model.Announcement, error) {
	var result []model.Announcement
	for _, a := range m.announcements {
		if filters != nil {
			if filters.Branch != "" && len(a.Branches) > 0 && !a.Branches.Contains(filters.Branch) {
				continue
			}
			if filters.Year != 0 && len(a.Years) > 0 && !a.Years.Contains(filters.Year) {
				continue
			}
		}
		result = append(result, *a)
	}
	return result, nil
}

// ── Mock Mailer ──

type sentMail struct {
	To      string
	Subject string
	Body    string
}

// mockMailer records sends and can be told to fail for specific addresses
// or for everyone.
type mockMailer struct {
	mu      sync.Mutex
	sent    []sentMail
	failFor map[string]bool
	failAll bool
}

func newMockMailer() *mockMailer {
	return &mockMailer{failFor: make(map[string]bool)}
}

func (m *mockMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll || m.failFor[to] {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *mockMailer) sentTo(email string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.sent {
		if s.To == email {
			n++
		}
	}
	return n
}

func (m *mockMailer) total() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

// ── Test fixtures ──

func newTestRepo() *repository.Repository {
	return &repository.Repository{
		User:         newMockUserRepo(),
		Course:       newMockCourseRepo(),
		Company:      newMockCompanyRepo(),
		Task:         newMockTaskRepo(),
		Announcement: newMockAnnouncementRepo(),
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:        8080,
			FrontendURL: "http://localhost:5173",
		},
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-at-least-16-chars",
			AccessTokenTTL:  time.Hour,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
		Scheduler: config.SchedulerConfig{
			CheckInterval: 30 * time.Minute,
			OneDayWindow:  24 * time.Hour,
			SixHourWindow: 6 * time.Hour,
			CohortCap:     100,
		},
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func timeNowFixture() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

// activeStudent builds an active opted-in student fixture.
func activeStudent(id, email, branch string, year int, cgpa float64, createdAt time.Time) *model.User {
	return &model.User{
		UserID:    id,
		Name:      "Student " + id,
		Email:     email,
		ScholarNo: "SCH" + id,
		Role:      model.RoleStudent,
		Status:    model.UserStatusActive,
		CourseID:  "course-BTech",
		Branch:    branch,
		Year:      year,
		CGPA:      cgpa,
		EmailPreferences: model.EmailPreferences{
			TaskReminders:           true,
			NewCompanyNotifications: true,
			ApprovalNotifications:   true,
		},
		BaseModel: model.BaseModel{CreatedAt: createdAt},
	}
}
