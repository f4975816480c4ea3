package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tictac1213/JobNotification/internal/dto"
	"github.com/tictac1213/JobNotification/internal/model"
	"github.com/tictac1213/JobNotification/internal/repository"
)

var (
	ErrStudentNotFound  = errors.New("student not found")
	ErrNotAStudent      = errors.New("user is not a student")
	ErrAlreadyProcessed = errors.New("student already processed")
)

// AdminService covers student approval and the admin dashboard.
type AdminService interface {
	ListPending(ctx context.Context) ([]dto.UserResponse, error)
	ListStudents(ctx context.Context, req *dto.StudentListRequest) ([]dto.UserResponse, error)
	Approve(ctx context.Context, studentID string) (*dto.UserResponse, error)
	Reject(ctx context.Context, studentID string) (*dto.UserResponse, error)
	DashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error)
	ImportStudents(ctx context.Context, r io.Reader) (*dto.ImportStudentsResponse, error)
}

type adminService struct {
	repo     *repository.Repository
	notifier NotifierService
	logger   *zap.Logger
}

// NewAdminService creates the AdminService.
func NewAdminService(repo *repository.Repository, notifier NotifierService, logger *zap.Logger) AdminService {
	return &adminService{repo: repo, notifier: notifier, logger: logger}
}

func (s *adminService) ListPending(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.User.ListStudents(ctx, &repository.StudentListFilters{
		Status: model.UserStatusPending,
	})
	if err != nil {
		return nil, err
	}
	return toUserResponses(users), nil
}

func (s *adminService) ListStudents(ctx context.Context, req *dto.StudentListRequest) ([]dto.UserResponse, error) {
	filters := &repository.StudentListFilters{
		Status:   req.Status,
		Branch:   req.Branch,
		Year:     req.Year,
		CourseID: req.CourseID,
	}
	users, err := s.repo.User.ListStudents(ctx, filters)
	if err != nil {
		return nil, err
	}
	return toUserResponses(users), nil
}

func (s *adminService) Approve(ctx context.Context, studentID string) (*dto.UserResponse, error) {
	user, err := s.getPendingStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	user.Status = model.UserStatusActive
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("approve student failed", zap.String("id", studentID), zap.Error(err))
		return nil, err
	}

	// Welcome mail is best-effort; approval already committed.
	s.notifier.StudentApproved(ctx, user)

	return toUserResponse(user), nil
}

func (s *adminService) Reject(ctx context.Context, studentID string) (*dto.UserResponse, error) {
	user, err := s.getPendingStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	user.Status = model.UserStatusRejected
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("reject student failed", zap.String("id", studentID), zap.Error(err))
		return nil, err
	}

	return toUserResponse(user), nil
}

func (s *adminService) getPendingStudent(ctx context.Context, studentID string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	if user.Role != model.RoleStudent {
		return nil, ErrNotAStudent
	}
	if user.Status != model.UserStatusPending {
		return nil, ErrAlreadyProcessed
	}
	return user, nil
}

func (s *adminService) DashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	stats := &dto.DashboardStatsResponse{}

	var err error
	if stats.TotalStudents, err = s.repo.User.CountStudents(ctx, ""); err != nil {
		return nil, err
	}
	if stats.PendingStudents, err = s.repo.User.CountStudents(ctx, model.UserStatusPending); err != nil {
		return nil, err
	}
	if stats.ActiveStudents, err = s.repo.User.CountStudents(ctx, model.UserStatusActive); err != nil {
		return nil, err
	}
	if stats.RejectedStudents, err = s.repo.User.CountStudents(ctx, model.UserStatusRejected); err != nil {
		return nil, err
	}

	return stats, nil
}

// ────────────────────── Excel bulk import ──────────────────────

// Expected sheet layout, header row first:
// Name | Email | ScholarNo | Course | Branch | Year | CGPA
const importColumns = 7

func (s *adminService) ImportStudents(ctx context.Context, r io.Reader) (*dto.ImportStudentsResponse, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, errors.New("workbook has no data rows")
	}

	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		return nil, err
	}
	courseByName := make(map[string]*model.Course, len(courses))
	for i := range courses {
		courseByName[strings.ToUpper(courses[i].Name)] = &courses[i]
	}

	resp := &dto.ImportStudentsResponse{Total: len(rows) - 1}

	for i, row := range rows[1:] {
		rowNo := i + 2 // 1-based, after the header
		user, reason := s.parseImportRow(row, courseByName)
		if reason == "" {
			if err := s.createImportedStudent(ctx, user); err != nil {
				reason = err.Error()
			}
		}

		if reason != "" {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportStudentError{Row: rowNo, Reason: reason})
			continue
		}
		resp.Success++
	}

	s.logger.Info("student import finished",
		zap.Int("total", resp.Total),
		zap.Int("success", resp.Success),
		zap.Int("failed", resp.Failed))

	return resp, nil
}

func (s *adminService) parseImportRow(row []string, courseByName map[string]*model.Course) (*model.User, string) {
	cells := make([]string, importColumns)
	for i := 0; i < importColumns && i < len(row); i++ {
		cells[i] = strings.TrimSpace(row[i])
	}
	name, email, scholarNo := cells[0], cells[1], cells[2]
	courseName, branch := cells[3], cells[4]

	if name == "" || email == "" || scholarNo == "" {
		return nil, "name, email and scholar number are required"
	}
	if !strings.Contains(email, "@") {
		return nil, "invalid email"
	}

	course, ok := courseByName[strings.ToUpper(courseName)]
	if !ok {
		return nil, fmt.Sprintf("unknown course %q", courseName)
	}

	year, err := strconv.Atoi(cells[5])
	if err != nil {
		return nil, "year must be a number"
	}
	cgpa, err := strconv.ParseFloat(cells[6], 64)
	if err != nil {
		return nil, "cgpa must be a number"
	}
	if cgpa < 0 || cgpa > 10 {
		return nil, "cgpa must be between 0 and 10"
	}

	if err := validateCourseRules(course, branch, year); err != nil {
		return nil, err.Error()
	}

	return &model.User{
		Name:      name,
		Email:     email,
		ScholarNo: scholarNo,
		Role:      model.RoleStudent,
		Status:    model.UserStatusActive, // imported by staff, no approval round-trip
		CourseID:  course.CourseID,
		Branch:    branch,
		Year:      year,
		CGPA:      cgpa,
		EmailPreferences: model.EmailPreferences{
			TaskReminders:           true,
			NewCompanyNotifications: true,
			ApprovalNotifications:   true,
		},
	}, ""
}

func (s *adminService) createImportedStudent(ctx context.Context, user *model.User) error {
	if _, err := s.repo.User.GetByEmail(ctx, user.Email); err == nil {
		return ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if _, err := s.repo.User.GetByScholarNo(ctx, user.ScholarNo); err == nil {
		return ErrScholarNoExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultImportPassword(user.ScholarNo)), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)

	return s.repo.User.Create(ctx, user)
}

// defaultImportPassword is "Jn" plus the last six characters of the scholar
// number. Students are expected to change it on first login.
func defaultImportPassword(scholarNo string) string {
	suffix := scholarNo
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	return "Jn" + suffix
}

func toUserResponses(users []model.User) []dto.UserResponse {
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *toUserResponse(&users[i]))
	}
	return out
}
