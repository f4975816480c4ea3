package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tictac1213/JobNotification/internal/dto"
	"github.com/tictac1213/JobNotification/internal/model"
	"github.com/tictac1213/JobNotification/internal/repository"
	"github.com/tictac1213/JobNotification/pkg/jwt"
	"github.com/tictac1213/JobNotification/pkg/redis"
)

// ── Auth business errors ──

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrScholarNoExists    = errors.New("scholar number already exists")
	ErrCourseNotFound     = errors.New("course not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotApproved = errors.New("account pending admin approval")
	ErrUserNotFound       = errors.New("user not found")
	ErrTokenRevoked       = errors.New("token revoked")
)

// AuthService covers registration, login and own-profile management.
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	GetMe(ctx context.Context, userID string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	UpdateEmailPreferences(ctx context.Context, userID string, req *dto.UpdateEmailPreferencesRequest) (*dto.UserResponse, error)
}

type authService struct {
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService creates the AuthService. rdb may be nil; logout then
// degrades to a no-op and tokens expire naturally.
func NewAuthService(repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) AuthService {
	return &authService{repo: repo, jwtMgr: jwtMgr, rdb: rdb, logger: logger}
}

// ────────────────────── Signup ──────────────────────

func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error) {
	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.repo.User.GetByScholarNo(ctx, req.ScholarNo); err == nil {
		return nil, ErrScholarNoExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	course, err := s.repo.Course.GetByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	if err := validateCourseRules(course, req.Branch, req.Year); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		ScholarNo:    req.ScholarNo,
		Role:         model.RoleStudent,
		Status:       model.UserStatusPending,
		CourseID:     req.CourseID,
		Branch:       req.Branch,
		Year:         req.Year,
		CGPA:         req.CGPA,
		EmailPreferences: model.EmailPreferences{
			TaskReminders:           true,
			NewCompanyNotifications: true,
			ApprovalNotifications:   true,
		},
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("create user failed", zap.Error(err))
		return nil, err
	}

	return &dto.SignupResponse{ID: user.UserID, Status: user.Status}, nil
}

// validateCourseRules enforces the course's year and branch constraints.
func validateCourseRules(course *model.Course, branch string, year int) error {
	if year < 1 || year > course.Duration {
		return fmt.Errorf("year must be 1 to %d for %s", course.Duration, course.Name)
	}
	if !course.AllowedBranches.Contains(branch) {
		return fmt.Errorf("%s is not a valid branch for %s", branch, course.Name)
	}
	return nil
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Status != model.UserStatusActive {
		return nil, ErrAccountNotApproved
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

func (s *authService) issueTokens(user *model.User) (*dto.TokenResponse, error) {
	access, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Role)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         toUserResponse(user),
	}, nil
}

// ────────────────────── Refresh ──────────────────────

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "refresh" {
		return nil, jwt.ErrTokenInvalid
	}

	if s.rdb != nil {
		revoked, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("blacklist check failed", zap.Error(err))
		} else if revoked {
			return nil, ErrTokenRevoked
		}
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Status != model.UserStatusActive {
		return nil, ErrAccountNotApproved
	}

	// Rotate: revoke the used refresh token for its remaining lifetime.
	if s.rdb != nil && claims.ExpiresAt != nil {
		if err := s.rdb.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
			s.logger.Warn("blacklist refresh token failed", zap.Error(err))
		}
	}

	return s.issueTokens(user)
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		return nil // no blacklist available, token expires on its own
	}
	return s.rdb.BlacklistToken(ctx, jti, time.Until(expiresAt))
}

// ────────────────────── GetMe ──────────────────────

func (s *authService) GetMe(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("get user failed", zap.String("id", userID), zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

// ────────────────────── UpdateProfile ──────────────────────

func (s *authService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		existing, err := s.repo.User.GetByEmail(ctx, *req.Email)
		if err == nil && existing.UserID != userID {
			return nil, ErrEmailExists
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.ScholarNo != nil && *req.ScholarNo != user.ScholarNo {
		existing, err := s.repo.User.GetByScholarNo(ctx, *req.ScholarNo)
		if err == nil && existing.UserID != userID {
			return nil, ErrScholarNoExists
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.ScholarNo = *req.ScholarNo
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Branch != nil {
		user.Branch = *req.Branch
	}
	if req.Year != nil {
		user.Year = *req.Year
	}
	if req.CGPA != nil {
		user.CGPA = *req.CGPA
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}

	if user.Course != nil {
		if err := validateCourseRules(user.Course, user.Branch, user.Year); err != nil {
			return nil, err
		}
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("update profile failed", zap.String("id", userID), zap.Error(err))
		return nil, err
	}

	return toUserResponse(user), nil
}

// ────────────────────── UpdateEmailPreferences ──────────────────────

func (s *authService) UpdateEmailPreferences(ctx context.Context, userID string, req *dto.UpdateEmailPreferencesRequest) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.TaskReminders != nil {
		user.TaskReminders = *req.TaskReminders
	}
	if req.NewCompanyNotifications != nil {
		user.NewCompanyNotifications = *req.NewCompanyNotifications
	}
	if req.ApprovalNotifications != nil {
		user.ApprovalNotifications = *req.ApprovalNotifications
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("update email preferences failed", zap.String("id", userID), zap.Error(err))
		return nil, err
	}

	return toUserResponse(user), nil
}

// toUserResponse converts a model.User to its public shape.
func toUserResponse(user *model.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:         user.UserID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		Status:     user.Status,
		Branch:     user.Branch,
		Year:       user.Year,
		CGPA:       user.CGPA,
		ScholarNo:  user.ScholarNo,
		Phone:      user.Phone,
		IsApproved: user.Status == model.UserStatusActive,
		EmailPreferences: dto.EmailPreferencesResponse{
			TaskReminders:           user.TaskReminders,
			NewCompanyNotifications: user.NewCompanyNotifications,
			ApprovalNotifications:   user.ApprovalNotifications,
		},
	}
	if user.Course != nil {
		resp.CourseName = user.Course.Name
	}
	return resp
}
