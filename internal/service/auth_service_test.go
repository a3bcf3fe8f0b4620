package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/vanshsoma/PesuConnect/config"
	"github.com/vanshsoma/PesuConnect/internal/dto"
	"github.com/vanshsoma/PesuConnect/internal/model"
	"github.com/vanshsoma/PesuConnect/internal/validation"
	"github.com/vanshsoma/PesuConnect/pkg/jwt"
)

// ── 测试辅助 ──

func testAuthConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-0123456789",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 168 * time.Hour,
			EmailDomain:     "@pesu.edu",
		},
	}
}

func setupTestAuthService() (AuthService, *mockRepos) {
	repo, mocks := newMockRepository()
	cfg := testAuthConfig()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, mocks
}

// seedStudent 预置一个已注册学生，返回学生 ID
func seedStudent(m *mockRepos, email, password string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	student := &model.Student{
		Name:         "测试学生",
		Email:        email,
		PasswordHash: string(hash),
	}
	_ = m.student.Create(context.Background(), student)
	return student.StudentID
}

// ── Register 测试 ──

func TestAuthService_Register_Success(t *testing.T) {
	svc, mocks := setupTestAuthService()

	req := &dto.RegisterRequest{
		Name:     "Ananya",
		Email:    "ananya@pesu.edu",
		Password: "strong-password",
	}

	result, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("Register 应成功: %v", err)
	}
	if result.Email != "ananya@pesu.edu" {
		t.Errorf("期望Email=ananya@pesu.edu，实际=%s", result.Email)
	}

	// 密码只存 bcrypt 摘要，绝不落明文
	stored := mocks.student.students[result.ID]
	if stored.PasswordHash == "strong-password" {
		t.Error("密码不应以明文存储")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("strong-password")); err != nil {
		t.Errorf("存储的摘要应能验证原密码: %v", err)
	}
}

func TestAuthService_Register_WrongDomain(t *testing.T) {
	svc, _ := setupTestAuthService()

	req := &dto.RegisterRequest{
		Name:     "Outsider",
		Email:    "outsider@gmail.com",
		Password: "strong-password",
	}

	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, validation.ErrInvalidEmailDomain) {
		t.Errorf("期望 ErrInvalidEmailDomain，实际: %v", err)
	}
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	svc, mocks := setupTestAuthService()
	seedStudent(mocks, "taken@pesu.edu", "whatever")

	req := &dto.RegisterRequest{
		Name:     "Second",
		Email:    "taken@pesu.edu",
		Password: "strong-password",
	}

	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("期望 ErrEmailTaken，实际: %v", err)
	}
}

// ── Login 测试 ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, mocks := setupTestAuthService()
	studentID := seedStudent(mocks, "ananya@pesu.edu", "correct-password")

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ananya@pesu.edu",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("登录应返回 Token 对")
	}
	if result.Student.ID != studentID {
		t.Errorf("期望StudentID=%s，实际=%s", studentID, result.Student.ID)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, mocks := setupTestAuthService()
	seedStudent(mocks, "ananya@pesu.edu", "correct-password")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ananya@pesu.edu",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

// 邮箱不存在与密码错误返回同一错误，避免账号枚举
func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@pesu.edu",
		Password: "whatever",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

// ── RefreshToken 测试 ──

func TestAuthService_RefreshToken_Success(t *testing.T) {
	svc, mocks := setupTestAuthService()
	seedStudent(mocks, "ananya@pesu.edu", "correct-password")

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ananya@pesu.edu",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	result, err := svc.RefreshToken(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken 应成功: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("刷新应返回新的 Access Token")
	}
}

// Access Token 不能用于刷新
func TestAuthService_RefreshToken_RejectAccessToken(t *testing.T) {
	svc, mocks := setupTestAuthService()
	seedStudent(mocks, "ananya@pesu.edu", "correct-password")

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ananya@pesu.edu",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	_, err = svc.RefreshToken(context.Background(), login.AccessToken)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("期望 ErrInvalidToken，实际: %v", err)
	}
}

func TestAuthService_RefreshToken_Garbage(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.RefreshToken(context.Background(), "not-a-token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("期望 ErrInvalidToken，实际: %v", err)
	}
}

// ── GetCurrentStudent 测试 ──

func TestAuthService_GetCurrentStudent(t *testing.T) {
	svc, mocks := setupTestAuthService()
	studentID := seedStudent(mocks, "ananya@pesu.edu", "pw")

	result, err := svc.GetCurrentStudent(context.Background(), studentID)
	if err != nil {
		t.Fatalf("GetCurrentStudent 应成功: %v", err)
	}
	if result.Email != "ananya@pesu.edu" {
		t.Errorf("期望Email=ananya@pesu.edu，实际=%s", result.Email)
	}

	if _, err := svc.GetCurrentStudent(context.Background(), "missing"); !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际: %v", err)
	}
}
