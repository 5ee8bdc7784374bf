package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/akinalp/sitekit/models"
	"github.com/akinalp/sitekit/pkg"
	"github.com/akinalp/sitekit/repository"
)

// bcryptCost, şifre hash maliyeti. Testler daha düşük bir değer kullanır.
var bcryptCost = 12

// AuthService interface'i — dışarıya açık API.
// Handler bu interface'e bağımlıdır, concrete struct'a değil.
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthTokens, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.AuthTokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
	GetAdmin(ctx context.Context, adminID string) (*models.Admin, error)

	// ChangePassword, admin'in şifresini değiştirir ve diğer tüm oturumlarını kapatır.
	ChangePassword(ctx context.Context, adminID, currentPassword, newPassword string) error

	// EnsureAdmin, verilen kullanıcı adıyla admin yoksa oluşturur.
	// Sunucu açılışında config'teki ADMIN_USERNAME/ADMIN_PASSWORD ile çağrılır.
	EnsureAdmin(ctx context.Context, username, password string) error

	// CleanupExpiredSessions, süresi dolmuş refresh token oturumlarını siler.
	CleanupExpiredSessions(ctx context.Context) error
}

type authService struct {
	adminRepo   repository.AdminRepository
	sessionRepo repository.SessionRepository
	jwtSecret   []byte
	accessExp   time.Duration
	refreshExp  time.Duration
	logger      *zap.Logger
}

// NewAuthService, constructor.
func NewAuthService(
	adminRepo repository.AdminRepository,
	sessionRepo repository.SessionRepository,
	jwtSecret string,
	accessExpMinutes int,
	refreshExpDays int,
	logger *zap.Logger,
) AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &authService{
		adminRepo:   adminRepo,
		sessionRepo: sessionRepo,
		jwtSecret:   []byte(jwtSecret),
		accessExp:   time.Duration(accessExpMinutes) * time.Minute,
		refreshExp:  time.Duration(refreshExpDays) * 24 * time.Hour,
		logger:      logger.Named("auth"),
	}
}

// Login, admin girişi yapar.
//
// Kullanıcı bulunamadığında ve şifre yanlış olduğunda aynı hata döner;
// böylece yanıt hangi kullanıcı adlarının var olduğunu sızdırmaz.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthTokens, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	admin, err := s.adminRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid username or password", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("failed login attempt", zap.String("username", req.Username))
		return nil, fmt.Errorf("%w: invalid username or password", pkg.ErrUnauthorized)
	}

	s.logger.Info("admin logged in", zap.String("admin_id", admin.ID))
	return s.generateTokens(ctx, admin)
}

// RefreshToken, refresh token'ı yeni bir token çiftiyle değiştirir (rotation).
// Eski oturum her durumda silinir; aynı refresh token ikinci kez kullanılamaz.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*models.AuthTokens, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, fmt.Errorf("%w: refresh_token is required", pkg.ErrBadRequest)
	}

	session, err := s.sessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid refresh token", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	if err := s.sessionRepo.DeleteByID(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("failed to delete old session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		return nil, fmt.Errorf("%w: refresh token expired", pkg.ErrUnauthorized)
	}

	admin, err := s.adminRepo.GetByID(ctx, session.AdminID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: admin no longer exists", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	return s.generateTokens(ctx, admin)
}

// Logout, refresh token'ı iptal eder. Bilinmeyen token sessizce kabul edilir.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.sessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.sessionRepo.DeleteByID(ctx, session.ID)
}

// ValidateAccessToken, JWT access token'ı doğrular ve claims'i döner.
func (s *authService) ValidateAccessToken(tokenString string) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithIssuer(tokenIssuer))

	if err != nil {
		return nil, fmt.Errorf("%w: invalid token", pkg.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid || claims.AdminID == "" {
		return nil, fmt.Errorf("%w: invalid token claims", pkg.ErrUnauthorized)
	}

	return claims, nil
}

func (s *authService) GetAdmin(ctx context.Context, adminID string) (*models.Admin, error) {
	return s.adminRepo.GetByID(ctx, adminID)
}

func (s *authService) ChangePassword(ctx context.Context, adminID, currentPassword, newPassword string) error {
	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return err
	}

	if err := models.ValidateAdminCredentials(admin.Username, newPassword); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("%w: current password is incorrect", pkg.ErrUnauthorized)
	}

	if currentPassword == newPassword {
		return fmt.Errorf("%w: new password must be different from current password", pkg.ErrBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.adminRepo.UpdatePassword(ctx, adminID, string(hash)); err != nil {
		return err
	}

	// Şifre değiştiyse ele geçirilmiş olabilecek tüm refresh token'lar geçersiz olur
	if err := s.sessionRepo.DeleteByAdminID(ctx, adminID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}

	s.logger.Info("admin password changed", zap.String("admin_id", adminID))
	return nil
}

func (s *authService) EnsureAdmin(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" && password == "" {
		return nil
	}
	if err := models.ValidateAdminCredentials(username, password); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	_, err := s.adminRepo.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pkg.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Admin{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		// Eşzamanlı başka bir süreç aynı admin'i oluşturduysa sorun yok
		if errors.Is(err, pkg.ErrAlreadyExists) {
			return nil
		}
		return err
	}

	s.logger.Info("bootstrap admin created", zap.String("username", username))
	return nil
}

func (s *authService) CleanupExpiredSessions(ctx context.Context) error {
	return s.sessionRepo.DeleteExpired(ctx)
}

// ─── Private Helpers ───

const tokenIssuer = "sitekit"

func (s *authService) generateTokens(ctx context.Context, admin *models.Admin) (*models.AuthTokens, error) {
	now := time.Now()
	accessClaims := &models.TokenClaims{
		AdminID:  admin.ID,
		Username: admin.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExp)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessString, err := accessToken.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshBytes := make([]byte, 32)
	if _, err := rand.Read(refreshBytes); err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	refreshString := hex.EncodeToString(refreshBytes)

	session := &models.Session{
		AdminID:      admin.ID,
		RefreshToken: refreshString,
		ExpiresAt:    now.Add(s.refreshExp),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	admin.PasswordHash = ""

	return &models.AuthTokens{
		AccessToken:  accessString,
		RefreshToken: refreshString,
		Admin:        admin,
	}, nil
}
