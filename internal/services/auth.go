package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/labelforge/labelforge/backend/internal/config"
	"github.com/labelforge/labelforge/backend/internal/models"
	"github.com/labelforge/labelforge/backend/internal/utils"
)

const (
	authTypeLocal = "local"
	authTypeLDAP  = "ldap"
)

// Credential failures share one message so the response does not reveal
// whether the username exists.
var (
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrAccountDisabled     = errors.New("user is disabled")
	ErrRefreshTokenInvalid = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrRefreshTokenRevoked = errors.New("refresh token revoked")
)

// AuthService issues and rotates workbench sessions. Access tokens are
// short-lived JWTs; refresh tokens are opaque random strings stored hashed.
type AuthService struct {
	db          *gorm.DB
	ldapService *LDAPService
	jwtConfig   *config.JWTConfig
	configSvc   *SystemConfigService
}

func NewAuthService(db *gorm.DB, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{
		db:          db,
		ldapService: NewLDAPService(db),
		jwtConfig:   jwtCfg,
		configSvc:   NewSystemConfigService(db),
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	AuthType string `json:"auth_type"` // local, ldap
}

// LoginResult is the full session handed back to the handler: the access
// token goes in the response body, the refresh token into a cookie.
type LoginResult struct {
	AccessToken     string
	AccessExpireAt  time.Time
	RefreshToken    string
	RefreshExpireAt time.Time
	User            *models.User
}

type RefreshResult struct {
	AccessToken     string
	AccessExpireAt  time.Time
	RefreshToken    string
	RefreshExpireAt time.Time
}

// Login verifies credentials against the requested backend and opens a
// new session for the user.
func (s *AuthService) Login(req *LoginRequest, clientIP, userAgent string) (*LoginResult, error) {
	var user *models.User
	var err error

	authType := req.AuthType
	if authType == "" {
		authType = authTypeLocal
	}

	switch authType {
	case authTypeLocal:
		user, err = s.verifyLocal(req.Username, req.Password)
	case authTypeLDAP:
		user, err = s.verifyLDAP(req.Username, req.Password)
	default:
		return nil, errors.New("invalid auth type")
	}
	if err != nil {
		return nil, err
	}

	accessToken, accessExpireAt, err := s.issueAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, record, err := s.mintRefreshToken(user.ID, clientIP, userAgent)
	if err != nil {
		return nil, err
	}
	if err := s.db.Create(record).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLogin = &now
	s.db.Save(user)

	return &LoginResult{
		AccessToken:     accessToken,
		AccessExpireAt:  accessExpireAt,
		RefreshToken:    refreshToken,
		RefreshExpireAt: record.ExpiresAt,
		User:            user,
	}, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a
// replacement is issued in the same transaction, so a replayed old token
// is detectable.
func (s *AuthService) Refresh(refreshToken string, clientIP, userAgent string) (*RefreshResult, error) {
	if refreshToken == "" {
		return nil, ErrRefreshTokenInvalid
	}

	var stored models.RefreshToken
	err := s.db.Where("token_hash = ?", refreshTokenDigest(refreshToken)).First(&stored).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenInvalid
		}
		return nil, err
	}

	if stored.RevokedAt != nil {
		return nil, ErrRefreshTokenRevoked
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, ErrRefreshTokenExpired
	}

	var user models.User
	if err := s.db.First(&user, stored.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenInvalid
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	accessToken, accessExpireAt, err := s.issueAccessToken(&user)
	if err != nil {
		return nil, err
	}

	newToken, replacement, err := s.mintRefreshToken(user.ID, clientIP, userAgent)
	if err != nil {
		return nil, err
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(replacement).Error; err != nil {
			return err
		}
		return tx.Model(&stored).Updates(map[string]interface{}{
			"revoked_at":           time.Now(),
			"replaced_by_token_id": replacement.ID,
		}).Error
	}); err != nil {
		return nil, err
	}

	return &RefreshResult{
		AccessToken:     accessToken,
		AccessExpireAt:  accessExpireAt,
		RefreshToken:    newToken,
		RefreshExpireAt: replacement.ExpiresAt,
	}, nil
}

// RevokeRefreshToken marks the token revoked. Unknown tokens are ignored;
// logout must not fail because the cookie was stale.
func (s *AuthService) RevokeRefreshToken(refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ? AND revoked_at IS NULL", refreshTokenDigest(refreshToken)).
		Update("revoked_at", time.Now()).Error
}

func (s *AuthService) issueAccessToken(user *models.User) (string, time.Time, error) {
	hours := s.accessTokenExpireHours()
	token, err := utils.GenerateToken(user.ID, user.Username, user.Role, hours)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, time.Now().Add(time.Duration(hours) * time.Hour), nil
}

// mintRefreshToken builds an unsaved token record; callers persist it,
// inside a transaction when rotating.
func (s *AuthService) mintRefreshToken(userID uint, clientIP, userAgent string) (string, *models.RefreshToken, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", nil, err
	}
	token := hex.EncodeToString(raw)

	record := &models.RefreshToken{
		UserID:      userID,
		TokenHash:   refreshTokenDigest(token),
		ExpiresAt:   time.Now().Add(time.Duration(s.refreshTokenExpireHours()) * time.Hour),
		CreatedByIP: clientIP,
		UserAgent:   userAgent,
	}
	return token, record, nil
}

// Only the SHA-256 digest of a refresh token is persisted.
func refreshTokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Token lifetimes are admin-tunable through system config, with the static
// JWT config as the floor when the stored value is missing or garbage.
func (s *AuthService) accessTokenExpireHours() int {
	defaultHours := s.jwtConfig.ExpireHour
	value := s.configSvc.GetWithDefault("access_token_expire_hours", strconv.Itoa(defaultHours))
	hours, err := strconv.Atoi(value)
	if err != nil || hours <= 0 {
		return defaultHours
	}
	return hours
}

func (s *AuthService) refreshTokenExpireHours() int {
	value := s.configSvc.GetWithDefault("refresh_token_expire_days", "30")
	days, err := strconv.Atoi(value)
	if err != nil || days <= 0 {
		days = 30
	}
	return days * 24
}

func (s *AuthService) verifyLocal(username, password string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ? AND auth_type = ?", username, authTypeLocal).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	if !utils.CheckPassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// verifyLDAP authenticates against the directory and provisions a local
// record on first login. Directory users start as annotators; an admin
// promotes them from the user management screen.
func (s *AuthService) verifyLDAP(username, password string) (*models.User, error) {
	ldapUser, err := s.ldapService.Authenticate(username, password)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = s.db.Where("username = ? AND auth_type = ?", ldapUser.Username, authTypeLDAP).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Username: ldapUser.Username,
			Email:    ldapUser.Email,
			Nickname: ldapUser.Nickname,
			Role:     models.RoleAnnotator,
			AuthType: authTypeLDAP,
			IsActive: true,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	// The directory is authoritative for profile fields.
	user.Email = ldapUser.Email
	user.Nickname = ldapUser.Nickname
	s.db.Save(&user)

	return &user, nil
}

func (s *AuthService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateAdminIfNotExists seeds the bootstrap admin account on first start.
// The default password is expected to be changed immediately.
func (s *AuthService) CreateAdminIfNotExists() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	hashedPassword, err := utils.HashPassword("admin")
	if err != nil {
		return err
	}

	admin := models.User{
		Username: "admin",
		Password: hashedPassword,
		Nickname: "Administrator",
		Role:     models.RoleAdmin,
		AuthType: authTypeLocal,
		IsActive: true,
	}
	return s.db.Create(&admin).Error
}

func (s *AuthService) IsLDAPEnabled() bool {
	return s.ldapService.IsEnabled()
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// ChangePassword is local-account only; directory passwords are managed
// in the directory.
func (s *AuthService) ChangePassword(userID uint, req *ChangePasswordRequest) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return errors.New("user not found")
	}

	if user.AuthType != authTypeLocal {
		return errors.New("LDAP users cannot change password here")
	}
	if !utils.CheckPassword(req.OldPassword, user.Password) {
		return errors.New("incorrect old password")
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashedPassword
	return s.db.Save(&user).Error
}
