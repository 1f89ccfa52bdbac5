package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/models"
	"dispatch/repository"
	"dispatch/storage"
	"dispatch/utils"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// MaxSessions is the number of devices a user may be logged in on at once.
const MaxSessions = 3

// MaxDevicesError is returned when a login would exceed MaxSessions.
type MaxDevicesError struct {
	Devices []models.ActiveDevice
}

func (e *MaxDevicesError) Error() string {
	return fmt.Sprintf("maximum device limit of %d reached", MaxSessions)
}

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	User         models.User
	SessionID    string
}

type AuthService struct {
	users    *repository.UserRepository
	sessions storage.SessionStore
	tokens   *utils.TokenIssuer
	activity *ActivityRecorder
	now      func() time.Time
}

func NewAuthService(users *repository.UserRepository, sessions storage.SessionStore, tokens *utils.TokenIssuer, activity *ActivityRecorder) *AuthService {
	if activity == nil {
		activity = NewActivityRecorder(nil)
	}
	return &AuthService{users: users, sessions: sessions, tokens: tokens, activity: activity, now: time.Now}
}

// Login checks the Login sheet and opens a new session.
func (s *AuthService) Login(ctx context.Context, userID, password string, actor Actor) (*LoginResult, error) {
	rctx, cancel := utils.GetDefaultRequestContext(ctx)
	defer cancel()
	user, err := s.users.FindByUserID(rctx, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.ValidatePassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	access, accessExp, err := s.tokens.GenerateJWT(user.UserID, user.UserName, user.Role, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	refresh, refreshExp, err := s.tokens.GenerateRefreshToken(user.UserID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	session := &models.Session{
		UserID:                user.UserID,
		UserName:              user.UserName,
		Role:                  user.Role,
		SessionID:             sessionID,
		HostName:              actor.HostName,
		IPAddress:             actor.IP,
		Timestamp:             s.now(),
		ExpiresAt:             accessExp,
		RefreshToken:          refresh,
		RefreshTokenExpiresAt: refreshExp,
	}
	sctx, scancel := utils.GetFastRequestContext(ctx)
	defer scancel()
	live, err := s.sessions.Open(sctx, session, MaxSessions, s.now())
	if errors.Is(err, storage.ErrSessionLimit) {
		return nil, &MaxDevicesError{Devices: devices(live)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	actor.UserID, actor.UserName = user.UserID, user.UserName
	s.activity.Record(ctx, actor, models.ActivityEntry{
		EventContext: "auth",
		EventName:    "login",
		Description:  fmt.Sprintf("User %s logged in", user.UserID),
	})
	log.Infof("user %s logged in from %s", user.UserID, actor.IP)

	return &LoginResult{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    accessExp,
		User:         *user,
		SessionID:    sessionID,
	}, nil
}

// Refresh issues a new access token for a live session. The user is looked
// up again so the new token carries the role currently in the Login sheet.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	claims, err := s.tokens.ValidateJWT(refreshToken, utils.TokenTypeRefresh)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	sctx, cancel := utils.GetFastRequestContext(ctx)
	defer cancel()
	session, err := s.liveSession(sctx, claims.SessionID)
	if err != nil {
		return "", time.Time{}, err
	}
	if session.RefreshToken != refreshToken {
		return "", time.Time{}, fmt.Errorf("%w: refresh token does not match session", ErrUnauthorized)
	}

	rctx, rcancel := utils.GetDefaultRequestContext(ctx)
	defer rcancel()
	user, err := s.users.FindByUserID(rctx, session.UserID)

	wctx, wcancel := utils.GetFastRequestContext(ctx)
	defer wcancel()
	if errors.Is(err, ErrNotFound) {
		if derr := s.sessions.Delete(wctx, session.SessionID); derr != nil && !errors.Is(derr, storage.ErrSessionNotFound) {
			log.Errorf("failed to close session %s of removed user %s: %v", session.SessionID, session.UserID, derr)
		}
		return "", time.Time{}, fmt.Errorf("%w: user %s no longer exists", ErrUnauthorized, session.UserID)
	}
	if err != nil {
		return "", time.Time{}, err
	}

	access, exp, err := s.tokens.GenerateJWT(user.UserID, user.UserName, user.Role, session.SessionID)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}
	session.UserName, session.Role = user.UserName, user.Role
	session.ExpiresAt = exp
	if err := s.sessions.Save(wctx, session); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to save session: %w", err)
	}
	return access, exp, nil
}

// Authenticate validates an access token and its session.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*utils.Claims, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("%w: missing token", ErrUnauthorized)
	}
	claims, err := s.tokens.ValidateJWT(accessToken, utils.TokenTypeAccess)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	ctx, cancel := utils.GetFastRequestContext(ctx)
	defer cancel()
	if _, err := s.liveSession(ctx, claims.SessionID); err != nil {
		return nil, err
	}
	return claims, nil
}

// Logout closes a session. Users may only close their own sessions.
func (s *AuthService) Logout(ctx context.Context, claims *utils.Claims, sessionID string, actor Actor) error {
	if sessionID == "" {
		sessionID = claims.SessionID
	}
	ctx, cancel := utils.GetFastRequestContext(ctx)
	defer cancel()
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return mapSessionErr(err)
	}
	if session.UserID != claims.UserID {
		return fmt.Errorf("%w: session belongs to another user", ErrUnauthorized)
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return mapSessionErr(err)
	}
	s.activity.Record(ctx, actor, models.ActivityEntry{
		EventContext: "auth",
		EventName:    "logout",
		Description:  fmt.Sprintf("User %s logged out", claims.UserID),
	})
	return nil
}

func (s *AuthService) ActiveDevices(ctx context.Context, userID string) ([]models.ActiveDevice, error) {
	ctx, cancel := utils.GetFastRequestContext(ctx)
	defer cancel()
	live, err := s.sessions.ListByUser(ctx, userID, s.now())
	if err != nil {
		return nil, err
	}
	return devices(live), nil
}

// PurgeExpiredSessions removes sessions whose refresh token has lapsed.
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessions.PurgeExpired(ctx, s.now())
}

// IsAdmin reports the admin role, case-insensitively.
func IsAdmin(role string) bool {
	return strings.EqualFold(strings.TrimSpace(role), models.RoleAdmin)
}

func (s *AuthService) liveSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, mapSessionErr(err)
	}
	if !session.Live(s.now()) {
		return nil, fmt.Errorf("%w: session expired", ErrUnauthorized)
	}
	return session, nil
}

func mapSessionErr(err error) error {
	if errors.Is(err, storage.ErrSessionNotFound) {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return err
}

func devices(sessions []models.Session) []models.ActiveDevice {
	out := make([]models.ActiveDevice, len(sessions))
	for i, s := range sessions {
		out[i] = models.ActiveDevice{
			SessionID: s.SessionID,
			HostName:  s.HostName,
			IPAddress: s.IPAddress,
			LoginTime: s.Timestamp,
		}
	}
	return out
}
