package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"dispatch/models"

	"github.com/shaj13/libcache"
	_ "github.com/shaj13/libcache/lru"
	"gorm.io/gorm"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionLimit    = errors.New("session limit reached")
)

// SessionStore keeps login sessions. Sessions expire with their refresh token.
type SessionStore interface {
	Save(ctx context.Context, session *models.Session) error
	// Open saves a new session unless the user already has limit live
	// sessions. The count and the insert happen atomically. On
	// ErrSessionLimit the user's live sessions are returned.
	Open(ctx context.Context, session *models.Session, limit int, now time.Time) ([]models.Session, error)
	Get(ctx context.Context, sessionID string) (*models.Session, error)
	ListByUser(ctx context.Context, userID string, now time.Time) ([]models.Session, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// ---- postgres ----

type gormSessionStore struct {
	db *gorm.DB
}

func NewGormSessionStore(db *gorm.DB) SessionStore {
	return &gormSessionStore{db: db}
}

func toSessionGorm(session *models.Session) models.SessionGorm {
	return models.SessionGorm{
		UserID:                session.UserID,
		UserName:              session.UserName,
		Role:                  session.Role,
		SessionID:             session.SessionID,
		HostName:              session.HostName,
		IPAddress:             session.IPAddress,
		Timestamp:             session.Timestamp,
		ExpiresAt:             session.ExpiresAt,
		RefreshToken:          session.RefreshToken,
		RefreshTokenExpiresAt: session.RefreshTokenExpiresAt,
	}
}

func (s *gormSessionStore) Save(ctx context.Context, session *models.Session) error {
	row := toSessionGorm(session)
	var existing models.SessionGorm
	err := s.db.WithContext(ctx).Where("session_id = ?", session.SessionID).First(&existing).Error
	switch {
	case err == nil:
		row.ID = existing.ID
		return s.db.WithContext(ctx).Save(&row).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.db.WithContext(ctx).Create(&row).Error
	default:
		return fmt.Errorf("failed to save session: %w", err)
	}
}

func (s *gormSessionStore) Open(ctx context.Context, session *models.Session, limit int, now time.Time) ([]models.Session, error) {
	var live []models.Session
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialises concurrent logins of the same user until commit.
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", session.UserID).Error; err != nil {
			return fmt.Errorf("failed to lock sessions of %s: %w", session.UserID, err)
		}
		var rows []models.SessionGorm
		err := tx.Where("user_id = ? AND refresh_token_expires_at > ?", session.UserID, now).
			Order("timestp DESC").
			Find(&rows).Error
		if err != nil {
			return err
		}
		if len(rows) >= limit {
			for _, r := range rows {
				live = append(live, *sessionFromGorm(r))
			}
			return ErrSessionLimit
		}
		row := toSessionGorm(session)
		return tx.Create(&row).Error
	})
	if errors.Is(err, ErrSessionLimit) {
		return live, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	return nil, nil
}

func (s *gormSessionStore) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	var row models.SessionGorm
	err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return sessionFromGorm(row), nil
}

func (s *gormSessionStore) ListByUser(ctx context.Context, userID string, now time.Time) ([]models.Session, error) {
	var rows []models.SessionGorm
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND refresh_token_expires_at > ?", userID, now).
		Order("timestp DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]models.Session, 0, len(rows))
	for _, r := range rows {
		out = append(out, *sessionFromGorm(r))
	}
	return out, nil
}

func (s *gormSessionStore) Delete(ctx context.Context, sessionID string) error {
	res := s.db.WithContext(ctx).Unscoped().Where("session_id = ?", sessionID).Delete(&models.SessionGorm{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (s *gormSessionStore) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res := s.db.WithContext(ctx).Unscoped().Where("user_id = ?", userID).Delete(&models.SessionGorm{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete sessions of %s: %w", userID, res.Error)
	}
	return res.RowsAffected, nil
}

func (s *gormSessionStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Unscoped().Where("refresh_token_expires_at <= ?", now).Delete(&models.SessionGorm{})
	return res.RowsAffected, res.Error
}

func sessionFromGorm(r models.SessionGorm) *models.Session {
	return &models.Session{
		UserID:                r.UserID,
		UserName:              r.UserName,
		Role:                  r.Role,
		SessionID:             r.SessionID,
		HostName:              r.HostName,
		IPAddress:             r.IPAddress,
		Timestamp:             r.Timestamp,
		ExpiresAt:             r.ExpiresAt,
		RefreshToken:          r.RefreshToken,
		RefreshTokenExpiresAt: r.RefreshTokenExpiresAt,
	}
}

// ---- in-memory ----

type memorySessionStore struct {
	mu    sync.Mutex
	cache libcache.Cache
}

// NewMemorySessionStore keeps sessions in an LRU cache. Entries expire with
// their refresh token, so a restart logs every device out.
func NewMemorySessionStore(capacity int) SessionStore {
	cache := libcache.LRU.New(capacity)
	return &memorySessionStore{cache: cache}
}

func (s *memorySessionStore) Save(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store(session)
}

func (s *memorySessionStore) store(session *models.Session) error {
	ttl := time.Until(session.RefreshTokenExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", session.SessionID)
	}
	cp := *session
	s.cache.StoreWithTTL(session.SessionID, &cp, ttl)
	return nil
}

func (s *memorySessionStore) Open(_ context.Context, session *models.Session, limit int, now time.Time) ([]models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if live := s.listByUser(session.UserID, now); len(live) >= limit {
		return live, ErrSessionLimit
	}
	return nil, s.store(session)
}

func (s *memorySessionStore) Get(_ context.Context, sessionID string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.cache.Load(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	cp := *v.(*models.Session)
	return &cp, nil
}

func (s *memorySessionStore) ListByUser(_ context.Context, userID string, now time.Time) ([]models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listByUser(userID, now), nil
}

func (s *memorySessionStore) listByUser(userID string, now time.Time) []models.Session {
	var out []models.Session
	for _, k := range s.cache.Keys() {
		v, ok := s.cache.Peek(k)
		if !ok {
			continue
		}
		sess := v.(*models.Session)
		if sess.UserID == userID && sess.Live(now) {
			out = append(out, *sess)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}

func (s *memorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cache.Contains(sessionID) {
		return ErrSessionNotFound
	}
	s.cache.Delete(sessionID)
	return nil
}

func (s *memorySessionStore) DeleteByUser(_ context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, k := range s.cache.Keys() {
		v, ok := s.cache.Peek(k)
		if !ok {
			continue
		}
		if v.(*models.Session).UserID == userID {
			s.cache.Delete(k)
			n++
		}
	}
	return n, nil
}

func (s *memorySessionStore) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, k := range s.cache.Keys() {
		v, ok := s.cache.Peek(k)
		if !ok {
			continue
		}
		if !v.(*models.Session).Live(now) {
			s.cache.Delete(k)
			n++
		}
	}
	return n, nil
}
