package services

import (
	"context"
	"fmt"
	"strings"

	"dispatch/models"
	"dispatch/repository"
	"dispatch/storage"
	"dispatch/utils"

	log "github.com/sirupsen/logrus"
)

// UserService manages Login sheet accounts.
type UserService struct {
	users    *repository.UserRepository
	sessions storage.SessionStore
	activity *ActivityRecorder
}

// NewUserService wires the account store. sessions may be nil, in which case
// changed accounts keep their sessions until the next refresh.
func NewUserService(users *repository.UserRepository, sessions storage.SessionStore, activity *ActivityRecorder) *UserService {
	if activity == nil {
		activity = NewActivityRecorder(nil)
	}
	return &UserService{users: users, sessions: sessions, activity: activity}
}

// endSessions logs userID out of every device.
func (s *UserService) endSessions(ctx context.Context, userID string) error {
	if s.sessions == nil {
		return nil
	}
	ctx, cancel := utils.GetFastRequestContext(ctx)
	defer cancel()
	n, err := s.sessions.DeleteByUser(ctx, userID)
	if err != nil {
		log.Errorf("failed to end sessions of %s: %v", userID, err)
		return fmt.Errorf("failed to end sessions of %s: %w", userID, err)
	}
	if n > 0 {
		log.Infof("ended %d session(s) of %s", n, userID)
	}
	return nil
}

func normaliseRole(role string) (string, error) {
	switch {
	case strings.EqualFold(strings.TrimSpace(role), models.RoleAdmin):
		return models.RoleAdmin, nil
	case strings.EqualFold(strings.TrimSpace(role), models.RoleUser):
		return models.RoleUser, nil
	default:
		return "", validationError("role must be %s or %s", models.RoleAdmin, models.RoleUser)
	}
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	ctx, cancel := utils.GetDefaultRequestContext(ctx)
	defer cancel()
	users, err := s.users.List(ctx)
	if users == nil {
		users = []models.User{}
	}
	return users, err
}

// CreateUser appends a user with the next serial number and a hashed password.
func (s *UserService) CreateUser(ctx context.Context, actor Actor, form models.UserForm) (models.User, error) {
	if err := requireFields(
		[2]string{"userName", form.UserName},
		[2]string{"userId", form.UserID},
		[2]string{"password", form.Password},
		[2]string{"role", form.Role},
	); err != nil {
		return models.User{}, err
	}
	role, err := normaliseRole(form.Role)
	if err != nil {
		return models.User{}, err
	}

	users, err := s.ListUsers(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if strings.EqualFold(u.UserID, strings.TrimSpace(form.UserID)) {
			return models.User{}, validationError("user id %q already exists", u.UserID)
		}
	}

	hash, err := utils.HashPassword(form.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	user := models.User{
		SerialNo: repository.NextSerialNo(users),
		UserName: strings.TrimSpace(form.UserName),
		UserID:   strings.TrimSpace(form.UserID),
		Role:     role,
	}
	values := []string{user.SerialNo, user.UserName, user.UserID, hash, user.Role}

	wctx, cancel := utils.GetDefaultRequestContext(ctx)
	defer cancel()
	if err := s.users.Insert(wctx, values); err != nil {
		return models.User{}, err
	}
	s.activity.Record(ctx, actor, models.ActivityEntry{
		EventContext: "user",
		EventName:    "create",
		Description:  fmt.Sprintf("Created user %s (%s)", user.UserID, user.Role),
		SheetName:    s.users.Sheet(),
	})
	return user, nil
}

// UpdateUser rewrites B..E. An empty password keeps the stored one. Changing
// the id, role or password logs the user out everywhere.
func (s *UserService) UpdateUser(ctx context.Context, actor Actor, rowIndex int, form models.UserForm) error {
	if err := requireFields(
		[2]string{"userName", form.UserName},
		[2]string{"userId", form.UserID},
		[2]string{"role", form.Role},
	); err != nil {
		return err
	}
	role, err := normaliseRole(form.Role)
	if err != nil {
		return err
	}

	users, err := s.ListUsers(ctx)
	if err != nil {
		return err
	}
	var current *models.User
	for i := range users {
		if users[i].RowIndex == rowIndex {
			current = &users[i]
		} else if strings.EqualFold(users[i].UserID, strings.TrimSpace(form.UserID)) {
			return validationError("user id %q already exists", users[i].UserID)
		}
	}
	if current == nil {
		return fmt.Errorf("user at row %d: %w", rowIndex, ErrNotFound)
	}

	patch := storage.RowPatch{
		storage.ColUserName: strings.TrimSpace(form.UserName),
		storage.ColUserID:   strings.TrimSpace(form.UserID),
		storage.ColUserRole: role,
	}
	if form.Password != "" {
		hash, err := utils.HashPassword(form.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		patch.Set(storage.ColUserPassword, hash)
	}

	wctx, cancel := utils.GetDefaultRequestContext(ctx)
	defer cancel()
	if err := s.users.Update(wctx, rowIndex, patch); err != nil {
		return err
	}
	idChanged := !strings.EqualFold(current.UserID, strings.TrimSpace(form.UserID))
	roleChanged := !strings.EqualFold(current.Role, role)
	if idChanged || roleChanged || form.Password != "" {
		if err := s.endSessions(ctx, current.UserID); err != nil {
			return err
		}
	}
	s.activity.Record(ctx, actor, models.ActivityEntry{
		EventContext:   "user",
		EventName:      "update",
		Description:    "Updated user " + current.UserID,
		SheetName:      s.users.Sheet(),
		RowIndex:       rowIndex,
		ChangedColumns: patch.Columns(),
	})
	return nil
}

func (s *UserService) DeleteUser(ctx context.Context, actor Actor, rowIndex int) error {
	rctx, cancel := utils.GetDefaultRequestContext(ctx)
	defer cancel()
	user, err := s.users.Get(rctx, rowIndex)
	if err != nil {
		return err
	}
	if strings.EqualFold(user.UserID, actor.UserID) {
		return validationError("you cannot delete your own account")
	}
	if err := s.users.Delete(rctx, rowIndex); err != nil {
		return err
	}
	if err := s.endSessions(ctx, user.UserID); err != nil {
		return err
	}
	s.activity.Record(ctx, actor, models.ActivityEntry{
		EventContext: "user",
		EventName:    "delete",
		Description:  "Deleted user " + user.UserID,
		SheetName:    s.users.Sheet(),
		RowIndex:     rowIndex,
	})
	return nil
}
