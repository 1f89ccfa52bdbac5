package repository

import (
	"context"
	"fmt"
	"strings"

	"dispatch/models"
	"dispatch/storage"
)

type UserRepository struct {
	client storage.SheetClient
	sheet  string
}

func NewUserRepository(client storage.SheetClient, sheet string) *UserRepository {
	return &UserRepository{client: client, sheet: sheet}
}

func (r *UserRepository) Sheet() string { return r.sheet }

// List returns every Login row from LoginFirstDataRow with a serial number.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.client.GetData(ctx, r.sheet)
	if err != nil {
		return nil, err
	}
	var users []models.User
	for i := storage.LoginFirstDataRow; i < len(rows); i++ {
		if !rows[i].Present(storage.ColUserSerialNo) {
			continue
		}
		users = append(users, MapUser(rows[i], i))
	}
	return users, nil
}

func (r *UserRepository) Get(ctx context.Context, rowIndex int) (*models.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].RowIndex == rowIndex {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("user at row %d: %w", rowIndex, ErrNotFound)
}

// FindByUserID matches the login id case-insensitively.
func (r *UserRepository) FindByUserID(ctx context.Context, userID string) (*models.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	userID = strings.TrimSpace(userID)
	for i := range users {
		if strings.EqualFold(users[i].UserID, userID) {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", userID, ErrNotFound)
}

func (r *UserRepository) Insert(ctx context.Context, values []string) error {
	return r.client.Insert(ctx, r.sheet, values)
}

func (r *UserRepository) Update(ctx context.Context, rowIndex int, patch storage.RowPatch) error {
	return r.client.Update(ctx, r.sheet, rowIndex, patch)
}

func (r *UserRepository) Delete(ctx context.Context, rowIndex int) error {
	return r.client.Delete(ctx, r.sheet, rowIndex)
}

func MapUser(row storage.Row, i int) models.User {
	role := row.Cell(storage.ColUserRole)
	if role == "" {
		role = models.RoleUser
	}
	return models.User{
		ID:       i + 1,
		RowIndex: i + 1,
		SerialNo: row.Cell(storage.ColUserSerialNo),
		UserName: row.Cell(storage.ColUserName),
		UserID:   row.Cell(storage.ColUserID),
		Password: row.Cell(storage.ColUserPassword),
		Role:     role,
	}
}

// NextSerialNo returns the serial following the highest SN-<n>, or
// SN-<count+1> when no serial matches.
func NextSerialNo(users []models.User) string {
	codes := make([]string, len(users))
	for i, u := range users {
		codes[i] = u.SerialNo
	}
	return GenerateSequenceCode("SN", codes, len(users)+1)
}
