package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"yumexpress-be/internal/apperr"
	"yumexpress-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, a Account) (Account, error)
	FindByEmail(ctx context.Context, role Role, email string) (Account, error)
	FindByID(ctx context.Context, role Role, id uuid.UUID) (Account, error)
	UpdateProfile(ctx context.Context, role Role, id uuid.UUID, p UpdateProfileParams) (Account, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func tableFor(role Role) string {
	if role == RoleRestaurant {
		return "restaurants"
	}
	return "users"
}

// columnsFor keeps the scan order identical for both tables.
func columnsFor(role Role) string {
	if role == RoleRestaurant {
		return "id, name, email, password, role, contact, address, description, type, photo, created_at, updated_at"
	}
	return "id, name, email, password, role, contact, address, description, '' AS type, '' AS photo, created_at, updated_at"
}

func scanAccount(row *sql.Row) (Account, error) {
	var a Account
	err := row.Scan(
		&a.ID, &a.Name, &a.Email, &a.Password, &a.Role, &a.Contact,
		&a.Address, &a.Description, &a.Type, &a.Photo, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == apperr.PgUniqueViolation
}

func (r *repository) Create(ctx context.Context, a Account) (Account, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("role", string(a.Role)),
	)

	query := fmt.Sprintf(
		"INSERT INTO %s (name, email, password, role, address) VALUES ($1, $2, $3, $4, $5) RETURNING %s",
		tableFor(a.Role), columnsFor(a.Role),
	)

	created, err := scanAccount(r.db.QueryRowContext(ctx, query,
		a.Name, a.Email, a.Password, string(a.Role), a.Address,
	))
	if err != nil {
		if isUniqueViolation(err) {
			log.Info("email already registered", zap.String("email", a.Email))
			return Account{}, ErrEmailTaken
		}
		log.Error("db: failed to insert account", zap.String("email", a.Email), zap.Error(err))
		return Account{}, err
	}

	return created, nil
}

func (r *repository) FindByEmail(ctx context.Context, role Role, email string) (Account, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE email = $1", columnsFor(role), tableFor(role))

	a, err := scanAccount(r.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, ErrAccountNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to find account by email",
			zap.String("role", string(role)),
			zap.Error(err),
		)
		return Account{}, err
	}
	return a, nil
}

func (r *repository) FindByID(ctx context.Context, role Role, id uuid.UUID) (Account, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", columnsFor(role), tableFor(role))

	a, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, ErrAccountNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to find account by id",
			zap.String("role", string(role)),
			zap.String("account_id", id.String()),
			zap.Error(err),
		)
		return Account{}, err
	}
	return a, nil
}

// UpdateProfile uses COALESCE so nil params keep the stored value.
func (r *repository) UpdateProfile(ctx context.Context, role Role, id uuid.UUID, p UpdateProfileParams) (Account, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateProfile"),
		zap.String("account_id", id.String()),
	)

	set := `name = COALESCE($2, name),
			email = COALESCE($3, email),
			password = COALESCE($4, password),
			contact = COALESCE($5, contact),
			address = COALESCE($6, address),
			description = COALESCE($7, description),`
	args := []interface{}{id, p.Name, p.Email, p.Password, p.Contact, p.Address, p.Description}

	if role == RoleRestaurant {
		set += `
			type = COALESCE($8, type),
			photo = COALESCE($9, photo),`
		args = append(args, p.Type, p.Photo)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s
			updated_at = NOW()
		WHERE id = $1
		RETURNING %s`, tableFor(role), set, columnsFor(role))

	a, err := scanAccount(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Info("account not found")
			return Account{}, ErrAccountNotFound
		}
		if isUniqueViolation(err) {
			return Account{}, ErrEmailTaken
		}
		log.Error("failed to update profile", zap.Error(err))
		return Account{}, err
	}

	log.Info("profile updated successfully")
	return a, nil
}
