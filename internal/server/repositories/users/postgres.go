package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hwdelite/notesvc/internal/common"
	"github.com/hwdelite/notesvc/internal/dbx"
	"github.com/hwdelite/notesvc/internal/server/models"
)

// pgUniqueViolation is the PostgreSQL error code for unique_violation.
const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (id, email, name, password_hash, signup_method)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Email, user.Name, nullString(user.PasswordHash), user.SignupMethod).
		Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := selectUser + ` WHERE email = $1`
	return r.getOne(ctx, query, email)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := selectUser + ` WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) Update(ctx context.Context, user *models.User) error {

	query :=
		`UPDATE users
		 SET name = $2, password_hash = $3, email_verified = $4,
		     otp_code = $5, otp_issued_at = $6, otp_expires = $7,
		     updated_at = now()
		 WHERE id = $1
		 `

	var code sql.NullString
	var issued, expires sql.NullTime
	if user.OTP != nil {
		code = sql.NullString{String: user.OTP.Code, Valid: true}
		issued = sql.NullTime{Time: user.OTP.IssuedAt, Valid: true}
		expires = sql.NullTime{Time: user.OTP.ExpiresAt, Valid: true}
	}

	res, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, nullString(user.PasswordHash), user.EmailVerified,
		code, issued, expires)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

const selectUser = `SELECT id, email, name, password_hash, signup_method, email_verified,
       otp_code, otp_issued_at, otp_expires, created_at, updated_at
  FROM users`

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}

	var passwordHash, otpCode sql.NullString
	var otpIssued, otpExpires sql.NullTime

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.Name, &passwordHash, &user.SignupMethod,
		&user.EmailVerified, &otpCode, &otpIssued, &otpExpires,
		&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.PasswordHash = passwordHash.String
	if otpCode.Valid {
		user.OTP = &models.OTP{
			Code:      otpCode.String,
			IssuedAt:  otpIssued.Time,
			ExpiresAt: otpExpires.Time,
		}
	}

	return user, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
