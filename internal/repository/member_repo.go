package repository

import (
	"context"

	"github.com/elif-d/StudioFitBack/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UpdateMemberInput struct {
	FirstName      *string
	LastName       *string
	PhoneNumber    *string
	MembershipType *string
}

type MemberRepository struct {
	db DBTX
}

func NewMemberRepository(db DBTX) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	query := `
		INSERT INTO members (username, password_hash, first_name, last_name, phone_number, birth_date, membership_type, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(
		ctx,
		query,
		member.Username,
		member.PasswordHash,
		member.FirstName,
		member.LastName,
		member.PhoneNumber,
		member.BirthDate,
		member.MembershipType,
		member.IsAdmin,
	).Scan(&member.ID, &member.CreatedAt, &member.UpdatedAt)
}

func (r *MemberRepository) GetByUsername(ctx context.Context, username string) (*models.Member, error) {
	query := `
		SELECT id, username, password_hash, first_name, last_name, phone_number, birth_date, membership_type, is_admin, created_at, updated_at
		FROM members
		WHERE username = $1
	`
	var member models.Member
	err := r.db.QueryRow(ctx, query, username).Scan(
		&member.ID,
		&member.Username,
		&member.PasswordHash,
		&member.FirstName,
		&member.LastName,
		&member.PhoneNumber,
		&member.BirthDate,
		&member.MembershipType,
		&member.IsAdmin,
		&member.CreatedAt,
		&member.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepository) GetByID(ctx context.Context, id int64) (*models.Member, error) {
	query := `
		SELECT id, username, password_hash, first_name, last_name, phone_number, birth_date, membership_type, is_admin, created_at, updated_at
		FROM members
		WHERE id = $1
	`
	var member models.Member
	err := r.db.QueryRow(ctx, query, id).Scan(
		&member.ID,
		&member.Username,
		&member.PasswordHash,
		&member.FirstName,
		&member.LastName,
		&member.PhoneNumber,
		&member.BirthDate,
		&member.MembershipType,
		&member.IsAdmin,
		&member.CreatedAt,
		&member.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// Update touches contact and tier fields only. Credentials and the admin
// flag are never written through this path.
func (r *MemberRepository) Update(ctx context.Context, id int64, input UpdateMemberInput) (*models.Member, error) {
	query := `
		UPDATE members
		SET first_name = COALESCE($2, first_name),
		    last_name = COALESCE($3, last_name),
		    phone_number = COALESCE($4, phone_number),
		    membership_type = COALESCE($5, membership_type),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, username, password_hash, first_name, last_name, phone_number, birth_date, membership_type, is_admin, created_at, updated_at
	`
	var member models.Member
	err := r.db.QueryRow(
		ctx,
		query,
		id,
		input.FirstName,
		input.LastName,
		input.PhoneNumber,
		input.MembershipType,
	).Scan(
		&member.ID,
		&member.Username,
		&member.PasswordHash,
		&member.FirstName,
		&member.LastName,
		&member.PhoneNumber,
		&member.BirthDate,
		&member.MembershipType,
		&member.IsAdmin,
		&member.CreatedAt,
		&member.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepository) CountByMembershipType(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT membership_type, COUNT(*)
		FROM members
		WHERE is_admin = FALSE
		GROUP BY membership_type
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var membershipType string
		var count int
		if err := rows.Scan(&membershipType, &count); err != nil {
			return nil, err
		}
		counts[membershipType] = count
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
