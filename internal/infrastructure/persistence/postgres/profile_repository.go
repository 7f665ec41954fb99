package postgres

import (
	"context"
	"errors"

	"mentorlink/internal/database"
	"mentorlink/internal/domain/profile"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProfileRepository struct {
	db database.DB
}

func NewProfileRepository(db database.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `id, user_id, name, role, industries, about, created_at, updated_at`

func (r *ProfileRepository) Create(ctx context.Context, p profile.Profile) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO profiles (id, user_id, name, role, industries, about)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.UserID, p.Name, p.Role, p.Industries, p.About,
	)
	if err != nil {
		if isUniqueViolation(err, "profiles_user_id_key") {
			return profile.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ProfileRepository) Update(ctx context.Context, p profile.Profile) error {
	n, err := r.db.Exec(ctx,
		`UPDATE profiles
		 SET name = $2, role = $3, industries = $4, about = $5, updated_at = now()
		 WHERE id = $1`,
		p.ID, p.Name, p.Role, p.Industries, p.About,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return profile.ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (profile.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	return scanProfile(row)
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID)
	return scanProfile(row)
}

func (r *ProfileRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]profile.Profile, error) {
	out := make(map[uuid.UUID]profile.Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProfileRow(rows)
		if err != nil {
			return nil, err
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

func (r *ProfileRepository) ListByRole(ctx context.Context, role profile.Role) ([]profile.Profile, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE role = $1 ORDER BY created_at DESC`, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []profile.Profile
	for rows.Next() {
		p, err := scanProfileRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProfile(row database.Row) (profile.Profile, error) {
	var p profile.Profile
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Role, &p.Industries, &p.About, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, err
	}
	if p.Industries == nil {
		p.Industries = []string{}
	}
	return p, nil
}

func scanProfileRow(rows database.Rows) (profile.Profile, error) {
	var p profile.Profile
	err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Role, &p.Industries, &p.About, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return profile.Profile{}, err
	}
	if p.Industries == nil {
		p.Industries = []string{}
	}
	return p, nil
}
