package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mergington-activities/internal/model"

	_ "github.com/lib/pq"
)

type PostgresActivityRepository struct {
	db *sql.DB
}

func NewPostgresActivityRepository(db *sql.DB) *PostgresActivityRepository {
	return &PostgresActivityRepository{db: db}
}

func (r *PostgresActivityRepository) Create(ctx context.Context, activity *model.Activity) error {
	query := `
		INSERT INTO activities (id, name, description, schedule, max_participants, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		activity.ID, activity.Name, activity.Description, activity.Schedule,
		activity.MaxParticipants, activity.CreatedAt, activity.UpdatedAt)
	if err != nil {
		return err
	}

	for _, email := range activity.Participants {
		if err := r.insertParticipant(ctx, activity.ID, email); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresActivityRepository) FindByName(ctx context.Context, name string) (*model.Activity, error) {
	query := `SELECT id, name, description, schedule, max_participants, created_at, updated_at FROM activities WHERE name = $1`
	row := r.db.QueryRowContext(ctx, query, name)

	activity := &model.Activity{}
	err := row.Scan(
		&activity.ID, &activity.Name, &activity.Description, &activity.Schedule,
		&activity.MaxParticipants, &activity.CreatedAt, &activity.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("activity not found")
		}
		return nil, err
	}

	participants, err := r.loadParticipants(ctx, activity.ID)
	if err != nil {
		return nil, err
	}
	activity.Participants = participants
	return activity, nil
}

func (r *PostgresActivityRepository) FindAll(ctx context.Context) ([]*model.Activity, error) {
	query := `SELECT id, name, description, schedule, max_participants, created_at, updated_at FROM activities ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []*model.Activity
	for rows.Next() {
		activity := &model.Activity{}
		err := rows.Scan(
			&activity.ID, &activity.Name, &activity.Description, &activity.Schedule,
			&activity.MaxParticipants, &activity.CreatedAt, &activity.UpdatedAt)
		if err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, activity := range activities {
		participants, err := r.loadParticipants(ctx, activity.ID)
		if err != nil {
			return nil, err
		}
		activity.Participants = participants
	}
	return activities, nil
}

// Update rewrites the activity row and its whole roster. Rosters are small
// (MaxParticipants in the low tens) so the delete-and-reinsert keeps the
// participant ordering consistent with the in-memory representation.
func (r *PostgresActivityRepository) Update(ctx context.Context, activity *model.Activity) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE activities SET description=$1, schedule=$2, max_participants=$3, updated_at=NOW()
		WHERE id=$4`
	result, err := tx.ExecContext(ctx, query,
		activity.Description, activity.Schedule, activity.MaxParticipants, activity.ID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.New("activity not found")
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM activity_participants WHERE activity_id = $1`, activity.ID); err != nil {
		return err
	}
	for i, email := range activity.Participants {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO activity_participants (activity_id, email, position) VALUES ($1, $2, $3)`,
			activity.ID, email, i)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresActivityRepository) Delete(ctx context.Context, name string) error {
	query := `DELETE FROM activities WHERE name = $1`
	_, err := r.db.ExecContext(ctx, query, name)
	return err
}

func (r *PostgresActivityRepository) insertParticipant(ctx context.Context, activityID, email string) error {
	query := `
		INSERT INTO activity_participants (activity_id, email, position)
		VALUES ($1, $2, (SELECT COALESCE(MAX(position)+1, 0) FROM activity_participants WHERE activity_id = $1))`
	_, err := r.db.ExecContext(ctx, query, activityID, email)
	return err
}

func (r *PostgresActivityRepository) loadParticipants(ctx context.Context, activityID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT email FROM activity_participants WHERE activity_id = $1 ORDER BY position`, activityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := []string{}
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		participants = append(participants, email)
	}
	return participants, rows.Err()
}

// Postgres staff user repository implementation
type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, google_id, email, name, access_token, refresh_token, token_expiry, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (google_id) DO UPDATE SET
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			token_expiry = EXCLUDED.token_expiry,
			updated_at = NOW()`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.GoogleID, user.Email, user.Name,
		user.AccessToken, user.RefreshToken, user.TokenExpiry,
		user.CreatedAt, user.UpdatedAt)
	return err
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT id, google_id, email, name, access_token, refresh_token, token_expiry, created_at, updated_at FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	query := `SELECT id, google_id, email, name, access_token, refresh_token, token_expiry, created_at, updated_at FROM users WHERE google_id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, googleID))
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, google_id, email, name, access_token, refresh_token, token_expiry, created_at, updated_at FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresUserRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users SET google_id=$1, email=$2, name=$3, access_token=$4,
		refresh_token=$5, token_expiry=$6, updated_at=NOW() WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query,
		user.GoogleID, user.Email, user.Name,
		user.AccessToken, user.RefreshToken, user.TokenExpiry,
		user.ID)
	return err
}

func (r *PostgresUserRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *PostgresUserRepository) scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.GoogleID, &user.Email, &user.Name,
		&user.AccessToken, &user.RefreshToken, &user.TokenExpiry,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}
	return user, nil
}

// InitializeDatabase creates the tables if they do not exist yet
func InitializeDatabase(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			google_id TEXT UNIQUE NOT NULL,
			email TEXT NOT NULL,
			name TEXT NOT NULL,
			access_token TEXT,
			refresh_token TEXT,
			token_expiry TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS activities (
			id TEXT PRIMARY KEY,
			name TEXT UNIQUE NOT NULL,
			description TEXT NOT NULL,
			schedule TEXT NOT NULL,
			max_participants INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS activity_participants (
			activity_id TEXT NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
			email TEXT NOT NULL,
			position INTEGER NOT NULL,
			PRIMARY KEY (activity_id, email)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
	}
	return nil
}
