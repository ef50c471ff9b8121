package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound signals that no contact exists for the requested id.
var ErrNotFound = errors.New("contact not found")

// Repository persists contacts.
type Repository interface {
	Create(ctx context.Context, c Contact) (Contact, error)
	GetByID(ctx context.Context, id int64) (Contact, error)
	List(ctx context.Context, skip, limit int) ([]Contact, error)
	Update(ctx context.Context, id int64, u Update) (Contact, error)
	Delete(ctx context.Context, id int64) (bool, error)
	SearchByText(ctx context.Context, query string) ([]Contact, error)
	UpcomingBirthdays(ctx context.Context, today time.Time) ([]Contact, error)
}

const contactColumns = "id, first_name, last_name, email, phone_number, birthday, additional_info"

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed contact repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a record and returns it with the assigned id.
func (r *PostgresRepository) Create(ctx context.Context, c Contact) (Contact, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO contacts (first_name, last_name, email, phone_number, birthday, additional_info)
        VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		c.FirstName, c.LastName, c.Email, c.PhoneNumber, c.Birthday.Time, c.AdditionalInfo)
	if err := row.Scan(&c.ID); err != nil {
		return Contact{}, fmt.Errorf("insert contact: %w", err)
	}
	return c, nil
}

// GetByID fetches a contact by identifier.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (Contact, error) {
	row := r.db.QueryRow(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id)
	c, err := scanContact(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Contact{}, ErrNotFound
	}
	if err != nil {
		return Contact{}, err
	}
	return c, nil
}

// List returns contacts ordered by id, honoring skip/limit pagination.
func (r *PostgresRepository) List(ctx context.Context, skip, limit int) ([]Contact, error) {
	rows, err := r.db.Query(ctx, `SELECT `+contactColumns+` FROM contacts ORDER BY id OFFSET $1 LIMIT $2`, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return collectContacts(rows)
}

// Update applies only the fields set in u and returns the updated record.
// An empty update reads the row back unchanged.
func (r *PostgresRepository) Update(ctx context.Context, id int64, u Update) (Contact, error) {
	if u.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	sets := make([]string, 0, 6)
	args := make([]any, 0, 7)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if u.FirstName != nil {
		set("first_name", *u.FirstName)
	}
	if u.LastName != nil {
		set("last_name", *u.LastName)
	}
	if u.Email != nil {
		set("email", *u.Email)
	}
	if u.PhoneNumber != nil {
		set("phone_number", *u.PhoneNumber)
	}
	if u.Birthday != nil {
		set("birthday", u.Birthday.Time)
	}
	if u.AdditionalInfo != nil {
		set("additional_info", *u.AdditionalInfo)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE contacts SET %s WHERE id = $%d RETURNING `+contactColumns,
		strings.Join(sets, ", "), len(args))

	row := r.db.QueryRow(ctx, query, args...)
	c, err := scanContact(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Contact{}, ErrNotFound
	}
	if err != nil {
		return Contact{}, err
	}
	return c, nil
}

// Delete removes a contact. Reports whether a row was actually removed, so a
// second delete of the same id is a safe no-op returning false.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete contact: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// SearchByText matches the query case-insensitively as a substring of first
// name, last name or email.
func (r *PostgresRepository) SearchByText(ctx context.Context, query string) ([]Contact, error) {
	rows, err := r.db.Query(ctx, `SELECT `+contactColumns+` FROM contacts
        WHERE first_name ILIKE '%' || $1 || '%'
           OR last_name  ILIKE '%' || $1 || '%'
           OR email      ILIKE '%' || $1 || '%'
        ORDER BY id`, query)
	if err != nil {
		return nil, fmt.Errorf("search contacts: %w", err)
	}
	return collectContacts(rows)
}

// UpcomingBirthdays returns contacts whose birthday month/day falls within
// the 8-day window starting at today, birth year ignored.
func (r *PostgresRepository) UpcomingBirthdays(ctx context.Context, today time.Time) ([]Contact, error) {
	pairs := birthdayWindow(today)

	placeholders := make([]string, 0, len(pairs))
	args := make([]any, 0, len(pairs)*2)
	for _, p := range pairs {
		args = append(args, p[0], p[1])
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d)", len(args)-1, len(args)))
	}

	query := fmt.Sprintf(`SELECT `+contactColumns+` FROM contacts
        WHERE (EXTRACT(MONTH FROM birthday), EXTRACT(DAY FROM birthday)) IN (%s)
        ORDER BY id`, strings.Join(placeholders, ", "))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("upcoming birthdays: %w", err)
	}
	return collectContacts(rows)
}

func scanContact(row pgx.Row) (Contact, error) {
	var c Contact
	var birthday time.Time
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.PhoneNumber, &birthday, &c.AdditionalInfo); err != nil {
		return Contact{}, err
	}
	c.Birthday = DateOf(birthday)
	return c, nil
}

func collectContacts(rows pgx.Rows) ([]Contact, error) {
	defer rows.Close()
	contacts := make([]Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}
	return contacts, nil
}
