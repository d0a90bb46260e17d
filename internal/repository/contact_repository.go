package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/glowdesk/crm-api/internal/models"
)

const contactColumns = `id, account_id, first_name, last_name, email, phone, role, created_at, updated_at`

// contactRepository implements ContactRepository
type contactRepository struct {
	db dbExecutor
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db dbExecutor) ContactRepository {
	return &contactRepository{db: db}
}

func scanContact(row interface{ Scan(...interface{}) error }) (*models.Contact, error) {
	c := &models.Contact{}
	err := row.Scan(
		&c.ID, &c.AccountID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.Role, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID retrieves a contact by ID
func (r *contactRepository) GetByID(id uuid.UUID) (*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1`

	contact, err := scanContact(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("contact %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	return contact, nil
}

// GetByAccount retrieves all contacts for an account
func (r *contactRepository) GetByAccount(accountID uuid.UUID) ([]models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE account_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, *contact)
	}

	return contacts, rows.Err()
}

// Create creates a new contact
func (r *contactRepository) Create(contact *models.Contact) error {
	if contact.ID == uuid.Nil {
		contact.ID = uuid.New()
	}

	now := time.Now()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	query := `
		INSERT INTO contacts (` + contactColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(query,
		contact.ID, contact.AccountID, contact.FirstName, contact.LastName,
		contact.Email, contact.Phone, contact.Role, contact.CreatedAt, contact.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	return nil
}
