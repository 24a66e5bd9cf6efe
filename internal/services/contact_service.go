package services

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/ekaraslan/portfolio-be/internal/models"
	"github.com/google/uuid"
)

// ContactServiceProvider defines the interface for contact services.
type ContactServiceProvider interface {
	CreateContact(c models.Contact) (models.Contact, error)
	GetContacts(status string) ([]models.Contact, error)
	GetContactByID(id string) (models.Contact, error)
	UpdateContact(id, status, notes string, notesSet bool) (models.Contact, error)
	DeleteContact(id string) error
}

// ContactService provides business logic for contact form submissions.
type ContactService struct {
	db *sql.DB
}

// NewContactService creates a new ContactService.
func NewContactService(db *sql.DB) *ContactService {
	return &ContactService{db: db}
}

const contactColumns = "id, name, email, phone, company, service, subject, message, status, notes, ip_address, created_at, updated_at"

func scanContact(scanner interface{ Scan(...interface{}) error }) (models.Contact, error) {
	var c models.Contact
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Service,
		&c.Subject, &c.Message, &c.Status, &c.Notes, &c.IPAddress,
		&c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// CreateContact stores a submission from the public contact form.
func (s *ContactService) CreateContact(c models.Contact) (models.Contact, error) {
	c.ID = uuid.New().String()
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Status = models.ContactStatusNew

	_, err := s.db.Exec(`
		INSERT INTO contacts(id, name, email, phone, company, service, subject, message, status, ip_address)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.Phone, c.Company, c.Service, c.Subject, c.Message, c.Status, c.IPAddress,
	)
	if err != nil {
		return models.Contact{}, err
	}
	return c, nil
}

// GetContacts lists submissions, newest first, optionally filtered by status.
func (s *ContactService) GetContacts(status string) ([]models.Contact, error) {
	query := "SELECT " + contactColumns + " FROM contacts"
	var args []interface{}
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// GetContactByID retrieves a single submission. Reading a new submission
// transitions it to read.
func (s *ContactService) GetContactByID(id string) (models.Contact, error) {
	row := s.db.QueryRow("SELECT "+contactColumns+" FROM contacts WHERE id = ?", id)
	c, err := scanContact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Contact{}, ErrNotFound
		}
		return models.Contact{}, err
	}

	if c.Status == models.ContactStatusNew {
		if _, err := s.db.Exec("UPDATE contacts SET status = ?, updated_at = ? WHERE id = ?",
			models.ContactStatusRead, time.Now().UTC(), id); err != nil {
			return models.Contact{}, err
		}
		c.Status = models.ContactStatusRead
	}
	return c, nil
}

// UpdateContact sets the workflow status and/or admin notes on a submission.
func (s *ContactService) UpdateContact(id, status, notes string, notesSet bool) (models.Contact, error) {
	c, err := s.GetContactByID(id)
	if err != nil {
		return models.Contact{}, err
	}

	if status != "" {
		if !models.ValidContactStatus(status) {
			return models.Contact{}, errors.New("invalid contact status")
		}
		c.Status = status
	}
	if notesSet {
		c.Notes = notes
	}

	_, err = s.db.Exec("UPDATE contacts SET status = ?, notes = ?, updated_at = ? WHERE id = ?",
		c.Status, c.Notes, time.Now().UTC(), id)
	if err != nil {
		return models.Contact{}, err
	}
	return c, nil
}

// DeleteContact removes a submission.
func (s *ContactService) DeleteContact(id string) error {
	res, err := s.db.Exec("DELETE FROM contacts WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
