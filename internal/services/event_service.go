package services

import (
	"database/sql"

	"github.com/ekaraslan/portfolio-be/internal/models"
	"github.com/google/uuid"
)

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	LogEvent(eventType, level, message, actor, ip string) (models.Event, error)
	GetRecentEvents(limit int) ([]models.Event, error)
}

// EventService writes the audit log. Login attempts and contact submissions
// are recorded here as a required side effect, not optional instrumentation.
type EventService struct {
	db *sql.DB
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{db: db}
}

// LogEvent records a new event.
func (s *EventService) LogEvent(eventType, level, message, actor, ip string) (models.Event, error) {
	event := models.Event{
		ID:      uuid.New().String(),
		Type:    eventType,
		Level:   level,
		Message: message,
		Actor:   actor,
		IP:      ip,
	}

	_, err := s.db.Exec(
		"INSERT INTO events (id, type, level, message, actor, ip) VALUES (?, ?, ?, ?, ?, ?)",
		event.ID, event.Type, event.Level, event.Message, event.Actor, event.IP,
	)
	if err != nil {
		return models.Event{}, err
	}
	return event, nil
}

// GetRecentEvents retrieves the most recent events from the database.
func (s *EventService) GetRecentEvents(limit int) ([]models.Event, error) {
	rows, err := s.db.Query("SELECT id, type, level, message, actor, ip, created_at FROM events ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(&event.ID, &event.Type, &event.Level, &event.Message, &event.Actor, &event.IP, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
