package domain

import "time"

const TicketStatusOpen = "Open"

// CREATE TABLE public.tickets (
//     ticket_id       TEXT PRIMARY KEY,
//     description     TEXT NOT NULL,
//     status          TEXT NOT NULL,
//     created_at      TIMESTAMPTZ DEFAULT NOW()
// );

type Ticket struct {
	ID          string    `gorm:"column:ticket_id;primaryKey" json:"ticket_id"`
	Description string    `gorm:"column:description;type:text;not null" json:"description"`
	Status      string    `gorm:"column:status;size:40;not null;index" json:"status"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Ticket) TableName() string {
	return "tickets"
}
