package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client is the landowner contracting the certification work.
type Client struct {
	ID        string
	OwnerID   string
	Name      string
	Document  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ServiceType is a catalog entry for the kind of work sold (e.g.
// "Georreferenciamento", "Inscrição no CAR"). Its name selects the
// workflow template at project creation.
type ServiceType struct {
	ID        string
	OwnerID   string
	Name      string
	BasePrice decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Account is a financial account ledger entries are posted against.
type Account struct {
	ID        string
	OwnerID   string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Appointment is a dated commitment, optionally tied to a project.
type Appointment struct {
	ID        string
	OwnerID   string
	Title     string
	Date      time.Time
	ProjectID *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Actor identifies the caller of a mutating operation for authorization
// and owner scoping.
type Actor struct {
	ID   string
	Role Role
}
