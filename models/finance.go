package models

import "time"

type Expense struct {
	ID          string    `json:"id" db:"id"`
	ClubID      string    `json:"club_id" db:"club_id"`
	Category    string    `json:"category" db:"category"`
	Description string    `json:"description" db:"description"`
	AmountPence int64     `json:"amount_pence" db:"amount_pence"`
	Date        string    `json:"date" db:"date"`
	CreatedBy   string    `json:"created_by" db:"created_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type Revenue struct {
	ID          string    `json:"id" db:"id"`
	ClubID      string    `json:"club_id" db:"club_id"`
	Source      string    `json:"source" db:"source"`
	Description string    `json:"description" db:"description"`
	AmountPence int64     `json:"amount_pence" db:"amount_pence"`
	Date        string    `json:"date" db:"date"`
	CreatedBy   string    `json:"created_by" db:"created_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type PayrollEntry struct {
	ID          string    `json:"id" db:"id"`
	ClubID      string    `json:"club_id" db:"club_id"`
	Payee       string    `json:"payee" db:"payee"`
	RoleTitle   string    `json:"role_title" db:"role_title"`
	AmountPence int64     `json:"amount_pence" db:"amount_pence"`
	PeriodStart string    `json:"period_start" db:"period_start"`
	PeriodEnd   string    `json:"period_end" db:"period_end"`
	CreatedBy   string    `json:"created_by" db:"created_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// AuditLog records every finance mutation for the compliance view.
type AuditLog struct {
	ID        string    `json:"id" db:"id"`
	ClubID    string    `json:"club_id" db:"club_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Action    string    `json:"action" db:"action"`
	Entity    string    `json:"entity" db:"entity"`
	EntityID  string    `json:"entity_id" db:"entity_id"`
	Detail    string    `json:"detail" db:"detail"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
