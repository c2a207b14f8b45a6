package finance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/isms/backend/internal/domain/shared"
)

// Expense is a cash-basis spend row, grouped only by its category
// string. Append-mostly: edits exist for typo fixes, nothing references
// an expense.
type Expense struct {
	shared.BaseEntity
	Category    string          `gorm:"not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Description string          `gorm:"not null"`
	Reference   *string
	Date        time.Time `gorm:"not null;index"`
	CreatedBy   string
}

// NewExpense creates an expense row
func NewExpense(category string, amount decimal.Decimal, description, createdBy string, date time.Time) (*Expense, error) {
	if category == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Expense category cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Expense description cannot be empty")
	}
	if date.IsZero() {
		date = time.Now()
	}
	return &Expense{
		BaseEntity:  shared.NewBaseEntity(),
		Category:    category,
		Amount:      amount,
		Description: description,
		Date:        date,
		CreatedBy:   createdBy,
	}, nil
}

// Update amends the expense fields
func (e *Expense) Update(category string, amount decimal.Decimal, description string, reference *string, date time.Time) error {
	if category == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Expense category cannot be empty")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Expense description cannot be empty")
	}
	e.Category = category
	e.Amount = amount
	e.Description = description
	e.Reference = reference
	if !date.IsZero() {
		e.Date = date
	}
	e.Touch()
	return nil
}

// TableName returns the database table name
func (Expense) TableName() string {
	return "expenses"
}

// ExpenseFilter narrows expense queries
type ExpenseFilter struct {
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
}

// ExpenseRepository defines persistence operations for expenses
type ExpenseRepository interface {
	shared.Repository[Expense]
	FindFiltered(ctx context.Context, filter ExpenseFilter) ([]Expense, error)
	SumFiltered(ctx context.Context, filter ExpenseFilter) (decimal.Decimal, error)
	FindSince(ctx context.Context, since *time.Time) ([]Expense, error)
}
