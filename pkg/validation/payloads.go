package validation

import (
	"strings"

	"github.com/finova-app/backend/pkg/models"
)

// IncomeCreate is the payload to create an income.
type IncomeCreate struct {
	Name      string `json:"name" validate:"required,max=100" example:"Salary"`
	Amount    string `json:"amount" validate:"amount" example:"5000"`
	CreatedBy string `json:"createdBy" validate:"required,email" example:"jane@example.com"`
	Icon      string `json:"icon" example:"💰"`
}

func (p *IncomeCreate) normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Amount = strings.TrimSpace(p.Amount)
	p.CreatedBy = strings.TrimSpace(p.CreatedBy)
	p.Icon = iconOrDefault(p.Icon, models.DefaultIncomeIcon)
}

// IncomeUpdate is the payload to update an income. The owner cannot be changed.
type IncomeUpdate struct {
	Name   string `json:"name" validate:"required,max=100" example:"Salary"`
	Amount string `json:"amount" validate:"amount" example:"5200"`
	Icon   string `json:"icon" example:"💰"`
}

func (p *IncomeUpdate) normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Amount = strings.TrimSpace(p.Amount)
	p.Icon = iconOrDefault(p.Icon, models.DefaultIncomeIcon)
}

// BudgetCreate is the payload to create a budget.
type BudgetCreate struct {
	Name      string `json:"name" validate:"required,max=100" example:"Groceries"`
	Amount    string `json:"amount" validate:"amount" example:"500"`
	CreatedBy string `json:"createdBy" validate:"required,email" example:"jane@example.com"`
	Icon      string `json:"icon" example:"🛒"`
}

func (p *BudgetCreate) normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Amount = strings.TrimSpace(p.Amount)
	p.CreatedBy = strings.TrimSpace(p.CreatedBy)
	p.Icon = iconOrDefault(p.Icon, models.DefaultBudgetIcon)
}

// BudgetUpdate is the payload to update a budget. The owner cannot be changed.
type BudgetUpdate struct {
	Name   string `json:"name" validate:"required,max=100" example:"Groceries"`
	Amount string `json:"amount" validate:"amount" example:"550"`
	Icon   string `json:"icon" example:"🛒"`
}

func (p *BudgetUpdate) normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Amount = strings.TrimSpace(p.Amount)
	p.Icon = iconOrDefault(p.Icon, models.DefaultBudgetIcon)
}

// ExpenseCreate is the payload to create an expense.
type ExpenseCreate struct {
	Name     string `json:"name" validate:"required,max=100" example:"Weekly shopping"`
	Amount   string `json:"amount" validate:"amount" example:"42.50"`
	BudgetID int64  `json:"budgetId" validate:"gt=0" example:"3"`
}

func (p *ExpenseCreate) normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Amount = strings.TrimSpace(p.Amount)
}

// ExpenseUpdate is the payload to update an expense. It cannot be moved to another budget.
type ExpenseUpdate struct {
	Name   string `json:"name" validate:"required,max=100" example:"Weekly shopping"`
	Amount string `json:"amount" validate:"amount" example:"45"`
}

func (p *ExpenseUpdate) normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Amount = strings.TrimSpace(p.Amount)
}

func iconOrDefault(icon, fallback string) string {
	icon = strings.TrimSpace(icon)
	if icon == "" {
		return fallback
	}
	return icon
}
