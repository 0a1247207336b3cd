package models

// DefaultBudgetIcon is used for budgets created without an icon.
const DefaultBudgetIcon = "📁"

// Budget is a spending limit for a category of expenses.
type Budget struct {
	ID        uint   `json:"id" gorm:"primaryKey" example:"3"`                         // ID of the budget
	Name      string `json:"name" gorm:"size:100;not null" example:"Groceries"`         // Name of the budget
	Amount    string `json:"amount" gorm:"not null" example:"500"`                      // Allocated amount as a decimal string
	CreatedBy string `json:"createdBy" gorm:"index;not null" example:"jane@example.com"` // Email address of the owner
	Icon      string `json:"icon" example:"🛒"`                                         // Emoji shown next to the budget
}

func (Budget) Self() string {
	return "Budget"
}
