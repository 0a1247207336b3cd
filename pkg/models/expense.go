package models

// DateFormat is the layout of the date an expense was recorded on.
const DateFormat = "2006-01-02"

// Expense is a single spending event attributed to a budget.
//
// Expenses have no owner column. They belong to the owner of their budget.
type Expense struct {
	ID        uint   `json:"id" gorm:"primaryKey" example:"7"`                        // ID of the expense
	Name      string `json:"name" gorm:"size:100;not null" example:"Weekly shopping"` // Name of the expense
	Amount    string `json:"amount" gorm:"not null" example:"42.50"`                  // Amount as a decimal string
	BudgetID  uint   `json:"budgetId" gorm:"index;not null" example:"3"`              // ID of the budget the expense is attributed to
	Budget    Budget `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
	CreatedAt string `json:"createdAt" gorm:"size:10;not null" example:"2024-05-17"` // Date the expense was recorded on, YYYY-MM-DD
}

func (Expense) Self() string {
	return "Expense"
}
