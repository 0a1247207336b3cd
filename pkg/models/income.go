package models

// DefaultIncomeIcon is used for incomes created without an icon.
const DefaultIncomeIcon = "💰"

// Income is a named earnings source of a user.
type Income struct {
	ID        uint   `json:"id" gorm:"primaryKey" example:"12"`                       // ID of the income
	Name      string `json:"name" gorm:"size:100;not null" example:"Salary"`           // Name of the income
	Amount    string `json:"amount" gorm:"not null" example:"5000"`                    // Amount as a decimal string
	CreatedBy string `json:"createdBy" gorm:"index;not null" example:"jane@example.com"` // Email address of the owner
	Icon      string `json:"icon" example:"💰"`                                        // Emoji shown next to the income
}

func (Income) Self() string {
	return "Income"
}
