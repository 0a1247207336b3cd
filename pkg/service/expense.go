package service

import (
	"context"
	"errors"

	"github.com/finova-app/backend/pkg/models"
	"github.com/finova-app/backend/pkg/validation"
	"github.com/finova-app/backend/pkg/views"
	"gorm.io/gorm"
)

var entityExpense = models.Expense{}.Self()

// expenseViews returns the views showing expenses of a budget.
func expenseViews(budgetID uint) []string {
	return []string{views.Expenses, views.BudgetDetail(budgetID), views.Budgets, views.Dashboard}
}

// CreateExpense records an expense on a budget of owner.
//
// The budget is looked up first. If owner has no budget with the
// referenced id, nothing is inserted.
func (s *Service) CreateExpense(ctx context.Context, owner string, in validation.ExpenseCreate) Result[ID] {
	if err := validation.Validate(&in); err != nil {
		return fail[ID](invalid(err))
	}

	var budget models.Budget
	err := s.db.WithContext(ctx).Where("id = ? AND created_by = ?", in.BudgetID, owner).Take(&budget).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail[ID](&Error{Kind: ErrDependency, Message: "Budget not found"})
	} else if err != nil {
		return fail[ID](s.infrastructure(err, "create", entityExpense))
	}

	expense := models.Expense{
		Name:      in.Name,
		Amount:    in.Amount,
		BudgetID:  budget.ID,
		CreatedAt: s.now().UTC().Format(models.DateFormat),
	}

	if err := s.db.WithContext(ctx).Create(&expense).Error; err != nil {
		return fail[ID](s.infrastructure(err, "create", entityExpense))
	}

	s.invalidate(ctx, expenseViews(budget.ID)...)
	return succeed(ID{expense.ID})
}

// UpdateExpense updates name and amount of an expense on a budget of owner.
func (s *Service) UpdateExpense(ctx context.Context, owner string, id int64, in validation.ExpenseUpdate) Result[ID] {
	if err := validation.ID(id, entityExpense); err != nil {
		return fail[ID](invalid(err))
	}

	if err := validation.Validate(&in); err != nil {
		return fail[ID](invalid(err))
	}

	expense, err := s.ownedExpense(ctx, owner, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail[ID](notFound(entityExpense))
	} else if err != nil {
		return fail[ID](s.infrastructure(err, "update", entityExpense))
	}

	tx := s.db.WithContext(ctx).
		Model(&models.Expense{}).
		Where("id = ?", expense.ID).
		Updates(map[string]any{
			"name":   in.Name,
			"amount": in.Amount,
		})
	if tx.Error != nil {
		return fail[ID](s.infrastructure(tx.Error, "update", entityExpense))
	}

	if tx.RowsAffected == 0 {
		return fail[ID](notFound(entityExpense))
	}

	s.invalidate(ctx, expenseViews(expense.BudgetID)...)
	return succeed(ID{expense.ID})
}

// DeleteExpense deletes an expense on a budget of owner.
func (s *Service) DeleteExpense(ctx context.Context, owner string, id int64) Result[ID] {
	if err := validation.ID(id, entityExpense); err != nil {
		return fail[ID](invalid(err))
	}

	expense, err := s.ownedExpense(ctx, owner, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail[ID](notFound(entityExpense))
	} else if err != nil {
		return fail[ID](s.infrastructure(err, "delete", entityExpense))
	}

	tx := s.db.WithContext(ctx).Delete(&models.Expense{}, expense.ID)
	if tx.Error != nil {
		return fail[ID](s.infrastructure(tx.Error, "delete", entityExpense))
	}

	if tx.RowsAffected == 0 {
		return fail[ID](notFound(entityExpense))
	}

	s.invalidate(ctx, expenseViews(expense.BudgetID)...)
	return succeed(ID{expense.ID})
}

// ownedExpense loads an expense if it is attributed to a budget of owner.
func (s *Service) ownedExpense(ctx context.Context, owner string, id int64) (models.Expense, error) {
	var expense models.Expense
	err := s.db.WithContext(ctx).
		Model(&models.Expense{}).
		Select("expenses.*").
		Joins("JOIN budgets ON budgets.id = expenses.budget_id").
		Where("expenses.id = ? AND budgets.created_by = ?", id, owner).
		Take(&expense).
		Error

	return expense, err
}
