package service

import (
	"context"
	"errors"

	"github.com/finova-app/backend/pkg/models"
	"github.com/finova-app/backend/pkg/validation"
	"github.com/finova-app/backend/pkg/views"
	"gorm.io/gorm"
)

var entityBudget = models.Budget{}.Self()

// CreateBudget creates a budget owned by in.CreatedBy.
func (s *Service) CreateBudget(ctx context.Context, in validation.BudgetCreate) Result[ID] {
	if err := validation.Validate(&in); err != nil {
		return fail[ID](invalid(err))
	}

	budget := models.Budget{
		Name:      in.Name,
		Amount:    in.Amount,
		CreatedBy: in.CreatedBy,
		Icon:      in.Icon,
	}

	if err := s.db.WithContext(ctx).Create(&budget).Error; err != nil {
		return fail[ID](s.infrastructure(err, "create", entityBudget))
	}

	s.invalidate(ctx, views.Budgets, views.Dashboard)
	return succeed(ID{budget.ID})
}

// UpdateBudget updates a budget of owner.
func (s *Service) UpdateBudget(ctx context.Context, owner string, id int64, in validation.BudgetUpdate) Result[ID] {
	if err := validation.ID(id, entityBudget); err != nil {
		return fail[ID](invalid(err))
	}

	if err := validation.Validate(&in); err != nil {
		return fail[ID](invalid(err))
	}

	tx := s.db.WithContext(ctx).
		Model(&models.Budget{}).
		Where("id = ? AND created_by = ?", id, owner).
		Updates(map[string]any{
			"name":   in.Name,
			"amount": in.Amount,
			"icon":   in.Icon,
		})
	if tx.Error != nil {
		return fail[ID](s.infrastructure(tx.Error, "update", entityBudget))
	}

	if tx.RowsAffected == 0 {
		return fail[ID](notFound(entityBudget))
	}

	s.invalidate(ctx, views.Budgets, views.Dashboard, views.BudgetDetail(uint(id)))
	return succeed(ID{uint(id)})
}

// DeleteBudget deletes a budget of owner together with all of its expenses.
//
// Both deletions run in one transaction. If the budget cannot be deleted,
// its expenses are kept.
func (s *Service) DeleteBudget(ctx context.Context, owner string, id int64) Result[ID] {
	if err := validation.ID(id, entityBudget); err != nil {
		return fail[ID](invalid(err))
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var budget models.Budget
		err := tx.Where("id = ? AND created_by = ?", id, owner).Take(&budget).Error
		if err != nil {
			return err
		}

		err = tx.Where("budget_id = ?", budget.ID).Delete(&models.Expense{}).Error
		if err != nil {
			return err
		}

		result := tx.Where("id = ? AND created_by = ?", budget.ID, owner).Delete(&models.Budget{})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail[ID](notFound(entityBudget))
	} else if err != nil {
		return fail[ID](s.infrastructure(err, "delete", entityBudget))
	}

	s.invalidate(ctx, views.Budgets, views.Dashboard, views.Expenses, views.BudgetDetail(uint(id)))
	return succeed(ID{uint(id)})
}
