package service

import (
	"context"

	"github.com/finova-app/backend/pkg/models"
	"github.com/finova-app/backend/pkg/validation"
	"github.com/finova-app/backend/pkg/views"
)

var entityIncome = models.Income{}.Self()

// CreateIncome creates an income owned by in.CreatedBy.
func (s *Service) CreateIncome(ctx context.Context, in validation.IncomeCreate) Result[ID] {
	if err := validation.Validate(&in); err != nil {
		return fail[ID](invalid(err))
	}

	income := models.Income{
		Name:      in.Name,
		Amount:    in.Amount,
		CreatedBy: in.CreatedBy,
		Icon:      in.Icon,
	}

	if err := s.db.WithContext(ctx).Create(&income).Error; err != nil {
		return fail[ID](s.infrastructure(err, "create", entityIncome))
	}

	s.invalidate(ctx, views.Incomes, views.Dashboard)
	return succeed(ID{income.ID})
}

// UpdateIncome updates an income of owner.
func (s *Service) UpdateIncome(ctx context.Context, owner string, id int64, in validation.IncomeUpdate) Result[ID] {
	if err := validation.ID(id, entityIncome); err != nil {
		return fail[ID](invalid(err))
	}

	if err := validation.Validate(&in); err != nil {
		return fail[ID](invalid(err))
	}

	tx := s.db.WithContext(ctx).
		Model(&models.Income{}).
		Where("id = ? AND created_by = ?", id, owner).
		Updates(map[string]any{
			"name":   in.Name,
			"amount": in.Amount,
			"icon":   in.Icon,
		})
	if tx.Error != nil {
		return fail[ID](s.infrastructure(tx.Error, "update", entityIncome))
	}

	if tx.RowsAffected == 0 {
		return fail[ID](notFound(entityIncome))
	}

	s.invalidate(ctx, views.Incomes, views.Dashboard)
	return succeed(ID{uint(id)})
}

// DeleteIncome deletes an income of owner.
func (s *Service) DeleteIncome(ctx context.Context, owner string, id int64) Result[ID] {
	if err := validation.ID(id, entityIncome); err != nil {
		return fail[ID](invalid(err))
	}

	tx := s.db.WithContext(ctx).
		Where("id = ? AND created_by = ?", id, owner).
		Delete(&models.Income{})
	if tx.Error != nil {
		return fail[ID](s.infrastructure(tx.Error, "delete", entityIncome))
	}

	if tx.RowsAffected == 0 {
		return fail[ID](notFound(entityIncome))
	}

	s.invalidate(ctx, views.Incomes, views.Dashboard)
	return succeed(ID{uint(id)})
}
