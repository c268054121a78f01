package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

const recentExpensesLimit = 50

// ExpenseUseCase registra gastos operativos de la tienda.
type ExpenseUseCase struct {
	repo repository.ExpenseRepository
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(repo repository.ExpenseRepository) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo}
}

// Create registra un gasto. El monto debe ser estrictamente positivo.
func (uc *ExpenseUseCase) Create(ctx context.Context, storeID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if !in.Amount.IsPositive() || in.Category == "" {
		return nil, domain.ErrInvalidInput
	}
	expense := &entity.Expense{
		ID:          uuid.New().String(),
		StoreID:     storeID,
		Category:    in.Category,
		Amount:      in.Amount,
		Description: in.Description,
		ExpenseDate: time.Now(),
	}
	if err := uc.repo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// ListRecent devuelve los últimos gastos de la tienda.
func (uc *ExpenseUseCase) ListRecent(ctx context.Context, storeID string) ([]dto.ExpenseResponse, error) {
	list, err := uc.repo.ListRecent(ctx, storeID, recentExpensesLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toExpenseResponse(e))
	}
	return out, nil
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	if e == nil {
		return nil
	}
	return &dto.ExpenseResponse{
		ID:          e.ID,
		Category:    e.Category,
		Amount:      e.Amount,
		Description: e.Description,
		ExpenseDate: e.ExpenseDate,
	}
}
