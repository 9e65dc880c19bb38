package closing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/pos-dashboard-api/internal/domain"
	"github.com/vfg2006/pos-dashboard-api/pkg/apiErrors"
)

// Diferença de caixa, em unidades monetárias, abaixo da qual o fechamento é considerado balanceado
var balanceTolerance = decimal.NewFromInt(100)

// NewDraft monta o rascunho na etapa Drafting a partir do snapshot do período.
// O estoque esperado soma apenas os produtos do top 5.
func NewDraft(id string, tenantID, userID int64, period domain.Period, snapshot domain.DashboardSnapshot, now time.Time) domain.CloseDraft {
	summary := snapshot.Summary

	expectedCash := summary.SalesTotal.Sub(summary.PurchasesTotal).Sub(summary.ConsumptionTotal)

	expectedInventory := decimal.Zero
	for _, tp := range snapshot.TopProducts {
		expectedInventory = expectedInventory.Add(tp.Stock)
	}

	return domain.CloseDraft{
		ID:                id,
		TenantID:          tenantID,
		UserID:            userID,
		Period:            period,
		Step:              domain.CloseStepDrafting,
		SalesTotal:        summary.SalesTotal,
		PurchasesTotal:    summary.PurchasesTotal,
		ConsumptionTotal:  summary.PersonalConsumptionTotal,
		ExpensesTotal:     summary.ExpensesTotal,
		NetProfit:         expectedCash,
		ExpectedCash:      expectedCash,
		ExpectedInventory: expectedInventory,
		CountedCash:       decimal.Zero,
		CountedInventory:  decimal.Zero,
		CashVariance:      decimal.Zero,
		InventoryVariance: decimal.Zero,
		CreatedAt:         now,
	}
}

// SubmitCount registra o caixa contado e leva o rascunho de Drafting para Reviewing.
// O estoque contado é sempre igual ao esperado.
func SubmitCount(draft domain.CloseDraft, countedCash decimal.Decimal, notes string) (domain.CloseDraft, error) {
	if draft.Step != domain.CloseStepDrafting {
		return draft, wrongStep(draft, "registrar contagem")
	}

	if countedCash.IsNegative() {
		return draft, NewCloseError(ErrInvalidInput, apiErrors.ErrInvalidRequest, "o caixa contado não pode ser negativo")
	}

	draft.CountedCash = countedCash
	draft.CountedInventory = draft.ExpectedInventory
	draft.CashVariance = draft.ExpectedCash.Sub(countedCash)
	draft.InventoryVariance = draft.ExpectedInventory.Sub(draft.CountedInventory)
	draft.Balanced = IsBalanced(draft.CashVariance)
	draft.Notes = notes
	draft.Step = domain.CloseStepReviewing

	return draft, nil
}

// IsBalanced é verdadeiro quando |variance| < 100
func IsBalanced(variance decimal.Decimal) bool {
	return variance.Abs().LessThan(balanceTolerance)
}

// ToRecord gera o registro imutável a partir de um rascunho em Reviewing
func ToRecord(draft domain.CloseDraft) (domain.CloseRecord, error) {
	if draft.Step != domain.CloseStepReviewing {
		return domain.CloseRecord{}, wrongStep(draft, "salvar")
	}

	return domain.CloseRecord{
		TenantID:          draft.TenantID,
		PeriodStart:       draft.Period.Start,
		PeriodEnd:         draft.Period.End,
		PeriodType:        draft.Period.Type,
		SalesTotal:        draft.SalesTotal,
		PurchasesTotal:    draft.PurchasesTotal,
		ConsumptionTotal:  draft.ConsumptionTotal,
		ExpensesTotal:     draft.ExpensesTotal,
		NetProfit:         draft.NetProfit,
		ExpectedCash:      draft.ExpectedCash,
		CountedCash:       draft.CountedCash,
		CashVariance:      draft.CashVariance,
		ExpectedInventory: draft.ExpectedInventory,
		CountedInventory:  draft.CountedInventory,
		InventoryVariance: draft.InventoryVariance,
		Balanced:          draft.Balanced,
		Notes:             draft.Notes,
		CreatedBy:         draft.UserID,
	}, nil
}

// MarkSaved leva o rascunho de Reviewing para Saved, anexando o registro gravado
func MarkSaved(draft domain.CloseDraft, record domain.CloseRecord) (domain.CloseDraft, error) {
	if draft.Step != domain.CloseStepReviewing {
		return draft, wrongStep(draft, "salvar")
	}

	draft.Step = domain.CloseStepSaved
	draft.Record = &record
	return draft, nil
}

// Abandon descarta o rascunho em qualquer etapa não terminal
func Abandon(draft domain.CloseDraft) (domain.CloseDraft, error) {
	if draft.Step == domain.CloseStepSaved || draft.Step == domain.CloseStepAbandoned {
		return draft, wrongStep(draft, "abandonar")
	}

	draft.Step = domain.CloseStepAbandoned
	return draft, nil
}

func wrongStep(draft domain.CloseDraft, action string) error {
	return NewCloseError(ErrInvalidTransition, apiErrors.ErrInvalidTransition,
		fmt.Sprintf("não é possível %s um rascunho na etapa %s", action, draft.Step))
}
