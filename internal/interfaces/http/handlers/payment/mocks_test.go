package payment

import (
	"context"
	"io"

	"github.com/modorifa/rifas/internal/application/payment/usecases"
)

type mockSubmitUC struct {
	fn func(cmd usecases.SubmitPaymentCommand) (*usecases.SubmitPaymentResult, error)
}

func (m *mockSubmitUC) Execute(_ context.Context, cmd usecases.SubmitPaymentCommand) (*usecases.SubmitPaymentResult, error) {
	return m.fn(cmd)
}

type mockReviewUC struct {
	fn func(cmd usecases.ReviewPaymentCommand) (*usecases.ReviewPaymentResult, error)
}

func (m *mockReviewUC) Execute(_ context.Context, cmd usecases.ReviewPaymentCommand) (*usecases.ReviewPaymentResult, error) {
	return m.fn(cmd)
}

type mockDeleteUC struct {
	fn func(cmd usecases.DeletePaymentCommand) error
}

func (m *mockDeleteUC) Execute(_ context.Context, cmd usecases.DeletePaymentCommand) error {
	return m.fn(cmd)
}

type mockGetUC struct {
	fn func(q usecases.GetPaymentQuery) (*usecases.GetPaymentResult, error)
}

func (m *mockGetUC) Execute(_ context.Context, q usecases.GetPaymentQuery) (*usecases.GetPaymentResult, error) {
	return m.fn(q)
}

type mockListUC struct {
	fn func(q usecases.ListPaymentsQuery) (*usecases.ListPaymentsResult, error)
}

func (m *mockListUC) Execute(_ context.Context, q usecases.ListPaymentsQuery) (*usecases.ListPaymentsResult, error) {
	return m.fn(q)
}

// drain reads the proof body inside Execute, as the real use case does.
func drain(p *usecases.ProofUpload) []byte {
	if p == nil {
		return nil
	}
	b, _ := io.ReadAll(p.Body)
	return b
}
