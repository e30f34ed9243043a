package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"bazaar/internal/domain/repository"
	mockRepo "bazaar/internal/mocks/repository"
	mockService "bazaar/internal/mocks/service"
	"bazaar/internal/usecase"

	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// orderServiceFixtures holds all test dependencies for order service tests.
type orderServiceFixtures struct {
	t         *testing.T
	service   usecase.OrderUsecase
	orderRepo *mockRepo.MockOrderRepository
	itemRepo  *mockRepo.MockItemRepository
	cartRepo  *mockRepo.MockCartRepository
	txManager *mockRepo.MockTransactionManager
	publisher *mockService.MockEventPublisher
	receipts  *mockService.MockReceiptSender
}

func createTestOrderService(t *testing.T) orderServiceFixtures {
	orderRepo := mockRepo.NewMockOrderRepository(t)
	itemRepo := mockRepo.NewMockItemRepository(t)
	cartRepo := mockRepo.NewMockCartRepository(t)
	txManager := mockRepo.NewMockTransactionManager(t)
	publisher := mockService.NewMockEventPublisher(t)
	receipts := mockService.NewMockReceiptSender(t)

	service := NewOrderService(OrderServiceParams{
		OrderRepo: orderRepo,
		ItemRepo:  itemRepo,
		CartRepo:  cartRepo,
		TxManager: txManager,
		Publisher: publisher,
		Receipts:  receipts,
		Logger:    newDiscardLogger(),
	})

	return orderServiceFixtures{
		t:         t,
		service:   service,
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		cartRepo:  cartRepo,
		txManager: txManager,
		publisher: publisher,
		receipts:  receipts,
	}
}

// onExecute makes the transaction manager run the given function against a
// factory handing out the fixture's repository mocks.
func (fx orderServiceFixtures) onExecute(ctx context.Context) {
	factory := mockRepo.NewMockRepositoryFactory(fx.t)
	factory.EXPECT().NewOrderRepository().Return(fx.orderRepo).Maybe()
	factory.EXPECT().NewItemRepository().Return(fx.itemRepo).Maybe()
	factory.EXPECT().NewCartRepository().Return(fx.cartRepo).Maybe()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}
