package service

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/dmitryhil/vineweb/internal/domain"
	"github.com/dmitryhil/vineweb/internal/dto"
	"github.com/dmitryhil/vineweb/internal/infrastructure/mail"
	"github.com/dmitryhil/vineweb/internal/infrastructure/message-queue/kafka"
	"github.com/dmitryhil/vineweb/internal/repository"
	"github.com/dmitryhil/vineweb/internal/repository/memory"
	pkgdto "github.com/dmitryhil/vineweb/pkg/dto"
	"github.com/dmitryhil/vineweb/pkg/errs"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// flakyProductRepository fails the failOn-th stock change.
type flakyProductRepository struct {
	*memory.ProductRepository
	mu     sync.Mutex
	calls  int
	failOn int
}

func (r *flakyProductRepository) IncrementStock(ctx context.Context, id primitive.ObjectID, delta int64) error {
	r.mu.Lock()
	r.calls++
	fail := r.calls == r.failOn
	r.mu.Unlock()

	if fail {
		return errors.New("write conflict")
	}
	return r.ProductRepository.IncrementStock(ctx, id, delta)
}

type OrderServiceSuite struct {
	suite.Suite
	ctx       context.Context
	store     *memory.Store
	publisher *recordingPublisher
	cache     *countingCache
	svc       OrderService
}

func (s *OrderServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore().WithoutTransactions()
	s.publisher = &recordingPublisher{}
	s.cache = &countingCache{}
	s.svc = s.newService(s.store.Products(), testConfig().MongoDBConfig.Transactions)
}

func (s *OrderServiceSuite) newService(products repository.ProductRepository, transactions bool) OrderService {
	cfg := testConfig()
	cfg.MongoDBConfig.Transactions = transactions
	return CreateOrderService(s.store.Orders(), products, s.cache, s.publisher, mail.NoopMailer{}, cfg)
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceSuite))
}

func (s *OrderServiceSuite) addProduct(name string, stock int64) domain.Product {
	p, err := s.store.Products().AddProduct(s.ctx, domain.Product{Name: name, Price: 500, StockQuantity: stock, InStock: true})
	s.Require().NoError(err)
	return p
}

func (s *OrderServiceSuite) stockOf(id primitive.ObjectID) int64 {
	p, err := s.store.Products().GetProductByID(s.ctx, id.Hex())
	s.Require().NoError(err)
	return p.StockQuantity
}

func orderRequest(items ...dto.OrderItemRequest) dto.OrderRequest {
	var total int64
	for _, item := range items {
		total += item.Price * item.Quantity
	}

	return dto.OrderRequest{
		User: dto.CustomerRequest{
			Name:  "Olena",
			Email: "olena@example.com",
			Phone: "+380000000",
			Address: dto.AddressRequest{
				Street:     "Main 1",
				City:       "Kyiv",
				PostalCode: "01001",
			},
		},
		Items:       items,
		TotalAmount: total,
	}
}

func itemFor(p domain.Product, quantity int64) dto.OrderItemRequest {
	return dto.OrderItemRequest{Product: p.ID.Hex(), Name: p.Name, Price: p.Price, Size: "M", Quantity: quantity}
}

func (s *OrderServiceSuite) Test_AddOrder_DecrementsStock() {
	shirt := s.addProduct("Shirt", 10)
	belt := s.addProduct("Belt", 4)

	order, err := s.svc.AddOrder(s.ctx, orderRequest(itemFor(shirt, 3), itemFor(belt, 1), dto.OrderItemRequest{Name: "Gift wrap", Price: 50, Quantity: 1}))
	s.Require().NoError(err)

	s.Regexp(regexp.MustCompile(`^ORD-\d+-[0-9A-Z]{5}$`), order.OrderNumber)
	s.Equal(domain.OrderStatusPending, order.Status)
	s.Equal(domain.PaymentStatusPending, order.PaymentStatus)
	s.Equal(domain.PaymentMethodCash, order.PaymentMethod)
	s.Len(order.Items, 3)
	s.Nil(order.Items[2].Product)

	s.Equal(int64(7), s.stockOf(shirt.ID))
	s.Equal(int64(3), s.stockOf(belt.ID))
	s.Equal(1, s.cache.count())
	s.Eventually(func() bool { return s.publisher.hasEvent(kafka.EventOrderCreated) }, time.Second, 10*time.Millisecond)

	stored, err := s.svc.GetOrderByID(s.ctx, order.ID.Hex())
	s.Require().NoError(err)
	s.Equal(order.OrderNumber, stored.OrderNumber)
}

func (s *OrderServiceSuite) Test_AddOrder_RefreshesCachedProductDetail() {
	details := newDetailCache()
	cfg := testConfig()
	products := CreateProductService(s.store.Products(), details, newFakeImageStore(), kafka.NoopPublisher{}, cfg)
	orders := CreateOrderService(s.store.Orders(), s.store.Products(), details, s.publisher, mail.NoopMailer{}, cfg)

	shirt := s.addProduct("Shirt", 10)
	belt := s.addProduct("Belt", 4)
	for _, p := range []domain.Product{shirt, belt} {
		cached, err := products.GetProductByID(s.ctx, p.ID.Hex())
		s.Require().NoError(err)
		s.Equal(p.StockQuantity, cached.StockQuantity)
	}

	_, err := orders.AddOrder(s.ctx, orderRequest(itemFor(shirt, 3)))
	s.Require().NoError(err)

	got, err := products.GetProductByID(s.ctx, shirt.ID.Hex())
	s.Require().NoError(err)
	s.Equal(int64(7), got.StockQuantity)

	_, stillCached := details.GetProduct(s.ctx, belt.ID.Hex())
	s.True(stillCached)
}

func (s *OrderServiceSuite) Test_AddOrder_StockMayGoNegative() {
	last := s.addProduct("Last hoodie", 1)

	var wg sync.WaitGroup
	errCh := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.svc.AddOrder(s.ctx, orderRequest(itemFor(last, 1)))
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		s.NoError(err)
	}

	s.Equal(int64(-1), s.stockOf(last.ID))
	count, err := s.store.Orders().CountOrders(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), count)
}

func (s *OrderServiceSuite) Test_AddOrder_MissingProductIsSkipped() {
	gone := primitive.NewObjectID()

	order, err := s.svc.AddOrder(s.ctx, orderRequest(dto.OrderItemRequest{Product: gone.Hex(), Name: "Gone", Price: 100, Quantity: 1}))
	s.Require().NoError(err)
	s.Equal(gone, *order.Items[0].Product)
}

func (s *OrderServiceSuite) Test_AddOrder_InvalidProductReference() {
	_, err := s.svc.AddOrder(s.ctx, orderRequest(dto.OrderItemRequest{Product: "xyz", Name: "Bad", Price: 100, Quantity: 1}))
	s.ErrorIs(err, errs.ErrValidation)
}

func (s *OrderServiceSuite) Test_AddOrder_KeepsClientTotal() {
	shirt := s.addProduct("Shirt", 10)
	req := orderRequest(itemFor(shirt, 1))
	req.TotalAmount = 1

	order, err := s.svc.AddOrder(s.ctx, req)
	s.Require().NoError(err)
	s.Equal(int64(1), order.TotalAmount)
}

func (s *OrderServiceSuite) Test_AddOrder_RollsBack() {
	type TestCase struct {
		Name         string
		Store        func() *memory.Store
		Transactions bool
	}

	testCases := []TestCase{
		{Name: "Compensated without transactions", Store: func() *memory.Store { return memory.NewStore().WithoutTransactions() }},
		{Name: "Transactional", Store: memory.NewStore, Transactions: true},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			s.store = tc.Store()
			shirt := s.addProduct("Shirt", 10)
			belt := s.addProduct("Belt", 4)
			flaky := &flakyProductRepository{ProductRepository: s.store.Products(), failOn: 2}
			svc := s.newService(flaky, tc.Transactions)

			_, err := svc.AddOrder(s.ctx, orderRequest(itemFor(shirt, 3), itemFor(belt, 1)))
			s.ErrorIs(err, errs.ErrTransactionRollback)

			s.Equal(int64(10), s.stockOf(shirt.ID))
			s.Equal(int64(4), s.stockOf(belt.ID))
			count, err := s.store.Orders().CountOrders(s.ctx)
			s.Require().NoError(err)
			s.Zero(count)
		})
	}
}

func (s *OrderServiceSuite) Test_UpdateOrderStatus() {
	order, err := s.svc.AddOrder(s.ctx, orderRequest(dto.OrderItemRequest{Name: "Scarf", Price: 300, Quantity: 1}))
	s.Require().NoError(err)

	type TestCase struct {
		Name        string
		ID          string
		Status      string
		ExpectedErr error
	}

	testCases := []TestCase{
		{Name: "Valid status", ID: order.ID.Hex(), Status: domain.OrderStatusShipped},
		{Name: "Backwards transition allowed", ID: order.ID.Hex(), Status: domain.OrderStatusPending},
		{Name: "Unknown status", ID: order.ID.Hex(), Status: "lost", ExpectedErr: errs.ErrInvalidOrderStatus},
		{Name: "Unknown order", ID: primitive.NewObjectID().Hex(), Status: domain.OrderStatusShipped, ExpectedErr: errs.ErrOrderNotFound},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			updated, err := s.svc.UpdateOrderStatus(s.ctx, dto.OrderStatusRequest{ID: tc.ID, Status: tc.Status})
			if tc.ExpectedErr != nil {
				s.ErrorIs(err, tc.ExpectedErr)
				return
			}

			s.Require().NoError(err)
			s.Equal(tc.Status, updated.Status)
		})
	}

	_, err = s.svc.UpdatePaymentStatus(s.ctx, dto.PaymentStatusRequest{ID: order.ID.Hex(), PaymentStatus: "refunded"})
	s.ErrorIs(err, errs.ErrInvalidPayment)

	updated, err := s.svc.UpdatePaymentStatus(s.ctx, dto.PaymentStatusRequest{ID: order.ID.Hex(), PaymentStatus: domain.PaymentStatusPaid})
	s.Require().NoError(err)
	s.Equal(domain.PaymentStatusPaid, updated.PaymentStatus)
}

func (s *OrderServiceSuite) Test_GetOrders() {
	for i := 0; i < 3; i++ {
		_, err := s.svc.AddOrder(s.ctx, orderRequest(dto.OrderItemRequest{Name: "Scarf", Price: 300, Quantity: 1}))
		s.Require().NoError(err)
	}

	res, err := s.svc.GetOrders(s.ctx, pkgdto.Filter{Limit: 500})
	s.Require().NoError(err)
	s.Len(res.Orders, 3)
	s.Equal(100, res.Pagination.Limit)
	s.Equal(1, res.Pagination.Page)

	res, err = s.svc.GetOrders(s.ctx, pkgdto.Filter{Limit: 2, Page: 2})
	s.Require().NoError(err)
	s.Len(res.Orders, 1)
	s.Equal(int64(3), res.Pagination.Total)
	s.Equal(2, res.Pagination.Pages)

	res, err = s.svc.GetOrders(s.ctx, pkgdto.Filter{Status: domain.OrderStatusDelivered})
	s.Require().NoError(err)
	s.Empty(res.Orders)
	s.NotNil(res.Orders)
}
