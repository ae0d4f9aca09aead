package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitryhil/vineweb/config"
	"github.com/dmitryhil/vineweb/internal/domain"
	"github.com/dmitryhil/vineweb/internal/dto"
	"github.com/dmitryhil/vineweb/internal/infrastructure/cache"
	"github.com/dmitryhil/vineweb/internal/infrastructure/mail"
	"github.com/dmitryhil/vineweb/internal/infrastructure/message-queue/kafka"
	"github.com/dmitryhil/vineweb/internal/repository"
	pkgdto "github.com/dmitryhil/vineweb/pkg/dto"
	"github.com/dmitryhil/vineweb/pkg/errs"
	"github.com/dmitryhil/vineweb/pkg/utils"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultOrderLimit = 20
	mailTimeout       = 30 * time.Second
)

type OrderServiceImpl struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cache       cache.ProductCache
	publisher   kafka.EventPublisher
	mailer      mail.Mailer
	config      *config.Config
	now         func() time.Time
}

func CreateOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, cache cache.ProductCache, publisher kafka.EventPublisher, mailer mail.Mailer, config *config.Config) OrderService {
	return &OrderServiceImpl{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cache:       cache,
		publisher:   publisher,
		mailer:      mailer,
		config:      config,
		now:         time.Now,
	}
}

type stockDecrement struct {
	product  primitive.ObjectID
	quantity int64
}

// AddOrder persists the order and decrements the stock of every item that
// references a product. Stock is not checked and may go negative. Without
// store transactions a failure is compensated by restoring the applied
// decrements and deleting the order.
func (s *OrderServiceImpl) AddOrder(ctx context.Context, req dto.OrderRequest) (order domain.Order, err error) {
	now := s.now()
	data := domain.Order{
		OrderNumber: utils.GenerateOrderNumber(now),
		User: domain.Customer{
			Name:  req.User.Name,
			Email: req.User.Email,
			Phone: req.User.Phone,
			Address: domain.Address{
				Street:     req.User.Address.Street,
				City:       req.User.Address.City,
				PostalCode: req.User.Address.PostalCode,
			},
		},
		TotalAmount:   req.TotalAmount,
		Status:        domain.OrderStatusPending,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: domain.PaymentStatusPending,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if data.PaymentMethod == "" {
		data.PaymentMethod = domain.PaymentMethodCash
	}

	for _, item := range req.Items {
		orderItem := domain.OrderItem{
			Name:     item.Name,
			Price:    item.Price,
			Size:     item.Size,
			Quantity: item.Quantity,
			Image:    item.Image,
		}
		if item.Product != "" {
			productID, err := primitive.ObjectIDFromHex(item.Product)
			if err != nil {
				return order, fmt.Errorf("%w: invalid product reference %q", errs.ErrValidation, item.Product)
			}
			orderItem.Product = &productID
		}
		data.Items = append(data.Items, orderItem)
	}

	if itemsTotal := data.ItemsTotal(); itemsTotal != data.TotalAmount {
		log.Ctx(ctx).Warn().Str("component", "AddOrder").Str("order_number", data.OrderNumber).
			Int64("total_amount", data.TotalAmount).Int64("items_total", itemsTotal).Msg("total amount differs from items")
	}

	var applied []stockDecrement
	err = s.orderRepo.HandleTrx(ctx, func(ctx context.Context) error {
		applied = nil

		saved, err := s.orderRepo.AddOrder(ctx, data)
		if err != nil {
			return err
		}
		order = saved

		for _, item := range order.Items {
			if item.Product == nil {
				continue
			}

			err := s.productRepo.IncrementStock(ctx, *item.Product, -item.Quantity)
			if errors.Is(err, errs.ErrProductNotFound) {
				log.Ctx(ctx).Warn().Str("component", "AddOrder").Str("product", item.Product.Hex()).Msg("ordered product no longer exists")
				continue
			}
			if err != nil {
				return err
			}
			applied = append(applied, stockDecrement{product: *item.Product, quantity: item.Quantity})
		}

		return nil
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddOrder").Msg("")
		if !s.config.MongoDBConfig.Transactions {
			s.compensate(ctx, order, applied)
		}
		return domain.Order{}, errs.ErrTransactionRollback
	}

	changed := make([]string, 0, len(applied))
	for _, d := range applied {
		changed = append(changed, d.product.Hex())
	}
	if err := s.cache.Invalidate(ctx, changed...); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddOrder").Msg("")
	}
	publishAsync(ctx, s.publisher, kafka.EventOrderCreated, order.OrderNumber, order)
	s.sendConfirmation(ctx, order)

	return order, nil
}

func (s *OrderServiceImpl) compensate(ctx context.Context, order domain.Order, applied []stockDecrement) {
	ctx = context.WithoutCancel(ctx)

	for _, d := range applied {
		if err := s.productRepo.IncrementStock(ctx, d.product, d.quantity); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "compensate").Str("product", d.product.Hex()).Int64("quantity", d.quantity).Msg("stock not restored")
		}
	}

	if order.ID.IsZero() {
		return
	}

	if err := s.orderRepo.DeleteOrder(ctx, order.ID); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "compensate").Str("order", order.ID.Hex()).Msg("order not removed")
	}
}

func (s *OrderServiceImpl) sendConfirmation(ctx context.Context, order domain.Order) {
	ctx = context.WithoutCancel(ctx)

	go func() {
		ctx, cancel := context.WithTimeout(ctx, mailTimeout)
		defer cancel()

		if err := s.mailer.SendOrderConfirmation(ctx, order); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "sendConfirmation").Str("order_number", order.OrderNumber).Msg("")
		}
	}()
}

func (s *OrderServiceImpl) GetOrders(ctx context.Context, filter pkgdto.Filter) (res dto.OrderListResponse, err error) {
	filter.Normalize(defaultOrderLimit, s.config.MaxPageLimit)

	orders, total, err := s.orderRepo.GetOrders(ctx, filter)
	if err != nil {
		return
	}

	if orders == nil {
		orders = []domain.Order{}
	}

	return dto.OrderListResponse{
		Orders:     orders,
		Pagination: pkgdto.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

func (s *OrderServiceImpl) GetOrderByID(ctx context.Context, id string) (order domain.Order, err error) {
	return s.orderRepo.GetOrderByID(ctx, id)
}

func (s *OrderServiceImpl) UpdateOrderStatus(ctx context.Context, req dto.OrderStatusRequest) (order domain.Order, err error) {
	if !domain.IsValidOrderStatus(req.Status) {
		return order, errs.ErrInvalidOrderStatus
	}

	order, err = s.orderRepo.UpdateOrderStatus(ctx, req.ID, req.Status, s.now())
	if err != nil {
		return
	}

	publishAsync(ctx, s.publisher, kafka.EventOrderStatusUpdated, order.OrderNumber, order)

	return order, nil
}

func (s *OrderServiceImpl) UpdatePaymentStatus(ctx context.Context, req dto.PaymentStatusRequest) (order domain.Order, err error) {
	if !domain.IsValidPaymentStatus(req.PaymentStatus) {
		return order, errs.ErrInvalidPayment
	}

	return s.orderRepo.UpdatePaymentStatus(ctx, req.ID, req.PaymentStatus, s.now())
}
