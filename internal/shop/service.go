// Package shop is the entry point to the sales core. A Service owns the
// stock, the customer directory and the order book, and serialises every
// operation on them behind a single lock.
package shop

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jcmexdev/threewheels-sales/internal/catalog"
	"github.com/jcmexdev/threewheels-sales/internal/coordinator/journal"
	"github.com/jcmexdev/threewheels-sales/internal/customer"
	"github.com/jcmexdev/threewheels-sales/internal/order"
	"github.com/jcmexdev/threewheels-sales/internal/pkg/cache"
	"github.com/jcmexdev/threewheels-sales/internal/pkg/messaging"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/jcmexdev/threewheels-sales/internal/shop"

// CheckoutJournal records checkout runs and reads them back.
type CheckoutJournal interface {
	journal.Repository
	History(checkoutID string) []journal.Entry
}

type Service struct {
	mu sync.Mutex

	articles  *catalog.Factory
	stock     *catalog.Stock
	customers *customer.Factory
	directory *customer.Directory
	book      *order.Book

	cache        cache.Cache
	cacheTimeout time.Duration
	publisher    messaging.Publisher
	journal      CheckoutJournal
	tracer       trace.Tracer
	now          func() time.Time
}

type Option func(*Service)

func WithCache(c cache.Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithCacheTimeout bounds each idempotency cache call. Non-positive values
// are ignored.
func WithCacheTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.cacheTimeout = d
		}
	}
}

func WithPublisher(p messaging.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithJournal(j CheckoutJournal) Option {
	return func(s *Service) { s.journal = j }
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New returns an empty shop. Without options it uses an in-process cache,
// logs events instead of publishing them and keeps the checkout journal in
// memory.
func New(stockName, directoryName string, opts ...Option) *Service {
	s := &Service{
		articles:  catalog.NewFactory(),
		stock:     catalog.NewStock(stockName),
		customers: customer.NewFactory(),
		directory: customer.NewDirectory(directoryName),
		book:      order.NewBook(),
		cache:        cache.NewMemoryCache("sales"),
		cacheTimeout: DefaultCacheTimeout,
		publisher:    messaging.NewLogPublisher(nil),
		journal:      journal.NewMemoryRepository(),
		tracer:       otel.Tracer(tracerName),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// --- Articles ---

type NewArticle struct {
	Category    string
	Designation string
	UnitPrice   decimal.Decimal
	Stock       int
	Shipping    *catalog.ShippingProfile
	Features    catalog.Features
}

// CreateArticle adds a new article to the stock.
func (s *Service) CreateArticle(ctx context.Context, in NewArticle) (ArticleView, error) {
	ctx, span := s.tracer.Start(ctx, "shop.CreateArticle")
	defer span.End()

	if in.Designation == "" {
		return ArticleView{}, fail(span, fmt.Errorf("%w: designation is required", ErrInvalidInput))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stock.IsFull() {
		return ArticleView{}, fail(span, fmt.Errorf("%w: %d articles", ErrStockFull, catalog.StockCapacity))
	}

	opts := []catalog.Option{catalog.WithFeatures(in.Features)}
	if in.Shipping != nil {
		opts = append(opts, catalog.WithShipping(*in.Shipping))
	}
	a := s.articles.NewArticle(in.Category, in.Designation, in.UnitPrice, in.Stock, opts...)
	s.stock.Add(a)

	span.SetAttributes(attribute.Int("article.reference", a.Reference()))
	slog.InfoContext(ctx, "article created", "reference", a.Reference(), "designation", a.Designation())
	return articleView(a), nil
}

func (s *Service) GetArticle(ctx context.Context, ref int) (ArticleView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.stock.FindByReference(ref)
	if a == nil {
		return ArticleView{}, fmt.Errorf("%w: %d", ErrArticleNotFound, ref)
	}
	return articleView(a), nil
}

// ListArticles returns the stock in insertion order, restricted to category
// when it is not empty.
func (s *Service) ListArticles(ctx context.Context, category string) []ArticleView {
	s.mu.Lock()
	defer s.mu.Unlock()

	if category == "" {
		return articleViews(s.stock.ListAll())
	}
	return articleViews(s.stock.FindByCategory(category))
}

// AdjustStock adds delta units to an article, or removes -delta units.
// Removal never takes the stock below zero.
func (s *Service) AdjustStock(ctx context.Context, ref, delta int) (ArticleView, error) {
	ctx, span := s.tracer.Start(ctx, "shop.AdjustStock",
		trace.WithAttributes(attribute.Int("article.reference", ref), attribute.Int("stock.delta", delta)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.stock.FindByReference(ref)
	if a == nil {
		return ArticleView{}, fail(span, fmt.Errorf("%w: %d", ErrArticleNotFound, ref))
	}
	if delta >= 0 {
		a.AddStock(delta)
	} else {
		a.RemoveStock(-delta)
	}

	slog.InfoContext(ctx, "stock adjusted", "reference", ref, "delta", delta, "stock", a.StockQuantity())
	return articleView(a), nil
}

// WithdrawArticle removes an article from the stock. Lines already holding
// units of it are kept.
func (s *Service) WithdrawArticle(ctx context.Context, ref int) error {
	ctx, span := s.tracer.Start(ctx, "shop.WithdrawArticle",
		trace.WithAttributes(attribute.Int("article.reference", ref)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.stock.FindByReference(ref)
	if a == nil {
		return fail(span, fmt.Errorf("%w: %d", ErrArticleNotFound, ref))
	}
	s.stock.Remove(a)

	slog.InfoContext(ctx, "article withdrawn", "reference", ref)
	return nil
}

// --- Customers ---

type NewCustomer struct {
	Kind          customer.Kind
	Name          string
	Address       string
	LoyaltyPoints int
	FirstName     string
	Gender        customer.Gender
	Contact       string
}

func (s *Service) RegisterCustomer(ctx context.Context, in NewCustomer) (CustomerView, error) {
	ctx, span := s.tracer.Start(ctx, "shop.RegisterCustomer")
	defer span.End()

	if in.Name == "" {
		return CustomerView{}, fail(span, fmt.Errorf("%w: name is required", ErrInvalidInput))
	}
	if in.Kind != customer.KindIndividual && in.Kind != customer.KindCompany {
		return CustomerView{}, fail(span, fmt.Errorf("%w: unknown customer kind %q", ErrInvalidInput, in.Kind))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.directory.IsFull() {
		return CustomerView{}, fail(span, fmt.Errorf("%w: %d customers", ErrDirectoryFull, customer.DirectoryCapacity))
	}

	var c *customer.Customer
	if in.Kind == customer.KindCompany {
		c = s.customers.NewCompany(in.Name, in.Address, in.LoyaltyPoints, in.Contact)
	} else {
		c = s.customers.NewIndividual(in.Name, in.Address, in.LoyaltyPoints, in.FirstName, in.Gender)
	}
	s.directory.Add(c)

	span.SetAttributes(attribute.Int("customer.reference", c.Reference()))
	slog.InfoContext(ctx, "customer registered", "reference", c.Reference(), "kind", c.Kind())
	return customerView(c), nil
}

func (s *Service) GetCustomer(ctx context.Context, ref int) (CustomerView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.directory.FindByReference(ref)
	if c == nil {
		return CustomerView{}, fmt.Errorf("%w: %d", ErrCustomerNotFound, ref)
	}
	return customerView(c), nil
}

// ListCustomers returns the directory, restricted to kind when it is not empty.
func (s *Service) ListCustomers(ctx context.Context, kind customer.Kind) []CustomerView {
	s.mu.Lock()
	defer s.mu.Unlock()

	if kind == "" {
		return customerViews(s.directory.List())
	}
	return customerViews(s.directory.ListByKind(kind))
}

// fail marks the span as failed and returns err unchanged.
func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
