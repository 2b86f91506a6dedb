package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jcmexdev/threewheels-sales/internal/api/httpx/middlewares"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachRequestMetadata)
	r.Use(middlewares.Tracing("sales-api"))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handler.Health)

	r.Route("/articles", func(r chi.Router) {
		r.Get("/", handler.ListArticles)
		r.Post("/", handler.CreateArticle)
		r.Get("/{ref}", handler.GetArticle)
		r.Delete("/{ref}", handler.WithdrawArticle)
		r.Post("/{ref}/stock", handler.AdjustStock)
	})

	r.Route("/customers", func(r chi.Router) {
		r.Get("/", handler.ListCustomers)
		r.Post("/", handler.RegisterCustomer)
		r.Get("/{ref}", handler.GetCustomer)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", handler.ListOrders)
		r.Post("/", handler.OpenOrder)
		r.Get("/{ref}", handler.GetOrder)
		r.Get("/{ref}/summary", handler.GetOrderSummary)
		r.Post("/{ref}/lines", handler.OrderArticle)
		r.Delete("/{ref}/lines/{articleRef}", handler.RemoveLine)
		r.Post("/{ref}/close", handler.CloseOrder)
	})

	r.Post("/checkout", handler.Checkout)
	r.Get("/checkouts/{id}", handler.GetCheckout)
	return r
}
