package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	appmiddleware "github.com/matrimony/backend/internal/middleware"
	"github.com/matrimony/backend/internal/services"
)

// RouterDeps carries everything the HTTP surface needs. Built once in main
// and in route-level tests.
type RouterDeps struct {
	Directory services.BiodataDirectory
	Users     services.UserStore
	Contacts  services.ContactRequestStore
	Favorites services.FavoriteStore
	Stories   services.StoryStore
	Payments  services.PaymentGateway

	JWTSecret       string
	JWTExpiration   time.Duration
	ContactFeeCents int64
	Logger          *zap.Logger
}

func NewRouter(deps RouterDeps) chi.Router {
	biodataHandler := NewBiodataHandler(deps.Directory)
	authHandler := NewAuthHandler(deps.Users, deps.JWTSecret, deps.JWTExpiration)
	userHandler := NewUserHandler(deps.Users)
	contactHandler := NewContactHandler(deps.Contacts, deps.ContactFeeCents)
	favoriteHandler := NewFavoriteHandler(deps.Favorites)
	storyHandler := NewStoryHandler(deps.Stories)
	paymentHandler := NewPaymentHandler(deps.Payments, deps.Logger)
	adminHandler := NewAdminHandler(deps.Directory, deps.Users, deps.Contacts)

	requireAuth := appmiddleware.JWTAuth(deps.JWTSecret)
	requireAdmin := appmiddleware.RequireAdmin(deps.Users)

	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Matrimony API"))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Public
	r.Post("/jwt", authHandler.IssueToken)
	r.Post("/users", userHandler.Create)
	r.Get("/biodatas", biodataHandler.List)
	r.Get("/success-stories", storyHandler.List)

	// Authenticated members
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Get("/biodatas/similar", biodataHandler.GetSimilar)
		r.Get("/biodatas/own", biodataHandler.GetOwn)
		r.Get("/biodatas/{id}", biodataHandler.GetByID)
		r.Post("/biodatas", biodataHandler.Submit)
		r.Put("/biodatas", biodataHandler.Update)

		r.Get("/users/admin/{email}", userHandler.CheckAdmin)
		r.Post("/users/{email}/premium-request", userHandler.RequestPremium)

		r.Post("/contact-requests", contactHandler.Create)
		r.Get("/contact-requests/{email}", contactHandler.ListByEmail)
		r.Delete("/contact-requests/{id}", contactHandler.Delete)

		r.Post("/favorites", favoriteHandler.Add)
		r.Get("/favorites/{email}", favoriteHandler.ListByEmail)
		r.Delete("/favorites/{id}", favoriteHandler.Remove)

		r.Post("/success-stories", storyHandler.Create)

		r.Post("/payment-intents", paymentHandler.CreateIntent)
	})

	// Admin
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Use(requireAdmin)

		r.Get("/users", userHandler.List)
		r.Patch("/users/{email}/role", userHandler.ChangeRole)
		r.Get("/contact-requests", contactHandler.ListPending)
		r.Patch("/contact-requests/{id}/approve", contactHandler.Approve)
		r.Get("/success-stories/{id}", storyHandler.GetByID)
		r.Get("/admin/stats", adminHandler.Stats)
	})

	return r
}
