package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/satsworks/bounties/internal/api/handler"
	customMiddleware "github.com/satsworks/bounties/internal/api/middleware"
	"github.com/satsworks/bounties/internal/config"
	"github.com/satsworks/bounties/internal/repository/postgres"
	"github.com/satsworks/bounties/internal/repository/redis"
	"github.com/satsworks/bounties/internal/security"
	"github.com/satsworks/bounties/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, db *postgres.DB, redisClient *redis.Client) (http.Handler, error) {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Security components
	jwtManager, err := security.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)
	if err != nil {
		return nil, err
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	workspaceRepo := postgres.NewWorkspaceRepository(db)
	bountyRepo := postgres.NewBountyRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)

	// Redis-backed components
	challengeStore := redis.NewChallengeStore(redisClient, cfg.Auth.ChallengeTTL)
	rateLimiter := redis.NewRateLimiter(
		redisClient,
		cfg.Security.RateLimit.RequestsPerMinute,
		cfg.Security.RateLimit.Burst,
	)

	// Services
	authService := service.NewAuthService(userRepo, challengeStore, jwtManager)
	userService := service.NewUserService(userRepo, workspaceRepo, bountyRepo)
	workspaceService := service.NewWorkspaceService(workspaceRepo, userRepo)
	bountyService := service.NewBountyService(bountyRepo, workspaceRepo)
	budgetService := service.NewBudgetService(transactionRepo, workspaceRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceService)
	bountyHandler := handler.NewBountyHandler(bountyService)
	budgetHandler := handler.NewBudgetHandler(budgetService)

	// Middleware components
	authMiddleware := customMiddleware.NewAuthMiddleware(jwtManager)
	rateLimitMiddleware := customMiddleware.NewRateLimitMiddleware(rateLimiter)

	r.Route("/api/v1", func(r chi.Router) {
		// Health
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db))

		// Auth (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/challenge", authHandler.Challenge)
			r.Post("/verify", authHandler.Verify)
			r.Post("/refresh", authHandler.Refresh)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(rateLimitMiddleware.Limit)

			// Users
			r.Route("/users", func(r chi.Router) {
				r.Get("/me", userHandler.Me)
				r.Patch("/me", userHandler.Update)
				r.Delete("/me", userHandler.Delete)
				r.Get("/{pubkey}", userHandler.Get)
			})

			// Workspaces
			r.Route("/workspaces", func(r chi.Router) {
				r.Get("/", workspaceHandler.List)
				r.Post("/", workspaceHandler.Create)

				r.Route("/{workspaceID}", func(r chi.Router) {
					r.Get("/", workspaceHandler.Get)
					r.Patch("/", workspaceHandler.Update)
					r.Delete("/", workspaceHandler.Delete)

					r.Route("/members", func(r chi.Router) {
						r.Get("/", workspaceHandler.ListMembers)
						r.Post("/", workspaceHandler.AddMember)
						r.Put("/{memberPubkey}/role", workspaceHandler.UpdateMemberRole)
						r.Delete("/{memberPubkey}", workspaceHandler.RemoveMember)
					})

					r.Route("/budget", func(r chi.Router) {
						r.Get("/", budgetHandler.GetBudget)
						r.Post("/deposit", budgetHandler.Deposit)
						r.Post("/withdraw", budgetHandler.Withdraw)
					})

					r.Get("/transactions", budgetHandler.ListTransactions)
					r.Get("/activities", workspaceHandler.ListActivities)

					r.Route("/bounties", func(r chi.Router) {
						r.Get("/", bountyHandler.List)
						r.Post("/", bountyHandler.Create)
					})
				})
			})

			// Bounties
			r.Route("/bounties/{bountyID}", func(r chi.Router) {
				r.Get("/", bountyHandler.Get)
				r.Patch("/", bountyHandler.Update)
				r.Delete("/", bountyHandler.Delete)
				r.Put("/status", bountyHandler.ChangeStatus)

				r.Route("/requests", func(r chi.Router) {
					r.Get("/", bountyHandler.ListRequests)
					r.Post("/", bountyHandler.RequestWork)
				})

				r.Route("/proofs", func(r chi.Router) {
					r.Get("/", bountyHandler.ListProofs)
					r.Post("/", bountyHandler.SubmitProof)
				})

				r.Route("/comments", func(r chi.Router) {
					r.Get("/", bountyHandler.ListComments)
					r.Post("/", bountyHandler.AddComment)
				})

				r.Get("/activities", bountyHandler.ListActivities)
			})

			// Work requests and proofs addressed directly
			r.Post("/requests/{requestID}/approve", bountyHandler.ApproveRequest)
			r.Post("/requests/{requestID}/reject", bountyHandler.RejectRequest)
			r.Put("/proofs/{proofID}/review", bountyHandler.ReviewProof)
			r.Delete("/proofs/{proofID}", bountyHandler.DeleteProof)
			r.Delete("/comments/{commentID}", bountyHandler.DeleteComment)
		})
	})

	return r, nil
}
