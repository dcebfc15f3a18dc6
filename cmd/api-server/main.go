package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"esgreport/db"
	"esgreport/db/migrations"
	"esgreport/internal/config"
	"esgreport/internal/handlers"
	"esgreport/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()
	conn, err := db.Connect(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal("database connection failed", "driver", cfg.DBDriver, "error", err)
	}
	defer conn.Close()

	if err := migrations.Up(conn, cfg.DBDriver); err != nil {
		log.Fatal("migrations failed", "error", err)
	}

	store := db.NewStorage(conn)
	h := handlers.NewHandler(store, log, cfg.JWTSecret)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		}))

		r.Get("/health", h.HealthHandler)
		r.Get("/status", h.StatusHandler)
		r.Post("/auth/login", h.LoginHandler)

		r.Group(func(r chi.Router) {
			r.Use(h.AuthMiddleware)

			r.Post("/auth/logout", h.LogoutHandler)
			r.Get("/auth/current-user", h.CurrentUserHandler)

			r.Get("/users", h.GetUsersHandler)
			r.Post("/users", h.CreateUserHandler)
			r.Put("/users/{id}", h.UpdateUserHandler)
			r.Put("/users/{id}/toggle-status", h.ToggleUserStatusHandler)

			r.Get("/emission-factors", h.GetEmissionFactorsHandler)
			r.Post("/emission-factors", h.CreateEmissionFactorHandler)
			r.Get("/emission-factors/categories", h.GetFactorCategoriesHandler)
			r.Get("/emission-factors/subcategories", h.GetFactorSubCategoriesHandler)
			r.Post("/emission-factors/revisions/{id}/activate", h.ActivateFactorRevisionHandler)
			r.Delete("/emission-factors/revisions/{id}", h.DeleteFactorRevisionHandler)
			r.Get("/emission-factors/{id}", h.GetEmissionFactorHandler)
			r.Put("/emission-factors/{id}", h.UpdateEmissionFactorHandler)
			r.Delete("/emission-factors/{id}", h.DeleteEmissionFactorHandler)
			r.Get("/emission-factors/{id}/revisions", h.GetFactorRevisionsHandler)
			r.Post("/emission-factors/{id}/revisions", h.CreateFactorRevisionHandler)

			r.Get("/measurements", h.GetMeasurementsHandler)
			r.Post("/measurements", h.CreateMeasurementHandler)
			r.Get("/measurements/summary", h.GetMeasurementsSummaryHandler)
			r.Get("/measurements/locations", h.GetMeasurementLocationsHandler)
			r.Post("/measurements/recalculate", h.RecalculateEmissionsHandler)
			r.Get("/measurements/{id}", h.GetMeasurementHandler)
			r.Put("/measurements/{id}", h.UpdateMeasurementHandler)
			r.Delete("/measurements/{id}", h.DeleteMeasurementHandler)

			r.Get("/suppliers", h.GetSuppliersHandler)
			r.Post("/suppliers", h.CreateSupplierHandler)
			r.Get("/suppliers/summary", h.GetSupplierSummaryHandler)
			r.Get("/suppliers/{id}", h.GetSupplierHandler)
			r.Put("/suppliers/{id}", h.UpdateSupplierHandler)
			r.Delete("/suppliers/{id}", h.DeleteSupplierHandler)
			r.Get("/suppliers/{id}/data", h.GetSupplierDataHandler)
			r.Post("/suppliers/{id}/data", h.CreateSupplierDataHandler)

			r.Get("/targets", h.GetTargetsHandler)
			r.Post("/targets", h.CreateTargetHandler)
			r.Get("/targets/stats", h.GetTargetStatsHandler)
			r.Get("/targets/{id}", h.GetTargetHandler)
			r.Put("/targets/{id}", h.UpdateTargetHandler)
			r.Delete("/targets/{id}", h.DeleteTargetHandler)

			r.Get("/dashboard/overview", h.GetDashboardOverviewHandler)
			r.Get("/dashboard/emissions-trend", h.GetEmissionsTrendHandler)
			r.Get("/dashboard/targets-progress", h.GetTargetsProgressHandler)

			r.Get("/assets", h.GetAssetsHandler)
			r.Post("/assets", h.CreateAssetHandler)
			r.Get("/assets/types", h.GetAssetTypesHandler)
			r.Get("/assets/summary", h.GetAssetSummaryHandler)
			r.Get("/assets/{id}", h.GetAssetHandler)
			r.Put("/assets/{id}", h.UpdateAssetHandler)
			r.Delete("/assets/{id}", h.DeleteAssetHandler)

			r.Get("/projects", h.GetProjectsHandler)
			r.Post("/projects", h.CreateProjectHandler)
			r.Get("/projects/statistics", h.GetProjectStatisticsHandler)
			r.Get("/projects/{id}", h.GetProjectHandler)
			r.Put("/projects/{id}", h.UpdateProjectHandler)
			r.Delete("/projects/{id}", h.DeleteProjectHandler)
			r.Get("/projects/{id}/activities", h.GetProjectActivitiesHandler)
			r.Post("/projects/{id}/activities", h.CreateProjectActivityHandler)
			r.Put("/projects/{id}/activities/{activityID}", h.UpdateProjectActivityHandler)
			r.Delete("/projects/{id}/activities/{activityID}", h.DeleteProjectActivityHandler)
		})
	})

	r.Get("/swagger.json", handlers.SwaggerHandler(cfg.DocsDir))
	r.Get("/docs/swagger.json", handlers.SwaggerHandler(cfg.DocsDir))
	r.NotFound(handlers.SPAHandler(cfg.StaticDir))

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("server starting", "address", cfg.ServerAddress, "driver", cfg.DBDriver)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("server stopped", "error", err)
	}
}
