package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"planhub/backend/config"
	"planhub/backend/db"
	"planhub/backend/handlers"
	"planhub/backend/logging"
	"planhub/backend/middleware"
	"planhub/backend/repositories"
	"planhub/backend/services"

	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Logger.Fatalf("Event ID: CONFIG_LOAD_FAILED, Description: %v", err)
	}
	logging.InitLogger(cfg.LogFile, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECT_FAILED, Description: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logging.Logger.Errorf("Event ID: DB_DISCONNECT_FAILED, Description: %v", err)
		}
	}()

	collections := db.NewCollections(client, cfg.MongoDatabase)
	if err := collections.EnsureIndexes(ctx); err != nil {
		logging.Logger.Fatalf("Event ID: DB_INDEX_FAILED, Description: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_READY, Description: Connected to MongoDB database %s", cfg.MongoDatabase)

	companyRepo := repositories.NewCompanyRepository(collections.Companies)
	departmentRepo := repositories.NewDepartmentRepository(collections.Departments)
	userRepo := repositories.NewUserRepository(collections.Users)
	projectRepo := repositories.NewProjectRepository(collections.Projects)
	taskRepo := repositories.NewTaskRepository(collections.Tasks)
	subtaskRepo := repositories.NewSubtaskRepository(collections.Subtasks)
	activityRepo := repositories.NewActivityRepository(collections.Activities)

	activityService := services.NewActivityService(activityRepo)
	companyService := services.NewCompanyService(companyRepo)
	departmentService := services.NewDepartmentService(departmentRepo)
	userService := services.NewUserService(userRepo)
	authService := services.NewAuthService(userService, []byte(cfg.JWTSecret), cfg.TokenTTL)
	projectService := services.NewProjectService(projectRepo, taskRepo, subtaskRepo, activityService)
	taskService := services.NewTaskService(taskRepo, activityService)
	subtaskService := services.NewSubtaskService(subtaskRepo, activityService)
	dashboardService := services.NewDashboardService(projectRepo, taskRepo, activityService)

	authHandler := handlers.NewAuthHandler(authService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	departmentHandler := handlers.NewDepartmentHandler(departmentService)
	userHandler := handlers.NewUserHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService, taskService)
	taskHandler := handlers.NewTaskHandler(taskService)
	subtaskHandler := handlers.NewSubtaskHandler(subtaskService)
	activityHandler := handlers.NewActivityHandler(activityService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	healthHandler := handlers.NewHealthHandler(client)

	router := newRouter(routerConfig{
		secret:     []byte(cfg.JWTSecret),
		resolver:   userService,
		auth:       authHandler,
		company:    companyHandler,
		department: departmentHandler,
		user:       userHandler,
		project:    projectHandler,
		dashboard:  dashboardHandler,
		task:       taskHandler,
		subtask:    subtaskHandler,
		activity:   activityHandler,
		health:     healthHandler,
	})

	server := &http.Server{
		Addr:         cfg.Address,
		Handler:      enableCORS(router),
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logging.Logger.Infof("Event ID: SERVER_START, Description: Server listening on %s", cfg.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatalf("Event ID: SERVER_FAILED, Description: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Logger.Infof("Event ID: SERVER_SHUTDOWN, Description: Shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Logger.Errorf("Event ID: SERVER_SHUTDOWN_FAILED, Description: %v", err)
	}
}

type routerConfig struct {
	secret     []byte
	resolver   middleware.SubjectResolver
	auth       *handlers.AuthHandler
	company    *handlers.CompanyHandler
	department *handlers.DepartmentHandler
	user       *handlers.UserHandler
	project    *handlers.ProjectHandler
	dashboard  *handlers.DashboardHandler
	task       *handlers.TaskHandler
	subtask    *handlers.SubtaskHandler
	activity   *handlers.ActivityHandler
	health     *handlers.HealthHandler
}

func newRouter(c routerConfig) *mux.Router {
	router := mux.NewRouter()

	// Mutations and /users/me require a bearer token; reads and auth are
	// public. The protected subrouter is registered first so /users/me wins
	// over /users/{id}.
	protected := router.NewRoute().Subrouter()
	protected.Use(middleware.JWTAuthMiddleware(c.secret, c.resolver))

	protected.HandleFunc("/companies", c.company.Create).Methods(http.MethodPost)
	protected.HandleFunc("/companies/{id}", c.company.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/companies/{id}", c.company.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/departments", c.department.Create).Methods(http.MethodPost)
	protected.HandleFunc("/departments/{id}", c.department.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/departments/{id}", c.department.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/users", c.user.Create).Methods(http.MethodPost)
	protected.HandleFunc("/users/me", c.user.Me).Methods(http.MethodGet)
	protected.HandleFunc("/users/{id}", c.user.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{id}/password", c.user.UpdatePassword).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{id}", c.user.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/projects", c.project.Create).Methods(http.MethodPost)
	protected.HandleFunc("/projects/{id}", c.project.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/projects/{id}", c.project.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/tasks", c.task.Create).Methods(http.MethodPost)
	protected.HandleFunc("/tasks/{id}", c.task.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/tasks/{id}", c.task.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/subtasks", c.subtask.Create).Methods(http.MethodPost)
	protected.HandleFunc("/subtasks/{id}", c.subtask.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/subtasks/{id}", c.subtask.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/subtasks/task/{taskId}/reorder", c.subtask.Reorder).Methods(http.MethodPost)

	router.HandleFunc("/auth/login", c.auth.Login).Methods(http.MethodPost)
	router.HandleFunc("/auth/register", c.auth.Register).Methods(http.MethodPost)

	router.HandleFunc("/companies", c.company.List).Methods(http.MethodGet)
	router.HandleFunc("/companies/{id}", c.company.Get).Methods(http.MethodGet)

	router.HandleFunc("/departments", c.department.List).Methods(http.MethodGet)
	router.HandleFunc("/departments/{id}", c.department.Get).Methods(http.MethodGet)

	router.HandleFunc("/users", c.user.List).Methods(http.MethodGet)
	router.HandleFunc("/users/{id}", c.user.Get).Methods(http.MethodGet)

	router.HandleFunc("/projects", c.project.List).Methods(http.MethodGet)
	router.HandleFunc("/projects/dashboard/summary", c.dashboard.Summary).Methods(http.MethodGet)
	router.HandleFunc("/projects/stats", c.project.Stats).Methods(http.MethodGet)
	router.HandleFunc("/projects/{id}", c.project.Get).Methods(http.MethodGet)
	router.HandleFunc("/projects/{id}/full", c.project.Full).Methods(http.MethodGet)
	router.HandleFunc("/projects/{id}/tasks", c.project.Tasks).Methods(http.MethodGet)
	router.HandleFunc("/projects/{id}/stats", c.project.TaskStats).Methods(http.MethodGet)

	// Short alias kept for clients that predate the nested path.
	router.HandleFunc("/dashboard/summary", c.dashboard.Summary).Methods(http.MethodGet)

	router.HandleFunc("/tasks/calendar", c.task.Calendar).Methods(http.MethodGet)
	router.HandleFunc("/tasks/{id}", c.task.Get).Methods(http.MethodGet)

	router.HandleFunc("/subtasks/task/{taskId}", c.subtask.ListByTask).Methods(http.MethodGet)
	router.HandleFunc("/subtasks/{id}", c.subtask.Get).Methods(http.MethodGet)

	router.HandleFunc("/activities/recent", c.activity.Recent).Methods(http.MethodGet)

	router.HandleFunc("/health", c.health.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/db", c.health.HealthDB).Methods(http.MethodGet)

	return router
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
