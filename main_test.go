package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"planhub/backend/handlers"
	"planhub/backend/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

func testRouter() *mux.Router {
	userService := services.NewUserService(nil)
	activityService := services.NewActivityService(nil)
	taskService := services.NewTaskService(nil, activityService)
	projectService := services.NewProjectService(nil, nil, nil, activityService)

	return newRouter(routerConfig{
		secret:     []byte("route-test-secret"),
		resolver:   userService,
		auth:       handlers.NewAuthHandler(services.NewAuthService(userService, []byte("route-test-secret"), time.Hour)),
		company:    handlers.NewCompanyHandler(services.NewCompanyService(nil)),
		department: handlers.NewDepartmentHandler(services.NewDepartmentService(nil)),
		user:       handlers.NewUserHandler(userService),
		project:    handlers.NewProjectHandler(projectService, taskService),
		dashboard:  handlers.NewDashboardHandler(services.NewDashboardService(nil, nil, activityService)),
		task:       handlers.NewTaskHandler(taskService),
		subtask:    handlers.NewSubtaskHandler(services.NewSubtaskService(nil, activityService)),
		activity:   handlers.NewActivityHandler(activityService),
		health:     handlers.NewHealthHandler(nil),
	})
}

func TestRouterMatchesDashboardSummary(t *testing.T) {
	router := testRouter()

	for _, path := range []string{"/projects/dashboard/summary", "/dashboard/summary"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		var match mux.RouteMatch
		assert.True(t, router.Match(req, &match), path)
	}
}

func TestRouterMatchesFullSurface(t *testing.T) {
	router := testRouter()

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/auth/login"},
		{http.MethodPost, "/auth/register"},
		{http.MethodGet, "/companies"},
		{http.MethodPost, "/companies"},
		{http.MethodPatch, "/companies/64b0c0ffee64b0c0ffee64b0"},
		{http.MethodGet, "/users/me"},
		{http.MethodPatch, "/users/64b0c0ffee64b0c0ffee64b0/password"},
		{http.MethodGet, "/projects/stats"},
		{http.MethodGet, "/projects/64b0c0ffee64b0c0ffee64b0/full"},
		{http.MethodGet, "/tasks/calendar"},
		{http.MethodPost, "/subtasks/task/64b0c0ffee64b0c0ffee64b0/reorder"},
		{http.MethodGet, "/activities/recent"},
		{http.MethodGet, "/health/db"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		var match mux.RouteMatch
		assert.True(t, router.Match(req, &match), "%s %s", tc.method, tc.path)
	}
}
