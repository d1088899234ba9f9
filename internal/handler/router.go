package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/med-a-api/internal/middleware"
	"github.com/noah-isme/med-a-api/internal/service"
)

// Handlers bundles the API surface for route registration.
type Handlers struct {
	Departments  *DepartmentHandler
	Courses      *CourseHandler
	Classes      *ClassHandler
	Content      *ContentHandler
	Subscription *SubscriptionHandler
	Metrics      *MetricsHandler
}

// Register wires all routes under the API prefix. Reads are public;
// mutations require an admin token. Verification is public by design:
// the engine itself is the gate.
func Register(r *gin.Engine, prefix string, h Handlers, auth *service.AuthService) {
	api := r.Group(prefix)

	adminOnly := middleware.AdminJWT(auth)

	api.GET("/departments", h.Departments.List)
	api.POST("/departments", adminOnly, h.Departments.Create)
	api.DELETE("/departments/:id", adminOnly, h.Departments.Delete)

	api.GET("/courses", h.Courses.List)
	api.POST("/courses", adminOnly, h.Courses.Create)
	api.DELETE("/courses/:id", adminOnly, h.Courses.Delete)

	api.GET("/classes", h.Classes.List)
	api.POST("/classes", adminOnly, h.Classes.Create)
	api.DELETE("/classes/:id", adminOnly, h.Classes.Delete)

	api.GET("/content", h.Content.List)
	api.GET("/content/:id", h.Content.Get)
	api.POST("/content", adminOnly, h.Content.Create)
	api.DELETE("/content/:id", adminOnly, h.Content.Delete)
	api.POST("/content/:id/verify", h.Content.Verify)

	api.POST("/subscription/check", h.Subscription.Check)
	api.POST("/subscription/initiate", h.Subscription.Initiate)
	api.GET("/subscription/plans", h.Subscription.Plans)

	if h.Metrics != nil {
		r.GET("/metrics", adminOnly, h.Metrics.Scrape)
	}
}
