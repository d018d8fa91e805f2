package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/partsdesk/partsdesk-backend/api/controllers"
	"github.com/partsdesk/partsdesk-backend/api/middleware"
	"github.com/partsdesk/partsdesk-backend/internal/assignments"
	"github.com/partsdesk/partsdesk-backend/internal/badges"
	"github.com/partsdesk/partsdesk-backend/internal/suppliers"
	"github.com/partsdesk/partsdesk-backend/pkg/config"
	"github.com/partsdesk/partsdesk-backend/pkg/enums"
	"github.com/partsdesk/partsdesk-backend/pkg/logger"
	"github.com/partsdesk/partsdesk-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	assignmentService assignments.Service,
	supplierService suppliers.Service,
	badgeService badges.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(dbP, redisClient, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(enums.ActorRoleAdmin.String(), logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/assignments", func(r chi.Router) {
			r.Get("/", controllers.AssignmentList(assignmentService, logg))
			r.Post("/", controllers.AssignmentCreate(assignmentService, logg))
			r.Get("/{assignmentId}", controllers.AssignmentDetail(assignmentService, logg))
			r.Patch("/{assignmentId}/status", controllers.AssignmentUpdateStatus(assignmentService, logg))
			r.Patch("/{assignmentId}/priority", controllers.AssignmentUpdatePriority(assignmentService, logg))
			r.Get("/{assignmentId}/audit", controllers.AssignmentAuditTrail(assignmentService, logg))
		})

		r.Get("/suppliers", controllers.SupplierList(supplierService, logg))
		r.Get("/workflows/{requestType}/statuses", controllers.WorkflowStatuses(logg))

		r.Route("/badges", func(r chi.Router) {
			r.Get("/", controllers.BadgeCounts(badgeService, logg))
			r.Post("/{category}/seen", controllers.BadgeMarkSeen(badgeService, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(enums.ActorRoleSupplier.String(), logg))

		r.Route("/my-assignments", func(r chi.Router) {
			r.Get("/", controllers.MyAssignmentList(assignmentService, logg))
			r.Patch("/{assignmentId}/status", controllers.MyAssignmentUpdateStatus(assignmentService, logg))
			r.Get("/{assignmentId}/audit", controllers.MyAssignmentAuditTrail(assignmentService, logg))
		})
	})

	return r
}
