package router

import (
	"github.com/wb-go/wbf/ginext"

	"github.com/drivedesk/notifier/internal/api/handlers/dispatch"
	"github.com/drivedesk/notifier/internal/api/handlers/notification"
	"github.com/drivedesk/notifier/internal/api/handlers/trigger"
	"github.com/drivedesk/notifier/internal/middlewares"
)

func New(
	notifHandler *notification.Handler,
	triggerHandler *trigger.Handler,
	dispatchHandler *dispatch.Handler,
) *ginext.Engine {
	e := ginext.New()
	e.Use(middlewares.CORSMiddleware())
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	api := e.Group("/api/notifications")
	{
		api.POST("/", notifHandler.Create)
		api.GET("/", notifHandler.Search)
		api.GET("/export", notifHandler.Export)
		api.GET("/inbox/:recipient_type/:recipient_id", notifHandler.Inbox)
		api.GET("/:id", notifHandler.Get)
		api.GET("/:id/status", notifHandler.GetStatus)
		api.POST("/:id/read", notifHandler.MarkRead)
		api.DELETE("/:id", notifHandler.Cancel)
	}

	triggers := e.Group("/api/triggers")
	{
		triggers.POST("/session-reminder", triggerHandler.SessionReminder)
		triggers.POST("/exam-convocation", triggerHandler.ExamConvocation)
		triggers.POST("/payment-reminder", triggerHandler.PaymentReminder)
		triggers.POST("/maintenance-alert", triggerHandler.MaintenanceAlert)
	}

	admin := e.Group("/api/dispatch")
	{
		admin.POST("/run", dispatchHandler.Run)
		admin.POST("/retry", dispatchHandler.Retry)
	}

	return e
}
