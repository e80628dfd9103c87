package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	alertCtrl "fieldwatch/pkg/alert/controllerImp"
	authCtrl "fieldwatch/pkg/auth/controller"
	fieldCtrl "fieldwatch/pkg/field/controllerImp"
	healthCtrl "fieldwatch/pkg/health/controllerImp"
	imageryCtrl "fieldwatch/pkg/imagery/controllerImp"
	jobCtrl "fieldwatch/pkg/job/controllerImp"
	reportCtrl "fieldwatch/pkg/report/controllerImp"
	seedCtrl "fieldwatch/pkg/seed/controllerImp"
	sensorCtrl "fieldwatch/pkg/sensor/controllerImp"
)

type Controllers struct {
	Auth    authCtrl.AuthController
	Health  *healthCtrl.HealthCtrl
	Field   *fieldCtrl.FieldCtrl
	Alert   *alertCtrl.AlertCtrl
	Sensor  *sensorCtrl.SensorCtrl
	Job     *jobCtrl.JobCtrl
	Imagery *imageryCtrl.ImageryCtrl
	Report  *reportCtrl.ReportCtrl
	Seed    *seedCtrl.SeedCtrl
}

// New mounts every route. auth resolves the caller for the API group; the
// health and metrics endpoints stay outside it.
func New(e *echo.Echo, auth echo.MiddlewareFunc, ctl Controllers, metrics http.Handler) *echo.Echo {
	e.GET("/health", ctl.Health.Health)
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics))
	}

	api := e.Group("", auth)

	api.GET("/whoami", ctl.Auth.WhoAmI)
	api.GET("/devlogin", ctl.Auth.DevLogin)
	api.POST("/seed", ctl.Seed.Create)

	api.POST("/fields", ctl.Field.Create)
	api.GET("/fields", ctl.Field.List)
	api.GET("/fields/:id", ctl.Field.Get)
	api.PATCH("/fields/:id", ctl.Field.Patch)

	api.POST("/alerts", ctl.Alert.Create)
	api.GET("/alerts", ctl.Alert.List)
	api.POST("/alerts/:id/ack", ctl.Alert.Acknowledge)
	api.GET("/fields/:id/alerts", ctl.Alert.ListForField)

	api.POST("/readings", ctl.Sensor.Add)
	api.GET("/fields/:id/readings", ctl.Sensor.Query)
	api.GET("/fields/:id/readings/latest", ctl.Sensor.Latest)

	api.POST("/jobs", ctl.Job.Create)
	api.GET("/jobs", ctl.Job.List)
	api.GET("/jobs/:id", ctl.Job.Get)
	api.PATCH("/jobs/:id", ctl.Job.Patch)

	api.POST("/images/analyze", ctl.Imagery.Analyze, ctl.Imagery.UploadLimit())
	api.POST("/fields/:id/images", ctl.Imagery.AddIndices)
	api.GET("/fields/:id/images", ctl.Imagery.List)

	api.POST("/fields/:id/reports", ctl.Report.Generate)
	api.GET("/reports", ctl.Report.List)
	api.GET("/reports/:id/download", ctl.Report.Download)
	return e
}
