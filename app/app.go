// Package app assembles repositories, services and controllers into an echo server.
package app

import (
	"fmt"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fieldwatch/config"
	"fieldwatch/router"

	alertCtrlImp "fieldwatch/pkg/alert/controllerImp"
	alertRepoImp "fieldwatch/pkg/alert/repositoryImp"
	alertSvcImp "fieldwatch/pkg/alert/serviceImp"
	authCtrlImp "fieldwatch/pkg/auth/controllerImp"
	fieldCtrlImp "fieldwatch/pkg/field/controllerImp"
	fieldRepoImp "fieldwatch/pkg/field/repositoryImp"
	fieldSvcImp "fieldwatch/pkg/field/serviceImp"
	healthCtrlImp "fieldwatch/pkg/health/controllerImp"
	imageryCtrlImp "fieldwatch/pkg/imagery/controllerImp"
	imageryRepoImp "fieldwatch/pkg/imagery/repositoryImp"
	imagerySvcImp "fieldwatch/pkg/imagery/serviceImp"
	jobCtrlImp "fieldwatch/pkg/job/controllerImp"
	jobRepoImp "fieldwatch/pkg/job/repositoryImp"
	jobSvcImp "fieldwatch/pkg/job/serviceImp"
	"fieldwatch/pkg/metrics"
	"fieldwatch/pkg/middleware"
	reportCtrlImp "fieldwatch/pkg/report/controllerImp"
	reportRepoImp "fieldwatch/pkg/report/repositoryImp"
	reportSvcImp "fieldwatch/pkg/report/serviceImp"
	"fieldwatch/pkg/seed"
	seedCtrlImp "fieldwatch/pkg/seed/controllerImp"
	sensorCtrlImp "fieldwatch/pkg/sensor/controllerImp"
	sensorRepoImp "fieldwatch/pkg/sensor/repositoryImp"
	sensorSvcImp "fieldwatch/pkg/sensor/serviceImp"
	"fieldwatch/pkg/storage"
)

// SeedValue makes demo readings reproducible across runs.
const SeedValue = 20240601

type App struct {
	Echo    *echo.Echo
	Seeder  *seed.Seeder
	Metrics *metrics.AnalysisMetrics
}

// Auth picks the identity middleware for cfg.AuthMode.
func Auth(mode string) (echo.MiddlewareFunc, error) {
	switch mode {
	case "dev":
		return middleware.DevLogin(), nil
	case "header":
		return middleware.HeaderAuth(), nil
	}
	return nil, fmt.Errorf("unknown AUTH_MODE %q (want dev or header)", mode)
}

// New wires the server. A nil registry gets a fresh one with the Go and
// process collectors attached.
func New(cfg config.AppConfig, db *gorm.DB, store storage.ObjectStore, log *zap.Logger, reg *prometheus.Registry) (*App, error) {
	auth, err := Auth(cfg.AuthMode)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	m, err := metrics.NewAnalysisMetrics(reg)
	if err != nil {
		return nil, err
	}

	fields := fieldSvcImp.NewFieldService(fieldRepoImp.New(db), log)
	alerts := alertSvcImp.NewAlertService(alertRepoImp.New(db), fields, log)
	sensors := sensorSvcImp.NewSensorService(sensorRepoImp.New(db), fields)
	jobs := jobSvcImp.NewJobService(jobRepoImp.New(db), fields, log)
	imagery := imagerySvcImp.NewImageryService(imagerySvcImp.Deps{
		DB:      db,
		Images:  imageryRepoImp.New(db),
		Fields:  fields,
		Jobs:    jobs,
		Store:   store,
		Metrics: m,
		Log:     log,
	}, imagerySvcImp.Options{MaxSide: cfg.ImageMaxSide, DecodeTimeout: cfg.DecodeTimeout})
	reports := reportSvcImp.NewReportService(reportSvcImp.Deps{
		Reports: reportRepoImp.New(db),
		Fields:  fields,
		Sensors: sensors,
		Alerts:  alerts,
		Jobs:    jobs,
		Store:   store,
		Log:     log,
	})
	seeder := seed.New(db, log, SeedValue)

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestLogger(log.Named("http")))

	router.New(e, auth, router.Controllers{
		Auth:    authCtrlImp.NewAuthController(cfg.AuthMode),
		Health:  healthCtrlImp.NewHealthCtrl(db, store),
		Field:   fieldCtrlImp.New(fields),
		Alert:   alertCtrlImp.New(alerts),
		Sensor:  sensorCtrlImp.New(sensors),
		Job:     jobCtrlImp.New(jobs),
		Imagery: imageryCtrlImp.New(imagery, cfg.UploadMaxBytes),
		Report:  reportCtrlImp.New(reports),
		Seed:    seedCtrlImp.New(seeder),
	}, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return &App{Echo: e, Seeder: seeder, Metrics: m}, nil
}
