package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"fieldwatch/pkg/storage"
)

var appStart = time.Now()

type HealthCtrl struct {
	db    *gorm.DB
	store storage.ObjectStore
}

func NewHealthCtrl(db *gorm.DB, store storage.ObjectStore) *HealthCtrl {
	return &HealthCtrl{db: db, store: store}
}

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *HealthCtrl) database(ctx context.Context) check {
	if h.db == nil {
		return check{Err: "gorm db is nil"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return check{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return check{Err: "ping: " + err.Error()}
	}
	return check{OK: true}
}

func (h *HealthCtrl) objectStore(ctx context.Context) check {
	p, ok := h.store.(storage.Pinger)
	if !ok {
		return check{OK: h.store != nil}
	}
	if err := p.Ping(ctx); err != nil {
		return check{Err: err.Error()}
	}
	return check{OK: true}
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db, store := h.database(ctx), h.objectStore(ctx)
	allOK := db.OK && store.OK
	status := http.StatusOK
	if !allOK {
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": allOK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"database":     db,
			"object_store": store,
		},
		"time": time.Now().Format(time.RFC3339),
	})
}
