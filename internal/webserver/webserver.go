// Package webserver hosts the echo HTTP server. Routes are registered by the
// api packages through the Pub*/Api* helpers; Api* routes sit behind the
// admin JWT middleware.
package webserver

import (
	"fmt"
	"net/http"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gustavopprado/ecommerce-fgv/internal/app"
)

const (
	ContextKeyApp = "app.ctx"
	ContextKeyDB  = "app.db"
)

var server *WebServer

type WebServer struct {
	root *echo.Echo
	pub  *echo.Group
	api  *echo.Group
	app  *app.Application
}

func Init(application *app.Application) {
	server = NewWebServer(application)
}

func NewWebServer(application *app.Application) *WebServer {
	ws := &WebServer{app: application}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(ws.injectContext)
	e.Use(requestLogger)

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Backend OK")
	})

	ws.pub = e.Group("/api")
	ws.api = e.Group("/api", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(application.Config().Web.Secret),
	}))
	ws.root = e
	return ws
}

func (ws *WebServer) injectContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(ContextKeyApp, ws.app)
		c.Set(ContextKeyDB, ws.app.DB())
		return next(c)
	}
}

func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		zap.L().Info("http request",
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
			zap.Int("status", c.Response().Status),
			zap.Duration("latency", time.Since(start)))
		return err
	}
}

// Listen starts the HTTP server and blocks.
func Listen() error {
	cfg := server.app.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.L().Info("web server listening", zap.String("addr", addr))
	return server.root.Start(addr)
}

// GetApp returns the application bound to the request.
func GetApp(c echo.Context) *app.Application {
	return c.Get(ContextKeyApp).(*app.Application)
}

// GetDB returns the database handle bound to the request.
func GetDB(c echo.Context) *gorm.DB {
	return c.Get(ContextKeyDB).(*gorm.DB)
}

// Public routes

func PubGET(path string, h echo.HandlerFunc) {
	server.pub.GET(path, h)
}

func PubPOST(path string, h echo.HandlerFunc) {
	server.pub.POST(path, h)
}

// Admin (JWT protected) routes

func ApiGET(path string, h echo.HandlerFunc) {
	server.api.GET(path, h)
}

func ApiPOST(path string, h echo.HandlerFunc) {
	server.api.POST(path, h)
}

func ApiPUT(path string, h echo.HandlerFunc) {
	server.api.PUT(path, h)
}

func ApiPATCH(path string, h echo.HandlerFunc) {
	server.api.PATCH(path, h)
}
