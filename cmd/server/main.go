package main

import (
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"gallerio/internal/handlers"
	customMiddleware "gallerio/internal/middleware"
	"gallerio/internal/renderer"
	"gallerio/internal/scanner"
	"gallerio/internal/services"
	"gallerio/internal/websocket"
)

func main() {
	cfg := loadConfig()

	e := newServer(cfg)

	// Start Server
	e.Logger.Fatal(e.Start(cfg.Addr))
}

func newServer(cfg config) *echo.Echo {
	e := echo.New()

	// Image backend: local directory by default, S3 bucket when configured
	var source services.InventorySource
	var store services.BlobStore
	if cfg.s3Mode() {
		objectStore, err := services.NewObjectStore(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Secure)
		if err != nil {
			log.Fatalf("failed to connect to %s: %v", cfg.S3Endpoint, err)
		}
		source = services.NewBucketSource(objectStore, cfg.S3Bucket, cfg.S3Prefix)
		store = services.NewBucketStore(objectStore, cfg.S3Bucket, cfg.S3Prefix)
		log.Printf("serving images from bucket %q at %s", cfg.S3Bucket, cfg.S3Endpoint)
	} else {
		source = scanner.New(cfg.Root)
		store = services.NewDirStore(cfg.Root)
		log.Printf("serving images from %s", cfg.Root)
	}

	// Services
	inventory := services.NewInventoryService(source, cfg.CacheTTL)

	hub := websocket.NewHub()
	go hub.Run()

	refresher := services.NewRefresher(inventory, cfg.CacheTTL, func(count int) {
		hub.Broadcast <- websocket.Event{
			Type:      websocket.EventInventoryChanged,
			Count:     count,
			Timestamp: time.Now(),
		}
	})
	go refresher.Run()

	imagesHandler := handlers.NewImagesHandler(inventory)
	filesHandler := handlers.NewFilesHandler(store)
	galleryHandler := handlers.NewGalleryHandler()
	eventsHandler := handlers.NewEventsHandler(hub)

	// Middleware
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Printf("REQUEST: uri: %v, status: %v\n", v.URI, v.Status)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(customMiddleware.SecurityHeaders())

	// Template Renderer
	e.Renderer = renderer.New()

	// Routes
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	e.GET("/", galleryHandler.GalleryPage)
	e.GET("/api/images", imagesHandler.ListImages)
	e.GET("/api/images/stats", imagesHandler.GetStats)
	e.GET("/images/*", filesHandler.ServeImage)
	e.GET("/download/*", filesHandler.DownloadImage)
	e.GET("/ws", eventsHandler.Subscribe)
	e.Static("/static", "static")

	return e
}
