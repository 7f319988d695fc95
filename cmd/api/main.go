package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/roahoki/biomechanics-website-sub001/internal/auth"
	"github.com/roahoki/biomechanics-website-sub001/internal/catalog"
	"github.com/roahoki/biomechanics-website-sub001/internal/config"
	"github.com/roahoki/biomechanics-website-sub001/internal/httpx"
	kafkax "github.com/roahoki/biomechanics-website-sub001/internal/kafka"
	"github.com/roahoki/biomechanics-website-sub001/internal/links"
	"github.com/roahoki/biomechanics-website-sub001/internal/orders"
	"github.com/roahoki/biomechanics-website-sub001/internal/postgres"
	"github.com/roahoki/biomechanics-website-sub001/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer for lifecycle events
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderEvents, 1024)
	prod.Start(ctx)

	// Auth
	admin := &httpx.AuthMiddleware{Verifier: &auth.Verifier{
		Secret: []byte(cfg.AuthSecret),
		Roles:  &auth.StaffRepo{DB: db},
		Redis:  rdb,
		TTL:    cfg.RoleTTL,
	}}

	// Handlers
	router := httpx.NewRouter()
	oh := &httpx.OrdersHandler{
		Store:           &orders.Repo{DB: db},
		Producer:        prod,
		Redis:           rdb,
		Admin:           admin,
		Service:         cfg.ServiceName,
		PaymentLinkBase: cfg.PaymentLinkBase,
	}
	oh.Register(router)
	(&httpx.ProductsHandler{Store: &catalog.Repo{DB: db}, Admin: admin}).Register(router)
	(&httpx.LinksHandler{Store: &links.Repo{DB: db}, Admin: admin}).Register(router)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close() // close inbox -> flush & close writer
	cancel()
	prod.WaitClosed()
}
