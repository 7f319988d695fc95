package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/roahoki/biomechanics-website-sub001/internal/config"
	kafkax "github.com/roahoki/biomechanics-website-sub001/internal/kafka"
	"github.com/roahoki/biomechanics-website-sub001/internal/mailer"
	"github.com/roahoki/biomechanics-website-sub001/internal/orders"
	"github.com/roahoki/biomechanics-website-sub001/internal/redisx"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis (event dedup)
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &mailer.Service{
		Redis: rdb,
		Sender: &mailer.SMTPSender{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			From: cfg.MailFrom,
		},
	}

	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.MailerGroup, orders.TopicOrderEvents, cfg.MailerWorkers)

	go func() {
		log.Printf("mailer consumer started: group=%s topic=%s workers=%d",
			cfg.MailerGroup, orders.TopicOrderEvents, cfg.MailerWorkers)
		if err := cons.Start(ctx, svc.HandleOrderEvent); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down mailer...")
	cancel()
	time.Sleep(500 * time.Millisecond)
}
