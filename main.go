package main

import (
	"fmt"
	"log"
	"os"

	"github.com/avishkar-004/Grocery-Delivery-System-sub001/configs"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/middlewares"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/pkg/geocode"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/pkg/notifier"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/repository"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/routes"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/services"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/utils"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/ws"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func main() {
	cfg := configs.LoadConfig()

	// money is rendered as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
	utils.UseJSONFieldNames()

	// DB
	db, err := configs.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if err := configs.SetupDatabase(db, cfg.DBForceSync, cfg.DBAlterSync); err != nil {
		log.Fatalf("database setup failed: %v", err)
	}
	if cfg.SeedInitial {
		if err := configs.SeedInitialData(db); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		log.Fatalf("cannot create upload dir: %v", err)
	}

	// Order events: websocket hub, plus e-mail when a sender is configured
	hub := ws.NewOrderHub()
	go hub.Run()
	events := services.Publishers{hub}
	if cfg.SenderEmail != "" {
		mailer, err := notifier.NewSESNotifier(notifier.Config{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			SenderEmail:     cfg.SenderEmail,
		}, repository.NewUserRepository(db))
		if err != nil {
			log.Printf("e-mail notifications disabled: %v", err)
		} else {
			events = append(events, mailer)
		}
	}

	var geocoder services.Geocoder
	if cfg.GeocodingKey != "" {
		geocoder = geocode.NewClient(cfg.GeocodingKey)
	}

	// HTTP
	r := gin.Default()
	r.MaxMultipartMemory = cfg.MaxFileSize
	r.Use(middlewares.ErrorHandler())
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigin))
	r.Static("/uploads", cfg.UploadDir)

	routes.RegisterRoutes(r, db, cfg, routes.Options{Hub: hub, Events: events, Geocoder: geocoder})

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
