package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"orderservice/cmd"
	httpin "orderservice/internal/adapters/in/http"
	"orderservice/internal/adapters/out/postgres/orderrepo"
	"orderservice/internal/adapters/out/postgres/paymentrepo"
	"orderservice/internal/adapters/out/postgres/releaserepo"
	"orderservice/internal/adapters/out/postgres/sagarepo"
	"orderservice/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := connectDB(configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Error building composition root: %v", err)
	}

	jobManager := jobs.NewJobManager(
		app.CreateRecoverPlacementSagasCommandHandler(),
		configs.SagaRecoverySpec,
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:          goDotEnvVariable("HTTP_PORT"),
		DBHost:            goDotEnvVariable("DB_HOST"),
		DBPort:            goDotEnvVariable("DB_PORT"),
		DBUser:            goDotEnvVariable("DB_USER"),
		DBPassword:        goDotEnvVariable("DB_PASSWORD"),
		DBName:            goDotEnvVariable("DB_NAME"),
		DBSslMode:         goDotEnvVariable("DB_SSLMODE"),
		CouponServiceURL:  goDotEnvVariable("COUPON_SERVICE_URL"),
		StockServiceURL:   goDotEnvVariable("STOCK_SERVICE_URL"),
		PaymentServiceURL: goDotEnvVariable("PAYMENT_SERVICE_URL"),
		ProductServiceURL: goDotEnvVariable("PRODUCT_SERVICE_URL"),
		SagaGracePeriod:   durationEnvVariable("SAGA_GRACE_PERIOD", 10*time.Minute),
		SagaMaxAttempts:   intEnvVariable("SAGA_MAX_ATTEMPTS", 3),
		SagaRecoverySpec:  envVariableOrDefault("SAGA_RECOVERY_SPEC", "0 * * * * *"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func envVariableOrDefault(key, fallback string) string {
	if value := goDotEnvVariable(key); value != "" {
		return value
	}
	return fallback
}

func durationEnvVariable(key string, fallback time.Duration) time.Duration {
	value := goDotEnvVariable(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return parsed
}

func intEnvVariable(key string, fallback int) int {
	value := goDotEnvVariable(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return parsed
}

func connectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineItemDTO{},
		&paymentrepo.PaymentDTO{},
		&releaserepo.ReleaseDTO{},
		&sagarepo.PlacementSagaDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreatePlaceOrderCommandHandler(),
		app.CreateChangeOrderStatusCommandHandler(),
		app.CreateChangeLineItemStatusCommandHandler(),
		app.CreateBulkChangeOrderStatusCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetCustomerOrdersQueryHandler(),
		app.CreateCountOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
