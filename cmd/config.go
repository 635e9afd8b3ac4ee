package cmd

import "time"

type Config struct {
	HTTPPort          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	CouponServiceURL  string
	StockServiceURL   string
	PaymentServiceURL string
	ProductServiceURL string
	SagaGracePeriod   time.Duration
	SagaMaxAttempts   int
	SagaRecoverySpec  string
}
