package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type KafkaConfig struct {
	Brokers     []string
	EventsTopic string
}

type JWTConfig struct {
	Secret        string
	PublicKeyFile string
	Issuer        string
}

// LendingConfig carries the platform's business knobs. Rates are fractions,
// not percentages.
type LendingConfig struct {
	// TermWeeks is the repayment term for products without a borrower-chosen
	// duration.
	TermWeeks int

	// GraceDays is the window after the due date during which a loan cannot
	// be marked defaulted.
	GraceDays int

	CommissionRate     decimal.Decimal
	InvestorReturnRate decimal.Decimal

	// PaymentAutoVerify completes payments at recording time instead of
	// waiting for an admin decision.
	PaymentAutoVerify bool
}

type Config struct {
	GRPCPort       int
	HTTPPort       int
	DB             DatabaseConfig
	Kafka          KafkaConfig
	JWT            JWTConfig
	Lending        LendingConfig
	MigrationsPath string
	ServiceName    string
}

func (c Config) Validate() {
	if c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
	if c.JWT.Secret == "" && c.JWT.PublicKeyFile == "" {
		panic("JWT_SECRET or JWT_PUBLIC_KEY_FILE environment variable is required")
	}
}

func Load() Config {
	return Config{
		GRPCPort: getEnvInt("GRPC_PORT", 9090),
		HTTPPort: getEnvInt("HTTP_PORT", 8090),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "lending"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "lending"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
		},
		Kafka: KafkaConfig{
			Brokers:     []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			EventsTopic: getEnv("KAFKA_EVENTS_TOPIC", "lending.events"),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", ""),
			PublicKeyFile: getEnv("JWT_PUBLIC_KEY_FILE", ""),
			Issuer:        getEnv("JWT_ISSUER", "lending-core"),
		},
		Lending: LendingConfig{
			TermWeeks:          getEnvInt("LOAN_TERM_WEEKS", 4),
			GraceDays:          getEnvInt("DEFAULT_GRACE_DAYS", 14),
			CommissionRate:     getEnvDecimal("COMMISSION_RATE", "0.05"),
			InvestorReturnRate: getEnvDecimal("INVESTOR_RETURN_RATE", "0.25"),
			PaymentAutoVerify:  getEnvBool("PAYMENT_AUTO_VERIFY", false),
		},
		MigrationsPath: getEnv("MIGRATIONS_PATH", "file://./migrations"),
		ServiceName:    "lending-core",
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// GracePeriod returns the grace window as a duration.
func (c LendingConfig) GracePeriod() time.Duration {
	return time.Duration(c.GraceDays) * 24 * time.Hour
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDecimal(key, fallback string) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return decimal.RequireFromString(fallback)
}
