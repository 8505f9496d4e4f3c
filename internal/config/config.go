package config

import (
	"log"
	"os"
)

type Config struct {
	Port           string
	MongoURI       string
	DatabaseName   string
	RabbitURL      string
	EventExchange  string
	RedisAddr      string
	RedisPassword  string
	JWTSecret      string
	ConsulAddress  string
	ServiceName    string
	ServiceID      string
	ServiceAddress string
	AllowOrigins   string
}

func New() *Config {
	return &Config{
		Port:           getEnv("PORT", "6670"),
		MongoURI:       getEnv("MONGO_URI", ""),
		DatabaseName:   getEnv("MONGO_DATABASE", "exam_service"),
		RabbitURL:      getEnv("RABBITMQ_URI", ""),
		EventExchange:  getEnv("RABBITMQ_EXCHANGE", ""),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PWD", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		ConsulAddress:  getEnv("CONSUL_ADDR", ""),
		ServiceName:    getEnv("EXAM_SERVICE_NAME", "exam-service"),
		ServiceID:      getEnv("EXAM_SERVICE_NAME", "exam-service") + "-" + getEnv("EXAM_HOSTNAME", "1"),
		ServiceAddress: getEnv("EXAM_SERVICE_ADDRESS", "exam-service"),
		AllowOrigins:   getEnv("FE_ADDR", "http://localhost:3000"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	if fallback == "" {
		log.Printf("ENV %s not set", key)
	}
	return fallback
}
