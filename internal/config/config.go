// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env"`
	StorageConnectionString string `yaml:"storage_connection_string"`
	RabbitMQConnection      string `yaml:"rabbitmq_connection"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	Gateway                 `yaml:"gateway"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// Gateway учётные данные и сетевые настройки платёжного шлюза SitePay.
// APIKey и PublicKey выдаются в личном кабинете мерчанта; SecureToken
// нужен только для операций с сохранёнными картами.
type Gateway struct {
	APIKey      string        `yaml:"api_key" env:"SITEPAY_API_KEY"`
	SecureToken string        `yaml:"secure_token" env:"SITEPAY_SECURE_TOKEN"`
	PublicKey   string        `yaml:"public_key" env:"SITEPAY_PUBLIC_KEY"`
	CheckoutURL string        `yaml:"checkout_url"`
	Host        string        `yaml:"host"`
	Protocol    string        `yaml:"protocol"`
	Port        int           `yaml:"port"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxRetries  int           `yaml:"max_retries"`
}

// MustLoad функция для загрузки конфига, путь к файлу берётся из CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"StorageConnectionString: %s\n"+
			"RabbitMQConnection: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  User: %s\n"+
			"  DB: %d\n"+
			"  MaxRetries: %d\n"+
			"  DialTimeout: %s\n"+
			"  Timeout: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Gateway:\n"+
			"  Host: %s\n"+
			"  Protocol: %s\n"+
			"  Port: %d\n"+
			"  Timeout: %s\n"+
			"  MaxRetries: %d\n",
		c.Env,
		c.StorageConnectionString,
		c.RabbitMQConnection,
		c.AddressRedis,
		c.User,
		c.DB,
		c.RedisConnection.MaxRetries,
		c.DialTimeout,
		c.TimeoutRedis,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.Gateway.Host,
		c.Gateway.Protocol,
		c.Gateway.Port,
		c.Gateway.Timeout,
		c.Gateway.MaxRetries,
	)
}
