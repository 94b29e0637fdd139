package config

import (
	"reflect"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		App:       AppConfig{Port: "8080"},
		JWT:       JWTConfig{Secret: "secret"},
		RateLimit: RateLimitConfig{Enabled: true, Request: 100, Duration: time.Minute},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing secret", func(c *Config) { c.JWT.Secret = "" }, true},
		{"non numeric port", func(c *Config) { c.App.Port = "http" }, true},
		{"port out of range", func(c *Config) { c.App.Port = "70000" }, true},
		{"zero rate limit", func(c *Config) { c.RateLimit.Request = 0 }, true},
		{"rate limit disabled", func(c *Config) { c.RateLimit = RateLimitConfig{} }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BAD_INT", "forty")
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_DURATION", "90s")
	t.Setenv("TEST_SLICE", " https://a.example , ,https://b.example")
	t.Setenv("TEST_EMPTY_SLICE", " , ")

	if got := getEnvAsInt("TEST_INT", 1); got != 42 {
		t.Errorf("Expected 42, got %d", got)
	}
	if got := getEnvAsInt("TEST_BAD_INT", 7); got != 7 {
		t.Errorf("Expected default 7, got %d", got)
	}
	if got := getEnvAsBool("TEST_BOOL", false); !got {
		t.Error("Expected true")
	}
	if got := getEnvAsDuration("TEST_DURATION", time.Second); got != 90*time.Second {
		t.Errorf("Expected 90s, got %s", got)
	}
	if got := getEnv("TEST_UNSET_KEY", "fallback"); got != "fallback" {
		t.Errorf("Expected fallback, got %s", got)
	}

	expected := []string{"https://a.example", "https://b.example"}
	if got := getEnvAsSlice("TEST_SLICE", nil); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
	if got := getEnvAsSlice("TEST_EMPTY_SLICE", []string{"*"}); !reflect.DeepEqual(got, []string{"*"}) {
		t.Errorf("Expected default, got %v", got)
	}
}

func TestConnectionStrings(t *testing.T) {
	c := &Config{
		Database: DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "jobs", SSLMode: "disable"},
		Redis:    RedisConfig{Host: "cache", Port: 6379},
	}

	if got := c.DatabaseConnectionString(); got != "host=db port=5432 user=u password=p dbname=jobs sslmode=disable" {
		t.Errorf("Unexpected DSN %q", got)
	}
	if got := c.RedisAddress(); got != "cache:6379" {
		t.Errorf("Expected cache:6379, got %s", got)
	}
}
