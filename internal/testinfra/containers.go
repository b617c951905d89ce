//go:build integration

// Package testinfra starts throwaway PostgreSQL and Redis containers for the
// repository integration tests.
package testinfra

import (
	"context"
	"os/exec"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"myLaptopDesk/pkg/config"
	"myLaptopDesk/pkg/database"
	redisdb "myLaptopDesk/pkg/database/redis"
)

const (
	postgresImage = "postgres:16-alpine"
	postgresPort  = "5432/tcp"
	redisImage    = "redis:7-alpine"
	redisPort     = "6379/tcp"
)

// SkipIfNoDocker skips the test if Docker is not available.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if exec.CommandContext(ctx, "docker", "info").Run() != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

func start(t *testing.T, req testcontainers.ContainerRequest) testcontainers.Container {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("start %s: %v", req.Image, err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	return container
}

func endpoint(t *testing.T, container testcontainers.Container, port string) (host, mapped string) {
	t.Helper()
	ctx := context.Background()

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("get container host: %v", err)
	}
	ports, err := container.Ports(ctx)
	if err != nil {
		t.Fatalf("get mapped ports: %v", err)
	}
	for p, bindings := range ports {
		if string(p) == port && len(bindings) > 0 {
			return host, bindings[0].HostPort
		}
	}
	t.Fatalf("port %s is not mapped", port)
	return "", ""
}

// Postgres starts a database, migrates it and returns a connected gorm handle.
func Postgres(t *testing.T) *gorm.DB {
	t.Helper()
	SkipIfNoDocker(t)

	pg := start(t, testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{postgresPort},
		Env: map[string]string{
			"POSTGRES_USER":     "laptops",
			"POSTGRES_PASSWORD": "laptops",
			"POSTGRES_DB":       "laptops",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(postgresPort),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithStartupTimeout(90 * time.Second),
	})
	host, port := endpoint(t, pg, postgresPort)

	cfg := &config.Config{
		App: config.AppConfig{Environment: "test"},
		Database: config.DatabaseConfig{
			Host:     host,
			Port:     port,
			User:     "laptops",
			Password: "laptops",
			Name:     "laptops",
			SSLMode:  "disable",
		},
	}

	db, err := database.InitPostgres(cfg)
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Redis starts a server and returns a connected client.
func Redis(t *testing.T) *goredis.Client {
	t.Helper()
	SkipIfNoDocker(t)

	rc := start(t, testcontainers.ContainerRequest{
		Image:        redisImage,
		ExposedPorts: []string{redisPort},
		WaitingFor:   wait.ForListeningPort(redisPort).WithStartupTimeout(60 * time.Second),
	})
	host, port := endpoint(t, rc, redisPort)

	client, err := redisdb.NewRedisClient(config.RedisConfig{RedisHost: host, RedisPort: port})
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() { _ = redisdb.CloseRedisClient(client) })

	return client
}
