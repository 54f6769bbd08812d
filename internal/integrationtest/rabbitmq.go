package integrationtest

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// RabbitMQ is a running RabbitMQ container.
type RabbitMQ struct {
	container testcontainers.Container
	URL       string
}

// StartRabbitMQ starts a RabbitMQ container with the default guest user.
func StartRabbitMQ(ctx context.Context) (*RabbitMQ, error) {
	req := testcontainers.ContainerRequest{
		Image:        "rabbitmq:3-management",
		ExposedPorts: []string{"5672/tcp"},
		Env: map[string]string{
			"RABBITMQ_DEFAULT_USER": "guest",
			"RABBITMQ_DEFAULT_PASS": "guest",
		},
		WaitingFor: wait.ForLog("Server startup complete"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("start rabbitmq container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("get rabbitmq host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5672")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("get rabbitmq port: %w", err)
	}

	return &RabbitMQ{
		container: container,
		URL:       fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port()),
	}, nil
}

// Terminate stops the container.
func (r *RabbitMQ) Terminate(ctx context.Context) error {
	return r.container.Terminate(ctx)
}
