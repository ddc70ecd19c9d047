//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/creatorgate/service-subscription/internal/adapter"
	"github.com/creatorgate/service-subscription/internal/application"
	subEvents "github.com/creatorgate/service-subscription/internal/events"
	"github.com/creatorgate/service-subscription/internal/platform/clock"
	"github.com/creatorgate/service-subscription/internal/platform/kafka"
	"github.com/creatorgate/service-subscription/internal/repository"
	"github.com/creatorgate/service-subscription/internal/saga"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	KafkaBrokers []string
	Cleanup      func()
}

// subscriptionStack holds wired-up subscription service components.
type subscriptionStack struct {
	Providers       *application.ProviderService
	Subscriptions   *application.SubscriptionService
	Content         *application.ContentService
	Access          *application.AccessService
	Gateway         *adapter.MockPaymentGateway
	Clock           *clock.Fixed
	Consumer        *subEvents.BillingEventConsumer
	CleanupProducer func()
}

// setupContainers starts PostgreSQL and Kafka testcontainers and returns a connected GORM DB.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_subscription",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_subscription sslmode=disable", pgHost, pgPort.Port())

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(
		&repository.ProviderModel{},
		&repository.SubscriptionModel{},
		&repository.ContentModel{},
		&repository.ChargeModel{},
	))

	// Start Kafka container using confluent-local (supports KRaft natively).
	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	createTopics(t, kafkaBrokers, subEvents.TopicSubscriptionEvents, subEvents.TopicBillingEvents)

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{
		DB:           db,
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// setupSubscriptionStack wires up the full subscription service stack over a
// pinned clock so tests can move time deterministically.
func setupSubscriptionStack(t *testing.T, db *gorm.DB, brokers []string) *subscriptionStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	subRepo := repository.NewGormSubscriptionRepository(db)
	providerRepo := repository.NewGormProviderRepository(db)
	contentRepo := repository.NewGormContentRepository(db)

	gateway := adapter.NewMockPaymentGateway(logger)
	producer := kafka.NewProducer(brokers, logger)
	clk := clock.NewFixed(time.Now().UTC())

	sagaSvc := saga.NewSubscriptionSagaService(subRepo, gateway, producer, clk, logger)
	subscriptionSvc := application.NewSubscriptionService(subRepo, providerRepo, sagaSvc, clk, logger)
	providerSvc := application.NewProviderService(providerRepo, clk, logger)
	contentSvc := application.NewContentService(contentRepo, providerRepo, producer, clk, logger)
	accessSvc := application.NewAccessService(contentRepo, subRepo, clk, logger)

	groupID := fmt.Sprintf("test-subscription-%s", uuid.New().String()[:8])
	consumer := subEvents.NewBillingEventConsumer(brokers, groupID, subscriptionSvc, logger)

	return &subscriptionStack{
		Providers:       providerSvc,
		Subscriptions:   subscriptionSvc,
		Content:         contentSvc,
		Access:          accessSvc,
		Gateway:         gateway,
		Clock:           clk,
		Consumer:        consumer,
		CleanupProducer: func() { _ = producer.Close() },
	}
}

// publishTestEvent publishes a CloudEvent to Kafka.
func publishTestEvent(t *testing.T, brokers []string, topic, source, eventType string, data interface{}) {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	producer := kafka.NewProducer(brokers, logger)
	defer func() { _ = producer.Close() }()

	ce, err := kafka.NewCloudEvent(source, eventType, data)
	require.NoError(t, err, "failed to create cloud event")

	err = producer.PublishEvent(context.Background(), topic, ce)
	require.NoError(t, err, "failed to publish event")
}

// waitForWindowEnd polls the subscriptions table until end_time passes expected.
func waitForWindowEnd(t *testing.T, db *gorm.DB, providerID, subscriberID uuid.UUID, after time.Time, timeout time.Duration) repository.SubscriptionModel {
	t.Helper()
	var result repository.SubscriptionModel
	require.Eventually(t, func() bool {
		var model repository.SubscriptionModel
		err := db.Where("provider_id = ? AND subscriber_id = ?", providerID, subscriberID).First(&model).Error
		if err != nil {
			return false
		}
		if model.EndTime.After(after) {
			result = model
			return true
		}
		return false
	}, timeout, 200*time.Millisecond, "subscription window did not advance past %s", after)
	return result
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) kafka.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		ce, err := kafka.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
