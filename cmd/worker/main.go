package main

import (
	"context"
	"os/signal"
	"syscall"

	"roost/config"
	"roost/infras/kafka"
	"roost/internal/domains/booking/model/dto"
	"roost/shared/logger"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Consumes booking created events and records them. Runs alongside the API
// server; the consumer group lets more instances share the partitions.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := kafka.New(cfg)

	log.Info().Str("topic", cfg.Kafka.Topics.BookingCreated).Msg("Booking worker started.")

	client.Consume(ctx, cfg.Kafka.ConsumerGroup, cfg.Kafka.Topics.BookingCreated, handleBookingCreated)
}

func handleBookingCreated(msg kafkaGo.Message) {
	decoded, err := kafka.DecodeKafkaMessage[dto.BookingCreatedEvent](msg)
	if err != nil {
		log.Error().Err(err).Str("key", string(msg.Key)).Msg("Failed to decode booking created event.")

		return
	}

	event, ok := decoded.Value.(dto.BookingCreatedEvent)
	if !ok {
		log.Error().Str("key", decoded.Key).Msg("Unexpected booking created payload.")

		return
	}

	log.Info().
		Str("bookingID", event.BookingID).
		Str("kind", event.Kind).
		Str("resourceID", event.ResourceID).
		Str("userID", event.UserID).
		Int("guests", event.Guests).
		Str("occurredAt", event.OccurredAt).
		Msg("Booking created.")
}
