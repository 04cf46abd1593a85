package handler

import (
	"context"
	"time"

	"comanda-pos/internal/queue"
	queue_publisher "comanda-pos/internal/service"
)

// emitTicketEvent fans a ticket event out to the in-process hub (SSE
// streams of this instance) and to RabbitMQ (other instances and the audit
// consumer). Publishing runs best effort; a failed fan-out never fails the
// request that caused it.
func emitTicketEvent(hub *queue.Hub, ev queue.TicketEvent) {
	if ev.OccurredAt == "" {
		ev.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	}
	if hub != nil {
		hub.Publish(ev)
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishTicketEvent(ctx, ev)
	}()
}
