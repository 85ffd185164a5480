// Package events publishes appointment and payment status changes over NATS.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nats-io/nats.go"

	"github.com/Alijeyrad/hms_backend/pkg/observability"
)

const subjectPrefix = "hms."

type Kind string

const (
	AppointmentApproved  Kind = "appointment.approved"
	AppointmentCancelled Kind = "appointment.cancelled"
	PaymentApproved      Kind = "payment.approved"
	PaymentRejected      Kind = "payment.rejected"
)

// Subject is the NATS subject for one event, e.g. hms.payment.approved.<id>.
func Subject(kind Kind, id string) string {
	return subjectPrefix + string(kind) + "." + id
}

// Wildcard subscribes to every event of kind.
func Wildcard(kind Kind) string {
	return subjectPrefix + string(kind) + ".*"
}

// IDFromSubject returns the trailing id token of an event subject.
func IDFromSubject(subject string) (string, bool) {
	i := strings.LastIndexByte(subject, '.')
	if i < 0 || i == len(subject)-1 {
		return "", false
	}
	return subject[i+1:], true
}

type Publisher interface {
	Publish(ctx context.Context, kind Kind, id string) error
}

// NATSPublisher sends the entity id as the message payload.
type NATSPublisher struct {
	nc      *nats.Conn
	metrics *observability.DomainMetrics
}

func NewNATSPublisher(nc *nats.Conn, metrics *observability.DomainMetrics) *NATSPublisher {
	return &NATSPublisher{nc: nc, metrics: metrics}
}

func (p *NATSPublisher) Publish(ctx context.Context, kind Kind, id string) error {
	err := p.nc.Publish(Subject(kind, id), []byte(id))
	p.metrics.EventPublished(ctx, string(kind), err)
	if err != nil {
		return fmt.Errorf("publish %s: %w", kind, err)
	}
	return nil
}

// Noop is used when NATS is not configured.
type Noop struct{}

func (Noop) Publish(ctx context.Context, kind Kind, id string) error {
	slog.DebugContext(ctx, "event dropped, publishing disabled", "kind", kind, "id", id)
	return nil
}

// Handler processes one event. Errors are logged by the subscriber and the
// event is not redelivered.
type Handler func(ctx context.Context, id string) error

// Subscribe registers h for every event of kind.
func Subscribe(nc *nats.Conn, kind Kind, worker string, h Handler) (*nats.Subscription, error) {
	return nc.Subscribe(Wildcard(kind), func(msg *nats.Msg) {
		id := strings.TrimSpace(string(msg.Data))
		if id == "" {
			var ok bool
			if id, ok = IDFromSubject(msg.Subject); !ok {
				return
			}
		}
		if err := h(context.Background(), id); err != nil {
			slog.Warn(worker+": handler failed", "subject", msg.Subject, "id", id, "err", err)
		}
	})
}
