// Package dispatch turns due subscriptions into delivered digest messages.
// Failures are isolated per subscriber: one unreachable chat or dark locality
// never blocks the rest of the batch.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/citydigest/citydigest/internal/aggregator"
	"github.com/citydigest/citydigest/internal/apperrors"
	"github.com/citydigest/citydigest/internal/cities"
	"github.com/citydigest/citydigest/internal/logger"
	"github.com/citydigest/citydigest/internal/metrics"
	"github.com/citydigest/citydigest/internal/models"
	"github.com/citydigest/citydigest/internal/weather"
)

// Transport delivers a rendered message to one chat. Digests go out as text;
// SendImage carries media attachments such as rendered forecast cards.
type Transport interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendImage(ctx context.Context, chatID int64, image []byte, caption string) error
}

// Digester is the slice of the aggregator the dispatcher needs
type Digester interface {
	Digest(ctx context.Context, localityID string, limit int) (*aggregator.Result, error)
}

// Dispatcher composes and sends the daily digests
type Dispatcher struct {
	transport Transport
	digests   Digester
	weather   weather.Provider
	registry  *cities.Registry
	limit     int
}

// New builds a dispatcher. weatherProvider may be nil; digests then go out
// without the conditions block.
func New(transport Transport, digests Digester, weatherProvider weather.Provider, registry *cities.Registry, limit int) *Dispatcher {
	return &Dispatcher{
		transport: transport,
		digests:   digests,
		weather:   weatherProvider,
		registry:  registry,
		limit:     limit,
	}
}

// Dispatch delivers to every subscription in the batch. Each batch gets one
// run id so a whole tick's deliveries can be correlated in the logs.
func (d *Dispatcher) Dispatch(ctx context.Context, subs []models.Subscription) {
	if len(subs) == 0 {
		return
	}

	runID := uuid.NewString()
	logger.Info("dispatch run started", "run_id", runID, "due", len(subs))

	delivered := 0
	seen := make(map[models.DueKey]struct{}, len(subs))
	for _, sub := range subs {
		key := models.DueKey{ChatID: sub.ChatID, LocalityID: sub.LocalityID}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if err := d.deliver(ctx, sub); err != nil {
			metrics.RecordDispatch("error")
			logger.Error("digest delivery failed",
				"run_id", runID, "chat_id", sub.ChatID, "locality", sub.LocalityID, "error", err)
			continue
		}
		metrics.RecordDispatch("delivered")
		delivered++
	}

	logger.Info("dispatch run finished", "run_id", runID, "delivered", delivered, "failed", len(subs)-delivered)
}

func (d *Dispatcher) deliver(ctx context.Context, sub models.Subscription) error {
	loc, ok := d.registry.Get(sub.LocalityID)
	if !ok {
		return apperrors.ErrUnknownLocality
	}

	text := d.compose(ctx, loc)
	return d.transport.SendText(ctx, sub.ChatID, text)
}

// compose renders the full digest message. Content and weather degrade
// independently: a dark news cascade still ships the weather and vice versa.
func (d *Dispatcher) compose(ctx context.Context, loc models.Locality) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Новости: %s\n", loc.Name)

	res, err := d.digests.Digest(ctx, loc.ID, d.limit)
	switch {
	case errors.Is(err, apperrors.ErrContentUnavailable):
		b.WriteString("\nНовости временно недоступны, попробуйте позже.\n")
	case err != nil:
		logger.Error("digest aggregation failed", "locality", loc.ID, "error", err)
		b.WriteString("\nНовости временно недоступны, попробуйте позже.\n")
	default:
		if res.Scope == aggregator.ScopeGeneral {
			fmt.Fprintf(&b, "\nПо запросу «%s» свежих местных новостей нет, вот главное по стране:\n", loc.Name)
		} else {
			b.WriteString("\n")
		}
		for i, item := range res.Items {
			fmt.Fprintf(&b, "%d. %s", i+1, item.Title)
			if item.Link != "" {
				fmt.Fprintf(&b, "\n%s", item.Link)
			}
			b.WriteString("\n")
		}
	}

	if d.weather != nil {
		f, err := d.weather.Forecast(ctx, loc)
		if err != nil {
			logger.Warn("weather block skipped", "locality", loc.ID, "error", err)
			b.WriteString("\nПогода временно недоступна, попробуйте позже.")
		} else {
			b.WriteString("\n" + f.Render())
		}
	}

	return b.String()
}
