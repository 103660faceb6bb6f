package timing

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/dx3rd-api/internal/entities/dx3rd"
	"github.com/KirkDiggler/dx3rd-api/internal/errors"
)

// EventPrefix starts the name of every timing event on the bus
const EventPrefix = "dx3rd.timing."

// Event context keys
const (
	ContextTargetMode = "target_mode"
	ContextActorIDs   = "actor_ids"
	ContextReport     = "sweep_report"
	ContextError      = "sweep_error"
)

// DefaultPriority is the bus priority the sweep handler subscribes with
const DefaultPriority = 100

// EventType returns the bus event name for a timing
func EventType(timing dx3rd.TimingKey) string {
	return EventPrefix + string(timing)
}

// DispatcherConfig holds the dependencies for the dispatcher
type DispatcherConfig struct {
	Bus      events.EventBus
	Sweeper  Service
	Priority int
}

// Validate ensures all required dependencies are provided
func (c *DispatcherConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if c.Bus == nil {
		vb.RequiredField("Bus")
	}
	if c.Sweeper == nil {
		vb.RequiredField("Sweeper")
	}

	return vb.Build()
}

// Dispatcher runs sweeps in response to timing events on an rpg-toolkit bus.
// Other game flows publish EventType(timing) and the matching sweep runs;
// Sweep publishes the event itself so callers see the same path.
type Dispatcher struct {
	bus     events.EventBus
	sweeper Service
	subs    []string
}

// Ensure Dispatcher can stand in for the sweeper
var _ Service = (*Dispatcher)(nil)

// NewDispatcher subscribes the sweeper to every timing event
func NewDispatcher(cfg *DispatcherConfig) (*Dispatcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	priority := cfg.Priority
	if priority == 0 {
		priority = DefaultPriority
	}

	d := &Dispatcher{
		bus:     cfg.Bus,
		sweeper: cfg.Sweeper,
	}

	for _, timing := range dx3rd.TimingKeys {
		id := d.bus.SubscribeFunc(EventType(timing), priority, d.handler(timing))
		d.subs = append(d.subs, id)
	}

	return d, nil
}

// Sweep publishes the timing event and returns the report of the sweep it
// triggered
func (d *Dispatcher) Sweep(ctx context.Context, input *SweepInput) (*SweepOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Timing == "" {
		return d.sweeper.Sweep(ctx, input)
	}

	timing, err := dx3rd.ParseTimingKey(string(input.Timing))
	if err != nil {
		return nil, errors.InvalidArgumentf("unknown timing %q", input.Timing)
	}

	event := events.NewGameEvent(EventType(timing), timingSource(timing), nil)
	event.Context().Set(ContextTargetMode, string(input.Target.Mode))
	event.Context().Set(ContextActorIDs, append([]string(nil), input.Target.ActorIDs...))

	publishErr := d.bus.Publish(ctx, event)

	// report the sweeper's error rather than the bus's wrapping of it
	if value, ok := event.Context().Get(ContextError); ok {
		if sweepErr, ok := value.(error); ok {
			return nil, sweepErr
		}
	}
	if publishErr != nil {
		return nil, errors.Wrapf(publishErr, "failed to publish %s", EventType(timing))
	}

	value, ok := event.Context().Get(ContextReport)
	if !ok {
		return nil, errors.Internal("timing event was not handled")
	}
	report, ok := value.(*SweepOutput)
	if !ok {
		return nil, errors.Internal("timing event carried an unexpected report")
	}

	return report, nil
}

// Close unsubscribes the dispatcher from the bus
func (d *Dispatcher) Close() {
	for _, id := range d.subs {
		if err := d.bus.Unsubscribe(id); err != nil {
			slog.Warn("failed to unsubscribe timing handler",
				"subscription", id,
				"error", err)
		}
	}
	d.subs = nil
}

func (d *Dispatcher) handler(timing dx3rd.TimingKey) events.HandlerFunc {
	return func(ctx context.Context, event events.Event) error {
		input := &SweepInput{Timing: timing}

		if value, ok := event.Context().Get(ContextTargetMode); ok {
			if mode, ok := value.(string); ok {
				input.Target.Mode = TargetMode(mode)
			}
		}
		if value, ok := event.Context().Get(ContextActorIDs); ok {
			if ids, ok := value.([]string); ok {
				input.Target.ActorIDs = ids
			}
		}

		output, err := d.sweeper.Sweep(ctx, input)
		if err != nil {
			slog.ErrorContext(ctx, "timing sweep failed",
				"timing", timing,
				"error", err)
			event.Context().Set(ContextError, err)
			return err
		}

		event.Context().Set(ContextReport, output)
		return nil
	}
}

// timingSource is the entity a timing event originates from
type timingSource dx3rd.TimingKey

var _ core.Entity = timingSource("")

func (t timingSource) GetID() string {
	return string(t)
}

func (t timingSource) GetType() string {
	return "timing"
}
