package activitymap

import (
	"strings"
	"time"

	auth "github.com/goliatone/go-auth-api"
)

const (
	defaultChannel = "app"
	defaultActorID = "anonymous"
)

// Normalized is a transport-agnostic activity shape for downstream systems.
type Normalized struct {
	ActorID    string         `json:"actor_id"`
	Verb       string         `json:"verb"`
	Channel    string         `json:"channel,omitempty"`
	Message    string         `json:"message"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Option customizes normalization behavior.
type Option func(*normalizeOptions)

type normalizeOptions struct {
	channel       string
	actorFallback string
}

// Normalize converts an auth.ActivityEvent into a generic normalized shape.
// The channel is the event type prefix, "auth.login.success" belongs to
// the "auth" channel.
func Normalize(event auth.ActivityEvent, opts ...Option) Normalized {
	options := defaultNormalizeOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	verb := strings.TrimSpace(string(event.EventType))
	actorID := firstNonEmpty(
		strings.TrimSpace(event.UserID),
		options.actorFallback,
	)

	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	return Normalized{
		ActorID:    actorID,
		Verb:       verb,
		Channel:    firstNonEmpty(channelOf(verb), options.channel),
		Message:    firstNonEmpty(strings.TrimSpace(event.Message), fallbackMessage(verb, actorID)),
		Metadata:   cloneMap(event.Metadata),
		OccurredAt: occurredAt,
	}
}

// WithDefaultChannel sets the channel used when the event type has no prefix.
func WithDefaultChannel(channel string) Option {
	return func(opts *normalizeOptions) {
		if opts == nil {
			return
		}
		opts.channel = strings.TrimSpace(channel)
	}
}

// WithActorFallback sets the actor-id used when the event has no user id.
func WithActorFallback(actorID string) Option {
	return func(opts *normalizeOptions) {
		if opts == nil {
			return
		}
		opts.actorFallback = strings.TrimSpace(actorID)
	}
}

func defaultNormalizeOptions() normalizeOptions {
	return normalizeOptions{
		channel:       defaultChannel,
		actorFallback: defaultActorID,
	}
}

func channelOf(verb string) string {
	if i := strings.Index(verb, "."); i > 0 {
		return verb[:i]
	}
	return ""
}

func fallbackMessage(verb, actorID string) string {
	if verb == "" {
		verb = "activity"
	}
	return verb + " by " + actorID
}

func cloneMap(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
