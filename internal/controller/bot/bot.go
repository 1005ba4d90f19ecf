// Package bot adds commands to the Slack bot to report the state of weather mode.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/clambin/ecobee-controller/internal/controller"
	"github.com/clambin/ecobee-controller/internal/ecobee"
	"github.com/clambin/go-common/slackbot"
	"github.com/slack-go/slack"
)

type Bot struct {
	slack       SlackBot
	publisher   Publisher
	thermostats StatusReader
	logger      *slog.Logger
	lock        sync.RWMutex
	update      controller.Update
	updated     bool
}

// A SlackBot runs the commands it is given when a user sends them.
type SlackBot interface {
	Add(commands slackbot.Commands)
}

// A Publisher sends the controller's updates.
type Publisher interface {
	Subscribe() <-chan controller.Update
	Unsubscribe(<-chan controller.Update)
}

// A StatusReader returns the current status of the thermostats.
type StatusReader interface {
	Status(ctx context.Context) (ecobee.Thermostats, error)
}

func New(slackBot SlackBot, p Publisher, thermostats StatusReader, logger *slog.Logger) *Bot {
	b := Bot{
		slack:       slackBot,
		publisher:   p,
		thermostats: thermostats,
		logger:      logger,
	}
	slackBot.Add(slackbot.Commands{
		"status":      slackbot.HandlerFunc(b.ReportStatus),
		"thermostats": slackbot.HandlerFunc(b.ReportThermostats),
	})
	return &b
}

// Run keeps track of the controller's latest update, until the context is canceled.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Debug("started")
	defer b.logger.Debug("stopped")

	ch := b.publisher.Subscribe()
	defer b.publisher.Unsubscribe(ch)
	for {
		select {
		case <-ctx.Done():
			return nil
		case update := <-ch:
			b.lock.Lock()
			b.update = update
			b.updated = true
			b.lock.Unlock()
		}
	}
}

func (b *Bot) ReportStatus(_ context.Context, _ ...string) []slack.Attachment {
	b.lock.RLock()
	defer b.lock.RUnlock()

	if !b.updated {
		return []slack.Attachment{{
			Color: "bad",
			Text:  "no updates yet. please check back later",
		}}
	}

	if b.update.Err != "" {
		return []slack.Attachment{{
			Color: "bad",
			Title: "hvac mode: " + b.update.Mode.String(),
			Text:  "failed to get temperature at " + b.update.Time.Format(time.RFC1123Z) + ": " + b.update.Err,
		}}
	}
	return []slack.Attachment{{
		Color: "good",
		Title: "hvac mode: " + b.update.Mode.String(),
		Text:  fmt.Sprintf("outdoor temperature: %.1f (%s)", b.update.Temperature, b.update.Time.Format(time.RFC1123Z)),
	}}
}

func (b *Bot) ReportThermostats(ctx context.Context, _ ...string) []slack.Attachment {
	thermostats, err := b.thermostats.Status(ctx)
	if err != nil {
		b.logger.Error("failed to get thermostat status", "err", err)
		return []slack.Attachment{{
			Color: "bad",
			Text:  "failed to get thermostat status: " + err.Error(),
		}}
	}
	if len(thermostats) == 0 {
		return []slack.Attachment{{
			Color: "bad",
			Text:  "no thermostats found",
		}}
	}

	text := make([]string, 0, len(thermostats))
	for _, t := range thermostats {
		text = append(text, fmt.Sprintf("%s: %.1fº, %.0f%% humidity (%s)", t.Name, t.Temperature, t.Humidity, t.Mode))
	}
	slices.Sort(text)

	return []slack.Attachment{{
		Color: "good",
		Title: "thermostats (" + thermostats.Mode().String() + "):",
		Text:  strings.Join(text, "\n"),
	}}
}
