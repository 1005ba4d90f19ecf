package notifier

import (
	"log/slog"

	"github.com/slack-go/slack"
)

// SlackNotifier posts events to a Slack channel. If Channel is blank, the bot posts to all channels it's a member of.
type SlackNotifier struct {
	Slack   SlackSender
	Channel string
	Logger  *slog.Logger
}

type SlackSender interface {
	Send(channel string, attachments []slack.Attachment) error
}

var _ Notifier = &SlackNotifier{}

func (s *SlackNotifier) Notify(e Event) {
	err := s.Slack.Send(s.Channel, []slack.Attachment{{
		Color: color(e),
		Title: e.Title(),
		Text:  e.Reason,
	}})
	if err != nil && s.Logger != nil {
		s.Logger.Error("notifier failed to post message", "err", err)
	}
}

func color(e Event) string {
	if e.Kind == Changed {
		return "warning"
	}
	return "good"
}
