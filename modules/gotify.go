package modules

import (
	"fmt"

	"github.com/parnurzeal/gorequest"
	"github.com/sirupsen/logrus"

	"github.com/cbpro-tools/coinbase-pro-dca/models"
)

const DEFAULT_GOTIFY_PRIORITY int = 5

// GotifyHook forwards log entries to a Gotify server so scheduled runs can
// report outcomes without anyone watching a terminal. Logrus prints hook
// failures itself; a dead sink never breaks the run.
type GotifyHook struct {
	URL      string
	Token    string
	Priority int
}

type gotifyMessage struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority int    `json:"priority"`
}

func NewGotifyHook(config *models.GotifyConfig) *GotifyHook {
	priority := config.Priority
	if priority == 0 {
		priority = DEFAULT_GOTIFY_PRIORITY
	}

	return &GotifyHook{
		URL:      config.URL,
		Token:    config.Token,
		Priority: priority,
	}
}

func (h *GotifyHook) Levels() []logrus.Level {
	return []logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
		logrus.WarnLevel,
		logrus.InfoLevel,
	}
}

func (h *GotifyHook) Fire(entry *logrus.Entry) error {
	resp, _, errs := gorequest.
		New().
		Post(h.URL+"/message").
		Query("token="+h.Token).
		Send(gotifyMessage{
			Title:    "coinbase-pro-dca",
			Message:  entry.Message,
			Priority: h.Priority,
		}).
		End()

	if len(errs) > 0 {
		return errs[0]
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("gotify returned %s", resp.Status)
	}

	return nil
}
