// Package notify pushes the top ticket recommendations to an IFTTT webhook
// so they land on a phone shortly after the pipeline finishes.
package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/models"
)

const (
	defaultBaseURL = "https://maker.ifttt.com"
	maxMessageLen  = 1000
)

// Notifier posts pipeline picks to an IFTTT Webhooks event.
type Notifier struct {
	key     string
	event   string
	baseURL string
	client  *retryablehttp.Client
	logger  *logrus.Logger
}

// NewNotifier creates a notifier for the given webhook key and event name.
func NewNotifier(key, event string, logger *logrus.Logger) *Notifier {
	if logger == nil {
		logger = logrus.New()
	}
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.HTTPClient.Timeout = 10 * time.Second
	client.Logger = nil

	return &Notifier{
		key:     key,
		event:   event,
		baseURL: defaultBaseURL,
		client:  client,
		logger:  logger,
	}
}

// SetBaseURL overrides the webhook host, used by tests.
func (n *Notifier) SetBaseURL(base string) {
	n.baseURL = strings.TrimRight(base, "/")
}

// Send posts value1=title, value2=message to the configured event.
func (n *Notifier) Send(ctx context.Context, title, message string) error {
	endpoint := fmt.Sprintf("%s/trigger/%s/with/key/%s", n.baseURL, n.event, n.key)
	form := url.Values{"value1": {title}, "value2": {message}}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("building ifttt request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting to ifttt: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("ifttt returned HTTP %d", resp.StatusCode)
	}
	n.logger.WithField("event", n.event).Info("Notification delivered")
	return nil
}

// SelectTop returns the topN tickets sorted by edge descending, breaking
// ties by stake descending. The input slice is not modified.
func SelectTop(tickets []models.Ticket, topN int) []models.Ticket {
	sorted := make([]models.Ticket, len(tickets))
	copy(sorted, tickets)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Edge != sorted[j].Edge {
			return sorted[i].Edge > sorted[j].Edge
		}
		return sorted[i].Stake.GreaterThan(sorted[j].Stake)
	})
	if topN < len(sorted) {
		sorted = sorted[:topN]
	}
	return sorted
}

// BuildTitleAndMessage formats a push payload for the given run. The message
// is trimmed to stay under the webhook's practical size limit.
func BuildTitleAndMessage(tickets []models.Ticket, league string, season, week, topN int) (string, string) {
	title := fmt.Sprintf("Gridiron Edge Picks — %s %d W%d", league, season, week)

	top := SelectTop(tickets, topN)
	if len(top) == 0 {
		return title, "No tickets passed filters."
	}

	lines := make([]string, 0, len(top))
	for _, t := range top {
		parts := []string{
			t.GameID,
			fmt.Sprintf("%s %s", t.Market, t.Side),
		}
		if t.Line != nil {
			parts = append(parts, fmt.Sprintf("line %+.1f", *t.Line))
		}
		parts = append(parts,
			fmt.Sprintf("odds %+d (%.4f)", t.AmericanPrice, t.DecimalPrice),
			fmt.Sprintf("fair %.4f", t.FairProb),
			fmt.Sprintf("model %.4f", t.ModelProb),
		)
		if t.ModelProbLo != nil && t.ModelProbHi != nil {
			parts = append(parts, fmt.Sprintf("CI [%.4f..%.4f]", *t.ModelProbLo, *t.ModelProbHi))
		}
		parts = append(parts,
			fmt.Sprintf("edge %+.4f", t.Edge),
			fmt.Sprintf("EV %+.4f", t.EVPerDollar),
			fmt.Sprintf("stake $%s", t.Stake.StringFixed(2)),
		)
		lines = append(lines, strings.Join(parts, " · "))
	}

	msg := strings.Join(lines, "\n")
	if len(msg) > maxMessageLen {
		msg = msg[:maxMessageLen-20] + "\n…(truncated)"
	}
	return title, msg
}
