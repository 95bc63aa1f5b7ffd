package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/models"
)

const defaultOddsAPIBaseURL = "https://api.the-odds-api.com"

// Sport slugs recognized by The Odds API.
const (
	SportNFL = "americanfootball_nfl"
	SportCFB = "americanfootball_ncaaf"
)

// SportSlug maps a league name to its Odds API slug.
func SportSlug(league string) (string, error) {
	switch strings.ToUpper(league) {
	case "NFL":
		return SportNFL, nil
	case "CFB":
		return SportCFB, nil
	}
	return "", fmt.Errorf("unknown league %q", league)
}

// Client fetches upcoming odds and recent scores from The Odds API.
// Responses are cached per sport+region so a scheduled pipeline does not
// burn API quota refetching inside the TTL window.
type Client struct {
	apiKey  string
	region  string
	baseURL string
	http    *RateLimitedHTTPClient
	cache   *cache.Cache
	logger  *logrus.Logger
}

// NewClient creates an Odds API client with the given response cache TTL.
func NewClient(apiKey, region string, cacheTTL time.Duration, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.New()
	}
	return &Client{
		apiKey:  apiKey,
		region:  region,
		baseURL: defaultOddsAPIBaseURL,
		http:    NewRateLimitedHTTPClient(DefaultHTTPClientConfig(), logger),
		cache:   cache.New(cacheTTL, 2*cacheTTL),
		logger:  logger,
	}
}

// SetBaseURL overrides the API host, used by tests.
func (c *Client) SetBaseURL(base string) {
	c.baseURL = strings.TrimRight(base, "/")
}

// Close releases the underlying HTTP client.
func (c *Client) Close() error {
	return c.http.Close()
}

type oddsOutcome struct {
	Name  string   `json:"name"`
	Price *float64 `json:"price"`
	Point *float64 `json:"point"`
}

type oddsMarket struct {
	Key      string        `json:"key"`
	Outcomes []oddsOutcome `json:"outcomes"`
}

type oddsBookmaker struct {
	Key     string       `json:"key"`
	Markets []oddsMarket `json:"markets"`
}

type oddsEvent struct {
	ID         string          `json:"id"`
	HomeTeam   string          `json:"home_team"`
	AwayTeam   string          `json:"away_team"`
	Bookmakers []oddsBookmaker `json:"bookmakers"`
}

type scoreEntry struct {
	Name  string `json:"name"`
	Score string `json:"score"`
}

type scoreEvent struct {
	Completed    bool         `json:"completed"`
	CommenceTime string       `json:"commence_time"`
	HomeTeam     string       `json:"home_team"`
	AwayTeam     string       `json:"away_team"`
	Scores       []scoreEntry `json:"scores"`
}

// FetchOddsBoards fetches moneyline, spread, and totals quotes for upcoming
// events and reduces each event's books to one consensus board: best ML
// price per side, most common spread/total line with prices averaged at
// that line.
func (c *Client) FetchOddsBoards(ctx context.Context, sport string) ([]models.OddsBoard, error) {
	cacheKey := fmt.Sprintf("odds:%s:%s", sport, c.region)
	if cached, ok := c.cache.Get(cacheKey); ok {
		c.logger.WithField("sport", sport).Debug("Serving odds boards from cache")
		return cached.([]models.OddsBoard), nil
	}

	endpoint := fmt.Sprintf("%s/v4/sports/%s/odds?%s", c.baseURL, sport, url.Values{
		"apiKey":     {c.apiKey},
		"regions":    {c.region},
		"markets":    {"h2h,spreads,totals"},
		"oddsFormat": {"american"},
	}.Encode())

	body, err := c.http.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetching odds for %s: %w", sport, err)
	}

	var events []oddsEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("decoding odds response: %w", err)
	}

	boards := make([]models.OddsBoard, 0, len(events))
	for _, ev := range events {
		boards = append(boards, consensusBoard(ev))
	}

	c.cache.Set(cacheKey, boards, cache.DefaultExpiration)
	c.logger.WithFields(logrus.Fields{"sport": sport, "events": len(boards)}).Info("Fetched odds boards")
	return boards, nil
}

// FetchRecentResults fetches completed games from the last daysFrom days.
func (c *Client) FetchRecentResults(ctx context.Context, sport string, daysFrom int) ([]models.GameResult, error) {
	cacheKey := fmt.Sprintf("scores:%s:%d", sport, daysFrom)
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.([]models.GameResult), nil
	}

	endpoint := fmt.Sprintf("%s/v4/sports/%s/scores?%s", c.baseURL, sport, url.Values{
		"apiKey":     {c.apiKey},
		"daysFrom":   {strconv.Itoa(daysFrom)},
		"dateFormat": {"iso"},
	}.Encode())

	body, err := c.http.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetching scores for %s: %w", sport, err)
	}

	var events []scoreEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("decoding scores response: %w", err)
	}

	var results []models.GameResult
	for _, ev := range events {
		if !ev.Completed {
			continue
		}
		homePts, okH := scoreFor(ev.Scores, ev.HomeTeam)
		awayPts, okA := scoreFor(ev.Scores, ev.AwayTeam)
		if !okH || !okA || ev.HomeTeam == "" || ev.AwayTeam == "" {
			continue
		}

		result := models.GameResult{
			HomeTeam:   ev.HomeTeam,
			AwayTeam:   ev.AwayTeam,
			HomePoints: homePts,
			AwayPoints: awayPts,
		}
		if day, _, found := strings.Cut(ev.CommenceTime, "T"); found {
			if parsed, err := time.Parse("2006-01-02", day); err == nil {
				result.Date = parsed
			}
		}
		results = append(results, result)
	}

	c.cache.Set(cacheKey, results, cache.DefaultExpiration)
	return results, nil
}

func scoreFor(scores []scoreEntry, team string) (int, bool) {
	for _, s := range scores {
		if s.Name == team {
			pts, err := strconv.Atoi(s.Score)
			if err != nil {
				return 0, false
			}
			return pts, true
		}
	}
	return 0, false
}

// consensusBoard folds every book's quotes for one event into a single
// bettor-friendly board.
func consensusBoard(ev oddsEvent) models.OddsBoard {
	board := models.OddsBoard{
		GameID:   ev.ID,
		HomeTeam: ev.HomeTeam,
		AwayTeam: ev.AwayTeam,
	}

	spreadLines := newLineTally()
	totalLines := newLineTally()
	spreadHomePrices := map[float64][]int{}
	spreadAwayPrices := map[float64][]int{}
	overPrices := map[float64][]int{}
	underPrices := map[float64][]int{}

	for _, book := range ev.Bookmakers {
		for _, market := range book.Markets {
			switch market.Key {
			case "h2h":
				for _, o := range market.Outcomes {
					if o.Price == nil {
						continue
					}
					price := int(math.Round(*o.Price))
					switch o.Name {
					case ev.HomeTeam:
						board.HomeML = betterAmerican(board.HomeML, price)
					case ev.AwayTeam:
						board.AwayML = betterAmerican(board.AwayML, price)
					}
				}
			case "spreads":
				for _, o := range market.Outcomes {
					if o.Point == nil || o.Price == nil {
						continue
					}
					price := int(math.Round(*o.Price))
					switch o.Name {
					case ev.HomeTeam:
						// Track line consensus on the home side only so the
						// tally is not double-counted per book.
						spreadLines.add(*o.Point)
						spreadHomePrices[*o.Point] = append(spreadHomePrices[*o.Point], price)
					case ev.AwayTeam:
						// Away points mirror the home line.
						spreadAwayPrices[-*o.Point] = append(spreadAwayPrices[-*o.Point], price)
					}
				}
			case "totals":
				for _, o := range market.Outcomes {
					if o.Point == nil || o.Price == nil {
						continue
					}
					price := int(math.Round(*o.Price))
					name := strings.ToLower(o.Name)
					switch {
					case strings.HasPrefix(name, "over"):
						totalLines.add(*o.Point)
						overPrices[*o.Point] = append(overPrices[*o.Point], price)
					case strings.HasPrefix(name, "under"):
						underPrices[*o.Point] = append(underPrices[*o.Point], price)
					}
				}
			}
		}
	}

	if line, ok := spreadLines.mostCommon(); ok {
		board.HomeSpread = &line
		board.HomeSpreadPrice = averagePrice(spreadHomePrices[line])
		board.AwaySpreadPrice = averagePrice(spreadAwayPrices[line])
	}
	if line, ok := totalLines.mostCommon(); ok {
		board.TotalLine = &line
		board.OverPrice = averagePrice(overPrices[line])
		board.UnderPrice = averagePrice(underPrices[line])
	}
	return board
}

// betterAmerican keeps the bettor-friendly price: the larger payout, which
// is the higher number for positive odds and the one closer to zero for
// negative odds, with any positive price beating any negative one.
func betterAmerican(best *int, price int) *int {
	if best == nil {
		return &price
	}
	if (price >= 0 && (*best < 0 || price > *best)) ||
		(price < 0 && *best < 0 && price > *best) {
		return &price
	}
	return best
}

func averagePrice(prices []int) *int {
	if len(prices) == 0 {
		return nil
	}
	sum := 0
	for _, p := range prices {
		sum += p
	}
	avg := int(math.Round(float64(sum) / float64(len(prices))))
	return &avg
}

// lineTally counts line occurrences and remembers first-seen order so ties
// resolve deterministically.
type lineTally struct {
	counts map[float64]int
	order  []float64
}

func newLineTally() *lineTally {
	return &lineTally{counts: map[float64]int{}}
}

func (t *lineTally) add(line float64) {
	if _, seen := t.counts[line]; !seen {
		t.order = append(t.order, line)
	}
	t.counts[line]++
}

func (t *lineTally) mostCommon() (float64, bool) {
	if len(t.order) == 0 {
		return 0, false
	}
	best := t.order[0]
	for _, line := range t.order[1:] {
		if t.counts[line] > t.counts[best] {
			best = line
		}
	}
	return best, true
}
