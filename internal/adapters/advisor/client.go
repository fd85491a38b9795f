package advisor

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"room_balancer/internal/adapters/observability"
	"room_balancer/internal/domain"
)

// MaxGuests bounds the snapshot sent to the remote recommender.
const MaxGuests = 20

const apiVersion = "2023-06-01"

var (
	ErrUnauthorized = errors.New("advisor: unauthorized")
	ErrForbidden    = errors.New("advisor: forbidden")
	ErrMalformed    = errors.New("advisor: malformed response")
)

// Client asks a hosted language model for upgrade recommendations.
type Client struct {
	base  string
	hc    *http.Client
	key   string
	model string
	rl    *rate.Limiter
}

func New(base, key, model string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if rps <= 0 {
		rps = 2
	}
	return &Client{
		base:  strings.TrimRight(base, "/"),
		hc:    &http.Client{Timeout: 30 * time.Second},
		key:   key,
		model: model,
		rl:    rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (c *Client) Recommend(ctx context.Context, req domain.AdvisoryRequest) ([]domain.Recommendation, error) {
	prompt, err := buildPrompt(req)
	if err != nil {
		return nil, err
	}
	body := messagesRequest{
		Model:     c.model,
		MaxTokens: 2000,
		Messages:  []message{{Role: "user", Content: prompt}},
	}
	var out messagesResponse
	if err := c.post(ctx, c.base+"/messages", body, &out); err != nil {
		return nil, err
	}
	if len(out.Content) == 0 {
		return nil, ErrMalformed
	}
	recs, err := parseRecommendations(out.Content[0].Text)
	if err != nil {
		return nil, err
	}
	for i := range recs {
		recs[i].Source = "remote"
	}
	return recs, nil
}

type guestLine struct {
	Name     string `json:"name"`
	Honors   string `json:"honors"`
	RoomType string `json:"room_type"`
	LOS      int    `json:"los"`
	Rate     string `json:"rate"`
	Requests string `json:"requests"`
}

type overbookingLine struct {
	Type   string `json:"type"`
	Overby int    `json:"overby"`
}

func buildPrompt(req domain.AdvisoryRequest) (string, error) {
	guests := req.Guests
	if len(guests) > MaxGuests {
		guests = guests[:MaxGuests]
	}
	gl := make([]guestLine, 0, len(guests))
	for _, g := range guests {
		reqs := g.SpecialRequests
		if reqs == "" {
			reqs = "None"
		}
		gl = append(gl, guestLine{g.GuestName, g.LoyaltyTier, g.RoomType, g.Nights(), g.RateType, reqs})
	}
	ol := make([]overbookingLine, 0, len(req.Overbookings))
	for _, o := range req.Overbookings {
		ol = append(ol, overbookingLine{o.RoomType, o.Overby})
	}
	gj, err := json.MarshalIndent(gl, "", "  ")
	if err != nil {
		return "", err
	}
	oj, err := json.MarshalIndent(ol, "", "  ")
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("You are analyzing guests for an overbooked hotel to recommend intelligent upgrades.\n\n")
	fmt.Fprintf(&b, "OVERBOOKED ROOM TYPES:\n%s\n\n", oj)
	fmt.Fprintf(&b, "GUEST ARRIVALS (first %d):\n%s\n\n", MaxGuests, gj)
	b.WriteString(`For guests needing upgrades, consider:
1. Honors Status (Diamond/Gold = high priority)
2. Length of Stay (longer = more important)
3. Rate Type (Direct = high value, Third-Party = low)
4. Special Requests (anniversaries, birthdays, etc.)

Return JSON array of top 5-7 upgrade recommendations with this structure:
[{
  "guest_name": "name",
  "priority": "high|medium|low",
  "from_room": "KNGN",
  "to_room": "NKSP",
  "reasoning": "Brief explanation of why this guest should be upgraded"
}]

Focus on guests who would most appreciate the upgrade and have highest loyalty value.`)
	return b.String(), nil
}

var jsonArray = regexp.MustCompile(`(?s)\[.*\]`)

// parseRecommendations pulls the first JSON array out of free text.
func parseRecommendations(text string) ([]domain.Recommendation, error) {
	m := jsonArray.FindString(text)
	if m == "" {
		return nil, ErrMalformed
	}
	var recs []domain.Recommendation
	if err := json.Unmarshal([]byte(m), &recs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return recs, nil
}

// post sends a JSON body with client-side rate limiting and retries on 429,
// 529 and transient 5xx, honoring Retry-After when provided.
func (c *Client) post(ctx context.Context, url string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	start := time.Now()
	status := 0
	defer func() { observability.ObserveExternal("advisor", "messages", status, time.Since(start)) }()

	var lastErr error
	for i := 0; i < 3; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-api-key", c.key)
		req.Header.Set("anthropic-version", apiVersion)
		req.Header.Set("User-Agent", "room-balancer/1.0")

		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 2 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		status = resp.StatusCode

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			if err != nil {
				return fmt.Errorf("%w: %v", ErrMalformed, err)
			}
			return nil

		case http.StatusUnauthorized:
			resp.Body.Close()
			return ErrUnauthorized

		case http.StatusForbidden:
			resp.Body.Close()
			return ErrForbidden

		case http.StatusTooManyRequests, 529, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 2 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}
	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 250ms with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 250 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
