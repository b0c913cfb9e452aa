package proxy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"github.com/j-veylop/claude-usage/internal/logger"
	"github.com/j-veylop/claude-usage/internal/models"
)

// FetchCostReport returns the cost of every day in [startDate, endDate).
// Dates are YYYY-MM-DD.
func (c *Client) FetchCostReport(ctx context.Context, startDate, endDate string) ([]DayCost, error) {
	var report CostReport
	if err := c.doGet(ctx, costReportPath, startDate, endDate, &report); err != nil {
		return nil, err
	}

	days := make([]DayCost, 0, len(report.Data))
	for _, bucket := range report.Data {
		total := decimal.Zero
		for _, r := range bucket.Results {
			total = total.Add(parseAmount(r.Amount))
		}
		days = append(days, DayCost{
			Date: bucketDate(bucket.StartingAt),
			Cost: total.InexactFloat64(),
		})
	}
	return days, nil
}

// FetchUsageReport returns the token usage of every day in [startDate, endDate).
func (c *Client) FetchUsageReport(ctx context.Context, startDate, endDate string) ([]DayTokens, error) {
	var report UsageReport
	if err := c.doGet(ctx, usageReportPath, startDate, endDate, &report); err != nil {
		return nil, err
	}

	days := make([]DayTokens, 0, len(report.Data))
	for _, bucket := range report.Data {
		d := DayTokens{Date: bucketDate(bucket.StartingAt)}
		for _, r := range bucket.Results {
			d.InputTokens += r.InputTokens
			d.OutputTokens += r.OutputTokens
		}
		days = append(days, d)
	}
	return days, nil
}

// FetchSeries fetches both reports concurrently and merges them by date. The
// result has one entry per cost day; days without usage get zero tokens.
func (c *Client) FetchSeries(ctx context.Context, startDate, endDate string) ([]models.DailyCost, error) {
	var (
		costs []DayCost
		usage []DayTokens
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		costs, err = c.FetchCostReport(gctx, startDate, endDate)
		return err
	})
	g.Go(func() error {
		var err error
		usage, err = c.FetchUsageReport(gctx, startDate, endDate)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Merge(costs, usage), nil
}

// Merge joins cost and usage entries on their date.
func Merge(costs []DayCost, usage []DayTokens) []models.DailyCost {
	byDate := make(map[string]DayTokens, len(usage))
	for _, u := range usage {
		byDate[u.Date] = u
	}

	series := make([]models.DailyCost, 0, len(costs))
	for _, c := range costs {
		u := byDate[c.Date]
		series = append(series, models.DailyCost{
			Date:         c.Date,
			Cost:         c.Cost,
			TokensInput:  u.InputTokens,
			TokensOutput: u.OutputTokens,
		})
	}
	return series
}

func (c *Client) doGet(ctx context.Context, path, startDate, endDate string, out any) error {
	if c.token == "" {
		return ErrMissingToken
	}

	params := url.Values{
		"starting_at": {startDate + "T00:00:00Z"},
		"ending_at":   {endDate + "T00:00:00Z"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	logger.Debug("proxy request", "path", path, "start", startDate, "end", endDate)

	resp, err := c.http.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return transportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Warn("proxy returned error status", "path", path, "status", resp.StatusCode)
		return httpError(resp)
	}

	if msg, ok := envelopeMessage(body); ok {
		return envelopeError(msg)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Err: err, Message: "Proxy error: invalid response: " + err.Error()}
	}
	return nil
}

// envelopeMessage detects the proxy's error envelope, which may arrive with a
// 2xx status: {"type":"error",...} or any document carrying statusCode.
func envelopeMessage(body []byte) (string, bool) {
	doc := gjson.ParseBytes(body)
	statusCode := doc.Get("statusCode")
	if doc.Get("type").String() != "error" && statusCode.Int() == 0 {
		return "", false
	}
	for _, path := range []string{"error.message", "message"} {
		if msg := doc.Get(path).String(); msg != "" {
			return msg, true
		}
	}
	return "Unknown proxy error", true
}

// bucketDate extracts the YYYY-MM-DD prefix of an RFC 3339 timestamp.
func bucketDate(startingAt string) string {
	date, _, _ := strings.Cut(startingAt, "T")
	return date
}

func parseAmount(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		logger.Warn("ignoring unparseable cost amount", "amount", s, "error", err)
		return decimal.Zero
	}
	return d
}
