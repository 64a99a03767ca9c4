package sampler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/smokehouse/pkg/logger"
)

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body any) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// collector gathers scores per combination.
type collector struct {
	mu     sync.Mutex
	scores map[Combo][]float64
	failed map[Combo]int
}

func newCollector() *collector {
	return &collector{scores: make(map[Combo][]float64), failed: make(map[Combo]int)}
}

func (c *collector) add(combo Combo, score float64) {
	c.mu.Lock()
	c.scores[combo] = append(c.scores[combo], score)
	c.mu.Unlock()
}

func (c *collector) fail(combo Combo) {
	c.mu.Lock()
	c.failed[combo]++
	c.mu.Unlock()
}

// submitPredictions posts requests concurrently using a worker pool.
func submitPredictions(ctx context.Context, config *Config, reqs []PredictRequest, stats *Stats) *collector {
	log := logger.Named("sampler")
	log.Info(ctx, "submitting predictions",
		logger.Int("requests", len(reqs)),
		logger.Int("workers", config.Workers))

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/predict"
	results := newCollector()

	var submitted, successful, failed atomic.Int64

	reqChan := make(chan PredictRequest, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for req := range reqChan {
				if ctx.Err() != nil {
					return
				}
				combo := Combo{Weather: req.Weather, SmokerTempF: req.SmokerTempF}
				submitted.Add(1)
				p, err := submitSingle(ctx, client, url, req)
				if err != nil {
					failed.Add(1)
					results.fail(combo)
					if config.Verbose {
						log.Warn(ctx, "prediction failed", logger.Error(err))
					}
					continue
				}
				successful.Add(1)
				results.add(combo, p.PredictedScore)
			}
		}()
	}

	go func() {
		defer close(reqChan)
		for _, req := range reqs {
			select {
			case <-ctx.Done():
				return
			case reqChan <- req:
			}
		}
	}()

	wg.Wait()

	stats.Submitted = int(submitted.Load())
	stats.Successful = int(successful.Load())
	stats.Failed = int(failed.Load())

	log.Info(ctx, "prediction submission completed",
		logger.Int("successful", stats.Successful),
		logger.Int("failed", stats.Failed))
	return results
}

// submitSingle posts one request and decodes the prediction.
func submitSingle(ctx context.Context, client *HTTPClient, url string, req PredictRequest) (Prediction, error) {
	resp, err := client.Post(ctx, url, req)
	if err != nil {
		return Prediction{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Prediction{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Prediction{}, fmt.Errorf("%w: %d: %s", ErrUnexpectedStatus, resp.StatusCode, bytes.TrimSpace(body))
	}

	var p Prediction
	if err := json.Unmarshal(body, &p); err != nil {
		return Prediction{}, fmt.Errorf("decode prediction: %w", err)
	}
	return p, nil
}
