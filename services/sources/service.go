// Package sources exposes the configured backend list and an operator-facing
// reachability probe. The aggregator itself never retries a search; the probe
// here is the one place a source gets a second chance, so an operator can
// tell a flaky backend from a dead one.
package sources

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/sourcegraph/conc/pool"

	"vodmesh/config"
	"vodmesh/models"
)

const (
	probeTimeout  = 5 * time.Second
	probeAttempts = 2
)

type Service struct {
	cfg   *config.Manager
	httpc *http.Client
}

func NewService(cfg *config.Manager) *Service {
	return &Service{
		cfg:   cfg,
		httpc: &http.Client{Timeout: probeTimeout},
	}
}

// List returns the current ordered source list.
func (s *Service) List() ([]config.SourceConfig, error) {
	if s.cfg == nil {
		return nil, fmt.Errorf("no configuration manager attached")
	}
	return s.cfg.Sources(), nil
}

// Infos returns the client-safe view of the source list (no headers).
func (s *Service) Infos() ([]models.SourceInfo, error) {
	sources, err := s.List()
	if err != nil {
		return nil, err
	}
	infos := make([]models.SourceInfo, 0, len(sources))
	for _, src := range sources {
		infos = append(infos, models.SourceInfo{Key: src.Key, Name: src.Name, API: src.API})
	}
	return infos, nil
}

// Reload re-reads the sources file.
func (s *Service) Reload() error {
	if s.cfg == nil {
		return fmt.Errorf("no configuration manager attached")
	}
	return s.cfg.Reload()
}

// CheckAll probes every configured source concurrently and reports per-source
// reachability and latency. Order matches the configured source order.
func (s *Service) CheckAll(ctx context.Context) ([]models.SourceStatus, error) {
	sources, err := s.List()
	if err != nil {
		return nil, err
	}

	statuses := make([]models.SourceStatus, len(sources))
	p := pool.New().WithMaxGoroutines(len(sources) + 1)
	for i, src := range sources {
		i, src := i, src
		p.Go(func() {
			statuses[i] = s.check(ctx, src)
		})
	}
	p.Wait()
	return statuses, nil
}

func (s *Service) check(ctx context.Context, src config.SourceConfig) models.SourceStatus {
	status := models.SourceStatus{
		SourceInfo: models.SourceInfo{Key: src.Key, Name: src.Name, API: src.API},
	}

	start := time.Now()
	err := retry.Do(
		func() error { return s.probe(ctx, src.API) },
		retry.Attempts(probeAttempts),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	status.LatencyMs = time.Since(start).Milliseconds()

	if err != nil {
		log.Printf("[sources] probe failed for %s: %v", src.Key, err)
		status.Error = err.Error()
		return status
	}
	status.Reachable = true
	return status
}

// probe issues one GET against the source's API root. Any HTTP response below
// 500 counts as alive: CMS backends routinely answer probe requests with 4xx
// while still serving searches.
func (s *Service) probe(ctx context.Context, apiURL string) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := s.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("probe request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))

	if resp.StatusCode >= 500 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return nil
}
