package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"statline/nba"
	"statline/utils"

	"github.com/sirupsen/logrus"
)

// Fetcher is satisfied by *nba.Client. Fetching through a cached client is
// what warms the cache.
type Fetcher interface {
	Table(ctx context.Context, ep nba.Endpoint, overrides nba.Params, ndx int) (*nba.Table, error)
}

// Job is one request to keep warm.
type Job struct {
	Endpoint nba.Endpoint
	Params   nba.Params
	Index    int
}

func (j Job) String() string {
	return fmt.Sprintf("%s[%d] %s", j.Endpoint.Name(), j.Index, j.Params.Encode())
}

// DefaultJobs are the requests the service answers most often for a season.
func DefaultJobs(season string) []Job {
	return []Job{
		{Endpoint: nba.CommonAllPlayers, Params: nba.Params{"Season": season, "IsOnlyCurrentSeason": "1"}},
		{Endpoint: nba.CommonAllPlayers, Params: nba.Params{"Season": season, "IsOnlyCurrentSeason": "0"}},
		{Endpoint: nba.LeagueDashPlayerStats, Params: nba.Params{"Season": season}},
		{Endpoint: nba.LeagueDashPlayerStats, Params: nba.Params{"Season": season, "PerMode": string(nba.PerModes.Totals)}},
		{Endpoint: nba.LeagueLeaders, Params: nba.Params{"Season": season}},
	}
}

type Worker struct {
	Id int
}

func NewWorker(id int) *Worker {
	return &Worker{Id: id}
}

func (w *Worker) DoYourJob(ctx context.Context, f Fetcher, job Job) error {
	if _, err := f.Table(ctx, job.Endpoint, job.Params, job.Index); err != nil {
		return fmt.Errorf("WorkerID: %d\n\tJob: %s\n\tError: %w", w.Id, job, err)
	}
	return nil
}

type Scheduler struct {
	MaxWorkers int
	Interval   time.Duration
	Workers    []*Worker

	fetcher Fetcher
	logger  *logrus.Logger
}

func NewScheduler(fetcher Fetcher, maxWorkers int, interval time.Duration, logger *logrus.Logger) *Scheduler {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	s := Scheduler{
		MaxWorkers: maxWorkers,
		Interval:   interval,
		Workers:    make([]*Worker, 0, maxWorkers),
		fetcher:    fetcher,
		logger:     logger,
	}
	for i := range maxWorkers {
		s.Workers = append(s.Workers, NewWorker(i))
	}
	return &s
}

// RunOnce hands every job to the worker pool and waits for all of them.
// Failed jobs do not stop the others; their errors are joined.
func (s *Scheduler) RunOnce(ctx context.Context, jobs []Job) error {
	queue := make(chan Job)
	errChan := make(chan error, len(jobs))
	wg := sync.WaitGroup{}

	for _, w := range s.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				if err := w.DoYourJob(ctx, s.fetcher, job); err != nil {
					errChan <- err
					continue
				}
				s.logger.WithFields(logrus.Fields{"worker": w.Id, "job": job.String()}).Debug("warmed")
			}
		}()
	}

outer:
	for _, job := range jobs {
		select {
		case queue <- job:
		case <-ctx.Done():
			break outer
		}
	}
	close(queue)
	wg.Wait()
	close(errChan)

	if len(errChan) > 0 {
		errs := make([]error, 0, len(errChan))
		for err := range errChan {
			errs = append(errs, err)
		}
		return utils.ErrorWithTrace(errors.Join(errs...))
	}
	return ctx.Err()
}

// Start runs the jobs right away and then every Interval until ctx is done.
// A non-positive Interval runs them once.
func (s *Scheduler) Start(ctx context.Context, jobs []Job) {
	s.run(ctx, jobs)
	if s.Interval <= 0 {
		return
	}
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.run(ctx, jobs)
		}
	}
}

func (s *Scheduler) run(ctx context.Context, jobs []Job) {
	start := time.Now()
	if err := s.RunOnce(ctx, jobs); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.WithError(err).Warn("cache warm-up failed")
		return
	}
	s.logger.WithFields(logrus.Fields{"jobs": len(jobs), "took": time.Since(start)}).Info("cache warmed")
}
