// ABOUTME: Color worker warms the thumbnail color cache in the background
// ABOUTME: Page renders submit cache misses here instead of blocking on downloads

package workers

import (
	"context"
	"sync"
	"time"

	"nepalvoices-web/core/domain"
	"nepalvoices-web/core/interfaces"
)

// ColorExtractor computes and caches thumbnail colors
type ColorExtractor interface {
	ExtractColorBatch(ctx context.Context, imageURLs []string) map[string]*domain.RGBColor
}

// ColorJob is a batch of image URLs whose colors should be cached
type ColorJob struct {
	URLs []string

	// ResultCh receives the extracted colors when non-nil
	ResultCh chan<- map[string]*domain.RGBColor
}

// ColorWorker manages a pool of goroutines extracting thumbnail colors
type ColorWorker struct {
	extractor  ColorExtractor
	logger     interfaces.Logger
	jobQueue   chan *ColorJob
	maxWorkers int
	jobTimeout time.Duration
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	mu         sync.RWMutex
	running    bool
}

// WorkerConfig holds configuration for the color worker
type WorkerConfig struct {
	MaxWorkers int
	QueueSize  int

	// JobTimeout bounds a single batch
	JobTimeout time.Duration
}

// DefaultWorkerConfig returns the default worker configuration
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		MaxWorkers: 4,
		QueueSize:  100,
		JobTimeout: 30 * time.Second,
	}
}

// NewColorWorker creates a new color worker
func NewColorWorker(extractor ColorExtractor, logger interfaces.Logger, config WorkerConfig) *ColorWorker {
	defaults := DefaultWorkerConfig()
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = defaults.MaxWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = defaults.QueueSize
	}
	if config.JobTimeout <= 0 {
		config.JobTimeout = defaults.JobTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &ColorWorker{
		extractor:  extractor,
		logger:     logger,
		jobQueue:   make(chan *ColorJob, config.QueueSize),
		maxWorkers: config.MaxWorkers,
		jobTimeout: config.JobTimeout,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start starts the worker pool
func (cw *ColorWorker) Start() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.running {
		return nil
	}
	if cw.ctx.Err() != nil {
		return ErrWorkerStopped
	}

	for i := 0; i < cw.maxWorkers; i++ {
		cw.wg.Add(1)
		go cw.run(i)
	}

	cw.running = true
	return nil
}

// Stop cancels in-flight batches and waits for the workers to exit. A stopped
// worker cannot be restarted.
func (cw *ColorWorker) Stop() error {
	cw.mu.Lock()
	if !cw.running {
		cw.mu.Unlock()
		return nil
	}
	cw.running = false
	cw.cancel()
	cw.mu.Unlock()

	cw.wg.Wait()
	return nil
}

// Submit queues a job without blocking; a full queue drops the job
func (cw *ColorWorker) Submit(job *ColorJob) error {
	if job == nil || len(job.URLs) == 0 {
		return nil
	}

	cw.mu.RLock()
	defer cw.mu.RUnlock()
	if !cw.running {
		return ErrWorkerNotRunning
	}

	select {
	case cw.jobQueue <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Warm queues color extraction for urls, logging instead of failing
func (cw *ColorWorker) Warm(urls []string) {
	if err := cw.Submit(&ColorJob{URLs: urls}); err != nil && cw.logger != nil {
		cw.logger.Debug("Color warm-up skipped", map[string]interface{}{
			"count": len(urls),
			"error": err.Error(),
		})
	}
}

func (cw *ColorWorker) run(id int) {
	defer cw.wg.Done()

	for {
		select {
		case <-cw.ctx.Done():
			return
		case job := <-cw.jobQueue:
			cw.process(id, job)
		}
	}
}

func (cw *ColorWorker) process(id int, job *ColorJob) {
	ctx, cancel := context.WithTimeout(cw.ctx, cw.jobTimeout)
	defer cancel()

	results := cw.extractor.ExtractColorBatch(ctx, job.URLs)

	if cw.logger != nil {
		cw.logger.Debug("Color batch processed", map[string]interface{}{
			"worker":    id,
			"requested": len(job.URLs),
			"extracted": len(results),
		})
	}

	if job.ResultCh != nil {
		select {
		case job.ResultCh <- results:
		case <-cw.ctx.Done():
		}
	}
}

// Error definitions
var (
	ErrWorkerNotRunning = &WorkerError{Message: "worker pool is not running"}
	ErrWorkerStopped    = &WorkerError{Message: "worker pool has been stopped"}
	ErrQueueFull        = &WorkerError{Message: "job queue is full"}
)

// WorkerError represents a worker-specific error
type WorkerError struct {
	Message string
}

func (e *WorkerError) Error() string {
	return e.Message
}
