package perf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrCooldown is returned when a capture was requested too soon after the last one
var ErrCooldown = errors.New("capture on cooldown")

// ErrBusy is returned when a capture is already in progress
var ErrBusy = errors.New("already profiling")

// Profiler captures a CPU profile and an execution trace side by side
type Profiler struct {
	mu              sync.Mutex
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	captureDuration time.Duration
	profilesDir     string
	logger          *zap.Logger
	wg              sync.WaitGroup
}

// NewProfiler creates a profiler writing into dir
func NewProfiler(dir string, duration, cooldown time.Duration, logger *zap.Logger) (*Profiler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create profiles dir: %w", err)
	}
	return &Profiler{
		captureCooldown: cooldown,
		captureDuration: duration,
		profilesDir:     dir,
		logger:          logger,
	}, nil
}

// Capture starts a background capture tagged with reason. It returns
// immediately; use Wait to block until it has been written.
func (p *Profiler) Capture(reason string) error {
	baseName, err := p.begin(reason)
	if err != nil {
		return err
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.finish()
		if err := p.capture(baseName, p.captureDuration); err != nil {
			p.logger.Error("profile capture failed", zap.String("name", baseName), zap.Error(err))
		}
	}()
	return nil
}

// captureSync captures for duration and blocks until both files are written
func (p *Profiler) captureSync(reason string, duration time.Duration) error {
	baseName, err := p.begin(reason)
	if err != nil {
		return err
	}
	defer p.finish()
	return p.capture(baseName, duration)
}

// Wait blocks until any background capture has finished
func (p *Profiler) Wait() {
	p.wg.Wait()
}

// IsProfiling returns whether a profile capture is currently in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

func (p *Profiler) begin(reason string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isProfiling {
		return "", ErrBusy
	}
	if !p.lastCaptureTime.IsZero() && time.Since(p.lastCaptureTime) < p.captureCooldown {
		return "", fmt.Errorf("%w (last capture was %v ago)", ErrCooldown, time.Since(p.lastCaptureTime).Round(time.Millisecond))
	}

	p.isProfiling = true
	p.lastCaptureTime = time.Now()
	timestamp := p.lastCaptureTime.Format("20060102-150405")
	return fmt.Sprintf("fps-drop-%s-%s", timestamp, reason), nil
}

func (p *Profiler) finish() {
	p.mu.Lock()
	p.isProfiling = false
	p.mu.Unlock()
}

// capture runs the CPU profile and the trace in parallel
func (p *Profiler) capture(baseName string, duration time.Duration) error {
	var g errgroup.Group
	g.Go(func() error { return p.captureCPUProfile(baseName, duration) })
	g.Go(func() error { return p.captureTrace(baseName, duration) })
	if err := g.Wait(); err != nil {
		return err
	}
	p.summarize(baseName)
	return nil
}

func (p *Profiler) captureCPUProfile(baseName string, duration time.Duration) error {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")

	file, err := os.Create(profilePath)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	time.Sleep(duration)
	pprof.StopCPUProfile()

	p.logger.Info("CPU profile saved", zap.String("path", profilePath))
	return nil
}

func (p *Profiler) captureTrace(baseName string, duration time.Duration) error {
	tracePath := filepath.Join(p.profilesDir, baseName+".trace")

	file, err := os.Create(tracePath)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("failed to start trace: %w", err)
	}
	time.Sleep(duration)
	trace.Stop()

	p.logger.Info("trace saved", zap.String("path", tracePath))
	return nil
}

// summarize logs the profile size and memory stats at capture time
func (p *Profiler) summarize(baseName string) {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")

	info, err := os.Stat(profilePath)
	if err != nil {
		p.logger.Warn("could not analyze profile", zap.Error(err))
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.logger.Info("performance capture complete",
		zap.String("profile", profilePath),
		zap.Float64("profile_kb", float64(info.Size())/1024),
		zap.String("view", "go tool pprof -http=:8080 "+profilePath),
		zap.Uint64("alloc_kb", m.Alloc/1024),
		zap.Uint64("sys_kb", m.Sys/1024),
		zap.Uint32("num_gc", m.NumGC),
		zap.Uint64("heap_objects", m.HeapObjects))
}
