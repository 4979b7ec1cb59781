package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ahouse2/LCAS/internal/core/domain"
	"github.com/ahouse2/LCAS/internal/core/ports/driven"
	"github.com/ahouse2/LCAS/internal/core/ports/driving"
	"github.com/ahouse2/LCAS/internal/logger"
)

// Ensure Orchestrator implements the interfaces.
var (
	_ driving.Runner    = (*Orchestrator)(nil)
	_ driving.Validator = (*Orchestrator)(nil)
)

// Orchestrator sequences the plugin lifecycle for one run: resolve the
// enabled set, execute each plugin (initialize, execute under the time
// budget, cleanup) honouring dependency order, isolate failures, and
// assemble the final report.
//
// Plugins whose dependencies have all succeeded run concurrently;
// a plugin is scheduled only once every dependency has reached a
// terminal status, so the ingestion stage always completes before any
// downstream plugin starts.
type Orchestrator struct {
	cfg      *domain.CaseConfig
	registry *PluginRegistry

	mu    sync.RWMutex
	state domain.RunState
}

// NewOrchestrator creates an orchestrator for one case configuration.
func NewOrchestrator(cfg *domain.CaseConfig, registry *PluginRegistry) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		registry: registry,
		state:    domain.RunNotStarted,
	}
}

// State reports the engine's current lifecycle state.
func (o *Orchestrator) State() domain.RunState {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state
}

func (o *Orchestrator) setState(s domain.RunState) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

// Validate performs the static checks without running anything and
// returns the resolved execution order.
func (o *Orchestrator) Validate() ([]string, error) {
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}
	plugins, err := o.registry.Resolve(o.cfg.EnabledPlugins)
	if err != nil {
		return nil, err
	}
	order := make([]string, len(plugins))
	for i, p := range plugins {
		order[i] = p.Descriptor().ID
	}
	return order, nil
}

// Run executes the full pipeline and returns the assembled report.
// Only fatal configuration errors are returned; plugin failures are
// isolated and recorded as outcomes in the report.
func (o *Orchestrator) Run(ctx context.Context) (*domain.RunReport, error) {
	if o.State() != domain.RunNotStarted {
		return nil, domain.ErrRunInProgress
	}
	o.setState(domain.RunInitializing)
	started := time.Now()

	if err := o.cfg.Validate(); err != nil {
		o.setState(domain.RunFailed)
		return nil, err
	}
	plugins, err := o.registry.Resolve(o.cfg.EnabledPlugins)
	if err != nil {
		o.setState(domain.RunFailed)
		return nil, err
	}

	rc := domain.NewRunContext(o.cfg)
	o.setState(domain.RunRunning)
	logger.Section(fmt.Sprintf("Run: %s", o.cfg.CaseName))
	logger.Info("Executing %d plugins", len(plugins))

	outcomes := o.execute(ctx, plugins, rc)

	o.setState(domain.RunFinalizing)
	report := assembleReport(o.cfg, plugins, outcomes, rc, started)
	o.setState(domain.RunCompleted)

	logger.Info("Run complete: %d items, %d for review", len(report.Items), report.ReviewCount())
	return report, nil
}

// execute schedules plugins in dependency waves. Each wave holds every
// not-yet-terminal plugin whose dependencies have all reached a
// terminal status; the wave's members run concurrently.
func (o *Orchestrator) execute(
	ctx context.Context,
	plugins []driven.Plugin,
	rc *domain.RunContext,
) map[string]domain.PluginOutcome {
	var mu sync.Mutex
	outcomes := make(map[string]domain.PluginOutcome, len(plugins))

	terminal := func(id string) (domain.PluginOutcome, bool) {
		mu.Lock()
		defer mu.Unlock()
		out, ok := outcomes[id]
		return out, ok
	}
	record := func(out domain.PluginOutcome) {
		mu.Lock()
		outcomes[out.PluginID] = out
		mu.Unlock()
	}

	for {
		var wave []driven.Plugin
		for _, p := range plugins {
			desc := p.Descriptor()
			if _, done := terminal(desc.ID); done {
				continue
			}
			ready := true
			for _, dep := range desc.Dependencies {
				if _, done := terminal(dep); !done {
					ready = false
					break
				}
			}
			if ready {
				wave = append(wave, p)
			}
		}
		if len(wave) == 0 {
			return outcomes
		}

		g := new(errgroup.Group)
		for _, p := range wave {
			p := p
			g.Go(func() error {
				desc := p.Descriptor()
				if failedDep := o.failedDependency(desc, terminal); failedDep != "" {
					logger.Debug("Skipping %s: dependency %s did not succeed", desc.ID, failedDep)
					record(domain.PluginOutcome{
						PluginID: desc.ID,
						Status:   domain.StatusSkipped,
						Err:      fmt.Sprintf("dependency %s did not succeed", failedDep),
					})
					return nil
				}
				record(o.runOne(ctx, p, rc))
				return nil
			})
		}
		// Goroutines never return errors; the group is a wait barrier.
		_ = g.Wait()
	}
}

// failedDependency returns the first dependency that reached a
// non-succeeded terminal status, or "" when all succeeded.
func (o *Orchestrator) failedDependency(
	desc domain.PluginDescriptor,
	terminal func(string) (domain.PluginOutcome, bool),
) string {
	for _, dep := range desc.Dependencies {
		out, ok := terminal(dep)
		if !ok || out.Status != domain.StatusSucceeded {
			return dep
		}
	}
	return ""
}

type execResult struct {
	payload any
	err     error
}

// runOne drives a single plugin through initialize, execute under the
// configured time budget, and cleanup. Cleanup runs unconditionally.
// A timed-out execute goroutine is abandoned, never joined: the run
// proceeds and the plugin is expected to observe cancellation and
// return on its own.
func (o *Orchestrator) runOne(ctx context.Context, p driven.Plugin, rc *domain.RunContext) domain.PluginOutcome {
	desc := p.Descriptor()
	start := time.Now()
	logger.Debug("Plugin %s: initialize", desc.ID)

	if err := p.Initialize(ctx, rc); err != nil {
		p.Cleanup(rc)
		return domain.PluginOutcome{
			PluginID: desc.ID,
			Status:   domain.StatusFailed,
			Elapsed:  time.Since(start),
			Err:      fmt.Sprintf("initialize: %v", err),
		}
	}
	defer p.Cleanup(rc)

	execCtx, cancel := context.WithTimeout(ctx, o.cfg.PluginTimeout)
	defer cancel()

	resCh := make(chan execResult, 1)
	go func() {
		payload, err := p.Execute(execCtx, rc)
		resCh <- execResult{payload: payload, err: err}
	}()

	var res execResult
	select {
	case res = <-resCh:
	case <-execCtx.Done():
		// Timed out or parent cancelled. The execute goroutine is
		// abandoned; the buffered channel lets it finish without
		// blocking, and its payload is never published.
		elapsed := time.Since(start)
		if ctx.Err() != nil {
			return domain.PluginOutcome{
				PluginID: desc.ID,
				Status:   domain.StatusFailed,
				Elapsed:  elapsed,
				Err:      fmt.Sprintf("execute: %v", ctx.Err()),
			}
		}
		logger.Warn("Plugin %s timed out after %s", desc.ID, o.cfg.PluginTimeout)
		return domain.PluginOutcome{
			PluginID: desc.ID,
			Status:   domain.StatusTimedOut,
			Elapsed:  elapsed,
			Err:      fmt.Sprintf("execute exceeded %s budget", o.cfg.PluginTimeout),
		}
	}

	elapsed := time.Since(start)
	if res.err != nil {
		status := domain.StatusFailed
		if errors.Is(res.err, context.DeadlineExceeded) && execCtx.Err() != nil && ctx.Err() == nil {
			status = domain.StatusTimedOut
		}
		logger.Debug("Plugin %s failed: %v", desc.ID, res.err)
		return domain.PluginOutcome{
			PluginID: desc.ID,
			Status:   status,
			Elapsed:  elapsed,
			Err:      fmt.Sprintf("execute: %v", res.err),
		}
	}

	rc.SetPayload(desc.ID, res.payload)
	logger.Debug("Plugin %s: succeeded in %s", desc.ID, elapsed)
	return domain.PluginOutcome{
		PluginID: desc.ID,
		Status:   domain.StatusSucceeded,
		Elapsed:  elapsed,
		Payload:  res.payload,
	}
}
