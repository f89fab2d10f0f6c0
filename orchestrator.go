// orchestrator.go
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"probinary_go/config"
	"probinary_go/logs"
	"probinary_go/metrics"
	"probinary_go/profit"
	"probinary_go/report"
	"probinary_go/risk"
	"probinary_go/session"
	"probinary_go/state"
)

// Orchestrator plays the role of the order layer: it feeds scenario events into the
// session and routes the results to the ledger, exit watcher, metrics and state file.
type Orchestrator struct {
	session      *session.Session
	params       *session.Parameters
	messages     session.Messages
	ledger       *profit.Ledger
	watcher      *profit.ExitWatcher
	stateManager state.StateManagerInterface
	metrics      *metrics.Recorder
	scenario     *config.Scenario
	cfg          *config.Config
	decisions    map[string]int
	out          io.Writer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	done   chan struct{}
	err    error
}

func NewOrchestrator(cfg *config.Config, scenario *config.Scenario, stateFilePath string) (*Orchestrator, error) {
	messages, err := session.MessagesFor(cfg.Session.Locale)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve stop messages: %w", err)
	}

	for i, ev := range scenario.Events {
		if ev.Type != config.EventStop {
			continue
		}
		if _, err := session.ParseStopReason(ev.Reason); err != nil {
			return nil, fmt.Errorf("scenario event %d: %w", i+1, err)
		}
	}

	stateManager, err := state.NewStateManager(stateFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize state manager: %w", err)
	}
	if prev := stateManager.GetFullState(); prev.Session != nil {
		logs.Warnf("[Orchestrator] Previous run %s ended %s with balance %.2f. Sessions do not carry over, starting fresh.",
			prev.Session.ID, prev.Session.State, prev.Session.Balance)
		if err := stateManager.Reset(); err != nil {
			return nil, fmt.Errorf("failed to reset state file: %w", err)
		}
	}
	logs.Infof("State manager initialized, snapshots will be persisted to: %s", stateFilePath)

	params := &session.Parameters{
		RiskPercent:     cfg.Parameters.RiskPercent,
		TrailingPercent: cfg.Parameters.TrailingPercent,
		TargetPercent:   cfg.Parameters.TargetPercent,
		MaxTrades:       cfg.Parameters.MaxTrades,
	}
	sess, err := session.NewSession(cfg.Session.InitialBalance, cfg.Session.DynamicStopFloor, params,
		session.WithConsecutiveLossLimit(cfg.Session.ConsecutiveLossLimit),
		session.WithMessages(messages),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	o := &Orchestrator{
		session:      sess,
		params:       params,
		messages:     messages,
		ledger:       profit.NewLedger(cfg.Session.InitialBalance),
		watcher:      profit.NewExitWatcher(cfg.Session.InitialBalance, cfg.Exits.EnableTargetStop, cfg.Exits.EnableTrailingStop),
		stateManager: stateManager,
		metrics:      metrics.NewRecorder(cfg.Name),
		scenario:     scenario,
		cfg:          cfg,
		decisions:    map[string]int{},
		out:          os.Stdout,
		ctx:          ctx,
		cancel:       cancel,
		done:         make(chan struct{}),
	}
	o.metrics.Observe(sess.Snapshot())
	return o, nil
}

// Start replays the scenario in the background.
func (o *Orchestrator) Start() {
	logs.Infof("[Orchestrator] Starting session %s with %d scenario events", o.session.ID(), len(o.scenario.Events))
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		defer close(o.done)
		o.err = o.Run(o.ctx)
	}()
}

// Done is closed once the replay has finished or was cancelled.
func (o *Orchestrator) Done() <-chan struct{} { return o.done }

// Stop cancels the replay and waits for it to wind down.
func (o *Orchestrator) Stop() error {
	logs.Info("[Orchestrator] Stopping...")
	o.cancel()
	o.wg.Wait()
	logs.Info("[Orchestrator] Stopped.")
	return o.err
}

// Run processes every event in order, checking for cancellation between events,
// then writes metrics and the summary table.
func (o *Orchestrator) Run(ctx context.Context) error {
	for i, ev := range o.scenario.Events {
		select {
		case <-ctx.Done():
			logs.Warnf("[Orchestrator] Replay cancelled before event %d", i+1)
			return o.finish()
		default:
		}

		before := o.session.Snapshot()
		o.apply(i+1, ev)
		after := o.session.Snapshot()

		if after.State == session.Stopped.String() &&
			(before.State != session.Stopped.String() || before.StopReason != after.StopReason) {
			o.metrics.RecordStop(after.StopReason)
		}
		o.metrics.Observe(after)
		if err := o.stateManager.SaveSession(after, o.ledger.Outcomes(o.cfg.Normal.LedgerHistory)); err != nil {
			return fmt.Errorf("failed to persist session after event %d: %w", i+1, err)
		}
	}
	return o.finish()
}

func (o *Orchestrator) apply(n int, ev config.Event) {
	switch ev.Type {
	case config.EventTrade:
		o.placeTrade(n, ev.Amount)

	case config.EventProfit:
		o.session.RecordProfit(ev.Amount)
		outcome := o.ledger.RecordWin(ev.Amount, o.session.Balance())
		o.metrics.RecordOutcome(string(outcome.Kind))
		logs.Infof("[Orchestrator] #%d profit %.2f, balance %.2f", n, ev.Amount, outcome.BalanceAfter)
		o.checkExits()

	case config.EventLoss:
		o.session.RecordLoss(ev.Amount)
		outcome := o.ledger.RecordLoss(ev.Amount, o.session.Balance())
		o.metrics.RecordOutcome(string(outcome.Kind))
		logs.Infof("[Orchestrator] #%d loss %.2f, balance %.2f", n, ev.Amount, outcome.BalanceAfter)
		o.checkExits()

	case config.EventStop:
		reason, _ := session.ParseStopReason(ev.Reason) // checked in NewOrchestrator
		logs.Infof("[Orchestrator] #%d manual stop: %s", n, o.messages.Reason(reason))
		o.session.Stop(reason)

	case config.EventResume:
		logs.Infof("[Orchestrator] #%d resume requested", n)
		o.session.Resume()
		o.watcher.Reset(o.session.Balance())

	default:
		logs.Warnf("[Orchestrator] #%d unknown event type %q, skipped", n, ev.Type)
	}
}

func (o *Orchestrator) placeTrade(n int, amount float64) {
	action, err := risk.EvaluateTrade(o.session, amount)
	if err != nil {
		logs.Errorf("[Orchestrator] #%d trade %.2f failed: %v", n, amount, err)
		return
	}

	switch act := action.(type) {
	case *risk.AcceptTradeAction:
		o.decisions["accepted"]++
		o.metrics.RecordDecision("accepted")
		logs.Infof("[Orchestrator] #%d %s", n, act.Description())
	case *risk.RejectTradeAction:
		o.decisions["rejected"]++
		o.metrics.RecordDecision("rejected")
		logs.Warnf("[Orchestrator] #%d %s", n, act.Description())
	case *risk.HaltAction:
		o.decisions["halted"]++
		o.metrics.RecordDecision("halted")
		logs.Warnf("[Orchestrator] #%d %s", n, act.Description())
	default:
		logs.Warnf("[Orchestrator] #%d received unknown action type: %T", n, act)
	}
}

// checkExits stops a running session when the target or trailing stop is hit.
func (o *Orchestrator) checkExits() {
	reason, hit := o.watcher.Check(o.session.Balance(), *o.params)
	if !hit {
		return
	}
	if o.session.State() == session.Stopped {
		return
	}
	o.session.Stop(reason)
}

func (o *Orchestrator) finish() error {
	if path := o.cfg.Normal.MetricsFile; path != "" {
		if err := o.metrics.WriteTextfile(path); err != nil {
			logs.Errorf("[Orchestrator] %v", err)
		} else {
			logs.Infof("[Orchestrator] Metrics written to %s", path)
		}
	}

	report.Render(o.out, report.Summary{
		Name:       o.cfg.Name,
		Snapshot:   o.session.Snapshot(),
		Stats:      o.ledger.GetStats(),
		Messages:   o.messages,
		StartValue: o.cfg.Session.InitialBalance,
		Decisions:  o.decisions,
	})
	return nil
}
