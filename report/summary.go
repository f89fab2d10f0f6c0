// Package report renders an end-of-session summary table.
package report

import (
	"fmt"
	"io"

	"probinary_go/profit"
	"probinary_go/session"
	"probinary_go/utils"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Summary gathers what the table shows.
type Summary struct {
	Name       string
	Snapshot   session.Snapshot
	Stats      profit.Stats
	Messages   session.Messages
	StartValue float64
	Decisions  map[string]int // accepted / rejected / halted counts
}

// Render writes the summary as a rounded table.
func Render(w io.Writer, s Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("SESSION SUMMARY: %s", s.Name)
	t.SetStyle(table.StyleRounded)

	status := s.Snapshot.State
	if s.Snapshot.StopReason != "" {
		status = fmt.Sprintf("%s (%s)", status, s.Messages.Reason(s.Snapshot.StopReason))
	}

	t.AppendRows([]table.Row{
		{"Session ID", s.Snapshot.ID},
		{"Status", status},
		{"Start balance", fmt.Sprintf("%.2f", s.StartValue)},
		{"Balance", fmt.Sprintf("%.2f", s.Snapshot.Balance)},
		{"Dynamic stop floor", fmt.Sprintf("%.2f", s.Snapshot.DynamicStopFloor)},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Trades placed", fmt.Sprintf("%d / %d", s.Snapshot.TradesPlaced, s.Snapshot.Parameters.MaxTrades)},
		{"Accepted / rejected / halted", fmt.Sprintf("%d / %d / %d",
			s.Decisions["accepted"], s.Decisions["rejected"], s.Decisions["halted"])},
		{"Consecutive losses", fmt.Sprintf("%d / %d", s.Snapshot.ConsecutiveLosses, s.Snapshot.ConsecutiveLossLimit)},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Wins / losses", fmt.Sprintf("%d / %d", s.Stats.Wins, s.Stats.Losses)},
		{"Win rate", fmt.Sprintf("%.1f%%", s.Stats.WinRate)},
		{"Realized PnL", fmt.Sprintf("%+.2f", utils.SignedAmount(s.Stats.RealizedPNL))},
		{"Peak balance", fmt.Sprintf("%.2f", s.Stats.PeakBalance)},
		{"Max drawdown", fmt.Sprintf("%.2f (%.2f%%)", s.Stats.MaxDrawdown, s.Stats.MaxDrawdownPct)},
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 28, Align: text.AlignLeft},
		{Number: 2, WidthMin: 20, Align: text.AlignRight},
	})

	t.Render()
}
