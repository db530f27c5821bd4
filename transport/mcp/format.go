package mcp

import (
	"fmt"
	"strings"

	"github.com/wricardo/sanandreas/game/service"
)

func formatSnapshot(snap *service.Snapshot) string {
	if snap == nil {
		return "No game state available"
	}

	var b strings.Builder
	for _, line := range snap.HUD {
		b.WriteString(line + "\n")
	}
	fmt.Fprintf(&b, "Position: (%d,%d) | Tick: %d | Status: %s\n",
		snap.Player.Position.X, snap.Player.Position.Y, snap.Tick, snap.Status)
	if snap.Player.Objective != "" {
		fmt.Fprintf(&b, "Objective: %s\n", snap.Player.Objective)
	}
	if snap.Threat != "" {
		fmt.Fprintf(&b, "Threat: %s\n", snap.Threat)
	}
	if n := snap.Nearest; n != nil {
		fmt.Fprintf(&b, "Nearest enemy: %s (%s, %d HP) at (%d,%d), %d cells away\n",
			n.Name, n.Faction, n.Health, n.Position.X, n.Position.Y, n.Distance)
	}
	if len(snap.Player.Inventory) > 0 {
		b.WriteString("Inventory:\n")
		for i, name := range snap.Player.Inventory {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, name)
		}
	}

	b.WriteString("\nMap:\n")
	for _, row := range snap.Map {
		b.WriteString(row + "\n")
	}

	b.WriteString("\nMissions:\n")
	for _, m := range snap.Missions {
		mark := "[ ]"
		switch {
		case m.Completed:
			mark = "[x]"
		case m.Active:
			mark = "[>]"
		}
		fmt.Fprintf(&b, "  %s %s: %s\n", mark, m.Name, m.Objective)
	}

	if p := snap.Prompt; p != nil {
		fmt.Fprintf(&b, "\n%s\n", p.Title)
		for _, opt := range p.Options {
			fmt.Fprintf(&b, "  %s\n", opt)
		}
		fmt.Fprintf(&b, "%s\n", p.Question)
	}
	return b.String()
}

func formatCommand(res *service.CommandResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "> %s\n", res.Input)
	for _, msg := range res.Messages {
		b.WriteString(msg + "\n")
	}
	if !res.TurnEnded {
		b.WriteString("(no turn passed)\n")
	}
	b.WriteString("\n")
	b.WriteString(formatSnapshot(res.Snapshot))
	return b.String()
}

func formatBatch(batch *service.BatchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Executed %d/%d commands, %d turns passed\n",
		batch.Executed, batch.Requested, batch.TurnsEnded)
	if batch.Truncated {
		fmt.Fprintf(&b, "Only the first %d commands were run.\n", batch.Limit)
	}
	if batch.StoppedReason != "" {
		fmt.Fprintf(&b, "Stopped on command %d: %s\n", batch.StoppedOn, batch.StoppedReason)
	}
	b.WriteString("\n")
	for _, r := range batch.Results {
		fmt.Fprintf(&b, "%d. %s (tick %d)\n", r.Idx, r.Input, r.Tick)
		for _, msg := range r.Messages {
			fmt.Fprintf(&b, "   %s\n", msg)
		}
	}
	b.WriteString("\n")
	b.WriteString(formatSnapshot(batch.Snapshot))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Command History (Page %d/%d, Total: %d):\n\n",
		history.Page, history.TotalPages, history.Total)
	for _, entry := range history.Entries {
		fmt.Fprintf(&b, "%d. %s (tick %d, %s)\n", entry.Seq, entry.Input, entry.Tick, entry.Status)
		for _, msg := range entry.Messages {
			fmt.Fprintf(&b, "   %s\n", msg)
		}
	}
	if history.HasNext {
		b.WriteString("\nMore entries on the next page.\n")
	}
	return b.String()
}
