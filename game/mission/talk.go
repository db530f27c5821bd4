package mission

import (
	"fmt"

	"github.com/wricardo/sanandreas/game/entity"
)

// Outcome classifies how a conversation ended.
type Outcome string

const (
	OutcomeDialogue   Outcome = "dialogue"
	OutcomeBlocked    Outcome = "blocked"
	OutcomeCompleted  Outcome = "completed"
	OutcomeOffer      Outcome = "offer"
	OutcomeInProgress Outcome = "in_progress"
	OutcomeBusy       Outcome = "busy"
)

// Conversation is the result of talking to an NPC. When Outcome is
// OutcomeOffer the caller should ask the player to accept Mission.
type Conversation struct {
	Lines   []string
	Outcome Outcome
	Mission *entity.Mission
}

// Talk runs the conversation rules for n. The only state it changes is
// completion of n's mission when its objective already holds.
func Talk(n *entity.NPC, p *entity.Player) Conversation {
	m := n.Mission
	if m == nil {
		return Conversation{Lines: []string{say(n, n.Dialogue)}, Outcome: OutcomeDialogue}
	}
	if n.MissionCompleted || p.HasCompleted(m.Name) {
		line := n.AfterDialogue
		if line == "" {
			line = n.Dialogue
		}
		return Conversation{Lines: []string{say(n, line)}, Outcome: OutcomeDialogue, Mission: m}
	}
	if missing := Missing(m, p); len(missing) > 0 {
		return Conversation{
			Lines:   []string{fmt.Sprintf("You need to complete '%s' first to talk to %s.", missing[0], n.Name)},
			Outcome: OutcomeBlocked,
			Mission: m,
		}
	}

	c := Conversation{Lines: []string{say(n, n.Dialogue)}, Mission: m}
	gateOpen := true
	if m.Gate != nil {
		gateOpen = Satisfied(m.Gate.Objective, p)
		if gateOpen && m.Gate.Ack != "" {
			c.Lines = append(c.Lines, say(n, m.Gate.Ack))
		}
		if !gateOpen && m.Gate.Hint != "" {
			c.Lines = append(c.Lines, say(n, m.Gate.Hint))
		}
	}

	switch {
	case gateOpen && Satisfied(m.Objective, p):
		Complete(n, p)
		c.Outcome = OutcomeCompleted
		c.Lines = append(c.Lines, fmt.Sprintf("Mission '%s' completed!", m.Name))
		if m.RewardMoney > 0 {
			c.Lines = append(c.Lines, fmt.Sprintf("Received $%d as reward.", m.RewardMoney))
		}
		if m.RewardItem != nil {
			c.Lines = append(c.Lines, fmt.Sprintf("Received %s.", m.RewardItem.Name))
		}
	case p.Mission == nil:
		c.Outcome = OutcomeOffer
		c.Lines = append(c.Lines, fmt.Sprintf("Mission offered: %s", m.Name), m.Description)
	case p.Mission.Name == m.Name:
		c.Outcome = OutcomeInProgress
		c.Lines = append(c.Lines, fmt.Sprintf("You are currently on this mission. Objective: %s", m.Objective))
	default:
		c.Outcome = OutcomeBusy
		c.Lines = append(c.Lines, fmt.Sprintf("You already have an active mission: %s. Complete it first!", p.Mission.Name))
	}
	return c
}

// AcceptPrompt is the question asked for an offered mission.
func AcceptPrompt(m *entity.Mission) string {
	return fmt.Sprintf("Do you want to accept mission '%s'? (yes/no)", m.Name)
}

func say(n *entity.NPC, line string) string {
	return fmt.Sprintf("%s: %s", n.Name, line)
}
