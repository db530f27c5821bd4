package engine

import "github.com/wricardo/sanandreas/game/entity"

// Position represents x,y coordinates
type Position = entity.Position

// Direction is one of the four movement directions.
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// Delta returns the grid offset of the direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// CommandKind identifies the handler a command dispatches to.
type CommandKind string

const (
	CmdMove      CommandKind = "move"
	CmdInventory CommandKind = "inventory"
	CmdUse       CommandKind = "use"
	CmdInteract  CommandKind = "interact"
	CmdExit      CommandKind = "exit"
	CmdAttack    CommandKind = "attack"
	CmdSave      CommandKind = "save"
	CmdLoad      CommandKind = "load"
	CmdQuit      CommandKind = "quit"
	CmdHelp      CommandKind = "help"
	CmdInvalid   CommandKind = "invalid"
)

// Meta reports whether the command acts on the session rather than the
// world. Meta commands never cost a turn.
func (k CommandKind) Meta() bool {
	switch k {
	case CmdSave, CmdLoad, CmdQuit, CmdHelp:
		return true
	}
	return false
}

// Command is one parsed player input.
type Command struct {
	Kind      CommandKind `json:"kind"`
	Direction Direction   `json:"direction,omitempty"`
	Arg       string      `json:"arg,omitempty"`
	Raw       string      `json:"raw"`
}

// Status is the lifecycle state of a game.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
	StatusQuit    Status = "quit"
)

// EventType categorizes game events
type EventType string

const (
	EventInfo             EventType = "info"
	EventHelp             EventType = "help"
	EventInvalid          EventType = "invalid"
	EventMoved            EventType = "moved"
	EventBlocked          EventType = "blocked"
	EventPickup           EventType = "pickup"
	EventDialogue         EventType = "dialogue"
	EventMissionOffered   EventType = "mission_offered"
	EventMissionAccepted  EventType = "mission_accepted"
	EventMissionCompleted EventType = "mission_completed"
	EventShop             EventType = "shop"
	EventPurchase         EventType = "purchase"
	EventVehicle          EventType = "vehicle"
	EventItemUsed         EventType = "item_used"
	EventAttack           EventType = "attack"
	EventEnemyDefeated    EventType = "enemy_defeated"
	EventPlayerHit        EventType = "player_hit"
	EventWarning          EventType = "warning"
	EventWanted           EventType = "wanted"
	EventPoliceSpawned    EventType = "police_spawned"
	EventSaved            EventType = "saved"
	EventLoaded           EventType = "loaded"
	EventError            EventType = "error"
	EventVictory          EventType = "victory"
	EventDefeat           EventType = "defeat"
	EventQuit             EventType = "quit"
)

// Event is something that happened during a tick
type Event struct {
	Type     EventType `json:"type"`
	Message  string    `json:"message"`
	Tick     int       `json:"tick"`
	Position *Position `json:"position,omitempty"`
}

// PromptKind identifies an open menu.
type PromptKind string

const (
	PromptShop          PromptKind = "shop"
	PromptInventory     PromptKind = "inventory"
	PromptAcceptMission PromptKind = "accept_mission"
)

// Prompt is a menu waiting for an answer. While a prompt is open the next
// input answers it instead of being parsed as a command.
type Prompt struct {
	Kind     PromptKind `json:"kind"`
	Title    string     `json:"title"`
	Options  []string   `json:"options,omitempty"`
	Question string     `json:"question"`

	shop    *entity.Shop
	mission *entity.Mission
}

// Result is the outcome of one call to Step.
type Result struct {
	Events    []Event `json:"events"`
	Prompt    *Prompt `json:"prompt,omitempty"`
	TurnEnded bool    `json:"turn_ended"`
	Tick      int     `json:"tick"`
	Status    Status  `json:"status"`
}

// Messages returns the event messages in order.
func (r Result) Messages() []string {
	out := make([]string, 0, len(r.Events))
	for _, ev := range r.Events {
		out = append(out, ev.Message)
	}
	return out
}

// Has reports whether an event of type t happened.
func (r Result) Has(t EventType) bool {
	for _, ev := range r.Events {
		if ev.Type == t {
			return true
		}
	}
	return false
}

// Store persists whole game states.
type Store interface {
	Save(*State) error
	Load() (*State, error)
}
