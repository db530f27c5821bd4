package engine

import "strings"

// HelpText lists the command surface.
const HelpText = "Commands: w/a/s/d move, e interact, x exit vehicle, f attack, " +
	"i or u inventory, u N use item N, v save, l load, q quit, h help"

var commandWords = map[string]Command{
	"w":         {Kind: CmdMove, Direction: Up},
	"up":        {Kind: CmdMove, Direction: Up},
	"north":     {Kind: CmdMove, Direction: Up},
	"s":         {Kind: CmdMove, Direction: Down},
	"down":      {Kind: CmdMove, Direction: Down},
	"south":     {Kind: CmdMove, Direction: Down},
	"a":         {Kind: CmdMove, Direction: Left},
	"left":      {Kind: CmdMove, Direction: Left},
	"west":      {Kind: CmdMove, Direction: Left},
	"d":         {Kind: CmdMove, Direction: Right},
	"right":     {Kind: CmdMove, Direction: Right},
	"east":      {Kind: CmdMove, Direction: Right},
	"i":         {Kind: CmdInventory},
	"u":         {Kind: CmdInventory},
	"inventory": {Kind: CmdInventory},
	"e":         {Kind: CmdInteract},
	"interact":  {Kind: CmdInteract},
	"x":         {Kind: CmdExit},
	"exit":      {Kind: CmdExit},
	"f":         {Kind: CmdAttack},
	"attack":    {Kind: CmdAttack},
	"v":         {Kind: CmdSave},
	"save":      {Kind: CmdSave},
	"l":         {Kind: CmdLoad},
	"load":      {Kind: CmdLoad},
	"q":         {Kind: CmdQuit},
	"quit":      {Kind: CmdQuit},
	"h":         {Kind: CmdHelp},
	"?":         {Kind: CmdHelp},
	"help":      {Kind: CmdHelp},
}

// ParseCommand turns a line of input into a command. Unknown input yields
// CmdInvalid; the raw text is kept for prompts, which read it directly.
func ParseCommand(input string) Command {
	raw := strings.TrimSpace(input)
	token := strings.ToLower(raw)
	if cmd, ok := commandWords[token]; ok {
		cmd.Raw = raw
		return cmd
	}
	if fields := strings.Fields(token); len(fields) == 2 && (fields[0] == "u" || fields[0] == "use") {
		return Command{Kind: CmdUse, Arg: fields[1], Raw: raw}
	}
	if len(token) > 1 && token[0] == 'u' && isDigits(token[1:]) {
		return Command{Kind: CmdUse, Arg: token[1:], Raw: raw}
	}
	return Command{Kind: CmdInvalid, Raw: raw}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
