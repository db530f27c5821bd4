// Command analyze prints quick, human-readable heuristics about every
// scenario: map size, start, object counts, the mission chain in play order
// and any objective the scenario cannot satisfy. An optional argument names
// a directory of extra scenario files.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/wricardo/sanandreas/game/config"
	"github.com/wricardo/sanandreas/validate"
)

func main() {
	dir := ""
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if err := run(os.Stdout, dir); err != nil {
		fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, dir string) error {
	scenarios, err := config.NewManager(dir)
	if err != nil {
		return err
	}
	infos, err := scenarios.ListScenarios()
	if err != nil {
		return err
	}
	for _, info := range infos {
		fmt.Fprintf(w, "\n=== Analyzing %s ===\n", info.ID)
		sc, err := scenarios.LoadScenario(info.ID)
		if err != nil {
			fmt.Fprintf(w, "Error loading scenario: %v\n", err)
			continue
		}
		a, err := validate.Analyze(sc)
		if err != nil {
			fmt.Fprintf(w, "Error analyzing scenario: %v\n", err)
			continue
		}
		a.Print(w)
	}
	return nil
}
