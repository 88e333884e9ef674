package save

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"towersim/internal/game/control"
	"towersim/pkg/types"
)

// EncodeLoadingMap returns the loading-map block: a count line, then a
// comma-separated line of callsign:ticksRemaining pairs ordered by callsign.
// The pair line is omitted when the map is empty.
func EncodeLoadingMap(loading map[types.Callsign]int) string {
	callsigns := make([]types.Callsign, 0, len(loading))
	for cs := range loading {
		callsigns = append(callsigns, cs)
	}
	sort.Slice(callsigns, func(i, j int) bool { return callsigns[i] < callsigns[j] })

	header := fmt.Sprintf("%d", len(callsigns))
	if len(callsigns) == 0 {
		return header
	}
	pairs := make([]string, len(callsigns))
	for i, cs := range callsigns {
		pairs[i] = fmt.Sprintf("%s:%d", cs, loading[cs])
	}
	return header + "\n" + strings.Join(pairs, ",")
}

// WriteTower writes the four snapshot sections for the given tower, in the
// same order the loader consumes them.
func WriteTower(t *control.ControlTower, tick, aircraftSection, terminals, queues io.Writer) error {
	if _, err := fmt.Fprintf(tick, "%d\n", t.TicksElapsed()); err != nil {
		return err
	}

	fleet := t.Aircraft()
	lines := make([]string, 0, len(fleet)+1)
	lines = append(lines, fmt.Sprintf("%d", len(fleet)))
	for _, ac := range fleet {
		lines = append(lines, ac.Encode())
	}
	if _, err := io.WriteString(aircraftSection, strings.Join(lines, "\n")+"\n"); err != nil {
		return err
	}

	terminalList := t.Terminals()
	lines = make([]string, 0, len(terminalList)+1)
	lines = append(lines, fmt.Sprintf("%d", len(terminalList)))
	for _, terminal := range terminalList {
		lines = append(lines, terminal.Encode())
	}
	if _, err := io.WriteString(terminals, strings.Join(lines, "\n")+"\n"); err != nil {
		return err
	}

	blocks := []string{
		control.EncodeQueue(t.TakeoffQueue()),
		control.EncodeQueue(t.LandingQueue()),
		EncodeLoadingMap(t.LoadingAircraft()),
	}
	_, err := io.WriteString(queues, strings.Join(blocks, "\n")+"\n")
	return err
}
