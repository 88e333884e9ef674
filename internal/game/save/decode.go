package save

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"towersim/internal/game/aircraft"
	"towersim/internal/game/control"
	"towersim/internal/game/ground"
	"towersim/internal/game/tasks"
	"towersim/pkg/types"
)

// ErrMalformedSave is the single error kind for any structural or semantic
// violation while decoding persisted state. The first violation aborts the
// entire load; callers only ever need errors.Is against this sentinel.
var ErrMalformedSave = errors.New("malformed save")

// lineReader walks a section line by line.
type lineReader struct {
	sc *bufio.Scanner
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{sc: bufio.NewScanner(r)}
}

// next returns the following line, or an error if the section ended early.
func (lr *lineReader) next() (string, error) {
	if !lr.sc.Scan() {
		return "", fmt.Errorf("%w: unexpected end of input", ErrMalformedSave)
	}
	return lr.sc.Text(), nil
}

// LoadTick reads the tick section: a single line holding the non-negative
// number of elapsed ticks.
func LoadTick(r io.Reader) (int64, error) {
	lr := newLineReader(r)
	line, err := lr.next()
	if err != nil {
		return 0, err
	}
	ticks, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: tick count %q is not an integer", ErrMalformedSave, line)
	}
	if ticks < 0 {
		return 0, fmt.Errorf("%w: tick count %d is negative", ErrMalformedSave, ticks)
	}
	return ticks, nil
}

// LoadAircraft reads the aircraft section: a declared count followed by one
// encoded aircraft per line. The declared count must match the lines present.
func LoadAircraft(r io.Reader) ([]*aircraft.Aircraft, error) {
	lr := newLineReader(r)
	first, err := lr.next()
	if err != nil {
		return nil, err
	}
	declared, err := strconv.Atoi(first)
	if err != nil {
		return nil, fmt.Errorf("%w: aircraft count %q is not an integer", ErrMalformedSave, first)
	}
	if declared == 0 {
		return nil, nil
	}

	var fleet []*aircraft.Aircraft
	for lr.sc.Scan() {
		ac, err := ReadAircraft(lr.sc.Text())
		if err != nil {
			return nil, err
		}
		fleet = append(fleet, ac)
	}
	if len(fleet) != declared {
		return nil, fmt.Errorf("%w: %d aircraft declared, %d read", ErrMalformedSave, declared, len(fleet))
	}
	return fleet, nil
}

// ReadAircraft decodes a single aircraft line:
// callsign:MODEL:taskListEncoded:fuelAmount:emergency:cargoOrPassengerCount.
// A model with passenger capacity yields a passenger aircraft; otherwise a
// freight aircraft.
func ReadAircraft(line string) (*aircraft.Aircraft, error) {
	parts := strings.Split(line, ":")
	if len(parts) != 6 {
		return nil, fmt.Errorf("%w: aircraft line %q has %d fields, want 6", ErrMalformedSave, line, len(parts))
	}

	model, ok := aircraft.CharacteristicsOf(parts[1])
	if !ok {
		return nil, fmt.Errorf("%w: unknown aircraft model %q", ErrMalformedSave, parts[1])
	}

	taskList, err := ReadTaskList(parts[2])
	if err != nil {
		return nil, err
	}

	fuel, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: fuel amount %q is not a number", ErrMalformedSave, parts[3])
	}
	if fuel < 0 || fuel > model.FuelCapacity {
		return nil, fmt.Errorf("%w: fuel amount %.2f outside [0, %.2f]", ErrMalformedSave, fuel, model.FuelCapacity)
	}

	emergency, err := strconv.ParseBool(parts[4])
	if err != nil {
		return nil, fmt.Errorf("%w: emergency flag %q is not a boolean", ErrMalformedSave, parts[4])
	}

	onboard, err := strconv.Atoi(parts[5])
	if err != nil {
		return nil, fmt.Errorf("%w: cargo count %q is not an integer", ErrMalformedSave, parts[5])
	}
	capacity := model.FreightCapacity
	if model.PassengerCapacity > 0 {
		capacity = model.PassengerCapacity
	}
	if onboard < 0 || onboard > capacity {
		return nil, fmt.Errorf("%w: cargo count %d outside [0, %d]", ErrMalformedSave, onboard, capacity)
	}

	ac := aircraft.New(types.Callsign(parts[0]), model, taskList, fuel, onboard)
	if emergency {
		ac.DeclareEmergency()
	}
	return ac, nil
}

// ReadTaskList decodes a comma-separated task sequence, where LOAD tasks
// carry an @percent suffix. The decoded sequence passes through the full
// circular-transition validation.
func ReadTaskList(encoded string) (*tasks.TaskList, error) {
	var list []tasks.Task
	for _, token := range strings.Split(encoded, ",") {
		if strings.Contains(token, "LOAD") {
			pieces := strings.Split(token, "@")
			if len(pieces) != 2 || pieces[0] != "LOAD" {
				return nil, fmt.Errorf("%w: bad LOAD task %q", ErrMalformedSave, token)
			}
			percent, err := strconv.Atoi(pieces[1])
			if err != nil {
				return nil, fmt.Errorf("%w: load percentage %q is not an integer", ErrMalformedSave, pieces[1])
			}
			if percent < 0 || percent > 100 {
				return nil, fmt.Errorf("%w: load percentage %d outside [0, 100]", ErrMalformedSave, percent)
			}
			list = append(list, tasks.NewLoadTask(percent))
			continue
		}
		taskType, ok := tasks.ParseTaskType(token)
		if !ok {
			return nil, fmt.Errorf("%w: unknown task type %q", ErrMalformedSave, token)
		}
		list = append(list, tasks.NewTask(taskType))
	}
	taskList, err := tasks.NewTaskList(list)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSave, err)
	}
	return taskList, nil
}

// LoadTerminalsWithGates reads the terminals section: a declared terminal
// count, then for each terminal a header line followed by its gate lines.
// Gate occupants are resolved against the already-decoded fleet.
func LoadTerminalsWithGates(r io.Reader, fleet []*aircraft.Aircraft) ([]*ground.Terminal, error) {
	lr := newLineReader(r)
	first, err := lr.next()
	if err != nil {
		return nil, err
	}
	declared, err := strconv.Atoi(first)
	if err != nil {
		return nil, fmt.Errorf("%w: terminal count %q is not an integer", ErrMalformedSave, first)
	}

	var terminals []*ground.Terminal
	for lr.sc.Scan() {
		terminal, err := readTerminal(lr.sc.Text(), lr, fleet)
		if err != nil {
			return nil, err
		}
		terminals = append(terminals, terminal)
	}
	if len(terminals) != declared {
		return nil, fmt.Errorf("%w: %d terminals declared, %d read", ErrMalformedSave, declared, len(terminals))
	}
	return terminals, nil
}

// readTerminal decodes one terminal header line
// (TerminalType:number:emergency:numGates) and consumes numGates gate lines
// from the reader.
func readTerminal(line string, lr *lineReader, fleet []*aircraft.Aircraft) (*ground.Terminal, error) {
	parts := strings.Split(line, ":")
	if len(parts) != 4 {
		return nil, fmt.Errorf("%w: terminal line %q has %d fields, want 4", ErrMalformedSave, line, len(parts))
	}

	var class types.AircraftClass
	switch parts[0] {
	case "AirplaneTerminal":
		class = types.Airplane
	case "HelicopterTerminal":
		class = types.Helicopter
	default:
		return nil, fmt.Errorf("%w: unknown terminal type %q", ErrMalformedSave, parts[0])
	}

	number, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: terminal number %q is not an integer", ErrMalformedSave, parts[1])
	}
	if number < 1 {
		return nil, fmt.Errorf("%w: terminal number %d is less than one", ErrMalformedSave, number)
	}

	emergency, err := strconv.ParseBool(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%w: emergency flag %q is not a boolean", ErrMalformedSave, parts[2])
	}

	numGates, err := strconv.Atoi(parts[3])
	if err != nil {
		return nil, fmt.Errorf("%w: gate count %q is not an integer", ErrMalformedSave, parts[3])
	}
	if numGates < 0 || numGates > ground.MaxGates {
		return nil, fmt.Errorf("%w: gate count %d outside [0, %d]", ErrMalformedSave, numGates, ground.MaxGates)
	}

	terminal := ground.NewTerminal(class, number)
	for i := 0; i < numGates; i++ {
		gateLine, err := lr.next()
		if err != nil {
			return nil, err
		}
		gate, err := readGate(gateLine, fleet)
		if err != nil {
			return nil, err
		}
		if err := terminal.AddGate(gate); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedSave, err)
		}
	}
	if emergency {
		terminal.DeclareEmergency()
	}
	return terminal, nil
}

// readGate decodes a gateNumber:callsign line, where "empty" marks an
// unoccupied gate. Gate numbers may be zero, unlike terminal numbers.
func readGate(line string, fleet []*aircraft.Aircraft) (*ground.Gate, error) {
	parts := strings.Split(line, ":")
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: gate line %q has %d fields, want 2", ErrMalformedSave, line, len(parts))
	}
	number, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: gate number %q is not an integer", ErrMalformedSave, parts[0])
	}
	if number < 0 {
		return nil, fmt.Errorf("%w: gate number %d is negative", ErrMalformedSave, number)
	}
	gate := ground.NewGate(number)
	if parts[1] != "empty" {
		ac, err := resolveCallsign(fleet, parts[1])
		if err != nil {
			return nil, err
		}
		// Cannot fail: the gate was just created empty.
		_ = gate.Park(ac.Callsign())
	}
	return gate, nil
}

// LoadQueues reads the queues section into the given empty takeoff queue,
// landing queue and loading map: one block per queue, then the loading-map
// block. Callsigns resolve against the fleet.
func LoadQueues(r io.Reader, fleet []*aircraft.Aircraft, takeoffQueue *control.TakeoffQueue,
	landingQueue *control.LandingQueue, loading map[types.Callsign]int) error {
	lr := newLineReader(r)
	if err := readQueue(lr, fleet, takeoffQueue); err != nil {
		return err
	}
	if err := readQueue(lr, fleet, landingQueue); err != nil {
		return err
	}
	return readLoadingAircraft(lr, fleet, loading)
}

// readQueue decodes one TypeName:count block into the given queue. The type
// name must match the queue's own.
func readQueue(lr *lineReader, fleet []*aircraft.Aircraft, queue control.AircraftQueue) error {
	header, err := lr.next()
	if err != nil {
		return err
	}
	parts := strings.Split(header, ":")
	if len(parts) != 2 {
		return fmt.Errorf("%w: queue header %q has %d fields, want 2", ErrMalformedSave, header, len(parts))
	}
	if parts[0] != queue.TypeName() {
		return fmt.Errorf("%w: queue type %q, want %q", ErrMalformedSave, parts[0], queue.TypeName())
	}
	count, err := strconv.Atoi(parts[1])
	if err != nil {
		return fmt.Errorf("%w: queue count %q is not an integer", ErrMalformedSave, parts[1])
	}
	if count == 0 {
		return nil
	}

	line, err := lr.next()
	if err != nil {
		return err
	}
	callsigns := strings.Split(line, ",")
	if len(callsigns) != count {
		return fmt.Errorf("%w: %d callsigns declared for %s, %d listed",
			ErrMalformedSave, count, queue.TypeName(), len(callsigns))
	}
	for _, cs := range callsigns {
		ac, err := resolveCallsign(fleet, cs)
		if err != nil {
			return err
		}
		queue.Add(ac.Callsign())
	}
	return nil
}

// readLoadingAircraft decodes the loading-map block: a count line, then a
// comma-separated line of callsign:ticksRemaining pairs.
func readLoadingAircraft(lr *lineReader, fleet []*aircraft.Aircraft, loading map[types.Callsign]int) error {
	first, err := lr.next()
	if err != nil {
		return err
	}
	count, err := strconv.Atoi(first)
	if err != nil {
		return fmt.Errorf("%w: loading count %q is not an integer", ErrMalformedSave, first)
	}
	if count == 0 {
		return nil
	}

	line, err := lr.next()
	if err != nil {
		return err
	}
	pairs := strings.Split(line, ",")
	if len(pairs) != count {
		return fmt.Errorf("%w: %d loading aircraft declared, %d listed", ErrMalformedSave, count, len(pairs))
	}
	for _, pair := range pairs {
		pieces := strings.Split(pair, ":")
		if len(pieces) != 2 {
			return fmt.Errorf("%w: loading pair %q has %d fields, want 2", ErrMalformedSave, pair, len(pieces))
		}
		ac, err := resolveCallsign(fleet, pieces[0])
		if err != nil {
			return err
		}
		ticks, err := strconv.Atoi(pieces[1])
		if err != nil {
			return fmt.Errorf("%w: loading time %q is not an integer", ErrMalformedSave, pieces[1])
		}
		if ticks < 1 {
			return fmt.Errorf("%w: loading time %d is less than one", ErrMalformedSave, ticks)
		}
		loading[ac.Callsign()] = ticks
	}
	return nil
}

// resolveCallsign finds an aircraft in the fleet by callsign; an unknown
// callsign is a malformed save.
func resolveCallsign(fleet []*aircraft.Aircraft, callsign string) (*aircraft.Aircraft, error) {
	for _, ac := range fleet {
		if string(ac.Callsign()) == callsign {
			return ac, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown callsign %q", ErrMalformedSave, callsign)
}

// LoadTower decodes the four sections in their fixed order and composes a
// control tower. A tower is returned only if every section decodes.
func LoadTower(tick, aircraftSection, terminals, queues io.Reader) (*control.ControlTower, error) {
	ticks, err := LoadTick(tick)
	if err != nil {
		return nil, err
	}
	fleet, err := LoadAircraft(aircraftSection)
	if err != nil {
		return nil, err
	}
	terminalList, err := LoadTerminalsWithGates(terminals, fleet)
	if err != nil {
		return nil, err
	}

	registry := control.NewRegistry()
	for _, ac := range fleet {
		registry.Add(ac)
	}
	landingQueue := control.NewLandingQueue(registry)
	takeoffQueue := control.NewTakeoffQueue()
	loading := make(map[types.Callsign]int)
	if err := LoadQueues(queues, fleet, takeoffQueue, landingQueue, loading); err != nil {
		return nil, err
	}

	tower := control.NewControlTower(ticks, registry, landingQueue, takeoffQueue, loading)
	for _, terminal := range terminalList {
		tower.AddTerminal(terminal)
	}
	return tower, nil
}
