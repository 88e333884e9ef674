package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/labstack/gommon/log"

	"towersim/internal/game/control"
	"towersim/internal/game/save"
	"towersim/internal/ui"
	"towersim/pkg/types"
)

const (
	screenWidth  = 1024
	screenHeight = 768
)

// Section file names inside a snapshot directory.
var sectionFiles = [4]string{"tick.txt", "aircraft.txt", "terminals.txt", "queues.txt"}

type Game struct {
	width, height int
	tower         *control.ControlTower
	commandInput  *ui.TextInput
	statusMsg     string
}

func NewGame(tower *control.ControlTower, width, height int) *Game {
	game := &Game{
		tower:  tower,
		width:  width,
		height: height,
	}
	game.commandInput = ui.NewTextInput(10, height-48, width/2, 30, func(cmd string) {
		game.parseAndExecuteCommand(cmd)
	})
	return game
}

func (g *Game) Update() error {
	g.handleInput()
	g.commandInput.Update()
	return nil
}

func (g *Game) handleInput() {
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.commandInput.IsActive = g.commandInput.IsClicked(x, y)
	}

	// Space steps the simulation; ticks are always explicit.
	if !g.commandInput.IsActive && inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.tower.Tick()
		g.statusMsg = fmt.Sprintf("tick %d: %s", g.tower.TicksElapsed(), g.tower)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0, 0, 0, 255})

	g.drawTerminals(screen)
	g.drawQueues(screen)
	g.drawEvents(screen)

	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s | tick %d | SPACE = tick, click box for commands",
		g.tower, g.tower.TicksElapsed()))

	g.commandInput.Draw(screen)
	ebitenutil.DebugPrintAt(screen, g.statusMsg, 10, g.height-70)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func (g *Game) drawTerminals(screen *ebiten.Image) {
	for i, terminal := range g.tower.Terminals() {
		x := 20
		y := 50 + i*110
		vector.StrokeRect(screen, float32(x), float32(y), 400, 100, 1, color.RGBA{0, 100, 0, 255}, false)
		ebitenutil.DebugPrintAt(screen, terminal.String(), x+6, y+4)

		for j, gate := range terminal.Gates() {
			gx := x + 8 + j*64
			gy := y + 36
			fill := color.RGBA{0, 120, 0, 255}
			label := fmt.Sprintf("G%d", gate.Number())
			if occupant, ok := gate.Occupant(); ok {
				fill = color.RGBA{160, 90, 0, 255}
				label = fmt.Sprintf("G%d\n%s", gate.Number(), occupant)
			}
			vector.DrawFilledRect(screen, float32(gx), float32(gy), 58, 52, fill, false)
			ebitenutil.DebugPrintAt(screen, label, gx+3, gy+4)
		}
	}
}

func (g *Game) drawQueues(screen *ebiten.Image) {
	x := 460
	y := 50

	lines := []string{control.FormatQueue(g.tower.LandingQueue())}
	for _, cs := range g.tower.LandingQueue().InOrder() {
		if ac, ok := g.tower.AircraftByCallsign(cs); ok {
			lines = append(lines, fmt.Sprintf("  %s  fuel %.0f%%", ac, ac.FuelPercentRemaining()))
		}
	}
	lines = append(lines, "", control.FormatQueue(g.tower.TakeoffQueue()), "")

	loading := g.tower.LoadingAircraft()
	lines = append(lines, fmt.Sprintf("Loading (%d):", len(loading)))
	for cs, ticks := range loading {
		lines = append(lines, fmt.Sprintf("  %s: %d ticks left", cs, ticks))
	}
	lines = append(lines, "", "Aircraft:")
	for _, ac := range g.tower.Aircraft() {
		lines = append(lines, fmt.Sprintf("  %s", ac))
	}

	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), x, y)
}

func (g *Game) drawEvents(screen *ebiten.Image) {
	events := g.tower.Events()
	const visible = 8
	if len(events) > visible {
		events = events[len(events)-visible:]
	}
	lines := make([]string, 0, len(events)+1)
	lines = append(lines, "Tower log:")
	for _, ev := range events {
		lines = append(lines, fmt.Sprintf("  [%d] %s %s", ev.Tick, ev.Callsign, ev.Message))
	}
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 20, g.height-260)
}

func (g *Game) parseAndExecuteCommand(cmd string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch strings.ToUpper(parts[0]) {
	case "TICK", "T":
		n := 1
		if len(parts) > 1 {
			v, err := strconv.Atoi(parts[1])
			if err != nil || v < 1 {
				g.statusMsg = fmt.Sprintf("invalid tick count: %s", parts[1])
				return
			}
			n = v
		}
		for i := 0; i < n; i++ {
			g.tower.Tick()
		}
		g.statusMsg = fmt.Sprintf("advanced %d tick(s), now at %d", n, g.tower.TicksElapsed())
	case "ADD":
		if len(parts) != 2 {
			g.statusMsg = "usage: ADD callsign:MODEL:tasks:fuel:emergency:cargo"
			return
		}
		ac, err := save.ReadAircraft(parts[1])
		if err != nil {
			g.statusMsg = err.Error()
			return
		}
		if err := g.tower.AddAircraft(ac); err != nil {
			g.statusMsg = err.Error()
			return
		}
		g.statusMsg = fmt.Sprintf("added %s", ac)
	case "EMERGENCY", "E":
		if len(parts) != 2 {
			g.statusMsg = "usage: EMERGENCY <callsign>"
			return
		}
		ac, ok := g.tower.AircraftByCallsign(types.Callsign(parts[1]))
		if !ok {
			g.statusMsg = fmt.Sprintf("aircraft %s not found", parts[1])
			return
		}
		ac.DeclareEmergency()
		g.statusMsg = fmt.Sprintf("%s declared emergency", ac.Callsign())
	case "CLEAR", "C":
		if len(parts) != 2 {
			g.statusMsg = "usage: CLEAR <callsign>"
			return
		}
		ac, ok := g.tower.AircraftByCallsign(types.Callsign(parts[1]))
		if !ok {
			g.statusMsg = fmt.Sprintf("aircraft %s not found", parts[1])
			return
		}
		ac.ClearEmergency()
		g.statusMsg = fmt.Sprintf("%s emergency cleared", ac.Callsign())
	case "SAVE":
		if len(parts) != 2 {
			g.statusMsg = "usage: SAVE <dir>"
			return
		}
		if err := saveTowerToDir(g.tower, parts[1]); err != nil {
			g.statusMsg = err.Error()
			return
		}
		g.statusMsg = fmt.Sprintf("saved to %s", parts[1])
	case "LOAD":
		if len(parts) != 2 {
			g.statusMsg = "usage: LOAD <dir>"
			return
		}
		tower, err := loadTowerFromDir(parts[1])
		if err != nil {
			g.statusMsg = err.Error()
			return
		}
		g.tower = tower
		g.statusMsg = fmt.Sprintf("loaded from %s", parts[1])
	default:
		g.statusMsg = fmt.Sprintf("unknown command: %s", parts[0])
	}
	log.Print(g.statusMsg)
}

func loadTowerFromDir(dir string) (*control.ControlTower, error) {
	var files [4]*os.File
	for i, name := range sectionFiles {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		defer f.Close()
		files[i] = f
	}
	return save.LoadTower(files[0], files[1], files[2], files[3])
}

func saveTowerToDir(tower *control.ControlTower, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	var files [4]*os.File
	for i, name := range sectionFiles {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		defer f.Close()
		files[i] = f
	}
	return save.WriteTower(tower, files[0], files[1], files[2], files[3])
}

// demoTower builds a small airport for interactive play when no snapshot
// directory is given.
func demoTower() *control.ControlTower {
	tower := control.NewEmptyControlTower()

	terminals := []struct {
		header string
		gates  []string
	}{
		{"AirplaneTerminal:1:false:3", []string{"1:empty", "2:empty", "3:empty"}},
		{"HelicopterTerminal:2:false:2", []string{"10:empty", "11:empty"}},
	}
	encoded := []string{
		"QFA481:AIRBUS_A320:AWAY,AWAY,LAND,WAIT,LOAD@60,TAKEOFF:10000.00:false:132",
		"UTD302:BOEING_787:AWAY,LAND,WAIT,LOAD@100,TAKEOFF:98000.00:false:0",
		"UPS119:BOEING_747_8F:LAND,WAIT,LOAD@50,TAKEOFF,AWAY:4000.00:false:0",
		"VHBFK:ROBINSON_R44:LAND,WAIT,LOAD@75,TAKEOFF,AWAY:110.00:false:2",
	}

	var terminalsText strings.Builder
	fmt.Fprintf(&terminalsText, "%d", len(terminals))
	for _, t := range terminals {
		fmt.Fprintf(&terminalsText, "\n%s", t.header)
		for _, gate := range t.gates {
			fmt.Fprintf(&terminalsText, "\n%s", gate)
		}
	}
	decoded, err := save.LoadTerminalsWithGates(strings.NewReader(terminalsText.String()), nil)
	if err != nil {
		log.Fatal(err)
	}
	for _, terminal := range decoded {
		tower.AddTerminal(terminal)
	}

	for _, line := range encoded {
		ac, err := save.ReadAircraft(line)
		if err != nil {
			log.Fatal(err)
		}
		if err := tower.AddAircraft(ac); err != nil {
			log.Fatal(err)
		}
	}
	return tower
}

func main() {
	tower := demoTower()
	if len(os.Args) > 1 {
		loaded, err := loadTowerFromDir(os.Args[1])
		if err != nil {
			log.Fatal(err)
		}
		tower = loaded
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Tower Simulator")
	ebiten.SetVsyncEnabled(true)

	if err := ebiten.RunGame(NewGame(tower, screenWidth, screenHeight)); err != nil {
		log.Fatal(err)
	}
}
