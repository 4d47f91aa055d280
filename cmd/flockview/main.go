// Package main renders evolution episodes in a raylib window. The viewer
// consumes read-only snapshots; closing the window is the only signal it
// sends back.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/evo"
	"github.com/pthm-cable/flock/mask"
	"github.com/pthm-cable/flock/neural"
	"github.com/pthm-cable/flock/sim"
)

const (
	pipeLipHeight = 40
	pipeLipInset  = 6
	floorHeight   = 70
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), "flock")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Window.TargetFPS))

	pop := evo.NewPopulation(&cfg.Evolution, neural.DefaultNEATOptions(), rngSeed)

	episode, err := newGenerationEpisode(pop, cfg, rngSeed)
	if err != nil {
		slog.Error("failed to start episode", "error", err)
		os.Exit(1)
	}

	// Two floor segments scroll left and wrap, like the pipes.
	floorX1 := 0.0
	floorX2 := float64(cfg.Window.Width)

	stepsPerFrame := float32(1)

	for !rl.WindowShouldClose() {
		for i := 0; i < int(stepsPerFrame); i++ {
			episode.Step()
			floorX1 -= cfg.Pipe.Velocity
			floorX2 -= cfg.Pipe.Velocity
			if floorX1+float64(cfg.Window.Width) < 0 {
				floorX1 = floorX2 + float64(cfg.Window.Width)
			}
			if floorX2+float64(cfg.Window.Width) < 0 {
				floorX2 = floorX1 + float64(cfg.Window.Width)
			}
		}

		if episode.State() == sim.Terminated {
			pop.AssignResults(episode.Results())
			if err := pop.Reproduce(); err != nil {
				slog.Error("reproduction failed", "error", err)
				break
			}
			episode, err = newGenerationEpisode(pop, cfg, rngSeed+int64(pop.Generation()))
			if err != nil {
				slog.Error("failed to start episode", "error", err)
				break
			}
		}

		snap := episode.Snapshot()

		rl.BeginDrawing()
		rl.ClearBackground(rl.SkyBlue)

		for _, p := range snap.Pipes {
			drawPipe(p, cfg)
		}

		drawFloor(floorX1, cfg)
		drawFloor(floorX2, cfg)

		for _, b := range snap.Birds {
			if b.Alive {
				drawBird(b)
			}
		}

		rl.DrawText(fmt.Sprintf("Score: %d", snap.Score), 10, 10, 30, rl.White)
		rl.DrawText(fmt.Sprintf("Gen: %d", pop.Generation()), 10, 45, 20, rl.White)
		rl.DrawText(fmt.Sprintf("Alive: %d / %d", snap.Alive, len(snap.Birds)), 10, 70, 20, rl.White)

		stepsPerFrame = gui.SliderBar(
			rl.Rectangle{X: 10, Y: float32(cfg.Window.Height) - 30, Width: 150, Height: 20},
			"1", "20",
			stepsPerFrame, 1, 20,
		)
		rl.DrawText(fmt.Sprintf("%dx", int(stepsPerFrame)), 170, int32(cfg.Window.Height)-28, 16, rl.White)

		rl.EndDrawing()
	}
}

func newGenerationEpisode(pop *evo.Population, cfg *config.Config, episodeSeed int64) (*sim.Episode, error) {
	deciders, err := pop.BuildDeciders()
	if err != nil {
		return nil, err
	}
	return sim.NewEpisode(cfg, episodeSeed, deciders)
}

func drawPipe(p sim.PipeView, cfg *config.Config) {
	body := rl.NewColor(80, 160, 60, 255)
	lip := rl.NewColor(60, 140, 45, 255)

	x := int32(p.X)
	w := int32(mask.PipeWidth)

	// Top piece hangs from the ceiling down to the gap.
	rl.DrawRectangle(x+pipeLipInset, 0, w-2*pipeLipInset, int32(p.GapTop)-pipeLipHeight, body)
	rl.DrawRectangle(x, int32(p.GapTop)-pipeLipHeight, w, pipeLipHeight, lip)

	// Bottom piece stands from the gap to the floor.
	rl.DrawRectangle(x, int32(p.Bottom), w, pipeLipHeight, lip)
	rl.DrawRectangle(x+pipeLipInset, int32(p.Bottom)+pipeLipHeight, w-2*pipeLipInset,
		int32(cfg.Window.FloorY)-int32(p.Bottom)-pipeLipHeight, body)
}

func drawFloor(x float64, cfg *config.Config) {
	rl.DrawRectangle(int32(x), int32(cfg.Window.FloorY), int32(cfg.Window.Width), floorHeight,
		rl.NewColor(222, 184, 135, 255))
	rl.DrawRectangle(int32(x), int32(cfg.Window.FloorY), int32(cfg.Window.Width), 6,
		rl.NewColor(150, 200, 90, 255))
}

func drawBird(b sim.BirdView) {
	body := rl.NewColor(250, 210, 80, 255)
	wing := rl.NewColor(240, 170, 50, 255)

	cx := int32(b.X) + mask.BirdWidth/2
	cy := int32(b.Y) + mask.BirdHeight/2

	rl.DrawEllipse(cx, cy, 30, 18, body)

	// Wing position follows the animation frame.
	wingDY := [mask.BirdFrameCount]int32{-12, 0, 12}
	rl.DrawEllipse(cx-10, cy+wingDY[b.Frame], 12, 7, wing)

	// Eye and beak hint at the tilt direction.
	eyeDY := int32(-b.Tilt / 10)
	rl.DrawCircle(cx+14, cy-6+eyeDY, 4, rl.Black)
	rl.DrawRectangle(cx+22, cy-2+eyeDY, 12, 5, rl.Orange)
}
