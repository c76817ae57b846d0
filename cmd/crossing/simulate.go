package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-crossing/internal/assets"
	"github.com/vovakirdan/tui-crossing/internal/core"
	"github.com/vovakirdan/tui-crossing/internal/crossing"
	"github.com/vovakirdan/tui-crossing/internal/platform/tui"
	"github.com/vovakirdan/tui-crossing/internal/storage"
)

var (
	flagDuration   time.Duration
	flagClimbEvery int
	flagRecord     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless game driven by an autopilot",
	Long: `Run the game without a terminal. An autopilot presses up every
--climb-every frames for --duration of simulated time; rounds are logged
and a summary plus the final frame are printed. The same --seed always
produces the same run.

Examples:
  crossing simulate --seed 42
  crossing simulate --seed 7 --duration 5m --climb-every 20
  crossing simulate --record --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().DurationVar(&flagDuration, "duration", time.Minute, "Simulated play time")
	simulateCmd.Flags().IntVar(&flagClimbEvery, "climb-every", 30, "Frames between autopilot moves")
	simulateCmd.Flags().BoolVar(&flagRecord, "record", false, "Write finished rounds to the journal")
}

// simulation is the outcome of a headless run.
type simulation struct {
	Frames     int
	Rounds     int
	Goals      int
	Collisions int
	BestScore  int
	Final      crossing.GameState
	Screen     *core.Screen
}

// simOptions drives a headless run.
type simOptions struct {
	Seed       int64
	FPS        int
	Duration   time.Duration
	ClimbEvery int
	Logger     *log.Logger
	Journal    tui.Journal
}

// simulate plays one game on a stepped clock. Sprites load on a goroutine,
// so the run waits for them before the first step.
func simulate(s crossing.Settings, opts simOptions) (*simulation, error) {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.ClimbEvery <= 0 {
		opts.ClimbEvery = 1
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	sched := crossing.NewStepScheduler(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	loader := assets.NewLoader(assets.WithDispatch(sched.Post), assets.WithLogger(opts.Logger))

	// Size the offscreen screen to exactly one frame.
	canvas := tui.NewCanvas(core.NewScreen(1, 1), s)
	w, h := canvas.FrameSize()
	canvas.Screen().Resize(w, h)
	canvas.Layout()

	sim := &simulation{Screen: canvas.Screen()}
	observer := func(r crossing.RoundReport) {
		sim.Rounds++
		switch r.Outcome {
		case crossing.OutcomeGoal:
			sim.Goals++
		case crossing.OutcomeCollision:
			sim.Collisions++
		}
		sim.BestScore = max(sim.BestScore, r.Score)
		opts.Logger.Info("round over",
			"round", r.Round,
			"outcome", r.Result,
			"score", r.Score,
			"layout", r.Layout,
			"seed", r.Seed,
			"duration", r.Duration,
		)
		if opts.Journal != nil {
			if _, err := opts.Journal.RecordRound("simulate", r); err != nil {
				opts.Logger.Warn("journal write failed", "error", err)
			}
		}
	}

	engine, err := crossing.New(s, sched, canvas, loader,
		crossing.WithSeed(opts.Seed),
		crossing.WithLogger(opts.Logger),
		crossing.WithRoundObserver(observer),
	)
	if err != nil {
		return nil, err
	}

	engine.Start()
	<-loader.Done()

	frame := time.Second / time.Duration(opts.FPS)
	frames := int(opts.Duration / frame)
	for i := 1; i <= frames; i++ {
		if i%opts.ClimbEvery == 0 {
			engine.HandleInput(core.DirUp)
		}
		sched.Step(frame)
		if err := engine.Err(); err != nil {
			return nil, err
		}
		sim.Frames++
	}

	sim.Final = engine.Snapshot()
	return sim, nil
}

func runSimulate(_ *cobra.Command, _ []string) error {
	_, _, settings, err := loadSettings()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger("crossing-sim", os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts := simOptions{
		Seed:       seed,
		FPS:        flagFPS,
		Duration:   flagDuration,
		ClimbEvery: flagClimbEvery,
		Logger:     logger,
	}

	if flagRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("cannot open journal: %w", err)
		}
		defer store.Close()
		opts.Journal = store
	}

	sim, err := simulate(settings, opts)
	if err != nil {
		return err
	}

	fmt.Printf("seed %d: %d frames, %d rounds, %d goals, %d collisions, best score %d\n",
		seed, sim.Frames, sim.Rounds, sim.Goals, sim.Collisions, sim.BestScore)
	fmt.Println(sim.Screen.String())
	return nil
}
