package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go-pairs/internal/config"
	"go-pairs/internal/faces"
	"go-pairs/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// gridFlag parses a board size written as ROWSxCOLUMNS, e.g. 4x4.
type gridFlag struct {
	rows, cols int
}

func (g *gridFlag) String() string {
	if g == nil || g.rows == 0 {
		return ""
	}
	return fmt.Sprintf("%dx%d", g.rows, g.cols)
}

func (g *gridFlag) Set(s string) error {
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) != 2 {
		return fmt.Errorf("invalid grid %q (use ROWSxCOLUMNS, e.g. 4x4)", s)
	}
	rows, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	cols, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return fmt.Errorf("invalid grid %q (use ROWSxCOLUMNS, e.g. 4x4)", s)
	}
	g.rows, g.cols = rows, cols
	return nil
}

// loadSettings merges the environment (and optional env file) with
// command-line flags. Flags win.
func loadSettings(args []string, stderr io.Writer) (config.Config, error) {
	fs := flag.NewFlagSet("go-pairs", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		grid    gridFlag
		rows    int
		cols    int
		seed    int64
		facesFl string
		bell    bool
		logFile string
		debug   bool
		envFile string
	)

	fs.Var(&grid, "grid", "Board size as ROWSxCOLUMNS")
	fs.Var(&grid, "g", "Board size (shorthand)")
	fs.IntVar(&rows, "rows", 0, "Number of rows")
	fs.IntVar(&rows, "r", 0, "Number of rows (shorthand)")
	fs.IntVar(&cols, "cols", 0, "Number of columns")
	fs.IntVar(&cols, "c", 0, "Number of columns (shorthand)")
	fs.Int64Var(&seed, "seed", 0, "Shuffle seed (0 picks one from the clock)")
	fs.Int64Var(&seed, "s", 0, "Shuffle seed (shorthand)")
	fs.StringVar(&facesFl, "faces", "", "Comma separated face files or directories")
	fs.StringVar(&facesFl, "f", "", "Face files or directories (shorthand)")
	fs.BoolVar(&bell, "bell", false, "Ring the terminal bell on match, mismatch and game over")
	fs.StringVar(&logFile, "log", "", "Write logs to this file")
	fs.BoolVar(&debug, "debug", false, "Log at debug level")
	fs.StringVar(&envFile, "env", "", "Load settings from a dotenv file")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [options]\n", fs.Name())
		fmt.Fprintf(stderr, "\nOptions:\n")
		fmt.Fprintf(stderr, "   -g, --grid=RxC      Board size, e.g. 4x4 (rows x columns must be even)\n")
		fmt.Fprintf(stderr, "   -r, --rows=N        Number of rows\n")
		fmt.Fprintf(stderr, "   -c, --cols=N        Number of columns\n")
		fmt.Fprintf(stderr, "   -s, --seed=N        Shuffle seed for a repeatable deal\n")
		fmt.Fprintf(stderr, "   -f, --faces=PATHS   Comma separated face files or directories\n")
		fmt.Fprintf(stderr, "       --bell          Ring the terminal bell for sound cues\n")
		fmt.Fprintf(stderr, "       --log=FILE      Write logs to FILE\n")
		fmt.Fprintf(stderr, "       --debug         Log at debug level\n")
		fmt.Fprintf(stderr, "       --env=FILE      Load PAIRS_* settings from a dotenv file\n")
		fmt.Fprintf(stderr, "   -h, --help          Show this help message\n")
	}

	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "grid", "g":
			cfg.Rows, cfg.Columns = grid.rows, grid.cols
		case "rows", "r":
			cfg.Rows = rows
		case "cols", "c":
			cfg.Columns = cols
		case "seed", "s":
			cfg.Seed = seed
		case "faces", "f":
			cfg.Faces = splitList(facesFl)
		case "bell":
			cfg.Bell = bell
		case "log":
			cfg.LogFile = logFile
		case "debug":
			cfg.Debug = debug
		}
	})

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func main() {
	cfg, err := loadSettings(os.Args[1:], os.Stderr)
	if err == flag.ErrHelp {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logger, err := logging.New(cfg.LogFile, cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	faceSet := faces.Default()
	if len(cfg.Faces) > 0 {
		if faceSet, err = faces.Load(cfg.Faces); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading faces: %v\n", err)
			os.Exit(1)
		}
	}

	var bell io.Writer
	if cfg.Bell {
		bell = os.Stderr
	}

	m, err := newModel(cfg, faceSet, bell, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting round: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", zap.Error(err))
		fmt.Printf("Error starting the program: %v\n", err)
		os.Exit(1)
	}

	if best := m.session.History.GetHighScoreEntry(); best != nil {
		fmt.Printf("Best score this session: %d over %d round(s)\n", best.Score, m.session.History.Rounds())
	}
}
