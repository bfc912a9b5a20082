package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cbodonnell/hexfantasy/client/atlas"
	"github.com/cbodonnell/hexfantasy/client/game"
	"github.com/cbodonnell/hexfantasy/client/input"
	"github.com/cbodonnell/hexfantasy/client/spritesheets"
	"github.com/cbodonnell/hexfantasy/client/states"
	"github.com/cbodonnell/hexfantasy/pkg/log"
	"github.com/cbodonnell/hexfantasy/pkg/version"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	logLevel := flag.String("log-level", "info", "Log level")
	debug := flag.Bool("debug", false, "Draw the debug overlay")
	atlasPath := flag.String("atlas", "", "Sprite sheet path (.png, .gif, .jpg, .bmp, .webp, optionally .gz); empty uses the embedded sheet")
	manifestPath := flag.String("manifest", "", "Atlas manifest path; empty looks next to -atlas, then falls back to the embedded manifest")
	columns := flag.Int("columns", 0, "Override the number of grid columns")
	rows := flag.Int("rows", 0, "Override the number of grid rows")
	scale := flag.Float64("scale", 1, "Tile draw scale")
	transitionFrames := flag.Int("transition-frames", states.DefaultTransitionFrames, "Number of frames a transition lasts")
	loadTimeout := flag.Duration("load-timeout", 10*time.Second, "Maximum time to wait for the sprite sheet to decode")
	exitOnLoadError := flag.Bool("exit-on-load-error", false, "Exit immediately when the sprite sheet fails to load")
	width := flag.Int("width", game.DefaultScreenWidth, "Logical screen width")
	height := flag.Int("height", game.DefaultScreenHeight, "Logical screen height")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting client version %s", version.Get())

	grid, err := resolveGrid(*atlasPath, *manifestPath, *columns, *rows)
	if err != nil {
		log.Error("Failed to resolve atlas grid: %v", err)
		os.Exit(1)
	}

	var loader atlas.Loader = atlas.BytesLoader{Label: spritesheets.FantasyHexTilesName, Data: spritesheets.FantasyHexTiles}
	if *atlasPath != "" {
		loader = atlas.FileLoader{Path: *atlasPath}
	}
	log.Info("Loading atlas %s with a %dx%d grid", loader.Name(), grid.Columns, grid.Rows)

	ctx, cancel := context.WithTimeout(context.Background(), *loadTimeout)
	defer cancel()
	results := atlas.LoadSourceAsync(ctx, loader, grid)

	transition := states.TransitionOptions{Frames: *transitionFrames}
	g, err := game.NewGame(game.NewGameOptions{
		Debug: *debug,
		Initial: states.NewLoading(states.LoadingOptions{
			Results:     results,
			Next:        states.NewTitle(transition),
			Transition:  transition,
			ExitOnError: *exitOnLoadError,
		}),
		Keys:         input.NewKeySet(),
		Atlas:        atlas.NewStore(atlas.StoreOptions{Scale: *scale}),
		ScreenWidth:  *width,
		ScreenHeight: *height,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create game: %v", err))
	}

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("Hex Fantasy")
	if err := ebiten.RunGame(g); err != nil {
		if errors.Is(err, atlas.ErrLoad) {
			log.Error("Aborting startup: %v", err)
			os.Exit(1)
		}
		panic(fmt.Sprintf("Failed to run game: %v", err))
	}
}

// resolveGrid picks the grid from, in order: an explicit manifest, a manifest
// next to the sprite sheet, the embedded manifest. Positive columns and rows
// override whichever was found.
func resolveGrid(atlasPath, manifestPath string, columns, rows int) (atlas.Grid, error) {
	data := spritesheets.FantasyHexTilesManifest
	switch {
	case manifestPath != "":
		b, err := os.ReadFile(manifestPath)
		if err != nil {
			return atlas.Grid{}, fmt.Errorf("failed to read manifest: %w", err)
		}
		data = b
	case atlasPath != "":
		base := strings.TrimSuffix(atlasPath, ".gz")
		sidecar := strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
		if b, err := os.ReadFile(sidecar); err == nil {
			log.Debug("Using atlas manifest %s", sidecar)
			data = b
		}
	}

	m, err := atlas.ParseManifest(data)
	if err != nil {
		return atlas.Grid{}, err
	}
	grid := m.Grid()
	if columns > 0 {
		grid.Columns = columns
	}
	if rows > 0 {
		grid.Rows = rows
	}
	return grid, grid.Validate()
}
