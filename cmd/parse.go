package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pable/go-hoops-metrics/internal/aggregator"
	"github.com/pable/go-hoops-metrics/internal/model"
	"github.com/pable/go-hoops-metrics/internal/parser"
	"github.com/pable/go-hoops-metrics/internal/special"
	"github.com/pable/go-hoops-metrics/internal/storage"
)

var (
	parseFormat  string
	parseGender  string
	parseWorkers int
	parseForce   bool
	parseQuiet   bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <game.json> [game.json...]",
	Short: "Analyse game files and store the results",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseFormat, "format", "normalized", "input format: normalized or espn")
	parseCmd.Flags().StringVar(&parseGender, "gender", "", "override gender (M or W)")
	parseCmd.Flags().IntVar(&parseWorkers, "workers", runtime.NumCPU(), "number of files analysed in parallel")
	parseCmd.Flags().BoolVar(&parseForce, "force", false, "re-analyse files that are already stored")
	parseCmd.Flags().BoolVarP(&parseQuiet, "quiet", "q", false, "only print one summary line per game")
}

// parsedGame is one loaded file. stored is set, and result left nil, when the
// file's source hash is already in the database.
type parsedGame struct {
	path    string
	hash    string
	gameID  string
	stored  bool
	summary model.GameSummary
	result  *model.GameAnalysis
}

// batchOptions controls analyseFiles.
type batchOptions struct {
	format  parser.Format
	gender  string
	workers int
	opts    aggregator.Options
	// isStored reports whether a source hash is already stored; nil analyses everything.
	isStored func(hash string) (bool, error)
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := parser.ParseFormat(parseFormat)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	bo := batchOptions{format: format, gender: parseGender, workers: parseWorkers, opts: cfg.Options()}
	if !parseForce {
		bo.isStored = db.SourceStored
	}
	games, err := analyseFiles(args, bo)
	if err != nil {
		return err
	}

	for _, pg := range games {
		if pg == nil {
			continue
		}
		if pg.stored {
			fmt.Fprintf(os.Stdout, "%s already stored as %s, skipping (use --force to re-analyse).\n", pg.path, pg.gameID)
			continue
		}
		replacing, err := db.GameExists(pg.gameID)
		if err != nil {
			return fmt.Errorf("check game: %w", err)
		}
		if replacing {
			slog.Info("replacing stored game", "game", pg.gameID, "file", pg.path)
		}
		if err := db.InsertAnalysis(pg.summary, pg.result); err != nil {
			return fmt.Errorf("insert game %s: %w", pg.gameID, err)
		}
		if parseQuiet {
			fmt.Fprintf(os.Stdout, "%s  %s @ %s  %d-%d  %s\n", pg.gameID, pg.summary.AwayTeam,
				pg.summary.HomeTeam, pg.summary.AwayScore, pg.summary.HomeScore, pg.summary.Events)
			continue
		}
		printGame(pg.summary, pg.result, "")
	}
	return nil
}

// analyseFiles loads and analyses paths in parallel, returning one entry per
// path in argument order. Files with nothing to analyse are logged and left
// nil; any other load error aborts the batch.
func analyseFiles(paths []string, bo batchOptions) ([]*parsedGame, error) {
	games := make([]*parsedGame, len(paths))
	var g errgroup.Group
	g.SetLimit(max(bo.workers, 1))
	for i, path := range paths {
		g.Go(func() error {
			start := time.Now()
			raw, err := parser.LoadGame(path, bo.format, bo.gender)
			if errors.Is(err, parser.ErrEmptyGame) {
				slog.Warn("skipping file", "file", path, "err", err)
				return nil
			}
			if err != nil {
				return err
			}
			pg := &parsedGame{path: path, hash: raw.SourceHash, gameID: raw.Context.GameID}
			if bo.isStored != nil {
				stored, err := bo.isStored(raw.SourceHash)
				if err != nil {
					return fmt.Errorf("check game: %w", err)
				}
				if stored {
					pg.stored = true
					games[i] = pg
					return nil
				}
			}

			a, err := aggregator.Analyze(raw, bo.opts)
			if err != nil {
				return fmt.Errorf("%s: analyze: %w", path, err)
			}
			pg.summary = a.Summary(raw.SourceHash, special.Summary(a.Special))
			pg.result = a
			games[i] = pg
			slog.Debug("analysed", "file", path, "game", pg.gameID, "plays", a.PlayCount, "took", time.Since(start))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return games, nil
}
