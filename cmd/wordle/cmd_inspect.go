package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/wordle-engine/internal/store"
)

type inspectFlags struct {
	dbPath  string
	last    int
	runID   string
	gameID  string
	jsonOut bool
}

func newInspectCmd(a *app) *cobra.Command {
	var f inspectFlags
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show recorded benchmark runs",
		Long: `List recent runs, the games of one run (--run), or the turns of one
game (--game).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := a.requireDB(f.dbPath)
			if err != nil {
				return err
			}
			st, err := store.NewStore(path)
			if err != nil {
				return err
			}
			defer st.Close()

			w := cmd.OutOrStdout()
			switch {
			case f.gameID != "":
				return runGameMode(w, st, f.gameID, f.jsonOut)
			case f.runID != "":
				return runRunMode(w, st, f.runID, f.jsonOut)
			default:
				return runListMode(w, st, f.last, f.jsonOut)
			}
		},
	}
	cmd.Flags().StringVar(&f.dbPath, "db", "", "benchmark database (default store.path)")
	cmd.Flags().IntVar(&f.last, "last", 20, "show N most recent runs")
	cmd.Flags().StringVar(&f.runID, "run", "", "show the games of one run")
	cmd.Flags().StringVar(&f.gameID, "game", "", "show the turns of one game")
	cmd.Flags().BoolVar(&f.jsonOut, "json", false, "output as JSON instead of table")
	return cmd
}

// #region list-mode

type runRow struct {
	RunID        string  `json:"run_id"`
	Strategy     string  `json:"strategy"`
	Games        int     `json:"games"`
	Solved       int     `json:"solved"`
	Failed       int     `json:"failed"`
	AverageTurns float64 `json:"average_turns"`
	Efficiency   float64 `json:"efficiency"`
	StartedAt    string  `json:"started_at"`
	Finished     bool    `json:"finished"`
}

func toRunRow(r store.Run) runRow {
	return runRow{
		RunID:        r.ID,
		Strategy:     r.Strategy,
		Games:        r.Games,
		Solved:       r.Solved,
		Failed:       r.Failed,
		AverageTurns: r.AverageTurns,
		Efficiency:   r.Efficiency,
		StartedAt:    r.StartedAt.UTC().Format("2006-01-02T15:04:05Z"),
		Finished:     r.Finished(),
	}
}

func runListMode(w io.Writer, st *store.Store, last int, jsonOut bool) error {
	runs, err := st.ListRuns(last)
	if err != nil {
		return err
	}
	rows := make([]runRow, len(runs))
	for i, r := range runs {
		rows[i] = toRunRow(r)
	}
	if jsonOut {
		return printJSON(w, rows)
	}
	if len(rows) == 0 {
		fmt.Fprintln(w, "no runs found")
		return nil
	}

	fmt.Fprintf(w, "%-36s  %-10s  %6s  %6s  %8s  %10s  %s\n",
		"Run", "Strategy", "Games", "Failed", "Average", "Efficiency", "Started")
	fmt.Fprintf(w, "%-36s+-%-10s+-%6s+-%6s+-%8s+-%10s+-%s\n",
		"------------------------------------", "----------", "------", "------", "--------", "----------", "--------------------")
	for _, r := range rows {
		avg, eff := "—", "—"
		if r.Finished {
			avg = fmt.Sprintf("%.4f", r.AverageTurns)
			eff = fmt.Sprintf("%.2f%%", r.Efficiency*100)
		}
		fmt.Fprintf(w, "%-36s  %-10s  %6d  %6d  %8s  %10s  %s\n",
			r.RunID, r.Strategy, r.Games, r.Failed, avg, eff, r.StartedAt)
	}
	return nil
}

// #endregion list-mode

// #region run-mode

type gameRow struct {
	GameID string `json:"game_id"`
	Answer string `json:"answer"`
	Turns  int    `json:"turns"`
	Solved bool   `json:"solved"`
}

type runDetail struct {
	runRow
	GameList []gameRow `json:"game_list"`
}

func runRunMode(w io.Writer, st *store.Store, runID string, jsonOut bool) error {
	run, err := st.GetRun(runID)
	if err != nil {
		return err
	}
	games, err := st.RunGames(runID)
	if err != nil {
		return err
	}

	detail := runDetail{runRow: toRunRow(run), GameList: make([]gameRow, len(games))}
	for i, g := range games {
		detail.GameList[i] = gameRow{GameID: g.ID, Answer: g.Answer, Turns: g.Turns, Solved: g.Solved}
	}
	if jsonOut {
		return printJSON(w, detail)
	}

	fmt.Fprintf(w, "Run:      %s\n", run.ID)
	fmt.Fprintf(w, "Strategy: %s\n", run.Strategy)
	fmt.Fprintf(w, "Started:  %s\n", detail.StartedAt)
	if run.Finished() {
		fmt.Fprintf(w, "Average:  %.4f over %d games (%d failed), efficiency %.2f%%\n",
			run.AverageTurns, run.Games, run.Failed, run.Efficiency*100)
	} else {
		fmt.Fprintln(w, "Average:  — (run not finished)")
	}

	fmt.Fprintf(w, "\n%-36s  %-6s  %5s  %s\n", "Game", "Answer", "Turns", "Solved")
	fmt.Fprintf(w, "%-36s+-%-6s+-%5s+-%s\n", "------------------------------------", "------", "-----", "------")
	for _, g := range detail.GameList {
		fmt.Fprintf(w, "%-36s  %-6s  %5d  %v\n", g.GameID, g.Answer, g.Turns, g.Solved)
	}
	return nil
}

// #endregion run-mode

// #region game-mode

type turnRow struct {
	Turn      int    `json:"turn"`
	Guess     string `json:"guess"`
	Pattern   string `json:"pattern"`
	Remaining *int   `json:"remaining,omitempty"`
}

func runGameMode(w io.Writer, st *store.Store, gameID string, jsonOut bool) error {
	turns, err := st.GameTurns(gameID)
	if err != nil {
		return err
	}
	if len(turns) == 0 {
		return fmt.Errorf("game %s: %w", gameID, store.ErrNotFound)
	}

	rows := make([]turnRow, len(turns))
	for i, t := range turns {
		rows[i] = turnRow{Turn: t.Turn, Guess: t.Guess, Pattern: t.Pattern}
		if t.Remaining >= 0 {
			rows[i].Remaining = &t.Remaining
		}
	}
	if jsonOut {
		return printJSON(w, rows)
	}

	fmt.Fprintf(w, "%-4s  %-5s  %-7s  %s\n", "Turn", "Guess", "Pattern", "Remaining")
	fmt.Fprintf(w, "%-4s+-%-5s+-%-7s+-%s\n", "----", "-----", "-------", "---------")
	for _, r := range rows {
		rem := "—"
		if r.Remaining != nil {
			rem = fmt.Sprintf("%d", *r.Remaining)
		}
		fmt.Fprintf(w, "%4d  %-5s  %-7s  %s\n", r.Turn, r.Guess, r.Pattern, rem)
	}
	return nil
}

// #endregion game-mode

// #region output

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// #endregion output
