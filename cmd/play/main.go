// Command play runs a Durak session from the command line: a Cobra flag
// tree for quick games, or a Viper-loaded YAML roster file for named
// per-seat policies, wired into internal/driver. Replaces the teacher's
// bespoke interactive bufio.Scanner menu loop (BigInteger28-Azen's
// cmd/play/main.go) with the CLI stack named in SPEC_FULL.md's Ambient
// Stack section.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/azen-engine/internal/driver"
	"github.com/azen-engine/internal/durak"
	"github.com/azen-engine/internal/engine"
	"github.com/azen-engine/internal/stdio"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		numPlayers int
		policyFlag string
		rollouts   int
		deals      int
		threads    int
		explConst  float64
		seed       int64
		logLevel   string
		roster     string
		logFile    string
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a Durak game against D-MCTS or random opponents",
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
				Level(level).With().Timestamp().Logger()

			var players []driver.PlayerConfig
			if roster != "" {
				players, err = loadRoster(roster)
				if err != nil {
					return err
				}
			} else {
				players, err = defaultRoster(numPlayers, policyFlag, engine.Config{
					Rollouts: rollouts, Deals: deals, Threads: threads, ExplorationConstant: explConst,
				})
				if err != nil {
					return err
				}
			}

			rng := rand.New(rand.NewSource(seed))
			oracle := stdio.New()
			sess, err := driver.NewSession(players, 0, durak.ComputerShuffle, oracle, rng, logger)
			if err != nil {
				return err
			}

			loser, err := sess.Run()
			if err != nil {
				return err
			}
			fmt.Printf("game over — loser: %s\n", loser)

			if logFile != "" {
				if err := sess.SaveLog(logFile); err != nil {
					return err
				}
				fmt.Printf("game log saved to %s\n", logFile)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&numPlayers, "players", 2, "number of players (2-6)")
	cmd.Flags().StringVar(&policyFlag, "policy", "dmcts", "policy for non-seat-0 players: random|human|dmcts")
	cmd.Flags().IntVar(&rollouts, "rollouts", engine.DefaultConfig().Rollouts, "D-MCTS rollouts per deal")
	cmd.Flags().IntVar(&deals, "deals", engine.DefaultConfig().Deals, "D-MCTS determinizations per decision")
	cmd.Flags().IntVar(&threads, "threads", engine.DefaultConfig().Threads, "D-MCTS worker threads")
	cmd.Flags().Float64Var(&explConst, "exploration-constant", engine.DefaultExplorationConstant, "UCT exploration constant")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "master RNG seed")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "zerolog level: debug|info|warn|error")
	cmd.Flags().StringVar(&roster, "config", "", "path to a YAML player-roster file (see SPEC_FULL.md §6)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "path to save a JSON game log after the game ends (see SPEC_FULL.md §4.I)")

	return cmd
}

func defaultRoster(numPlayers int, policyName string, cfg engine.Config) ([]driver.PlayerConfig, error) {
	players := make([]driver.PlayerConfig, numPlayers)
	players[0] = driver.PlayerConfig{Name: "you", Policy: engine.HumanPolicy{}}
	for i := 1; i < numPlayers; i++ {
		policy, err := makePolicy(policyName, cfg, rand.New(rand.NewSource(int64(i)+1)), false)
		if err != nil {
			return nil, err
		}
		players[i] = driver.PlayerConfig{Name: fmt.Sprintf("bot-%d", i), Policy: policy}
	}
	return players, nil
}

// makePolicy maps a policy name to a concrete engine.Policy. An unrecognized
// name is a configuration error per spec.md §7 — it must abort setup with a
// clear diagnostic, not silently fall back to a default policy.
func makePolicy(kind string, cfg engine.Config, rng *rand.Rand, confirm bool) (engine.Policy, error) {
	switch kind {
	case "random":
		return engine.RandomPolicy{Rng: rng}, nil
	case "human":
		return engine.HumanPolicy{}, nil
	case "", "dmcts":
		return engine.DMCTSPolicy{Config: cfg, Rng: rng, Confirm: confirm}, nil
	default:
		return nil, errors.Wrapf(durak.ErrConfiguration, "unknown policy kind %q", kind)
	}
}

type rosterEntry struct {
	Name                string  `mapstructure:"name"`
	Policy              string  `mapstructure:"policy"`
	Rollouts            int     `mapstructure:"rollouts"`
	Deals               int     `mapstructure:"deals"`
	Threads             int     `mapstructure:"threads"`
	ExplorationConstant float64 `mapstructure:"exploration_constant"`
	Confirm             bool    `mapstructure:"confirm"`
}

// loadRoster reads a per-seat player configuration file via Viper, per
// SPEC_FULL.md §6 "Player configuration file".
func loadRoster(path string) ([]driver.PlayerConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var entries []rosterEntry
	if err := v.UnmarshalKey("players", &entries); err != nil {
		return nil, err
	}
	out := make([]driver.PlayerConfig, 0, len(entries))
	for i, e := range entries {
		cfg := engine.Config{
			Rollouts:            e.Rollouts,
			Deals:               e.Deals,
			Threads:             e.Threads,
			ExplorationConstant: e.ExplorationConstant,
		}
		if cfg.ExplorationConstant == 0 {
			cfg.ExplorationConstant = engine.DefaultExplorationConstant
		}
		rng := rand.New(rand.NewSource(int64(i) + 1))
		policy, err := makePolicy(e.Policy, cfg, rng, e.Confirm)
		if err != nil {
			return nil, errors.Wrapf(err, "player %d (%s)", i, e.Name)
		}
		out = append(out, driver.PlayerConfig{Name: e.Name, Policy: policy})
	}
	return out, nil
}
