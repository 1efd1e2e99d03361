package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"damasgochi/internal/config"
	"damasgochi/internal/engine"
	"damasgochi/internal/pet"
	"damasgochi/internal/ui"
)

const Version = "v0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &flagValues{}

	rootCmd := &cobra.Command{
		Use:           "damasgochi",
		Short:         "Damasgochi - raise a tiny delivery pet in your terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if version, _ := cmd.Flags().GetBool("version"); version {
				fmt.Fprintln(cmd.OutOrStdout(), Version)
				return nil
			}
			return withApp(cmd, flags, func(a *app) error {
				p := tea.NewProgram(ui.NewModel(a.engine))
				if _, err := p.Run(); err != nil {
					return fmt.Errorf("run game: %w", err)
				}
				return nil
			})
		},
	}

	flags.register(rootCmd)
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")

	rootCmd.AddCommand(
		newStatusCmd(flags),
		newActionCmd(flags, "feed", "Give the pet a meal", feedAction),
		newActionCmd(flags, "play", "Play with the pet", playAction),
		newActionCmd(flags, "deliver", "Send the pet on a delivery run", deliverAction),
		newActionCmd(flags, "clean", "Clean up one poop", cleanAction),
		newActionCmd(flags, "sleep", "Put the pet to bed or wake it up", sleepAction),
		newRenameCmd(flags),
		newBuyCmd(flags),
		newReviveCmd(flags),
		newRefillCmd(flags),
		newActionCmd(flags, "reset", "Replace the pet with a new one", resetAction),
		newConfigCmd(flags),
	)

	return rootCmd
}

// withApp opens a session for the duration of run
func withApp(cmd *cobra.Command, flags *flagValues, run func(a *app) error) error {
	cfg, err := flags.loadConfig(cmd)
	if err != nil {
		return err
	}
	a, err := openApp(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	runErr := run(a)
	if err := a.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("close: %w", err)
	}
	return runErr
}

func newStatusCmd(flags *flagValues) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the pet's current stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			interactive, _ := cmd.Flags().GetBool("interactive")
			return withApp(cmd, flags, func(a *app) error {
				snap := a.engine.Snapshot()
				rules := a.engine.Settings().Rules
				if interactive {
					return ui.DisplayStats(snap.Pet, rules)
				}
				fmt.Fprint(cmd.OutOrStdout(), ui.RenderStatsCard(snap.Pet, rules))
				return nil
			})
		},
	}
	cmd.Flags().BoolP("interactive", "i", false, "Show the stats in a full-screen view")
	return cmd
}

// action runs one engine operation and returns the line to print
type action func(a *app) (string, error)

func newActionCmd(flags *flagValues, use, short string, run action) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, flags, run)
		},
	}
}

func runAction(cmd *cobra.Command, flags *flagValues, run action) error {
	return withApp(cmd, flags, func(a *app) error {
		before := a.engine.Snapshot().Pet
		msg, err := run(a)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		if after := a.engine.Snapshot(); after.Pet.Level > before.Level {
			fmt.Fprintf(cmd.OutOrStdout(), "🎉 LEVEL UP! LV.%d 🎉\n", after.Pet.Level)
		}
		return nil
	})
}

func refused(p pet.Pet, why string) error {
	if p.IsDead() {
		return fmt.Errorf("%s has passed away. Use 'revive' or 'reset'", p.Name)
	}
	return fmt.Errorf("%s %s", p.Name, why)
}

func feedAction(a *app) (string, error) {
	p := a.engine.Snapshot().Pet
	if !a.engine.Feed() {
		if p.CanAct() && p.FeedCount <= 0 {
			return "", refused(p, "has no meals left today. Use 'refill feed'")
		}
		return "", refused(p, "can't eat right now")
	}
	p = a.engine.Snapshot().Pet
	return fmt.Sprintf("🍎 Fed %s. Hunger %.1f, %d meals left", p.Name, p.Hunger, p.FeedCount), nil
}

func playAction(a *app) (string, error) {
	p := a.engine.Snapshot().Pet
	if !a.engine.Play() {
		if p.CanAct() && p.PlayCount <= 0 {
			return "", refused(p, "has no plays left today. Use 'refill play'")
		}
		return "", refused(p, "is too tired to play")
	}
	p = a.engine.Snapshot().Pet
	return fmt.Sprintf("🎾 Played with %s. Happiness %.1f, Energy %.1f", p.Name, p.Happiness, p.Energy), nil
}

func deliverAction(a *app) (string, error) {
	p := a.engine.Snapshot().Pet
	xp := pet.DeliverXP + pet.DeliveryBonus(p.CollectedAnimals, a.engine.Settings().Rules)
	result, ok := a.engine.Deliver()
	if !ok {
		return "", refused(p, "can't deliver right now")
	}

	lines := []string{fmt.Sprintf("👕 +%d XP 💨", xp)}
	switch {
	case result.Special:
		def := pet.GetEventDefinition(pet.EventSpecialMission)
		lines = append(lines, fmt.Sprintf("%s %s %s Start the game to take it on next time.", def.Emoji, p.Name, def.Message))
	case result.Gift:
		if animal := a.engine.DrawAnimal(); animal != "" {
			def := pet.GetEventDefinition(pet.EventGiftBox)
			lines = append(lines, fmt.Sprintf("%s %s %s %s joined your friends", def.Emoji, p.Name, def.Message, animal))
		}
	}
	return strings.Join(lines, "\n"), nil
}

func cleanAction(a *app) (string, error) {
	p := a.engine.Snapshot().Pet
	if !a.engine.CleanPoop() {
		if p.IsDead() {
			return "", refused(p, "")
		}
		return "✨ Already clean", nil
	}
	return fmt.Sprintf("🧹 Cleaned up. %d left", a.engine.Snapshot().Pet.PoopCount), nil
}

func sleepAction(a *app) (string, error) {
	p := a.engine.Snapshot().Pet
	if !a.engine.Sleep() {
		return "", refused(p, "can't sleep right now")
	}
	if a.engine.Snapshot().Pet.Status == pet.StatusSleeping {
		return fmt.Sprintf("💤 %s is asleep", p.Name), nil
	}
	return fmt.Sprintf("☀️ %s woke up", p.Name), nil
}

func resetAction(a *app) (string, error) {
	a.engine.Reset()
	return fmt.Sprintf("🐣 A new friend hatched: %s", a.engine.Snapshot().Pet.Name), nil
}

func newRenameCmd(flags *flagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <name>",
		Short: "Give the pet a new name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			return runAction(cmd, flags, func(a *app) (string, error) {
				p := a.engine.Snapshot().Pet
				if !a.engine.Rename(name) {
					if p.IsDead() {
						return "", refused(p, "")
					}
					return "", fmt.Errorf("names need 1 to %d characters", pet.MaxNameLength)
				}
				return fmt.Sprintf("📛 Nice to meet you, %s!", a.engine.Snapshot().Pet.Name), nil
			})
		},
	}
}

func newBuyCmd(flags *flagValues) *cobra.Command {
	return &cobra.Command{
		Use:       "buy <diaper|food|play>",
		Short:     "Spend coins in the shop",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(pet.ItemDiaper), string(pet.ItemFood), string(pet.ItemPlay)},
		RunE: func(cmd *cobra.Command, args []string) error {
			item := pet.Item(strings.ToLower(args[0]))
			return runAction(cmd, flags, func(a *app) (string, error) {
				if !a.engine.Settings().Rules.EconomyEnabled {
					return "", errors.New("the shop is closed without the economy")
				}
				price, ok := a.engine.Price(item)
				if !ok {
					return "", fmt.Errorf("unknown item %q", item)
				}
				p := a.engine.Snapshot().Pet
				if !a.engine.Buy(item) {
					if p.IsDead() {
						return "", refused(p, "")
					}
					return "", fmt.Errorf("not enough coins: %s costs %d, you have %d", item, price, p.Coins)
				}
				return fmt.Sprintf("🛍️ Bought %s. %d coins left", item, a.engine.Snapshot().Pet.Coins), nil
			})
		},
	}
}

func newReviveCmd(flags *flagValues) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revive",
		Short: "Bring the pet back with the payment code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, _ := cmd.Flags().GetString("code")
			return runAction(cmd, flags, func(a *app) (string, error) {
				if !a.engine.RedeemPayment(code, engine.PurchaseRevive) {
					return "", errors.New("invalid code")
				}
				return fmt.Sprintf("✨ %s is back to life!", a.engine.Snapshot().Pet.Name), nil
			})
		},
	}
	cmd.Flags().String("code", "", "Payment code")
	return cmd
}

func newRefillCmd(flags *flagValues) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "refill <feed|play>",
		Short:     "Restore today's meals or plays with the payment code",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"feed", "play"},
		RunE: func(cmd *cobra.Command, args []string) error {
			code, _ := cmd.Flags().GetString("code")
			var what engine.Purchase
			switch strings.ToLower(args[0]) {
			case "feed":
				what = engine.PurchaseRefillFeed
			case "play":
				what = engine.PurchaseRefillPlay
			default:
				return fmt.Errorf("unknown refill %q, want feed or play", args[0])
			}
			return runAction(cmd, flags, func(a *app) (string, error) {
				p := a.engine.Snapshot().Pet
				if p.IsDead() {
					return "", refused(p, "")
				}
				if !a.engine.RedeemPayment(code, what) {
					return "", errors.New("invalid code")
				}
				p = a.engine.Snapshot().Pet
				return fmt.Sprintf("🍎 %d meals and 🎾 %d plays left", p.FeedCount, p.PlayCount), nil
			})
		},
	}
	cmd.Flags().String("code", "", "Payment code")
	return cmd
}

func newConfigCmd(flags *flagValues) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig(cmd)
			if err != nil {
				return err
			}
			return writeTOML(cmd.OutOrStdout(), cfg)
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flags.configPath
			if path == "" {
				path = config.Path()
			}
			force, _ := cmd.Flags().GetBool("force")
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config already exists at %s. Use --force to overwrite", path)
			}
			if err := config.Save(config.Default(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")

	configCmd.AddCommand(showCmd, initCmd)
	return configCmd
}

func writeTOML(w io.Writer, v any) error {
	enc := toml.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
