package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var difficultiesCmd = &cobra.Command{
	Use:   "difficulties",
	Short: "List difficulty presets",
	Long:  `Shows the speed, score multiplier and power-up setting of each preset.`,
	Args:  cobra.NoArgs,
	Run:   runDifficulties,
}

func runDifficulties(_ *cobra.Command, _ []string) {
	def := config.DefaultDifficulty()

	fmt.Println("Difficulty presets:")
	fmt.Println()

	// Print header
	fmt.Printf("  %-8s  %-8s  %-10s  %s\n", "Preset", "Ticks/s", "Multiplier", "Power-ups")
	fmt.Printf("  %-8s  %-8s  %-10s  %s\n", "------", "-------", "----------", "---------")

	for _, d := range config.Difficulties() {
		powerups := "off"
		if d.PowerupsEnabled {
			powerups = "on"
		}
		name := string(d.Preset)
		if d.Preset == def.Preset {
			name += "*"
		}
		fmt.Printf("  %-8s  %-8d  x%-9.1f  %s\n", name, d.TicksPerSecond, d.ScoreMultiplier, powerups)
	}

	fmt.Println()
	fmt.Println("* default. Run 'snake play --difficulty <preset>' to pick one.")
}
