// Package main is the entry point for the hapticsynth CLI
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hapticlab/hapticsynth/pkg/api"
	"github.com/hapticlab/hapticsynth/pkg/export"
	"github.com/hapticlab/hapticsynth/pkg/pattern"
	"github.com/hapticlab/hapticsynth/pkg/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	outputFile string
	gain       float64
	invert     bool
	serverPort int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hapticsynth",
	Short: "Decode haptic authoring files into unified intensity curves",
	Long: `hapticsynth decodes the three common haptic authoring formats —
.haptic envelope files, .ahap event patterns and .haps melody materials —
into one time-ordered intensity curve.

Examples:
  hapticsynth synth rumble.ahap -o rumble.curve.json
  hapticsynth synth heartbeat.haps --gain 0.8 --invert
  hapticsynth midi rumble.haptic -o rumble.mid
  hapticsynth inspect rumble.ahap
  hapticsynth tui
  hapticsynth serve --port 8080`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var synthCmd = &cobra.Command{
	Use:   "synth <input>",
	Short: "Synthesize an intensity curve and write it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runSynth,
}

var midiCmd = &cobra.Command{
	Use:   "midi <input>",
	Short: "Synthesize an intensity curve and export it as MIDI CC automation",
	Args:  cobra.ExactArgs(1),
	RunE:  runMIDI,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <input>",
	Short: "Print a summary of the synthesized curve",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Starting API server on port %d...\n", serverPort)
		return api.StartServer(serverPort)
	},
}

func init() {
	rootCmd.PersistentFlags().Float64Var(&gain, "gain", 1.0, "Gain multiplier applied to every intensity")
	rootCmd.PersistentFlags().BoolVar(&invert, "invert", false, "Invert output intensities (1 - value*gain)")

	synthCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .json file path")
	midiCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .mid file path")
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")

	rootCmd.AddCommand(synthCmd)
	rootCmd.AddCommand(midiCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
}

func options() pattern.Options {
	return pattern.Options{Gain: gain, Invert: invert}
}

func getOutputPath(input, defaultExt string) string {
	if outputFile != "" {
		return outputFile
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + defaultExt
}

// synthesize decodes the input file, printing parse diagnostics to stderr.
// Per the engine's policy a parse failure is not fatal: the empty curve is
// still usable downstream.
func synthesize(input string) (pattern.IntensityCurve, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return pattern.IntensityCurve{}, err
	}

	curve, synthErr := pattern.SynthesizeFile(input, data, options())
	if synthErr != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (emitting empty curve)\n", synthErr)
	}
	return curve, nil
}

func runSynth(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := getOutputPath(input, ".curve.json")

	curve, err := synthesize(input)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(curve, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, out, 0644); err != nil {
		return err
	}

	fmt.Printf("Synthesized %s -> %s (%d points)\n", input, output, len(curve.Points))
	return nil
}

func runMIDI(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := getOutputPath(input, ".mid")

	curve, err := synthesize(input)
	if err != nil {
		return err
	}

	data, err := export.ToMIDI(curve, export.DefaultMIDIOptions())
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return err
	}

	fmt.Printf("Exported %s -> %s\n", input, output)
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	input := args[0]

	curve, err := synthesize(input)
	if err != nil {
		return err
	}

	fmt.Printf("File:     %s\n", input)
	fmt.Printf("Format:   %s\n", pattern.DetectFormat(input))
	fmt.Printf("Points:   %d\n", len(curve.Points))
	fmt.Printf("Duration: %.3fs\n", curve.Duration())
	fmt.Printf("Peak:     %.3f\n", curve.Peak())
	return nil
}
