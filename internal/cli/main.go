package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "clipforge <input>",
		Short:        "Extract highlight clips from a local video",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	// Visible flags
	root.Flags().String("out", "", "Output directory")
	root.Flags().Int("clips", 0, "Number of highlight clips")
	root.Flags().Int("pro-clips", -1, "Number of multi-segment clips")
	root.Flags().String("ratio", "", "Target aspect ratio (9:16, 1:1, 16:9)")
	root.Flags().Bool("burn-subs", false, "Burn karaoke subtitles into clips")
	root.Flags().String("config", "", "Config file path")
	root.Flags().BoolP("verbose", "v", false, "Verbose logging")

	// Hidden tuning flags (internal)
	root.Flags().Float64("min", 0, "Min clip duration seconds")
	root.Flags().Float64("max", 0, "Max clip duration seconds")
	_ = root.Flags().MarkHidden("min")
	_ = root.Flags().MarkHidden("max")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
