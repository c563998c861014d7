// Route planner - shortest routes on a road map with A* search.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "route-planner",
	Short: "Shortest routes on a road map",
	Long: `Plan shortest routes between intersections of a road map using A* search
with a straight-line heuristic. Maps are read from JSON, YAML or GeoJSON files;
"map10" and "map40" name the built-in example maps.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
