package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	serveConfig string
	serveListen string
	serveMap    string

	routeMap     string
	routeStart   int
	routeGoal    int
	routeGeoJSON string
	routeJSON    bool

	convertMap string
	convertOut string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP route planning API",
	Long: `Run the HTTP API. Settings come from the YAML config file, and flags
override them.

Examples:
  route-planner serve
  route-planner serve --config planner.yaml
  route-planner serve --map roads.geojson --listen :9090`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Find the shortest route between two intersections",
	Long: `Find the shortest route between two intersections and print it.
Output is JSON when --json is set or stdout is not a terminal.

Examples:
  route-planner route --start 5 --goal 34
  route-planner route --map roads.yaml --start 0 --goal 7 --geojson route.geojson`,
	Args: cobra.NoArgs,
	RunE: runRoute,
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a road map between JSON, YAML and GeoJSON",
	Long: `Read a road map in any supported format and write it in the format
given by the output file extension.

Examples:
  route-planner convert --map map40 --out map40.yaml
  route-planner convert --map roads.geojson --out roads.json`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(serveCmd, routeCmd, convertCmd)

	serveCmd.Flags().StringVar(&serveConfig, "config", "", "YAML config file")
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address (overrides config)")
	serveCmd.Flags().StringVar(&serveMap, "map", "", "Road map file or built-in map name (overrides config)")

	routeCmd.Flags().StringVar(&routeMap, "map", "map40", "Road map file or built-in map name")
	routeCmd.Flags().IntVar(&routeStart, "start", 0, "Start intersection id")
	routeCmd.Flags().IntVar(&routeGoal, "goal", 0, "Goal intersection id")
	routeCmd.Flags().StringVar(&routeGeoJSON, "geojson", "", "Also write the route as GeoJSON to this file")
	routeCmd.Flags().BoolVar(&routeJSON, "json", false, "Print JSON output")
	routeCmd.MarkFlagRequired("start")
	routeCmd.MarkFlagRequired("goal")

	convertCmd.Flags().StringVar(&convertMap, "map", "", "Road map file or built-in map name")
	convertCmd.Flags().StringVar(&convertOut, "out", "", "Output file (.json, .yaml, .geojson)")
	convertCmd.MarkFlagRequired("map")
	convertCmd.MarkFlagRequired("out")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(serveConfig)
	if err != nil {
		return err
	}
	if serveListen != "" {
		cfg.Listen = serveListen
	}
	if serveMap != "" {
		cfg.MapFile = serveMap
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	roadMap, err := OpenRoadMap(cfg.MapFile)
	if err != nil {
		return fmt.Errorf("failed to load road map: %w", err)
	}

	return NewServer(cfg, roadMap).ListenAndServe()
}

func runRoute(cmd *cobra.Command, args []string) error {
	out := outputOf(cmd)

	roadMap, err := OpenRoadMap(routeMap)
	if err != nil {
		return fmt.Errorf("failed to load road map: %w", err)
	}

	planner, err := NewPathPlanner(roadMap, WithStart(routeStart), WithGoal(routeGoal))
	if err != nil {
		return err
	}
	result, _ := planner.Result()

	if routeGeoJSON != "" {
		data, err := json.MarshalIndent(RouteFeatureCollection(roadMap, result), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal route: %w", err)
		}
		if err := os.WriteFile(routeGeoJSON, data, 0644); err != nil {
			return fmt.Errorf("failed to write GeoJSON file: %w", err)
		}
	}

	if routeJSON || !isTerminal(out) {
		if result.Path == nil {
			result.Path = []int{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	writeRouteText(out, routeStart, routeGoal, result)
	return nil
}

// writeRouteText prints a result for people reading a terminal
func writeRouteText(out io.Writer, start, goal int, result Result) {
	if !result.Found {
		fmt.Fprintf(out, "No path found from %d to %d (%d intersections expanded)\n",
			start, goal, result.Expanded)
		return
	}

	steps := make([]string, len(result.Path))
	for i, id := range result.Path {
		steps[i] = strconv.Itoa(id)
	}
	fmt.Fprintf(out, "Path:     %s\n", strings.Join(steps, " → "))
	fmt.Fprintf(out, "Distance: %.4f m\n", result.Cost)
	fmt.Fprintf(out, "Expanded: %d intersections\n", result.Expanded)
}

func runConvert(cmd *cobra.Command, args []string) error {
	roadMap, err := OpenRoadMap(convertMap)
	if err != nil {
		return fmt.Errorf("failed to load road map: %w", err)
	}
	if err := SaveRoadMap(roadMap, convertOut); err != nil {
		return err
	}
	fmt.Fprintf(outputOf(cmd), "Road map written to %s\n", convertOut)
	return nil
}

func outputOf(cmd *cobra.Command) io.Writer {
	if cmd == nil {
		return os.Stdout
	}
	return cmd.OutOrStdout()
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
