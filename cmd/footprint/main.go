package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/samirrijal/footprint/internal/adapters/kml"
	"github.com/samirrijal/footprint/internal/adapters/polyline"
	"github.com/samirrijal/footprint/internal/adapters/s2index"
	"github.com/samirrijal/footprint/internal/core/domain"
	"github.com/samirrijal/footprint/internal/core/ports"
	"github.com/samirrijal/footprint/internal/core/usecases"
	"github.com/samirrijal/footprint/internal/pkg/config"
	"github.com/samirrijal/footprint/internal/pkg/logging"
	"github.com/samirrijal/footprint/internal/pkg/metrics"
)

var errUsage = errors.New("usage")

func main() {
	args := os.Args[1:]
	if code, done := usageOnly(args, os.Stdout, os.Stderr); done {
		os.Exit(code)
	}

	cfg, err := config.Load("footprint")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	observers := []ports.FootprintObserver{logging.Observer{Logger: logger}}
	if cfg.Metrics.Enabled {
		observers = append(observers, metrics.Observer{})
	}

	index := s2index.New()
	app := &cli{
		svc:   usecases.NewFootprintService(index, cfg.FootprintParams(), observers...),
		index: index,
		out:   os.Stdout,
	}

	err = app.run(args)

	if cfg.Metrics.Enabled {
		if werr := metrics.WriteTextfile(cfg.Metrics.Textfile); werr != nil {
			slog.Warn("metrics textfile not written", "error", werr)
		}
	}

	if errors.Is(err, errUsage) {
		if err != errUsage {
			fmt.Fprintf(os.Stderr, "%v\n\n", err)
		}
		printUsage(os.Stderr)
		os.Exit(2)
	}
	if err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// usageOnly answers help requests and a missing command without loading
// config, so a broken config file never hides the usage text.
func usageOnly(args []string, stdout, stderr io.Writer) (code int, done bool) {
	if len(args) == 0 {
		printUsage(stderr)
		return 2, true
	}
	switch args[0] {
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0, true
	}
	return 0, false
}

// cli dispatches subcommands to the footprint service.
type cli struct {
	svc   *usecases.FootprintService
	index ports.CellIndex
	out   io.Writer
}

func (c *cli) run(args []string) error {
	if len(args) < 1 {
		return errUsage
	}

	command, rest := args[0], args[1:]
	switch command {
	case "cell":
		return c.handleCell(rest)
	case "path":
		return c.handlePath(rest)
	case "range":
		return c.handleRange(rest)
	case "seen":
		return c.handleSeen(rest)
	case "project":
		return c.handleProject(rest)
	case "distance":
		return c.handleDistance(rest)
	case "in-range":
		return c.handleInRange(rest)
	case "route":
		return c.handleRoute(rest)
	case "kml":
		return c.handleKML(rest)
	case "params":
		return c.writeJSON(c.svc.Params())
	case "help":
		printUsage(c.out)
		return nil
	default:
		return fmt.Errorf("unknown command %q: %w", command, errUsage)
	}
}

func (c *cli) handleCell(args []string) error {
	fs := newFlagSet("cell")
	point := pointFlags(fs, "lat", "lng", "")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	p, err := point()
	if err != nil {
		return err
	}

	return c.writeJSON(c.svc.LocationCell(p))
}

func (c *cli) handlePath(args []string) error {
	fs := newFlagSet("path")
	point := pointFlags(fs, "lat", "lng", "")
	idsOnly := fs.Bool("ids", false, "Print sorted cell identifiers instead of the walk")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	p, err := point()
	if err != nil {
		return err
	}

	if *idsOnly {
		return c.writeJSON(c.svc.CellPathIDs(p))
	}
	return c.writeJSON(c.svc.CellPath(p))
}

func (c *cli) handleRange(args []string) error {
	fs := newFlagSet("range")
	point := pointFlags(fs, "lat", "lng", "")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	p, err := point()
	if err != nil {
		return err
	}

	return c.writeJSON(c.svc.CellRange(p))
}

func (c *cli) handleSeen(args []string) error {
	fs := newFlagSet("seen")
	steps := stepFlags(fs)
	lat := fs.String("lat", "", "Latitude of the feature")
	lng := fs.String("lng", "", "Longitude of the feature")
	featuresStr := fs.String("features", "", "Features as \"lat,lng;lat,lng\"; prints those not yet seen")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	stepPoints, err := steps()
	if err != nil {
		return err
	}
	ranges := c.svc.RouteRanges(stepPoints)

	if *featuresStr != "" {
		features, err := parseCoordinatePairs(*featuresStr)
		if err != nil {
			return err
		}
		unseen := c.svc.UnseenFeatures(features, ranges)
		if unseen == nil {
			unseen = []domain.GeoPoint{}
		}
		return c.writeJSON(map[string]any{"unseen": unseen})
	}

	p, err := parsePoint(*lat, *lng)
	if err != nil {
		return err
	}
	return c.writeJSON(map[string]any{"point": p, "seen": c.svc.AlreadySeen(p, ranges)})
}

func (c *cli) handleProject(args []string) error {
	fs := newFlagSet("project")
	point := pointFlags(fs, "lat", "lng", "origin ")
	distanceKm := fs.Float64("distance-km", 0, "Distance to travel in kilometers")
	bearing := fs.Float64("bearing", 0, "Initial bearing in degrees clockwise from north")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	p, err := point()
	if err != nil {
		return err
	}

	return c.writeJSON(c.svc.Project(p, *distanceKm, *bearing))
}

func (c *cli) handleDistance(args []string) error {
	fs := newFlagSet("distance")
	from := pointFlags(fs, "lat1", "lng1", "first ")
	to := pointFlags(fs, "lat2", "lng2", "second ")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	a, err := from()
	if err != nil {
		return err
	}
	b, err := to()
	if err != nil {
		return err
	}

	return c.writeJSON(map[string]float64{"distance_m": c.svc.Distance(a, b)})
}

func (c *cli) handleInRange(args []string) error {
	fs := newFlagSet("in-range")
	step := pointFlags(fs, "lat", "lng", "step ")
	feature := pointFlags(fs, "feature-lat", "feature-lng", "feature ")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	s, err := step()
	if err != nil {
		return err
	}
	f, err := feature()
	if err != nil {
		return err
	}

	return c.writeJSON(c.svc.CheckVisibility(s, f))
}

func (c *cli) handleRoute(args []string) error {
	fs := newFlagSet("route")
	steps := stepFlags(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	points, err := steps()
	if err != nil {
		return err
	}

	return c.writeJSON(c.svc.RouteFootprints(points))
}

func (c *cli) handleKML(args []string) error {
	fs := newFlagSet("kml")
	point := pointFlags(fs, "lat", "lng", "")
	name := fs.String("name", "footprint", "Document name")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	p, err := point()
	if err != nil {
		return err
	}

	return kml.WriteFootprint(c.out, *name, p, c.svc.CellPath(p), c.index)
}

func (c *cli) writeJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%s: %v: %w", fs.Name(), err, errUsage)
	}
	return nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// pointFlags registers a latitude/longitude flag pair and returns a function
// that validates them after parsing.
func pointFlags(fs *flag.FlagSet, latName, lngName, label string) func() (domain.GeoPoint, error) {
	lat := fs.String(latName, "", "Latitude of the "+label+"point")
	lng := fs.String(lngName, "", "Longitude of the "+label+"point")
	return func() (domain.GeoPoint, error) {
		return parsePoint(*lat, *lng)
	}
}

// stepFlags registers --steps and --polyline and returns a function that
// yields the step points from whichever was given.
func stepFlags(fs *flag.FlagSet) func() ([]domain.GeoPoint, error) {
	stepsStr := fs.String("steps", "", "Step locations as \"lat,lng;lat,lng\"")
	encoded := fs.String("polyline", "", "Step locations as an encoded polyline")
	return func() ([]domain.GeoPoint, error) {
		switch {
		case *stepsStr != "" && *encoded != "":
			return nil, fmt.Errorf("--steps and --polyline are mutually exclusive: %w", errUsage)
		case *stepsStr != "":
			return parseCoordinatePairs(*stepsStr)
		case *encoded != "":
			points, err := polyline.Decode(*encoded)
			if err != nil {
				return nil, err
			}
			for _, p := range points {
				if err := p.Validate(); err != nil {
					return nil, err
				}
			}
			return points, nil
		default:
			return nil, fmt.Errorf("--steps or --polyline is required: %w", errUsage)
		}
	}
}

func parsePoint(latStr, lngStr string) (domain.GeoPoint, error) {
	if latStr == "" || lngStr == "" {
		return domain.GeoPoint{}, fmt.Errorf("latitude and longitude are required: %w", errUsage)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("invalid latitude %q", latStr)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("invalid longitude %q", lngStr)
	}

	p := domain.GeoPoint{Lat: lat, Lon: lng}
	if err := p.Validate(); err != nil {
		return domain.GeoPoint{}, err
	}
	return p, nil
}

// parseCoordinatePairs parses "lat,lng;lat,lng" into points.
func parseCoordinatePairs(coordStr string) ([]domain.GeoPoint, error) {
	pairs := strings.Split(coordStr, ";")
	points := make([]domain.GeoPoint, 0, len(pairs))

	for _, pair := range pairs {
		if strings.TrimSpace(pair) == "" {
			continue
		}
		coords := strings.Split(strings.TrimSpace(pair), ",")
		if len(coords) != 2 {
			return nil, fmt.Errorf("invalid coordinate pair: %s", pair)
		}
		p, err := parsePoint(coords[0], coords[1])
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("no coordinates in %q: %w", coordStr, errUsage)
	}
	return points, nil
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `footprint - scan footprint calculator

USAGE:
    footprint <command> [options]

COMMANDS:
    cell        Location cell of a point
    path        Cells walked along the curve from a point (--ids for sorted identifiers)
    range       Lowest and highest cell identifiers of a point's walk
    seen        Whether a point, or which --features, fall inside the footprints of --steps
    project     Point reached from an origin by distance and bearing
    distance    Great-circle distance between two points in meters
    in-range    Whether a feature is within visibility range of a step
    route       Footprint of every step of a route
    kml         Footprint of a point as a KML document
    params      Scan model in effect after config and environment overrides
    help        Show this help message

EXAMPLES:
    footprint path --lat 43.263 --lng -2.935
    footprint seen --steps "43.263,-2.935;43.265,-2.930" --lat 43.2631 --lng -2.9351
    footprint seen --polyline "_p~iF~ps|U_ulLnnqC" --features "38.5,-120.2;39,-120"
    footprint project --lat 43.263 --lng -2.935 --distance-km 0.07 --bearing 90
    footprint in-range --lat 43.263 --lng -2.935 --feature-lat 43.2633 --feature-lng -2.935

CONFIGURATION:
    config.yaml in . or ./configs, .env, and FOOTPRINT_* environment variables,
    e.g. FOOTPRINT_FOOTPRINT_VISIBILITY_RADIUS_METERS=40 FOOTPRINT_LOG_LEVEL=debug
`)
}
