// SPDX-License-Identifier: MIT
// netroute finds shortest paths over a line network read from GeoJSON or a
// shapefile.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/katalvlaran/netroute/config"
	"github.com/katalvlaran/netroute/layer"
	"github.com/katalvlaran/netroute/network"
	"github.com/katalvlaran/netroute/routing"
	"github.com/katalvlaran/netroute/server"
)

const helpMessage = `
netroute finds the shortest path between two points over a line network.

Usage: netroute [options] -network <file.geojson|file.shp>

  -network     (string)  GeoJSON FeatureCollection or .shp polyline shapefile (required)
  -from        (x,y)     Source point
  -to          (x,y)     Destination point
  -condensed   (flag)    Route over the condensed graph
  -tolerance   (int)     Snap tolerance in map units
  -config      (string)  TOML configuration file
  -stats       (flag)    Print network statistics and exit
  -serve       (flag)    Serve the HTTP API
  -addr        (string)  Listen address for -serve
  -h, -help    (flag)    Show help message

The route is written to stdout as a GeoJSON Feature.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	network    string
	from, to   string
	condensed  bool
	tolerance  int
	configPath string
	stats      bool
	serve      bool
	addr       string
	help       bool
}

func parseFlags(args []string, stderr io.Writer) (options, map[string]bool, error) {
	var o options
	fs := flag.NewFlagSet("netroute", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, helpMessage) }
	fs.StringVar(&o.network, "network", "", "")
	fs.StringVar(&o.from, "from", "", "")
	fs.StringVar(&o.to, "to", "", "")
	fs.BoolVar(&o.condensed, "condensed", false, "")
	fs.IntVar(&o.tolerance, "tolerance", 0, "")
	fs.StringVar(&o.configPath, "config", "", "")
	fs.BoolVar(&o.stats, "stats", false, "")
	fs.BoolVar(&o.serve, "serve", false, "")
	fs.StringVar(&o.addr, "addr", "", "")
	fs.BoolVar(&o.help, "help", false, "")
	fs.BoolVar(&o.help, "h", false, "")
	if err := fs.Parse(args); err != nil {
		return o, nil, err
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	return o, set, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	o, set, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}
	if o.help {
		fmt.Fprint(stderr, helpMessage)
		return 0
	}
	if o.network == "" {
		fmt.Fprintln(stderr, "netroute: -network is required")
		return 2
	}

	cfg := config.Default()
	if o.configPath != "" {
		if cfg, err = config.Load(o.configPath); err != nil {
			fmt.Fprintln(stderr, "netroute:", err)
			return 1
		}
	}
	if set["condensed"] {
		cfg.Routing.Condensed = o.condensed
	}
	if set["tolerance"] {
		cfg.Routing.MaxTolerance = o.tolerance
	}
	if o.addr != "" {
		cfg.Server.Address = o.addr
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, "netroute:", err)
		return 2
	}

	logger, closer, err := cfg.Log.NewLogger()
	if err != nil {
		fmt.Fprintln(stderr, "netroute:", err)
		return 1
	}
	defer closer.Close()

	src, idx, err := loadNetwork(o.network, cfg, logger)
	if err != nil {
		fmt.Fprintln(stderr, "netroute:", err)
		return 1
	}

	switch {
	case o.stats:
		st, err := network.Summarize(context.Background(), idx)
		if err != nil {
			fmt.Fprintln(stderr, "netroute:", err)
			return 1
		}
		printStats(stdout, st)
		return 0
	case o.serve:
		h := server.NewRoutingHandler(src, idx, logger, cfg.RoutingOptions(logger)...)
		if cfg.Server.CacheSize > 0 {
			h.EnableCache(cfg.Server.CacheSize<<20, time.Duration(cfg.Server.CacheTTL)*time.Second)
		}
		logger.Info("serving routing API", "addr", cfg.Server.Address)
		srv := server.NewHTTPServer(cfg.Server.Address, server.New(h, cfg.Server.AllowedOrigins))
		if err := srv.ListenAndServe(); err != nil {
			fmt.Fprintln(stderr, "netroute:", err)
			return 1
		}
		return 0
	}

	from, err := parsePoint(o.from)
	if err != nil {
		fmt.Fprintln(stderr, "netroute: -from:", err)
		return 2
	}
	to, err := parsePoint(o.to)
	if err != nil {
		fmt.Fprintln(stderr, "netroute: -to:", err)
		return 2
	}

	route, err := findRoute(src, idx, cfg, logger, from, to)
	if err != nil {
		fmt.Fprintf(stderr, "netroute: %s: %v\n", routing.KindOf(err), err)
		return 1
	}

	f := geojson.NewFeature(route.Path)
	f.Properties["cost"] = route.Cost
	f.Properties["condensed"] = route.Condensed
	enc := json.NewEncoder(stdout)
	if err := enc.Encode(f); err != nil {
		fmt.Fprintln(stderr, "netroute:", err)
		return 1
	}

	return 0
}

func loadNetwork(path string, cfg config.Config, logger *slog.Logger) (*layer.MemoryLayer, *network.Index, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	var l *layer.MemoryLayer
	if strings.EqualFold(filepath.Ext(path), ".shp") {
		l, err = layer.OpenShapefile(path)
	} else {
		l, err = layer.OpenGeoJSONFile(path)
	}
	if err != nil {
		return nil, nil, err
	}
	keyer, err := network.NewKeyer(cfg.Routing.Precision)
	if err != nil {
		return nil, nil, err
	}
	idx, err := network.NewIndex(l, keyer)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("network loaded", "file", path, "size", humanize.Bytes(uint64(fi.Size())), "lines", idx.Len())

	return l, idx, nil
}

func findRoute(src layer.FeatureSource, idx *network.Index, cfg config.Config, logger *slog.Logger, from, to orb.Point) (*routing.Route, error) {
	sys, err := routing.NewSystem(cfg.RoutingOptions(logger)...)
	if err != nil {
		return nil, err
	}
	if err := sys.SetAnalysisNetwork(src, idx); err != nil {
		return nil, err
	}
	if err := sys.SetUserSource(from); err != nil {
		return nil, err
	}
	if err := sys.SetUserDestination(to); err != nil {
		return nil, err
	}

	return sys.Analyze()
}

func printStats(w io.Writer, st network.Stats) {
	fmt.Fprintf(w, "lines:        %s\n", humanize.Comma(int64(st.Lines)))
	fmt.Fprintf(w, "vertices:     %s\n", humanize.Comma(int64(st.Vertices)))
	fmt.Fprintf(w, "edges:        %s\n", humanize.Comma(int64(st.Edges)))
	fmt.Fprintf(w, "components:   %s\n", humanize.Comma(int64(st.Components)))
	fmt.Fprintf(w, "total length: %s\n", humanize.CommafWithDigits(st.TotalLength, 3))
}

// parsePoint parses "x,y".
func parsePoint(s string) (orb.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return orb.Point{}, errors.New("want x,y")
	}
	var p orb.Point
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return orb.Point{}, fmt.Errorf("bad coordinate %q", part)
		}
		p[i] = v
	}

	return p, nil
}
