// Package config centralizes the flags, environment variables, and
// optional YAML file that configure both the server and the benchmark
// CLI, following the same BIKEROUTE_-prefixed env convention for both.
package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Server holds every setting the HTTP server needs.
type Server struct {
	GraphPath    string
	ElevationDir string
	Port         int
	CORSOrigin   string
	ConfigFile   string
}

// LoadServer parses CLI flags (falling back to BIKEROUTE_*-prefixed
// environment variables, then an optional YAML config file) into a
// Server config. flags lets callers pass os.Args[1:] explicitly so the
// function stays testable.
func LoadServer(flags []string) (Server, error) {
	fs := pflag.NewFlagSet("bikeroute-server", pflag.ContinueOnError)
	fs.String("graph", "graph.fmi", "path to the .fmi graph file")
	fs.String("elevation-dir", "", "directory of SRTM .hgt tiles (default: sibling 'srtm' dir next to --graph)")
	fs.Int("port", 8080, "HTTP port")
	fs.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	fs.String("config", "", "optional YAML config file")
	if err := fs.Parse(flags); err != nil {
		return Server{}, err
	}

	v := viper.New()
	v.SetEnvPrefix("BIKEROUTE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return Server{}, err
	}

	if cfgFile, _ := fs.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Server{}, err
		}
	}

	return Server{
		GraphPath:    v.GetString("graph"),
		ElevationDir: v.GetString("elevation-dir"),
		Port:         v.GetInt("port"),
		CORSOrigin:   v.GetString("cors-origin"),
		ConfigFile:   v.GetString("config"),
	}, nil
}

// Benchmark holds every setting the benchmark CLI needs.
type Benchmark struct {
	GraphPath        string
	ElevationDir     string
	QuePath          string
	Lat, Lon         float64
	HasLatLon        bool
	Source           int
	Weight           float64
	Profile          bool
	ReportComponents bool
	ConfigFile       string
}

// LoadBenchmark parses the benchmark CLI's flags (falling back to
// BIKEROUTE_*-prefixed environment variables, then an optional YAML
// config file) into a Benchmark config, the same env/file layering
// LoadServer gives the HTTP server. HasLatLon reports whether both
// -lat and -lon were explicitly set on the command line (flags, not
// env or file, since "run a nearest-node lookup" is a per-invocation
// action rather than a persistent setting).
func LoadBenchmark(flags []string) (Benchmark, error) {
	fs := pflag.NewFlagSet("bikeroute-benchmark", pflag.ContinueOnError)
	fs.String("graph", "", "path to the .fmi graph file (required)")
	fs.String("elevation-dir", "", "directory of SRTM .hgt tiles (default: sibling 'srtm' dir next to --graph)")
	fs.String("que", "", "path to a .que query file; if set, process each query and print one cost per line")
	fs.Float64("lat", 0, "latitude; if set together with --lon, run a nearest-node lookup")
	fs.Float64("lon", 0, "longitude; if set together with --lat, run a nearest-node lookup")
	fs.Int("s", -1, "source node id for a single one-to-all run")
	fs.Float64("w", 1.0, "weight w used for the -s one-to-all run")
	fs.Bool("profile", false, "write a CPU profile for this run")
	fs.Bool("report-components", false, "log connected-component sizes after loading")
	fs.String("config", "", "optional YAML config file")

	// Accept the single-dash long form (-graph x) as well as --graph x.
	args := make([]string, len(flags))
	for i, a := range flags {
		name := strings.TrimPrefix(a, "-")
		if j := strings.IndexByte(name, '='); j >= 0 {
			name = name[:j]
		}
		if strings.HasPrefix(a, "-") && !strings.HasPrefix(a, "--") && fs.Lookup(name) != nil {
			a = "-" + a
		}
		args[i] = a
	}
	if err := fs.Parse(args); err != nil {
		return Benchmark{}, err
	}

	v := viper.New()
	v.SetEnvPrefix("BIKEROUTE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return Benchmark{}, err
	}

	if cfgFile, _ := fs.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Benchmark{}, err
		}
	}

	return Benchmark{
		GraphPath:        v.GetString("graph"),
		ElevationDir:     v.GetString("elevation-dir"),
		QuePath:          v.GetString("que"),
		Lat:              v.GetFloat64("lat"),
		Lon:              v.GetFloat64("lon"),
		HasLatLon:        fs.Changed("lat") && fs.Changed("lon"),
		Source:           v.GetInt("s"),
		Weight:           v.GetFloat64("w"),
		Profile:          v.GetBool("profile"),
		ReportComponents: v.GetBool("report-components"),
		ConfigFile:       v.GetString("config"),
	}, nil
}
