package main

import (
	"flag"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/crystal/catalog"
	"github.com/katalvlaran/crystal/config"
	"github.com/katalvlaran/crystal/geometry"
	"github.com/katalvlaran/crystal/lattice"
	"github.com/katalvlaran/crystal/telemetry"
)

// app holds the flags and the state shared by all commands.
type app struct {
	configPath  string
	geometry    string
	catalogPath string
	metrics     bool

	klogFlags *flag.FlagSet

	cfg       config.Config
	spec      geometry.Spec
	lat       *lattice.Lattice
	cat       *catalog.Catalog
	registry  *prometheus.Registry
	collector *telemetry.Collector
	started   time.Time
}

func newRootCmd(klogFlags *flag.FlagSet) *cobra.Command {
	a := &app{klogFlags: klogFlags}
	root := &cobra.Command{
		Use:   "crystal",
		Short: "Query multi-dimensional crystal lattices",
		Long: `Query the crystal lattices of degree 4 to 14: square faces meeting
four around every vertex, in 2 to 7 dimensions, optionally bitruncated.

Examples:
  crystal structure --geometry 3.5D
  crystal ball 10 --geometry 4D
  crystal distance 4,-2,2 --geometry "3D bitruncated"
  crystal compass 0,80,0 --geometry "3D bitruncated"`,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.finish,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "TOML or YAML settings file")
	root.PersistentFlags().StringVarP(&a.geometry, "geometry", "g", "", `lattice descriptor, e.g. "6", "3.5D", "4D bitruncated"`)
	root.PersistentFlags().StringVar(&a.catalogPath, "catalog", "", "badger directory caching ball and boundary counts")
	root.PersistentFlags().BoolVar(&a.metrics, "metrics", false, "print Prometheus metrics to stderr when done")
	if klogFlags != nil {
		addKlogFlags(root.PersistentFlags(), klogFlags)
	}

	root.AddCommand(
		a.structureCmd(),
		a.ballCmd(),
		a.boundaryCmd(),
		a.distanceCmd(),
		a.compassCmd(),
		a.landmarkCmd(),
		a.menuCmd(),
	)
	return root
}

// setup loads the settings and builds the lattice the command runs on.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.started = time.Now()
	a.cfg = config.Default()
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if a.geometry != "" {
		a.cfg.Geometry = a.geometry
	}
	if a.catalogPath != "" {
		a.cfg.Catalog.Path = a.catalogPath
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	if a.klogFlags != nil && !cmd.Flags().Changed("v") && a.cfg.Log.Verbosity > 0 {
		if err := a.klogFlags.Set("v", strconv.Itoa(a.cfg.Log.Verbosity)); err != nil {
			return errors.Wrap(err, "crystal: setting verbosity")
		}
	}

	var err error
	if a.spec, err = a.cfg.Spec(); err != nil {
		return err
	}
	a.registry = prometheus.NewRegistry()
	if a.collector, err = telemetry.NewCollector(a.registry); err != nil {
		return err
	}
	opts := append(a.cfg.LatticeOptions(), lattice.WithObserver(a.collector))
	if a.lat, err = a.spec.New(opts...); err != nil {
		return err
	}
	if a.cfg.Catalog.Enabled() {
		a.cat, err = catalog.Open(catalog.Options{Path: a.cfg.Catalog.Path, InMemory: a.cfg.Catalog.InMemory})
		if err != nil {
			return err
		}
	}
	klog.V(1).Infof("crystal: %s on %s", cmd.Name(), a.spec)
	return nil
}

func (a *app) finish(cmd *cobra.Command, _ []string) error {
	a.collector.ObserveCommand(cmd.Name(), time.Since(a.started))
	err := a.closeCatalog()
	if a.metrics {
		if werr := telemetry.WriteText(cmd.ErrOrStderr(), a.registry); werr != nil && err == nil {
			err = werr
		}
	}
	return err
}

// run wraps a command body so that a failing command still releases the
// catalog; PersistentPostRunE only runs after success.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if err != nil {
			if cerr := a.closeCatalog(); cerr != nil {
				klog.Errorf("crystal: %v", cerr)
			}
		}
		return err
	}
}

func (a *app) closeCatalog() error {
	if a.cat == nil {
		return nil
	}
	err := a.cat.Close()
	a.cat = nil
	return err
}

// addKlogFlags exposes the klog flags on the command line, keeping only the
// verbosity flags in the help text.
func addKlogFlags(dst *pflag.FlagSet, src *flag.FlagSet) {
	src.VisitAll(func(f *flag.Flag) {
		pf := pflag.PFlagFromGoFlag(f)
		if f.Name != "v" && f.Name != "vmodule" {
			pf.Hidden = true
		}
		dst.AddFlag(pf)
	})
}
