package main

import (
	"fmt"
	"math/big"
	"math/rand"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/crystal/coord"
	"github.com/katalvlaran/crystal/geometry"
	"github.com/katalvlaran/crystal/lattice"
)

func parseRadius(s string) (int, error) {
	r, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(err, "crystal: radius %q", s)
	}
	return r, nil
}

// node resolves a coordinate argument to a lattice node.
func (a *app) node(arg string) (lattice.Handle, error) {
	c, err := geometry.ParseCoord(arg)
	if err != nil {
		return lattice.NoNode, err
	}
	return a.lat.NodeAt(c)
}

func (a *app) structureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "structure",
		Short: "Print the cycle table of the selected lattice",
		Long: `Print, for every vertex identity, the cyclic order of edge codes.
Code 2k+1 walks axis k forward, code 2k backward.`,
		Args: cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			s := a.lat.Structure()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: degree %d, %d axes, %d vertex identities\n",
				a.spec, s.Degree(), s.Dimension(), s.Vertices())
			for id, row := range s.Table() {
				codes := make([]string, len(row))
				for i, code := range row {
					codes[i] = strconv.Itoa(code)
				}
				fmt.Fprintf(out, "%3d: %s\n", id, strings.Join(codes, " "))
			}
			return nil
		}),
	}
}

func (a *app) ballCmd() *cobra.Command {
	var euclidean bool
	cmd := &cobra.Command{
		Use:   "ball RADIUS",
		Short: "Count the nodes within a radius",
		Long: `Count the nodes within graph distance RADIUS of a node (pure lattices),
or with --euclidean the nodes within Euclidean distance RADIUS of the origin
(both variations). Graph counts go through the catalog when one is set.`,
		Args: cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			r, err := parseRadius(args[0])
			if err != nil {
				return err
			}
			var n *big.Int
			switch {
			case euclidean:
				n, err = a.lat.EuclideanBallCount(coord.LD{}, float64(r))
			case a.cat != nil:
				n, err = a.cat.BallCount(a.lat, r)
			default:
				n, err = a.lat.BallCount(r)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&euclidean, "euclidean", false, "count by Euclidean distance from the origin")
	return cmd
}

func (a *app) boundaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "boundary RADIUS",
		Short: "Count the nodes at exactly a graph distance (pure lattices)",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			r, err := parseRadius(args[0])
			if err != nil {
				return err
			}
			var n *big.Int
			if a.cat != nil {
				n, err = a.cat.BoundaryCount(a.lat, r)
			} else {
				n, err = a.lat.BoundaryCount(r)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		}),
	}
}

func (a *app) distanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "distance COORD [COORD]",
		Short: "Print the graph distance from the origin, or between two nodes",
		Long: `Print the graph distance between two nodes given as comma-separated
coordinates, e.g. "4,-2,2". With one coordinate the other end is the origin.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			from := a.lat.Origin()
			to, err := a.node(args[0])
			if err != nil {
				return err
			}
			if len(args) == 2 {
				from = to
				if to, err = a.node(args[1]); err != nil {
					return err
				}
			}
			d := a.lat.Distance(from, to)
			if d == lattice.NotFound {
				return errors.Errorf("crystal: no path found between %s and %s",
					a.lat.Coord(from).Format(a.lat.Dimension()), a.lat.Coord(to).Format(a.lat.Dimension()))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d (euclidean %.4f)\n", d, a.lat.SpaceDistance(from, to))
			return nil
		}),
	}
}

func (a *app) compassCmd() *cobra.Command {
	var info bool
	cmd := &cobra.Command{
		Use:   "compass [COORD]",
		Short: "Read the compass at a node",
		Long: `Print the signed distance of a node toward infinity along the compass
axis: 0 at the origin, negative behind it. The first call runs the warm-up;
--info describes the accepted period.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if info || len(args) == 0 {
				ci, err := a.lat.CompassInfo()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "axis %d, period %d, cycle %d, zero shift %d, %d representatives from %d nodes in %d layers\n",
					ci.Axis, ci.Period, ci.Cycle, ci.ZeroShift, ci.Representatives, ci.Listed, ci.Layers)
			}
			if len(args) == 0 {
				return nil
			}
			h, err := a.node(args[0])
			if err != nil {
				return err
			}
			d, err := a.lat.CompassDistance(h)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, d)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&info, "info", false, "describe the accepted period")
	return cmd
}

func (a *app) landmarkCmd() *cobra.Command {
	var seed int64
	cmd := &cobra.Command{
		Use:   "landmark RADIUS",
		Short: "Place a landmark by random walk and print its centre and volume",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			r, err := parseRadius(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") {
				seed = a.cfg.Landmark.Seed
			}
			lm, err := a.lat.PlaceLandmark(r, rand.New(rand.NewSource(seed)))
			if err != nil {
				return err
			}
			vol, err := a.lat.LandmarkVolume(lm)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "centre %s at distance %d, scale %.6f\n",
				a.lat.Coord(lm.Center).Format(a.lat.Dimension()), a.lat.DistanceFromOrigin(lm.Center), lm.Scale)
			fmt.Fprintf(out, "volume %s\n", vol)
			if rim, err := a.lat.LandmarkBoundary(lm); err == nil {
				fmt.Fprintf(out, "rim %s\n", rim)
			}
			fmt.Fprintf(out, "origin relative distance %d\n", a.lat.RelativeDistance(lm, a.lat.Origin()))
			return nil
		}),
	}
	cmd.Flags().Int64Var(&seed, "seed", 1, "random walk seed (default from config)")
	return cmd
}

func (a *app) menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "List every supported geometry",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, v := range []lattice.Variation{lattice.Pure, lattice.Bitruncated} {
				for _, s := range geometry.Menu(v) {
					fmt.Fprintf(out, "%-18s degree %d\n", s, s.Degree)
				}
			}
			return nil
		}),
	}
}
