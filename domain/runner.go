package domain

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/astroflux/gomhd/bvals"
	"github.com/astroflux/gomhd/grid"
	"github.com/astroflux/gomhd/integrate"
)

// Runner drives every rank of a Domain through the same sequence of
// global time steps: reduce dt, exchange boundaries, integrate, run
// the user hook, advance. One goroutine per rank; the first failure
// stops the run.
type Runner struct {
	Dom   *Domain
	Cfg   integrate.Config
	Flags bvals.Flags

	FinalTime float64
	MaxSteps  int

	// BvalsOpts are applied to every rank's boundary state (user BCs,
	// shearing-sheet hooks).
	BvalsOpts []bvals.Option

	// UserWork, when set, runs on each tile after every step.
	UserWork func(*grid.Grid)

	Log *logrus.Logger
}

// Run executes the time loop to FinalTime (or MaxSteps) on all ranks.
func (r *Runner) Run() error {
	if r.Log == nil {
		r.Log = logrus.New()
	}
	var eg errgroup.Group
	for rank := range r.Dom.Grids {
		rank := rank
		eg.Go(func() error { return r.runRank(rank) })
	}
	return eg.Wait()
}

func (r *Runner) runRank(rank int) error {
	g := r.Dom.Grids[rank]
	comm := r.Dom.Cluster.NewComm(rank)

	opts := make([]bvals.Option, 0, len(r.BvalsOpts)+1)
	opts = append(opts, r.BvalsOpts...)
	if r.Dom.NP() > 1 {
		opts = append(opts, bvals.WithComm(comm))
	}
	bv, err := bvals.New(g, r.Cfg.EOS, r.Flags, opts...)
	if err != nil {
		return err
	}
	itg := integrate.New(g, r.Cfg)

	for step := 0; ; step++ {
		if g.Time >= r.FinalTime || (r.MaxSteps > 0 && step >= r.MaxSteps) {
			return nil
		}

		dt := integrate.NewDt(g, r.Cfg)
		dt = comm.AllreduceMin(dt)
		if g.Time+dt > r.FinalTime {
			dt = r.FinalTime - g.Time
		}
		g.Dt = dt

		if err := bv.Set(g); err != nil {
			r.Log.WithFields(logrus.Fields{"rank": rank, "step": step}).
				Errorf("boundary exchange failed: %v", err)
			return fmt.Errorf("rank %d: %w", rank, err)
		}

		if err := itg.Step(g); err != nil {
			r.Log.WithFields(logrus.Fields{"rank": rank, "step": step}).
				Errorf("integration failed: %v", err)
			return fmt.Errorf("rank %d: %w", rank, err)
		}

		if r.UserWork != nil {
			r.UserWork(g)
		}

		g.Time += g.Dt
		if rank == 0 && step%100 == 0 {
			r.Log.WithFields(logrus.Fields{
				"step": step, "t": g.Time, "dt": g.Dt,
			}).Info("cycle")
		}
	}
}
