// Package analysis provides tools for characterizing trajectories:
//
//   - [FromTrajectory]: 2D phase space portrait of two state components
//   - [PhasePortraitToASCII]: text rendering of a portrait
//   - [DominantPeriod]: oscillation period from the power spectrum
//
// # Periods
//
// Predator-prey cycles are closed orbits, so the power spectrum of either
// population peaks at the cycle frequency:
//
//	prey := traj.Column(0)
//	if period, ok := analysis.DominantPeriod(prey, dt); ok {
//	    fmt.Printf("cycle: %.2f\n", period)
//	}
package analysis
