// Package physics provides dynamical system models for simulation.
//
// [LotkaVolterra] implements [dynamo.System] for the predator-prey
// equations. It also implements [dynamo.Configurable] for runtime parameter
// adjustment and [dynamo.Hamiltonian], returning the system's conserved
// quantity:
//
//	lv := physics.NewLotkaVolterra()
//	if h, ok := dynamo.System(lv).(dynamo.Hamiltonian); ok {
//	    v := h.Energy(lv.DefaultState())
//	}
package physics
