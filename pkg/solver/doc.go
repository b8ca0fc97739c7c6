// Package solver flattens a daily load profile by dual subgradient ascent on
// a per-slot price λ. The controllable load is a fleet of electric vehicles
// whose aggregate response to λ is a linear control offset.
//
// # Update
//
// Starting from λ = 0, every iteration k computes, independently per slot t:
//
//	offset[t]    = -c · λ[t]
//	candidate[t] = baseline[t] + offset[t]
//	gradient[t]  = -λ[t]/2 + candidate[t]
//	λ'[t]        = λ[t] + αₖ · gradient[t]
//
// and stops once ‖λ' − λ‖₂ < Tolerance or after MaxIterations updates.
// Non-convergence is not an error: Result.Converged and Result.Iterations
// tell the two endings apart.
//
// # Variants
//
// The three variants differ only in c, αₖ and the reported load:
//
//	variant                 c          αₖ                    reported load
//	FixedAscent             N/(2σ)     StepSize              last in-loop candidate
//	IncrementalConstant     1/(2σ)     StepSize              baseline − λ/(2σ) at terminal λ
//	IncrementalDecreasing   1/(2σ)     1/((1+N/σ)² + k)      baseline − λ/(2σ) at terminal λ
//
// FixedAscent models N identical vehicles each reacting to the shared price,
// so its offset scales with N. The incremental variants model one aggregate
// price-responsive block; N only enters the decreasing step-size rule.
//
// For a constant step the iteration is the linear map
//
//	λ' = (1 − α(½ + c)) λ + α · baseline
//
// which converges when |1 − α(½ + c)| < 1, to λ* = baseline/(½ + c). The
// shaped load at the fixed point is baseline · ½/(½ + c): larger σ means a
// smaller c and gentler flattening.
//
// # Sweeps
//
// Sweep runs one independent Solve per σ, concurrently, and keys the results
// by σ. Each run owns its λ vectors; the baseline is shared read-only.
package solver
