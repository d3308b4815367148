// Package kinetics fits the temperature dependence of relaxation times.
//
// [Arrhenius] regresses ln(tau) on 1/T and reports the activation energy,
// flagged by [CheckEa] when it is negative or implausibly low. [Tv] reads
// the topology freezing temperature off the Arrhenius line, and [Compare]
// summarises several samples side by side. [VFT] fits the
// Vogel-Fulcher-Tammann law ln(tau) = A + B/(T - T0) with a bounded
// Levenberg-Marquardt solve. Temperatures are given in °C and converted to
// kelvin internally.
package kinetics
