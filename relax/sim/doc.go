// Package sim generates synthetic stress-relaxation curves from a simple
// physical picture: relaxation time anchored at the topology-freezing
// temperature Tv by tau = 1e12 Pa·s / G, Arrhenius scaling away from it and
// a frozen plateau below Tg.
//
// Simulated curves feed tests, demos and the CLI's simulate command.
package sim
