// Package tts builds time-temperature superposition mastercurves by shifting
// each curve horizontally by aT = tau(T)/tau(Tref).
package tts
