// Package domain models beaches, StormGlass point forecasts, and the surf
// rating computed from them.
//
// # Data Source
//
// Point forecasts come from the StormGlass marine weather API
// (https://docs.stormglass.io). Every hourly value is reported per upstream
// provider, e.g.
//
//	"swellHeight": {"noaa": 1.2, "sg": 1.4, "icon": 1.1}
//
// The service always reads the "noaa" value. Hours where any of the seven
// requested fields lacks a "noaa" value are dropped during normalization.
//
// # Conventions
//
// Directions are compass bearings in degrees (0–360) the energy comes from.
// Heights are meters, periods seconds, wind speed meters per second.
// Times are kept as the ISO-8601 strings StormGlass returns so that grouping
// by hour is an exact string comparison.
//
// # Rating
//
// A forecast point is scored 1–5 by averaging three sub-scores:
//
//	Wind/wave: 1 swell and wind share a quadrant (onshore chop)
//	           5 wind offshore for the beach's facing direction
//	           3 otherwise
//	Period:    <7s 1 | <10s 2 | <14s 4 | ≥14s 5
//	Height:    <0.3m 1 | <1.0m 2 | <2.0m 3 | ≥2.0m 5
//
// Bearings map to quadrants as [0,50) N, [50,120) E, [120,220) S,
// [220,310) W and [310,360) N. See [PositionFromDegrees].
package domain
