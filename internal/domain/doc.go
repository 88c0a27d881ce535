// Package domain turns air-quality measurements into 3D scene primitives.
//
// # Data Sources
//
// Two kinds of readings arrive on the source topic:
//
//	AQI station readings: a site label, a WGS-84 coordinate and a unitless
//	Air Quality Index value (0–500+).
//	TEMPO grid samples: satellite retrievals of NO2 (µmol/m²), O3 (DU) and
//	aerosol optical depth (AOD, unitless) on a regular lat/lon grid, each with
//	a retrieval confidence in [0, 1].
//
// A service instance renders exactly one [Parameter]. Readings are reduced to a
// [GeoMeasurement] through the parameter's accessor, so a record can only be
// read for the parameters the type system knows about.
//
// # Scene Conventions
//
// Positions use a Y-up right-handed frame centered on a [ReferenceFrame]
// origin (Paris by default):
//
//	X = (lon - originLon) * lateralScale
//	Z = (lat - originLat) * lateralScale
//	Y = (value - baseline) * verticalScale
//
// This is a local tangent-plane approximation; degrees are not corrected for
// latitude. Elevation is an uncapped linear encoding of the reading. Glyph size
// is clamped (see [SizeEncoder]) while elevation is not: readability of glyphs
// matters more than fidelity there, and the reverse holds for height.
//
// # AQI Bands
//
// Colors follow the US EPA categories. Boundaries are inclusive on the upper
// side, so AQI 50 is Good and 51 is Moderate:
//
//	  0–50   Good                            #10B981
//	 51–100  Moderate                        #F59E0B
//	101–150  Unhealthy for Sensitive Groups  #F97316
//	151–200  Unhealthy                       #EF4444
//	201–300  Very Unhealthy                  #8B5CF6
//	  301+   Hazardous                       #7F1D1D
//
// Readings above 150 are "elevated" and pulse when animated.
//
// # Non-finite Input
//
// NaN and ±Inf coordinates or values flow through projection and coloring
// unchanged so that upstream data problems stay visible in the output. Only
// [SizeEncoder] clamps. Wire records are bounds-checked once at ingest by
// [ValidateRecord]; the scene functions themselves never reject input.
package domain
