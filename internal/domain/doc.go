// Package domain models the umbrella reminder logic panel.
//
// # Inputs
//
// Four independent binary inputs drive the panel:
//
//	rain     heavy rain is falling
//	drizzle  light drizzle is falling
//	wind     high wind
//	time     it is night (the widget shows ☀️ / 🌙)
//
// The startup state is all inputs off. Inputs are only ever changed by an
// adapter (HTTP, Kafka, the weather feed or the terminal UI).
//
// # Gates
//
// Four two-input gates form the hidden layer:
//
//	O_Risk       = OR(rain, drizzle)     any rain risk
//	A_Hazard     = AND(drizzle, wind)    drizzle hazard, cancels the umbrella
//	N_NoRain     = NOR(rain, drizzle)    absolutely no rain risk
//	X_Consistent = XNOR(time, wind)      time and wind agree (display only)
//
// The decision layer is:
//
//	mustTake   = O_Risk AND NOT A_Hazard
//	reminderOn = mustTake AND NOT N_NoRain
//
// N_NoRain is the negation of O_Risk over the same inputs, so the second term
// never changes the outcome and reminderOn reduces to O_Risk AND NOT A_Hazard.
// All four gates are still computed so that every lamp on the panel shows a
// live value. X_Consistent never feeds the decision.
//
// # Weather classification
//
// [Classify] maps a current-conditions observation onto the four inputs using
// WMO weather interpretation codes:
//
//	51, 53, 55, 56, 57        drizzle (light to dense, freezing)
//	61, 63, 65, 66, 67        rain (slight to heavy, freezing)
//	80, 81, 82                rain showers
//	95, 96, 99                thunderstorm, counted as rain
//
// Precipitation at or above the rain threshold also counts as rain even when
// the weather code disagrees, and wind is on at or above the wind threshold.
package domain
