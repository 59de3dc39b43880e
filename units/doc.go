// Package units holds immutable physical quantities used by health records.
//
// Values are created only through named factories (Meters, Celsius, ...) and
// keep the unit they were created with. Conversions are table driven against a
// canonical unit per dimension, and comparisons normalize to that canonical
// unit unless both operands share a unit. Quantities deliberately expose no
// arithmetic; range checks belong to the record layer.
package units
