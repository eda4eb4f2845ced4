// Package preflight validates the hosting environment before the
// payslip application is launched. Checks are read-only existence
// probes (plus one write-permission probe) and are safe to repeat:
// two consecutive runs over an unchanged filesystem produce identical
// results.
package preflight
