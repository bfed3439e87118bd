// Package ui turns external tool lifecycle events into concise console
// messages while detailed telemetry keeps flowing through the structured
// logger.
package ui
