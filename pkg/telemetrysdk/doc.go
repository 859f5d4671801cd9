// Package telemetrysdk is a Go client for the HPC telemetry API.
//
// Unauthenticated operations (login, health probes) hang off SDKClient; a
// successful Login returns a Session carrying the bearer token for the data
// endpoints.
package telemetrysdk
