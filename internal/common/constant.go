// Package common contains shared constants and sentinel errors used across
// Perfect Match client components.
package common

// DeviceIDHeaderName is the HTTP header used to carry the generated device
// identifier on outbound requests, for server-side correlation only.
const DeviceIDHeaderName = "X-Device-ID"
