// Package util provides small helpers shared across speechkit packages:
// size parsing for config values, secret masking for logs, and file-name
// handling for uploads.
package util
