package constants

import "time"

const (
	// ContextKeyUser is the gin context key for the authenticated user.
	ContextKeyUser = "current_user"
	// ContextKeyRequestID is the gin context key for the per-request ID.
	ContextKeyRequestID = "request_id"

	// AccessTokenLifetime is how long an issued bearer token stays valid.
	AccessTokenLifetime = 30 * time.Minute

	// NotifyDelay simulates the latency of an outgoing email.
	NotifyDelay = 3 * time.Second
	// NotifyQueueSize bounds the pending notification queue.
	NotifyQueueSize = 64

	// DeadlineOutputFormat renders deadlines as HH:MM:DD:MM:YYYY in responses.
	DeadlineOutputFormat = "15:04:02:01:2006"
)
