package models

// Settings is the singleton, admin-mutable configuration: the PIN that
// gates registration flows and the per-client hourly send quota. It is
// materialized from the settings namespace with defaults applied, so a
// fresh deployment behaves identically to one whose admin never
// touched anything.
type Settings struct {
	PIN              string `json:"pin"`
	RateLimitPerHour int    `json:"rateLimit"`
}
