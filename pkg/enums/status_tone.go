package enums

// StatusTone is the semantic color class a status maps to in the UI. It is
// pure display data; no state transition logic hangs off it.
type StatusTone string

const (
	ToneSuccess StatusTone = "success"
	ToneWarning StatusTone = "warning"
	ToneInfo    StatusTone = "info"
	ToneDanger  StatusTone = "danger"
	ToneMuted   StatusTone = "muted"
)
