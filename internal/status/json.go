package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Occupied      int         `json:"occupied"`
	Free          int         `json:"free"`
	Level         string      `json:"level"`
	UptimeSeconds int64       `json:"uptime_seconds"`
	StartTime     string      `json:"start_time"`
	Timestamp     string      `json:"timestamp"`
	Counts        CountsJSON  `json:"outcome_counts"`
	Bounced       uint64      `json:"bounced_edges"`
	RenderSkips   int         `json:"render_skips"`
	Recent        []EntryJSON `json:"recent,omitempty"`
	Truncated     bool        `json:"recent_truncated,omitempty"`
	Config        ConfigJSON  `json:"config"`
}

// CountsJSON is the JSON representation of outcome counts.
type CountsJSON struct {
	Entered  int `json:"entered"`
	Rejected int `json:"rejected"`
	Exited   int `json:"exited"`
	Ignored  int `json:"ignored"`
	Resets   int `json:"resets"`
}

// EntryJSON is the JSON representation of a recorded outcome.
type EntryJSON struct {
	Timestamp string `json:"timestamp"`
	Outcome   string `json:"outcome"`
	Count     int    `json:"count"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	Capacity     int   `json:"capacity"`
	DebounceMs   int64 `json:"debounce_ms"`
	RejectToneMs int64 `json:"reject_tone_ms"`
	ResetPulseMs int64 `json:"reset_pulse_ms"`
	ResetWaitMs  int64 `json:"reset_wait_ms"`
	HeartbeatMs  int64 `json:"heartbeat_ms"`
}

func buildInner(snap Snapshot) StatusInner {
	inner := StatusInner{
		Occupied:      snap.Count,
		Free:          snap.Config.Capacity - snap.Count,
		Level:         string(snap.Level),
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		Counts: CountsJSON{
			Entered:  snap.Counts.Entered,
			Rejected: snap.Counts.Rejected,
			Exited:   snap.Counts.Exited,
			Ignored:  snap.Counts.Ignored,
			Resets:   snap.Counts.Resets,
		},
		Bounced:     snap.Bounced,
		RenderSkips: snap.RenderSkips,
		Truncated:   snap.HistoryDrops,
		Config: ConfigJSON{
			Capacity:     snap.Config.Capacity,
			DebounceMs:   snap.Config.DebounceMs,
			RejectToneMs: snap.Config.RejectToneMs,
			ResetPulseMs: snap.Config.ResetPulseMs,
			ResetWaitMs:  snap.Config.ResetWaitMs,
			HeartbeatMs:  snap.Config.HeartbeatMs,
		},
	}
	for _, e := range snap.Recent {
		inner.Recent = append(inner.Recent, EntryJSON{
			Timestamp: e.Time.UTC().Format(time.RFC3339Nano),
			Outcome:   string(e.Outcome.Kind),
			Count:     e.Outcome.Count,
		})
	}
	return inner
}

// FormatJSON returns the indented JSON status.
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}
