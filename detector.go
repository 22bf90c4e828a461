package iterbot

import (
	"encoding/json"
	"fmt"
)

// LoopDetector flags runs that are stuck repeating the same action.
//
// It keeps the most recent actions and signals once the last Threshold()
// of them are identical in both tool name and arguments. Identity is
// checked on the canonical JSON encoding of the arguments, so key order
// does not matter. Tools that legitimately repeat the same call can trip
// it; tune the threshold per agent.
type LoopDetector struct {
	threshold int
	recent    []string
}

// NewLoopDetector creates a detector. Thresholds below 1 fall back to
// DefaultLoopThreshold.
func NewLoopDetector(threshold int) *LoopDetector {
	if threshold < 1 {
		threshold = DefaultLoopThreshold
	}
	return &LoopDetector{threshold: threshold}
}

// Threshold returns the configured repetition threshold.
func (d *LoopDetector) Threshold() int {
	return d.threshold
}

// Observe records one executed action and reports whether the most recent
// Threshold() actions are now identical. It first reports true on the call
// that completes the streak.
func (d *LoopDetector) Observe(name string, args map[string]any) bool {
	d.recent = append(d.recent, fingerprint(name, args))
	if len(d.recent) > d.threshold {
		d.recent = d.recent[1:]
	}
	if len(d.recent) < d.threshold {
		return false
	}
	for _, fp := range d.recent[1:] {
		if fp != d.recent[0] {
			return false
		}
	}
	return true
}

// Reset clears the recorded actions so the detector can be reused across
// runs.
func (d *LoopDetector) Reset() {
	d.recent = d.recent[:0]
}

// fingerprint builds a comparable identity for an action. Map marshaling
// sorts keys, so equal argument sets encode equally; nil and empty args
// are the same action.
func fingerprint(name string, args map[string]any) string {
	if args == nil {
		args = map[string]any{}
	}
	data, err := json.Marshal(args)
	if err != nil {
		data = []byte(fmt.Sprintf("%v", args))
	}
	return name + "\x00" + string(data)
}
