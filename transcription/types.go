package transcription

import "math"

// Request holds parameters for a provider call.
type Request struct {
	// AudioPath is the mono 16 kHz file to transcribe.
	AudioPath string `json:"audio_path"`
	// Language is the expected language (e.g. "en"); empty lets the model decide.
	Language string `json:"language,omitempty"`
	// Model overrides the provider's configured model.
	Model string `json:"model,omitempty"`
}

// Response is what a provider returns.
type Response struct {
	Text string `json:"text"`
	// Segments are whatever timing the backend reports. The Invoker ignores them.
	Segments []Segment `json:"segments,omitempty"`
	Duration float64   `json:"duration,omitempty"`
	Language string    `json:"language,omitempty"`
}

// MinSegmentSpan is the length given to segments whose end is not after
// their start.
const MinSegmentSpan = 0.1

// Segment is a time span of the transcript in seconds.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"segment"`
}

// Clamped returns the segment with start clamped to zero and end pushed to
// start+MinSegmentSpan when it does not follow start.
func (s Segment) Clamped() Segment {
	s.Start = math.Max(0, s.Start)
	if s.End <= s.Start {
		s.End = s.Start + MinSegmentSpan
	}
	return s
}

// Transcript is the result of Invoker.Transcribe.
type Transcript struct {
	Text     string
	Segments []Segment
	Duration float64
	Provider string
}
