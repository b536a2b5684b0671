package api

import "github.com/kbukum/speechkit/transcription"

// Identity reported by GET /.
const (
	ServiceMessage = "Parakeet Speech Transcription API"
	APIVersion     = "1.0.0"
)

// Download formats accepted by the format query parameter.
const (
	FormatJSON = "json"
	FormatSRT  = "srt"
	FormatCSV  = "csv"
)

var formats = []string{FormatJSON, FormatSRT, FormatCSV}

// RootResponse is the body of GET /.
type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// TranscribeResponse is the body of a successful POST /transcribe.
type TranscribeResponse struct {
	Transcription string                  `json:"transcription"`
	Segments      []transcription.Segment `json:"segments"`
	CSVData       [][]string              `json:"csv_data"`
	SRTContent    string                  `json:"srt_content"`
	Duration      float64                 `json:"duration"`
}
