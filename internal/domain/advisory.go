package domain

// AdvisoryResult is the transient {text, audio} pair returned by the spoken
// endpoints. Audio is base64-encoded MP3, or nil when synthesis was skipped
// or failed.
type AdvisoryResult struct {
	Text  string  `json:"text"`
	Audio *string `json:"audio"`
}
