package config

const (
	AppName    = "lexisnap"
	AppVersion = "1.0.0"
)

// Default configuration values.
const (
	DefaultServerPort        = ":8080"
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "json"
	DefaultReviewLimit       = 20
	DefaultPreviewTTLMinutes = 10
	DefaultUploadsDir        = "uploads"
	DefaultGeminiModel       = "gemini-2.0-flash"
	DefaultRetryAttempts     = 3
	DefaultSpeechVoice       = "en-US-AriaNeural"
)
