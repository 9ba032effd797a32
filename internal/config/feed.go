package config

// FeedConfig configures the review feed consumer.  It does not need the
// database settings Load insists on.
type FeedConfig struct {
	RabbitURL string
	LogPath   string
}

func LoadFeedConfig() FeedConfig {
	return FeedConfig{
		RabbitURL: rabbitURL(),
		LogPath:   envStr("REVIEW_LOG_PATH", "logs/reviews.log"),
	}
}
