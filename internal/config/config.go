package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Logger     LoggerConfig
	LLM        LLMConfig
	Download   DownloadConfig
	Transcript TranscriptConfig
	Summarizer SummarizerConfig
	Quiz       QuizConfig
	Artifacts  ArtifactsConfig
	Redis      RedisConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

// LLMConfig configures the model backing summarization and key-detail extraction.
type LLMConfig struct {
	Provider    string // "ollama" or "openai"
	Server      string // ollama server URL
	BaseURL     string // optional OpenAI-compatible endpoint
	Model       string
	APIKey      string
	Timeout     time.Duration
	Temperature float64
}

type DownloadConfig struct {
	Enabled      bool
	Tool         string // "ytdlp" or "native"
	Binary       string
	OutputPath   string
	AudioFormat  string
	AudioQuality string
}

type TranscriptConfig struct {
	Language string
}

type SummarizerConfig struct {
	ChunkSize int
	MaxLength int
	MinLength int
}

type QuizConfig struct {
	QuestionCount int
	MaxCount      int
}

type ArtifactsConfig struct {
	Dir               string
	TranscriptionFile string
	SummaryFile       string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
	TTL      time.Duration
}

func setDefaults() {
	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 120)
	viper.SetDefault("server.write_timeout", 120)
	viper.SetDefault("server.idle_timeout", 60)

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")

	viper.SetDefault("llm.provider", "ollama")
	viper.SetDefault("llm.server", "http://localhost:11434")
	viper.SetDefault("llm.model", "qwen3:0.6b")
	viper.SetDefault("llm.timeout", 60)
	viper.SetDefault("llm.temperature", 0.0)

	viper.SetDefault("download.enabled", true)
	viper.SetDefault("download.tool", "ytdlp")
	viper.SetDefault("download.binary", "yt-dlp")
	viper.SetDefault("download.output_path", "downloaded_audio.mp3")
	viper.SetDefault("download.audio_format", "mp3")
	viper.SetDefault("download.audio_quality", "192")

	viper.SetDefault("transcript.language", "en")

	viper.SetDefault("summarizer.chunk_size", 500)
	viper.SetDefault("summarizer.max_length", 300)
	viper.SetDefault("summarizer.min_length", 50)

	viper.SetDefault("quiz.question_count", 5)
	viper.SetDefault("quiz.max_count", 20)

	viper.SetDefault("artifacts.dir", ".")
	viper.SetDefault("artifacts.transcription_file", "transcription.txt")
	viper.SetDefault("artifacts.summary_file", "summary.txt")

	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.ttl", 3600)
}

func LoadConfig() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	setDefaults()
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
			IdleTimeout:  viper.GetDuration("server.idle_timeout") * time.Second,
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		LLM: LLMConfig{
			Provider:    viper.GetString("llm.provider"),
			Server:      viper.GetString("llm.server"),
			BaseURL:     viper.GetString("llm.base_url"),
			Model:       viper.GetString("llm.model"),
			APIKey:      viper.GetString("llm.api_key"),
			Timeout:     viper.GetDuration("llm.timeout") * time.Second,
			Temperature: viper.GetFloat64("llm.temperature"),
		},
		Download: DownloadConfig{
			Enabled:      viper.GetBool("download.enabled"),
			Tool:         viper.GetString("download.tool"),
			Binary:       viper.GetString("download.binary"),
			OutputPath:   viper.GetString("download.output_path"),
			AudioFormat:  viper.GetString("download.audio_format"),
			AudioQuality: viper.GetString("download.audio_quality"),
		},
		Transcript: TranscriptConfig{
			Language: viper.GetString("transcript.language"),
		},
		Summarizer: SummarizerConfig{
			ChunkSize: viper.GetInt("summarizer.chunk_size"),
			MaxLength: viper.GetInt("summarizer.max_length"),
			MinLength: viper.GetInt("summarizer.min_length"),
		},
		Quiz: QuizConfig{
			QuestionCount: viper.GetInt("quiz.question_count"),
			MaxCount:      viper.GetInt("quiz.max_count"),
		},
		Artifacts: ArtifactsConfig{
			Dir:               viper.GetString("artifacts.dir"),
			TranscriptionFile: viper.GetString("artifacts.transcription_file"),
			SummaryFile:       viper.GetString("artifacts.summary_file"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
			TTL:      viper.GetDuration("redis.ttl") * time.Second,
		},
	}

	// Override with environment variables if set
	if port := os.Getenv("SERVER_PORT"); port != "" {
		config.Server.Port = viper.GetInt("SERVER_PORT")
	}
	if env := os.Getenv("ENV"); env != "" {
		config.Logger.Env = env
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logger.Level = level
	}
	if llmServer := os.Getenv("LLM_SERVER"); llmServer != "" {
		config.LLM.Server = llmServer
	}
	if llmModel := os.Getenv("LLM_MODEL"); llmModel != "" {
		config.LLM.Model = llmModel
	}
	if apiKey := os.Getenv("LLM_API_KEY"); apiKey != "" {
		config.LLM.APIKey = apiKey
	} else if openAIKey := os.Getenv("OPENAI_API_KEY"); openAIKey != "" && config.LLM.APIKey == "" {
		config.LLM.APIKey = openAIKey
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if dir := os.Getenv("ARTIFACTS_DIR"); dir != "" {
		config.Artifacts.Dir = dir
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate reports settings the service cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	switch c.LLM.Provider {
	case "ollama", "openai":
	default:
		return fmt.Errorf("unsupported llm provider: %q", c.LLM.Provider)
	}
	switch c.Download.Tool {
	case "ytdlp", "native":
	default:
		return fmt.Errorf("unsupported download tool: %q", c.Download.Tool)
	}
	if c.Summarizer.ChunkSize <= 0 {
		return fmt.Errorf("summarizer chunk size must be positive, got %d", c.Summarizer.ChunkSize)
	}
	if c.Quiz.QuestionCount < 0 {
		return fmt.Errorf("quiz question count must not be negative, got %d", c.Quiz.QuestionCount)
	}
	if c.Quiz.MaxCount < c.Quiz.QuestionCount {
		return fmt.Errorf("quiz max count (%d) is below the default question count (%d)", c.Quiz.MaxCount, c.Quiz.QuestionCount)
	}
	return nil
}

// TranscriptionPath is where the cleaned transcript is written.
func (c *Config) TranscriptionPath() string {
	return filepath.Join(c.Artifacts.Dir, c.Artifacts.TranscriptionFile)
}

// SummaryPath is where the final summary is written.
func (c *Config) SummaryPath() string {
	return filepath.Join(c.Artifacts.Dir, c.Artifacts.SummaryFile)
}
