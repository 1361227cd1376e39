package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/abihf/wordface/protocol"
)

const (
	configFile = "/etc/wordface/config.json"
	envFile    = "/etc/wordface/wordface.env"
)

type Config struct {
	Device     string `json:"device" validate:"required,filepath"`
	Detector   string `json:"detector" validate:"required,uri"`
	Listen     string `json:"listen" validate:"required,hostname_port"`
	FPS        int    `json:"fps" validate:"min=1,max=240"`
	DetectRate int    `json:"detect_rate" validate:"min=1,max=240"`
	RenderCPU  int    `json:"render_cpu" validate:"min=-1"`
	LogFile    string `json:"log_file" validate:"omitempty,filepath"`
	PidFile    string `json:"pid_file" validate:"required,filepath"`
}

// Load reads the config file, applies environment overrides and defaults,
// and panics if the result is invalid.
func Load() *Config {
	conf, err := loadFromFile(configFile)
	if err != nil {
		slog.Warn("Failed to load config file", "error", err)
	}
	if conf == nil {
		conf = &Config{RenderCPU: -1}
	}

	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to load env file", "error", err)
	}
	applyEnv(conf)
	applyDefaults(conf)

	if err := conf.Validate(); err != nil {
		panic(err)
	}
	return conf
}

func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func applyDefaults(conf *Config) {
	if conf.Device == "" {
		conf.Device = "/dev/video0"
	}
	if conf.Detector == "" {
		conf.Detector = "unix://" + protocol.GetSockAddress()
	}
	if conf.Listen == "" {
		conf.Listen = "127.0.0.1:8640"
	}
	if conf.FPS == 0 {
		conf.FPS = 60
	}
	if conf.DetectRate == 0 {
		conf.DetectRate = 30
	}
	if conf.PidFile == "" {
		conf.PidFile = protocol.GetLockFile()
	}
}

func applyEnv(conf *Config) {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		v, ok := os.LookupEnv(key)
		if !ok {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("Ignoring non-numeric env var", "key", key, "value", v)
			return
		}
		*dst = n
	}

	str("WORDFACE_DEVICE", &conf.Device)
	str("WORDFACE_DETECTOR", &conf.Detector)
	str("WORDFACE_LISTEN", &conf.Listen)
	num("WORDFACE_FPS", &conf.FPS)
	num("WORDFACE_DETECT_RATE", &conf.DetectRate)
	num("WORDFACE_RENDER_CPU", &conf.RenderCPU)
	str("WORDFACE_LOG_FILE", &conf.LogFile)
	str("WORDFACE_PID_FILE", &conf.PidFile)
}

func loadFromFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := &Config{RenderCPU: -1}
	err = json.NewDecoder(file).Decode(config)
	if err != nil {
		return nil, err
	}

	return config, nil
}
