package configuration

import (
	"os"
	"time"

	"github.com/fanbridge/fanbridge/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	// Interval of the control loop driving sampling, arbitration and output
	TickRate time.Duration `json:"tickRate"`
	// Interval at which diagnostics are reported to the configured sinks
	ReportRate time.Duration `json:"reportRate"`
	// Minimum dwell time before a changed input level is accepted
	DebounceInterval time.Duration `json:"debounceInterval"`
	// Time spent on each speed level during a self test sweep
	TestDwell time.Duration `json:"testDwell"`

	Input  InputConfig  `json:"input"`
	Speeds SpeedsConfig `json:"speeds"`
	Pwm    PwmConfig    `json:"pwm"`
	Tacho  TachoConfig  `json:"tacho"`

	Api        ApiConfig        `json:"api"`
	Statistics StatisticsConfig `json:"statistics"`
	Mqtt       MqttConfig       `json:"mqtt"`
	StatusFile StatusFileConfig `json:"statusFile"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("fanbridge")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/fanbridge/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("TickRate", 50*time.Millisecond)
	viper.SetDefault("ReportRate", 2*time.Second)
	viper.SetDefault("DebounceInterval", 100*time.Millisecond)
	viper.SetDefault("TestDwell", 2*time.Second)

	viper.SetDefault("input.mode", InputModeWire)
	viper.SetDefault("input.chip", "gpiochip0")
	viper.SetDefault("input.pins", []int{17, 27, 22})
	viper.SetDefault("input.activeLow", true)
	viper.SetDefault("input.analogPath", "")
	viper.SetDefault("input.thresholds", []int{})

	viper.SetDefault("speeds.table", []float64{0.0, 0.3, 0.6, 1.0})
	viper.SetDefault("speeds.minDutyFraction", 0.20)

	viper.SetDefault("pwm.chip", 0)
	viper.SetDefault("pwm.channel", 0)
	viper.SetDefault("pwm.top", 320)
	viper.SetDefault("pwm.periodNs", 40000)

	viper.SetDefault("tacho.chip", "gpiochip0")
	viper.SetDefault("tacho.pin", 23)
	viper.SetDefault("tacho.pulsesPerRevolution", 2)
	viper.SetDefault("tacho.window", 1*time.Second)
	viper.SetDefault("tacho.rollingWindowSize", 10)

	viper.SetDefault("api.enabled", true)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9011)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9012)

	viper.SetDefault("mqtt.enabled", false)
	viper.SetDefault("mqtt.broker", "tcp://localhost:1883")
	viper.SetDefault("mqtt.clientId", "fanbridge")
	viper.SetDefault("mqtt.topic", "fanbridge/status")

	viper.SetDefault("statusFile.enabled", false)
	viper.SetDefault("statusFile.path", "/run/fanbridge/status.json")
}

// DetectConfigFile returns the path of the config file in use,
// which is only populated after the file has been read by viper
func DetectConfigFile() string {
	readConfigFile()
	return viper.ConfigFileUsed()
}

// DetectAndReadConfigFile detects, reads and unmarshals the config
// file and returns the path of the file in use
func DetectAndReadConfigFile() string {
	path := DetectConfigFile()
	LoadConfig()
	return path
}

func readConfigFile() {
	if err := viper.ReadInConfig(); err != nil {
		// config file is required, so we fail here
		ui.FatalWithoutStacktrace("Error reading config file, %s", err)
	}
}

func LoadConfig() {
	// load default configuration values
	err := viper.Unmarshal(
		&CurrentConfig,
		viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)),
	)
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}
