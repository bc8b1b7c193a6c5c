package config

import (
	"bytes"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config stores global configuration
type Config struct {
	// Logging level
	LogLevel string

	// Maximum time commands will be closing before stop is forced.
	StopTimeout time.Duration

	Arweave  Arweave
	Uploader Uploader
	Solana   Solana
}

type Arweave struct {
	// Gateway base url
	BaseUrl string

	// Path to the RSA JWK wallet file
	KeypairPath string

	// Single HTTP request timeout
	RequestTimeout time.Duration

	// TCP connect timeout
	DialerTimeout time.Duration

	// TCP KeepAlive interval
	DialerKeepAlive time.Duration

	// Unused connections get closed after this time
	IdleConnTimeout time.Duration

	TLSHandshakeTimeout time.Duration

	// Initial interval between retries of a failed request
	RetryBaseInterval time.Duration

	// Retry intervals grow exponentially up to this cap
	RetryMaxInterval time.Duration

	// Total number of attempts, the first one included
	RetryMaxAttempts int

	// Limit of requests per second to one host
	LimiterRPS float64

	// Max number of chunk uploads in flight per transaction
	MaxChunkWorkers int
}

type Uploader struct {
	// Max bundle payload in MiB
	BundleSizeMiB int64

	// Hard cap on BundleSizeMiB a user may request
	MaxBundleSizeMiB int64

	// Max number of bundles being built, signed and posted at once
	Buffer int

	// Multiplies the gateway price, [0, 10]
	RewardMultiplier float64

	// Directory the status records are written to, may be empty
	LogDir string

	// Confirmations treated as permanent
	RequiredConfirms uint64
}

type Solana struct {
	// Solana RPC node
	RpcUrl string

	// Payment co-signer service
	CosignerUrl string

	// Path to the ed25519 keypair file
	KeypairPath string

	// Minimum lamports per payment transaction
	FloorLamports uint64
}

func setDefaults() {
	viper.SetDefault("LogLevel", "info")
	viper.SetDefault("StopTimeout", "30s")

	viper.SetDefault("Arweave.BaseUrl", "https://arweave.net")
	viper.SetDefault("Arweave.KeypairPath", "")
	viper.SetDefault("Arweave.RequestTimeout", "60s")
	viper.SetDefault("Arweave.DialerTimeout", "30s")
	viper.SetDefault("Arweave.DialerKeepAlive", "15s")
	viper.SetDefault("Arweave.IdleConnTimeout", "31s")
	viper.SetDefault("Arweave.TLSHandshakeTimeout", "10s")
	viper.SetDefault("Arweave.RetryBaseInterval", "2s")
	viper.SetDefault("Arweave.RetryMaxInterval", "32s")
	viper.SetDefault("Arweave.RetryMaxAttempts", 10)
	viper.SetDefault("Arweave.LimiterRPS", 10)
	viper.SetDefault("Arweave.MaxChunkWorkers", 50)

	viper.SetDefault("Uploader.BundleSizeMiB", 10)
	viper.SetDefault("Uploader.MaxBundleSizeMiB", 200)
	viper.SetDefault("Uploader.Buffer", 10)
	viper.SetDefault("Uploader.RewardMultiplier", 1.0)
	viper.SetDefault("Uploader.LogDir", "")
	viper.SetDefault("Uploader.RequiredConfirms", 25)

	viper.SetDefault("Solana.RpcUrl", "https://api.mainnet-beta.solana.com")
	viper.SetDefault("Solana.CosignerUrl", "https://arloader.io")
	viper.SetDefault("Solana.KeypairPath", "")
	viper.SetDefault("Solana.FloorLamports", 5000)
}

func bindEnv() {
	// Flags beat env vars, env vars beat the config file.
	viper.MustBindEnv("Arweave.BaseUrl", "AR_BASE_URL")
	viper.MustBindEnv("Arweave.KeypairPath", "AR_KEYPAIR_PATH")
	viper.MustBindEnv("Solana.KeypairPath", "SOL_KEYPAIR_PATH")
	viper.MustBindEnv("LogLevel", "AR_LOG_LEVEL")
}

func Default() (config *Config) {
	config, _ = Load("")
	return
}

func Load(filename string) (config *Config, err error) {
	viper.Reset()
	viper.SetConfigType("json")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()
	bindEnv()

	if filename != "" {
		var content []byte
		content, err = os.ReadFile(filename)
		if err != nil {
			return
		}
		err = viper.ReadConfig(bytes.NewBuffer(content))
		if err != nil {
			return
		}
	}

	config = new(Config)
	err = viper.Unmarshal(config)
	return
}
