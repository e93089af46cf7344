package config

type StorageType string

const STORAGE_TYPE_REDIS StorageType = "redis"
const STORAGE_TYPE_INMEM StorageType = "memory"

type Config struct {
	RedisConfig          RedisStorageConfig
	StorageType          StorageType
	HttpPort             int
	TelegramConfig       TelegramConfig
	HttpTimeoutSeconds   int
	ExecutionHistorySize int64
}

type RedisStorageConfig struct {
	Addrs     []string
	Namespace string
}

type TelegramConfig struct {
	BotToken string
	ApiUrl   string
}
