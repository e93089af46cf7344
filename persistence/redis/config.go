package redis

type Config struct {
	Addrs       []string
	Namespace   string
	HistorySize int64
}
