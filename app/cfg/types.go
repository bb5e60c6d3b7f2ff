package cfg

import "time"

type Cfg struct {
	// Server configuration
	Port       string
	LabelsFile string

	// Source fetching
	UserAgent    string
	FetchTimeout int // seconds

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}

func (c *Cfg) GetFetchTimeout() time.Duration {
	if c.FetchTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.FetchTimeout) * time.Second
}
