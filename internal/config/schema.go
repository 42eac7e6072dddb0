package config

type fileSchema struct {
	API     apiSchema     `toml:"api"`
	Fetch   fetchSchema   `toml:"fetch"`
	Log     logSchema     `toml:"log"`
	Metrics metricsSchema `toml:"metrics"`
}

type apiSchema struct {
	BaseURL string `toml:"base_url"`
	Results int    `toml:"results"`
}

type fetchSchema struct {
	Pages   int    `toml:"pages"`
	Timeout string `toml:"timeout"`
}

type logSchema struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type metricsSchema struct {
	Listen string `toml:"listen"`
}

func toSchema(c Config) fileSchema {
	return fileSchema{
		API: apiSchema{
			BaseURL: c.API.BaseURL,
			Results: c.API.Results,
		},
		Fetch: fetchSchema{
			Pages:   c.Fetch.Pages,
			Timeout: c.Fetch.Timeout.String(),
		},
		Log: logSchema{
			Level:  c.Log.Level,
			Format: c.Log.Format,
		},
		Metrics: metricsSchema{
			Listen: c.Metrics.Listen,
		},
	}
}
