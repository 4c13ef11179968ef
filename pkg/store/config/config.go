package config

type Config struct {
	Followdiff Followdiff `toml:"followdiff"` // Application metadata
	Storage    Storage    `toml:"storage"`    // Where the baseline is kept
	Options    Options    `toml:"options"`    // Application options
}

type Followdiff struct {
	Version string `toml:"version"` // Application version
}

type Storage struct {
	Backend string `toml:"backend"` // file|bitcask|sqlite|memory
}

type Options struct {
	AutoBaseline bool `toml:"auto_baseline"` // save the first upload as the baseline when none exists
	Links        bool `toml:"links"`         // show profile URLs next to usernames
}
