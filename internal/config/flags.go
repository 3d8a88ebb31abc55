package config

import "flag"

// Flags holds command-line overrides.
type Flags struct {
	ConfigPath string
	Debug      bool
	DBPath     string
	Memory     bool
	Addr       string
	Scale      float64
}

// ParseFlags parses args (without the program name).
func ParseFlags(name string, args []string) (*Flags, error) {
	f := &Flags{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.DBPath, "db", "", "Path to the SQLite database")
	fs.BoolVar(&f.Memory, "memory", false, "Keep templates in memory only")
	fs.StringVar(&f.Addr, "addr", "", "HTTP listen address")
	fs.Float64Var(&f.Scale, "scale", 0, "2D view pixels per meter")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.DBPath != "" {
		cfg.Storage.Path = f.DBPath
	}
	if f.Memory {
		cfg.Storage.Path = ""
	}
	if f.Addr != "" {
		cfg.Server.Addr = f.Addr
	}
	if f.Scale > 0 {
		cfg.Designer.ScaleFactor = f.Scale
	}
}
