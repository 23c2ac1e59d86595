package genconfig

const (
	MsgShort   = "Print the effective configuration as TOML"
	MsgLong    = "Print the configuration after defaults, the user config file and DOTGEN_* environment variables are merged. The output is a valid config file."
	MsgExample = `  dotgen genconfig > ~/.config/dotgen/config.toml`
)
