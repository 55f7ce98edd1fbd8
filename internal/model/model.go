package model

const (
	AppName = "crowbar-inventory"

	// EnvPrefix is prefixed to environment variables overriding configuration.
	EnvPrefix = "CROWBAR_INVENTORY"

	LogLevelInfo  = "info"
	LogLevelDebug = "debug"
	LogLevelTrace = "trace"
)

// LogLevels returns the supported log levels
func LogLevels() []string { return []string{LogLevelInfo, LogLevelDebug, LogLevelTrace} }

// QueryKind identifies the inventory view requested from the status endpoint.
type QueryKind string

const (
	// QueryDefault requests the default inventory, no hostvar parameter is sent.
	QueryDefault QueryKind = "default"
	// QueryList requests the inventory of all deployments, sent as hostvar=none.
	QueryList QueryKind = "list"
	// QueryHost requests the inventory of a single host, sent as hostvar=<host>.
	QueryHost QueryKind = "host"
)

// Query is the inventory request derived from the command line.
type Query struct {
	Kind QueryKind
	Host string
}

// NewQuery returns the Query for the --list and --host flag values.
//
// --list takes precedence when both are set, an empty host is treated as unset.
func NewQuery(list bool, host string) Query {
	switch {
	case list:
		return Query{Kind: QueryList}
	case host != "":
		return Query{Kind: QueryHost, Host: host}
	default:
		return Query{Kind: QueryDefault}
	}
}

// HostIgnored returns true when a host was given but overridden by --list.
func HostIgnored(list bool, host string) bool {
	return list && host != ""
}
