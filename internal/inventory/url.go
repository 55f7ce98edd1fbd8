package inventory

import (
	"strconv"
	"strings"

	"github.com/opencrowbar/crowbar-inventory/internal/model"
	"github.com/pkg/errors"
)

const (
	// StatusInventoryPath is the OpenCrowbar status API inventory endpoint.
	StatusInventoryPath = "/api/status/inventory"

	hostvarParam = "?hostvar="
	hostvarNone  = "none"
)

var (
	// ErrHost is returned for a host value that cannot be sent unescaped in a request line.
	ErrHost = errors.New("invalid inventory host")
)

// validHost rejects whitespace and control characters in host,
// the value is otherwise passed through unescaped.
func validHost(host string) error {
	if strings.IndexFunc(host, func(r rune) bool { return r <= ' ' || r == 0x7f }) >= 0 {
		return errors.Wrap(ErrHost, "whitespace or control character in host: "+strconv.Quote(host))
	}

	return nil
}

// URL returns the inventory endpoint URL for the query.
//
// The address and host values are concatenated as given, the host is not escaped.
func URL(address string, query model.Query) string {
	base := address + StatusInventoryPath

	switch query.Kind {
	case model.QueryList:
		return base + hostvarParam + hostvarNone
	case model.QueryHost:
		return base + hostvarParam + query.Host
	default:
		return base
	}
}
