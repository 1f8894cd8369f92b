package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonesrussell/spacesync/internal/remote"
)

// Diagnose renders the human-readable diagnostic for a fatal remote failure:
// what went wrong, the settings most likely at fault with their effective
// values, and how to fix it.
func Diagnose(err error, settings map[string]string) string {
	var b strings.Builder

	switch remote.ErrorKind(err) {
	case remote.KindConnectivity:
		b.WriteString("You appear to be offline: the content host could not be reached.\n")
		b.WriteString("\n")
		writeSettings(&b, settings, "host")
		b.WriteString("\nCheck your network connection and rerun the sync.")

	case remote.KindNotFound:
		b.WriteString("The space could not be found (HTTP 404).\n")
		b.WriteString("\n")
		writeSettings(&b, settings, "host", "space_id")
		b.WriteString("\nVerify that host and space_id match the space you are trying to sync.")

	case remote.KindAuthorization:
		b.WriteString("The request was not authorized (HTTP 401).\n")
		b.WriteString("\n")
		writeSettings(&b, settings, "access_token", "environment")
		b.WriteString("\nVerify that access_token is valid and environment exists for this space.")

	default:
		fmt.Fprintf(&b, "The sync failed with an unexpected error: %v\n", err)
		b.WriteString("\nUsed options:\n")
		writeAllSettings(&b, settings)
		b.WriteString("\nIf the problem persists, rerun with --debug for request-level detail.")
	}

	return b.String()
}

// writeSettings prints the named settings with their effective values.
func writeSettings(b *strings.Builder, settings map[string]string, keys ...string) {
	b.WriteString("Used settings:\n")
	for _, key := range keys {
		fmt.Fprintf(b, "  %s: %s\n", key, settings[key])
	}
}

func writeAllSettings(b *strings.Builder, settings map[string]string) {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "  %s: %s\n", k, settings[k])
	}
}
