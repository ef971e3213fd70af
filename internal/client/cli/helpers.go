package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/savesync/internal/models"
)

// parseArgs отделяет позиционные аргументы от флагов вида --name и --name value.
// valueFlags перечисляет флаги, принимающие значение.
func parseArgs(args []string, valueFlags ...string) (positional []string, flags map[string]string, err error) {
	flags = make(map[string]string)
	takesValue := make(map[string]bool, len(valueFlags))
	for _, f := range valueFlags {
		takesValue[f] = true
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			positional = append(positional, arg)
			continue
		}

		name := strings.TrimPrefix(arg, "--")
		if k, v, ok := strings.Cut(name, "="); ok {
			flags[k] = v
			continue
		}
		if !takesValue[name] {
			flags[name] = ""
			continue
		}
		if i+1 >= len(args) {
			return nil, nil, fmt.Errorf("flag --%s requires a value", name)
		}
		flags[name] = args[i+1]
		i++
	}

	return positional, flags, nil
}

// formatSize форматирует размер payload
func formatSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// shortChecksum оставляет первые 12 hex-символов digest
func shortChecksum(r *models.SaveRecord) string {
	hex := r.Checksum.Encoded()
	if len(hex) > 12 {
		hex = hex[:12]
	}
	return hex
}

func (c *Cli) printRecord(prefix string, r *models.SaveRecord) {
	state := formatSize(len(r.Payload))
	if r.Deleted {
		state = "deleted"
	}
	c.io.Printf("%sDevice:    %s\n", prefix, r.DeviceID)
	c.io.Printf("%sClock:     %s\n", prefix, r.Clock.String())
	c.io.Printf("%sChecksum:  %s\n", prefix, r.Checksum)
	c.io.Printf("%sTimestamp: %s\n", prefix, r.Timestamp.Local().Format(time.RFC3339))
	c.io.Printf("%sPayload:   %s\n", prefix, state)
}

func (c *Cli) printVersions(entry *models.ReplicaEntry) {
	for i, v := range entry.Conflict {
		c.io.Printf("  [%d] %s\n", i+1, shortChecksum(v))
		c.printRecord("      ", v)
	}
}
