// ABOUTME: CLI commands for Charm KV sync operations
// ABOUTME: link, status, unlink, now and wipe for the revenueos slots

package charm

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/harperreed/revenueos/store"
)

// Opener opens the client lazily so commands that only print text never touch the KV.
type Opener func() (*Client, error)

// SyncLinkCommand links this device to a Charm account.
// Charm authenticates with SSH keys, so linking is a first sync.
func SyncLinkCommand(out io.Writer, open Opener, args []string) error {
	fs := flag.NewFlagSet("sync link", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := open()
	if err != nil {
		return fmt.Errorf("failed to initialize client: %w", err)
	}
	cfg := c.Config()
	fmt.Fprintf(out, "Linking to Charm Cloud (%s)...\n\n", cfg.Host)

	if err := c.Sync(); err != nil {
		return fmt.Errorf("link failed: %w", err)
	}

	if id, err := c.ID(); err != nil {
		fmt.Fprintln(out, "✓ Device linked (ID unavailable)")
	} else {
		fmt.Fprintf(out, "✓ Linked to account: %s\n", id)
	}
	fmt.Fprintf(out, "✓ Auto-sync: %v\n", cfg.AutoSync)
	return nil
}

// SyncStatusCommand prints server settings, sync freshness and the stored slots.
func SyncStatusCommand(out io.Writer, open Opener, args []string) error {
	fs := flag.NewFlagSet("sync status", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := open()
	if err != nil {
		return fmt.Errorf("failed to initialize client: %w", err)
	}
	return showSyncStatus(out, c, time.Now())
}

func showSyncStatus(out io.Writer, c *Client, now time.Time) error {
	cfg := c.Config()
	fmt.Fprintln(out, "Charm Sync Status")
	fmt.Fprintln(out, "─────────────────")
	fmt.Fprintf(out, "Server:    %s\n", cfg.Host)
	fmt.Fprintf(out, "Auto-sync: %v\n", cfg.AutoSync)
	if cfg.LastSyncAt != nil {
		fmt.Fprintf(out, "Last sync: %s\n", cfg.LastSyncAt.Local().Format("2006-01-02 15:04"))
	} else {
		fmt.Fprintln(out, "Last sync: never")
	}
	if cfg.Stale(now) {
		fmt.Fprintln(out, "Data may be stale; run `revenueos sync now`.")
	}

	if c.IsConnected() {
		fmt.Fprintln(out, "\nStatus: Connected to Charm Cloud")
	} else {
		fmt.Fprintln(out, "\nStatus: Not connected")
	}

	keys, err := c.Keys()
	if err != nil {
		return fmt.Errorf("failed to list slots: %w", err)
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, string(k))
	}
	sort.Strings(names)
	fmt.Fprintf(out, "Slots:     %d\n", len(names))
	for _, name := range names {
		marker := " "
		if name == store.KeyState {
			marker = "*"
		}
		fmt.Fprintf(out, "  %s %s\n", marker, name)
	}
	return nil
}

// SyncUnlinkCommand explains how to disconnect; charm has no unlink API.
func SyncUnlinkCommand(out io.Writer, args []string) error {
	fs := flag.NewFlagSet("sync unlink", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Fprintln(out, "To unlink your device from Charm Cloud:")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  1. Remove this device's SSH key from your Charm account")
	fmt.Fprintln(out, "  2. Delete local charm data: rm -rf ~/.local/share/charm")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Local revenueos settings stay in %s\n", ConfigPath())
	return nil
}

// SyncWipeCommand deletes every local slot. Requires --confirm.
func SyncWipeCommand(out io.Writer, open Opener, args []string) error {
	fs := flag.NewFlagSet("sync wipe", flag.ContinueOnError)
	confirm := fs.Bool("confirm", false, "Confirm data wipe")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !*confirm {
		fmt.Fprintln(out, "WARNING: This will delete ALL local revenueos data!")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "To confirm, run:")
		fmt.Fprintln(out, "  revenueos sync wipe --confirm")
		return nil
	}

	c, err := open()
	if err != nil {
		return fmt.Errorf("failed to get client: %w", err)
	}
	if err := c.Reset(); err != nil {
		return fmt.Errorf("failed to reset KV store: %w", err)
	}

	fmt.Fprintln(out, "✓ All data wiped")
	fmt.Fprintln(out, "The next start loads the default dataset.")
	return nil
}

// SyncNowCommand performs an immediate sync.
func SyncNowCommand(out io.Writer, open Opener, args []string) error {
	fs := flag.NewFlagSet("sync now", flag.ContinueOnError)
	verbose := fs.Bool("verbose", false, "Show verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := open()
	if err != nil {
		return fmt.Errorf("failed to get client: %w", err)
	}

	if *verbose {
		fmt.Fprintln(out, "Syncing with server...")
	}
	if err := c.Sync(); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	fmt.Fprintln(out, "✓ Synced")
	return nil
}
