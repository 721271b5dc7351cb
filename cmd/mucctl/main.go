// mucctl is an operator CLI for the MUC admin API.
//
//	mucctl [--server URL] [--token JWT] [--raw] rooms <muc-domain>
//	mucctl [--server URL] [--token JWT] [--raw] get <room> <user>
//	mucctl [--server URL] [--token JWT] set <room> <user> <affiliation>
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/pflag"

	"github.com/wake/snikket-web-portal/internal/client"
	"github.com/wake/snikket-web-portal/internal/muc"
)

// errUsage marks argument errors; they print usage and exit 2.
var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	flags := pflag.NewFlagSet("mucctl", pflag.ContinueOnError)
	flags.SetOutput(stdout)
	server := flags.String("server", envOr("MUCCTL_SERVER", client.DefaultBaseURL), "API base URL")
	token := flags.String("token", os.Getenv("MUCCTL_TOKEN"), "bearer token")
	raw := flags.Bool("raw", false, "print shell output verbatim")
	timeout := flags.Duration("timeout", 2*time.Minute, "request timeout")
	flags.Usage = func() {
		fmt.Fprintln(stdout, "usage: mucctl [flags] rooms <muc-domain> | get <room> <user> | set <room> <user> <affiliation>")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	opts := []client.Option{client.WithTimeout(*timeout)}
	if *token != "" {
		opts = append(opts, client.WithToken(*token))
	}
	c := client.New(*server, opts...)
	ctx := context.Background()

	rest := flags.Args()
	if len(rest) == 0 {
		flags.Usage()
		return fmt.Errorf("%w: missing subcommand", errUsage)
	}

	switch cmd, params := rest[0], rest[1:]; cmd {
	case "rooms":
		if len(params) != 1 {
			return fmt.Errorf("%w: rooms <muc-domain>", errUsage)
		}
		if *raw {
			out, err := c.ListRoomsRaw(ctx, params[0])
			if err != nil {
				return err
			}
			_, err = io.WriteString(stdout, out)
			return err
		}
		rooms, err := c.ListRooms(ctx, params[0])
		if err != nil {
			return err
		}
		renderRooms(stdout, rooms)
		return nil

	case "get":
		if len(params) != 2 {
			return fmt.Errorf("%w: get <room> <user>", errUsage)
		}
		if *raw {
			out, err := c.GetAffiliationRaw(ctx, params[0], params[1])
			if err != nil {
				return err
			}
			_, err = io.WriteString(stdout, out)
			return err
		}
		a, err := c.GetAffiliation(ctx, params[0], params[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, a)
		return nil

	case "set":
		if len(params) != 3 {
			return fmt.Errorf("%w: set <room> <user> <affiliation>", errUsage)
		}
		a, ok := muc.ParseAffiliationName(params[2])
		if !ok {
			return fmt.Errorf("%w: affiliation must be one of %s", errUsage, affiliationNames())
		}
		out, err := c.SetAffiliation(ctx, params[0], params[1], a)
		if err != nil {
			return err
		}
		if *raw {
			_, err = io.WriteString(stdout, out)
			return err
		}
		fmt.Fprintf(stdout, "%s is now %s in %s\n", params[1], a, params[0])
		return nil
	}

	return fmt.Errorf("%w: unknown subcommand %q", errUsage, rest[0])
}

func renderRooms(w io.Writer, rooms []string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Room"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetTablePadding("\t")
	for i, room := range rooms {
		table.Append([]string{fmt.Sprint(i + 1), room})
	}
	table.Render()
}

func affiliationNames() string {
	names := make([]string, len(muc.Affiliations))
	for i, a := range muc.Affiliations {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
