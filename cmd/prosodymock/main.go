// prosodymock stands in for the container runtime CLI during development.
// Point prosody.runtime at this binary to run the API without a chat
// server:
//
//	PROSODYMOCK_STATE=rooms.yaml prosodymock exec snikket prosodyctl shell "muc:list('groups.chat.protype.tw')"
package main

import (
	"fmt"
	"os"

	"github.com/wake/snikket-web-portal/internal/prosodymock"
)

func main() {
	opts, err := prosodymock.OptionsFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	os.Exit(prosodymock.NewShell(opts).Run(os.Args[1:], os.Stdout, os.Stderr))
}
