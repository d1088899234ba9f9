// Command access_probe walks the content access flow against a running
// deployment. Operators use it to confirm the gate order end to end:
// payment wall first, then the password prompt, then disclosure.
//
// Usage:
//
//	go run ./scripts/access_probe -base http://localhost:8080 \
//	    -email viewer@example.com -content 2 -password s3cret
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/noah-isme/med-a-api/pkg/client"
)

func main() {
	base := flag.String("base", "http://localhost:8080", "API base URL")
	email := flag.String("email", "", "requester email")
	deviceID := flag.String("device", "", "device ID (minted when empty)")
	contentID := flag.Int("content", 0, "content item ID to probe")
	password := flag.String("password", "", "password for locked content")
	timeout := flag.Duration("timeout", 15*time.Second, "overall probe timeout")
	flag.Parse()

	if *email == "" || *contentID <= 0 {
		flag.Usage()
		os.Exit(2)
	}

	opts := []client.Option{}
	if *deviceID != "" {
		opts = append(opts, client.WithDeviceID(*deviceID))
	}
	c := client.New(*base, *email, opts...)
	fmt.Printf("identity: %s / %s\n", c.Identity().Email, c.Identity().DeviceID)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	flow := client.NewFlow(c, *contentID)
	state, err := flow.Open(ctx)
	if err != nil {
		log.Fatalf("open: %v (state %s)", err, state)
	}
	fmt.Printf("open: %s\n", state)

	switch state {
	case client.StatePaymentRequired:
		fmt.Printf("checkout: %s\n", flow.CheckoutURL())
		return
	case client.StateDisabled:
		fmt.Println("account disabled; nothing further to probe")
		return
	case client.StateViewing:
		fmt.Printf("url: %s\n", flow.URL())
		return
	}

	if state == client.StatePasswordPrompt {
		if *password == "" {
			fmt.Println("locked item; re-run with -password to finish the probe")
			return
		}
		state, err = flow.SubmitPassword(ctx, *password)
		if err != nil {
			log.Fatalf("submit password: %v (state %s)", err, state)
		}
		fmt.Printf("submit: %s\n", state)
		if state == client.StateViewing {
			fmt.Printf("url: %s\n", flow.URL())
		}
	}
}
