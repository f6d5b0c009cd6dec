// Command gatelog-token mints a bearer token for the gatelog HTTP API.
//
//	GATELOG_JWT_SECRET=... gatelog-token -operator gate-a -ttl 12h
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/BrandonDHaskell/gatelog/server/internal/auth"
)

func main() {
	operator := flag.String("operator", "", "operator name recorded in the token")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("GATELOG_JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "GATELOG_JWT_SECRET is not set")
		os.Exit(2)
	}
	if *operator == "" {
		fmt.Fprintln(os.Stderr, "-operator is required")
		flag.Usage()
		os.Exit(2)
	}

	token, err := auth.GenerateToken(*operator, []byte(secret), *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mint token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
