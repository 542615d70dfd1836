package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"move-market/internal/cli"
)

func main() {
	var (
		userID = flag.Int64("user-id", 0, "Numeric id of the user (subject)")
		role   = flag.String("role", "USER", "User role: USER | DRIVER")
		secret = flag.String("secret", "", "JWT HMAC secret (HS256)")
	)
	flag.Parse()

	if *userID <= 0 || *secret == "" {
		fmt.Fprintln(os.Stderr, "usage: key --user-id=<id> --role=USER --secret='<secret>'")
		os.Exit(2)
	}

	token, claims, err := cli.GenerateUserToken(*secret, *userID, *role)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	fmt.Println("TOKEN:")
	fmt.Println(token)
	fmt.Println("\nCLAIMS:")
	fmt.Printf("  sub:  %s\n", claims.Subject)
	fmt.Printf("  role: %s\n", claims.Role)
	fmt.Printf("  iat:  %s\n", claims.IssuedAt.Time.UTC().Format(time.RFC3339))
	fmt.Printf("  exp:  %s\n", claims.ExpiresAt.Time.UTC().Format(time.RFC3339))
}
