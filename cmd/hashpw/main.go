// Command hashpw prints a bcrypt hash for a password, for seeding or
// resetting accounts directly in the database.
//
//	go run ./cmd/hashpw 'new-password'
package main

import (
	"fmt"
	"os"

	"luxury-yachts-api/pkg/utils"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: hashpw <password>")
		os.Exit(2)
	}
	hash := utils.HashPassword(os.Args[1])
	fmt.Println(hash)
	fmt.Println()
	fmt.Printf("UPDATE users SET password_hash = '%s' WHERE email = 'admin@yachts.com';\n", hash)
}
