// Command hashpw prints the bcrypt hash of a password read from the
// terminal without echo. Useful for provisioning accounts out of band.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/reacademix/authd/internal/server/password"
	"golang.org/x/term"
)

func main() {
	cost := flag.Int("b", password.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	fmt.Fprint(os.Stderr, "Password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		log.Fatalf("reading password: %v", err)
	}

	hash, err := password.NewHasher(*cost).Hash(string(pw))
	if err != nil {
		log.Fatalf("hashing password: %v", err)
	}

	fmt.Println(hash)
}
