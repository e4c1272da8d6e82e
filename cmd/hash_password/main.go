// Command hash_password prints a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
// The password is read from the first argument or, when absent, from the
// first line of standard input.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"aisolutions/internal/util"
)

func main() {
	var password string
	if len(os.Args) > 1 {
		password = os.Args[1]
	} else {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			log.Fatalf("Failed to read password: %v", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		log.Fatal("Password must not be empty")
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	fmt.Println(hash)
}
