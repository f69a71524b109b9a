package commands

import (
	"flag"
	"fmt"
	"os"

	"github.com/klabast/wb-services/year-countdown/internal/app"
)

// HashSecret handles the hash-secret subcommand
func HashSecret(args []string) {
	fs := flag.NewFlagSet("hash-secret", flag.ExitOnError)
	overwrite := fs.Bool("overwrite", false, "Overwrite existing secret file without asking")
	insecureUnmask := fs.Bool("insecure-unmask-secret", false, "Show secret as plain text (INSECURE!)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: year-countdown hash-secret [OPTIONS]\n\n")
		fmt.Fprintf(os.Stderr, "Creates an event.secret file with the hashed add-event secret (Argon2id).\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  SECRET_FILE    Path to secret file (default: ./event.secret)\n")
	}
	fs.Parse(args)

	var secret, secretConfirm string

	if *insecureUnmask {
		// Plain text mode (insecure!)
		fmt.Fprintf(os.Stderr, "⚠️  WARNING: Secret will be visible on screen!\n")
		fmt.Print("Enter secret:   ")
		if _, err := fmt.Scanln(&secret); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading secret: %v\n", err)
			os.Exit(1)
		}

		fmt.Print("Confirm secret: ")
		if _, err := fmt.Scanln(&secretConfirm); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading secret confirmation: %v\n", err)
			os.Exit(1)
		}
	} else {
		// Masked mode with asterisks (default, secure)
		secret = readSecretWithMask("Enter secret:   ")
		secretConfirm = readSecretWithMask("Confirm secret: ")
	}

	if secret == "" {
		fmt.Fprintf(os.Stderr, "Secret cannot be empty\n")
		os.Exit(1)
	}

	if secret != secretConfirm {
		fmt.Fprintf(os.Stderr, "Secrets do not match\n")
		os.Exit(1)
	}

	if err := app.CreateSecretFile(secret, *overwrite); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
