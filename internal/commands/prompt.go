package commands

import (
	"bufio"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"
)

// readSecretWithMask reads secret input and displays asterisks
func readSecretWithMask(prompt string) string {
	fmt.Print(prompt)

	// Save original terminal state
	oldState, err := term.GetState(int(syscall.Stdin))
	if err != nil {
		// Fallback to hidden input if we can't set raw mode
		secret, _ := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		return string(secret)
	}
	defer term.Restore(int(syscall.Stdin), oldState)

	// Set terminal to raw mode
	if _, err := term.MakeRaw(int(syscall.Stdin)); err != nil {
		// Fallback to hidden input
		secret, _ := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		return string(secret)
	}

	var secret []byte
	reader := bufio.NewReader(os.Stdin)

	for {
		char, _, err := reader.ReadRune()
		if err != nil {
			break
		}

		switch char {
		case '\n', '\r': // Enter key
			fmt.Println()
			return string(secret)
		case 127, 8: // Backspace or Delete
			if len(secret) > 0 {
				secret = secret[:len(secret)-1]
				// Clear the asterisk: backspace, space, backspace
				fmt.Print("\b \b")
			}
		case 3: // Ctrl+C
			fmt.Println()
			os.Exit(1)
		default:
			// Only accept printable characters
			if char >= 32 && char <= 126 {
				secret = append(secret, byte(char))
				fmt.Print("*")
			}
		}
	}

	fmt.Println()
	return string(secret)
}
