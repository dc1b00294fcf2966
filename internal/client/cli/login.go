package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) runLogin(ctx context.Context, username string) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	if username == "" {
		var err error
		username, err = c.io.ReadInput("Username: ")
		if err != nil {
			return fmt.Errorf("failed to read username: %w", err)
		}
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	authData, err := c.sessions.Login(ctx, username, password)
	if err != nil {
		return err
	}

	expiresIn := time.Unix(authData.ExpiresAt, 0).Sub(c.now()).Round(time.Second)

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Username: %s\n", authData.Username)
	c.io.Printf("User ID: %s\n", authData.UserID)
	c.io.Printf("Access token expires in: %s\n", expiresIn)
	c.io.Println()
	c.io.Println("Your session has been saved.")

	return nil
}
