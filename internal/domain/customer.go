package domain

import (
	"fmt"
	"strings"
	"time"
)

// Customer is a mutable profile with no lifecycle beyond create/update.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Zip       string    `json:"zip"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: customer name is required", ErrValidation)
	}
	if !strings.Contains(c.Email, "@") {
		return fmt.Errorf("%w: invalid email %q", ErrValidation, c.Email)
	}
	return nil
}
