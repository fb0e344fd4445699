package model

import (
	"fmt"
	"strings"
)

// Contributor identifies the author or committer of a commit
type Contributor struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
	_     struct{}
}

// NewContributor builds a contributor
func NewContributor(name, email string) Contributor {
	return Contributor{Name: name, Email: email}
}

// IsZero tells if no identity was given
func (c Contributor) IsZero() bool {
	return strings.TrimSpace(c.Name) == "" && strings.TrimSpace(c.Email) == ""
}

func (c Contributor) String() string {
	if c.Email == "" {
		return c.Name
	}
	if c.Name == "" {
		return c.Email
	}
	return fmt.Sprintf("%s <%s>", c.Name, c.Email)
}
