package directory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
)

type userRecord struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Role        string `yaml:"role"`
	Dept        string `yaml:"dept"`
	Email       string `yaml:"email"`
	Designation string `yaml:"designation"`
	ReportsTo   string `yaml:"reports_to"`
}

type directoryFile struct {
	Users []userRecord `yaml:"users"`
}

// LoadFile reads a YAML user directory and validates it.
func LoadFile(path string) (*Directory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read user directory: %w", err)
	}

	var file directoryFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse user directory: %w", err)
	}

	users := make([]domain.User, 0, len(file.Users))
	for _, r := range file.Users {
		users = append(users, domain.User{
			ID:          r.ID,
			Name:        r.Name,
			Role:        domain.Role(r.Role),
			Dept:        r.Dept,
			Email:       r.Email,
			Designation: domain.Designation(r.Designation),
			ReportsTo:   r.ReportsTo,
		})
	}

	return New(users)
}
