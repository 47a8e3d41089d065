package aur

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// seedFile is the on-disk shape of the seed data the server loads at
// startup in place of a real database.
type seedFile struct {
	Users    []seedUser    `yaml:"users"`
	Packages []seedPackage `yaml:"packages"`
}

type seedUser struct {
	Username       string    `yaml:"username"`
	Email          string    `yaml:"email"`
	RealName       string    `yaml:"real_name"`
	Joined         time.Time `yaml:"joined"`
	Groups         []string  `yaml:"groups"`
	DeletePackages bool      `yaml:"delete_packages"`
	Notify         bool      `yaml:"notify"`
}

type seedPackage struct {
	Name        string    `yaml:"name"`
	Repository  string    `yaml:"repository"`
	Version     string    `yaml:"version"`
	Release     string    `yaml:"release"`
	Description string    `yaml:"description"`
	Maintainer  string    `yaml:"maintainer"`
	OutOfDate   bool      `yaml:"out_of_date"`
	Updated     time.Time `yaml:"updated"`
}

// LoadSeed reads a YAML seed file and returns a MemoryStore populated with
// its users and packages.
func LoadSeed(path string) (*MemoryStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %q: %w", path, err)
	}
	return ParseSeed(data)
}

// ParseSeed builds a MemoryStore from raw YAML seed data.
func ParseSeed(data []byte) (*MemoryStore, error) {
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	store := NewMemoryStore()
	for _, user := range seed.Users {
		store.users[user.Username] = User{
			Username:   user.Username,
			Email:      user.Email,
			RealName:   user.RealName,
			DateJoined: user.Joined,
			Groups:     user.Groups,
			Perms:      Permissions{DeletePackages: user.DeletePackages},
			Notify:     user.Notify,
		}
	}
	for _, pkg := range seed.Packages {
		store.packages[pkg.Name] = Package{
			Name:        pkg.Name,
			Repository:  pkg.Repository,
			Version:     pkg.Version,
			Release:     pkg.Release,
			Description: pkg.Description,
			Maintainer:  pkg.Maintainer,
			OutOfDate:   pkg.OutOfDate,
			UpdatedAt:   pkg.Updated,
		}
	}
	return store, nil
}
