// Package directory holds the externally supplied user directory: identities,
// roles, designations and the reportsTo relation the KPI rollup walks.
package directory

import (
	"fmt"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
)

// Directory is a read-only snapshot of the user population. The reportsTo
// relation is validated acyclic at construction.
type Directory struct {
	users  []domain.User
	byID   map[string]domain.User
	byName map[string]domain.User
}

func New(users []domain.User) (*Directory, error) {
	d := &Directory{
		users:  append([]domain.User(nil), users...),
		byID:   make(map[string]domain.User, len(users)),
		byName: make(map[string]domain.User, len(users)),
	}
	for _, u := range users {
		if _, ok := d.byID[u.ID]; ok {
			return nil, fmt.Errorf("duplicate user id %q", u.ID)
		}
		d.byID[u.ID] = u
		d.byName[u.Name] = u
	}
	if err := d.checkAcyclic(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Directory) checkAcyclic() error {
	for _, u := range d.users {
		seen := map[string]bool{u.ID: true}
		cur := u
		for cur.ReportsTo != "" {
			next, ok := d.byID[cur.ReportsTo]
			if !ok {
				return fmt.Errorf("user %q reports to unknown user %q", cur.ID, cur.ReportsTo)
			}
			if seen[next.ID] {
				return fmt.Errorf("reporting cycle detected involving user %q", next.ID)
			}
			seen[next.ID] = true
			cur = next
		}
	}
	return nil
}

func (d *Directory) Users() []domain.User {
	return d.users
}

func (d *Directory) ByID(id string) (domain.User, bool) {
	u, ok := d.byID[id]
	return u, ok
}

func (d *Directory) ByName(name string) (domain.User, bool) {
	u, ok := d.byName[name]
	return u, ok
}

func (d *Directory) WithDesignation(des domain.Designation) []domain.User {
	var out []domain.User
	for _, u := range d.users {
		if u.Designation == des {
			out = append(out, u)
		}
	}
	return out
}

func (d *Directory) Managers() []domain.User {
	return d.WithDesignation(domain.DesignationManager)
}

func (d *Directory) DepartmentHeads() []domain.User {
	return d.WithDesignation(domain.DesignationDepartmentHead)
}

// DirectReports returns the users whose reportsTo equals the given id,
// in directory order.
func (d *Directory) DirectReports(id string) []domain.User {
	var out []domain.User
	for _, u := range d.users {
		if u.ReportsTo == id {
			out = append(out, u)
		}
	}
	return out
}

// Roots returns the users that report to nobody.
func (d *Directory) Roots() []domain.User {
	var out []domain.User
	for _, u := range d.users {
		if u.ReportsTo == "" {
			out = append(out, u)
		}
	}
	return out
}
