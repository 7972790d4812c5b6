package resources

import (
	"errors"

	"github.com/aretw0/depot/pkg/core"
)

// Order is a single order task.
type Order struct {
	Task string `json:"task"`
}

func (o Order) Validate() error {
	return core.Required("task", o.Task)
}

// Good is a catalog entry.
type Good struct {
	Task string `json:"task"`
}

func (g Good) Validate() error {
	return core.Required("task", g.Task)
}

// Measurement is an on-site measurement request.
type Measurement struct {
	Name             string         `json:"name"`
	Phone            string         `json:"phone"`
	Email            string         `json:"email,omitempty"`
	Type             string         `json:"type,omitempty"`
	Cart             map[string]any `json:"cart"`
	Address          string         `json:"address,omitempty"`
	IP               string         `json:"ip,omitempty"`
	GeoFromIP        string         `json:"geo_from_ip,omitempty"`
	RegistrationDate string         `json:"registration_date,omitempty"`
}

func (m Measurement) Validate() error {
	return errors.Join(
		core.Required("name", m.Name),
		core.Required("phone", m.Phone),
	)
}

// Clone implements core.Cloner; the cart is copied deeply.
func (m Measurement) Clone() Measurement {
	out := m
	if m.Cart != nil {
		out.Cart = cloneValue(m.Cart).(map[string]any)
	}
	return out
}

// Buying is an expense record.
type Buying struct {
	Name     string `json:"name"`
	Qty      string `json:"qty,omitempty"`
	Category string `json:"category,omitempty"`
	Price    string `json:"price,omitempty"`
	Date     string `json:"date,omitempty"`
}

func (b Buying) Validate() error {
	return core.Required("name", b.Name)
}

// User is a registered customer or staff member.
type User struct {
	Name             string `json:"name"`
	Phone            string `json:"phone,omitempty"`
	Email            string `json:"email"`
	Address          string `json:"address,omitempty"`
	IP               string `json:"ip,omitempty"`
	GeoForIP         string `json:"geo_for_ip,omitempty"`
	Role             string `json:"role,omitempty"`
	Active           string `json:"active,omitempty"`
	RegistrationDate string `json:"registration_date,omitempty"`
}

func (u User) Validate() error {
	return errors.Join(
		core.Required("name", u.Name),
		core.Required("email", u.Email),
	)
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
