package dashboard

import (
	"laudos-api/internal/application/ports"
)

type (
	MenuItem struct {
		Key   string `json:"key"`
		Label string `json:"label"`
		Path  string `json:"path,omitempty"`
	}

	Counts struct {
		Patients *int64 `json:"patients,omitempty"`
		Laudos   int64  `json:"laudos"`
	}

	Response struct {
		Menu     []MenuItem `json:"menu"`
		UserMenu []MenuItem `json:"userMenu"`
		Counts   Counts     `json:"counts"`
	}
)

// ToResponse splits the menu by section.
func ToResponse(d ports.Dashboard, userSection string) Response {
	out := Response{
		Menu:     []MenuItem{},
		UserMenu: []MenuItem{},
		Counts:   Counts{Patients: d.PatientCount, Laudos: d.LaudoCount},
	}
	for _, it := range d.Menu {
		item := MenuItem{Key: it.Key, Label: it.Label, Path: it.Path}
		if it.Section == userSection {
			out.UserMenu = append(out.UserMenu, item)
			continue
		}
		out.Menu = append(out.Menu, item)
	}

	return out
}
