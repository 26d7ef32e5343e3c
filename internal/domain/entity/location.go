package entity

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CentralKey es la clave persistida del almacén central. Es un valor
// distinguido dentro del tipo Location, nunca un null ni un string suelto.
const CentralKey = "central"

type locationKind int

const (
	locationInvalid locationKind = iota // el valor cero NO es el central
	locationCentral
	locationBranch
)

// Location identifica dónde vive un registro de stock: el almacén central o
// una sucursal concreta. Variante etiquetada; el valor cero es inválido para
// que un Location olvidado nunca se confunda con el central.
type Location struct {
	kind     locationKind
	branchID string
}

// Central devuelve la ubicación del almacén central.
func Central() Location {
	return Location{kind: locationCentral}
}

// AtBranch devuelve la ubicación de la sucursal indicada.
func AtBranch(branchID string) Location {
	return Location{kind: locationBranch, branchID: branchID}
}

// IsValid indica si la ubicación fue construida con Central/AtBranch/Parse.
func (l Location) IsValid() bool {
	if l.kind == locationBranch {
		return l.branchID != ""
	}
	return l.kind == locationCentral
}

// IsCentral indica si es el almacén central.
func (l Location) IsCentral() bool { return l.kind == locationCentral }

// BranchID devuelve el ID de sucursal; vacío para el central.
func (l Location) BranchID() string { return l.branchID }

// Key devuelve la clave persistida: "central" o el ID de la sucursal.
func (l Location) Key() string {
	if l.kind == locationCentral {
		return CentralKey
	}
	return l.branchID
}

func (l Location) String() string {
	if l.kind == locationCentral {
		return "almacén central"
	}
	return "sucursal " + l.branchID
}

// ParseLocationKey interpreta una clave persistida o recibida por la API.
// Rechaza explícitamente los centinelas heredados ("", "null", "undefined"):
// el central se pide con la clave "central", nunca con un null.
func ParseLocationKey(key string) (Location, error) {
	switch strings.TrimSpace(key) {
	case "", "null", "undefined":
		return Location{}, fmt.Errorf("clave de ubicación inválida %q", key)
	case CentralKey:
		return Central(), nil
	default:
		return AtBranch(strings.TrimSpace(key)), nil
	}
}

// MarshalJSON serializa la ubicación como su clave.
func (l Location) MarshalJSON() ([]byte, error) {
	if !l.IsValid() {
		return nil, fmt.Errorf("location sin inicializar")
	}
	return json.Marshal(l.Key())
}

// UnmarshalJSON acepta la clave ("central" o ID de sucursal).
func (l *Location) UnmarshalJSON(data []byte) error {
	var key string
	if err := json.Unmarshal(data, &key); err != nil {
		return err
	}
	parsed, err := ParseLocationKey(key)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
